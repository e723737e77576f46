package syncer

import (
	stdErrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/fragsync/internal/foundation/errors"
	"git.home.luguber.info/inful/fragsync/internal/fragment"
	"git.home.luguber.info/inful/fragsync/internal/site"
	testhelpers "git.home.luguber.info/inful/fragsync/internal/testing"
)

func targets(t *testing.T, paths ...string) []site.Target {
	t.Helper()
	ts, err := site.NewTargets(paths)
	require.NoError(t, err)
	return ts
}

func TestRun_FooterInSubdirectory(t *testing.T) {
	sb := testhelpers.NewMemorySite(t).WithCanonical().WithStalePages("blog/post.html")

	report, err := New(sb.Filesystem()).Run(fragment.Footer(), "index.html", targets(t, "blog/post.html"))
	require.NoError(t, err)

	res, ok := report.Result("blog/post.html")
	require.True(t, ok)
	assert.Equal(t, StatusUpdated, res.Status)
	assert.Equal(t, 1, res.Depth)
	assert.Equal(t, "comment", res.Matcher)

	sb.Assert().
		AssertFileContains("blog/post.html", `<a href="../about.html">About</a>`).
		AssertFileContains("blog/post.html", `<img src="../assets/logo.png" alt="Logo">`).
		AssertFileContains("blog/post.html", `<a href="https://example.com">Example</a>`).
		AssertFileContains("blog/post.html", `<a href="#top">Back to top</a>`).
		AssertFileNotContains("blog/post.html", `old.html">Old</a>
  </footer>`)
}

func TestRun_RootTargetGetsFragmentVerbatim(t *testing.T) {
	sb := testhelpers.NewMemorySite(t).WithCanonical().WithStalePages("about.html")

	report, err := New(sb.Filesystem()).Run(fragment.Footer(), "index.html", targets(t, "about.html"))
	require.NoError(t, err)

	frag, err := fragment.Footer().Extract(testhelpers.CanonicalPage)
	require.NoError(t, err)
	assert.Equal(t, frag, report.Fragment)
	sb.Assert().AssertFileContains("about.html", frag)
}

func TestRun_DepthCorrectness(t *testing.T) {
	sb := testhelpers.NewMemorySite(t).WithCanonical().
		WithStalePages("about.html", "blog/post.html", "blog/2025/deep.html")

	_, err := New(sb.Filesystem()).Run(fragment.Navbar(), "index.html",
		targets(t, "about.html", "blog/post.html", "blog/2025/deep.html"))
	require.NoError(t, err)

	sb.Assert().
		AssertFileContains("about.html", `<a href="projects/index.html">Projects</a>`).
		AssertFileContains("blog/post.html", `<a href="../projects/index.html">Projects</a>`).
		AssertFileContains("blog/2025/deep.html", `<a href="../../projects/index.html">Projects</a>`).
		AssertFileContains("blog/2025/deep.html", `<img src="../../assets/logo.png" alt="Logo">`).
		AssertFileContains("blog/2025/deep.html", `<a href="tel:+15550100">Call us</a>`).
		AssertFileContains("blog/2025/deep.html", `<a href="mailto:hi@example.com">Mail</a>`)
}

func TestRun_ScopeContainment(t *testing.T) {
	for _, def := range []fragment.Definition{fragment.Footer(), fragment.Navbar()} {
		t.Run(string(def.Kind), func(t *testing.T) {
			sb := testhelpers.NewMemorySite(t).WithCanonical().WithStalePages("blog/post.html")
			before := testhelpers.StalePage("blog/post.html")

			_, err := New(sb.Filesystem()).Run(def, "index.html", targets(t, "blog/post.html"))
			require.NoError(t, err)
			after := sb.Assert().GetFileContent("blog/post.html")

			b0, err := def.Locate(before)
			require.NoError(t, err)
			b1, err := def.Locate(after)
			require.NoError(t, err)
			assert.Equal(t, before[:b0.Start], after[:b1.Start])
			assert.Equal(t, before[b0.End:], after[b1.End:])
		})
	}
}

func TestRun_Idempotent(t *testing.T) {
	sb := testhelpers.NewMemorySite(t).WithCanonical().WithStalePages("about.html", "blog/post.html")
	ts := targets(t, "about.html", "blog/post.html")
	s := New(sb.Filesystem())

	for _, def := range []fragment.Definition{fragment.Footer(), fragment.Navbar()} {
		_, err := s.Run(def, "index.html", ts)
		require.NoError(t, err)
	}
	first := sb.Assert().GetFileContent("blog/post.html")

	for _, def := range []fragment.Definition{fragment.Footer(), fragment.Navbar()} {
		report, err := s.Run(def, "index.html", ts)
		require.NoError(t, err)
		for _, res := range report.Files {
			assert.Equal(t, StatusUnchanged, res.Status, "%s %s", def.Kind, res.Path)
		}
		assert.Equal(t, 2, report.Processed())
	}
	assert.Equal(t, first, sb.Assert().GetFileContent("blog/post.html"))
}

func TestRun_PreviewDoesNotWrite(t *testing.T) {
	preview := testhelpers.NewMemorySite(t).WithCanonical().WithStalePages("about.html", "blog/post.html")
	applied := testhelpers.NewMemorySite(t).WithCanonical().WithStalePages("about.html", "blog/post.html")
	ts := targets(t, "about.html", "blog/post.html")

	dry, err := New(preview.Filesystem(), WithPreview(true)).Run(fragment.Footer(), "index.html", ts)
	require.NoError(t, err)
	wet, err := New(applied.Filesystem()).Run(fragment.Footer(), "index.html", ts)
	require.NoError(t, err)

	assert.True(t, dry.Preview)
	for i, res := range dry.Files {
		assert.Equal(t, StatusWouldUpdate, res.Status)
		assert.Equal(t, wet.Files[i].OldLen, res.OldLen)
		assert.Equal(t, wet.Files[i].NewLen, res.NewLen)
	}
	preview.Assert().
		AssertFileEquals("about.html", testhelpers.StalePage("about.html")).
		AssertFileEquals("blog/post.html", testhelpers.StalePage("blog/post.html"))
}

func TestRun_ExternalLinkScenario(t *testing.T) {
	canonical := "<body>\n  <!-- Footer -->\n  <footer class=\"f\">\n    <a href=\"https://example.com\">Ex</a>\n  </footer>\n</body>\n"
	sb := testhelpers.NewMemorySite(t).
		WithPage("index.html", canonical).
		WithStalePages("blog/post.html")

	_, err := New(sb.Filesystem()).Run(fragment.Footer(), "index.html", targets(t, "blog/post.html"))
	require.NoError(t, err)

	sb.Assert().
		AssertFileContains("blog/post.html", `<a href="https://example.com">Ex</a>`).
		AssertFileNotContains("blog/post.html", `../https://`)
}

func TestRun_Skips(t *testing.T) {
	sb := testhelpers.NewMemorySite(t).WithCanonical().
		WithPage("plain.html", "<html><body>plain</body></html>")

	report, err := New(sb.Filesystem()).Run(fragment.Footer(), "index.html", targets(t, "missing.html", "plain.html"))
	require.NoError(t, err)

	missing, _ := report.Result("missing.html")
	assert.Equal(t, StatusSkipped, missing.Status)
	assert.Equal(t, ReasonMissing, missing.Reason)

	plain, _ := report.Result("plain.html")
	assert.Equal(t, StatusSkipped, plain.Status)
	assert.Equal(t, ReasonNoBoundaries, plain.Reason)

	assert.Equal(t, 2, report.Skipped())
	assert.Zero(t, report.Processed())
	sb.Assert().
		AssertFileNotExists("missing.html").
		AssertFileEquals("plain.html", "<html><body>plain</body></html>")
}

func TestRun_TargetsOutsideCanonicalDirectory(t *testing.T) {
	sb := testhelpers.NewMemorySite(t).
		WithPage("site/index.html", testhelpers.CanonicalPage).
		WithStalePages("site/blog/post.html", "other.html")

	report, err := New(sb.Filesystem()).Run(fragment.Footer(), "site/index.html",
		targets(t, "site/blog/post.html", "other.html"))
	require.NoError(t, err)

	post, _ := report.Result("site/blog/post.html")
	assert.Equal(t, StatusUpdated, post.Status)
	assert.Equal(t, 1, post.Depth)

	other, _ := report.Result("other.html")
	assert.Equal(t, StatusSkipped, other.Status)
	assert.Equal(t, ReasonOutsideCanon, other.Reason)
}

type fakeChecker struct {
	dirty map[string]bool
	err   error
}

func (f fakeChecker) IsClean(rel string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return !f.dirty[rel], nil
}

func TestRun_CleanChecker(t *testing.T) {
	sb := testhelpers.NewMemorySite(t).WithCanonical().WithStalePages("about.html", "contact.html")
	checker := fakeChecker{dirty: map[string]bool{"contact.html": true}}

	report, err := New(sb.Filesystem(), WithCleanChecker(checker)).
		Run(fragment.Footer(), "index.html", targets(t, "about.html", "contact.html"))
	require.NoError(t, err)

	about, _ := report.Result("about.html")
	assert.Equal(t, StatusUpdated, about.Status)
	contact, _ := report.Result("contact.html")
	assert.Equal(t, StatusSkipped, contact.Status)
	assert.Equal(t, ReasonDirty, contact.Reason)
	sb.Assert().AssertFileEquals("contact.html", testhelpers.StalePage("contact.html"))
}

func TestRun_CleanCheckerFailure(t *testing.T) {
	sb := testhelpers.NewMemorySite(t).WithCanonical().WithStalePages("about.html")
	checker := fakeChecker{err: stdErrors.New("status unavailable")}

	report, err := New(sb.Filesystem(), WithCleanChecker(checker)).
		Run(fragment.Footer(), "index.html", targets(t, "about.html"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Errors())
	assert.EqualError(t, report.Files[0].Err, "status unavailable")
}

func TestRun_CanonicalFailures(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		sb := testhelpers.NewMemorySite(t).WithStalePages("about.html")
		_, err := New(sb.Filesystem()).Run(fragment.Footer(), "index.html", targets(t, "about.html"))
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
		assert.True(t, errors.HasSeverity(err, errors.SeverityFatal))
	})

	t.Run("no fragment", func(t *testing.T) {
		sb := testhelpers.NewMemorySite(t).
			WithPage("index.html", "<html><body>nothing here</body></html>").
			WithStalePages("about.html")
		_, err := New(sb.Filesystem()).Run(fragment.Footer(), "index.html", targets(t, "about.html"))
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryFragment))
		assert.ErrorIs(t, err, fragment.ErrStartNotFound)
		sb.Assert().AssertFileEquals("about.html", testhelpers.StalePage("about.html"))
	})
}

func TestRun_PreservesEncoding(t *testing.T) {
	bom := "\xEF\xBB\xBF"
	sb := testhelpers.NewMemorySite(t).WithCanonical().
		WithPage("about.html", bom+testhelpers.StalePage("about.html"))

	_, err := New(sb.Filesystem()).Run(fragment.Footer(), "index.html", targets(t, "about.html"))
	require.NoError(t, err)

	data, err := util.ReadFile(sb.Filesystem(), "about.html")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), bom))
	assert.Equal(t, 1, strings.Count(string(data), bom))
	assert.Contains(t, string(data), `<a href="https://example.com">Example</a>`)
}

func TestRun_LengthsInCharacters(t *testing.T) {
	canonical := "<body>\n<!-- Footer -->\n<footer class=\"f\">© Ünïcode</footer>\n</body>"
	sb := testhelpers.NewMemorySite(t).
		WithPage("index.html", canonical).
		WithPage("about.html", "<body>\n<!-- Footer -->\n<footer class=\"f\">old</footer>\n</body>")

	report, err := New(sb.Filesystem()).Run(fragment.Footer(), "index.html", targets(t, "about.html"))
	require.NoError(t, err)

	res := report.Files[0]
	assert.Equal(t, len([]rune("<!-- Footer -->\n<footer class=\"f\">old</footer>")), res.OldLen)
	assert.Equal(t, len([]rune("<!-- Footer -->\n<footer class=\"f\">© Ünïcode</footer>")), res.NewLen)
}

func TestVerify(t *testing.T) {
	def := fragment.Footer()
	inserted := "<!-- Footer -->\n<footer class=\"a\"><p>x</p></footer>"

	require.NoError(t, verify(def, "<body>\n"+inserted+"\n</body>", inserted))

	err := verify(def, "<body>\n<!-- Footer -->\n<footer class=\"a\"><div>x</div></footer>\n</body>", inserted)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFragment))

	err = verify(def, "<body>nothing</body>", inserted)
	assert.ErrorIs(t, err, fragment.ErrStartNotFound)
}

func TestDepthFrom(t *testing.T) {
	tests := []struct {
		base, rel string
		depth     int
		ok        bool
	}{
		{".", "about.html", 0, true},
		{".", "blog/post.html", 1, true},
		{"site", "site/about.html", 0, true},
		{"site", "site/blog/a/b.html", 2, true},
		{"site", "other/about.html", 0, false},
		{"site", "siteX/about.html", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.base+"|"+tt.rel, func(t *testing.T) {
			depth, ok := depthFrom(tt.base, tt.rel)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.depth, depth)
		})
	}
}

type countingRecorder struct {
	results map[string]int
	sizes   map[string]int
	runs    int
}

func (c *countingRecorder) IncFileResult(kind, status string) {
	c.results[kind+"/"+status]++
}
func (c *countingRecorder) ObserveRunDuration(string, time.Duration) { c.runs++ }
func (c *countingRecorder) SetFragmentSize(kind string, chars int) {
	c.sizes[kind] = chars
}
func (c *countingRecorder) SetLastRun(time.Time) {}

func TestRun_RecordsMetrics(t *testing.T) {
	sb := testhelpers.NewMemorySite(t).WithCanonical().WithStalePages("about.html")
	rec := &countingRecorder{results: map[string]int{}, sizes: map[string]int{}}

	report, err := New(sb.Filesystem(), WithRecorder(rec)).
		Run(fragment.Footer(), "index.html", targets(t, "about.html", "gone.html"))
	require.NoError(t, err)

	assert.Equal(t, 1, rec.results["footer/updated"])
	assert.Equal(t, 1, rec.results["footer/skipped"])
	assert.Equal(t, 1, rec.runs)
	assert.Equal(t, len([]rune(report.Fragment)), rec.sizes["footer"])
}
