package integration

import (
	"bytes"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/fragsync/cmd/fragsync/commands"
	testhelpers "git.home.luguber.info/inful/fragsync/internal/testing"
)

var updateGolden = flag.Bool("update-golden", false, "Update golden files")

const (
	siteFixture = "../testdata/site"
	goldenDir   = "../testdata/golden"
	localEdit   = "<!-- local edit -->\n"
)

var targets = []string{
	"about.html",
	"blog/post.html",
	"blog/2025/deep.html",
	"projects/kitchen.html",
	"landing.html",
	"missing.html",
}

// synced are the targets the run is expected to rewrite.
var synced = []string{
	"about.html",
	"blog/post.html",
	"blog/2025/deep.html",
}

// runCLI parses args the way the binary does and runs the selected command.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var cli commands.CLI
	parser, err := kong.New(&cli,
		kong.Name("fragsync"),
		commands.Vars("test"),
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err, "failed to parse %v", args)

	var out bytes.Buffer
	g := commands.NewGlobal(slog.New(slog.NewTextHandler(io.Discard, nil)), &out)
	err = ctx.Run(g)
	return out.String(), err
}

// prepareSite copies the fixture into a committed repository, dirties one
// page and writes a configuration listing every target.
func prepareSite(t *testing.T) (dir, cfgPath string) {
	t.Helper()

	dir = setupTestRepo(t, siteFixture)

	kitchen := filepath.Join(dir, "projects", "kitchen.html")
	f, err := os.OpenFile(kitchen, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString(localEdit)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	cfgPath = testhelpers.NewConfigBuilder(t).WithTargets(targets...).WriteTo(dir)
	return dir, cfgPath
}

// TestGolden_SiteSync runs a full sync over the fixture site with the git
// guard and metrics export enabled, and compares the rewritten pages and the
// console report against golden files.
func TestGolden_SiteSync(t *testing.T) {
	dir, cfgPath := prepareSite(t)
	metricsPath := filepath.Join(t.TempDir(), "fragsync.prom")
	kitchenBefore := readSiteFile(t, dir, "projects/kitchen.html")

	out, err := runCLI(t, "-c", cfgPath, "sync", "--require-clean", "--metrics-file", metricsPath)
	require.NoError(t, err)

	verifyGolden(t, []byte(out), filepath.Join(goldenDir, "sync-output.txt"), *updateGolden)
	for _, rel := range append(synced, "landing.html") {
		verifyGolden(t, readSiteFile(t, dir, rel), filepath.Join(goldenDir, "site", filepath.FromSlash(rel)), *updateGolden)
	}

	assert.Equal(t, string(kitchenBefore), string(readSiteFile(t, dir, "projects/kitchen.html")),
		"dirty page must not be touched")
	assert.NoFileExists(t, filepath.Join(dir, "missing.html"))

	metrics := string(readSiteFile(t, filepath.Dir(metricsPath), filepath.Base(metricsPath)))
	for _, kind := range []string{"footer", "navbar"} {
		assert.Contains(t, metrics, `fragsync_file_results_total{fragment="`+kind+`",status="updated"} 3`)
		assert.Contains(t, metrics, `fragsync_file_results_total{fragment="`+kind+`",status="skipped"} 3`)
	}
	assert.Contains(t, metrics, "fragsync_last_run_timestamp_seconds")
}

// TestGolden_SiteSyncIsIdempotent commits a synchronized site and checks that
// a second run reports every page as already up to date.
func TestGolden_SiteSyncIsIdempotent(t *testing.T) {
	dir, cfgPath := prepareSite(t)

	_, err := runCLI(t, "-c", cfgPath)
	require.NoError(t, err)

	first := make(map[string]string, len(synced))
	for _, rel := range synced {
		first[rel] = string(readSiteFile(t, dir, rel))
	}
	commitAll(t, dir, "Synchronize fragments")

	out, err := runCLI(t, "-c", cfgPath, "--require-clean")
	require.NoError(t, err)

	assert.Equal(t, 8, strings.Count(out, "UNCHANGED:"))
	assert.NotContains(t, out, "SUCCESS:")
	for _, rel := range synced {
		assert.Equal(t, first[rel], string(readSiteFile(t, dir, rel)), rel)
	}
}

// TestGolden_SiteSyncDryRun previews the sync and checks that the reported
// sizes match a real run while leaving the site untouched.
func TestGolden_SiteSyncDryRun(t *testing.T) {
	dir, cfgPath := prepareSite(t)

	before := make(map[string]string, len(synced))
	for _, rel := range synced {
		before[rel] = string(readSiteFile(t, dir, rel))
	}

	out, err := runCLI(t, "-c", cfgPath, "--dry-run")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "DRY RUN MODE - No files will be modified"))
	assert.Equal(t, 2, strings.Count(out, "Run without --dry-run to apply changes."))
	assert.Contains(t, out, "  Would replace footer (88 chars -> 434 chars)")
	assert.Contains(t, out, "  Would replace navbar (115 chars -> 917 chars)")
	assert.NotContains(t, out, "Done!")
	for _, rel := range synced {
		assert.Equal(t, before[rel], string(readSiteFile(t, dir, rel)), rel)
	}
}
