package testing

import (
	"fmt"
	"path"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

// CanonicalPage is a home page carrying the current navbar and footer.
const CanonicalPage = `<!DOCTYPE html>
<html>
<head>
  <link href="assets/site.css" rel="stylesheet">
</head>
<body class="bg-white">
  <!-- Top Bar -->
  <div class="bg-dark-900 text-white py-2">
    <div class="container"><a href="tel:+15550100">Call us</a></div>
  </div>
  <nav>
    <a href="index.html"><img src="assets/logo.png" alt="Logo"></a>
    <a href="projects/index.html">Projects</a>
  </nav>
  <div id="mobile-menu" class="hidden">
    <div class="p-4">
      <a href="about.html">About</a>
      <a href="mailto:hi@example.com">Mail</a>
    </div>
  </div>
  <main>Home</main>
  <!-- Footer -->
  <footer class="site-footer">
    <a href="about.html">About</a>
    <a href="https://example.com">Example</a>
    <a href="#top">Back to top</a>
    <img src="assets/logo.png" alt="Logo">
  </footer>
  <script src="assets/app.js"></script>
</body>
</html>
`

const stalePage = `<!DOCTYPE html>
<html>
<head>
  <title>%[1]s</title>
  <link href="%[2]sassets/site.css" rel="stylesheet">
</head>
<body class="bg-white">
  <!-- Top Bar -->
  <div class="bg-dark-900 text-white py-2">
    <div class="container">old bar</div>
  </div>
  <div id="mobile-menu" class="hidden">
    <div class="p-4"><a href="%[2]sold.html">Old</a></div>
  </div>
  <main>%[1]s</main>
  <!-- Footer -->
  <footer class="site-footer">
    <a href="%[2]sold.html">Old</a>
  </footer>
  <script src="%[2]sassets/app.js"></script>
</body>
</html>
`

// StalePage returns a page at rel whose navbar and footer are out of date.
// Links outside the fragments already carry the right prefix for its depth.
func StalePage(rel string) string {
	depth := strings.Count(path.Clean(rel), "/")
	return fmt.Sprintf(stalePage, rel, strings.Repeat("../", depth))
}

// SiteBuilder provides a fluent interface for creating test sites.
type SiteBuilder struct {
	t  *testing.T
	fs billy.Filesystem
}

// NewSiteBuilder writes into fs.
func NewSiteBuilder(t *testing.T, fs billy.Filesystem) *SiteBuilder {
	return &SiteBuilder{t: t, fs: fs}
}

// NewMemorySite starts an in-memory site.
func NewMemorySite(t *testing.T) *SiteBuilder {
	return NewSiteBuilder(t, memfs.New())
}

// WithPage writes content at rel.
func (sb *SiteBuilder) WithPage(rel, content string) *SiteBuilder {
	sb.t.Helper()
	if err := util.WriteFile(sb.fs, rel, []byte(content), testFilePermissions); err != nil {
		sb.t.Fatalf("Failed to write %s: %v", rel, err)
	}
	return sb
}

// WithCanonical writes CanonicalPage at index.html.
func (sb *SiteBuilder) WithCanonical() *SiteBuilder {
	sb.t.Helper()
	return sb.WithPage("index.html", CanonicalPage)
}

// WithStalePages writes a StalePage at each path.
func (sb *SiteBuilder) WithStalePages(rels ...string) *SiteBuilder {
	sb.t.Helper()
	for _, rel := range rels {
		sb.WithPage(rel, StalePage(rel))
	}
	return sb
}

// Filesystem returns the site filesystem.
func (sb *SiteBuilder) Filesystem() billy.Filesystem {
	return sb.fs
}

// Assert returns file assertions over the site.
func (sb *SiteBuilder) Assert() *FileAssertions {
	return NewFileAssertions(sb.t, sb.fs)
}
