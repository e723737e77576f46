// Package site models the static site being synchronized: target page
// descriptors, and reading and writing HTML documents through a
// billy.Filesystem rooted at the site root.
package site
