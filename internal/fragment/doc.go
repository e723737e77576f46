// Package fragment locates shared HTML blocks (footer, navigation bar) inside
// hand-authored pages.
//
// Detection is textual. A Definition pairs an ordered list of start matchers
// with an end finder: the first matcher that hits fixes the start offset, the
// end finder then scans forward from there. No DOM is built.
package fragment
