// Package build drives a project build: it scans the source tree, discovers
// the pages and compiles every page for every requested locale.
//
// A compiled unit carries the page layout with all references expanded and
// the page's style sheets, each with the media query its file name selects,
// ordered so more specific sheets come later.
package build
