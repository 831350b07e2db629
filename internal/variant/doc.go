// Package variant decodes the qualifiers encoded in a source file name suffix.
//
// A file such as `page_mdd_portrait.css` carries the suffix `mdd_portrait`:
// underscore separated tokens selecting a locale, a viewport width or height,
// a named screen breakpoint and an orientation. Decode turns that suffix into
// a comparable Set value.
package variant
