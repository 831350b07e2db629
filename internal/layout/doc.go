// Package layout scans layout files for their structural markers and
// classifies each layout as a page or a reusable fragment.
//
// Work happens in two explicit phases. During the scan phase a
// RegistryBuilder collects one Descriptor per layout file. Build freezes the
// builder into a Registry, which is read-only and safe for concurrent use; a
// Classifier then walks template chains through it, memoizing one
// Classification per layout.
package layout
