// Package woodpath parses and validates the project relative paths used to
// address source directories, files, components and editables.
//
// Every path is rooted in one of the source roots (res, lib, script, gen) and
// is compared by its normalized string value. Parsing never touches the file
// system; only ResolveLayout performs an existence check, through a Checker,
// to tell a normal component directory from an inline component file.
package woodpath
