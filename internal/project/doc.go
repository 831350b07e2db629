// Package project binds a project descriptor to its source tree.
//
// A Project answers file system questions for the path grammar and the
// layout registry. Its Scan method walks the source roots once and yields
// the frozen, read-only tables the build works from: the layout registry,
// the variables stores and the directory index used to locate media files.
package project
