// Package config defines the format-agnostic project descriptor, along with
// the Loader interface for reading it from a concrete source format.
//
// The `config.Model` is the single source of truth for the `project`
// package. Concrete implementations of the Loader, such as for HCL, are
// provided in separate packages.
package config
