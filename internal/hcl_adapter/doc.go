// Package hcl_adapter reads the project descriptor, `project.hcl`, into the
// format-agnostic config.Model.
//
//	project "site" {
//	  locales   = ["en", "de"]
//	  operators = "data-attr"
//	  asset_dir = "${root.res}/asset"
//	  exclude   = ["res/draft/**"]
//
//	  media "smd" { expression = "min-width: 768px" }
//	  media "lgd" { expression = "min-width: 1200px" }
//	}
package hcl_adapter
