// Package variables loads variable definition files into per-scope value
// stores and resolves variable references against them.
//
// A definition file is an XML document whose root element names the
// resource kind and whose children are the keys:
//
//	<string>
//		<title>Home</title>
//	</string>
//
// Text values keep nested markup verbatim. Style values turn each child
// element into a CSS declaration and may extend another style through the
// `parent` attribute.
//
// Lookup cascades from the requesting component's store to the asset store
// and then the theme store, trying the requested locale and then the
// project default locale in each. Nested references inside a value are
// expanded recursively; the expansion trace travels with the Request so that
// concurrent resolutions never share it.
package variables
