// Package analyze provides package loading and schema extraction.
//
// It uses golang.org/x/tools/go/packages with go/types to turn the named
// struct types of the loaded packages (and of their direct imports) into
// schema.TypeSchema snapshots, and collects //derive: comment directives from
// the root packages.
//
// Key types:
//   - Loader: loads package patterns into a Graph
//   - Graph: the schema index plus package and directive metadata
//
// DetectCapabilities reads the go directive of the target module to decide
// which derivations the target toolchain can compile.
package analyze
