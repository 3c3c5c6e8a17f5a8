package analyze

import (
	"go/token"
	"sort"

	"derive-generator/internal/common"
	"derive-generator/internal/schema"
)

// DirectivePrefix starts every derivation directive comment.
const DirectivePrefix = "//derive:"

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory of the package sources (root packages only)
	Root  bool     // Matched by a load pattern rather than reached as an import
	Types []string // Struct types defined in this package
}

// Comment is a directive comment found in a root package.
type Comment struct {
	Text     string         // full comment text, including the leading "//"
	Position token.Position // where the comment starts
	Package  *PackageInfo   // package declaring the comment
}

// Graph holds the schemas of all analyzed types. It is read-only once
// returned by the Loader and safe for concurrent lookups.
type Graph struct {
	Index *schema.Index
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// Comments are the directive comments of the root packages, in file order.
	Comments []Comment
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		Index:    schema.NewIndex(),
		Packages: make(map[string]*PackageInfo),
	}
}

// Lookup implements schema.Provider.
func (g *Graph) Lookup(ref string) (*schema.TypeSchema, error) {
	return g.Index.Lookup(ref)
}

// From returns a provider that presents schemas as seen from package pkgPath,
// hiding members that code in pkgPath cannot reach.
func (g *Graph) From(pkgPath string) schema.Provider {
	return schema.ViewProvider{Provider: g, From: pkgPath}
}

// Package finds a loaded package by import path or path suffix.
// Root packages win over imports.
func (g *Graph) Package(ref string) (*PackageInfo, bool) {
	if p, ok := g.Packages[ref]; ok {
		return p, true
	}

	var match *PackageInfo
	for _, path := range g.sortedPaths() {
		p := g.Packages[path]
		if !common.MatchesPkg(p.Path, ref) {
			continue
		}

		if match == nil || p.Root && !match.Root {
			match = p
		}
	}

	return match, match != nil
}

// Roots returns the root packages sorted by path.
func (g *Graph) Roots() []*PackageInfo {
	var out []*PackageInfo
	for _, path := range g.sortedPaths() {
		if p := g.Packages[path]; p.Root {
			out = append(out, p)
		}
	}

	return out
}

func (g *Graph) sortedPaths() []string {
	paths := make([]string, 0, len(g.Packages))
	for path := range g.Packages {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	return paths
}
