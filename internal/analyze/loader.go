package analyze

import (
	"fmt"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"derive-generator/internal/schema"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Loader loads Go packages and builds a Graph.
type Loader struct {
	// Dir is the working directory for pattern resolution (default: current).
	Dir string
	// Tests includes test packages.
	Tests bool

	graph *Graph
}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{graph: NewGraph()}
}

// Load loads the specified packages and extracts their struct schemas and
// the schemas of the packages they import directly.
// Patterns are standard Go package patterns (e.g., "./store", "derive-generator/warehouse").
func (l *Loader) Load(patterns ...string) (*Graph, error) {
	if l.graph == nil {
		l.graph = NewGraph()
	}

	cfg := &packages.Config{
		Mode:  LoadMode,
		Dir:   l.Dir,
		Tests: l.Tests,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []string
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e.Error())
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %s", strings.Join(errs, "; "))
	}

	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}

		info := l.processTypes(pkg.Types)
		info.Root = true
		if len(pkg.GoFiles) > 0 {
			info.Dir = filepath.Dir(pkg.GoFiles[0])
		}

		for _, imp := range pkg.Types.Imports() {
			l.processTypes(imp)
		}

		l.collectComments(pkg, info)
	}

	return l.graph, nil
}

// processTypes extracts the struct types of a type-checked package.
func (l *Loader) processTypes(pkg *types.Package) *PackageInfo {
	if info, ok := l.graph.Packages[pkg.Path()]; ok {
		return info
	}

	info := &PackageInfo{
		Path: pkg.Path(),
		Name: pkg.Name(),
	}
	l.graph.Packages[pkg.Path()] = info

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		ts := SchemaOf(typeName)
		if ts == nil {
			continue
		}

		l.graph.Index.Add(ts)
		info.Types = append(info.Types, name)
	}

	return info
}

// collectComments records the directive comments of a root package.
func (l *Loader) collectComments(pkg *packages.Package, info *PackageInfo) {
	for _, file := range pkg.Syntax {
		for _, group := range file.Comments {
			for _, c := range group.List {
				if !strings.HasPrefix(c.Text, DirectivePrefix) {
					continue
				}

				l.graph.Comments = append(l.graph.Comments, Comment{
					Text:     c.Text,
					Position: pkg.Fset.Position(c.Slash),
					Package:  info,
				})
			}
		}
	}

	sort.SliceStable(l.graph.Comments, func(i, j int) bool {
		a, b := l.graph.Comments[i].Position, l.graph.Comments[j].Position
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}

		return a.Offset < b.Offset
	})
}

// SchemaOf builds the schema of a named, non-generic struct type. It returns
// nil for any other type.
func SchemaOf(tn *types.TypeName) *schema.TypeSchema {
	named, ok := tn.Type().(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return nil
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil
	}

	ts := &schema.TypeSchema{
		Name:    tn.Name(),
		Members: make([]schema.Member, 0, st.NumFields()),
	}

	if pkg := tn.Pkg(); pkg != nil {
		ts.Namespace = pkg.Path()
		ts.Package = pkg.Name()
	}

	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)

		vis := schema.VisibilityInternal
		if field.Exported() {
			vis = schema.VisibilityPublic
		}

		ts.Members = append(ts.Members, schema.Member{
			Name:       field.Name(),
			Type:       typeExpr(field.Type()),
			Visibility: vis,
			// Blank fields only pad or force layout; nothing can read them.
			IsSynthesized: field.Name() == "_",
		})
	}

	return ts
}

// typeExpr renders t qualified by package name and records the packages it
// refers to. The key uses full import paths.
func typeExpr(t types.Type) schema.TypeExpr {
	seen := make(map[string]schema.Import)
	text := types.TypeString(t, func(p *types.Package) string {
		seen[p.Path()] = schema.Import{Name: p.Name(), Path: p.Path()}
		return p.Name()
	})

	expr := schema.TypeExpr{
		Text: text,
		Key:  types.TypeString(t, nil),
	}

	for _, imp := range seen {
		expr.Imports = append(expr.Imports, imp)
	}

	sort.Slice(expr.Imports, func(i, j int) bool {
		return expr.Imports[i].Path < expr.Imports[j].Path
	})

	return expr
}
