package request

import (
	"fmt"

	"derive-generator/internal/common"
	"derive-generator/internal/schema"
)

// StaticSchemas builds a provider over the schemas declared in the file.
func (f *File) StaticSchemas() (*schema.Index, error) {
	idx := schema.NewIndex()

	for _, decl := range f.Schemas {
		ts, err := decl.TypeSchema()
		if err != nil {
			return nil, err
		}

		idx.Add(ts)
	}

	return idx, nil
}

// TypeSchema converts the declaration into a schema snapshot.
func (d SchemaDecl) TypeSchema() (*schema.TypeSchema, error) {
	ts := &schema.TypeSchema{
		Name:      d.Name,
		Namespace: d.Package,
		Package:   d.PackageName,
		Members:   make([]schema.Member, 0, len(d.Members)),
	}

	for _, m := range d.Members {
		vis := schema.VisibilityPublic
		if m.Visibility != "" {
			v, err := schema.ParseVisibility(m.Visibility)
			if err != nil {
				return nil, fmt.Errorf("schema %s member %s: %w", d.Name, m.Name, err)
			}

			vis = v
		}

		if m.Name == "" || m.Type == "" {
			return nil, fmt.Errorf("schema %s: members need a name and a type", d.Name)
		}

		expr := schema.TypeExpr{Text: m.Type, Key: m.Type}
		for _, imp := range m.Imports {
			name := imp.Name
			if name == "" {
				name = common.PkgAlias(imp.Path)
			}

			expr.Imports = append(expr.Imports, schema.Import{Name: name, Path: imp.Path})
		}

		ts.Members = append(ts.Members, schema.Member{
			Name:          m.Name,
			Type:          expr,
			Visibility:    vis,
			IsStatic:      m.Static,
			IsSynthesized: m.Synthesized,
		})
	}

	return ts, nil
}
