package derive

import (
	"derive-generator/internal/schema"
)

// resolveReadonly projects the whole catalog, in declaration order, as get-only.
func resolveReadonly(req *Request, s Readonly) *ResolvedSchema {
	rs := newSchema(req, KindReadonly)
	rs.Sources = []*schema.TypeSchema{s.Source}

	for _, m := range schema.Catalog(s.Source, schema.FilterPublicOrInternal) {
		rm := resolvedFrom(m, 1)
		rm.Mutable = false
		rs.Members = append(rs.Members, rm)
	}

	return rs
}
