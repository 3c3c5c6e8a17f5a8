package derive

import (
	"fmt"

	"derive-generator/internal/diagnostic"
	"derive-generator/internal/match"
	"derive-generator/internal/schema"
)

// resolveSelect copies the requested members in request order. Names missing
// from the catalog are reported and skipped; the rest still resolve.
func resolveSelect(req *Request, s Select, diags *diagnostic.Diagnostics) *ResolvedSchema {
	rs := newSchema(req, KindSelect)
	rs.Sources = []*schema.TypeSchema{s.Source}

	catalog := schema.Catalog(s.Source, schema.FilterPublicOrInternal)
	seen := make(map[string]struct{}, len(s.Properties))

	for _, name := range s.Properties {
		m, ok := findMember(catalog, name)
		if !ok {
			diags.AddError(diagnostic.MissingMember, req.Location, msgMissingMember, s.Source.String(), name)

			if alt, ok := match.Suggest(name, memberNames(catalog)); ok {
				diags.Hint(fmt.Sprintf("did you mean %q?", alt))
			}

			continue
		}

		if _, dup := seen[name]; dup {
			diags.AddWarning(diagnostic.RepeatedProperty, req.Location, msgRepeatedProperty, s.Source.String(), name)
			continue
		}

		seen[name] = struct{}{}
		rs.Members = append(rs.Members, resolvedFrom(m, 1))
	}

	return rs
}

func findMember(catalog []schema.Member, name string) (schema.Member, bool) {
	for _, m := range catalog {
		if m.Name == name {
			return m, true
		}
	}

	return schema.Member{}, false
}

func memberNames(catalog []schema.Member) []string {
	out := make([]string, len(catalog))
	for i, m := range catalog {
		out[i] = m.Name
	}

	return out
}
