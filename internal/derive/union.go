package derive

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"derive-generator/internal/diagnostic"
	"derive-generator/internal/schema"
)

// unionState is the per-invocation bookkeeping of resolveUnion.
type unionState struct {
	// positions maps a source ID to its 1-based constructor position.
	positions map[string]int
	// members holds the first mapping recorded for each name, in first-seen order.
	members *orderedmap.OrderedMap[string, ResolvedMember]
}

// resolveUnion merges the catalogs of the distinct sources. The first source
// to declare a name owns it; later declarations are reported and dropped.
func resolveUnion(req *Request, u Union, diags *diagnostic.Diagnostics) *ResolvedSchema {
	rs := newSchema(req, KindUnion)
	st := unionState{
		positions: make(map[string]int, len(u.Sources)),
		members:   orderedmap.New[string, ResolvedMember](),
	}

	for _, src := range u.Sources {
		if src == nil {
			continue
		}

		if _, dup := st.positions[src.ID()]; dup {
			continue
		}

		rs.Sources = append(rs.Sources, src)
		pos := len(rs.Sources)
		st.positions[src.ID()] = pos

		for _, m := range schema.Catalog(src, schema.FilterPublicOrInternal) {
			prev, seen := st.members.Get(m.Name)

			switch {
			case !seen:
				st.members.Set(m.Name, resolvedFrom(m, pos))
			case prev.Type.SameType(m.Type):
				diags.AddWarning(diagnostic.DuplicateMemberSameType, req.Location, msgDuplicateSameType, src.String(), m.Name)
			default:
				diags.AddError(diagnostic.DuplicateMemberDifferentType, req.Location, msgDuplicateDiffType, src.String(), m.Name)
			}
		}
	}

	rs.Members = make([]ResolvedMember, 0, st.members.Len())
	for pair := st.members.Oldest(); pair != nil; pair = pair.Next() {
		rs.Members = append(rs.Members, pair.Value)
	}

	return rs
}
