package schema

// Filter selects which visibilities a catalog admits.
type Filter int

const (
	// FilterPublicOrInternal admits public, internal and protected-internal members.
	FilterPublicOrInternal Filter = iota
	// FilterPublic admits public members only.
	FilterPublic
)

// Admits reports whether a member with visibility v passes the filter.
func (f Filter) Admits(v Visibility) bool {
	switch f {
	case FilterPublic:
		return v == VisibilityPublic
	case FilterPublicOrInternal:
		return v == VisibilityPublic || v == VisibilityInternal || v == VisibilityProtectedInternal
	default:
		return false
	}
}

// Catalog returns the members of ts eligible under filter, in declaration
// order. Static and synthesized members are never eligible.
func Catalog(ts *TypeSchema, filter Filter) []Member {
	if ts == nil {
		return nil
	}

	out := make([]Member, 0, len(ts.Members))
	for _, m := range ts.Members {
		if !eligible(m) || !filter.Admits(m.Visibility) {
			continue
		}

		out = append(out, m)
	}

	return out
}

// HasHidden reports whether ts declares an eligible member that a public-only
// catalog would leave out because it is internal or protected-internal.
func HasHidden(ts *TypeSchema) bool {
	if ts == nil {
		return false
	}

	for _, m := range ts.Members {
		if !eligible(m) {
			continue
		}

		if m.Visibility == VisibilityInternal || m.Visibility == VisibilityProtectedInternal {
			return true
		}
	}

	return false
}

func eligible(m Member) bool {
	return !m.IsStatic && !m.IsSynthesized
}
