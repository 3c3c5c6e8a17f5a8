package derive

import (
	"derive-generator/internal/schema"
)

// ResolvedMember is one member of the derived type.
type ResolvedMember struct {
	Name       string
	Type       schema.TypeExpr
	Visibility schema.Visibility
	// Mutable members are settable; the others are get-only.
	Mutable bool
	// Mandatory members must be set before the value is used.
	Mandatory bool
	// SourceIndex is the 1-based position in ResolvedSchema.Sources of the
	// source that initializes this member.
	SourceIndex int
}

// ResolvedSchema is the final shape of a derived type.
type ResolvedSchema struct {
	Target Target
	Kind   Kind
	// Members in output order. Names are unique.
	Members []ResolvedMember
	// Sources are the distinct source types, in first-occurrence order. They
	// become the constructor parameters.
	Sources []*schema.TypeSchema
}

// Member returns the resolved member with the given name, if any.
func (rs *ResolvedSchema) Member(name string) (ResolvedMember, bool) {
	for _, m := range rs.Members {
		if m.Name == name {
			return m, true
		}
	}

	return ResolvedMember{}, false
}

// Names returns the member names in order.
func (rs *ResolvedSchema) Names() []string {
	out := make([]string, 0, len(rs.Members))
	for _, m := range rs.Members {
		out = append(out, m.Name)
	}

	return out
}

func resolvedFrom(m schema.Member, sourceIndex int) ResolvedMember {
	return ResolvedMember{
		Name:        m.Name,
		Type:        m.Type,
		Visibility:  m.Visibility,
		Mutable:     true,
		SourceIndex: sourceIndex,
	}
}
