package schema

import (
	"fmt"
	"strings"

	"derive-generator/internal/common"
)

// Visibility is the declared accessibility of a member.
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
	VisibilityInternal
	VisibilityProtectedInternal
	VisibilityProtected
	VisibilityPrivateProtected
)

// String returns the declaration keyword(s) for the visibility.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityInternal:
		return "internal"
	case VisibilityProtectedInternal:
		return "protected internal"
	case VisibilityProtected:
		return "protected"
	case VisibilityPrivateProtected:
		return "private protected"
	case VisibilityPrivate:
		return "private"
	default:
		return common.UnknownStr
	}
}

// IsExported reports whether members with this visibility are rendered as
// exported Go identifiers.
func (v Visibility) IsExported() bool {
	return v == VisibilityPublic
}

// ParseVisibility parses a visibility keyword. Words may be separated by a
// space, a dash or an underscore ("protected-internal").
func ParseVisibility(s string) (Visibility, error) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch strings.Join(strings.Fields(norm), " ") {
	case "public", "exported":
		return VisibilityPublic, nil
	case "internal", "unexported":
		return VisibilityInternal, nil
	case "protected internal":
		return VisibilityProtectedInternal, nil
	case "protected":
		return VisibilityProtected, nil
	case "private protected":
		return VisibilityPrivateProtected, nil
	case "private":
		return VisibilityPrivate, nil
	default:
		return VisibilityPrivate, fmt.Errorf("unknown visibility %q", s)
	}
}

// Import is a package referenced by a type expression.
type Import struct {
	Name string // package name, e.g. "store"
	Path string // import path, e.g. "derive-generator/store"
}

// TypeExpr is a type expression as it appears in a member declaration.
type TypeExpr struct {
	// Text is the expression qualified by package name, e.g. "[]store.OrderItem".
	Text string
	// Key is the canonical identity, qualified by import path. Two members have
	// the same declared type exactly when their keys are equal.
	Key string
	// Imports lists the packages Text refers to.
	Imports []Import
}

// Identity returns Key, falling back to Text for expressions without one.
func (e TypeExpr) Identity() string {
	if e.Key != "" {
		return e.Key
	}

	return e.Text
}

// SameType reports whether both expressions denote the same type.
func (e TypeExpr) SameType(other TypeExpr) bool {
	return e.Identity() == other.Identity()
}

// String returns the expression text.
func (e TypeExpr) String() string {
	return e.Text
}

// Member describes a field or property of a source type.
type Member struct {
	Name          string
	Type          TypeExpr
	Visibility    Visibility
	IsStatic      bool
	IsSynthesized bool // declared by the compiler, not by the author (e.g. blank fields)
}

// TypeSchema is the shape of a source type. It is treated as read-only by
// everything downstream of the Provider that produced it.
type TypeSchema struct {
	Name      string
	Namespace string // import path; empty for the global namespace
	Package   string // package name used to qualify Name
	Members   []Member
}

// ID returns the identity of the type: namespace plus name.
func (s *TypeSchema) ID() string {
	if s.Namespace == "" {
		return s.Name
	}

	return s.Namespace + "." + s.Name
}

// String returns the package-qualified display name, e.g. "store.Order".
func (s *TypeSchema) String() string {
	pkg := s.Package
	if pkg == "" {
		pkg = common.PkgAlias(s.Namespace)
	}

	if pkg == "" {
		return s.Name
	}

	return pkg + "." + s.Name
}

// Lookup returns the member with the given name, if any.
func (s *TypeSchema) Lookup(name string) (Member, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m, true
		}
	}

	return Member{}, false
}

// ViewedFrom returns the schema as seen from code in package pkgPath.
// Members with package visibility are private to any other package, so they
// are downgraded to VisibilityPrivate. The receiver is not modified.
func (s *TypeSchema) ViewedFrom(pkgPath string) *TypeSchema {
	if pkgPath == "" || pkgPath == s.Namespace {
		return s
	}

	view := *s
	view.Members = make([]Member, len(s.Members))
	copy(view.Members, s.Members)

	for i := range view.Members {
		if view.Members[i].Visibility == VisibilityInternal {
			view.Members[i].Visibility = VisibilityPrivate
		}
	}

	return &view
}
