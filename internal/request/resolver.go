package request

import (
	"errors"
	"fmt"
	"strings"

	"derive-generator/internal/common"
	"derive-generator/internal/derive"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/match"
	"derive-generator/internal/schema"
)

var (
	ErrNoTarget       = errors.New("target name is required")
	ErrUnknownKind    = errors.New("unknown strategy")
	ErrNoSource       = errors.New("at least one source type is required")
	ErrTooManySources = errors.New("strategy takes exactly one source type")
	ErrNoProperties   = errors.New("pick needs at least one property")
	ErrUnexpectedProp = errors.New("properties are only valid for pick")
)

// ResolutionError reports an annotation that cannot become a request. It is
// fatal for its target only.
type ResolutionError struct {
	Target   string
	Location diagnostic.Location
	Err      error
}

// Error implements error.
func (e *ResolutionError) Error() string {
	var sb strings.Builder
	if loc := e.Location.String(); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(": ")
	}

	if e.Target != "" {
		fmt.Fprintf(&sb, "resolving %s: ", e.Target)
	}

	sb.WriteString(e.Err.Error())

	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ParseKind maps a strategy keyword to its Kind.
func ParseKind(s string) (derive.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pick", "select":
		return derive.KindSelect, nil
	case "union", "merge":
		return derive.KindUnion, nil
	case "readonly", "read-only":
		return derive.KindReadonly, nil
	case "required":
		return derive.KindRequired, nil
	default:
		if alt, ok := match.Suggest(s, kindKeywords); ok {
			return 0, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownKind, s, alt)
		}

		return 0, fmt.Errorf("%w %q", ErrUnknownKind, s)
	}
}

var kindKeywords = []string{"pick", "union", "readonly", "required"}

// Resolver builds derive.Request values from annotations.
type Resolver struct {
	provider schema.Provider
}

// NewResolver creates a Resolver looking sources up through p.
func NewResolver(p schema.Provider) *Resolver {
	return &Resolver{provider: p}
}

// Resolve parses ann into a request. Sources are looked up as seen from the
// target package. Any failure is a *ResolutionError.
func (r *Resolver) Resolve(ann Annotation) (*derive.Request, error) {
	fail := func(err error) (*derive.Request, error) {
		return nil, &ResolutionError{Target: ann.Target.Name, Location: ann.Location, Err: err}
	}

	if ann.Target.Name == "" {
		return fail(ErrNoTarget)
	}

	kind, err := ParseKind(ann.Kind)
	if err != nil {
		return fail(err)
	}

	if common.IsEmpty(ann.Sources) {
		return fail(ErrNoSource)
	}

	if kind != derive.KindUnion && !common.IsSingle(ann.Sources) {
		return fail(fmt.Errorf("%w, got %d", ErrTooManySources, len(ann.Sources)))
	}

	if kind != derive.KindSelect && !common.IsEmpty(ann.Properties) {
		return fail(ErrUnexpectedProp)
	}

	provider := schema.ViewProvider{Provider: r.provider, From: ann.Target.Package}

	sources := make([]*schema.TypeSchema, 0, len(ann.Sources))
	for _, ref := range ann.Sources {
		ts, err := provider.Lookup(ref)
		if err != nil {
			return fail(err)
		}

		sources = append(sources, ts)
	}

	target := ann.Target
	if target.PkgName == "" {
		target.PkgName = common.PkgAlias(target.Package)
	}

	req := &derive.Request{Target: target, Location: ann.Location}

	switch kind {
	case derive.KindSelect:
		if common.IsEmpty(ann.Properties) {
			return fail(ErrNoProperties)
		}

		req.Strategy = derive.Select{Source: sources[0], Properties: append([]string(nil), ann.Properties...)}
	case derive.KindUnion:
		req.Strategy = derive.Union{Sources: sources}
	case derive.KindReadonly:
		req.Strategy = derive.Readonly{Source: sources[0]}
	case derive.KindRequired:
		req.Strategy = derive.Required{Source: sources[0]}
	}

	return req, nil
}
