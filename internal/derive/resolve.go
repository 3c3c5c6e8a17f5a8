package derive

import (
	"fmt"

	"derive-generator/internal/diagnostic"
)

// Message templates, rendered with type and member names.
const (
	msgMissingMember      = "type %q doesn't contain a member named %q"
	msgDuplicateSameType  = "type %q contains a member named %q already declared in another type"
	msgDuplicateDiffType  = "type %q contains a member named %q already declared in another type with a different type"
	msgRepeatedProperty   = "type %q member %q is requested more than once"
	msgFeatureUnsupported = "%q derivation is supported from %s"
	msgVisibilityIgnored  = "type %q contains internal or protected internal members that were ignored"
)

// Resolve computes the resolved schema for req. The returned schema is nil
// when the strategy aborted (see Required); otherwise it may be partial, with
// the skipped entries explained by error diagnostics.
func Resolve(req *Request, caps Capabilities) (*ResolvedSchema, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics
	if req == nil {
		return nil, diags
	}

	var rs *ResolvedSchema

	switch s := req.Strategy.(type) {
	case Select:
		rs = resolveSelect(req, s, &diags)
	case Union:
		rs = resolveUnion(req, s, &diags)
	case Readonly:
		rs = resolveReadonly(req, s)
	case Required:
		rs = resolveRequired(req, s, caps, &diags)
	default:
		// Strategy is sealed; reaching this means a new kind was added without
		// a resolver.
		panic(fmt.Sprintf("derive: unhandled strategy %T", req.Strategy))
	}

	return rs, diags
}

func newSchema(req *Request, kind Kind) *ResolvedSchema {
	return &ResolvedSchema{
		Target: req.Target,
		Kind:   kind,
	}
}
