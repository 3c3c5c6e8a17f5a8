package derive

import (
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/schema"
)

// resolveRequired projects the public members as mandatory. Without toolchain
// support it aborts: one error, no schema.
func resolveRequired(req *Request, s Required, caps Capabilities, diags *diagnostic.Diagnostics) *ResolvedSchema {
	if !caps.MandatoryFields {
		diags.AddError(diagnostic.FeatureUnsupported, req.Location, msgFeatureUnsupported,
			KindRequired.String(), MandatoryFieldsSince)

		return nil
	}

	rs := newSchema(req, KindRequired)
	rs.Sources = []*schema.TypeSchema{s.Source}

	for _, m := range schema.Catalog(s.Source, schema.FilterPublic) {
		rm := resolvedFrom(m, 1)
		rm.Mandatory = true
		rs.Members = append(rs.Members, rm)
	}

	if schema.HasHidden(s.Source) {
		diags.AddWarning(diagnostic.VisibilityIgnored, req.Location, msgVisibilityIgnored, s.Source.String())
	}

	return rs
}
