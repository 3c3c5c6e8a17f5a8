package derive

import (
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/schema"
)

var (
	intT    = schema.TypeExpr{Text: "int", Key: "int"}
	int64T  = schema.TypeExpr{Text: "int64", Key: "int64"}
	stringT = schema.TypeExpr{Text: "string", Key: "string"}
)

func member(name string, typ schema.TypeExpr, vis schema.Visibility) schema.Member {
	return schema.Member{Name: name, Type: typ, Visibility: vis}
}

func newTestSchema(pkg, name string, members ...schema.Member) *schema.TypeSchema {
	return &schema.TypeSchema{
		Name:      name,
		Namespace: "derive-generator/" + pkg,
		Package:   pkg,
		Members:   members,
	}
}

func orderSchema() *schema.TypeSchema {
	return newTestSchema("store", "Order",
		member("ID", int64T, schema.VisibilityPublic),
		member("CustomerID", int64T, schema.VisibilityPublic),
		member("status", stringT, schema.VisibilityInternal),
		member("TotalCents", int64T, schema.VisibilityPublic),
		member("Audit", stringT, schema.VisibilityProtectedInternal),
		member("secret", stringT, schema.VisibilityPrivate),
		schema.Member{Name: "Registry", Type: stringT, Visibility: schema.VisibilityPublic, IsStatic: true},
		schema.Member{Name: "_", Type: intT, Visibility: schema.VisibilityInternal, IsSynthesized: true},
	)
}

var testLoc = diagnostic.Location{File: "derive.yaml", Line: 4, Column: 5}

func newRequest(s Strategy) *Request {
	return &Request{
		Target:   Target{Name: "Derived", Package: "derive-generator/dto", PkgName: "dto"},
		Location: testLoc,
		Strategy: s,
	}
}
