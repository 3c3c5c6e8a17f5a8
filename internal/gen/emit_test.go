package gen

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/derive"
	"derive-generator/internal/schema"
)

const dtoPath = "derive-generator/dto"

var (
	storeImport     = schema.Import{Name: "store", Path: "derive-generator/store"}
	warehouseImport = schema.Import{Name: "warehouse", Path: "derive-generator/warehouse"}

	int64T  = schema.TypeExpr{Text: "int64", Key: "int64"}
	stringT = schema.TypeExpr{Text: "string", Key: "string"}
	statusT = schema.TypeExpr{
		Text:    "store.OrderStatus",
		Key:     "derive-generator/store.OrderStatus",
		Imports: []schema.Import{storeImport},
	}
)

func source(imp schema.Import, name string) *schema.TypeSchema {
	return &schema.TypeSchema{Name: name, Namespace: imp.Path, Package: imp.Name}
}

func resolved(kind derive.Kind, sources []*schema.TypeSchema, members ...derive.ResolvedMember) *derive.ResolvedSchema {
	return &derive.ResolvedSchema{
		Target:  derive.Target{Name: "Derived", Package: dtoPath, PkgName: "dto"},
		Kind:    kind,
		Members: members,
		Sources: sources,
	}
}

func mutable(name string, typ schema.TypeExpr, vis schema.Visibility) derive.ResolvedMember {
	return derive.ResolvedMember{Name: name, Type: typ, Visibility: vis, Mutable: true, SourceIndex: 1}
}

func getOnly(name string, typ schema.TypeExpr, vis schema.Visibility) derive.ResolvedMember {
	return derive.ResolvedMember{Name: name, Type: typ, Visibility: vis, SourceIndex: 1}
}

func TestEmit_Select(t *testing.T) {
	rs := resolved(derive.KindSelect, []*schema.TypeSchema{source(storeImport, "Order")},
		mutable("ID", int64T, schema.VisibilityPublic),
		mutable("Status", statusT, schema.VisibilityPublic),
	)
	rs.Target.Name = "OrderSummary"

	out, err := Emit(rs)
	require.NoError(t, err)

	assert.Equal(t, "// OrderSummary picks members of store.Order.\n"+
		"type OrderSummary struct {\n"+
		"\tID int64\n"+
		"\tStatus store.OrderStatus\n"+
		"}\n", out.Properties)

	assert.Equal(t, "// NewOrderSummary creates a OrderSummary from its source values.\n"+
		"func NewOrderSummary(value_1 store.Order) OrderSummary {\n"+
		"\treturn OrderSummary{\n"+
		"\t\tID: value_1.ID,\n"+
		"\t\tStatus: value_1.Status,\n"+
		"\t}\n"+
		"}\n", out.Constructor)

	assert.Empty(t, out.Accessors)
	assert.Empty(t, out.Validate)
	assert.Equal(t, []schema.Import{storeImport}, out.Imports)
}

func TestEmit_ReadonlyAccessors(t *testing.T) {
	rs := resolved(derive.KindReadonly, []*schema.TypeSchema{source(storeImport, "Order")},
		getOnly("ID", int64T, schema.VisibilityPublic),
		getOnly("status", stringT, schema.VisibilityInternal),
		getOnly("Type", stringT, schema.VisibilityPublic),
	)

	out, err := Emit(rs)
	require.NoError(t, err)

	assert.Contains(t, out.Properties, "// Derived is a read-only view of store.Order.\n")
	assert.Contains(t, out.Properties, "\tid int64\n")
	assert.Contains(t, out.Properties, "\tstatus string\n")
	assert.Contains(t, out.Properties, "\ttypeValue string\n")

	assert.Equal(t, "// ID returns the ID member.\n"+
		"func (d Derived) ID() int64 {\n"+
		"\treturn d.id\n"+
		"}\n"+
		"\n"+
		"// Type returns the Type member.\n"+
		"func (d Derived) Type() string {\n"+
		"\treturn d.typeValue\n"+
		"}\n", out.Accessors)

	assert.Contains(t, out.Constructor, "\t\tid: value_1.ID,\n")
	assert.Contains(t, out.Constructor, "\t\tstatus: value_1.status,\n")
	assert.Contains(t, out.Constructor, "\t\ttypeValue: value_1.Type,\n")
}

func TestEmit_BackingFieldYieldsToVisibleNames(t *testing.T) {
	rs := resolved(derive.KindReadonly, []*schema.TypeSchema{source(storeImport, "Order")},
		getOnly("Id", int64T, schema.VisibilityPublic),
		getOnly("id", int64T, schema.VisibilityInternal),
	)

	out, err := Emit(rs)
	require.NoError(t, err)

	assert.Contains(t, out.Properties, "\tidValue int64\n")
	assert.Contains(t, out.Properties, "\tid int64\n")
	assert.Contains(t, out.Accessors, "\treturn d.idValue\n")
	assert.Contains(t, out.Constructor, "\t\tidValue: value_1.Id,\n")
	assert.Contains(t, out.Constructor, "\t\tid: value_1.id,\n")
}

func TestEmit_RequiredValidate(t *testing.T) {
	email := mutable("Email", stringT, schema.VisibilityPublic)
	email.Mandatory = true
	id := mutable("ID", int64T, schema.VisibilityPublic)
	id.Mandatory = true

	rs := resolved(derive.KindRequired, []*schema.TypeSchema{source(storeImport, "Customer")}, id, email)
	rs.Target.Name = "CustomerDraft"

	out, err := Emit(rs)
	require.NoError(t, err)

	assert.Contains(t, out.Properties, "// CustomerDraft requires every exported member of store.Customer.\n")
	assert.Contains(t, out.Properties, "\tEmail string `validate:\"required\"`\n")

	assert.Equal(t, "// Validate reports the mandatory members of CustomerDraft that are not set.\n"+
		"func (c CustomerDraft) Validate() error {\n"+
		"\tvar errs []error\n"+
		"\tif reflect.ValueOf(&c.ID).Elem().IsZero() {\n"+
		"\t\terrs = append(errs, errors.New(\"CustomerDraft.ID is required\"))\n"+
		"\t}\n"+
		"\tif reflect.ValueOf(&c.Email).Elem().IsZero() {\n"+
		"\t\terrs = append(errs, errors.New(\"CustomerDraft.Email is required\"))\n"+
		"\t}\n"+
		"\n"+
		"\treturn errors.Join(errs...)\n"+
		"}\n", out.Validate)

	assert.Equal(t, []schema.Import{
		storeImport,
		{Name: "errors", Path: "errors"},
		{Name: "reflect", Path: "reflect"},
	}, out.Imports)
}

func TestEmit_RequiredInterfaceMember(t *testing.T) {
	meta := mutable("Meta", schema.TypeExpr{Text: "any", Key: "any"}, schema.VisibilityPublic)
	meta.Mandatory = true

	out, err := Emit(resolved(derive.KindRequired, []*schema.TypeSchema{source(storeImport, "Customer")}, meta))
	require.NoError(t, err)
	assert.Contains(t, out.Validate, "\tif reflect.ValueOf(&d.Meta).Elem().IsZero() {\n")

	// The rendered check on an unset interface member reports it instead of
	// panicking on the zero reflect.Value.
	var d struct{ Meta any }
	assert.NotPanics(t, func() {
		assert.True(t, reflect.ValueOf(&d.Meta).Elem().IsZero())
	})

	d.Meta = 0
	assert.False(t, reflect.ValueOf(&d.Meta).Elem().IsZero())
}

func TestEmit_UnionParameters(t *testing.T) {
	carrier := mutable("Carrier", stringT, schema.VisibilityPublic)
	carrier.SourceIndex = 2

	rs := resolved(derive.KindUnion,
		[]*schema.TypeSchema{source(storeImport, "Order"), source(warehouseImport, "Shipment")},
		mutable("ID", int64T, schema.VisibilityPublic),
		carrier,
	)

	out, err := Emit(rs)
	require.NoError(t, err)

	assert.Contains(t, out.Properties, "// Derived merges the members of store.Order and warehouse.Shipment.\n")
	assert.Contains(t, out.Constructor, "func NewDerived(value_1 store.Order, value_2 warehouse.Shipment) Derived {\n")
	assert.Contains(t, out.Constructor, "\t\tCarrier: value_2.Carrier,\n")
	assert.Equal(t, []schema.Import{storeImport, warehouseImport}, out.Imports)
}

func TestEmit_SamePackageTypesAreUnqualified(t *testing.T) {
	dto := schema.Import{Name: "dto", Path: dtoPath}
	items := schema.TypeExpr{Text: "[]dto.Item", Key: "[]derive-generator/dto.Item", Imports: []schema.Import{dto}}

	rs := resolved(derive.KindSelect, []*schema.TypeSchema{source(dto, "Ledger")},
		mutable("Items", items, schema.VisibilityPublic),
	)

	out, err := Emit(rs)
	require.NoError(t, err)

	assert.Contains(t, out.Properties, "\tItems []Item\n")
	assert.Contains(t, out.Constructor, "func NewDerived(value_1 Ledger) Derived {\n")
	assert.Empty(t, out.Imports)
}

func TestEmit_RenderedVisibility(t *testing.T) {
	rs := resolved(derive.KindSelect, []*schema.TypeSchema{source(storeImport, "Order")},
		mutable("Audit", stringT, schema.VisibilityProtectedInternal),
		mutable("note", stringT, schema.VisibilityPublic),
	)

	out, err := Emit(rs)
	require.NoError(t, err)

	assert.Contains(t, out.Properties, "\taudit string // protected internal\n")
	assert.Contains(t, out.Properties, "\tNote string\n")
	assert.Contains(t, out.Constructor, "\t\taudit: value_1.Audit,\n")
	assert.Contains(t, out.Constructor, "\t\tNote: value_1.note,\n")
}

func TestEmit_UnexportedTarget(t *testing.T) {
	rs := resolved(derive.KindReadonly, []*schema.TypeSchema{source(storeImport, "Order")})
	rs.Target.Name = "orderRow"

	out, err := Emit(rs)
	require.NoError(t, err)

	assert.Contains(t, out.Constructor, "func newOrderRow(value_1 store.Order) orderRow {\n\treturn orderRow{}\n}\n")
	assert.Contains(t, out.Properties, "type orderRow struct {\n}\n")
}

func TestEmit_Errors(t *testing.T) {
	_, err := Emit(nil)
	require.Error(t, err)

	other := schema.Import{Name: "store", Path: "example.com/legacy/store"}
	clash := schema.TypeExpr{Text: "store.Code", Key: "example.com/legacy/store.Code", Imports: []schema.Import{other}}

	rs := resolved(derive.KindSelect, []*schema.TypeSchema{source(storeImport, "Order")},
		mutable("Code", clash, schema.VisibilityPublic),
	)

	_, err = Emit(rs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refers to both")

	validate := mutable("Validate", stringT, schema.VisibilityPublic)
	validate.Mandatory = true

	_, err = Emit(resolved(derive.KindRequired, []*schema.TypeSchema{source(storeImport, "Order")}, validate))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validate")
}

func TestEmit_Idempotent(t *testing.T) {
	rs := resolved(derive.KindReadonly, []*schema.TypeSchema{source(storeImport, "Order")},
		getOnly("ID", int64T, schema.VisibilityPublic),
		getOnly("Status", statusT, schema.VisibilityPublic),
	)

	first, err := Emit(rs)
	require.NoError(t, err)

	second, err := Emit(rs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
