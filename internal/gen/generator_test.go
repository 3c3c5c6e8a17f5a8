package gen

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/common"
	"derive-generator/internal/derive"
	"derive-generator/internal/schema"
)

func customerDraft() *derive.ResolvedSchema {
	email := mutable("Email", stringT, schema.VisibilityPublic)
	email.Mandatory = true

	rs := resolved(derive.KindRequired, []*schema.TypeSchema{source(storeImport, "Customer")}, email)
	rs.Target.Name = "CustomerDraft"

	return rs
}

func TestGenerator_GenerateFile(t *testing.T) {
	g := NewGenerator(GeneratorConfig{
		OutputDir:   "out",
		PackageDirs: map[string]string{dtoPath: filepath.Join("examples", "dto")},
	})

	file, err := g.GenerateFile(customerDraft())
	require.NoError(t, err)

	assert.Equal(t, "customer_draft_derived.go", file.Filename)
	assert.Equal(t, filepath.Join("examples", "dto"), file.Dir)
	assert.Equal(t, dtoPath, file.Package)

	src := string(file.Content)
	assert.Contains(t, src, "// Code generated by derive-generator. DO NOT EDIT.\n\npackage dto\n")
	assert.Contains(t, src, "import (\n\t\"derive-generator/store\"\n\t\"errors\"\n\t\"reflect\"\n)\n")
	assert.Contains(t, src, "func NewCustomerDraft(value_1 store.Customer) CustomerDraft {")
	assert.Contains(t, src, "func (c CustomerDraft) Validate() error {")

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file.Filename, file.Content, parser.ParseComments)
	require.NoError(t, err)
	assert.Equal(t, "dto", f.Name.Name)
	assert.Len(t, f.Imports, 3)
}

func TestGenerator_GenerateFileAlias(t *testing.T) {
	v2 := schema.Import{Name: "orders", Path: "example.com/orders/v2"}
	rs := resolved(derive.KindSelect, []*schema.TypeSchema{source(v2, "Order")},
		mutable("ID", int64T, schema.VisibilityPublic),
	)

	file, err := NewGenerator(DefaultGeneratorConfig()).GenerateFile(rs)
	require.NoError(t, err)

	assert.Equal(t, ".", file.Dir)
	assert.Contains(t, string(file.Content), "\torders \"example.com/orders/v2\"\n")
}

func TestGenerator_Generate(t *testing.T) {
	readonly := resolved(derive.KindReadonly, []*schema.TypeSchema{source(storeImport, "Order")},
		getOnly("ID", int64T, schema.VisibilityPublic),
	)
	readonly.Target.Name = "OrderView"

	g := NewGenerator(DefaultGeneratorConfig())

	files, err := g.Generate([]*derive.ResolvedSchema{customerDraft(), nil, readonly})
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "customer_draft_derived.go", files[0].Filename)
	assert.Equal(t, "order_view_derived.go", files[1].Filename)

	again, err := g.Generate([]*derive.ResolvedSchema{customerDraft(), nil, readonly})
	require.NoError(t, err)
	assert.Equal(t, files, again)

	_, err = g.Generate([]*derive.ResolvedSchema{readonly, readonly})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
}

func TestGenerator_GenerateSamePath(t *testing.T) {
	summary := func(pkg, name string) *derive.ResolvedSchema {
		rs := resolved(derive.KindSelect, []*schema.TypeSchema{source(storeImport, "Order")},
			mutable("ID", int64T, schema.VisibilityPublic),
		)
		rs.Target = derive.Target{Name: name, Package: pkg, PkgName: common.PkgAlias(pkg)}

		return rs
	}

	tests := []struct {
		name    string
		schemas []*derive.ResolvedSchema
	}{
		{
			name:    "same name in two packages",
			schemas: []*derive.ResolvedSchema{summary("example.com/a", "Summary"), summary("example.com/b", "Summary")},
		},
		{
			name:    "names with the same file name",
			schemas: []*derive.ResolvedSchema{summary(dtoPath, "OrderSummary"), summary(dtoPath, "Order_Summary")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := t.TempDir()

			_, err := NewGenerator(GeneratorConfig{OutputDir: out}).Generate(tt.schemas)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "are both written to "+out)
		})
	}

	files, err := NewGenerator(GeneratorConfig{PackageDirs: map[string]string{
		"example.com/a": "a",
		"example.com/b": "b",
	}}).Generate([]*derive.ResolvedSchema{summary("example.com/a", "Summary"), summary("example.com/b", "Summary")})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a", files[0].Dir)
	assert.Equal(t, "b", files[1].Dir)
}

func TestGenerator_FormatFailure(t *testing.T) {
	dir := t.TempDir()

	rs := resolved(derive.KindSelect, []*schema.TypeSchema{source(storeImport, "Order")},
		mutable("Bad Name", stringT, schema.VisibilityPublic),
	)

	g := NewGenerator(GeneratorConfig{OutputDir: dir, DebugUnformatted: true})

	file, err := g.GenerateFile(rs)
	require.Error(t, err)
	require.NotNil(t, file)
	assert.Contains(t, err.Error(), "formatting code")
	assert.Contains(t, string(file.Content), "Bad Name")

	debug, err := os.ReadFile(filepath.Join(dir, "derived_derived.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, file.Content, debug)

	_, err = g.Generate([]*derive.ResolvedSchema{rs})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generating Derived")
}

func TestWriteFiles(t *testing.T) {
	root := t.TempDir()
	own := filepath.Join(root, "dto")

	files := []GeneratedFile{
		{Filename: "a_derived.go", Content: []byte("package out\n")},
		{Dir: own, Filename: "b_derived.go", Content: []byte("package dto\n")},
	}

	require.NoError(t, WriteFiles(files, filepath.Join(root, "out")))

	a, err := os.ReadFile(filepath.Join(root, "out", "a_derived.go"))
	require.NoError(t, err)
	assert.Equal(t, "package out\n", string(a))

	b, err := os.ReadFile(filepath.Join(own, "b_derived.go"))
	require.NoError(t, err)
	assert.Equal(t, "package dto\n", string(b))
}
