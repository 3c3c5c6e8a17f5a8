package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/derive"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/request"
	"derive-generator/internal/schema"
)

func testProvider() schema.Provider {
	int64T := schema.TypeExpr{Text: "int64", Key: "int64"}
	uintT := schema.TypeExpr{Text: "uint", Key: "uint"}
	stringT := schema.TypeExpr{Text: "string", Key: "string"}

	return schema.NewIndex(
		&schema.TypeSchema{Name: "Order", Namespace: "derive-generator/store", Package: "store", Members: []schema.Member{
			{Name: "ID", Type: int64T, Visibility: schema.VisibilityPublic},
			{Name: "Carrier", Type: stringT, Visibility: schema.VisibilityPublic},
			{Name: "TotalCents", Type: int64T, Visibility: schema.VisibilityPublic},
		}},
		&schema.TypeSchema{Name: "Shipment", Namespace: "derive-generator/warehouse", Package: "warehouse", Members: []schema.Member{
			{Name: "ID", Type: uintT, Visibility: schema.VisibilityPublic},
			{Name: "Carrier", Type: stringT, Visibility: schema.VisibilityPublic},
		}},
	)
}

func ann(name, kind string, sources []string, props ...string) request.Annotation {
	return request.Annotation{
		Target:     derive.Target{Name: name, Package: "derive-generator/dto"},
		Kind:       kind,
		Sources:    sources,
		Properties: props,
		Location:   diagnostic.Location{File: "derive.yaml", Line: 1},
	}
}

func TestRun(t *testing.T) {
	anns := []request.Annotation{
		ann("Summary", "pick", []string{"store.Order"}, "TotalCents", "Missing"),
		ann("Broken", "readonly", []string{"store.Nope"}),
		ann("Merged", "union", []string{"store.Order", "warehouse.Shipment"}),
		ann("Draft", "required", []string{"store.Order"}),
	}

	results, err := Run(context.Background(), anns, Options{
		Provider:     testProvider(),
		Capabilities: derive.Capabilities{MandatoryFields: true},
		Workers:      2,
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	summary := results[0]
	require.NotNil(t, summary.Schema)
	assert.Equal(t, []string{"TotalCents"}, summary.Schema.Names())
	assert.Equal(t, 1, summary.Diagnostics.Count(diagnostic.MissingMember))
	assert.False(t, summary.OK())

	broken := results[1]
	assert.Nil(t, broken.Schema)
	assert.Nil(t, broken.Request)

	var resErr *request.ResolutionError
	require.True(t, errors.As(broken.Err, &resErr))
	assert.Equal(t, "Broken", resErr.Target)
	assert.ErrorIs(t, broken.Err, schema.ErrTypeNotFound)

	merged := results[2]
	require.NotNil(t, merged.Schema)
	assert.Equal(t, []string{"ID", "Carrier", "TotalCents"}, merged.Schema.Names())
	assert.Equal(t, 1, merged.Diagnostics.Count(diagnostic.DuplicateMemberDifferentType))
	assert.Equal(t, 1, merged.Diagnostics.Count(diagnostic.DuplicateMemberSameType))

	draft := results[3]
	assert.True(t, draft.OK())
	assert.Equal(t, derive.KindRequired, draft.Schema.Kind)

	assert.Len(t, Schemas(results), 3)
	assert.Len(t, Errors(results), 1)

	all := Diagnostics(results)
	assert.Equal(t, 3, all.Len())
	assert.Equal(t, diagnostic.MissingMember, all.Items[0].Code)
}

func TestRun_RequiredGate(t *testing.T) {
	results, err := Run(context.Background(), []request.Annotation{
		ann("Draft", "required", []string{"store.Order"}),
	}, Options{Provider: testProvider()})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Nil(t, results[0].Schema)
	assert.Equal(t, 1, results[0].Diagnostics.Count(diagnostic.FeatureUnsupported))
}

func TestRun_OrderIndependentOfWorkers(t *testing.T) {
	var anns []request.Annotation
	for i := range 50 {
		anns = append(anns, ann(fmt.Sprintf("View%d", i), "readonly", []string{"store.Order"}))
	}

	want, err := Run(context.Background(), anns, Options{Provider: testProvider(), Workers: 1})
	require.NoError(t, err)

	got, err := Run(context.Background(), anns, Options{Provider: testProvider(), Workers: 8})
	require.NoError(t, err)

	require.Len(t, got, len(want))

	for i := range want {
		assert.Equal(t, fmt.Sprintf("View%d", i), got[i].Schema.Target.Name)
		assert.Equal(t, want[i].Schema, got[i].Schema)
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, []request.Annotation{ann("View", "readonly", []string{"store.Order"})}, Options{Provider: testProvider()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_NoProvider(t *testing.T) {
	_, err := Run(context.Background(), nil, Options{})
	require.Error(t, err)
}
