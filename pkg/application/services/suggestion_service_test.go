package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factorykit/planner/pkg/domain/entities"
	"github.com/factorykit/planner/pkg/infrastructure/repositories/memory"
)

func seedCatalog(t *testing.T) (*memory.Store, *CatalogService) {
	t.Helper()
	store := memory.NewStore()
	catalog := NewCatalogService(store, store)
	return store, catalog
}

func TestSuggestionService_Suggest(t *testing.T) {
	ctx := context.Background()
	store, catalog := seedCatalog(t)

	matA, err := catalog.CreateMaterial(ctx, MaterialInput{Code: "A", Name: "Material A", StockQuantity: 10})
	require.NoError(t, err)
	matB, err := catalog.CreateMaterial(ctx, MaterialInput{Code: "B", Name: "Material B", StockQuantity: 5})
	require.NoError(t, err)

	p1, err := catalog.CreateProduct(ctx, ProductInput{
		Code:      "P1",
		Name:      "Product One",
		Price:     decimal.NewFromInt(10),
		Materials: []BOMLineInput{{MaterialID: matA.ID, QuantityRequired: 2}},
	})
	require.NoError(t, err)
	p2, err := catalog.CreateProduct(ctx, ProductInput{
		Code:      "P2",
		Name:      "Product Two",
		Price:     decimal.NewFromInt(5),
		Materials: []BOMLineInput{{MaterialID: matB.ID, QuantityRequired: 1}},
	})
	require.NoError(t, err)

	svc := NewSuggestionService(store, nil)
	plan, err := svc.Suggest(ctx)
	require.NoError(t, err)

	require.Len(t, plan.Items, 2)
	assert.Equal(t, p1.Product.ID, plan.Items[0].ProductID)
	assert.Equal(t, "Product One", plan.Items[0].ProductName)
	assert.Equal(t, entities.Quantity(5), plan.Items[0].Quantity)
	assert.True(t, plan.Items[0].TotalValue.Equal(decimal.NewFromInt(50)))

	assert.Equal(t, p2.Product.ID, plan.Items[1].ProductID)
	assert.Equal(t, entities.Quantity(5), plan.Items[1].Quantity)
	assert.True(t, plan.TotalValue.Equal(decimal.NewFromInt(75)))
}

func TestSuggestionService_EmptyCatalog(t *testing.T) {
	ctx := context.Background()
	store, _ := seedCatalog(t)

	svc := NewSuggestionService(store, nil)
	plan, err := svc.Suggest(ctx)
	require.NoError(t, err)

	assert.Empty(t, plan.Items)
	assert.True(t, plan.TotalValue.IsZero())
}

func TestSuggestionService_AdvisoryOnly(t *testing.T) {
	ctx := context.Background()
	store, catalog := seedCatalog(t)

	mat, err := catalog.CreateMaterial(ctx, MaterialInput{Code: "A", Name: "Material A", StockQuantity: 8})
	require.NoError(t, err)
	_, err = catalog.CreateProduct(ctx, ProductInput{
		Code:      "P1",
		Name:      "Product One",
		Price:     decimal.NewFromInt(3),
		Materials: []BOMLineInput{{MaterialID: mat.ID, QuantityRequired: 2}},
	})
	require.NoError(t, err)

	svc := NewSuggestionService(store, nil)

	// Two identical runs: the first must not consume persisted stock.
	first, err := svc.Suggest(ctx)
	require.NoError(t, err)
	second, err := svc.Suggest(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	stored, err := store.GetMaterial(ctx, mat.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.Quantity(8), stored.StockQuantity)
}
