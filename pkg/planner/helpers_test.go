package planner

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/factorykit/planner/pkg/domain/entities"
)

// testMaterial builds a material for test snapshots
func testMaterial(id, code string, stock entities.Quantity) entities.Material {
	return entities.Material{
		ID:            id,
		Code:          code,
		Name:          "Material " + code,
		StockQuantity: stock,
	}
}

// testProduct builds a product with BOM lines for test snapshots.
// Lines are given as alternating materialID/quantity pairs via bomLine.
func testProduct(id, code string, price string, lines ...entities.BOMLine) entities.ProductWithBOM {
	return entities.ProductWithBOM{
		Product: entities.Product{
			ID:    id,
			Code:  code,
			Name:  "Product " + code,
			Price: decimal.RequireFromString(price),
		},
		Lines: lines,
	}
}

// bomLine builds a BOM line for a test product
func bomLine(productID, materialID string, qty entities.Quantity) entities.BOMLine {
	return entities.BOMLine{
		ID:               productID + ":" + materialID,
		ProductID:        productID,
		MaterialID:       materialID,
		QuantityRequired: qty,
	}
}

// mustSnapshot builds a snapshot or fails the test
func mustSnapshot(t *testing.T, materials []entities.Material, products []entities.ProductWithBOM) *entities.Snapshot {
	t.Helper()
	snap, err := entities.NewSnapshot(materials, products)
	if err != nil {
		t.Fatalf("NewSnapshot failed: %v", err)
	}
	return snap
}
