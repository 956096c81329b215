package entities

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewSnapshot_Valid(t *testing.T) {
	materials := []Material{
		{ID: "mat-1", Code: "M-001", Name: "Steel", StockQuantity: 10},
		{ID: "mat-2", Code: "M-002", Name: "Paint", StockQuantity: 0},
	}
	products := []ProductWithBOM{
		{
			Product: Product{ID: "prod-1", Code: "P-001", Name: "Frame", Price: decimal.NewFromInt(10)},
			Lines: []BOMLine{
				{ProductID: "prod-1", MaterialID: "mat-1", QuantityRequired: 2},
			},
		},
	}

	snap, err := NewSnapshot(materials, products)
	if err != nil {
		t.Fatalf("Expected valid snapshot, got error: %v", err)
	}
	if len(snap.Materials) != 2 {
		t.Errorf("Expected 2 materials, got %d", len(snap.Materials))
	}
	if snap.Materials["mat-1"].StockQuantity != 10 {
		t.Errorf("Expected stock 10 for mat-1, got %d", snap.Materials["mat-1"].StockQuantity)
	}
}

func TestNewSnapshot_Validation(t *testing.T) {
	price := decimal.NewFromInt(5)

	testCases := []struct {
		name      string
		materials []Material
		products  []ProductWithBOM
		wantErr   error
	}{
		{
			name:      "negative stock",
			materials: []Material{{ID: "mat-1", Code: "M-001", Name: "Steel", StockQuantity: -1}},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "zero price",
			materials: []Material{{ID: "mat-1", Code: "M-001", Name: "Steel", StockQuantity: 1}},
			products: []ProductWithBOM{
				{Product: Product{ID: "prod-1", Code: "P-001", Name: "Frame", Price: decimal.Zero}},
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:      "zero BOM quantity",
			materials: []Material{{ID: "mat-1", Code: "M-001", Name: "Steel", StockQuantity: 1}},
			products: []ProductWithBOM{
				{
					Product: Product{ID: "prod-1", Code: "P-001", Name: "Frame", Price: price},
					Lines:   []BOMLine{{ProductID: "prod-1", MaterialID: "mat-1", QuantityRequired: 0}},
				},
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:      "dangling material reference",
			materials: []Material{{ID: "mat-1", Code: "M-001", Name: "Steel", StockQuantity: 1}},
			products: []ProductWithBOM{
				{
					Product: Product{ID: "prod-1", Code: "P-001", Name: "Frame", Price: price},
					Lines:   []BOMLine{{ProductID: "prod-1", MaterialID: "mat-missing", QuantityRequired: 1}},
				},
			},
			wantErr: ErrDataInconsistency,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSnapshot(tc.materials, tc.products)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error to wrap %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNewSnapshot_DataInconsistencyDetails(t *testing.T) {
	materials := []Material{{ID: "mat-1", Code: "M-001", Name: "Steel", StockQuantity: 1}}
	products := []ProductWithBOM{
		{
			Product: Product{ID: "prod-1", Code: "P-001", Name: "Frame", Price: decimal.NewFromInt(1)},
			Lines:   []BOMLine{{ProductID: "prod-1", MaterialID: "mat-ghost", QuantityRequired: 1}},
		},
	}

	_, err := NewSnapshot(materials, products)

	var incErr *DataInconsistencyError
	if !errors.As(err, &incErr) {
		t.Fatalf("Expected DataInconsistencyError, got %v", err)
	}
	if incErr.ProductID != "prod-1" || incErr.MaterialID != "mat-ghost" {
		t.Errorf("Expected prod-1/mat-ghost in error, got %s/%s", incErr.ProductID, incErr.MaterialID)
	}
}

func TestSnapshot_StockCopyIsIndependent(t *testing.T) {
	materials := []Material{{ID: "mat-1", Code: "M-001", Name: "Steel", StockQuantity: 10}}

	snap, err := NewSnapshot(materials, nil)
	if err != nil {
		t.Fatalf("NewSnapshot failed: %v", err)
	}

	stock := snap.StockCopy()
	stock["mat-1"] = 0

	if snap.Materials["mat-1"].StockQuantity != 10 {
		t.Errorf("Mutating the copy must not touch the snapshot, stock is now %d", snap.Materials["mat-1"].StockQuantity)
	}
}
