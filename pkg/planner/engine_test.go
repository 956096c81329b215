package planner

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/factorykit/planner/pkg/domain/entities"
)

func TestEngine_ComputeSuggestion_WorkedScenario(t *testing.T) {
	// A(stock=10), B(stock=5); P1 price 10 needs A x2, P2 price 5 needs B x1.
	snap := mustSnapshot(t,
		[]entities.Material{
			testMaterial("mat-a", "A", 10),
			testMaterial("mat-b", "B", 5),
		},
		[]entities.ProductWithBOM{
			testProduct("prod-1", "P1", "10", bomLine("prod-1", "mat-a", 2)),
			testProduct("prod-2", "P2", "5", bomLine("prod-2", "mat-b", 1)),
		},
	)

	plan, err := New().ComputeSuggestion(snap)
	if err != nil {
		t.Fatalf("ComputeSuggestion failed: %v", err)
	}

	if len(plan.Items) != 2 {
		t.Fatalf("Expected 2 plan items, got %d", len(plan.Items))
	}

	first := plan.Items[0]
	if first.ProductID != "prod-1" || first.Quantity != 5 {
		t.Errorf("Expected prod-1 x5 first, got %s x%d", first.ProductID, first.Quantity)
	}
	if !first.ProductValue.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected product value 10, got %s", first.ProductValue)
	}
	if !first.TotalValue.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected item total 50, got %s", first.TotalValue)
	}

	second := plan.Items[1]
	if second.ProductID != "prod-2" || second.Quantity != 5 {
		t.Errorf("Expected prod-2 x5 second, got %s x%d", second.ProductID, second.Quantity)
	}
	if !second.TotalValue.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Expected item total 25, got %s", second.TotalValue)
	}

	if !plan.TotalValue.Equal(decimal.NewFromInt(75)) {
		t.Errorf("Expected plan total 75, got %s", plan.TotalValue)
	}
}

func TestEngine_ComputeSuggestion_SharedResourceContention(t *testing.T) {
	// C(stock=10); P3 price 20 needs C x3, P4 price 15 needs C x2.
	// P3 allocates 3 and leaves C=1, which is not enough for P4.
	snap := mustSnapshot(t,
		[]entities.Material{testMaterial("mat-c", "C", 10)},
		[]entities.ProductWithBOM{
			testProduct("prod-4", "P4", "15", bomLine("prod-4", "mat-c", 2)),
			testProduct("prod-3", "P3", "20", bomLine("prod-3", "mat-c", 3)),
		},
	)

	plan, err := New().ComputeSuggestion(snap)
	if err != nil {
		t.Fatalf("ComputeSuggestion failed: %v", err)
	}

	if len(plan.Items) != 1 {
		t.Fatalf("Expected only the higher-priced product in the plan, got %d items", len(plan.Items))
	}
	if plan.Items[0].ProductID != "prod-3" || plan.Items[0].Quantity != 3 {
		t.Errorf("Expected prod-3 x3, got %s x%d", plan.Items[0].ProductID, plan.Items[0].Quantity)
	}
	if !plan.TotalValue.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Expected plan total 60, got %s", plan.TotalValue)
	}
}

func TestEngine_ComputeSuggestion_PriceTieBrokenByCode(t *testing.T) {
	// Same price, both need all 4 units of the shared material, so only the
	// product allocated first wins. Code ascending: A-200 before B-100.
	materials := []entities.Material{testMaterial("mat-s", "S", 4)}
	products := []entities.ProductWithBOM{
		testProduct("prod-b", "B-100", "7.50", bomLine("prod-b", "mat-s", 4)),
		testProduct("prod-a", "A-200", "7.50", bomLine("prod-a", "mat-s", 4)),
	}

	for run := 0; run < 10; run++ {
		snap := mustSnapshot(t, materials, products)

		plan, err := New().ComputeSuggestion(snap)
		if err != nil {
			t.Fatalf("ComputeSuggestion failed: %v", err)
		}
		if len(plan.Items) != 1 {
			t.Fatalf("Expected a single allocation, got %d", len(plan.Items))
		}
		if plan.Items[0].ProductID != "prod-a" {
			t.Fatalf("Run %d: expected code A-200 to win the tie, got %s", run, plan.Items[0].ProductID)
		}
	}
}

func TestEngine_ComputeSuggestion_EmptyStock(t *testing.T) {
	snap := mustSnapshot(t,
		[]entities.Material{
			testMaterial("mat-a", "A", 0),
			testMaterial("mat-b", "B", 0),
		},
		[]entities.ProductWithBOM{
			testProduct("prod-1", "P1", "10", bomLine("prod-1", "mat-a", 1)),
			testProduct("prod-2", "P2", "5", bomLine("prod-2", "mat-b", 2)),
		},
	)

	plan, err := New().ComputeSuggestion(snap)
	if err != nil {
		t.Fatalf("Empty stock must not be an error: %v", err)
	}
	if len(plan.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(plan.Items))
	}
	if !plan.TotalValue.IsZero() {
		t.Errorf("Expected zero total, got %s", plan.TotalValue)
	}
}

func TestEngine_ComputeSuggestion_EmptyBOMExcluded(t *testing.T) {
	snap := mustSnapshot(t,
		[]entities.Material{testMaterial("mat-a", "A", 100)},
		[]entities.ProductWithBOM{
			testProduct("prod-empty", "P0", "999"),
			testProduct("prod-1", "P1", "10", bomLine("prod-1", "mat-a", 2)),
		},
	)

	plan, err := New().ComputeSuggestion(snap)
	if err != nil {
		t.Fatalf("ComputeSuggestion failed: %v", err)
	}

	for _, item := range plan.Items {
		if item.ProductID == "prod-empty" {
			t.Error("Product with empty BOM must never appear in the plan")
		}
	}
	if len(plan.Items) != 1 || plan.Items[0].Quantity != 50 {
		t.Errorf("Expected prod-1 x50 as the only item, got %+v", plan.Items)
	}
}

func TestEngine_ComputeSuggestion_NoOverallocation(t *testing.T) {
	materials := []entities.Material{
		testMaterial("mat-a", "A", 17),
		testMaterial("mat-b", "B", 9),
		testMaterial("mat-c", "C", 31),
	}
	products := []entities.ProductWithBOM{
		testProduct("prod-1", "P1", "12.40",
			bomLine("prod-1", "mat-a", 3), bomLine("prod-1", "mat-c", 2)),
		testProduct("prod-2", "P2", "8.15",
			bomLine("prod-2", "mat-a", 1), bomLine("prod-2", "mat-b", 4)),
		testProduct("prod-3", "P3", "22.00",
			bomLine("prod-3", "mat-b", 2), bomLine("prod-3", "mat-c", 5)),
		testProduct("prod-4", "P4", "3.99",
			bomLine("prod-4", "mat-c", 1)),
	}
	snap := mustSnapshot(t, materials, products)

	plan, err := New().ComputeSuggestion(snap)
	if err != nil {
		t.Fatalf("ComputeSuggestion failed: %v", err)
	}

	bomByProduct := make(map[string][]entities.BOMLine)
	for _, p := range products {
		bomByProduct[p.Product.ID] = p.Lines
	}

	consumed := make(map[string]entities.Quantity)
	for _, item := range plan.Items {
		if item.Quantity <= 0 {
			t.Errorf("Allocated quantity must be positive, got %d for %s", item.Quantity, item.ProductID)
		}
		for _, line := range bomByProduct[item.ProductID] {
			consumed[line.MaterialID] += item.Quantity * line.QuantityRequired
		}
	}

	for _, m := range materials {
		if consumed[m.ID] > m.StockQuantity {
			t.Errorf("Material %s overallocated: consumed %d of %d", m.Code, consumed[m.ID], m.StockQuantity)
		}
	}
}

func TestEngine_ComputeSuggestion_Deterministic(t *testing.T) {
	materials := []entities.Material{
		testMaterial("mat-a", "A", 14),
		testMaterial("mat-b", "B", 6),
	}
	products := []entities.ProductWithBOM{
		testProduct("prod-1", "P1", "10", bomLine("prod-1", "mat-a", 2)),
		testProduct("prod-2", "P2", "10", bomLine("prod-2", "mat-a", 3), bomLine("prod-2", "mat-b", 1)),
		testProduct("prod-3", "P3", "4.20", bomLine("prod-3", "mat-b", 2)),
	}

	engine := New()

	reference, err := engine.ComputeSuggestion(mustSnapshot(t, materials, products))
	if err != nil {
		t.Fatalf("ComputeSuggestion failed: %v", err)
	}

	for run := 0; run < 20; run++ {
		plan, err := engine.ComputeSuggestion(mustSnapshot(t, materials, products))
		if err != nil {
			t.Fatalf("Run %d failed: %v", run, err)
		}
		if !reflect.DeepEqual(plan, reference) {
			t.Fatalf("Run %d produced a different plan:\n%+v\nwant\n%+v", run, plan, reference)
		}
	}
}

func TestEngine_ComputeSuggestion_ValueArithmetic(t *testing.T) {
	snap := mustSnapshot(t,
		[]entities.Material{testMaterial("mat-a", "A", 21)},
		[]entities.ProductWithBOM{
			testProduct("prod-1", "P1", "19.99", bomLine("prod-1", "mat-a", 2)),
			testProduct("prod-2", "P2", "0.01", bomLine("prod-2", "mat-a", 1)),
		},
	)

	plan, err := New().ComputeSuggestion(snap)
	if err != nil {
		t.Fatalf("ComputeSuggestion failed: %v", err)
	}

	sum := decimal.Zero
	for _, item := range plan.Items {
		want := item.ProductValue.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if !item.TotalValue.Equal(want) {
			t.Errorf("Item %s: total %s != %s x %d", item.ProductID, item.TotalValue, item.ProductValue, item.Quantity)
		}
		sum = sum.Add(item.TotalValue)
	}
	if !plan.TotalValue.Equal(sum) {
		t.Errorf("Plan total %s != sum of item totals %s", plan.TotalValue, sum)
	}
	// 10 x 19.99 + 1 x 0.01, exact decimal arithmetic
	if !plan.TotalValue.Equal(decimal.RequireFromString("199.91")) {
		t.Errorf("Expected plan total 199.91, got %s", plan.TotalValue)
	}
}

func TestEngine_ComputeSuggestion_DataInconsistencyAborts(t *testing.T) {
	// Bypass NewSnapshot validation to simulate a corrupted snapshot.
	snap := &entities.Snapshot{
		Materials: map[string]entities.Material{
			"mat-a": testMaterial("mat-a", "A", 50),
		},
		Products: []entities.ProductWithBOM{
			testProduct("prod-1", "P1", "10", bomLine("prod-1", "mat-a", 1)),
			testProduct("prod-2", "P2", "99", bomLine("prod-2", "mat-ghost", 1)),
		},
	}

	plan, err := New().ComputeSuggestion(snap)
	if err == nil {
		t.Fatal("Expected data inconsistency error, got none")
	}
	if !errors.Is(err, entities.ErrDataInconsistency) {
		t.Errorf("Expected ErrDataInconsistency, got %v", err)
	}
	if plan != nil {
		t.Errorf("No partial plan may be returned on error, got %+v", plan)
	}
}

func TestEngine_ComputeSuggestion_NilSnapshot(t *testing.T) {
	_, err := New().ComputeSuggestion(nil)
	if !errors.Is(err, entities.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil snapshot, got %v", err)
	}
}

func TestEngine_ComputeSuggestion_NoProducts(t *testing.T) {
	snap := mustSnapshot(t,
		[]entities.Material{testMaterial("mat-a", "A", 10)},
		nil,
	)

	plan, err := New().ComputeSuggestion(snap)
	if err != nil {
		t.Fatalf("ComputeSuggestion failed: %v", err)
	}
	if len(plan.Items) != 0 || !plan.TotalValue.IsZero() {
		t.Errorf("Expected empty plan, got %+v", plan)
	}
}
