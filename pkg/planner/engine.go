// Package planner implements the production suggestion engine: given one
// consistent catalog snapshot, it decides how many units of each product can
// be produced from current material stock and what the resulting plan is
// worth. The engine is pure and stateless; identical snapshots always yield
// identical plans.
package planner

import (
	"fmt"
	"sort"

	"github.com/factorykit/planner/pkg/domain/entities"
)

// Engine computes production plans from catalog snapshots
type Engine struct{}

// New creates a suggestion engine
func New() *Engine {
	return &Engine{}
}

// allocation pairs a candidate product with its committed quantity
type allocation struct {
	product  entities.ProductWithBOM
	quantity entities.Quantity
}

// ComputeSuggestion runs a single greedy allocation pass over the snapshot's
// products, highest price first (code ascending on ties), against a working
// copy of the stock. Each committed quantity shrinks the stock seen by later
// products. Any data inconsistency aborts the whole run; no partial plan is
// ever returned. A plan with no items is a valid result, not an error.
func (e *Engine) ComputeSuggestion(snap *entities.Snapshot) (*entities.Plan, error) {
	if snap == nil {
		return nil, &entities.InvalidInputError{Field: "snapshot", Reason: "snapshot cannot be nil"}
	}

	candidates := sortCandidates(snap.Products)
	remaining := snap.StockCopy()

	var allocations []allocation
	for i := range candidates {
		candidate := &candidates[i]

		q, err := maxFeasible(candidate, remaining)
		if err != nil {
			return nil, fmt.Errorf("failed to compute feasibility for product %s: %w", candidate.Product.ID, err)
		}
		if q == 0 {
			continue
		}

		for _, line := range candidate.Lines {
			remaining[line.MaterialID] -= q * line.QuantityRequired
		}
		allocations = append(allocations, allocation{product: *candidate, quantity: q})
	}

	return assemblePlan(allocations), nil
}

// sortCandidates returns the products ordered by allocation priority: price
// descending, ties broken by code ascending. The sort is stable, so the
// ordering is a reproducible total order for identical input.
func sortCandidates(products []entities.ProductWithBOM) []entities.ProductWithBOM {
	candidates := make([]entities.ProductWithBOM, len(products))
	copy(candidates, products)

	sort.SliceStable(candidates, func(i, j int) bool {
		cmp := candidates[i].Product.Price.Cmp(candidates[j].Product.Price)
		if cmp != 0 {
			return cmp > 0
		}
		return candidates[i].Product.Code < candidates[j].Product.Code
	})

	return candidates
}
