package planner

import (
	"github.com/shopspring/decimal"

	"github.com/factorykit/planner/pkg/domain/entities"
)

// assemblePlan turns the committed allocations into the externally visible
// plan, preserving allocation order. Per item, ProductValue is the unit price
// and TotalValue is price times quantity, in exact decimal arithmetic; the
// plan total is the sum of item totals, zero when nothing is feasible.
func assemblePlan(allocations []allocation) *entities.Plan {
	if len(allocations) == 0 {
		return entities.EmptyPlan()
	}

	items := make([]entities.Allocation, 0, len(allocations))
	total := decimal.Zero

	for _, alloc := range allocations {
		itemTotal := alloc.product.Product.Price.Mul(decimal.NewFromInt(int64(alloc.quantity)))
		items = append(items, entities.Allocation{
			ProductID:    alloc.product.Product.ID,
			ProductName:  alloc.product.Product.Name,
			Quantity:     alloc.quantity,
			ProductValue: alloc.product.Product.Price,
			TotalValue:   itemTotal,
		})
		total = total.Add(itemTotal)
	}

	return &entities.Plan{
		Items:      items,
		TotalValue: total,
	}
}
