package planner

import (
	"github.com/factorykit/planner/pkg/domain/entities"
)

// maxFeasible returns the maximum units of the product producible from the
// remaining stock, ignoring all other products: the minimum over BOM lines of
// floor(remaining / quantityRequired). A product with an empty BOM consumes
// nothing and is not schedulable, so its feasibility is 0. Pure read of
// remaining.
func maxFeasible(p *entities.ProductWithBOM, remaining map[string]entities.Quantity) (entities.Quantity, error) {
	if len(p.Lines) == 0 {
		return 0, nil
	}

	var feasible entities.Quantity
	for i, line := range p.Lines {
		stock, ok := remaining[line.MaterialID]
		if !ok {
			return 0, &entities.DataInconsistencyError{
				ProductID:  p.Product.ID,
				MaterialID: line.MaterialID,
			}
		}

		q := stock / line.QuantityRequired
		if i == 0 || q < feasible {
			feasible = q
		}
	}

	return feasible, nil
}
