package entities

import (
	"github.com/shopspring/decimal"
)

// Allocation is one line of a production plan: produce Quantity units of the
// product, worth ProductValue each and TotalValue in total. Allocations exist
// only for the lifetime of one suggestion computation.
type Allocation struct {
	ProductID    string
	ProductName  string
	Quantity     Quantity
	ProductValue decimal.Decimal
	TotalValue   decimal.Decimal
}

// Plan is the complete result of one suggestion computation, in allocation
// order. An empty plan (no feasible product) is a valid terminal state.
type Plan struct {
	Items      []Allocation
	TotalValue decimal.Decimal
}

// EmptyPlan returns a plan with no items and a zero total.
func EmptyPlan() *Plan {
	return &Plan{
		Items:      []Allocation{},
		TotalValue: decimal.Zero,
	}
}
