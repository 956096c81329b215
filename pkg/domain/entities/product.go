package entities

import (
	"github.com/shopspring/decimal"
)

// Product represents a sellable product with its unit sale price
type Product struct {
	ID    string
	Code  string
	Name  string
	Price decimal.Decimal
}

// NewProduct creates a validated Product
func NewProduct(id, code, name string, price decimal.Decimal) (*Product, error) {
	if id == "" {
		return nil, &InvalidInputError{Field: "id", Reason: "product id cannot be empty"}
	}
	if code == "" {
		return nil, &InvalidInputError{Field: "code", Reason: "product code cannot be empty"}
	}
	if name == "" {
		return nil, &InvalidInputError{Field: "name", Reason: "product name cannot be empty"}
	}
	if !price.IsPositive() {
		return nil, &InvalidInputError{Field: "price", Reason: "price must be positive"}
	}

	return &Product{
		ID:    id,
		Code:  code,
		Name:  name,
		Price: price,
	}, nil
}

// ProductWithBOM pairs a product with its bill of materials
type ProductWithBOM struct {
	Product Product
	Lines   []BOMLine
}
