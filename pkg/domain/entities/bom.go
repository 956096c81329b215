package entities

// BOMLine represents a single line in a product's bill of materials.
// QuantityRequired is the units of material consumed per one unit of product.
type BOMLine struct {
	ID               string
	ProductID        string
	MaterialID       string
	QuantityRequired Quantity
}

// NewBOMLine creates a validated BOMLine
func NewBOMLine(id, productID, materialID string, quantityRequired Quantity) (*BOMLine, error) {
	if productID == "" {
		return nil, &InvalidInputError{Field: "productId", Reason: "product id cannot be empty"}
	}
	if materialID == "" {
		return nil, &InvalidInputError{Field: "materialId", Reason: "material id cannot be empty"}
	}
	if quantityRequired <= 0 {
		return nil, &InvalidInputError{Field: "quantityRequired", Reason: "quantity required must be positive"}
	}

	return &BOMLine{
		ID:               id,
		ProductID:        productID,
		MaterialID:       materialID,
		QuantityRequired: quantityRequired,
	}, nil
}
