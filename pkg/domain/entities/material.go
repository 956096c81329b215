package entities

// Quantity represents an integer quantity value for discrete stock units
type Quantity int64

// Material represents a raw material held in stock
type Material struct {
	ID            string
	Code          string
	Name          string
	StockQuantity Quantity
}

// NewMaterial creates a validated Material
func NewMaterial(id, code, name string, stockQuantity Quantity) (*Material, error) {
	if id == "" {
		return nil, &InvalidInputError{Field: "id", Reason: "material id cannot be empty"}
	}
	if code == "" {
		return nil, &InvalidInputError{Field: "code", Reason: "material code cannot be empty"}
	}
	if name == "" {
		return nil, &InvalidInputError{Field: "name", Reason: "material name cannot be empty"}
	}
	if stockQuantity < 0 {
		return nil, &InvalidInputError{Field: "stockQuantity", Reason: "stock quantity cannot be negative"}
	}

	return &Material{
		ID:            id,
		Code:          code,
		Name:          name,
		StockQuantity: stockQuantity,
	}, nil
}
