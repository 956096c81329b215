package entities

// Snapshot is one consistent, immutable read of all materials and all
// products with their bills of materials. A suggestion computation works
// exclusively from a single Snapshot; it never re-reads the catalog.
type Snapshot struct {
	Materials map[string]Material
	Products  []ProductWithBOM
}

// NewSnapshot builds a validated Snapshot from one consistent catalog read.
// It rejects negative stock, non-positive prices and non-positive BOM
// quantities rather than clamping them, and fails on any BOM line whose
// material is absent from the same read.
func NewSnapshot(materials []Material, products []ProductWithBOM) (*Snapshot, error) {
	byID := make(map[string]Material, len(materials))
	for _, m := range materials {
		if m.StockQuantity < 0 {
			return nil, &InvalidInputError{Field: "stockQuantity", Reason: "material " + m.ID + " has negative stock"}
		}
		byID[m.ID] = m
	}

	for _, p := range products {
		if !p.Product.Price.IsPositive() {
			return nil, &InvalidInputError{Field: "price", Reason: "product " + p.Product.ID + " has non-positive price"}
		}
		for _, line := range p.Lines {
			if line.QuantityRequired <= 0 {
				return nil, &InvalidInputError{Field: "quantityRequired", Reason: "product " + p.Product.ID + " has non-positive BOM quantity"}
			}
			if _, ok := byID[line.MaterialID]; !ok {
				return nil, &DataInconsistencyError{ProductID: p.Product.ID, MaterialID: line.MaterialID}
			}
		}
	}

	return &Snapshot{
		Materials: byID,
		Products:  products,
	}, nil
}

// StockCopy returns a fresh working copy of the snapshot's stock quantities.
// Allocation mutates the copy; the snapshot itself stays untouched.
func (s *Snapshot) StockCopy() map[string]Quantity {
	stock := make(map[string]Quantity, len(s.Materials))
	for id, m := range s.Materials {
		stock[id] = m.StockQuantity
	}
	return stock
}
