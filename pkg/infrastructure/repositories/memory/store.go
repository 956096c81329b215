// Package memory provides an in-memory catalog store, used by tests and by
// the server when no database is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/factorykit/planner/pkg/domain/entities"
	"github.com/factorykit/planner/pkg/domain/repositories"
)

// Store holds materials and products-with-BOM behind one mutex, so a snapshot
// is one lock acquisition covering both reads.
type Store struct {
	mu        sync.RWMutex
	materials map[string]entities.Material
	products  map[string]entities.ProductWithBOM
}

// NewStore creates an empty in-memory catalog store
func NewStore() *Store {
	return &Store{
		materials: make(map[string]entities.Material),
		products:  make(map[string]entities.ProductWithBOM),
	}
}

// Verify interface compliance
var _ repositories.MaterialRepository = (*Store)(nil)
var _ repositories.ProductRepository = (*Store)(nil)
var _ repositories.SnapshotSource = (*Store)(nil)

// ListMaterials returns all materials ordered by code
func (s *Store) ListMaterials(ctx context.Context) ([]entities.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.materialsLocked(), nil
}

// GetMaterial returns the material with the given id
func (s *Store) GetMaterial(ctx context.Context, id string) (*entities.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.materials[id]
	if !ok {
		return nil, fmt.Errorf("material %s: %w", id, entities.ErrNotFound)
	}
	return &m, nil
}

// CreateMaterial stores a new material, rejecting duplicate codes
func (s *Store) CreateMaterial(ctx context.Context, material *entities.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.materials {
		if existing.Code == material.Code {
			return fmt.Errorf("material code %s: %w", material.Code, entities.ErrDuplicateCode)
		}
	}

	s.materials[material.ID] = *material
	return nil
}

// UpdateMaterial replaces an existing material, rejecting duplicate codes
func (s *Store) UpdateMaterial(ctx context.Context, material *entities.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.materials[material.ID]; !ok {
		return fmt.Errorf("material %s: %w", material.ID, entities.ErrNotFound)
	}
	for _, existing := range s.materials {
		if existing.Code == material.Code && existing.ID != material.ID {
			return fmt.Errorf("material code %s: %w", material.Code, entities.ErrDuplicateCode)
		}
	}

	s.materials[material.ID] = *material
	return nil
}

// DeleteMaterial removes a material unless a BOM line still references it
func (s *Store) DeleteMaterial(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.materials[id]; !ok {
		return fmt.Errorf("material %s: %w", id, entities.ErrNotFound)
	}
	for _, p := range s.products {
		for _, line := range p.Lines {
			if line.MaterialID == id {
				return fmt.Errorf("material %s referenced by product %s: %w", id, p.Product.ID, entities.ErrMaterialInUse)
			}
		}
	}

	delete(s.materials, id)
	return nil
}

// ListProductsWithBOM returns all products with their BOM lines, ordered by code
func (s *Store) ListProductsWithBOM(ctx context.Context) ([]entities.ProductWithBOM, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.productsLocked(), nil
}

// GetProductWithBOM returns the product with the given id and its BOM lines
func (s *Store) GetProductWithBOM(ctx context.Context, id string) (*entities.ProductWithBOM, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, entities.ErrNotFound)
	}
	copied := copyProduct(p)
	return &copied, nil
}

// CreateProduct stores a new product with its BOM lines. Every line must
// reference a material already present in the store.
func (s *Store) CreateProduct(ctx context.Context, product *entities.Product, lines []entities.BOMLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.products {
		if existing.Product.Code == product.Code {
			return fmt.Errorf("product code %s: %w", product.Code, entities.ErrDuplicateCode)
		}
	}
	if err := s.checkLinesLocked(lines); err != nil {
		return err
	}

	s.products[product.ID] = entities.ProductWithBOM{
		Product: *product,
		Lines:   copyLines(lines),
	}
	return nil
}

// UpdateProduct replaces an existing product and its BOM lines
func (s *Store) UpdateProduct(ctx context.Context, product *entities.Product, lines []entities.BOMLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return fmt.Errorf("product %s: %w", product.ID, entities.ErrNotFound)
	}
	for _, existing := range s.products {
		if existing.Product.Code == product.Code && existing.Product.ID != product.ID {
			return fmt.Errorf("product code %s: %w", product.Code, entities.ErrDuplicateCode)
		}
	}
	if err := s.checkLinesLocked(lines); err != nil {
		return err
	}

	s.products[product.ID] = entities.ProductWithBOM{
		Product: *product,
		Lines:   copyLines(lines),
	}
	return nil
}

// DeleteProduct removes a product and its BOM lines
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, entities.ErrNotFound)
	}

	delete(s.products, id)
	return nil
}

// Snapshot returns one consistent view of the whole catalog. Both reads
// happen under a single lock hold, so stock figures and BOM lines can never
// mix points in time.
func (s *Store) Snapshot(ctx context.Context) (*entities.Snapshot, error) {
	s.mu.RLock()
	materials := s.materialsLocked()
	products := s.productsLocked()
	s.mu.RUnlock()

	snap, err := entities.NewSnapshot(materials, products)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog snapshot: %w", err)
	}
	return snap, nil
}

func (s *Store) materialsLocked() []entities.Material {
	materials := make([]entities.Material, 0, len(s.materials))
	for _, m := range s.materials {
		materials = append(materials, m)
	}
	sort.Slice(materials, func(i, j int) bool {
		return materials[i].Code < materials[j].Code
	})
	return materials
}

func (s *Store) productsLocked() []entities.ProductWithBOM {
	products := make([]entities.ProductWithBOM, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, copyProduct(p))
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Product.Code < products[j].Product.Code
	})
	return products
}

func (s *Store) checkLinesLocked(lines []entities.BOMLine) error {
	for _, line := range lines {
		if _, ok := s.materials[line.MaterialID]; !ok {
			return fmt.Errorf("BOM line material %s: %w", line.MaterialID, entities.ErrNotFound)
		}
	}
	return nil
}

func copyProduct(p entities.ProductWithBOM) entities.ProductWithBOM {
	return entities.ProductWithBOM{
		Product: p.Product,
		Lines:   copyLines(p.Lines),
	}
}

func copyLines(lines []entities.BOMLine) []entities.BOMLine {
	copied := make([]entities.BOMLine, len(lines))
	copy(copied, lines)
	return copied
}
