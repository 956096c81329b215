package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/factorykit/planner/pkg/domain/entities"
	"github.com/factorykit/planner/pkg/domain/repositories"
)

// MaterialInput carries the fields of a material create request
type MaterialInput struct {
	Code          string
	Name          string
	StockQuantity entities.Quantity
}

// MaterialUpdate carries a partial material update; nil fields keep their
// current value
type MaterialUpdate struct {
	Code          *string
	Name          *string
	StockQuantity *entities.Quantity
}

// BOMLineInput carries one bill-of-materials line of a product request
type BOMLineInput struct {
	MaterialID       string
	QuantityRequired entities.Quantity
}

// ProductInput carries the fields of a product create or replace request
type ProductInput struct {
	Code      string
	Name      string
	Price     decimal.Decimal
	Materials []BOMLineInput
}

// CatalogService orchestrates material and product CRUD on top of the
// repositories, generating ids and validating through the entity constructors
type CatalogService struct {
	materials repositories.MaterialRepository
	products  repositories.ProductRepository
}

// NewCatalogService creates a catalog service over the given repositories
func NewCatalogService(materials repositories.MaterialRepository, products repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		materials: materials,
		products:  products,
	}
}

// ListMaterials returns all materials
func (s *CatalogService) ListMaterials(ctx context.Context) ([]entities.Material, error) {
	return s.materials.ListMaterials(ctx)
}

// CreateMaterial validates and stores a new material
func (s *CatalogService) CreateMaterial(ctx context.Context, input MaterialInput) (*entities.Material, error) {
	material, err := entities.NewMaterial(uuid.NewString(), input.Code, input.Name, input.StockQuantity)
	if err != nil {
		return nil, err
	}

	if err := s.materials.CreateMaterial(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}
	return material, nil
}

// UpdateMaterial applies a partial update to an existing material
func (s *CatalogService) UpdateMaterial(ctx context.Context, id string, update MaterialUpdate) (*entities.Material, error) {
	current, err := s.materials.GetMaterial(ctx, id)
	if err != nil {
		return nil, err
	}

	code := current.Code
	if update.Code != nil {
		code = *update.Code
	}
	name := current.Name
	if update.Name != nil {
		name = *update.Name
	}
	stock := current.StockQuantity
	if update.StockQuantity != nil {
		stock = *update.StockQuantity
	}

	material, err := entities.NewMaterial(id, code, name, stock)
	if err != nil {
		return nil, err
	}

	if err := s.materials.UpdateMaterial(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to update material %s: %w", id, err)
	}
	return material, nil
}

// DeleteMaterial removes a material unless a product still references it
func (s *CatalogService) DeleteMaterial(ctx context.Context, id string) error {
	return s.materials.DeleteMaterial(ctx, id)
}

// ListProducts returns all products with their BOM lines
func (s *CatalogService) ListProducts(ctx context.Context) ([]entities.ProductWithBOM, error) {
	return s.products.ListProductsWithBOM(ctx)
}

// CreateProduct validates and stores a new product with its BOM lines
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*entities.ProductWithBOM, error) {
	product, err := entities.NewProduct(uuid.NewString(), input.Code, input.Name, input.Price)
	if err != nil {
		return nil, err
	}

	lines, err := buildLines(product.ID, input.Materials)
	if err != nil {
		return nil, err
	}

	if err := s.products.CreateProduct(ctx, product, lines); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &entities.ProductWithBOM{Product: *product, Lines: lines}, nil
}

// UpdateProduct replaces an existing product and its BOM lines
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*entities.ProductWithBOM, error) {
	product, err := entities.NewProduct(id, input.Code, input.Name, input.Price)
	if err != nil {
		return nil, err
	}

	lines, err := buildLines(id, input.Materials)
	if err != nil {
		return nil, err
	}

	if err := s.products.UpdateProduct(ctx, product, lines); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return &entities.ProductWithBOM{Product: *product, Lines: lines}, nil
}

// DeleteProduct removes a product and its BOM lines
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.DeleteProduct(ctx, id)
}

func buildLines(productID string, inputs []BOMLineInput) ([]entities.BOMLine, error) {
	lines := make([]entities.BOMLine, 0, len(inputs))
	for _, in := range inputs {
		line, err := entities.NewBOMLine(uuid.NewString(), productID, in.MaterialID, in.QuantityRequired)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, nil
}
