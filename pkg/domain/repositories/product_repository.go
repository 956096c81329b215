package repositories

import (
	"context"

	"github.com/factorykit/planner/pkg/domain/entities"
)

// ProductRepository provides access to products and their bills of materials
type ProductRepository interface {
	ListProductsWithBOM(ctx context.Context) ([]entities.ProductWithBOM, error)
	GetProductWithBOM(ctx context.Context, id string) (*entities.ProductWithBOM, error)
	CreateProduct(ctx context.Context, product *entities.Product, lines []entities.BOMLine) error
	UpdateProduct(ctx context.Context, product *entities.Product, lines []entities.BOMLine) error
	DeleteProduct(ctx context.Context, id string) error
}
