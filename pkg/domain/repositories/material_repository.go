package repositories

import (
	"context"

	"github.com/factorykit/planner/pkg/domain/entities"
)

// MaterialRepository provides access to material master data
type MaterialRepository interface {
	ListMaterials(ctx context.Context) ([]entities.Material, error)
	GetMaterial(ctx context.Context, id string) (*entities.Material, error)
	CreateMaterial(ctx context.Context, material *entities.Material) error
	UpdateMaterial(ctx context.Context, material *entities.Material) error
	// DeleteMaterial fails with entities.ErrMaterialInUse while any BOM line
	// references the material.
	DeleteMaterial(ctx context.Context, id string) error
}
