package rest

import (
	"github.com/shopspring/decimal"

	"github.com/factorykit/planner/pkg/domain/entities"
)

// Request and response shapes match the JSON contract consumed by the
// catalog front end; field names are part of that contract.

type materialResponse struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	StockQuantity int64  `json:"stockQuantity"`
}

type materialCreateRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	StockQuantity int64  `json:"stockQuantity"`
}

type materialUpdateRequest struct {
	Code          *string `json:"code"`
	Name          *string `json:"name"`
	StockQuantity *int64  `json:"stockQuantity"`
}

type productMaterialRequest struct {
	MaterialID       string `json:"materialId" binding:"required"`
	QuantityRequired int64  `json:"quantityRequired"`
}

type productRequest struct {
	Code      string                   `json:"code" binding:"required"`
	Name      string                   `json:"name" binding:"required"`
	Price     decimal.Decimal          `json:"price"`
	Materials []productMaterialRequest `json:"materials"`
}

type productMaterialResponse struct {
	ID               string `json:"id"`
	MaterialID       string `json:"materialId"`
	MaterialName     string `json:"materialName"`
	QuantityRequired int64  `json:"quantityRequired"`
}

type productResponse struct {
	ID        string                    `json:"id"`
	Code      string                    `json:"code"`
	Name      string                    `json:"name"`
	Price     float64                   `json:"price"`
	Materials []productMaterialResponse `json:"materials"`
}

type suggestionItemResponse struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Quantity     int64   `json:"quantity"`
	ProductValue float64 `json:"productValue"`
	TotalValue   float64 `json:"totalValue"`
}

type suggestionResponse struct {
	Items      []suggestionItemResponse `json:"items"`
	TotalValue float64                  `json:"totalValue"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func toMaterialResponse(m *entities.Material) materialResponse {
	return materialResponse{
		ID:            m.ID,
		Code:          m.Code,
		Name:          m.Name,
		StockQuantity: int64(m.StockQuantity),
	}
}

func toProductResponse(p *entities.ProductWithBOM, materialNames map[string]string) productResponse {
	materials := make([]productMaterialResponse, 0, len(p.Lines))
	for _, line := range p.Lines {
		materials = append(materials, productMaterialResponse{
			ID:               line.ID,
			MaterialID:       line.MaterialID,
			MaterialName:     materialNames[line.MaterialID],
			QuantityRequired: int64(line.QuantityRequired),
		})
	}
	return productResponse{
		ID:        p.Product.ID,
		Code:      p.Product.Code,
		Name:      p.Product.Name,
		Price:     p.Product.Price.InexactFloat64(),
		Materials: materials,
	}
}

func toSuggestionResponse(plan *entities.Plan) suggestionResponse {
	items := make([]suggestionItemResponse, 0, len(plan.Items))
	for _, item := range plan.Items {
		items = append(items, suggestionItemResponse{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     int64(item.Quantity),
			ProductValue: item.ProductValue.InexactFloat64(),
			TotalValue:   item.TotalValue.InexactFloat64(),
		})
	}
	return suggestionResponse{
		Items:      items,
		TotalValue: plan.TotalValue.InexactFloat64(),
	}
}
