// Package rest exposes the catalog and suggestion operations over HTTP.
package rest

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/factorykit/planner/pkg/application/services"
	"github.com/factorykit/planner/pkg/domain/entities"
)

// Handler holds the HTTP handlers for the catalog API
type Handler struct {
	catalog    *services.CatalogService
	suggestion *services.SuggestionService
}

// NewHandler creates the API handler set
func NewHandler(catalog *services.CatalogService, suggestion *services.SuggestionService) *Handler {
	return &Handler{
		catalog:    catalog,
		suggestion: suggestion,
	}
}

// ListMaterials handles GET /materials
func (h *Handler) ListMaterials(c *gin.Context) {
	materials, err := h.catalog.ListMaterials(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]materialResponse, 0, len(materials))
	for i := range materials {
		response = append(response, toMaterialResponse(&materials[i]))
	}
	c.JSON(http.StatusOK, response)
}

// CreateMaterial handles POST /materials
func (h *Handler) CreateMaterial(c *gin.Context) {
	var req materialCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	material, err := h.catalog.CreateMaterial(c.Request.Context(), services.MaterialInput{
		Code:          req.Code,
		Name:          req.Name,
		StockQuantity: entities.Quantity(req.StockQuantity),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMaterialResponse(material))
}

// UpdateMaterial handles PUT /materials/:id
func (h *Handler) UpdateMaterial(c *gin.Context) {
	var req materialUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	update := services.MaterialUpdate{
		Code: req.Code,
		Name: req.Name,
	}
	if req.StockQuantity != nil {
		qty := entities.Quantity(*req.StockQuantity)
		update.StockQuantity = &qty
	}

	material, err := h.catalog.UpdateMaterial(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMaterialResponse(material))
}

// DeleteMaterial handles DELETE /materials/:id
func (h *Handler) DeleteMaterial(c *gin.Context) {
	if err := h.catalog.DeleteMaterial(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProducts handles GET /products
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	names, err := h.materialNames(c)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]productResponse, 0, len(products))
	for i := range products {
		response = append(response, toProductResponse(&products[i], names))
	}
	c.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /products
func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), toProductInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	names, err := h.materialNames(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(product, names))
}

// UpdateProduct handles PUT /products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), toProductInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	names, err := h.materialNames(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product, names))
}

// DeleteProduct handles DELETE /products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Suggestion handles GET /products/suggestion. An empty plan is a 200 with
// no items, never an error.
func (h *Handler) Suggestion(c *gin.Context) {
	plan, err := h.suggestion.Suggest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSuggestionResponse(plan))
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) materialNames(c *gin.Context) (map[string]string, error) {
	materials, err := h.catalog.ListMaterials(c.Request.Context())
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(materials))
	for _, m := range materials {
		names[m.ID] = m.Name
	}
	return names, nil
}

func toProductInput(req productRequest) services.ProductInput {
	materials := make([]services.BOMLineInput, 0, len(req.Materials))
	for _, m := range req.Materials {
		materials = append(materials, services.BOMLineInput{
			MaterialID:       m.MaterialID,
			QuantityRequired: entities.Quantity(m.QuantityRequired),
		})
	}
	return services.ProductInput{
		Code:      req.Code,
		Name:      req.Name,
		Price:     req.Price,
		Materials: materials,
	}
}

// respondError maps domain errors to HTTP statuses with the {"message"}
// envelope the front end reads.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entities.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, entities.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.Is(err, entities.ErrDuplicateCode), errors.Is(err, entities.ErrMaterialInUse):
		c.JSON(http.StatusConflict, errorResponse{Message: err.Error()})
	case errors.Is(err, entities.ErrDataInconsistency):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Message: err.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, errorResponse{Message: "internal error"})
	}
}
