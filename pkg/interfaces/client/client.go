// Package client is a small HTTP client for the planner API, used by the
// plannerctl command and useful for smoke tests against a running server.
package client

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Material mirrors the API's material payload
type Material struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	StockQuantity int64  `json:"stockQuantity"`
}

// ProductMaterial mirrors one BOM line of a product payload
type ProductMaterial struct {
	ID               string `json:"id"`
	MaterialID       string `json:"materialId"`
	MaterialName     string `json:"materialName"`
	QuantityRequired int64  `json:"quantityRequired"`
}

// Product mirrors the API's product payload
type Product struct {
	ID        string            `json:"id"`
	Code      string            `json:"code"`
	Name      string            `json:"name"`
	Price     float64           `json:"price"`
	Materials []ProductMaterial `json:"materials"`
}

// SuggestionItem is one line of a production suggestion
type SuggestionItem struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Quantity     int64   `json:"quantity"`
	ProductValue float64 `json:"productValue"`
	TotalValue   float64 `json:"totalValue"`
}

// Suggestion is the full production suggestion response
type Suggestion struct {
	Items      []SuggestionItem `json:"items"`
	TotalValue float64          `json:"totalValue"`
}

type apiError struct {
	Message string `json:"message"`
}

// Client calls the planner REST API
type Client struct {
	http *resty.Client
}

// New creates an API client for the given base URL, e.g. http://localhost:8080
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json"),
	}
}

// ListMaterials fetches all materials
func (c *Client) ListMaterials(ctx context.Context) ([]Material, error) {
	var materials []Material
	if err := c.get(ctx, "/materials", &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// ListProducts fetches all products with their BOM lines
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Suggest requests a fresh production suggestion
func (c *Client) Suggest(ctx context.Context) (*Suggestion, error) {
	var suggestion Suggestion
	if err := c.get(ctx, "/products/suggestion", &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&apiErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("GET %s failed: %w", path, err)
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return fmt.Errorf("GET %s: %s (status %d)", path, apiErr.Message, resp.StatusCode())
		}
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode())
	}
	return nil
}
