// Package csv loads a catalog seed from CSV files, used to populate the
// in-memory store at server start.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/factorykit/planner/pkg/domain/entities"
	"github.com/factorykit/planner/pkg/domain/repositories"
)

// Loader handles loading catalog data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadMaterials loads materials from a CSV file with header
// id,code,name,stock_quantity
func (l *Loader) LoadMaterials(filename string) ([]entities.Material, error) {
	records, err := readCSV(filename, []string{"id", "code", "name", "stock_quantity"})
	if err != nil {
		return nil, err
	}

	var materials []entities.Material
	for i, record := range records {
		stock, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: invalid stock_quantity: %s", i+2, record[3])
		}

		material, err := entities.NewMaterial(record[0], record[1], record[2], entities.Quantity(stock))
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: %w", i+2, err)
		}
		materials = append(materials, *material)
	}

	return materials, nil
}

// LoadProducts loads products from a CSV file with header id,code,name,price
func (l *Loader) LoadProducts(filename string) ([]entities.Product, error) {
	records, err := readCSV(filename, []string{"id", "code", "name", "price"})
	if err != nil {
		return nil, err
	}

	var products []entities.Product
	for i, record := range records {
		price, err := decimal.NewFromString(record[3])
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: invalid price: %s", i+2, record[3])
		}

		product, err := entities.NewProduct(record[0], record[1], record[2], price)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		products = append(products, *product)
	}

	return products, nil
}

// LoadBOM loads BOM lines from a CSV file with header
// product_id,material_id,quantity_required
func (l *Loader) LoadBOM(filename string) ([]entities.BOMLine, error) {
	records, err := readCSV(filename, []string{"product_id", "material_id", "quantity_required"})
	if err != nil {
		return nil, err
	}

	var lines []entities.BOMLine
	for i, record := range records {
		qty, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("BOM CSV row %d: invalid quantity_required: %s", i+2, record[2])
		}

		id := record[0] + ":" + record[1]
		line, err := entities.NewBOMLine(id, record[0], record[1], entities.Quantity(qty))
		if err != nil {
			return nil, fmt.Errorf("BOM CSV row %d: %w", i+2, err)
		}
		lines = append(lines, *line)
	}

	return lines, nil
}

// Seed loads materials.csv, products.csv and bom.csv from dir and writes the
// catalog into the given repositories. products.csv and bom.csv are optional;
// a materials-only seed is valid.
func (l *Loader) Seed(
	ctx context.Context,
	dir string,
	materials repositories.MaterialRepository,
	products repositories.ProductRepository,
) error {
	loadedMaterials, err := l.LoadMaterials(filepath.Join(dir, "materials.csv"))
	if err != nil {
		return err
	}
	for i := range loadedMaterials {
		if err := materials.CreateMaterial(ctx, &loadedMaterials[i]); err != nil {
			return fmt.Errorf("failed to seed material %s: %w", loadedMaterials[i].Code, err)
		}
	}

	productsFile := filepath.Join(dir, "products.csv")
	if _, err := os.Stat(productsFile); os.IsNotExist(err) {
		return nil
	}

	loadedProducts, err := l.LoadProducts(productsFile)
	if err != nil {
		return err
	}

	linesByProduct := make(map[string][]entities.BOMLine)
	bomFile := filepath.Join(dir, "bom.csv")
	if _, err := os.Stat(bomFile); err == nil {
		lines, err := l.LoadBOM(bomFile)
		if err != nil {
			return err
		}
		for _, line := range lines {
			linesByProduct[line.ProductID] = append(linesByProduct[line.ProductID], line)
		}
	}

	for i := range loadedProducts {
		p := &loadedProducts[i]
		if err := products.CreateProduct(ctx, p, linesByProduct[p.ID]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.Code, err)
		}
	}

	return nil
}

// readCSV reads all data rows of filename after validating its header
func readCSV(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s must have a header row", filename)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s header mismatch. Expected: %v, Got: %v", filename, expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}
