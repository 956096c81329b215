// Package postgres implements the catalog repositories on PostgreSQL via
// pgx. The suggestion snapshot is read inside one repeatable-read
// transaction, so materials, products and BOM lines always come from a
// single point in time.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/factorykit/planner/pkg/domain/entities"
	"github.com/factorykit/planner/pkg/domain/repositories"
)

// Store implements the catalog repositories against a pgx connection pool
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Postgres-backed catalog store
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Verify interface compliance
var _ repositories.MaterialRepository = (*Store)(nil)
var _ repositories.ProductRepository = (*Store)(nil)
var _ repositories.SnapshotSource = (*Store)(nil)

// uniqueViolation is the Postgres error code for unique constraint violations
const uniqueViolation = "23505"

// foreignKeyViolation is the Postgres error code for FK constraint violations
const foreignKeyViolation = "23503"

// ListMaterials returns all materials ordered by code
func (s *Store) ListMaterials(ctx context.Context) ([]entities.Material, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, code, name, stock_quantity
		FROM materials
		ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	defer rows.Close()

	return scanMaterials(rows)
}

// GetMaterial returns the material with the given id
func (s *Store) GetMaterial(ctx context.Context, id string) (*entities.Material, error) {
	var m entities.Material
	err := s.pool.QueryRow(ctx, `
		SELECT id, code, name, stock_quantity
		FROM materials
		WHERE id = $1
	`, id).Scan(&m.ID, &m.Code, &m.Name, &m.StockQuantity)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("material %s: %w", id, entities.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get material %s: %w", id, err)
	}
	return &m, nil
}

// CreateMaterial inserts a new material
func (s *Store) CreateMaterial(ctx context.Context, material *entities.Material) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO materials (id, code, name, stock_quantity)
		VALUES ($1, $2, $3, $4)
	`, material.ID, material.Code, material.Name, material.StockQuantity)

	if isPgError(err, uniqueViolation) {
		return fmt.Errorf("material code %s: %w", material.Code, entities.ErrDuplicateCode)
	}
	if err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	return nil
}

// UpdateMaterial updates an existing material
func (s *Store) UpdateMaterial(ctx context.Context, material *entities.Material) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE materials
		SET code = $2, name = $3, stock_quantity = $4
		WHERE id = $1
	`, material.ID, material.Code, material.Name, material.StockQuantity)

	if isPgError(err, uniqueViolation) {
		return fmt.Errorf("material code %s: %w", material.Code, entities.ErrDuplicateCode)
	}
	if err != nil {
		return fmt.Errorf("failed to update material %s: %w", material.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("material %s: %w", material.ID, entities.ErrNotFound)
	}
	return nil
}

// DeleteMaterial removes a material; the FK from BOM lines blocks deletion
// while the material is still referenced
func (s *Store) DeleteMaterial(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)

	if isPgError(err, foreignKeyViolation) {
		return fmt.Errorf("material %s: %w", id, entities.ErrMaterialInUse)
	}
	if err != nil {
		return fmt.Errorf("failed to delete material %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("material %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// ListProductsWithBOM returns all products with their BOM lines, ordered by code
func (s *Store) ListProductsWithBOM(ctx context.Context) ([]entities.ProductWithBOM, error) {
	return listProducts(ctx, s.pool)
}

// GetProductWithBOM returns the product with the given id and its BOM lines
func (s *Store) GetProductWithBOM(ctx context.Context, id string) (*entities.ProductWithBOM, error) {
	var p entities.ProductWithBOM
	err := s.pool.QueryRow(ctx, `
		SELECT id, code, name, price
		FROM products
		WHERE id = $1
	`, id).Scan(&p.Product.ID, &p.Product.Code, &p.Product.Name, &p.Product.Price)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", id, entities.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, product_id, material_id, quantity_required
		FROM product_materials
		WHERE product_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list BOM lines for product %s: %w", id, err)
	}
	defer rows.Close()

	p.Lines, err = scanBOMLines(rows)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct inserts a product and its BOM lines in one transaction
func (s *Store) CreateProduct(ctx context.Context, product *entities.Product, lines []entities.BOMLine) error {
	return s.writeProduct(ctx, product, lines, false)
}

// UpdateProduct replaces a product and its BOM lines in one transaction
func (s *Store) UpdateProduct(ctx context.Context, product *entities.Product, lines []entities.BOMLine) error {
	return s.writeProduct(ctx, product, lines, true)
}

func (s *Store) writeProduct(ctx context.Context, product *entities.Product, lines []entities.BOMLine, replace bool) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if replace {
		tag, err := tx.Exec(ctx, `
			UPDATE products SET code = $2, name = $3, price = $4 WHERE id = $1
		`, product.ID, product.Code, product.Name, product.Price)
		if isPgError(err, uniqueViolation) {
			return fmt.Errorf("product code %s: %w", product.Code, entities.ErrDuplicateCode)
		}
		if err != nil {
			return fmt.Errorf("failed to update product %s: %w", product.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("product %s: %w", product.ID, entities.ErrNotFound)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM product_materials WHERE product_id = $1`, product.ID); err != nil {
			return fmt.Errorf("failed to clear BOM lines for product %s: %w", product.ID, err)
		}
	} else {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (id, code, name, price) VALUES ($1, $2, $3, $4)
		`, product.ID, product.Code, product.Name, product.Price)
		if isPgError(err, uniqueViolation) {
			return fmt.Errorf("product code %s: %w", product.Code, entities.ErrDuplicateCode)
		}
		if err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
	}

	for _, line := range lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO product_materials (id, product_id, material_id, quantity_required)
			VALUES ($1, $2, $3, $4)
		`, line.ID, product.ID, line.MaterialID, line.QuantityRequired)
		if isPgError(err, foreignKeyViolation) {
			return fmt.Errorf("BOM line material %s: %w", line.MaterialID, entities.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to insert BOM line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit product write: %w", err)
	}
	return nil
}

// DeleteProduct removes a product; BOM lines go with it via ON DELETE CASCADE
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

// Snapshot reads the whole catalog inside one repeatable-read, read-only
// transaction and builds a validated snapshot from it
func (s *Store) Snapshot(ctx context.Context) (*entities.Snapshot, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT id, code, name, stock_quantity
		FROM materials
		ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read materials: %w", err)
	}
	materials, err := scanMaterials(rows)
	if err != nil {
		return nil, err
	}

	products, err := listProducts(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot read: %w", err)
	}

	snap, err := entities.NewSnapshot(materials, products)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog snapshot: %w", err)
	}
	return snap, nil
}

// querier is satisfied by both pgxpool.Pool and pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listProducts(ctx context.Context, q querier) ([]entities.ProductWithBOM, error) {
	rows, err := q.Query(ctx, `
		SELECT id, code, name, price
		FROM products
		ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var products []entities.ProductWithBOM
	index := make(map[string]int)
	for rows.Next() {
		var p entities.ProductWithBOM
		if err := rows.Scan(&p.Product.ID, &p.Product.Code, &p.Product.Name, &p.Product.Price); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		index[p.Product.ID] = len(products)
		products = append(products, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	lineRows, err := q.Query(ctx, `
		SELECT id, product_id, material_id, quantity_required
		FROM product_materials
		ORDER BY product_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list BOM lines: %w", err)
	}
	lines, err := scanBOMLines(lineRows)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		i, ok := index[line.ProductID]
		if !ok {
			// Orphan line: surface as inconsistency instead of dropping it.
			return nil, &entities.DataInconsistencyError{ProductID: line.ProductID, MaterialID: line.MaterialID}
		}
		products[i].Lines = append(products[i].Lines, line)
	}

	return products, nil
}

func scanMaterials(rows pgx.Rows) ([]entities.Material, error) {
	defer rows.Close()

	var materials []entities.Material
	for rows.Next() {
		var m entities.Material
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.StockQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read materials: %w", err)
	}
	return materials, nil
}

func scanBOMLines(rows pgx.Rows) ([]entities.BOMLine, error) {
	defer rows.Close()

	var lines []entities.BOMLine
	for rows.Next() {
		var line entities.BOMLine
		if err := rows.Scan(&line.ID, &line.ProductID, &line.MaterialID, &line.QuantityRequired); err != nil {
			return nil, fmt.Errorf("failed to scan BOM line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read BOM lines: %w", err)
	}
	return lines, nil
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
