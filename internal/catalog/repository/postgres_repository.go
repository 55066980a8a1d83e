package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ovenside/bakery-admin/internal/catalog/domain"
	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	ListStatusDrift(ctx context.Context) ([]domain.Product, error)
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

const productColumns = `product_id, name, description, price, image_url, category, quantity, status, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }, p *domain.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.Category, &p.Quantity, &p.Status, &p.CreatedAt, &p.UpdatedAt)
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY product_id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			logger.Error("ListProducts: scan failed", err)
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListProducts: rows iteration error", err)
		return nil, err
	}
	return products, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`
	var p domain.Product
	err := scanProduct(r.db.QueryRowContext(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, description, price, image_url, category, quantity, status)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING product_id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.Quantity, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		logger.Error("CreateProduct: failed to insert product", err)
		return err
	}
	return nil
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products
              SET name = $1, description = $2, price = $3, image_url = $4,
                  category = $5, quantity = $6, status = $7, updated_at = NOW()
              WHERE product_id = $8`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.Quantity, p.Status, p.ID,
	)
	if err != nil {
		logger.Error("UpdateProduct: exec failed", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		logger.Error("DeleteProduct: exec failed", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListStatusDrift returns products whose status no longer matches their
// quantity, for the background reconciler.
func (r *postgresProductRepository) ListStatusDrift(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
              WHERE (quantity = 0 AND status <> $1) OR (quantity > 0 AND status = $1)`
	rows, err := r.db.QueryContext(ctx, query, domain.StatusOutOfStock)
	if err != nil {
		logger.Error("ListStatusDrift: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			logger.Error("ListStatusDrift: scan failed", err)
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
