package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noorskin/storefront/internal/domain"
)

// ProductRepository handles persistence for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// ErrCatalogUnavailable is returned when no database is configured.
var ErrCatalogUnavailable = errors.New("product catalog unavailable")

// NewProductRepository returns a Postgres-backed implementation. A nil pool
// yields a repository whose every call fails with ErrCatalogUnavailable.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, name, description, price, original_price, category, brand, image_url, stock, rating, tags, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if r.pool == nil {
		return ErrCatalogUnavailable
	}
	const query = `
        INSERT INTO products (name, description, price, original_price, category, brand, image_url, stock, rating, tags)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`

	if err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.OriginalPrice,
		product.Category,
		product.Brand,
		product.ImageURL,
		product.Stock,
		product.Rating,
		nonNilTags(product.Tags),
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt); err != nil {
		return err
	}
	product.InStock = product.Stock > 0
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	if r.pool == nil {
		return ErrCatalogUnavailable
	}
	const query = `
        UPDATE products
        SET name=$1, description=$2, price=$3, original_price=$4, category=$5, brand=$6,
            image_url=$7, stock=$8, rating=$9, tags=$10, updated_at=NOW()
        WHERE id=$11
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.OriginalPrice,
		product.Category,
		product.Brand,
		product.ImageURL,
		product.Stock,
		product.Rating,
		nonNilTags(product.Tags),
		product.ID,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return err
	}
	product.InStock = product.Stock > 0
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if r.pool == nil {
		return nil, ErrCatalogUnavailable
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	if r.pool == nil {
		return ErrCatalogUnavailable
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
	if r.pool == nil {
		return nil, 0, ErrCatalogUnavailable
	}
	args := []any{}
	clauses := []string{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.PageSize
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset()
	query := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(" ORDER BY id ASC LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *product)
	}
	return result, total, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.OriginalPrice,
		&p.Category,
		&p.Brand,
		&p.ImageURL,
		&p.Stock,
		&p.Rating,
		&p.Tags,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.InStock = p.Stock > 0
	return &p, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
