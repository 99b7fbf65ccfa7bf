package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dimasqi/storefront/internal/catalog/app"
	"github.com/dimasqi/storefront/internal/catalog/domain"
	"github.com/google/uuid"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = "id, seller_id, name, description, price, stock, image_url, created_at, updated_at"

func scanProduct(row interface{ Scan(...any) error }) (domain.Product, error) {
	var (
		p            domain.Product
		id, sellerID uuid.UUID
	)
	err := row.Scan(&id, &sellerID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = id.String()
	p.SellerID = sellerID.String()
	return p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	sellerUUID, err := uuid.Parse(p.SellerID)
	if err != nil {
		return domain.Product{}, app.ErrInvalidInput
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (seller_id, name, description, price, stock, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+productColumns,
		sellerUUID, p.Name, p.Description, p.Price, p.Stock, p.ImageURL,
	)

	created, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return created, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	prodUUID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, app.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", prodUUID)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	prodUUID, err := uuid.Parse(p.ID)
	if err != nil {
		return domain.Product{}, app.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5, image_url = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		prodUUID, p.Name, p.Description, p.Price, p.Stock, p.ImageURL,
	)

	updated, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	prodUUID, err := uuid.Parse(id)
	if err != nil {
		return app.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", prodUUID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	var cur uuid.NullUUID
	if strings.TrimSpace(cursor) != "" {
		uid, err := uuid.Parse(strings.TrimSpace(cursor))
		if err != nil {
			return nil, "", app.ErrInvalidInput
		}
		cur = uuid.NullUUID{UUID: uid, Valid: true}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($3::uuid IS NULL OR id > $3)
		ORDER BY id
		LIMIT $2`,
		strings.TrimSpace(query), limit, cur,
	)
	if err != nil {
		return nil, "", fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0, limit)
	var nextCursor string

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, "", fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
		nextCursor = p.ID
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	if len(out) < limit {
		nextCursor = ""
	}

	return out, nextCursor, nil
}

func (r *ProductRepo) ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error) {
	sellerUUID, err := uuid.Parse(sellerID)
	if err != nil {
		return nil, app.ErrInvalidInput
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE seller_id = $1 ORDER BY name", sellerUUID)
	if err != nil {
		return nil, fmt.Errorf("list seller products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
