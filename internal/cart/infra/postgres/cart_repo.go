package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dimasqi/storefront/internal/cart/app"
	"github.com/dimasqi/storefront/internal/cart/domain"
	"github.com/google/uuid"
)

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) Get(ctx context.Context, userID, productID string) (domain.CartItem, error) {
	userUUID, productUUID, err := parsePair(userID, productID)
	if err != nil {
		return domain.CartItem{}, app.ErrNotFound
	}

	var it domain.CartItem
	err = r.db.QueryRowContext(ctx, `
		SELECT user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2`,
		userUUID, productUUID,
	).Scan(&userUUID, &productUUID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CartItem{}, app.ErrNotFound
	}
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("get cart item: %w", err)
	}

	it.UserID = userUUID.String()
	it.ProductID = productUUID.String()
	return it, nil
}

func (r *CartRepo) Upsert(ctx context.Context, item domain.CartItem) error {
	userUUID, productUUID, err := parsePair(item.UserID, item.ProductID)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`,
		userUUID, productUUID, item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

func (r *CartRepo) Remove(ctx context.Context, userID, productID string) error {
	userUUID, productUUID, err := parsePair(userID, productID)
	if err != nil {
		return app.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2",
		userUUID, productUUID,
	)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *CartRepo) List(ctx context.Context, userID string) ([]domain.CartItem, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, app.ErrInvalidInput
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at`,
		userUUID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var out []domain.CartItem
	for rows.Next() {
		var (
			it              domain.CartItem
			uUUID, prodUUID uuid.UUID
		)
		if err := rows.Scan(&uUUID, &prodUUID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		it.UserID = uUUID.String()
		it.ProductID = prodUUID.String()
		out = append(out, it)
	}
	return out, rows.Err()
}

func parsePair(userID, productID string) (uuid.UUID, uuid.UUID, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.UUID{}, uuid.UUID{}, fmt.Errorf("invalid user id: %w", err)
	}
	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return uuid.UUID{}, uuid.UUID{}, fmt.Errorf("invalid product id: %w", err)
	}
	return userUUID, productUUID, nil
}
