package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dimasqi/storefront/internal/order/app"
	"github.com/dimasqi/storefront/internal/order/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// CommitCartTx converts the user's cart lines into an order in a single
// transaction. Product rows are locked in product_id order before the
// stock re-check, so two concurrent commits cannot both pass a stale check
// and cannot take the same locks in opposite sequence; any shortfall rolls
// everything back.
func (r *OrderRepo) CommitCartTx(ctx context.Context, userID string, shipping domain.ShippingDetails, method domain.PaymentMethod) (domain.Order, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Order{}, app.ErrInvalidInput
	}

	var committed domain.Order

	err = r.execTX(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT ci.product_id, p.name, p.price, p.stock, ci.quantity
			FROM cart_items ci
			JOIN products p ON p.id = ci.product_id
			WHERE ci.user_id = $1
			ORDER BY ci.product_id
			FOR UPDATE OF p`,
			userUUID,
		)
		if err != nil {
			return fmt.Errorf("lock cart lines: %w", err)
		}

		var lines []domain.CommitLine
		for rows.Next() {
			var (
				line     domain.CommitLine
				prodUUID uuid.UUID
			)
			if err := rows.Scan(&prodUUID, &line.Name, &line.UnitPrice, &line.Available, &line.Quantity); err != nil {
				rows.Close()
				return fmt.Errorf("scan cart line: %w", err)
			}
			line.ProductID = prodUUID.String()
			lines = append(lines, line)
		}
		if err := rows.Close(); err != nil {
			return err
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate cart lines: %w", err)
		}

		if len(lines) == 0 {
			return app.ErrNothingToCommit
		}

		order, err := domain.BuildOrder(userID, shipping, method, lines)
		if err != nil {
			return err
		}

		var orderUUID uuid.UUID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO orders (user_id, total_price, shipping_address, shipping_city,
				shipping_state, shipping_postal_code, shipping_country, payment_method)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at`,
			userUUID, order.TotalPrice,
			shipping.Address, shipping.City, shipping.State, shipping.PostalCode, shipping.Country,
			string(method),
		).Scan(&orderUUID, &order.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		order.ID = orderUUID.String()

		for i := range order.Items {
			item := &order.Items[i]
			prodUUID := uuid.MustParse(item.ProductID)

			var itemUUID uuid.UUID
			err = tx.QueryRowContext(ctx, `
				INSERT INTO order_items (order_id, product_id, product_name, quantity, price_at_purchase)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				orderUUID, prodUUID, item.Name, item.Quantity, item.PriceAtPurchase,
			).Scan(&itemUUID)
			if err != nil {
				return fmt.Errorf("insert order item %d: %w", i, err)
			}
			item.ID = itemUUID.String()
			item.OrderID = order.ID

			res, err := tx.ExecContext(ctx, `
				UPDATE products
				SET stock = stock - $2, updated_at = now()
				WHERE id = $1 AND stock >= $2`,
				prodUUID, item.Quantity,
			)
			if err != nil {
				return fmt.Errorf("decrement stock for %s: %w", item.ProductID, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				// Cannot happen while the row is locked, but a decrement
				// below zero must never be committed.
				return fmt.Errorf("stock underflow for %s", item.ProductID)
			}
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM cart_items WHERE user_id = $1", userUUID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		committed = order
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return committed, nil
}

const orderColumns = `o.id, o.user_id, o.total_price, o.shipping_address, o.shipping_city,
	o.shipping_state, o.shipping_postal_code, o.shipping_country, o.payment_method, o.created_at`

func scanOrder(row interface{ Scan(...any) error }) (domain.Order, error) {
	var (
		o                   domain.Order
		orderUUID, userUUID uuid.UUID
		method              string
	)
	err := row.Scan(&orderUUID, &userUUID, &o.TotalPrice,
		&o.Shipping.Address, &o.Shipping.City, &o.Shipping.State,
		&o.Shipping.PostalCode, &o.Shipping.Country, &method, &o.CreatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	o.ID = orderUUID.String()
	o.UserID = userUUID.String()
	o.PaymentMethod = domain.PaymentMethod(method)
	return o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, app.ErrInvalidInput
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders o WHERE o.user_id = $1 ORDER BY o.created_at DESC",
		userUUID,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		orders   []domain.Order
		orderIDs []uuid.UUID
		index    = map[string]int{}
	)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
		orderIDs = append(orderIDs, uuid.MustParse(o.ID))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.product_name, oi.quantity, oi.price_at_purchase
		FROM order_items oi
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`,
		pq.Array(orderIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item, orderID, err := scanOrderItem(itemRows)
		if err != nil {
			return nil, err
		}
		i := index[orderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return orders, itemRows.Err()
}

func (r *OrderRepo) Get(ctx context.Context, userID, orderID string) (domain.Order, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Order{}, app.ErrNotFound
	}
	orderUUID, err := uuid.Parse(orderID)
	if err != nil {
		return domain.Order{}, app.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders o WHERE o.id = $1 AND o.user_id = $2",
		orderUUID, userUUID,
	)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order: %w", err)
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.product_name, oi.quantity, oi.price_at_purchase
		FROM order_items oi
		WHERE oi.order_id = $1
		ORDER BY oi.id`,
		orderUUID,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item, _, err := scanOrderItem(itemRows)
		if err != nil {
			return domain.Order{}, err
		}
		o.Items = append(o.Items, item)
	}
	return o, itemRows.Err()
}

func scanOrderItem(rows *sql.Rows) (domain.OrderItem, string, error) {
	var (
		item                          domain.OrderItem
		itemUUID, orderUUID, prodUUID uuid.UUID
	)
	if err := rows.Scan(&itemUUID, &orderUUID, &prodUUID, &item.Name, &item.Quantity, &item.PriceAtPurchase); err != nil {
		return domain.OrderItem{}, "", fmt.Errorf("scan order item: %w", err)
	}
	item.ID = itemUUID.String()
	item.OrderID = orderUUID.String()
	item.ProductID = prodUUID.String()
	return item, item.OrderID, nil
}
