package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ovenside/bakery-admin/internal/orders/domain"
	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	ListOrders(ctx context.Context) ([]domain.OrderSummary, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
}

type postgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

func (r *postgresOrderRepository) ListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	query := `SELECT
                  o.order_id,
                  u.name AS customer_name,
                  u.email,
                  u.phone,
                  o.order_status,
                  o.total_price,
                  o.delivery_type,
                  o.delivery_address,
                  p.name AS product_name,
                  oi.quantity,
                  oi.price AS item_price
              FROM orders o
              JOIN users u ON o.user_id = u.user_id
              JOIN order_items oi ON o.order_id = oi.order_id
              JOIN products p ON oi.product_id = p.product_id
              ORDER BY o.order_id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListOrders: query failed", err)
		return nil, err
	}
	defer rows.Close()

	orders := []domain.OrderSummary{}
	for rows.Next() {
		var o domain.OrderSummary
		if err := rows.Scan(
			&o.OrderID, &o.CustomerName, &o.Email, &o.Phone, &o.OrderStatus,
			&o.TotalPrice, &o.DeliveryType, &o.DeliveryAddress,
			&o.ProductName, &o.Quantity, &o.ItemPrice,
		); err != nil {
			logger.Error("ListOrders: scan failed", err)
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListOrders: rows iteration error", err)
		return nil, err
	}
	return orders, nil
}

func (r *postgresOrderRepository) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET order_status = $1 WHERE order_id = $2`, status, orderID)
	if err != nil {
		logger.Error("UpdateOrderStatus: exec failed", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
