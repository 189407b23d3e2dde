package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
)

var _ model.OrderRepository = &orderRepository{}

type orderRepository struct {
	ext sqlx.ExtContext
}

type orderRow struct {
	ID              uuid.UUID         `db:"id"`
	UserID          uuid.UUID         `db:"user_id"`
	TotalAmount     decimal.Decimal   `db:"total_amount"`
	Status          model.OrderStatus `db:"status"`
	ShippingAddress string            `db:"shipping_address"`
	OrderDate       time.Time         `db:"order_date"`
	ShippedDate     *time.Time        `db:"shipped_date"`
	DeliveredDate   *time.Time        `db:"delivered_date"`
}

type orderItemRow struct {
	ID        uuid.UUID       `db:"id"`
	OrderID   uuid.UUID       `db:"order_id"`
	LineNo    int             `db:"line_no"`
	ProductID uuid.UUID       `db:"product_id"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	Subtotal  decimal.Decimal `db:"subtotal"`
}

func (r *orderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	const orderQuery = `
		INSERT INTO orders (id, user_id, total_amount, status, shipping_address, order_date, shipped_date, delivered_date)
		VALUES (:id, :user_id, :total_amount, :status, :shipping_address, :order_date, :shipped_date, :delivered_date)`
	_, err := sqlx.NamedExecContext(ctx, r.ext, orderQuery, orderRow{
		ID:              order.ID,
		UserID:          order.UserID,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		ShippingAddress: order.ShippingAddress,
		OrderDate:       order.OrderDate,
		ShippedDate:     order.ShippedDate,
		DeliveredDate:   order.DeliveredDate,
	})
	if err != nil {
		return errors.Wrap(err, "insert order")
	}

	const itemQuery = `
		INSERT INTO order_items (id, order_id, line_no, product_id, quantity, unit_price, subtotal)
		VALUES (:id, :order_id, :line_no, :product_id, :quantity, :unit_price, :subtotal)`
	for i, item := range order.Items {
		_, err := sqlx.NamedExecContext(ctx, r.ext, itemQuery, orderItemRow{
			ID:        item.ID,
			OrderID:   order.ID,
			LineNo:    i,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
		if err != nil {
			return errors.Wrap(err, "insert order item")
		}
	}
	return nil
}

func (r *orderRepository) Find(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var row orderRow
	err := sqlx.GetContext(ctx, r.ext, &row, `
		SELECT id, user_id, total_amount, status, shipping_address, order_date, shipped_date, delivered_date
		FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select order")
	}

	var itemRows []orderItemRow
	err = sqlx.SelectContext(ctx, r.ext, &itemRows, `
		SELECT id, order_id, line_no, product_id, quantity, unit_price, subtotal
		FROM order_items WHERE order_id = ? ORDER BY line_no`, id)
	if err != nil {
		return nil, errors.Wrap(err, "select order items")
	}

	items := make([]model.OrderItem, 0, len(itemRows))
	for _, item := range itemRows {
		items = append(items, model.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}

	return &model.Order{
		ID:              row.ID,
		UserID:          row.UserID,
		TotalAmount:     row.TotalAmount,
		Status:          row.Status,
		ShippingAddress: row.ShippingAddress,
		OrderDate:       row.OrderDate,
		ShippedDate:     row.ShippedDate,
		DeliveredDate:   row.DeliveredDate,
		Items:           items,
	}, nil
}

// Update touches only the mutable columns; order items are immutable once
// persisted.
func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	const query = `
		UPDATE orders
		SET shipping_address = :shipping_address, status = :status,
		    shipped_date = :shipped_date, delivered_date = :delivered_date
		WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, r.ext, query, orderRow{
		ID:              order.ID,
		Status:          order.Status,
		ShippingAddress: order.ShippingAddress,
		ShippedDate:     order.ShippedDate,
		DeliveredDate:   order.DeliveredDate,
	})
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	// matched rows, not changed rows: the pool connects with
	// clientFoundRows=true, so 0 here means the order is gone
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	if affected == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

// Delete removes the order; order_items go with it via ON DELETE CASCADE.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.ext.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete order")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete order")
	}
	if affected == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}
