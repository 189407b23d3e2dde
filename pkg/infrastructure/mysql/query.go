package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/rachelSwimmer/StoreApi/pkg/app/query"
	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
)

var _ query.OrderQueryService = &OrderQueryService{}

// OrderQueryService answers the order read contracts with flat join queries:
// buyer and product names come from the current users/products rows, not
// from order-time snapshots.
type OrderQueryService struct {
	db *sqlx.DB
}

func NewOrderQueryService(db *sqlx.DB) *OrderQueryService {
	return &OrderQueryService{db: db}
}

type orderViewRow struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	UserName        string          `db:"user_name"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Status          string          `db:"status"`
	ShippingAddress string          `db:"shipping_address"`
	OrderDate       time.Time       `db:"order_date"`
	ShippedDate     *time.Time      `db:"shipped_date"`
	DeliveredDate   *time.Time      `db:"delivered_date"`
}

type orderItemViewRow struct {
	ID          uuid.UUID       `db:"id"`
	OrderID     uuid.UUID       `db:"order_id"`
	ProductID   uuid.UUID       `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Subtotal    decimal.Decimal `db:"subtotal"`
}

const orderViewQuery = `
	SELECT o.id, o.user_id, CONCAT(u.first_name, ' ', u.last_name) AS user_name,
	       o.total_amount, o.status, o.shipping_address,
	       o.order_date, o.shipped_date, o.delivered_date
	FROM orders o
	JOIN users u ON u.id = o.user_id`

const orderItemViewQuery = `
	SELECT oi.id, oi.order_id, oi.product_id, p.name AS product_name,
	       oi.quantity, oi.unit_price, oi.subtotal
	FROM order_items oi
	JOIN products p ON p.id = oi.product_id`

func (s *OrderQueryService) ListOrders(ctx context.Context) ([]query.OrderView, error) {
	var rows []orderViewRow
	err := s.db.SelectContext(ctx, &rows, orderViewQuery+` ORDER BY o.order_date DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "select orders")
	}
	return s.assembleViews(ctx, rows)
}

func (s *OrderQueryService) GetOrder(ctx context.Context, id uuid.UUID) (*query.OrderView, error) {
	var row orderViewRow
	err := s.db.GetContext(ctx, &row, orderViewQuery+` WHERE o.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select order")
	}

	views, err := s.assembleViews(ctx, []orderViewRow{row})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *OrderQueryService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]query.OrderView, error) {
	var rows []orderViewRow
	err := s.db.SelectContext(ctx, &rows,
		orderViewQuery+` WHERE o.user_id = ? ORDER BY o.order_date DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "select user orders")
	}
	return s.assembleViews(ctx, rows)
}

func (s *OrderQueryService) assembleViews(ctx context.Context, rows []orderViewRow) ([]query.OrderView, error) {
	views := make([]query.OrderView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	sqlQuery, args, err := sqlx.In(orderItemViewQuery+` WHERE oi.order_id IN (?) ORDER BY oi.order_id, oi.line_no`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "build order items query")
	}

	var itemRows []orderItemViewRow
	if err := s.db.SelectContext(ctx, &itemRows, s.db.Rebind(sqlQuery), args...); err != nil {
		return nil, errors.Wrap(err, "select order items")
	}

	itemsByOrder := make(map[uuid.UUID][]query.OrderItemView, len(rows))
	for _, item := range itemRows {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], query.OrderItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}

	for _, row := range rows {
		items := itemsByOrder[row.ID]
		if items == nil {
			items = []query.OrderItemView{}
		}
		views = append(views, query.OrderView{
			ID:              row.ID,
			UserID:          row.UserID,
			UserName:        row.UserName,
			TotalAmount:     row.TotalAmount,
			Status:          row.Status,
			ShippingAddress: row.ShippingAddress,
			OrderDate:       row.OrderDate,
			ShippedDate:     row.ShippedDate,
			DeliveredDate:   row.DeliveredDate,
			Items:           items,
		})
	}
	return views, nil
}
