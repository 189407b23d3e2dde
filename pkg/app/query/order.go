package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderView is the flat read-side record for an order. The buyer's display
// name and per-item product names are resolved by join at read time, so they
// reflect the current catalog rather than the catalog at order time.
type OrderView struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	UserName        string          `json:"userName"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	ShippingAddress string          `json:"shippingAddress"`
	OrderDate       time.Time       `json:"orderDate"`
	ShippedDate     *time.Time      `json:"shippedDate,omitempty"`
	DeliveredDate   *time.Time      `json:"deliveredDate,omitempty"`
	Items           []OrderItemView `json:"orderItems"`
}

type OrderItemView struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderQueryService serves the read contracts. GetOrder reports an absent
// order with model.ErrOrderNotFound.
type OrderQueryService interface {
	ListOrders(ctx context.Context) ([]OrderView, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]OrderView, error)
}
