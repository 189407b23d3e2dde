package model

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderIsEmpty       = errors.New("cannot process an empty order")
	ErrInvalidQuantity    = errors.New("quantity must be a positive number")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type OrderStatus int

const (
	OrderPending OrderStatus = iota
	OrderProcessing
	OrderShipped
	OrderDelivered
	OrderCancelled
)

var orderStatusNames = map[OrderStatus]string{
	OrderPending:    "Pending",
	OrderProcessing: "Processing",
	OrderShipped:    "Shipped",
	OrderDelivered:  "Delivered",
	OrderCancelled:  "Cancelled",
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("OrderStatus(%d)", int(s))
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "Pending":
		return OrderPending, nil
	case "Processing":
		return OrderProcessing, nil
	case "Shipped":
		return OrderShipped, nil
	case "Delivered":
		return OrderDelivered, nil
	case "Cancelled":
		return OrderCancelled, nil
	}
	return OrderPending, fmt.Errorf(
		"%w: %q is not one of Pending, Processing, Shipped, Delivered, Cancelled",
		ErrInvalidOrderStatus, s)
}

// CanTransition is the single place that constrains status transitions.
// The current policy accepts any transition between valid statuses; tighten
// here if the business ever forbids e.g. Delivered -> Pending.
func CanTransition(from, to OrderStatus) bool {
	_, okFrom := orderStatusNames[from]
	_, okTo := orderStatusNames[to]
	return okFrom && okTo
}

func (s OrderStatus) Value() (driver.Value, error) {
	return s.String(), nil
}

func (s *OrderStatus) Scan(src interface{}) error {
	var str string
	switch v := src.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", src)
	}
	parsed, err := ParseOrderStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	ShippingAddress string
	OrderDate       time.Time
	ShippedDate     *time.Time
	DeliveredDate   *time.Time
	Items           []OrderItem
}

// OrderItem snapshots a product at order time; the unit price is decoupled
// from the live product price. Items are immutable once persisted.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// OrderPatch carries the optional fields of an order update. Status arrives
// as its wire name and is validated against the closed set on apply.
type OrderPatch struct {
	ShippingAddress *string
	Status          *string
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	Create(ctx context.Context, order *Order) error
	Find(ctx context.Context, id uuid.UUID) (*Order, error)
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}
