package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryCreated struct {
	CategoryID uuid.UUID
	Name       string
}

func (e CategoryCreated) Type() string { return "CategoryCreated" }

type ProductCreated struct {
	ProductID  uuid.UUID
	CategoryID uuid.UUID
	Name       string
}

func (e ProductCreated) Type() string { return "ProductCreated" }

type ProductStockChanged struct {
	ProductID    uuid.UUID
	ChangeAmount int
	NewQuantity  int
}

func (e ProductStockChanged) Type() string { return "ProductStockChanged" }

type OrderPlaced struct {
	OrderID     uuid.UUID
	UserID      uuid.UUID
	TotalAmount decimal.Decimal
	ItemCount   int
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }

type OrderStatusChanged struct {
	OrderID   uuid.UUID
	OldStatus OrderStatus
	NewStatus OrderStatus
}

func (e OrderStatusChanged) Type() string { return "OrderStatusChanged" }

type OrderDeleted struct {
	OrderID uuid.UUID
}

func (e OrderDeleted) Type() string { return "OrderDeleted" }

type UserRegistered struct {
	UserID    uuid.UUID
	Email     string
	FirstName string
}

func (e UserRegistered) Type() string { return "UserRegistered" }
