package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
)

type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type CreateOrderInput struct {
	UserID          uuid.UUID
	ShippingAddress string
	Items           []OrderItemInput
}

type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*model.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, patch model.OrderPatch) (*model.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

func NewOrderService(uow model.UnitOfWork, orders model.OrderRepository, dispatcher EventDispatcher) OrderService {
	return &orderService{uow: uow, orders: orders, dispatcher: dispatcher}
}

type orderService struct {
	uow        model.UnitOfWork
	orders     model.OrderRepository
	dispatcher EventDispatcher
}

// CreateOrder runs the whole check-decrement-insert sequence inside one
// transaction. Product rows are locked as they are read, so two concurrent
// orders for the same product serialize: the second sees the decremented
// stock and fails cleanly when it no longer suffices. Any failure rolls
// back every stock decrement already applied.
func (s *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, model.ErrOrderIsEmpty
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, errors.Wrapf(model.ErrInvalidQuantity, "product %s", line.ProductID)
		}
	}

	var (
		order       *model.Order
		stockEvents []model.ProductStockChanged
	)
	err := s.uow.Execute(ctx, func(p model.RepositoryProvider) error {
		if _, err := p.Users().Find(ctx, input.UserID); err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				return errors.Wrapf(model.ErrUserNotFound, "user %s", input.UserID)
			}
			return err
		}

		orderID, err := p.Orders().NextID()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(input.Items))
		stockEvents = stockEvents[:0]

		for _, line := range input.Items {
			product, err := p.Products().FindForUpdate(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, model.ErrProductNotFound) {
					return errors.Wrapf(model.ErrProductNotFound, "product %s", line.ProductID)
				}
				return err
			}
			if product.Stock < line.Quantity {
				return errors.Wrapf(model.ErrInsufficientStock,
					"product %s: requested %d, available %d",
					product.ID, line.Quantity, product.Stock)
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(subtotal)

			product.Stock -= line.Quantity
			product.UpdatedAt = now
			if err := p.Products().Update(ctx, product); err != nil {
				return err
			}
			stockEvents = append(stockEvents, model.ProductStockChanged{
				ProductID:    product.ID,
				ChangeAmount: -line.Quantity,
				NewQuantity:  product.Stock,
			})

			itemID, err := p.Orders().NextID()
			if err != nil {
				return err
			}
			items = append(items, model.OrderItem{
				ID:        itemID,
				OrderID:   orderID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
				Subtotal:  subtotal,
			})
		}

		order = &model.Order{
			ID:              orderID,
			UserID:          input.UserID,
			TotalAmount:     total,
			Status:          model.OrderPending,
			ShippingAddress: input.ShippingAddress,
			OrderDate:       now,
			Items:           items,
		}
		if err := p.Orders().Create(ctx, order); err != nil {
			return err
		}

		// Re-read through the same transaction to pick up storage-side
		// projections before they become visible to anyone else.
		order, err = p.Orders().Find(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, event := range stockEvents {
		_ = s.dispatcher.Dispatch(event)
	}
	_ = s.dispatcher.Dispatch(model.OrderPlaced{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
	})
	return order, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, id uuid.UUID, patch model.OrderPatch) (*model.Order, error) {
	order, err := s.orders.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	var statusChanged *model.OrderStatusChanged

	if patch.ShippingAddress != nil {
		order.ShippingAddress = *patch.ShippingAddress
	}
	if patch.Status != nil {
		newStatus, err := model.ParseOrderStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		if !model.CanTransition(order.Status, newStatus) {
			return nil, errors.Wrapf(model.ErrInvalidOrderStatus,
				"cannot move from %s to %s", order.Status, newStatus)
		}
		if newStatus != order.Status {
			statusChanged = &model.OrderStatusChanged{
				OrderID:   id,
				OldStatus: order.Status,
				NewStatus: newStatus,
			}
		}
		order.Status = newStatus

		// First entry into Shipped or Delivered stamps the date; repeated
		// transitions leave the original stamp alone.
		now := time.Now().UTC()
		if newStatus == model.OrderShipped && order.ShippedDate == nil {
			order.ShippedDate = &now
		}
		if newStatus == model.OrderDelivered && order.DeliveredDate == nil {
			order.DeliveredDate = &now
		}
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	if statusChanged != nil {
		_ = s.dispatcher.Dispatch(*statusChanged)
	}
	return order, nil
}

// DeleteOrder removes the order and its items. Stock decremented at
// creation time is deliberately not restored.
func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.dispatcher.Dispatch(model.OrderDeleted{OrderID: id})
	return nil
}
