package tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
	"github.com/rachelSwimmer/StoreApi/pkg/domain/service"
)

type orderFixture struct {
	service    service.OrderService
	state      *mockState
	dispatcher *mockEventDispatcher

	userID   uuid.UUID
	productA uuid.UUID
	productB uuid.UUID
}

func setupOrders(t *testing.T) *orderFixture {
	t.Helper()

	state := newMockState()
	dispatcher := &mockEventDispatcher{}
	orderService := service.NewOrderService(
		&mockUnitOfWork{state: state},
		&mockOrderRepository{state: state},
		dispatcher,
	)

	f := &orderFixture{
		service:    orderService,
		state:      state,
		dispatcher: dispatcher,
		userID:     uuid.New(),
		productA:   uuid.New(),
		productB:   uuid.New(),
	}

	categoryID := uuid.New()
	state.categories[categoryID] = model.Category{ID: categoryID, Name: "Groceries"}
	state.users[f.userID] = model.User{ID: f.userID, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	state.products[f.productA] = model.Product{
		ID: f.productA, Name: "Milk", Price: decimal.RequireFromString("10.00"),
		Stock: 5, CategoryID: categoryID,
	}
	state.products[f.productB] = model.Product{
		ID: f.productB, Name: "Bread", Price: decimal.RequireFromString("25.00"),
		Stock: 3, CategoryID: categoryID,
	}
	return f
}

func (f *orderFixture) createOrder(items ...service.OrderItemInput) (*model.Order, error) {
	return f.service.CreateOrder(context.Background(), service.CreateOrderInput{
		UserID:          f.userID,
		ShippingAddress: "1 Infinite Loop",
		Items:           items,
	})
}

func TestCreateOrder(t *testing.T) {
	f := setupOrders(t)

	order, err := f.createOrder(
		service.OrderItemInput{ProductID: f.productA, Quantity: 2},
		service.OrderItemInput{ProductID: f.productB, Quantity: 1},
	)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, f.userID, order.UserID)
	assert.Equal(t, "1 Infinite Loop", order.ShippingAddress)
	assert.False(t, order.OrderDate.IsZero())
	assert.Nil(t, order.ShippedDate)
	assert.Nil(t, order.DeliveredDate)

	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("45.00")),
		"expected total 45.00, got %s", order.TotalAmount)

	require.Len(t, order.Items, 2)
	sum := decimal.Zero
	for _, item := range order.Items {
		assert.True(t, item.Subtotal.Equal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))))
		sum = sum.Add(item.Subtotal)
	}
	assert.True(t, order.TotalAmount.Equal(sum), "total must equal sum of subtotals")

	// unit prices are captured at order time, in caller order
	assert.Equal(t, f.productA, order.Items[0].ProductID)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, 2, order.Items[0].Quantity)

	assert.Equal(t, 3, f.state.products[f.productA].Stock)
	assert.Equal(t, 2, f.state.products[f.productB].Stock)

	saved, ok := f.state.orders[order.ID]
	require.True(t, ok)
	assert.Len(t, saved.Items, 2)

	var placed []model.OrderPlaced
	var stockChanges []model.ProductStockChanged
	for _, event := range f.dispatcher.events {
		switch e := event.(type) {
		case model.OrderPlaced:
			placed = append(placed, e)
		case model.ProductStockChanged:
			stockChanges = append(stockChanges, e)
		}
	}
	require.Len(t, placed, 1)
	assert.Equal(t, order.ID, placed[0].OrderID)
	require.Len(t, stockChanges, 2)
	assert.Equal(t, -2, stockChanges[0].ChangeAmount)
}

func TestCreateOrderUnknownUser(t *testing.T) {
	f := setupOrders(t)
	unknownUser := uuid.New()

	_, err := f.service.CreateOrder(context.Background(), service.CreateOrderInput{
		UserID:          unknownUser,
		ShippingAddress: "nowhere",
		Items:           []service.OrderItemInput{{ProductID: f.productA, Quantity: 1}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
	assert.Contains(t, err.Error(), unknownUser.String())

	assert.Empty(t, f.state.orders, "no order may be persisted")
	assert.Equal(t, 5, f.state.products[f.productA].Stock, "no stock may be touched")
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := setupOrders(t)
	unknownProduct := uuid.New()

	_, err := f.createOrder(
		service.OrderItemInput{ProductID: f.productA, Quantity: 2},
		service.OrderItemInput{ProductID: unknownProduct, Quantity: 1},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
	assert.Contains(t, err.Error(), unknownProduct.String())

	assert.Empty(t, f.state.orders)
	assert.Equal(t, 5, f.state.products[f.productA].Stock,
		"decrement applied before the failing line must be rolled back")
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	f := setupOrders(t)

	_, err := f.createOrder(
		service.OrderItemInput{ProductID: f.productA, Quantity: 1},
		service.OrderItemInput{ProductID: f.productB, Quantity: 4},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Contains(t, err.Error(), f.productB.String())
	assert.Contains(t, err.Error(), "available 3")

	assert.Empty(t, f.state.orders)
	assert.Equal(t, 5, f.state.products[f.productA].Stock)
	assert.Equal(t, 3, f.state.products[f.productB].Stock)
}

func TestCreateOrderStockDepletion(t *testing.T) {
	f := setupOrders(t)

	// Bread starts at 3: the first order drains it to 1, so a second order
	// for 2 must fail against the remaining stock, not the original.
	first, err := f.createOrder(service.OrderItemInput{ProductID: f.productB, Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, 1, f.state.products[f.productB].Stock)

	_, err = f.createOrder(service.OrderItemInput{ProductID: f.productB, Quantity: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Contains(t, err.Error(), f.productB.String())
	assert.Contains(t, err.Error(), "available 1")

	assert.Len(t, f.state.orders, 1, "only the first order may be persisted")
	_, ok := f.state.orders[first.ID]
	assert.True(t, ok)
	assert.Equal(t, 1, f.state.products[f.productB].Stock,
		"stock must reflect the first order only")
}

func TestCreateOrderValidatesInput(t *testing.T) {
	f := setupOrders(t)

	t.Run("empty order", func(t *testing.T) {
		_, err := f.createOrder()
		assert.ErrorIs(t, err, model.ErrOrderIsEmpty)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := f.createOrder(service.OrderItemInput{ProductID: f.productA, Quantity: 0})
		assert.ErrorIs(t, err, model.ErrInvalidQuantity)
		assert.Equal(t, 5, f.state.products[f.productA].Stock)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	f := setupOrders(t)
	order, err := f.createOrder(service.OrderItemInput{ProductID: f.productA, Quantity: 1})
	require.NoError(t, err)
	f.dispatcher.Reset()

	shipped := "Shipped"
	updated, err := f.service.UpdateOrder(context.Background(), order.ID, model.OrderPatch{Status: &shipped})
	require.NoError(t, err)
	assert.Equal(t, model.OrderShipped, updated.Status)
	require.NotNil(t, updated.ShippedDate)
	firstStamp := *updated.ShippedDate

	require.Len(t, f.dispatcher.events, 1)
	change, ok := f.dispatcher.events[0].(model.OrderStatusChanged)
	require.True(t, ok)
	assert.Equal(t, model.OrderPending, change.OldStatus)
	assert.Equal(t, model.OrderShipped, change.NewStatus)

	t.Run("second Shipped update keeps the original stamp", func(t *testing.T) {
		time.Sleep(5 * time.Millisecond)
		again, err := f.service.UpdateOrder(context.Background(), order.ID, model.OrderPatch{Status: &shipped})
		require.NoError(t, err)
		require.NotNil(t, again.ShippedDate)
		assert.True(t, again.ShippedDate.Equal(firstStamp))
	})

	t.Run("Delivered stamps its own date", func(t *testing.T) {
		delivered := "Delivered"
		updated, err := f.service.UpdateOrder(context.Background(), order.ID, model.OrderPatch{Status: &delivered})
		require.NoError(t, err)
		require.NotNil(t, updated.DeliveredDate)
		assert.True(t, updated.ShippedDate.Equal(firstStamp))
	})

	t.Run("permissive policy allows moving back to Pending", func(t *testing.T) {
		pending := "Pending"
		updated, err := f.service.UpdateOrder(context.Background(), order.ID, model.OrderPatch{Status: &pending})
		require.NoError(t, err)
		assert.Equal(t, model.OrderPending, updated.Status)
	})
}

func TestUpdateOrderInvalidStatus(t *testing.T) {
	f := setupOrders(t)
	order, err := f.createOrder(service.OrderItemInput{ProductID: f.productA, Quantity: 1})
	require.NoError(t, err)

	bogus := "Refunded"
	address := "changed street 1"
	_, err = f.service.UpdateOrder(context.Background(), order.ID, model.OrderPatch{
		ShippingAddress: &address,
		Status:          &bogus,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidOrderStatus)
	assert.Contains(t, err.Error(), "Pending, Processing, Shipped, Delivered, Cancelled")

	saved := f.state.orders[order.ID]
	assert.Equal(t, model.OrderPending, saved.Status, "order must stay unmodified")
	assert.Equal(t, "1 Infinite Loop", saved.ShippingAddress, "order must stay unmodified")
}

func TestUpdateOrderShippingAddress(t *testing.T) {
	f := setupOrders(t)
	order, err := f.createOrder(service.OrderItemInput{ProductID: f.productA, Quantity: 1})
	require.NoError(t, err)

	address := "742 Evergreen Terrace"
	updated, err := f.service.UpdateOrder(context.Background(), order.ID, model.OrderPatch{ShippingAddress: &address})
	require.NoError(t, err)
	assert.Equal(t, address, updated.ShippingAddress)
	assert.Equal(t, model.OrderPending, updated.Status)
}

func TestUpdateOrderNotFound(t *testing.T) {
	f := setupOrders(t)

	_, err := f.service.UpdateOrder(context.Background(), uuid.New(), model.OrderPatch{})
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestDeleteOrder(t *testing.T) {
	f := setupOrders(t)
	order, err := f.createOrder(service.OrderItemInput{ProductID: f.productA, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteOrder(context.Background(), order.ID))
	_, exists := f.state.orders[order.ID]
	assert.False(t, exists)
	assert.Equal(t, 3, f.state.products[f.productA].Stock, "deleting an order does not restore stock")

	err = f.service.DeleteOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}
