package transport

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rachelSwimmer/StoreApi/pkg/app/query"
	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
	"github.com/rachelSwimmer/StoreApi/pkg/domain/service"
)

type orderHandlers struct {
	orders service.OrderService
	views  query.OrderQueryService
}

func (h *orderHandlers) register(r *mux.Router) {
	r.HandleFunc("/orders", h.list).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.create).Methods(http.MethodPost)
	r.HandleFunc("/orders/user/{userId}", h.listByUser).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/orders/{id}", h.delete).Methods(http.MethodDelete)
}

type orderItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type createOrderRequest struct {
	UserID          uuid.UUID          `json:"userId"`
	ShippingAddress string             `json:"shippingAddress"`
	OrderItems      []orderItemRequest `json:"orderItems"`
}

type updateOrderRequest struct {
	ShippingAddress *string `json:"shippingAddress"`
	Status          *string `json:"status"`
}

func (h *orderHandlers) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.views.ListOrders(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *orderHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.views.GetOrder(r.Context(), id)
	if err != nil {
		respondError(w, err, model.ErrOrderNotFound)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *orderHandlers) listByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	orders, err := h.views.ListUserOrders(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// create responds 201 with the created order view and a Location header
// pointing at the by-id read. A missing user or product referenced from the
// body is a validation failure, not a 404.
func (h *orderHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		items = append(items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orders.CreateOrder(r.Context(), service.CreateOrderInput{
		UserID:          req.UserID,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := h.views.GetOrder(r.Context(), order.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Location", "/api/orders/"+order.ID.String())
	respondJSON(w, http.StatusCreated, view)
}

func (h *orderHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	order, err := h.orders.UpdateOrder(r.Context(), id, model.OrderPatch{
		ShippingAddress: req.ShippingAddress,
		Status:          req.Status,
	})
	if err != nil {
		respondError(w, err, model.ErrOrderNotFound)
		return
	}

	view, err := h.views.GetOrder(r.Context(), order.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *orderHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		respondError(w, err, model.ErrOrderNotFound)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
