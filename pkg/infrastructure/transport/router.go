package transport

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rachelSwimmer/StoreApi/pkg/app/query"
	"github.com/rachelSwimmer/StoreApi/pkg/domain/service"
)

type Deps struct {
	Categories  service.CategoryService
	Products    service.ProductService
	Orders      service.OrderService
	OrderViews  query.OrderQueryService
	Users       service.UserService
	Tokens      TokenVerifier
	AuthEnabled bool
}

func Router(d Deps) http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	if d.AuthEnabled {
		api.Use(authMiddleware(d.Tokens))
	}

	(&categoryHandlers{categories: d.Categories}).register(api)
	(&productHandlers{products: d.Products}).register(api)
	(&orderHandlers{orders: d.Orders, views: d.OrderViews}).register(api)
	(&userHandlers{users: d.Users}).register(api)

	return logMiddleware(r)
}
