package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
	"github.com/rachelSwimmer/StoreApi/pkg/domain/service"
)

const defaultPageSize = 20

type productHandlers struct {
	products service.ProductService
}

func (h *productHandlers) register(r *mux.Router) {
	// search before {id} so "search" is not swallowed by the id route
	r.HandleFunc("/products/search", h.search).Methods(http.MethodGet)
	r.HandleFunc("/products", h.list).Methods(http.MethodGet)
	r.HandleFunc("/products", h.create).Methods(http.MethodPost)
	r.HandleFunc("/products/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/products/{id}", h.delete).Methods(http.MethodDelete)
}

type productResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func newProductResponse(p *model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newProductListResponse(products []model.Product) []productResponse {
	payload := make([]productResponse, 0, len(products))
	for i := range products {
		payload = append(payload, newProductResponse(&products[i]))
	}
	return payload
}

type productPageResponse struct {
	Items      []productResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

func newProductPageResponse(page *model.ProductPage) productPageResponse {
	return productPageResponse{
		Items:      newProductListResponse(page.Items),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  uuid.UUID       `json:"categoryId"`
}

type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	CategoryID  *uuid.UUID       `json:"categoryId"`
}

func (h *productHandlers) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if rawCategory := r.URL.Query().Get("categoryId"); rawCategory != "" {
		categoryID, err := uuid.Parse(rawCategory)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, messageResponse{Message: "malformed categoryId"})
			return
		}
		products, err := h.products.ListProductsByCategory(ctx, categoryID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, newProductListResponse(products))
		return
	}

	page, pageSize, paged, ok := pageParams(w, r)
	if !ok {
		return
	}
	if paged {
		result, err := h.products.ListProductsPage(ctx, page, pageSize)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, newProductPageResponse(result))
		return
	}

	products, err := h.products.ListProducts(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newProductListResponse(products))
}

func (h *productHandlers) search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	term := r.URL.Query().Get("q")

	page, pageSize, paged, ok := pageParams(w, r)
	if !ok {
		return
	}
	if paged {
		result, err := h.products.SearchProductsPage(ctx, term, page, pageSize)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, newProductPageResponse(result))
		return
	}

	products, err := h.products.SearchProducts(ctx, term)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newProductListResponse(products))
}

func (h *productHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, err, model.ErrProductNotFound)
		return
	}
	respondJSON(w, http.StatusOK, newProductResponse(product))
}

func (h *productHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.products.CreateProduct(r.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Location", "/api/products/"+product.ID.String())
	respondJSON(w, http.StatusCreated, newProductResponse(product))
}

func (h *productHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), id, model.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(w, err, model.ErrProductNotFound)
		return
	}
	respondJSON(w, http.StatusOK, newProductResponse(product))
}

func (h *productHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, err, model.ErrProductNotFound)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// pageParams writes a 400 response and reports ok=false when a pagination
// value is present but not numeric.
func pageParams(w http.ResponseWriter, r *http.Request) (page, pageSize int, paged, ok bool) {
	rawPage := r.URL.Query().Get("page")
	rawSize := r.URL.Query().Get("pageSize")
	if rawPage == "" && rawSize == "" {
		return 0, 0, false, true
	}

	page, pageSize = 1, defaultPageSize
	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, messageResponse{Message: "malformed page"})
			return 0, 0, false, false
		}
		page = n
	}
	if rawSize != "" {
		n, err := strconv.Atoi(rawSize)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, messageResponse{Message: "malformed pageSize"})
			return 0, 0, false, false
		}
		pageSize = n
	}
	return page, pageSize, true, true
}
