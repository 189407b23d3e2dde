package transport

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
	"github.com/rachelSwimmer/StoreApi/pkg/domain/service"
)

type userHandlers struct {
	users service.UserService
}

func (h *userHandlers) register(r *mux.Router) {
	r.HandleFunc("/users", h.list).Methods(http.MethodGet)
	r.HandleFunc("/users", h.create).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", h.delete).Methods(http.MethodDelete)
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role.String(),
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type createUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type updateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (h *userHandlers) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	payload := make([]userResponse, 0, len(users))
	for i := range users {
		payload = append(payload, newUserResponse(&users[i]))
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *userHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, err, model.ErrUserNotFound)
		return
	}
	respondJSON(w, http.StatusOK, newUserResponse(user))
}

func (h *userHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	role := model.RoleCustomer
	if req.Role != "" {
		parsed, err := model.ParseRole(req.Role)
		if err != nil {
			respondError(w, err)
			return
		}
		role = parsed
	}

	user, err := h.users.RegisterUser(r.Context(), service.RegisterUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Location", "/api/users/"+user.ID.String())
	respondJSON(w, http.StatusCreated, newUserResponse(user))
}

func (h *userHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.users.UpdateUserProfile(r.Context(), id, model.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		respondError(w, err, model.ErrUserNotFound)
		return
	}
	respondJSON(w, http.StatusOK, newUserResponse(user))
}

func (h *userHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		respondError(w, err, model.ErrUserNotFound)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *userHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondJSON(w, http.StatusUnauthorized, messageResponse{Message: err.Error()})
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{Token: token, User: newUserResponse(user)})
}
