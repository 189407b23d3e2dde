package transport

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
	"github.com/rachelSwimmer/StoreApi/pkg/domain/service"
)

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("write response")
	}
}

// Sentinels that always mean the caller sent something invalid. Note the
// not-found entity sentinels: a missing user or product referenced from an
// order body is a validation problem. The same sentinel on a by-id lookup
// is a 404, which handlers request explicitly via respondError.
var validationSentinels = []error{
	model.ErrOrderIsEmpty,
	model.ErrInvalidQuantity,
	model.ErrInvalidOrderStatus,
	model.ErrInsufficientStock,
	model.ErrInvalidRole,
	model.ErrEmailTaken,
	model.ErrUserNotFound,
	model.ErrProductNotFound,
	model.ErrCategoryNotFound,
	service.ErrInvalidPage,
	service.ErrNegativePrice,
	service.ErrNegativeStock,
	service.ErrUnknownCategory,
	service.ErrPasswordTooShort,
}

// respondError maps a failure onto the wire: sentinels listed in asNotFound
// become 404, known validation sentinels become 400 with the error text,
// anything else is logged once and returned as an opaque 500. Validation
// failures and not-found outcomes are expected and never logged.
func respondError(w http.ResponseWriter, err error, asNotFound ...error) {
	for _, sentinel := range asNotFound {
		if errors.Is(err, sentinel) {
			respondJSON(w, http.StatusNotFound, messageResponse{Message: sentinel.Error()})
			return
		}
	}
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			respondJSON(w, http.StatusBadRequest, messageResponse{Message: err.Error()})
			return
		}
	}
	log.WithError(err).Error("request failed")
	respondJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal server error"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, messageResponse{Message: "malformed request body"})
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, messageResponse{Message: "malformed " + name})
		return uuid.Nil, false
	}
	return id, true
}
