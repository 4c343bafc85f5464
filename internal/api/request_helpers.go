package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/trello-manager/internal/domain"
)

// Route parameter names.
const (
	paramType = "type"
	paramID   = "id"
)

// getPathCardType parses the {type} path parameter.
func getPathCardType(r *http.Request) (domain.CardType, error) {
	return domain.ParseCardType(chi.URLParam(r, paramType))
}

// getPathCardID parses the {id} path parameter as a positive integer.
func getPathCardID(r *http.Request) (int64, error) {
	return domain.ParseCardID(chi.URLParam(r, paramID))
}

// getPathTypeAndID extracts both path parameters and writes a 400 response
// if either is invalid.
func getPathTypeAndID(w http.ResponseWriter, r *http.Request) (domain.CardType, int64, bool) {
	cardType, err := getPathCardType(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return "", 0, false
	}

	id, err := getPathCardID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return "", 0, false
	}

	return cardType, id, true
}
