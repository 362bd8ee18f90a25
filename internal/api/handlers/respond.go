package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/devtrails/bootcamp-directory/internal/api/middleware"
	"github.com/devtrails/bootcamp-directory/internal/domain/policy"
	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

// response is the envelope every endpoint answers with.
type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithData(w http.ResponseWriter, statusCode int, data interface{}) {
	respondWithJSON(w, statusCode, response{Success: true, Data: data})
}

// respondWithList includes a count alongside the collection.
func respondWithList(w http.ResponseWriter, statusCode int, data interface{}, count int) {
	respondWithJSON(w, statusCode, response{Success: true, Data: data, Count: &count})
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, response{Success: false, Error: message})
}

// respondWithAppError maps a tagged application error to its HTTP status.
// Untagged errors are treated as internal and their detail is withheld.
func respondWithAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Msg("unhandled error reached the API layer")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeConflict:
		respondWithError(w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrorTypeUnauthorized:
		respondWithError(w, http.StatusUnauthorized, appErr.Message)
	case apperrors.ErrorTypeForbidden:
		respondWithError(w, http.StatusForbidden, appErr.Message)
	default:
		log.Error().Err(appErr).Msg("internal error reached the API layer")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireActor pulls the authenticated caller off the request context.
// Protected endpoints call this first and bail with 401 when absent.
func requireActor(w http.ResponseWriter, r *http.Request) (policy.Actor, bool) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "not authorized to access this route")
		return policy.Actor{}, false
	}
	return actor, true
}

// requireAdmin additionally gates the endpoint to administrators.
func requireAdmin(w http.ResponseWriter, r *http.Request) (policy.Actor, bool) {
	actor, ok := requireActor(w, r)
	if !ok {
		return policy.Actor{}, false
	}
	if !actor.IsAdmin() {
		respondWithError(w, http.StatusForbidden, "admin role required to access this route")
		return policy.Actor{}, false
	}
	return actor, true
}
