package api

import (
	"errors"
	"net/http"

	"courier/internal/apperrors"
)

// Error bodies are nested under a detail key. Not-found and duplicate
// carry entity coordinates; auth, permission and state failures carry an
// error code plus description.

type errorBody struct {
	Detail any `json:"detail"`
}

type entityNotFoundDetail struct {
	Type       string `json:"type"`
	EntityName string `json:"entity_name"`
	EntityID   int    `json:"entity_id"`
}

type duplicateEntityDetail struct {
	Type        string `json:"type"`
	EntityName  string `json:"entity_name"`
	EntityField string `json:"entity_field"`
	EntityValue string `json:"entity_value"`
}

type errorDetail struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// writeError maps a service error onto its HTTP status and body shape.
// Anything outside the domain taxonomy is a 500 and gets logged; the
// taxonomy itself is surfaced verbatim.
func (a *CourierApp) writeError(w http.ResponseWriter, err error) {
	var (
		notFoundErr *apperrors.NotFoundError
		dupErr      *apperrors.DuplicateEntityError
		authErr     *apperrors.AuthError
		permErr     *apperrors.PermissionError
		stateErr    *apperrors.InvalidStateError
	)

	switch {
	case errors.As(err, &notFoundErr):
		a.writeJson(w, http.StatusNotFound, errorBody{Detail: entityNotFoundDetail{
			Type:       "entity_not_found",
			EntityName: notFoundErr.EntityName,
			EntityID:   notFoundErr.EntityID,
		}})
	case errors.As(err, &dupErr):
		a.writeJson(w, http.StatusUnprocessableEntity, errorBody{Detail: duplicateEntityDetail{
			Type:        "duplicate_entity",
			EntityName:  dupErr.EntityName,
			EntityField: dupErr.EntityField,
			EntityValue: dupErr.EntityValue,
		}})
	case errors.As(err, &authErr):
		a.writeJson(w, http.StatusUnauthorized, errorBody{Detail: errorDetail{
			Error:            "invalid_client",
			ErrorDescription: authErr.Description,
		}})
	case errors.As(err, &permErr):
		a.writeJson(w, http.StatusForbidden, errorBody{Detail: errorDetail{
			Error:            "no_permission",
			ErrorDescription: permErr.Error(),
		}})
	case errors.As(err, &stateErr):
		a.writeJson(w, http.StatusUnprocessableEntity, errorBody{Detail: errorDetail{
			Error:            "invalid_state",
			ErrorDescription: stateErr.Description,
		}})
	default:
		a.log.Printf("internal error: %v", err)
		a.writeJson(w, http.StatusInternalServerError, errorBody{Detail: errorDetail{
			Error:            "internal_error",
			ErrorDescription: "internal server error",
		}})
	}
}

// writeInvalidRequest covers malformed bodies, failed payload validation
// and unparseable path parameters.
func (a *CourierApp) writeInvalidRequest(w http.ResponseWriter, description string) {
	a.writeJson(w, http.StatusUnprocessableEntity, errorBody{Detail: errorDetail{
		Error:            "invalid_request",
		ErrorDescription: description,
	}})
}
