package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"courier/internal/apperrors"
	"courier/internal/types"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type CreateChatRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateChatRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// decodeAndValidate decodes a JSON body into v and runs payload
// validation, writing the invalid-request response itself on failure.
func (a *CourierApp) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.writeInvalidRequest(w, "malformed request body")
		return false
	}

	if err := a.validate.Struct(v); err != nil {
		a.writeInvalidRequest(w, err.Error())
		return false
	}

	return true
}

func (a *CourierApp) pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		a.writeInvalidRequest(w, fmt.Sprintf("path parameter %q must be an integer", name))
		return 0, false
	}
	return value, true
}

// actor returns the authenticated user placed on the context by
// authMiddleware. Reaching a handler without one is a routing bug, not a
// caller mistake.
func (a *CourierApp) actor(w http.ResponseWriter, r *http.Request) (types.User, bool) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		a.writeError(w, apperrors.NewInvalidToken())
		return types.User{}, false
	}
	return user, true
}
