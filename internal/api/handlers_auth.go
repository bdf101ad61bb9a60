package api

import (
	"net/http"

	"courier/internal/types"
)

func (a *CourierApp) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := a.auth.Register(req.Username, req.Email, req.Password)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusCreated, types.UserResponse{User: user})
}

// token implements the password grant: form-encoded credentials in, bearer
// token out.
func (a *CourierApp) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.writeInvalidRequest(w, "malformed form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		a.writeInvalidRequest(w, "username and password are required")
		return
	}

	token, err := a.auth.Login(username, password)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusOK, token)
}
