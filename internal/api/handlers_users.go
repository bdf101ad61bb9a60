package api

import (
	"net/http"

	"courier/internal/types"
)

func (a *CourierApp) listUsers(w http.ResponseWriter, _ *http.Request) {
	users, err := a.users.List()
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusOK, users)
}

func (a *CourierApp) currentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}

	a.writeJson(w, http.StatusOK, types.UserResponse{User: user})
}

func (a *CourierApp) updateCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := a.users.Update(user.Id, req.Username, req.Email)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusOK, types.UserResponse{User: updated})
}

func (a *CourierApp) getUser(w http.ResponseWriter, r *http.Request) {
	userId, ok := a.pathInt(w, r, "id")
	if !ok {
		return
	}

	user, err := a.users.Get(userId)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusOK, types.UserResponse{User: user})
}

func (a *CourierApp) getUserChats(w http.ResponseWriter, r *http.Request) {
	userId, ok := a.pathInt(w, r, "id")
	if !ok {
		return
	}

	chats, err := a.users.ChatsForUser(userId)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusOK, chats)
}
