package api

import (
	"net/http"
)

func (a *CourierApp) listMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}
	chatId, ok := a.pathInt(w, r, "id")
	if !ok {
		return
	}

	messages, err := a.messages.List(chatId, user.Id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusOK, messages)
}

func (a *CourierApp) createMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}
	chatId, ok := a.pathInt(w, r, "id")
	if !ok {
		return
	}

	var req CreateMessageRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	message, err := a.messages.Send(chatId, req.Text, user.Id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusCreated, message)
}

func (a *CourierApp) updateMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}
	chatId, ok := a.pathInt(w, r, "id")
	if !ok {
		return
	}
	messageId, ok := a.pathInt(w, r, "message_id")
	if !ok {
		return
	}

	var req CreateMessageRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	message, err := a.messages.Edit(chatId, messageId, req.Text, user.Id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusOK, message)
}

func (a *CourierApp) deleteMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}
	chatId, ok := a.pathInt(w, r, "id")
	if !ok {
		return
	}
	messageId, ok := a.pathInt(w, r, "message_id")
	if !ok {
		return
	}

	if err := a.messages.Delete(chatId, messageId, user.Id); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
