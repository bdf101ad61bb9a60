package api

import (
	"net/http"
	"slices"
)

func (a *CourierApp) listChats(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}

	chats, err := a.chats.ListForActor(user.Id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusOK, chats)
}

func (a *CourierApp) createChat(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}

	var req CreateChatRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	chat, err := a.chats.Create(req.Name, user.Id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusCreated, chat)
}

func (a *CourierApp) getChat(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}
	chatId, ok := a.pathInt(w, r, "id")
	if !ok {
		return
	}

	include := r.URL.Query()["include"]
	includeUsers := slices.Contains(include, "users")
	includeMessages := slices.Contains(include, "messages")

	chat, err := a.chats.Get(chatId, user.Id, includeUsers, includeMessages)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusOK, chat)
}

func (a *CourierApp) updateChat(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}
	chatId, ok := a.pathInt(w, r, "id")
	if !ok {
		return
	}

	var req UpdateChatRequest
	if !a.decodeAndValidate(w, r, &req) {
		return
	}

	chat, err := a.chats.Rename(chatId, req.Name, user.Id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusOK, chat)
}

func (a *CourierApp) deleteChat(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}
	chatId, ok := a.pathInt(w, r, "id")
	if !ok {
		return
	}

	if err := a.chats.Delete(chatId, user.Id); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *CourierApp) getChatMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}
	chatId, ok := a.pathInt(w, r, "id")
	if !ok {
		return
	}

	members, err := a.chats.Members(chatId, user.Id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusOK, members)
}

func (a *CourierApp) addChatMember(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}
	chatId, ok := a.pathInt(w, r, "id")
	if !ok {
		return
	}
	targetId, ok := a.pathInt(w, r, "user_id")
	if !ok {
		return
	}

	members, err := a.chats.AddMember(chatId, targetId, user.Id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusCreated, members)
}

func (a *CourierApp) removeChatMember(w http.ResponseWriter, r *http.Request) {
	user, ok := a.actor(w, r)
	if !ok {
		return
	}
	chatId, ok := a.pathInt(w, r, "id")
	if !ok {
		return
	}
	targetId, ok := a.pathInt(w, r, "user_id")
	if !ok {
		return
	}

	members, err := a.chats.RemoveMember(chatId, targetId, user.Id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJson(w, http.StatusOK, members)
}
