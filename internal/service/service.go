// Package service implements the resource services: each one combines the
// access checks with the persistence gateway for a single entity type and
// returns API types. Every authorization failure surfaces as a typed error;
// no deny path ever yields an empty success.
package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"courier/internal/apperrors"
	"courier/internal/database"
	"courier/internal/types"
)

func resolveUser(db database.CourierRepository, userId int) (database.User, error) {
	user, err := db.GetUserById(userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.User{}, apperrors.NewNotFound("User", userId)
		}
		return database.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func resolveChat(db database.CourierRepository, chatId int) (database.Chat, error) {
	chat, err := db.GetChatById(chatId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.Chat{}, apperrors.NewNotFound("Chat", chatId)
		}
		return database.Chat{}, fmt.Errorf("get chat: %w", err)
	}
	return chat, nil
}

func resolveMessage(db database.CourierRepository, messageId int) (database.Message, error) {
	message, err := db.GetMessageById(messageId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.Message{}, apperrors.NewNotFound("Message", messageId)
		}
		return database.Message{}, fmt.Errorf("get message: %w", err)
	}
	return message, nil
}

func toAPIUser(u database.User) types.User {
	return types.User{
		Id:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toAPIUsers(users []database.User) []types.User {
	return lo.Map(users, func(u database.User, _ int) types.User {
		return toAPIUser(u)
	})
}

func toAPIChat(c database.Chat, owner database.User) types.Chat {
	return types.Chat{
		Id:        c.Id,
		Name:      c.Name,
		Owner:     toAPIUser(owner),
		CreatedAt: c.CreatedAt,
	}
}

func toAPIMessage(m database.Message, author database.User) types.Message {
	return types.Message{
		Id:        m.Id,
		Text:      m.Text,
		ChatId:    m.ChatId,
		User:      toAPIUser(author),
		CreatedAt: m.CreatedAt,
	}
}

// userLoader memoizes user rows while mapping a single response, so a chat
// list with one owner or a message list with one author costs one lookup.
type userLoader struct {
	db    database.CourierRepository
	cache map[int]database.User
}

func newUserLoader(db database.CourierRepository) *userLoader {
	return &userLoader{db: db, cache: make(map[int]database.User)}
}

func (l *userLoader) load(userId int) (database.User, error) {
	if u, ok := l.cache[userId]; ok {
		return u, nil
	}

	u, err := resolveUser(l.db, userId)
	if err != nil {
		return database.User{}, err
	}
	l.cache[userId] = u

	return u, nil
}

func mapChats(db database.CourierRepository, chats []database.Chat) ([]types.Chat, error) {
	loader := newUserLoader(db)

	apiChats := make([]types.Chat, 0, len(chats))
	for _, c := range chats {
		owner, err := loader.load(c.OwnerId)
		if err != nil {
			return nil, err
		}
		apiChats = append(apiChats, toAPIChat(c, owner))
	}

	return apiChats, nil
}

func mapMessages(db database.CourierRepository, messages []database.Message) ([]types.Message, error) {
	loader := newUserLoader(db)

	apiMessages := make([]types.Message, 0, len(messages))
	for _, m := range messages {
		author, err := loader.load(m.UserId)
		if err != nil {
			return nil, err
		}
		apiMessages = append(apiMessages, toAPIMessage(m, author))
	}

	return apiMessages, nil
}
