package service

import (
	"fmt"
	"log"

	"courier/internal/apperrors"
	"courier/internal/database"
	"courier/internal/types"
)

type MessageService struct {
	log *log.Logger
	db  database.CourierRepository
}

func NewMessageService(logger *log.Logger, db database.CourierRepository) *MessageService {
	return &MessageService{log: logger, db: db}
}

// List returns a chat's messages, ordered by id, to any current member.
func (s *MessageService) List(chatId, actorId int) (types.MessageCollection, error) {
	chat, err := resolveChat(s.db, chatId)
	if err != nil {
		return types.MessageCollection{}, err
	}
	if err := requireMember(s.db, chat, actorId); err != nil {
		return types.MessageCollection{}, err
	}

	messages, err := s.db.ListChatMessages(chat.Id)
	if err != nil {
		return types.MessageCollection{}, fmt.Errorf("list messages: %w", err)
	}

	apiMessages, err := mapMessages(s.db, messages)
	if err != nil {
		return types.MessageCollection{}, err
	}

	return types.MessageCollection{
		Meta:     types.Meta{Count: len(apiMessages)},
		Messages: apiMessages,
	}, nil
}

// Send creates a message authored by the actor, who must be a member.
func (s *MessageService) Send(chatId int, text string, actorId int) (types.MessageResponse, error) {
	chat, err := resolveChat(s.db, chatId)
	if err != nil {
		return types.MessageResponse{}, err
	}
	if err := requireMember(s.db, chat, actorId); err != nil {
		return types.MessageResponse{}, err
	}

	author, err := resolveUser(s.db, actorId)
	if err != nil {
		return types.MessageResponse{}, err
	}

	message, err := s.db.CreateMessage(database.CreateMessageParams{
		ChatId: chat.Id,
		UserId: author.Id,
		Text:   text,
	})
	if err != nil {
		return types.MessageResponse{}, fmt.Errorf("create message: %w", err)
	}

	return types.MessageResponse{Message: toAPIMessage(message, author)}, nil
}

// Edit replaces the text of the actor's own message.
func (s *MessageService) Edit(chatId, messageId int, text string, actorId int) (types.MessageResponse, error) {
	message, err := s.resolveChatMessage(chatId, messageId)
	if err != nil {
		return types.MessageResponse{}, err
	}
	if err := checkMessageAuthor(message, actorId); err != nil {
		return types.MessageResponse{}, err
	}

	updated, err := s.db.UpdateMessageText(message.Id, text)
	if err != nil {
		return types.MessageResponse{}, fmt.Errorf("update message: %w", err)
	}

	author, err := resolveUser(s.db, updated.UserId)
	if err != nil {
		return types.MessageResponse{}, err
	}

	return types.MessageResponse{Message: toAPIMessage(updated, author)}, nil
}

// Delete removes the actor's own message.
func (s *MessageService) Delete(chatId, messageId, actorId int) error {
	message, err := s.resolveChatMessage(chatId, messageId)
	if err != nil {
		return err
	}
	if err := checkMessageAuthor(message, actorId); err != nil {
		return err
	}

	if err := s.db.DeleteMessage(message.Id); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}

	return nil
}

// resolveChatMessage resolves the chat, then the message, and rejects a
// message that belongs to a different chat as not found under this one.
func (s *MessageService) resolveChatMessage(chatId, messageId int) (database.Message, error) {
	chat, err := resolveChat(s.db, chatId)
	if err != nil {
		return database.Message{}, err
	}

	message, err := resolveMessage(s.db, messageId)
	if err != nil {
		return database.Message{}, err
	}
	if message.ChatId != chat.Id {
		return database.Message{}, apperrors.NewNotFound("Message", messageId)
	}

	return message, nil
}
