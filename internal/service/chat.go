package service

import (
	"fmt"
	"log"

	"courier/internal/database"
	"courier/internal/types"
)

type ChatService struct {
	log *log.Logger
	db  database.CourierRepository
}

func NewChatService(logger *log.Logger, db database.CourierRepository) *ChatService {
	return &ChatService{log: logger, db: db}
}

// Create makes the actor the owner and sole initial member of a new chat.
func (s *ChatService) Create(name string, actorId int) (types.ChatResponse, error) {
	actor, err := resolveUser(s.db, actorId)
	if err != nil {
		return types.ChatResponse{}, err
	}

	chat, err := s.db.CreateChat(database.CreateChatParams{
		Name:    name,
		OwnerId: actor.Id,
	})
	if err != nil {
		return types.ChatResponse{}, fmt.Errorf("create chat: %w", err)
	}

	if err := s.ensureMembership(actor.Id, chat.Id); err != nil {
		return types.ChatResponse{}, err
	}

	return types.ChatResponse{Chat: toAPIChat(chat, actor)}, nil
}

// ensureMembership inserts a membership row if one is not already present.
func (s *ChatService) ensureMembership(userId, chatId int) error {
	exists, err := s.db.MembershipExists(userId, chatId)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.db.CreateMembership(userId, chatId); err != nil {
		// Lost a race with a concurrent insert; the row is there either way.
		if database.IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("create membership: %w", err)
	}

	return nil
}

// Get returns a chat visible to the actor, with message and member counts
// and, on request, the member and message lists themselves.
func (s *ChatService) Get(chatId, actorId int, includeUsers, includeMessages bool) (types.GetChatResponse, error) {
	chat, err := resolveChat(s.db, chatId)
	if err != nil {
		return types.GetChatResponse{}, err
	}
	if err := requireMember(s.db, chat, actorId); err != nil {
		return types.GetChatResponse{}, err
	}

	owner, err := resolveUser(s.db, chat.OwnerId)
	if err != nil {
		return types.GetChatResponse{}, err
	}

	messageCount, err := s.db.CountChatMessages(chat.Id)
	if err != nil {
		return types.GetChatResponse{}, fmt.Errorf("count messages: %w", err)
	}
	userCount, err := s.db.CountChatMembers(chat.Id)
	if err != nil {
		return types.GetChatResponse{}, fmt.Errorf("count members: %w", err)
	}

	resp := types.GetChatResponse{
		Meta: types.ChatMetadata{
			MessageCount: messageCount,
			UserCount:    userCount,
		},
		Chat: toAPIChat(chat, owner),
	}

	if includeUsers {
		members, err := s.db.ListChatMembers(chat.Id)
		if err != nil {
			return types.GetChatResponse{}, fmt.Errorf("list members: %w", err)
		}
		resp.Users = toAPIUsers(members)
	}

	if includeMessages {
		messages, err := s.db.ListChatMessages(chat.Id)
		if err != nil {
			return types.GetChatResponse{}, fmt.Errorf("list messages: %w", err)
		}
		resp.Messages, err = mapMessages(s.db, messages)
		if err != nil {
			return types.GetChatResponse{}, err
		}
	}

	return resp, nil
}

func (s *ChatService) Rename(chatId int, name string, actorId int) (types.ChatResponse, error) {
	chat, err := resolveChat(s.db, chatId)
	if err != nil {
		return types.ChatResponse{}, err
	}
	if err := requireMember(s.db, chat, actorId); err != nil {
		return types.ChatResponse{}, err
	}
	if err := checkChatOwner(chat, actorId); err != nil {
		return types.ChatResponse{}, err
	}

	updated, err := s.db.UpdateChatName(chat.Id, name)
	if err != nil {
		return types.ChatResponse{}, fmt.Errorf("update chat: %w", err)
	}

	owner, err := resolveUser(s.db, updated.OwnerId)
	if err != nil {
		return types.ChatResponse{}, err
	}

	return types.ChatResponse{Chat: toAPIChat(updated, owner)}, nil
}

// Delete removes the chat; membership rows and messages cascade at the
// store.
func (s *ChatService) Delete(chatId, actorId int) error {
	chat, err := resolveChat(s.db, chatId)
	if err != nil {
		return err
	}
	if err := requireMember(s.db, chat, actorId); err != nil {
		return err
	}
	if err := checkChatOwner(chat, actorId); err != nil {
		return err
	}

	if err := s.db.DeleteChat(chat.Id); err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}

	return nil
}

// AddMember adds the target user to the chat and returns the updated
// membership list. Only the owner may manage members.
func (s *ChatService) AddMember(chatId, userId, actorId int) (types.UserCollection, error) {
	chat, err := resolveChat(s.db, chatId)
	if err != nil {
		return types.UserCollection{}, err
	}
	target, err := resolveUser(s.db, userId)
	if err != nil {
		return types.UserCollection{}, err
	}

	if err := requireMember(s.db, chat, actorId); err != nil {
		return types.UserCollection{}, err
	}
	if err := checkManageMembers(chat, actorId); err != nil {
		return types.UserCollection{}, err
	}

	if err := s.ensureMembership(target.Id, chat.Id); err != nil {
		return types.UserCollection{}, err
	}

	return s.memberCollection(chat.Id)
}

// RemoveMember removes a non-owner member and returns the updated
// membership list. The owner can never be removed.
func (s *ChatService) RemoveMember(chatId, userId, actorId int) (types.UserCollection, error) {
	chat, err := resolveChat(s.db, chatId)
	if err != nil {
		return types.UserCollection{}, err
	}
	target, err := resolveUser(s.db, userId)
	if err != nil {
		return types.UserCollection{}, err
	}

	if err := requireMember(s.db, chat, actorId); err != nil {
		return types.UserCollection{}, err
	}
	if err := checkManageMembers(chat, actorId); err != nil {
		return types.UserCollection{}, err
	}
	if err := checkRemovableMember(chat, target); err != nil {
		return types.UserCollection{}, err
	}

	if err := s.db.DeleteMembership(target.Id, chat.Id); err != nil {
		return types.UserCollection{}, fmt.Errorf("delete membership: %w", err)
	}

	return s.memberCollection(chat.Id)
}

// Members lists a chat's membership for any current member.
func (s *ChatService) Members(chatId, actorId int) (types.UserCollection, error) {
	chat, err := resolveChat(s.db, chatId)
	if err != nil {
		return types.UserCollection{}, err
	}
	if err := requireMember(s.db, chat, actorId); err != nil {
		return types.UserCollection{}, err
	}

	return s.memberCollection(chat.Id)
}

// ListForActor returns the chats the actor belongs to, ordered by chat id.
func (s *ChatService) ListForActor(actorId int) (types.ChatCollection, error) {
	chats, err := s.db.ListChatsForUser(actorId)
	if err != nil {
		return types.ChatCollection{}, fmt.Errorf("list chats: %w", err)
	}

	apiChats, err := mapChats(s.db, chats)
	if err != nil {
		return types.ChatCollection{}, err
	}

	return types.ChatCollection{
		Meta:  types.Meta{Count: len(apiChats)},
		Chats: apiChats,
	}, nil
}

func (s *ChatService) memberCollection(chatId int) (types.UserCollection, error) {
	members, err := s.db.ListChatMembers(chatId)
	if err != nil {
		return types.UserCollection{}, fmt.Errorf("list members: %w", err)
	}

	apiUsers := toAPIUsers(members)
	return types.UserCollection{
		Meta:  types.Meta{Count: len(apiUsers)},
		Users: apiUsers,
	}, nil
}
