package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"courier/internal/apperrors"
	"courier/internal/database"
	"courier/internal/types"
)

type UserService struct {
	log *log.Logger
	db  database.CourierRepository
}

func NewUserService(logger *log.Logger, db database.CourierRepository) *UserService {
	return &UserService{log: logger, db: db}
}

func (s *UserService) Get(userId int) (types.User, error) {
	user, err := resolveUser(s.db, userId)
	if err != nil {
		return types.User{}, err
	}
	return toAPIUser(user), nil
}

func (s *UserService) List() (types.UserCollection, error) {
	users, err := s.db.ListUsers()
	if err != nil {
		return types.UserCollection{}, fmt.Errorf("list users: %w", err)
	}

	apiUsers := toAPIUsers(users)
	return types.UserCollection{
		Meta:  types.Meta{Count: len(apiUsers)},
		Users: apiUsers,
	}, nil
}

// Update applies a partial update: a nil username or email leaves the
// current value in place.
func (s *UserService) Update(userId int, username, email *string) (types.User, error) {
	if _, err := resolveUser(s.db, userId); err != nil {
		return types.User{}, err
	}

	user, err := s.db.UpdateUser(database.UpdateUserParams{
		UserId:   userId,
		Username: username,
		Email:    email,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return types.User{}, s.duplicateField(userId, username, email)
		}
		return types.User{}, fmt.Errorf("update user: %w", err)
	}

	return toAPIUser(user), nil
}

// duplicateField works out which updated field collided, so the error body
// names it. Username takes priority when both were supplied.
func (s *UserService) duplicateField(userId int, username, email *string) error {
	if username != nil {
		other, err := s.db.GetUserByUsername(*username)
		if err == nil && other.Id != userId {
			return apperrors.NewDuplicateEntity("User", "username", *username)
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("lookup duplicate username: %w", err)
		}
	}
	if email != nil {
		return apperrors.NewDuplicateEntity("User", "email", *email)
	}
	return apperrors.NewDuplicateEntity("User", "username", *username)
}

// ChatsForUser lists the chats the given user belongs to, ordered by chat
// id. The user must exist; membership of the caller is not required, which
// mirrors the public user directory.
func (s *UserService) ChatsForUser(userId int) (types.ChatCollection, error) {
	if _, err := resolveUser(s.db, userId); err != nil {
		return types.ChatCollection{}, err
	}

	chats, err := s.db.ListChatsForUser(userId)
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
