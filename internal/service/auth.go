package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"courier/internal/apperrors"
	"courier/internal/auth"
	"courier/internal/database"
	"courier/internal/types"
)

// AuthService turns credentials into tokens and tokens back into users.
type AuthService struct {
	log    *log.Logger
	db     database.CourierRepository
	tokens *auth.TokenService
}

func NewAuthService(logger *log.Logger, db database.CourierRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{log: logger, db: db, tokens: tokens}
}

// Register creates a user, storing only a one-way hash of the password.
// A username or email already in use fails with DuplicateEntity; when both
// collide, username is the reported field.
func (s *AuthService) Register(username, email, password string) (types.User, error) {
	existing, err := s.db.GetUserByUsernameOrEmail(username, email)
	switch {
	case err == nil:
		field, value := "email", email
		if existing.Username == username {
			field, value = "username", username
		}
		return types.User{}, apperrors.NewDuplicateEntity("User", field, value)
	case !errors.Is(err, sql.ErrNoRows):
		return types.User{}, fmt.Errorf("lookup existing user: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.db.CreateUser(database.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		// A concurrent registration can slip past the lookup; the unique
		// constraint is the backstop.
		if database.IsUniqueViolation(err) {
			return types.User{}, apperrors.NewDuplicateEntity("User", "username", username)
		}
		return types.User{}, fmt.Errorf("create user: %w", err)
	}

	return toAPIUser(user), nil
}

// Login verifies the credentials and issues a bearer token. An unknown
// username and a wrong password fail identically, so the response carries
// no username-enumeration signal.
func (s *AuthService) Login(username, password string) (types.AccessToken, error) {
	user, err := s.db.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.AccessToken{}, apperrors.NewInvalidCredentials()
		}
		return types.AccessToken{}, fmt.Errorf("get user: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return types.AccessToken{}, apperrors.NewInvalidCredentials()
	}

	token, expiresIn, err := s.tokens.Issue(user.Id)
	if err != nil {
		return types.AccessToken{}, fmt.Errorf("issue token: %w", err)
	}

	return types.AccessToken{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// ResolveIdentity maps a bearer token to the user it was issued for. A
// token whose subject no longer resolves is treated as invalid, not as a
// missing entity.
func (s *AuthService) ResolveIdentity(token string) (types.User, error) {
	userId, err := s.tokens.Parse(token)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.db.GetUserById(userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, apperrors.NewInvalidToken()
		}
		return types.User{}, fmt.Errorf("get user: %w", err)
	}

	return toAPIUser(user), nil
}
