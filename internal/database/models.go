package database

import "time"

type User struct {
	Id           int
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Chat struct {
	Id        int
	Name      string
	OwnerId   int
	CreatedAt time.Time
}

type Message struct {
	Id        int
	ChatId    int
	UserId    int
	Text      string
	CreatedAt time.Time
}

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
}

// UpdateUserParams carries a partial update: nil fields are left untouched.
type UpdateUserParams struct {
	UserId   int
	Username *string
	Email    *string
}

type CreateChatParams struct {
	Name    string
	OwnerId int
}

type CreateMessageParams struct {
	ChatId int
	UserId int
	Text   string
}
