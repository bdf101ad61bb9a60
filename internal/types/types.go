package types

import (
	"time"
)

type User struct {
	Id        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Chat struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Owner     User      `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	Id        int       `json:"id"`
	Text      string    `json:"text"`
	ChatId    int       `json:"chat_id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Meta accompanies every collection; Count always equals the length of the
// collection it describes.
type Meta struct {
	Count int `json:"count"`
}

// ChatMetadata is the richer meta block on the single-chat response.
type ChatMetadata struct {
	MessageCount int `json:"message_count"`
	UserCount    int `json:"user_count"`
}

type UserResponse struct {
	User User `json:"user"`
}

type ChatResponse struct {
	Chat Chat `json:"chat"`
}

type MessageResponse struct {
	Message Message `json:"message"`
}

type UserCollection struct {
	Meta  Meta   `json:"meta"`
	Users []User `json:"users"`
}

type ChatCollection struct {
	Meta  Meta   `json:"meta"`
	Chats []Chat `json:"chats"`
}

type MessageCollection struct {
	Meta     Meta      `json:"meta"`
	Messages []Message `json:"messages"`
}

// GetChatResponse optionally inlines members and messages when the caller
// asks for them with the include query parameter.
type GetChatResponse struct {
	Meta     ChatMetadata `json:"meta"`
	Chat     Chat         `json:"chat"`
	Messages []Message    `json:"messages,omitempty"`
	Users    []User       `json:"users,omitempty"`
}
