package database

// CourierRepository is the persistence gateway consumed by the service
// layer. Lookups report a missing row as sql.ErrNoRows; single-row writes
// are atomic at the store.
type CourierRepository interface {
	Ping() error

	CreateUser(params CreateUserParams) (User, error)
	UpdateUser(params UpdateUserParams) (User, error)
	GetUserById(userId int) (User, error)
	GetUserByUsername(username string) (User, error)
	GetUserByUsernameOrEmail(username, email string) (User, error)
	ListUsers() ([]User, error)

	CreateChat(params CreateChatParams) (Chat, error)
	GetChatById(chatId int) (Chat, error)
	UpdateChatName(chatId int, name string) (Chat, error)
	DeleteChat(chatId int) error
	ListChatsForUser(userId int) ([]Chat, error)

	CreateMembership(userId, chatId int) error
	MembershipExists(userId, chatId int) (bool, error)
	DeleteMembership(userId, chatId int) error
	ListChatMembers(chatId int) ([]User, error)
	CountChatMembers(chatId int) (int, error)

	CreateMessage(params CreateMessageParams) (Message, error)
	GetMessageById(messageId int) (Message, error)
	UpdateMessageText(messageId int, text string) (Message, error)
	DeleteMessage(messageId int) error
	ListChatMessages(chatId int) ([]Message, error)
	CountChatMessages(chatId int) (int, error)
}
