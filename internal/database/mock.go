package database

import (
	"github.com/stretchr/testify/mock"
)

type MockCourierRepository struct {
	mock.Mock
}

func (m *MockCourierRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockCourierRepository) CreateUser(params CreateUserParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockCourierRepository) UpdateUser(params UpdateUserParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockCourierRepository) GetUserById(userId int) (User, error) {
	args := m.Called(userId)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockCourierRepository) GetUserByUsername(username string) (User, error) {
	args := m.Called(username)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockCourierRepository) GetUserByUsernameOrEmail(username, email string) (User, error) {
	args := m.Called(username, email)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockCourierRepository) ListUsers() ([]User, error) {
	args := m.Called()
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockCourierRepository) CreateChat(params CreateChatParams) (Chat, error) {
	args := m.Called(params)
	return args.Get(0).(Chat), args.Error(1)
}
func (m *MockCourierRepository) GetChatById(chatId int) (Chat, error) {
	args := m.Called(chatId)
	return args.Get(0).(Chat), args.Error(1)
}
func (m *MockCourierRepository) UpdateChatName(chatId int, name string) (Chat, error) {
	args := m.Called(chatId, name)
	return args.Get(0).(Chat), args.Error(1)
}
func (m *MockCourierRepository) DeleteChat(chatId int) error {
	args := m.Called(chatId)
	return args.Error(0)
}
func (m *MockCourierRepository) ListChatsForUser(userId int) ([]Chat, error) {
	args := m.Called(userId)
	return args.Get(0).([]Chat), args.Error(1)
}
func (m *MockCourierRepository) CreateMembership(userId, chatId int) error {
	args := m.Called(userId, chatId)
	return args.Error(0)
}
func (m *MockCourierRepository) MembershipExists(userId, chatId int) (bool, error) {
	args := m.Called(userId, chatId)
	return args.Bool(0), args.Error(1)
}
func (m *MockCourierRepository) DeleteMembership(userId, chatId int) error {
	args := m.Called(userId, chatId)
	return args.Error(0)
}
func (m *MockCourierRepository) ListChatMembers(chatId int) ([]User, error) {
	args := m.Called(chatId)
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockCourierRepository) CountChatMembers(chatId int) (int, error) {
	args := m.Called(chatId)
	return args.Int(0), args.Error(1)
}
func (m *MockCourierRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockCourierRepository) GetMessageById(messageId int) (Message, error) {
	args := m.Called(messageId)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockCourierRepository) UpdateMessageText(messageId int, text string) (Message, error) {
	args := m.Called(messageId, text)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockCourierRepository) DeleteMessage(messageId int) error {
	args := m.Called(messageId)
	return args.Error(0)
}
func (m *MockCourierRepository) ListChatMessages(chatId int) ([]Message, error) {
	args := m.Called(chatId)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockCourierRepository) CountChatMessages(chatId int) (int, error) {
	args := m.Called(chatId)
	return args.Int(0), args.Error(1)
}
