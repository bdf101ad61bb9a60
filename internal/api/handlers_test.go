package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"courier/internal/auth"
	"courier/internal/database"
	"courier/internal/types"
)

func Test_healthCheck(t *testing.T) {
	tcases := []struct {
		name    string
		mockErr error
	}{
		{
			name:    "successful health check",
			mockErr: nil,
		},
		{
			name:    "failed health check",
			mockErr: errors.New("db error"),
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockCourierRepository{}
			defer mockRepo.AssertExpectations(t)

			mockRepo.On("Ping").Return(tc.mockErr).Once()

			app, _ := newTestApp(t, mockRepo)
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			app.healthCheck(rr, req)

			if tc.mockErr != nil {
				assert.Equal(t, http.StatusInternalServerError, rr.Code)
			} else {
				assert.Equal(t, http.StatusOK, rr.Code)
				assert.Equal(t, "OK", rr.Body.String())
			}
		})
	}
}

func TestListUsersHandler(t *testing.T) {
	mockRepo := &database.MockCourierRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("ListUsers").Return([]database.User{
		{Id: 1, Username: "alice", Email: "alice@example.com"},
		{Id: 2, Username: "bob", Email: "bob@example.com"},
	}, nil).Once()

	app, _ := newTestApp(t, mockRepo)
	rr := httptest.NewRecorder()
	app.listUsers(rr, httptest.NewRequest(http.MethodGet, "/users", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp types.UserCollection
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, len(resp.Users), resp.Meta.Count, "count must equal list length")
	assert.Equal(t, "alice", resp.Users[0].Username)
}

func TestGetUserHandler(t *testing.T) {
	tcases := []struct {
		name           string
		pathId         string
		userErr        error
		expectedStatus int
	}{
		{
			name:           "existing user",
			pathId:         "1",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing user",
			pathId:         "99",
			userErr:        sql.ErrNoRows,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-numeric id",
			pathId:         "abc",
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockCourierRepository{}
			defer mockRepo.AssertExpectations(t)

			if tc.pathId != "abc" {
				mockRepo.On("GetUserById", mock.AnythingOfType("int")).
					Return(database.User{Id: 1, Username: "alice"}, tc.userErr).Once()
			}

			app, _ := newTestApp(t, mockRepo)
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/users/"+tc.pathId, nil)
			req.SetPathValue("id", tc.pathId)
			app.getUser(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestUpdateCurrentUserHandler_PartialUpdate(t *testing.T) {
	alice := database.User{Id: 1, Username: "alice", Email: "alice@example.com"}
	newUsername := "alice2"

	mockRepo := &database.MockCourierRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("GetUserById", alice.Id).Return(alice, nil).Once()
	// the omitted email field must reach the store as nil
	mockRepo.On("UpdateUser", database.UpdateUserParams{
		UserId:   alice.Id,
		Username: &newUsername,
		Email:    nil,
	}).Return(database.User{Id: 1, Username: newUsername, Email: alice.Email}, nil).Once()

	app, _ := newTestApp(t, mockRepo)

	body := bytes.NewBufferString(`{"username":"alice2"}`)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/users/me", body)
	req = req.WithContext(WithCurrentUser(req.Context(), types.User{Id: 1, Username: "alice", Email: alice.Email}))
	app.updateCurrentUser(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp types.UserResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, newUsername, resp.User.Username)
	assert.Equal(t, alice.Email, resp.User.Email, "expected untouched field to survive")
}

// TestChatLifecycle drives the full flow through the routed mux:
// registration, duplicate registration, token issuance, chat creation,
// invitation, a denied rename, the owner's rename, and a rejected
// owner-removal.
func TestChatLifecycle(t *testing.T) {
	passwordHash, err := auth.HashPassword("pw1")
	require.NoError(t, err)

	alice := database.User{Id: 1, Username: "alice", Email: "alice@x.com", PasswordHash: passwordHash}
	bob := database.User{Id: 2, Username: "bob", Email: "bob@x.com"}
	team := database.Chat{Id: 10, Name: "team", OwnerId: alice.Id}

	mockRepo := &database.MockCourierRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("GetUserByUsernameOrEmail", "alice", "alice@x.com").
		Return(database.User{}, sql.ErrNoRows).Once()
	mockRepo.On("CreateUser", mock.AnythingOfType("database.CreateUserParams")).
		Return(alice, nil).Once()
	// second registration with the same username collides
	mockRepo.On("GetUserByUsernameOrEmail", "alice", "alice2@x.com").
		Return(alice, nil).Once()
	mockRepo.On("GetUserByUsername", "alice").Return(alice, nil).Once()

	mockRepo.On("GetUserById", alice.Id).Return(alice, nil)
	mockRepo.On("GetUserById", bob.Id).Return(bob, nil)

	mockRepo.On("CreateChat", database.CreateChatParams{Name: "team", OwnerId: alice.Id}).
		Return(team, nil).Once()
	mockRepo.On("MembershipExists", alice.Id, team.Id).Return(false, nil).Once()
	mockRepo.On("CreateMembership", alice.Id, team.Id).Return(nil).Once()
	mockRepo.On("MembershipExists", alice.Id, team.Id).Return(true, nil)

	mockRepo.On("GetChatById", team.Id).Return(team, nil)
	mockRepo.On("MembershipExists", bob.Id, team.Id).Return(false, nil).Once()
	mockRepo.On("CreateMembership", bob.Id, team.Id).Return(nil).Once()
	mockRepo.On("ListChatMembers", team.Id).Return([]database.User{alice, bob}, nil).Once()
	mockRepo.On("MembershipExists", bob.Id, team.Id).Return(true, nil)

	renamed := team
	renamed.Name = "crew"
	mockRepo.On("UpdateChatName", team.Id, "crew").Return(renamed, nil).Once()

	_, mux := newTestApp(t, mockRepo)

	do := func(method, path, token string, body string, contentType string) *httptest.ResponseRecorder {
		t.Helper()
		var reader *strings.Reader
		if body != "" {
			reader = strings.NewReader(body)
		} else {
			reader = strings.NewReader("")
		}
		req := httptest.NewRequest(method, path, reader)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		return rr
	}

	// register alice
	rr := do(http.MethodPost, "/auth/registration", "",
		`{"username":"alice","email":"alice@x.com","password":"pw1"}`, "application/json")
	require.Equal(t, http.StatusCreated, rr.Code)

	// duplicate username is rejected with the conflicting field
	rr = do(http.MethodPost, "/auth/registration", "",
		`{"username":"alice","email":"alice2@x.com","password":"pw1"}`, "application/json")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var dupBody struct {
		Detail duplicateEntityDetail `json:"detail"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&dupBody))
	assert.Equal(t, "username", dupBody.Detail.EntityField)

	// authenticate alice
	rr = do(http.MethodPost, "/auth/token", "",
		"username=alice&password=pw1", "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusOK, rr.Code)
	var token types.AccessToken
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&token))
	aliceToken := token.AccessToken

	bobToken, _, err := testTokenService().Issue(bob.Id)
	require.NoError(t, err)

	// alice creates "team" and becomes owner and sole member
	rr = do(http.MethodPost, "/chats", aliceToken, `{"name":"team"}`, "application/json")
	require.Equal(t, http.StatusCreated, rr.Code)
	var chatResp types.ChatResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&chatResp))
	assert.Equal(t, alice.Id, chatResp.Chat.Owner.Id)

	// alice invites bob, membership grows to 2
	rr = do(http.MethodPut, "/chats/10/users/2", aliceToken, "", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var members types.UserCollection
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&members))
	assert.Equal(t, 2, members.Meta.Count)
	assert.Equal(t, len(members.Users), members.Meta.Count)

	// bob may view but not rename
	rr = do(http.MethodPut, "/chats/10", bobToken, `{"name":"crew"}`, "application/json")
	require.Equal(t, http.StatusForbidden, rr.Code)
	var permBody struct {
		Detail errorDetail `json:"detail"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&permBody))
	assert.Equal(t, "no_permission", permBody.Detail.Error)

	// alice renames
	rr = do(http.MethodPut, "/chats/10", aliceToken, `{"name":"crew"}`, "application/json")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&chatResp))
	assert.Equal(t, "crew", chatResp.Chat.Name)

	// the owner cannot be removed, even by herself
	rr = do(http.MethodDelete, "/chats/10/users/1", aliceToken, "", "")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var stateBody struct {
		Detail errorDetail `json:"detail"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&stateBody))
	assert.Equal(t, "invalid_state", stateBody.Detail.Error)
	mockRepo.AssertNotCalled(t, "DeleteMembership", mock.Anything, mock.Anything)
}

func TestMessageHandlers(t *testing.T) {
	alice := database.User{Id: 1, Username: "alice", Email: "alice@x.com"}
	bob := database.User{Id: 2, Username: "bob", Email: "bob@x.com"}
	team := database.Chat{Id: 10, Name: "team", OwnerId: alice.Id}
	msg := database.Message{Id: 100, ChatId: team.Id, UserId: bob.Id, Text: "hello"}

	aliceToken, _, err := testTokenService().Issue(alice.Id)
	require.NoError(t, err)
	bobToken, _, err := testTokenService().Issue(bob.Id)
	require.NoError(t, err)

	mockRepo := &database.MockCourierRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("GetUserById", alice.Id).Return(alice, nil)
	mockRepo.On("GetUserById", bob.Id).Return(bob, nil)
	mockRepo.On("GetChatById", team.Id).Return(team, nil)
	mockRepo.On("MembershipExists", bob.Id, team.Id).Return(true, nil)
	mockRepo.On("CreateMessage", database.CreateMessageParams{
		ChatId: team.Id,
		UserId: bob.Id,
		Text:   "hello",
	}).Return(msg, nil).Once()
	mockRepo.On("GetMessageById", msg.Id).Return(msg, nil)

	edited := msg
	edited.Text = "hello again"
	mockRepo.On("UpdateMessageText", msg.Id, "hello again").Return(edited, nil).Once()
	mockRepo.On("DeleteMessage", msg.Id).Return(nil).Once()

	_, mux := newTestApp(t, mockRepo)

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		return rr
	}

	// bob sends a message
	rr := do(http.MethodPost, "/chats/10/messages", bobToken, `{"text":"hello"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var msgResp types.MessageResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&msgResp))
	assert.Equal(t, bob.Id, msgResp.Message.User.Id)

	// alice cannot edit bob's message
	rr = do(http.MethodPut, "/chats/10/messages/100", aliceToken, `{"text":"hijack"}`)
	require.Equal(t, http.StatusForbidden, rr.Code)

	// bob edits his own message; identity is unchanged
	rr = do(http.MethodPut, "/chats/10/messages/100", bobToken, `{"text":"hello again"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&msgResp))
	assert.Equal(t, "hello again", msgResp.Message.Text)
	assert.Equal(t, msg.Id, msgResp.Message.Id)
	assert.Equal(t, msg.ChatId, msgResp.Message.ChatId)

	// bob deletes it
	rr = do(http.MethodDelete, "/chats/10/messages/100", bobToken, "")
	require.Equal(t, http.StatusNoContent, rr.Code)
}
