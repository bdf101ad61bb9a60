package service

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier/internal/apperrors"
	"courier/internal/database"
	"courier/internal/testutil"
)

func TestUserService_Get(t *testing.T) {
	tcases := []struct {
		name    string
		userErr error
	}{
		{name: "existing user"},
		{name: "missing user", userErr: sql.ErrNoRows},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockCourierRepository{}
			defer mockRepo.AssertExpectations(t)

			mockRepo.On("GetUserById", owner.Id).Return(owner, tc.userErr).Once()

			svc := NewUserService(testutil.TestLogger(t), mockRepo)
			user, err := svc.Get(owner.Id)

			if tc.userErr != nil {
				var notFound *apperrors.NotFoundError
				require.ErrorAs(t, err, &notFound)
				assert.Equal(t, "User", notFound.EntityName)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, owner.Username, user.Username)
		})
	}
}

func TestUserService_List(t *testing.T) {
	mockRepo := &database.MockCourierRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("ListUsers").Return([]database.User{owner, member, stranger}, nil).Once()

	svc := NewUserService(testutil.TestLogger(t), mockRepo)
	resp, err := svc.List()
	require.NoError(t, err)

	assert.Equal(t, len(resp.Users), resp.Meta.Count, "count must equal list length")
	assert.Equal(t, []int{1, 2, 3}, []int{resp.Users[0].Id, resp.Users[1].Id, resp.Users[2].Id})
}

func TestUserService_Update(t *testing.T) {
	newUsername := "alice2"
	newEmail := "alice2@example.com"

	tcases := []struct {
		name     string
		username *string
		email    *string
	}{
		{name: "username only", username: &newUsername},
		{name: "email only", email: &newEmail},
		{name: "both fields", username: &newUsername, email: &newEmail},
		{name: "no fields is a no-op update", username: nil, email: nil},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockCourierRepository{}
			defer mockRepo.AssertExpectations(t)

			updated := owner
			if tc.username != nil {
				updated.Username = *tc.username
			}
			if tc.email != nil {
				updated.Email = *tc.email
			}

			mockRepo.On("GetUserById", owner.Id).Return(owner, nil).Once()
			// nil fields must be forwarded as nil so the store leaves them alone
			mockRepo.On("UpdateUser", database.UpdateUserParams{
				UserId:   owner.Id,
				Username: tc.username,
				Email:    tc.email,
			}).Return(updated, nil).Once()

			svc := NewUserService(testutil.TestLogger(t), mockRepo)
			user, err := svc.Update(owner.Id, tc.username, tc.email)
			require.NoError(t, err)

			assert.Equal(t, updated.Username, user.Username)
			assert.Equal(t, updated.Email, user.Email)
		})
	}
}

func TestUserService_ChatsForUser(t *testing.T) {
	mockRepo := &database.MockCourierRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("GetUserById", member.Id).Return(member, nil).Once()
	mockRepo.On("ListChatsForUser", member.Id).Return([]database.Chat{teamChat}, nil).Once()
	mockRepo.On("GetUserById", owner.Id).Return(owner, nil).Once()

	svc := NewUserService(testutil.TestLogger(t), mockRepo)
	resp, err := svc.ChatsForUser(member.Id)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Meta.Count)
	assert.Equal(t, teamChat.Id, resp.Chats[0].Id)
	assert.Equal(t, owner.Id, resp.Chats[0].Owner.Id)
}

func TestUserService_ChatsForUser_UserNotFound(t *testing.T) {
	mockRepo := &database.MockCourierRepository{}
	defer mockRepo.AssertExpectations(t)

	mockRepo.On("GetUserById", 99).Return(database.User{}, sql.ErrNoRows).Once()

	svc := NewUserService(testutil.TestLogger(t), mockRepo)
	_, err := svc.ChatsForUser(99)

	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "User", notFound.EntityName)
}
