package user

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"courier/internal/common"
	"courier/internal/config"
	"courier/internal/dbmysql"
)

func newTestTokenManager() *common.TokenManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiryMins = 30
	cfg.JWT.Issuer = "courier-test"
	return common.NewTokenManager(cfg)
}

func TestUserService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockUserRepository(ctrl)
	mockDispatcher := common.NewMockDispatcher(ctrl)
	svc := NewUserService(mockRepo, newTestTokenManager(), mockDispatcher)
	ctx := context.Background()

	tests := []struct {
		name        string
		username    string
		email       string
		password    string
		setup       func()
		wantErr     bool
		errContains string
	}{
		{
			name:     "success",
			username: "alice",
			email:    "alice@example.com",
			password: "Password123",
			setup: func() {
				mockRepo.EXPECT().UsernameExists(ctx, "alice").Return(false, nil)
				mockRepo.EXPECT().EmailExists(ctx, "alice@example.com").Return(false, nil)
				mockRepo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, u *dbmysql.User) error {
						u.ID = 1
						return nil
					})
				mockDispatcher.EXPECT().Enqueue(gomock.Any()).Do(func(event common.NotificationEvent) {
					require.Equal(t, common.WelcomeEvent, event.Type)
					require.Equal(t, "alice@example.com", event.ReceiverEmail)
				})
			},
		},
		{
			name:     "duplicate username",
			username: "bob",
			email:    "bob@example.com",
			password: "Password123",
			setup: func() {
				mockRepo.EXPECT().UsernameExists(ctx, "bob").Return(true, nil)
			},
			wantErr:     true,
			errContains: "username already registered",
		},
		{
			name:     "duplicate email",
			username: "carol",
			email:    "carol@example.com",
			password: "Password123",
			setup: func() {
				mockRepo.EXPECT().UsernameExists(ctx, "carol").Return(false, nil)
				mockRepo.EXPECT().EmailExists(ctx, "carol@example.com").Return(true, nil)
			},
			wantErr:     true,
			errContains: "email already registered",
		},
		{
			name:        "username too short",
			username:    "ab",
			email:       "ab@example.com",
			password:    "Password123",
			setup:       func() {},
			wantErr:     true,
			errContains: "username",
		},
		{
			name:        "invalid email",
			username:    "dave",
			email:       "not-an-email",
			password:    "Password123",
			setup:       func() {},
			wantErr:     true,
			errContains: "email",
		},
		{
			name:        "password missing digit",
			username:    "erin",
			email:       "erin@example.com",
			password:    "Passwordabc",
			setup:       func() {},
			wantErr:     true,
			errContains: "digit",
		},
		{
			name:        "password missing uppercase",
			username:    "erin",
			email:       "erin@example.com",
			password:    "password123",
			setup:       func() {},
			wantErr:     true,
			errContains: "uppercase",
		},
		{
			name:        "password too short",
			username:    "erin",
			email:       "erin@example.com",
			password:    "Pw1",
			setup:       func() {},
			wantErr:     true,
			errContains: "8 characters",
		},
		{
			name:     "repo failure",
			username: "frank",
			email:    "frank@example.com",
			password: "Password123",
			setup: func() {
				mockRepo.EXPECT().UsernameExists(ctx, "frank").Return(false, errors.New("db down"))
			},
			wantErr:     true,
			errContains: "checking username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			u, token, err := svc.Register(ctx, tt.username, tt.email, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, u)
			require.NotEmpty(t, token)
			require.Equal(t, tt.username, u.Username)
			require.NotEqual(t, tt.password, u.PasswordHash)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockUserRepository(ctrl)
	mockDispatcher := common.NewMockDispatcher(ctrl)
	svc := NewUserService(mockRepo, newTestTokenManager(), mockDispatcher)
	ctx := context.Background()

	hashed, err := common.HashPassword("Password123")
	require.NoError(t, err)

	activeUser := &dbmysql.User{ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: hashed, IsActive: true}
	inactiveUser := &dbmysql.User{ID: 2, Username: "ghost", Email: "ghost@example.com", PasswordHash: hashed, IsActive: false}

	tests := []struct {
		name        string
		username    string
		password    string
		setup       func()
		wantErr     bool
		errContains string
	}{
		{
			name:     "success",
			username: "alice",
			password: "Password123",
			setup: func() {
				mockRepo.EXPECT().GetUserByUsername(ctx, "alice").Return(activeUser, nil)
			},
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "Password123",
			setup: func() {
				mockRepo.EXPECT().GetUserByUsername(ctx, "nobody").Return(nil, nil)
			},
			wantErr:     true,
			errContains: "incorrect username or password",
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "WrongPassword1",
			setup: func() {
				mockRepo.EXPECT().GetUserByUsername(ctx, "alice").Return(activeUser, nil)
			},
			wantErr:     true,
			errContains: "incorrect username or password",
		},
		{
			name:     "inactive user",
			username: "ghost",
			password: "Password123",
			setup: func() {
				mockRepo.EXPECT().GetUserByUsername(ctx, "ghost").Return(inactiveUser, nil)
			},
			wantErr:     true,
			errContains: "inactive",
		},
		{
			name:        "empty credentials",
			username:    "",
			password:    "",
			setup:       func() {},
			wantErr:     true,
			errContains: "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			u, token, err := svc.Login(ctx, tt.username, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, u)
			require.NotEmpty(t, token)
		})
	}
}

// Unknown user and wrong password must be indistinguishable to the caller.
func TestUserService_Login_Indistinguishable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockUserRepository(ctrl)
	mockDispatcher := common.NewMockDispatcher(ctrl)
	svc := NewUserService(mockRepo, newTestTokenManager(), mockDispatcher)
	ctx := context.Background()

	hashed, err := common.HashPassword("Password123")
	require.NoError(t, err)

	mockRepo.EXPECT().GetUserByUsername(ctx, "nobody").Return(nil, nil)
	_, _, errUnknown := svc.Login(ctx, "nobody", "Password123")

	mockRepo.EXPECT().GetUserByUsername(ctx, "alice").Return(
		&dbmysql.User{ID: 1, Username: "alice", PasswordHash: hashed, IsActive: true}, nil)
	_, _, errWrong := svc.Login(ctx, "alice", "WrongPassword1")

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	require.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestUserService_GetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockUserRepository(ctrl)
	mockDispatcher := common.NewMockDispatcher(ctrl)
	svc := NewUserService(mockRepo, newTestTokenManager(), mockDispatcher)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByID(ctx, uint(1)).Return(
			&dbmysql.User{ID: 1, Username: "alice", IsActive: true}, nil)

		u, err := svc.GetProfile(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, "alice", u.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByID(ctx, uint(42)).Return(nil, nil)

		_, err := svc.GetProfile(ctx, 42)
		require.Error(t, err)
		require.Contains(t, err.Error(), "user not found")
	})
}
