package user

import (
	"context"

	"courier/internal/common"
	"courier/internal/dbmysql"
	"courier/pkg/apperr"
)

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*dbmysql.User, string, error)
	Login(ctx context.Context, username, password string) (*dbmysql.User, string, error)
	GetProfile(ctx context.Context, userID uint) (*dbmysql.User, error)
}

type userService struct {
	repo       UserRepository
	tokens     *common.TokenManager
	dispatcher common.Dispatcher
}

func NewUserService(repo UserRepository, tokens *common.TokenManager, dispatcher common.Dispatcher) UserService {
	return &userService{repo: repo, tokens: tokens, dispatcher: dispatcher}
}

func (s *userService) Register(ctx context.Context, username, email, password string) (*dbmysql.User, string, error) {
	if err := common.ValidateUsername(username); err != nil {
		return nil, "", err
	}
	if err := common.ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, "", apperr.Internal("checking username", err)
	}
	if exists {
		return nil, "", apperr.AlreadyExists("username already registered")
	}

	exists, err = s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, "", apperr.Internal("checking email", err)
	}
	if exists {
		return nil, "", apperr.AlreadyExists("email already registered")
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, "", apperr.Internal("hashing password", err)
	}

	u := &dbmysql.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, "", apperr.Internal("creating user", err)
	}

	// Fire-and-forget; a broken email provider must not fail registration.
	s.dispatcher.Enqueue(common.NotificationEvent{
		Type:          common.WelcomeEvent,
		ReceiverEmail: u.Email,
		ReceiverName:  u.Username,
	})

	token, err := s.tokens.Generate(u.ID, u.Username)
	if err != nil {
		return nil, "", apperr.Internal("signing token", err)
	}

	return u, token, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*dbmysql.User, string, error) {
	if username == "" || password == "" {
		return nil, "", apperr.InvalidArg("username and password required")
	}

	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", apperr.Internal("looking up user", err)
	}
	// Unknown user and wrong password are indistinguishable on purpose.
	if u == nil || common.CheckPassword(password, u.PasswordHash) != nil {
		return nil, "", apperr.Unauthenticated("incorrect username or password")
	}

	if !u.IsActive {
		return nil, "", apperr.Forbidden("inactive user")
	}

	token, err := s.tokens.Generate(u.ID, u.Username)
	if err != nil {
		return nil, "", apperr.Internal("signing token", err)
	}

	return u, token, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*dbmysql.User, error) {
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("looking up user", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}
