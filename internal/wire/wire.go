//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"courier/internal/chat/handler"
	"courier/internal/chat/repository"
	"courier/internal/chat/service"
	"courier/internal/common"
	"courier/internal/config"
	"courier/internal/dbmysql"
	"courier/internal/logger"
	"courier/internal/user"
)

func InitializeApplication() (*Application, error) {
	wire.Build(
		config.LoadConfig,
		logger.New,
		dbmysql.NewMySQL,
		common.NewTokenManager,
		ProvideMailer,
		ProvideDispatcher,
		user.NewUserRepository,
		user.NewUserService,
		user.NewHandler,
		repository.NewConversationRepository,
		repository.NewMessageRepository,
		ProvideUserDirectory,
		service.NewChatService,
		handler.NewChatHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
