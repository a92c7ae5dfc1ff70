package wire

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"courier/internal/chat/handler"
	"courier/internal/chat/service"
	"courier/internal/common"
	"courier/internal/config"
	"courier/internal/notif"
	"courier/internal/user"
)

// Application holds everything main needs to run the server and shut it
// down cleanly.
type Application struct {
	Config      *config.Config
	Logger      *zap.SugaredLogger
	DB          *gorm.DB
	Tokens      *common.TokenManager
	UserHandler *user.Handler
	ChatHandler *handler.ChatHandler
	Dispatcher  common.Dispatcher
}

func ProvideMailer(cfg *config.Config, log *zap.SugaredLogger) common.Mailer {
	return notif.NewSendGridClient(cfg, log)
}

func ProvideDispatcher(cfg *config.Config, mailer common.Mailer, log *zap.SugaredLogger) common.Dispatcher {
	return notif.NewDispatcher(cfg, mailer, log)
}

// ProvideUserDirectory narrows the user repository to the lookup slice the
// chat service depends on.
func ProvideUserDirectory(repo user.UserRepository) service.UserDirectory {
	return repo
}
