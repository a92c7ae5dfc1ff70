package common

import (
	"context"
)

// Mailer delivers transactional email. Implementations report failure to
// their caller but callers in the request path never see it: delivery runs
// on the dispatcher's workers.
type Mailer interface {
	SendNewMessageNotification(ctx context.Context, receiverEmail, receiverName, senderName, preview string) error
	SendWelcomeEmail(ctx context.Context, email, username string) error
	SendUnreadDigest(ctx context.Context, email, username string, unreadCount int, senderNames []string) error
}

// Dispatcher accepts notification events without blocking the caller.
type Dispatcher interface {
	Enqueue(event NotificationEvent)
	Shutdown()
}
