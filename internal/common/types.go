package common

type EventType string

const (
	NewMessageEvent   EventType = "new_message"
	WelcomeEvent      EventType = "welcome"
	UnreadDigestEvent EventType = "unread_digest"
)

// NotificationEvent carries everything a worker needs to deliver one
// outbound email. The message preview is truncated before the event is
// built and is never persisted.
type NotificationEvent struct {
	Type          EventType
	ReceiverEmail string
	ReceiverName  string
	SenderName    string
	Preview       string
	UnreadCount   int
	SenderNames   []string
}
