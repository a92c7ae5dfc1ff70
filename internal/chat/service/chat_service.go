package service

import (
	"context"

	"go.uber.org/zap"

	"courier/internal/chat/repository"
	"courier/internal/common"
	"courier/internal/dbmysql"
	"courier/pkg/apperr"
)

// previewLength is how much of a message the notification email quotes.
const previewLength = 100

const maxPageSize = 100

// UserDirectory is the slice of the user module the chat core needs: an
// active-user lookup. Satisfied by user.UserRepository.
type UserDirectory interface {
	GetUserByID(ctx context.Context, userID uint) (*dbmysql.User, error)
}

// Participant is the public profile embedded in conversation views.
type Participant struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ConversationView is a conversation enriched with both participants and
// the most recent message, the shape the listing endpoint returns.
type ConversationView struct {
	ID          uint             `json:"id"`
	LowUser     Participant      `json:"low_user"`
	HighUser    Participant      `json:"high_user"`
	LastMessage *dbmysql.Message `json:"last_message"`
}

// ChatService defines the interface exposed to the handler layer.
type ChatService interface {
	SendMessage(ctx context.Context, senderID, receiverID uint, content string) (*dbmysql.Message, error)
	MarkMessageRead(ctx context.Context, messageID, requesterID uint) (*dbmysql.Message, error)
	GetMessage(ctx context.Context, messageID, userID uint) (*dbmysql.Message, error)
	ListMessages(ctx context.Context, userID uint, skip, limit int, conversationID *uint) ([]*dbmysql.Message, error)
	ListConversations(ctx context.Context, userID uint, skip, limit int) ([]ConversationView, error)
	GetConversation(ctx context.Context, conversationID, userID uint) (*dbmysql.Conversation, error)
	ListConversationMessages(ctx context.Context, conversationID, userID uint, skip, limit int) ([]*dbmysql.Message, error)
	SendUnreadDigest(ctx context.Context, userID uint) error
}

type chatService struct {
	convRepo   repository.ConversationRepository
	msgRepo    repository.MessageRepository
	users      UserDirectory
	dispatcher common.Dispatcher
	logger     *zap.SugaredLogger
}

func NewChatService(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	users UserDirectory,
	dispatcher common.Dispatcher,
	logger *zap.SugaredLogger,
) ChatService {
	return &chatService{
		convRepo:   convRepo,
		msgRepo:    msgRepo,
		users:      users,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// resolveConversation maps an unordered user pair to its single canonical
// conversation, creating it on first contact.
func (s *chatService) resolveConversation(ctx context.Context, userA, userB uint) (*dbmysql.Conversation, error) {
	if userA == userB {
		return nil, apperr.InvalidArg("cannot open a conversation with yourself")
	}

	low, high := dbmysql.CanonicalPair(userA, userB)
	conv, err := s.convRepo.FindOrCreate(ctx, low, high)
	if err != nil {
		return nil, apperr.Internal("resolving conversation", err)
	}
	return conv, nil
}

func (s *chatService) SendMessage(ctx context.Context, senderID, receiverID uint, content string) (*dbmysql.Message, error) {
	if senderID == receiverID {
		return nil, apperr.InvalidArg("cannot send a message to yourself")
	}
	if content == "" {
		return nil, apperr.InvalidArg("message content cannot be empty")
	}
	if len([]rune(content)) > dbmysql.MaxMessageLength {
		return nil, apperr.InvalidArg("message content exceeds maximum length")
	}

	receiver, err := s.users.GetUserByID(ctx, receiverID)
	if err != nil {
		return nil, apperr.Internal("looking up receiver", err)
	}
	if receiver == nil {
		return nil, apperr.NotFound("receiver not found")
	}

	sender, err := s.users.GetUserByID(ctx, senderID)
	if err != nil {
		return nil, apperr.Internal("looking up sender", err)
	}
	if sender == nil {
		return nil, apperr.Unauthenticated("sender account is not active")
	}

	conv, err := s.resolveConversation(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	msg := &dbmysql.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		IsRead:         false,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, apperr.Internal("saving message", err)
	}

	// The send already succeeded; notification delivery runs on the
	// dispatcher's workers and can never roll it back.
	s.dispatcher.Enqueue(common.NotificationEvent{
		Type:          common.NewMessageEvent,
		ReceiverEmail: receiver.Email,
		ReceiverName:  receiver.Username,
		SenderName:    sender.Username,
		Preview:       truncatePreview(content),
	})

	return msg, nil
}

func (s *chatService) MarkMessageRead(ctx context.Context, messageID, requesterID uint) (*dbmysql.Message, error) {
	msg, err := s.msgRepo.GetByIDForReceiver(ctx, messageID, requesterID)
	if err != nil {
		return nil, apperr.Internal("looking up message", err)
	}
	if msg == nil {
		return nil, apperr.NotFound("message not found")
	}

	// Already-read is success, not an error.
	if msg.IsRead {
		return msg, nil
	}

	if err := s.msgRepo.MarkRead(ctx, messageID); err != nil {
		return nil, apperr.Internal("marking message read", err)
	}
	msg.IsRead = true

	return msg, nil
}

func (s *chatService) GetMessage(ctx context.Context, messageID, userID uint) (*dbmysql.Message, error) {
	msg, err := s.msgRepo.GetByIDForUser(ctx, messageID, userID)
	if err != nil {
		return nil, apperr.Internal("looking up message", err)
	}
	if msg == nil {
		return nil, apperr.NotFound("message not found")
	}
	return msg, nil
}

func (s *chatService) ListMessages(ctx context.Context, userID uint, skip, limit int, conversationID *uint) ([]*dbmysql.Message, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}

	msgs, err := s.msgRepo.ListForUser(ctx, userID, skip, limit, conversationID)
	if err != nil {
		return nil, apperr.Internal("listing messages", err)
	}
	return msgs, nil
}

func (s *chatService) ListConversations(ctx context.Context, userID uint, skip, limit int) ([]ConversationView, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}

	convs, err := s.convRepo.ListForUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, apperr.Internal("listing conversations", err)
	}

	views := make([]ConversationView, 0, len(convs))
	for _, conv := range convs {
		last, err := s.msgRepo.LatestInConversation(ctx, conv.ID)
		if err != nil {
			return nil, apperr.Internal("loading latest message", err)
		}
		views = append(views, ConversationView{
			ID:          conv.ID,
			LowUser:     Participant{ID: conv.LowUser.ID, Username: conv.LowUser.Username},
			HighUser:    Participant{ID: conv.HighUser.ID, Username: conv.HighUser.Username},
			LastMessage: last,
		})
	}

	return views, nil
}

// GetConversation collapses "no such conversation" and "not a participant"
// into one not-found answer so callers cannot probe for existence.
func (s *chatService) GetConversation(ctx context.Context, conversationID, userID uint) (*dbmysql.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, apperr.Internal("looking up conversation", err)
	}
	if conv == nil || !conv.HasParticipant(userID) {
		return nil, apperr.NotFound("conversation not found")
	}
	return conv, nil
}

func (s *chatService) ListConversationMessages(ctx context.Context, conversationID, userID uint, skip, limit int) ([]*dbmysql.Message, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}

	if _, err := s.GetConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	msgs, err := s.msgRepo.ListByConversation(ctx, conversationID, skip, limit)
	if err != nil {
		return nil, apperr.Internal("listing conversation messages", err)
	}
	return msgs, nil
}

// SendUnreadDigest mails the user a summary of their unread messages.
func (s *chatService) SendUnreadDigest(ctx context.Context, userID uint) error {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return apperr.Internal("looking up user", err)
	}
	if u == nil {
		return apperr.NotFound("user not found")
	}

	count, senders, err := s.msgRepo.UnreadSummary(ctx, userID)
	if err != nil {
		return apperr.Internal("loading unread summary", err)
	}
	if count == 0 {
		s.logger.Debugw("no unread messages, skipping digest", "user_id", userID)
		return nil
	}

	s.dispatcher.Enqueue(common.NotificationEvent{
		Type:          common.UnreadDigestEvent,
		ReceiverEmail: u.Email,
		ReceiverName:  u.Username,
		UnreadCount:   int(count),
		SenderNames:   senders,
	})

	return nil
}

func validatePage(skip, limit int) error {
	if skip < 0 {
		return apperr.InvalidArg("skip must be non-negative")
	}
	if limit < 1 || limit > maxPageSize {
		return apperr.InvalidArg("limit must be between 1 and 100")
	}
	return nil
}

func truncatePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength])
}
