package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"courier/internal/dbmysql"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *dbmysql.Message) error
	GetByIDForUser(ctx context.Context, messageID, userID uint) (*dbmysql.Message, error)
	GetByIDForReceiver(ctx context.Context, messageID, receiverID uint) (*dbmysql.Message, error)
	MarkRead(ctx context.Context, messageID uint) error
	ListForUser(ctx context.Context, userID uint, skip, limit int, conversationID *uint) ([]*dbmysql.Message, error)
	ListByConversation(ctx context.Context, conversationID uint, skip, limit int) ([]*dbmysql.Message, error)
	LatestInConversation(ctx context.Context, conversationID uint) (*dbmysql.Message, error)
	UnreadSummary(ctx context.Context, receiverID uint) (int64, []string, error)
}

type messageRepo struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, msg *dbmysql.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// GetByIDForUser returns the message only when the user is its sender or
// receiver; nil otherwise, including when the row simply does not exist.
func (r *messageRepo) GetByIDForUser(ctx context.Context, messageID, userID uint) (*dbmysql.Message, error) {
	var msg dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("id = ? AND (sender_id = ? OR receiver_id = ?)", messageID, userID, userID).
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// GetByIDForReceiver is the capability check behind mark-read: a sender or
// third party querying the same ID gets nil.
func (r *messageRepo) GetByIDForReceiver(ctx context.Context, messageID, receiverID uint) (*dbmysql.Message, error) {
	var msg dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("id = ? AND receiver_id = ?", messageID, receiverID).
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// MarkRead only ever writes the false→true transition, so the read flag is
// monotonic no matter how often it is called.
func (r *messageRepo) MarkRead(ctx context.Context, messageID uint) error {
	return r.db.WithContext(ctx).
		Model(&dbmysql.Message{}).
		Where("id = ? AND is_read = ?", messageID, false).
		Update("is_read", true).Error
}

// ListForUser is the inbox view: newest first, optionally narrowed to one
// conversation. The row ID breaks creation-time ties deterministically.
func (r *messageRepo) ListForUser(ctx context.Context, userID uint, skip, limit int, conversationID *uint) ([]*dbmysql.Message, error) {
	q := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID)

	if conversationID != nil {
		q = q.Where("conversation_id = ?", *conversationID)
	}

	var msgs []*dbmysql.Message
	err := q.Order("created_at DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

// ListByConversation is the thread view: oldest first.
func (r *messageRepo) ListByConversation(ctx context.Context, conversationID uint, skip, limit int) ([]*dbmysql.Message, error) {
	var msgs []*dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Offset(skip).
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (r *messageRepo) LatestInConversation(ctx context.Context, conversationID uint) (*dbmysql.Message, error) {
	var msg dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// UnreadSummary returns the unread count plus the distinct usernames of the
// senders, feeding the digest email.
func (r *messageRepo) UnreadSummary(ctx context.Context, receiverID uint) (int64, []string, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	if err != nil {
		return 0, nil, err
	}

	var senders []string
	err = r.db.WithContext(ctx).
		Model(&dbmysql.Message{}).
		Joins("JOIN users ON users.id = messages.sender_id").
		Where("messages.receiver_id = ? AND messages.is_read = ?", receiverID, false).
		Distinct().
		Pluck("users.username", &senders).Error
	if err != nil {
		return 0, nil, err
	}

	return count, senders, nil
}
