package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"courier/internal/dbmysql"
)

type ConversationRepository interface {
	FindOrCreate(ctx context.Context, low, high uint) (*dbmysql.Conversation, error)
	GetByID(ctx context.Context, conversationID uint) (*dbmysql.Conversation, error)
	ListForUser(ctx context.Context, userID uint, skip, limit int) ([]*dbmysql.Conversation, error)
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepo{db: db}
}

// FindOrCreate returns the single conversation for a canonical pair,
// creating it when absent. The unique index on (low_user_id, high_user_id)
// arbitrates concurrent creation: the loser of the insert race sees
// gorm.ErrDuplicatedKey and re-runs the lookup instead of erroring.
func (r *conversationRepo) FindOrCreate(ctx context.Context, low, high uint) (*dbmysql.Conversation, error) {
	var conv dbmysql.Conversation
	err := r.db.WithContext(ctx).
		Where("low_user_id = ? AND high_user_id = ?", low, high).
		First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = dbmysql.Conversation{LowUserID: low, HighUserID: high}
	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing dbmysql.Conversation
			if err := r.db.WithContext(ctx).
				Where("low_user_id = ? AND high_user_id = ?", low, high).
				First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}

	return &conv, nil
}

// GetByID returns nil when no such conversation exists. Participation is
// checked by the caller so absence and denial collapse into one signal there.
func (r *conversationRepo) GetByID(ctx context.Context, conversationID uint) (*dbmysql.Conversation, error) {
	var conv dbmysql.Conversation
	err := r.db.WithContext(ctx).First(&conv, conversationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// ListForUser pages in row-identity order. Plain offset pagination: results
// can skew under concurrent inserts, which is accepted.
func (r *conversationRepo) ListForUser(ctx context.Context, userID uint, skip, limit int) ([]*dbmysql.Conversation, error) {
	var convs []*dbmysql.Conversation
	err := r.db.WithContext(ctx).
		Preload("LowUser").
		Preload("HighUser").
		Where("low_user_id = ? OR high_user_id = ?", userID, userID).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&convs).Error
	return convs, err
}
