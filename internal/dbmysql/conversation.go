package dbmysql

import (
	"time"
)

// Conversation is the single thread between an unordered pair of users.
// The pair is stored canonically with LowUserID < HighUserID; the composite
// unique index is what makes concurrent find-or-create safe.
type Conversation struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	LowUserID  uint      `gorm:"uniqueIndex:idx_conversation_pair;not null" json:"low_user_id"`
	HighUserID uint      `gorm:"uniqueIndex:idx_conversation_pair;not null" json:"high_user_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	LowUser  User `gorm:"foreignKey:LowUserID" json:"-"`
	HighUser User `gorm:"foreignKey:HighUserID" json:"-"`
}

// CanonicalPair orders two user IDs so (a,b) and (b,a) map to one pair.
func CanonicalPair(a, b uint) (low, high uint) {
	if a < b {
		return a, b
	}
	return b, a
}

// HasParticipant reports whether the user occupies either slot of the pair.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.LowUserID == userID || c.HighUserID == userID
}
