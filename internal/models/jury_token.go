package models

import (
	"time"

	"github.com/google/uuid"
)

// JuryTokenTTL is how long a freshly issued token stays redeemable
const JuryTokenTTL = 24 * time.Hour

// JuryToken is a single-use, time-limited credential that upgrades a
// session to jury status. Once redeemed or expired it never becomes
// valid again.
type JuryToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"token"`
	Used      bool      `gorm:"default:false" json:"used"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for JuryToken model
func (JuryToken) TableName() string {
	return "jury_tokens"
}

// IsValid reports whether the token can still be redeemed
func (t *JuryToken) IsValid(now time.Time) bool {
	return !t.Used && t.ExpiresAt.After(now)
}
