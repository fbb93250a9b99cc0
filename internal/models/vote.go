package models

import (
	"time"
)

// Vote records a single ballot cast for a nominee. The jury flag marks
// which electorate the vote counts toward. A user holds at most one vote
// per category; that rule is enforced by the vote service write path,
// the unique index below only rejects duplicates for the same nominee.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_nominee" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	NomineeID uint      `gorm:"not null;uniqueIndex:idx_votes_user_nominee;index" json:"nominee_id"`
	Nominee   *Nominee  `gorm:"foreignKey:NomineeID;constraint:OnDelete:CASCADE" json:"nominee,omitempty"`
	Jury      bool      `gorm:"default:false" json:"jury"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Vote model
func (Vote) TableName() string {
	return "votes"
}
