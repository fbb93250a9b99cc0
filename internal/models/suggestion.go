package models

import (
	"time"
)

// SuggestedCategory represents a user-submitted category proposal awaiting approval
type SuggestedCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	UserID      *uint     `gorm:"index" json:"user_id,omitempty"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Approved    bool      `gorm:"default:false" json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for SuggestedCategory model
func (SuggestedCategory) TableName() string {
	return "suggested_categories"
}

// SuggestedNominee represents a user-submitted nominee proposal awaiting approval
type SuggestedNominee struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	UserID      *uint     `gorm:"index" json:"user_id,omitempty"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Approved    bool      `gorm:"default:false" json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for SuggestedNominee model
func (SuggestedNominee) TableName() string {
	return "suggested_nominees"
}
