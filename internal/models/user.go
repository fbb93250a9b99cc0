package models

import (
	"time"
)

// User represents a user in the system
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null;size:150" json:"username"`
	DisplayName string    `gorm:"size:200" json:"display_name"`
	VKID        *string   `gorm:"uniqueIndex" json:"vk_id,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	IsStaff     bool      `gorm:"default:false" json:"is_staff"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// UserProfile marks which electorate a user's votes count toward
type UserProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	IsJury bool `gorm:"default:false" json:"is_jury"`
}

// TableName specifies the table name for UserProfile model
func (UserProfile) TableName() string {
	return "user_profiles"
}
