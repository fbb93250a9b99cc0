package models

import (
	"time"
)

// Category represents an award category
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsMain      bool      `gorm:"default:true" json:"is_main"` // primary vs. supplemental
	Nominees    []Nominee `gorm:"foreignKey:CategoryID" json:"nominees,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}

// Nominee belongs to exactly one category
type Nominee struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Nominee model
func (Nominee) TableName() string {
	return "nominees"
}
