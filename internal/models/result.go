package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinalResult is a tally snapshot per (category, nominee). Rows are
// recomputed and overwritten wholesale each time the tally runs.
type FinalResult struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CategoryID uint            `gorm:"not null;uniqueIndex:idx_results_category_nominee" json:"category_id"`
	Category   *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	NomineeID  uint            `gorm:"not null;uniqueIndex:idx_results_category_nominee" json:"nominee_id"`
	Nominee    *Nominee        `gorm:"foreignKey:NomineeID;constraint:OnDelete:CASCADE" json:"nominee,omitempty"`
	JuryVotes  int64           `gorm:"not null;default:0" json:"jury_votes"`
	UserVotes  int64           `gorm:"not null;default:0" json:"user_votes"`
	TotalScore decimal.Decimal `gorm:"type:decimal(12,8);not null;default:0" json:"total_score"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName specifies the table name for FinalResult model
func (FinalResult) TableName() string {
	return "final_results"
}
