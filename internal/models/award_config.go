package models

import (
	"time"
)

// Award stages. Persisted as these exact strings.
const (
	StageSuggestCategory = "suggest_cat"
	StageFinished        = "finished"
	StageSuggestNominee  = "suggest_nominee"
	StageVoting          = "voting"
	StageResults         = "results"
)

// Stages lists every valid stage value
var Stages = []string{
	StageSuggestCategory,
	StageFinished,
	StageSuggestNominee,
	StageVoting,
	StageResults,
}

// IsValidStage reports whether s is a known stage value
func IsValidStage(s string) bool {
	for _, stage := range Stages {
		if stage == s {
			return true
		}
	}
	return false
}

// AwardConfig holds the award cycle configuration. A single row drives
// all stage gating; the current stage is read from it on every request.
type AwardConfig struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:200;not null;default:'Online Awards'" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	CurrentStage string    `gorm:"size:30;not null;default:suggest_cat" json:"current_stage"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for AwardConfig model
func (AwardConfig) TableName() string {
	return "award_configs"
}
