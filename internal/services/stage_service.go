package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"awards-platform/internal/models"
)

// Action is a stage-gated user action
type Action string

const (
	ActionSuggestCategory Action = "suggest_category"
	ActionSuggestNominee  Action = "suggest_nominee"
	ActionVote            Action = "vote"
	ActionTally           Action = "tally"
)

// Each action is open during exactly one stage.
var actionStages = map[Action]string{
	ActionSuggestCategory: models.StageSuggestCategory,
	ActionSuggestNominee:  models.StageSuggestNominee,
	ActionVote:            models.StageVoting,
	ActionTally:           models.StageResults,
}

// IsPermitted reports whether an action is open at the given stage.
// Pure predicate, no side effects.
func IsPermitted(stage string, action Action) bool {
	required, ok := actionStages[action]
	if !ok {
		return false
	}
	return stage == required
}

// StageService answers "is action X currently permitted". The current
// stage is loaded from the configuration row per call rather than held
// in process state, so concurrent admin transitions are always observed.
type StageService struct {
	db *gorm.DB
}

// NewStageService creates a new StageService
func NewStageService(db *gorm.DB) *StageService {
	return &StageService{db: db}
}

// GetConfig retrieves the award configuration row. Returns ErrNoConfig
// when none exists: gating fails closed without explicit configuration.
func (s *StageService) GetConfig(ctx context.Context) (*models.AwardConfig, error) {
	var config models.AwardConfig
	if err := s.db.WithContext(ctx).Order("id ASC").First(&config).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoConfig
		}
		return nil, err
	}
	return &config, nil
}

// CurrentStage returns the current stage of the award cycle
func (s *StageService) CurrentStage(ctx context.Context) (string, error) {
	config, err := s.GetConfig(ctx)
	if err != nil {
		return "", err
	}
	return config.CurrentStage, nil
}

// EnsureOpen fails with ErrStageClosed unless the action is permitted
// at the currently configured stage
func (s *StageService) EnsureOpen(ctx context.Context, action Action) error {
	stage, err := s.CurrentStage(ctx)
	if err != nil {
		return err
	}
	if !IsPermitted(stage, action) {
		return fmt.Errorf("%w: %s requires stage %q, current stage is %q",
			ErrStageClosed, action, actionStages[action], stage)
	}
	return nil
}

// Bootstrap creates the award configuration row if none exists yet
func (s *StageService) Bootstrap(ctx context.Context, name, description string) (*models.AwardConfig, error) {
	config, err := s.GetConfig(ctx)
	if err == nil {
		return config, fmt.Errorf("award configuration already exists")
	}
	if err != ErrNoConfig {
		return nil, err
	}

	config = &models.AwardConfig{
		Name:         name,
		Description:  description,
		CurrentStage: models.StageSuggestCategory,
	}
	if config.Name == "" {
		config.Name = "Online Awards"
	}

	if err := s.db.WithContext(ctx).Create(config).Error; err != nil {
		return nil, fmt.Errorf("failed to create award configuration: %w", err)
	}
	return config, nil
}

// TransitionStage moves the award cycle to a new stage
func (s *StageService) TransitionStage(ctx context.Context, stage string) (*models.AwardConfig, error) {
	if !models.IsValidStage(stage) {
		return nil, fmt.Errorf("unknown stage %q", stage)
	}

	config, err := s.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(config).
		Update("current_stage", stage).Error; err != nil {
		return nil, fmt.Errorf("failed to update stage: %w", err)
	}

	config.CurrentStage = stage
	return config, nil
}
