package services

import (
	"context"
	"errors"
	"testing"

	"awards-platform/internal/models"
)

func TestIsPermitted(t *testing.T) {
	cases := []struct {
		stage  string
		action Action
		want   bool
	}{
		{models.StageSuggestCategory, ActionSuggestCategory, true},
		{models.StageSuggestNominee, ActionSuggestCategory, false},
		{models.StageSuggestNominee, ActionSuggestNominee, true},
		{models.StageVoting, ActionVote, true},
		{models.StageVoting, ActionSuggestNominee, false},
		{models.StageResults, ActionTally, true},
		{models.StageFinished, ActionVote, false},
		{models.StageFinished, ActionSuggestCategory, false},
	}

	for _, tc := range cases {
		if got := IsPermitted(tc.stage, tc.action); got != tc.want {
			t.Errorf("IsPermitted(%q, %q) = %v, want %v", tc.stage, tc.action, got, tc.want)
		}
	}
}

func TestEnsureOpenFailsClosedWithoutConfig(t *testing.T) {
	db := setupTestDB(t)
	service := NewStageService(db)
	ctx := context.Background()

	err := service.EnsureOpen(ctx, ActionVote)
	if !errors.Is(err, ErrNoConfig) {
		t.Errorf("expected ErrNoConfig without a configuration row, got %v", err)
	}

	if _, err := service.CurrentStage(ctx); !errors.Is(err, ErrNoConfig) {
		t.Errorf("expected ErrNoConfig from CurrentStage, got %v", err)
	}
}

func TestEnsureOpen(t *testing.T) {
	db := setupTestDB(t)
	service := NewStageService(db)
	ctx := context.Background()

	if _, err := service.Bootstrap(ctx, "Test Awards", ""); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	// Fresh config starts at the category suggestion stage.
	if err := service.EnsureOpen(ctx, ActionSuggestCategory); err != nil {
		t.Errorf("expected suggest_category to be open, got %v", err)
	}

	err := service.EnsureOpen(ctx, ActionVote)
	if !errors.Is(err, ErrStageClosed) {
		t.Errorf("expected ErrStageClosed for voting, got %v", err)
	}

	if _, err := service.TransitionStage(ctx, models.StageVoting); err != nil {
		t.Fatalf("TransitionStage failed: %v", err)
	}

	if err := service.EnsureOpen(ctx, ActionVote); err != nil {
		t.Errorf("expected voting to be open after transition, got %v", err)
	}

	err = service.EnsureOpen(ctx, ActionSuggestCategory)
	if !errors.Is(err, ErrStageClosed) {
		t.Errorf("expected ErrStageClosed for suggest_category, got %v", err)
	}
}

func TestTransitionStageRejectsUnknownStage(t *testing.T) {
	db := setupTestDB(t)
	service := NewStageService(db)
	ctx := context.Background()

	if _, err := service.Bootstrap(ctx, "", ""); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if _, err := service.TransitionStage(ctx, "halftime"); err == nil {
		t.Error("expected an error for an unknown stage")
	}

	stage, err := service.CurrentStage(ctx)
	if err != nil {
		t.Fatalf("CurrentStage failed: %v", err)
	}
	if stage != models.StageSuggestCategory {
		t.Errorf("stage changed despite invalid transition: %q", stage)
	}
}

func TestBootstrapIsIdempotentGuard(t *testing.T) {
	db := setupTestDB(t)
	service := NewStageService(db)
	ctx := context.Background()

	if _, err := service.Bootstrap(ctx, "First", ""); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	config, err := service.Bootstrap(ctx, "Second", "")
	if err == nil {
		t.Error("expected an error when the configuration already exists")
	}
	if config == nil || config.Name != "First" {
		t.Errorf("expected the existing configuration back, got %+v", config)
	}

	var count int64
	db.Model(&models.AwardConfig{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 configuration row, got %d", count)
	}
}
