package services

import (
	"context"
	"errors"
	"testing"

	"awards-platform/internal/models"
	"awards-platform/internal/repository"
)

func TestRecordVoteReplacesWithinCategory(t *testing.T) {
	db := setupTestDB(t)
	service := NewVoteService(repository.NewRepository(db))
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	category := createTestCategory(t, db, "Best Stream")
	nomineeA := createTestNominee(t, db, category.ID, "A")
	nomineeB := createTestNominee(t, db, category.ID, "B")
	nomineeC := createTestNominee(t, db, category.ID, "C")

	outcome, err := service.RecordVote(ctx, user.ID, category.ID, nomineeA.ID, false)
	if err != nil {
		t.Fatalf("RecordVote failed: %v", err)
	}
	if outcome != VoteCreated {
		t.Errorf("expected VoteCreated, got %q", outcome)
	}

	// Re-voting for other nominees in the same category must replace,
	// never append.
	for _, nominee := range []*models.Nominee{nomineeB, nomineeC, nomineeA} {
		outcome, err = service.RecordVote(ctx, user.ID, category.ID, nominee.ID, false)
		if err != nil {
			t.Fatalf("RecordVote failed: %v", err)
		}
		if outcome != VoteUpdated {
			t.Errorf("expected VoteUpdated, got %q", outcome)
		}
	}

	var count int64
	db.Model(&models.Vote{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 vote row, got %d", count)
	}

	vote, err := service.GetUserVote(ctx, user.ID, category.ID)
	if err != nil {
		t.Fatalf("GetUserVote failed: %v", err)
	}
	if vote == nil || vote.NomineeID != nomineeA.ID {
		t.Errorf("expected final vote for nominee %d, got %+v", nomineeA.ID, vote)
	}
}

func TestRecordVoteIndependentCategories(t *testing.T) {
	db := setupTestDB(t)
	service := NewVoteService(repository.NewRepository(db))
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	catA := createTestCategory(t, db, "Category A")
	catB := createTestCategory(t, db, "Category B")
	nomineeA := createTestNominee(t, db, catA.ID, "A1")
	nomineeB := createTestNominee(t, db, catB.ID, "B1")

	if _, err := service.RecordVote(ctx, user.ID, catA.ID, nomineeA.ID, false); err != nil {
		t.Fatalf("RecordVote failed: %v", err)
	}

	outcome, err := service.RecordVote(ctx, user.ID, catB.ID, nomineeB.ID, false)
	if err != nil {
		t.Fatalf("RecordVote failed: %v", err)
	}
	if outcome != VoteCreated {
		t.Errorf("vote in a second category must insert, got %q", outcome)
	}

	var count int64
	db.Model(&models.Vote{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 vote rows across categories, got %d", count)
	}
}

func TestRecordVoteUpdatesJuryFlag(t *testing.T) {
	db := setupTestDB(t)
	service := NewVoteService(repository.NewRepository(db))
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	category := createTestCategory(t, db, "Best Stream")
	nominee := createTestNominee(t, db, category.ID, "A")

	if _, err := service.RecordVote(ctx, user.ID, category.ID, nominee.ID, false); err != nil {
		t.Fatalf("RecordVote failed: %v", err)
	}

	// Becoming jury and re-voting rewrites the electorate flag in place.
	if _, err := service.RecordVote(ctx, user.ID, category.ID, nominee.ID, true); err != nil {
		t.Fatalf("RecordVote failed: %v", err)
	}

	var vote models.Vote
	if err := db.Where("user_id = ?", user.ID).First(&vote).Error; err != nil {
		t.Fatalf("failed to load vote: %v", err)
	}
	if !vote.Jury {
		t.Error("jury flag not updated on re-vote")
	}
}

func TestRecordVoteRejectsForeignNominee(t *testing.T) {
	db := setupTestDB(t)
	service := NewVoteService(repository.NewRepository(db))
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	catA := createTestCategory(t, db, "Category A")
	catB := createTestCategory(t, db, "Category B")
	nomineeB := createTestNominee(t, db, catB.ID, "B1")

	_, err := service.RecordVote(ctx, user.ID, catA.ID, nomineeB.ID, false)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for a nominee outside the category, got %v", err)
	}
}
