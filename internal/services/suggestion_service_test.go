package services

import (
	"context"
	"errors"
	"testing"

	"awards-platform/internal/models"
)

func TestSuggestCategoryLimit(t *testing.T) {
	db := setupTestDB(t)
	service := NewSuggestionService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")

	if _, err := service.SuggestCategory(ctx, user.ID, "Best Stream", ""); err != nil {
		t.Fatalf("first suggestion failed: %v", err)
	}
	if _, err := service.SuggestCategory(ctx, user.ID, "Best Clip", ""); err != nil {
		t.Fatalf("second suggestion failed: %v", err)
	}

	_, err := service.SuggestCategory(ctx, user.ID, "Best Meme", "")
	if !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("expected ErrLimitExceeded on third suggestion, got %v", err)
	}

	var count int64
	db.Model(&models.SuggestedCategory{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 stored suggestions, got %d", count)
	}

	// The cap is per user, not global.
	other := createTestUser(t, db, "bob")
	if _, err := service.SuggestCategory(ctx, other.ID, "Best Debut", ""); err != nil {
		t.Errorf("other user's suggestion failed: %v", err)
	}
}

func TestSuggestNomineeOnePerCategory(t *testing.T) {
	db := setupTestDB(t)
	service := NewSuggestionService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	catA := createTestCategory(t, db, "Category A")
	catB := createTestCategory(t, db, "Category B")

	if _, err := service.SuggestNominee(ctx, user.ID, catA.ID, "Nominee 1", ""); err != nil {
		t.Fatalf("first nominee suggestion failed: %v", err)
	}

	_, err := service.SuggestNominee(ctx, user.ID, catA.ID, "Nominee 2", "")
	if !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("expected ErrLimitExceeded for second nominee in same category, got %v", err)
	}

	// A different category is still open to this user.
	if _, err := service.SuggestNominee(ctx, user.ID, catB.ID, "Nominee 3", ""); err != nil {
		t.Errorf("suggestion in another category failed: %v", err)
	}
}

func TestSuggestNomineeUnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	service := NewSuggestionService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")

	_, err := service.SuggestNominee(ctx, user.ID, 12345, "Ghost", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing category, got %v", err)
	}
}

func TestApproveCategorySuggestion(t *testing.T) {
	db := setupTestDB(t)
	service := NewSuggestionService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	suggestion, err := service.SuggestCategory(ctx, user.ID, "Best Stream", "long streams")
	if err != nil {
		t.Fatalf("SuggestCategory failed: %v", err)
	}

	category, err := service.ApproveCategorySuggestion(ctx, suggestion.ID, false)
	if err != nil {
		t.Fatalf("ApproveCategorySuggestion failed: %v", err)
	}

	if category.Name != "Best Stream" || category.Description != "long streams" {
		t.Errorf("category fields not carried over: %+v", category)
	}
	if category.IsMain {
		t.Error("expected a supplemental category")
	}

	var stored models.SuggestedCategory
	if err := db.First(&stored, suggestion.ID).Error; err != nil {
		t.Fatalf("failed to reload suggestion: %v", err)
	}
	if !stored.Approved {
		t.Error("suggestion not marked approved")
	}
}

func TestApproveNomineeSuggestion(t *testing.T) {
	db := setupTestDB(t)
	service := NewSuggestionService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	category := createTestCategory(t, db, "Best Stream")

	suggestion, err := service.SuggestNominee(ctx, user.ID, category.ID, "Streamer X", "")
	if err != nil {
		t.Fatalf("SuggestNominee failed: %v", err)
	}

	nominee, err := service.ApproveNomineeSuggestion(ctx, suggestion.ID)
	if err != nil {
		t.Fatalf("ApproveNomineeSuggestion failed: %v", err)
	}

	if nominee.CategoryID != category.ID {
		t.Errorf("nominee created in category %d, want %d", nominee.CategoryID, category.ID)
	}

	pending, err := service.GetPendingNomineeSuggestions(ctx)
	if err != nil {
		t.Fatalf("GetPendingNomineeSuggestions failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no pending suggestions after approval, got %d", len(pending))
	}
}

func TestRejectSuggestion(t *testing.T) {
	db := setupTestDB(t)
	service := NewSuggestionService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	suggestion, err := service.SuggestCategory(ctx, user.ID, "Best Stream", "")
	if err != nil {
		t.Fatalf("SuggestCategory failed: %v", err)
	}

	if err := service.RejectCategorySuggestion(ctx, suggestion.ID); err != nil {
		t.Fatalf("RejectCategorySuggestion failed: %v", err)
	}

	err = service.RejectCategorySuggestion(ctx, suggestion.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second rejection, got %v", err)
	}

	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count != 0 {
		t.Errorf("rejection must not create a category, found %d", count)
	}
}
