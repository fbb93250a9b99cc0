package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"awards-platform/internal/models"
	"awards-platform/internal/repository"
)

func TestIssueJuryToken(t *testing.T) {
	db := setupTestDB(t)
	service := NewJuryService(repository.NewRepository(db))
	ctx := context.Background()

	token, err := service.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if token.Used {
		t.Error("fresh token must not be marked used")
	}
	if token.UserID != nil {
		t.Error("fresh token must not be bound to a user")
	}

	remaining := time.Until(token.ExpiresAt)
	if remaining < 23*time.Hour || remaining > 25*time.Hour {
		t.Errorf("expected ~24h validity, got %s", remaining)
	}

	link := service.LoginURL("http://localhost:8080/", token)
	want := "http://localhost:8080/jury-login/" + token.Token.String()
	if link != want {
		t.Errorf("login URL = %q, want %q", link, want)
	}
}

func TestRedeemCreatesPlaceholderUser(t *testing.T) {
	db := setupTestDB(t)
	service := NewJuryService(repository.NewRepository(db))
	ctx := context.Background()

	token, err := service.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	user, err := service.Redeem(ctx, token.Token, nil)
	if err != nil {
		t.Fatalf("Redeem failed: %v", err)
	}

	if !strings.HasPrefix(user.Username, "jury_") {
		t.Errorf("placeholder username = %q, want jury_ prefix", user.Username)
	}

	var profile models.UserProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("failed to load profile: %v", err)
	}
	if !profile.IsJury {
		t.Error("redeemed user's profile not marked jury")
	}

	var stored models.JuryToken
	if err := db.Where("token = ?", token.Token).First(&stored).Error; err != nil {
		t.Fatalf("failed to reload token: %v", err)
	}
	if !stored.Used {
		t.Error("token not marked used after redemption")
	}
	if stored.UserID == nil || *stored.UserID != user.ID {
		t.Error("token not bound to the redeeming user")
	}
}

func TestRedeemUpgradesCurrentUser(t *testing.T) {
	db := setupTestDB(t)
	service := NewJuryService(repository.NewRepository(db))
	ctx := context.Background()

	existing := createTestUser(t, db, "vk_12345")

	token, err := service.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	user, err := service.Redeem(ctx, token.Token, &existing.ID)
	if err != nil {
		t.Fatalf("Redeem failed: %v", err)
	}

	if user.ID != existing.ID {
		t.Errorf("redeemed onto user %d, want existing user %d", user.ID, existing.ID)
	}

	var profile models.UserProfile
	if err := db.Where("user_id = ?", existing.ID).First(&profile).Error; err != nil {
		t.Fatalf("failed to load profile: %v", err)
	}
	if !profile.IsJury {
		t.Error("existing user's profile not marked jury")
	}

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount != 1 {
		t.Errorf("expected no placeholder user, found %d users", userCount)
	}
}

func TestRedeemSecondAttemptFails(t *testing.T) {
	db := setupTestDB(t)
	service := NewJuryService(repository.NewRepository(db))
	ctx := context.Background()

	token, err := service.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := service.Redeem(ctx, token.Token, nil); err != nil {
		t.Fatalf("first Redeem failed: %v", err)
	}

	_, err = service.Redeem(ctx, token.Token, nil)
	if !errors.Is(err, ErrTokenExpiredOrUsed) {
		t.Errorf("expected ErrTokenExpiredOrUsed on second redemption, got %v", err)
	}
}

func TestRedeemExpiredToken(t *testing.T) {
	db := setupTestDB(t)
	service := NewJuryService(repository.NewRepository(db))
	ctx := context.Background()

	token := models.JuryToken{
		Token:     uuid.New(),
		Used:      false,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := db.Create(&token).Error; err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	_, err := service.Redeem(ctx, token.Token, nil)
	if !errors.Is(err, ErrTokenExpiredOrUsed) {
		t.Errorf("expected ErrTokenExpiredOrUsed for expired token, got %v", err)
	}
}

func TestRedeemUnknownToken(t *testing.T) {
	db := setupTestDB(t)
	service := NewJuryService(repository.NewRepository(db))
	ctx := context.Background()

	_, err := service.Redeem(ctx, uuid.New(), nil)
	if !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestSweepExpired(t *testing.T) {
	db := setupTestDB(t)
	service := NewJuryService(repository.NewRepository(db))
	ctx := context.Background()

	// One live, one expired-unused, one redeemed.
	live, err := service.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	expired := models.JuryToken{
		Token:     uuid.New(),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatalf("failed to create expired token: %v", err)
	}

	redeemed, err := service.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := service.Redeem(ctx, redeemed.Token, nil); err != nil {
		t.Fatalf("Redeem failed: %v", err)
	}

	n, err := service.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("SweepExpired failed: %v", err)
	}
	if n != 1 {
		t.Errorf("swept %d tokens, want 1", n)
	}

	var remaining []models.JuryToken
	if err := db.Find(&remaining).Error; err != nil {
		t.Fatalf("failed to list tokens: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 surviving tokens, got %d", len(remaining))
	}
	for _, token := range remaining {
		if token.Token == expired.Token {
			t.Error("expired unused token survived the sweep")
		}
	}
	_ = live
}
