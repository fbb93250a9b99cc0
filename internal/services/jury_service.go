package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"awards-platform/internal/models"
	"awards-platform/internal/repository"
)

// JuryService issues and redeems the single-use credentials that
// upgrade a session to jury status
type JuryService struct {
	repo *repository.Repository
}

// NewJuryService creates a new JuryService
func NewJuryService(repo *repository.Repository) *JuryService {
	return &JuryService{repo: repo}
}

// Issue creates a fresh jury token, redeemable for the next 24 hours
func (s *JuryService) Issue(ctx context.Context) (*models.JuryToken, error) {
	token := models.JuryToken{
		Token:     uuid.New(),
		Used:      false,
		ExpiresAt: time.Now().Add(models.JuryTokenTTL),
	}

	if err := s.repo.CreateJuryToken(ctx, &token); err != nil {
		return nil, fmt.Errorf("failed to create jury token: %w", err)
	}
	return &token, nil
}

// LoginURL builds the redeemable link for a token
func (s *JuryService) LoginURL(baseURL string, token *models.JuryToken) string {
	return fmt.Sprintf("%s/jury-login/%s", strings.TrimRight(baseURL, "/"), token.Token)
}

// Redeem consumes a jury token. The token binds to its already-bound
// user, else to the currently authenticated user, else to a freshly
// created placeholder account; that user's profile is marked jury and
// the token is spent. Runs in one transaction so of two racing redeems
// exactly one succeeds.
func (s *JuryService) Redeem(ctx context.Context, tokenID uuid.UUID, currentUserID *uint) (*models.User, error) {
	var user models.User

	err := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		token, err := txRepo.GetJuryToken(ctx, tokenID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTokenNotFound
			}
			return err
		}

		if !token.IsValid(time.Now()) {
			return ErrTokenExpiredOrUsed
		}

		switch {
		case token.UserID != nil:
			if err := tx.First(&user, *token.UserID).Error; err != nil {
				return fmt.Errorf("failed to load bound user: %w", err)
			}
		case currentUserID != nil:
			if err := tx.First(&user, *currentUserID).Error; err != nil {
				return fmt.Errorf("failed to load current user: %w", err)
			}
		default:
			// Placeholder account with no login of its own; the jury
			// link is its only way in.
			suffix := strings.ReplaceAll(token.Token.String(), "-", "")[:8]
			user = models.User{
				Username:    "jury_" + suffix,
				DisplayName: "Jury member",
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to create jury user: %w", err)
			}
		}

		if err := markJury(tx, user.ID); err != nil {
			return err
		}

		token.UserID = &user.ID
		token.Used = true
		if err := txRepo.SaveJuryToken(ctx, token); err != nil {
			return fmt.Errorf("failed to mark token used: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Printf("Jury token redeemed by user %d (%s)", user.ID, user.Username)
	return &user, nil
}

// SweepExpired deletes unredeemed tokens past their expiry
func (s *JuryService) SweepExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredJuryTokens(ctx, time.Now())
}

// markJury sets IsJury on the user's profile, creating the profile row
// if it does not exist yet
func markJury(tx *gorm.DB, userID uint) error {
	var profile models.UserProfile
	err := tx.Where("user_id = ?", userID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		profile = models.UserProfile{UserID: userID, IsJury: true}
		return tx.Create(&profile).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&profile).Update("is_jury", true).Error
}
