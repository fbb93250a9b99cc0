package services

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"awards-platform/internal/identity"
	"awards-platform/internal/models"
)

// IdentityProvider is the OAuth boundary consumed by login. The real
// implementation is identity.Client; tests substitute a fake.
type IdentityProvider interface {
	ExchangeCode(ctx context.Context, code string) (*identity.AccessToken, error)
	FetchProfile(ctx context.Context, accessToken string, userID int64) (*identity.Profile, error)
}

// AuthService handles authentication business logic
type AuthService struct {
	db       *gorm.DB
	provider IdentityProvider
}

// NewAuthService creates a new AuthService
func NewAuthService(db *gorm.DB, provider IdentityProvider) *AuthService {
	return &AuthService{db: db, provider: provider}
}

// ProcessOAuthLogin exchanges an authorization code with the identity
// provider and finds or creates the matching local user. A user who
// became jury through a one-time link keeps that status on later
// provider logins.
func (s *AuthService) ProcessOAuthLogin(ctx context.Context, code string) (*models.User, error) {
	token, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	profile, err := s.provider.FetchProfile(ctx, token.AccessToken, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}

	vkID := fmt.Sprintf("%d", profile.ID)

	var user models.User
	result := s.db.WithContext(ctx).Where("vk_id = ?", vkID).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		user = models.User{
			Username:    "vk_" + vkID,
			DisplayName: profile.DisplayName(),
			VKID:        &vkID,
		}
		if profile.PhotoURL != "" {
			user.AvatarURL = &profile.PhotoURL
		}

		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		log.Printf("New user created: vk_id=%s (ID: %d)", vkID, user.ID)
	} else if result.Error != nil {
		return nil, fmt.Errorf("database error: %w", result.Error)
	} else {
		updates := map[string]interface{}{
			"display_name": profile.DisplayName(),
		}
		if profile.PhotoURL != "" {
			updates["avatar_url"] = profile.PhotoURL
		}
		if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			log.Printf("Warning: failed to refresh profile for user %d: %v", user.ID, err)
		}
		log.Printf("User logged in: vk_id=%s (ID: %d)", vkID, user.ID)
	}

	// Ensure the profile row exists without touching an existing jury flag.
	if err := s.ensureProfile(ctx, user.ID); err != nil {
		log.Printf("Warning: failed to ensure profile for user %d: %v", user.ID, err)
	}

	return &user, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile retrieves the electorate profile for a user, creating the
// row on first access
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	if err := s.ensureProfile(ctx, userID); err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// IsJury reports which electorate the user's votes count toward
func (s *AuthService) IsJury(ctx context.Context, userID uint) (bool, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	return profile.IsJury, nil
}

func (s *AuthService) ensureProfile(ctx context.Context, userID uint) error {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		return s.db.WithContext(ctx).Create(&models.UserProfile{UserID: userID}).Error
	}
	return err
}
