package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"awards-platform/internal/models"
)

// Submission caps enforced per user. The store carries no matching
// constraint; this service is the sole write path for suggestions.
const maxCategorySuggestionsPerUser = 2

// SuggestionService enforces per-user submission limits and handles the
// staff approval flow that turns suggestions into real categories and
// nominees
type SuggestionService struct {
	db *gorm.DB
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(db *gorm.DB) *SuggestionService {
	return &SuggestionService{db: db}
}

// CanSuggestCategory reports whether the user is under the category
// suggestion cap
func (s *SuggestionService) CanSuggestCategory(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.SuggestedCategory{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count < maxCategorySuggestionsPerUser, nil
}

// CanSuggestNominee reports whether the user has not yet suggested a
// nominee in the category
func (s *SuggestionService) CanSuggestNominee(ctx context.Context, userID, categoryID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.SuggestedNominee{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// SuggestCategory records a category proposal. Fails with
// ErrLimitExceeded once the user holds the maximum number of proposals,
// regardless of stage.
func (s *SuggestionService) SuggestCategory(ctx context.Context, userID uint, name, description string) (*models.SuggestedCategory, error) {
	ok, err := s.CanSuggestCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: at most %d suggested categories per user",
			ErrLimitExceeded, maxCategorySuggestionsPerUser)
	}

	suggestion := models.SuggestedCategory{
		Name:        name,
		Description: description,
		UserID:      &userID,
	}

	if err := s.db.WithContext(ctx).Create(&suggestion).Error; err != nil {
		return nil, fmt.Errorf("failed to create suggestion: %w", err)
	}
	return &suggestion, nil
}

// SuggestNominee records a nominee proposal for a category. At most one
// per (user, category).
func (s *SuggestionService) SuggestNominee(ctx context.Context, userID, categoryID uint, name, description string) (*models.SuggestedNominee, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, categoryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
		}
		return nil, err
	}

	ok, err := s.CanSuggestNominee(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: one suggested nominee per category", ErrLimitExceeded)
	}

	suggestion := models.SuggestedNominee{
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		UserID:      &userID,
	}

	if err := s.db.WithContext(ctx).Create(&suggestion).Error; err != nil {
		return nil, fmt.Errorf("failed to create suggestion: %w", err)
	}
	return &suggestion, nil
}

// GetPendingCategorySuggestions returns unapproved category suggestions
func (s *SuggestionService) GetPendingCategorySuggestions(ctx context.Context) ([]models.SuggestedCategory, error) {
	var suggestions []models.SuggestedCategory
	err := s.db.WithContext(ctx).
		Where("approved = ?", false).
		Order("created_at ASC").
		Find(&suggestions).Error
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// GetPendingNomineeSuggestions returns unapproved nominee suggestions
func (s *SuggestionService) GetPendingNomineeSuggestions(ctx context.Context) ([]models.SuggestedNominee, error) {
	var suggestions []models.SuggestedNominee
	err := s.db.WithContext(ctx).
		Where("approved = ?", false).
		Order("created_at ASC").
		Preload("Category").
		Find(&suggestions).Error
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// ApproveCategorySuggestion marks a suggestion approved and creates the
// real category from it
func (s *SuggestionService) ApproveCategorySuggestion(ctx context.Context, suggestionID uint, isMain bool) (*models.Category, error) {
	var suggestion models.SuggestedCategory
	if err := s.db.WithContext(ctx).First(&suggestion, suggestionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: suggestion %d", ErrNotFound, suggestionID)
		}
		return nil, err
	}

	category := models.Category{
		Name:        suggestion.Name,
		Description: suggestion.Description,
		IsMain:      isMain,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&category).Error; err != nil {
			return err
		}
		return tx.Model(&suggestion).Update("approved", true).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve suggestion: %w", err)
	}

	return &category, nil
}

// ApproveNomineeSuggestion marks a suggestion approved and creates the
// real nominee in the suggestion's category
func (s *SuggestionService) ApproveNomineeSuggestion(ctx context.Context, suggestionID uint) (*models.Nominee, error) {
	var suggestion models.SuggestedNominee
	if err := s.db.WithContext(ctx).First(&suggestion, suggestionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: suggestion %d", ErrNotFound, suggestionID)
		}
		return nil, err
	}

	nominee := models.Nominee{
		CategoryID:  suggestion.CategoryID,
		Name:        suggestion.Name,
		Description: suggestion.Description,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&nominee).Error; err != nil {
			return err
		}
		return tx.Model(&suggestion).Update("approved", true).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve suggestion: %w", err)
	}

	return &nominee, nil
}

// RejectCategorySuggestion deletes a category suggestion
func (s *SuggestionService) RejectCategorySuggestion(ctx context.Context, suggestionID uint) error {
	res := s.db.WithContext(ctx).Delete(&models.SuggestedCategory{}, suggestionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: suggestion %d", ErrNotFound, suggestionID)
	}
	return nil
}

// RejectNomineeSuggestion deletes a nominee suggestion
func (s *SuggestionService) RejectNomineeSuggestion(ctx context.Context, suggestionID uint) error {
	res := s.db.WithContext(ctx).Delete(&models.SuggestedNominee{}, suggestionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: suggestion %d", ErrNotFound, suggestionID)
	}
	return nil
}
