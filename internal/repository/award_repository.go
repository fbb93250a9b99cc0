package repository

import (
	"context"
	"time"

	"awards-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying handle for transaction scoping
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// WithTx returns a repository bound to the given transaction
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// GetCategoryByID retrieves a category by ID
func (r *Repository) GetCategoryByID(ctx context.Context, categoryID uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Where("id = ?", categoryID).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetNomineeInCategory retrieves a nominee, scoped to its category
func (r *Repository) GetNomineeInCategory(ctx context.Context, nomineeID, categoryID uint) (*models.Nominee, error) {
	var nominee models.Nominee
	err := r.db.WithContext(ctx).
		Where("id = ? AND category_id = ?", nomineeID, categoryID).
		First(&nominee).Error
	if err != nil {
		return nil, err
	}
	return &nominee, nil
}

// GetCategoryNominees retrieves a category's nominees in insertion order
func (r *Repository) GetCategoryNominees(ctx context.Context, categoryID uint) ([]models.Nominee, error) {
	var nominees []models.Nominee
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id ASC").
		Find(&nominees).Error
	if err != nil {
		return nil, err
	}
	return nominees, nil
}

// FindUserVoteInCategory retrieves the user's existing vote for any
// nominee of the category, if one exists
func (r *Repository) FindUserVoteInCategory(ctx context.Context, userID, categoryID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Joins("JOIN nominees ON nominees.id = votes.nominee_id").
		Where("votes.user_id = ? AND nominees.category_id = ?", userID, categoryID).
		First(&vote).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// CreateVote creates a new vote
func (r *Repository) CreateVote(ctx context.Context, vote *models.Vote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

// SaveVote updates an existing vote
func (r *Repository) SaveVote(ctx context.Context, vote *models.Vote) error {
	return r.db.WithContext(ctx).Save(vote).Error
}

// CountNomineeVotes counts votes for one nominee, split by electorate
func (r *Repository) CountNomineeVotes(ctx context.Context, nomineeID uint, jury bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("nominee_id = ? AND jury = ?", nomineeID, jury).
		Count(&count).Error
	return count, err
}

// CountCategoryVotes counts all votes cast in a category for one electorate
func (r *Repository) CountCategoryVotes(ctx context.Context, categoryID uint, jury bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Joins("JOIN nominees ON nominees.id = votes.nominee_id").
		Where("nominees.category_id = ? AND votes.jury = ?", categoryID, jury).
		Count(&count).Error
	return count, err
}

// UpsertFinalResult writes a tally snapshot row, overwriting any prior
// snapshot for the same (category, nominee)
func (r *Repository) UpsertFinalResult(ctx context.Context, result *models.FinalResult) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "category_id"}, {Name: "nominee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"jury_votes", "user_votes", "total_score", "updated_at",
		}),
	}).Create(result).Error
}

// GetCategoryResults retrieves committed snapshot rows for a category,
// best score first
func (r *Repository) GetCategoryResults(ctx context.Context, categoryID uint) ([]models.FinalResult, error) {
	var results []models.FinalResult
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("total_score DESC, id ASC").
		Preload("Nominee").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetCategoryWinner retrieves the top committed snapshot row for a
// category, or nil when the category has never been tallied
func (r *Repository) GetCategoryWinner(ctx context.Context, categoryID uint) (*models.FinalResult, error) {
	var result models.FinalResult
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("total_score DESC, id ASC").
		Preload("Nominee").
		First(&result).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateJuryToken creates a jury token
func (r *Repository) CreateJuryToken(ctx context.Context, token *models.JuryToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetJuryToken retrieves a jury token by its UUID
func (r *Repository) GetJuryToken(ctx context.Context, token uuid.UUID) (*models.JuryToken, error) {
	var juryToken models.JuryToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&juryToken).Error
	if err != nil {
		return nil, err
	}
	return &juryToken, nil
}

// SaveJuryToken updates a jury token
func (r *Repository) SaveJuryToken(ctx context.Context, token *models.JuryToken) error {
	return r.db.WithContext(ctx).Save(token).Error
}

// DeleteExpiredJuryTokens removes unredeemed tokens whose validity
// window has closed. Returns the number of rows removed.
func (r *Repository) DeleteExpiredJuryTokens(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("used = ? AND expires_at <= ?", false, now).
		Delete(&models.JuryToken{})
	return res.RowsAffected, res.Error
}
