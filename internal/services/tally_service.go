package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"awards-platform/internal/models"
	"awards-platform/internal/repository"
)

// Electorate weights: each electorate's influence is normalized to a
// fixed split regardless of turnout, so a handful of jurors is never
// drowned out by raw public vote counts.
var (
	juryWeight = decimal.RequireFromString("0.30")
	userWeight = decimal.RequireFromString("0.70")
)

// scoreScale is the stored precision of total_score
const scoreScale = 8

// NomineeScore is one tally line for a nominee
type NomineeScore struct {
	NomineeID        uint            `json:"nominee_id"`
	Name             string          `json:"name"`
	JuryVotes        int64           `json:"jury_votes"`
	UserVotes        int64           `json:"user_votes"`
	JuryContribution decimal.Decimal `json:"jury_contribution"`
	UserContribution decimal.Decimal `json:"user_contribution"`
	TotalScore       decimal.Decimal `json:"total_score"`
}

// CategoryResults is the tally for one category
type CategoryResults struct {
	Category models.Category `json:"category"`
	Scores   []NomineeScore  `json:"scores"`
}

// CategoryWinner is one public results line
type CategoryWinner struct {
	Category models.Category `json:"category"`
	Winner   models.Nominee  `json:"winner"`
	Score    decimal.Decimal `json:"score"`
}

// TallyService computes normalized weighted scores per nominee and
// persists them as FinalResult snapshots
type TallyService struct {
	repo *repository.Repository
}

// NewTallyService creates a new TallyService
func NewTallyService(repo *repository.Repository) *TallyService {
	return &TallyService{repo: repo}
}

// ComputeResults tallies one category without persisting anything.
// Nominees are scored as share-of-electorate times the electorate
// weight; an electorate with zero votes contributes zero. The returned
// slice is sorted by score descending, ties keeping nominee insertion
// order.
func (s *TallyService) ComputeResults(ctx context.Context, categoryID uint) ([]NomineeScore, error) {
	nominees, err := s.repo.GetCategoryNominees(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	totalJury, err := s.repo.CountCategoryVotes(ctx, categoryID, true)
	if err != nil {
		return nil, err
	}
	totalUser, err := s.repo.CountCategoryVotes(ctx, categoryID, false)
	if err != nil {
		return nil, err
	}

	scores := make([]NomineeScore, 0, len(nominees))
	for _, nominee := range nominees {
		juryVotes, err := s.repo.CountNomineeVotes(ctx, nominee.ID, true)
		if err != nil {
			return nil, err
		}
		userVotes, err := s.repo.CountNomineeVotes(ctx, nominee.ID, false)
		if err != nil {
			return nil, err
		}

		juryContribution := decimal.Zero
		if totalJury > 0 {
			juryContribution = decimal.NewFromInt(juryVotes).
				Div(decimal.NewFromInt(totalJury)).
				Mul(juryWeight).
				Round(scoreScale)
		}

		userContribution := decimal.Zero
		if totalUser > 0 {
			userContribution = decimal.NewFromInt(userVotes).
				Div(decimal.NewFromInt(totalUser)).
				Mul(userWeight).
				Round(scoreScale)
		}

		scores = append(scores, NomineeScore{
			NomineeID:        nominee.ID,
			Name:             nominee.Name,
			JuryVotes:        juryVotes,
			UserVotes:        userVotes,
			JuryContribution: juryContribution,
			UserContribution: userContribution,
			TotalScore:       juryContribution.Add(userContribution).Round(scoreScale),
		})
	}

	// Stable sort keeps insertion order on equal scores.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore.GreaterThan(scores[j].TotalScore)
	})

	return scores, nil
}

// Commit persists the computed scores for one category as FinalResult
// rows, overwriting any prior snapshot keyed by (category, nominee).
// Re-running with unchanged votes reproduces identical rows. A single
// transaction covers the whole category so readers never observe a
// partially updated snapshot.
func (s *TallyService) Commit(ctx context.Context, categoryID uint) ([]NomineeScore, error) {
	if _, err := s.repo.GetCategoryByID(ctx, categoryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
		}
		return nil, err
	}

	scores, err := s.ComputeResults(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	err = s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for _, score := range scores {
			result := models.FinalResult{
				CategoryID: categoryID,
				NomineeID:  score.NomineeID,
				JuryVotes:  score.JuryVotes,
				UserVotes:  score.UserVotes,
				TotalScore: score.TotalScore,
			}
			if err := txRepo.UpsertFinalResult(ctx, &result); err != nil {
				return fmt.Errorf("failed to persist result for nominee %d: %w", score.NomineeID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return scores, nil
}

// CommitAll runs Commit for every category
func (s *TallyService) CommitAll(ctx context.Context) ([]CategoryResults, error) {
	var categories []models.Category
	if err := s.repo.DB().WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	results := make([]CategoryResults, 0, len(categories))
	for _, category := range categories {
		scores, err := s.Commit(ctx, category.ID)
		if err != nil {
			return nil, fmt.Errorf("tally failed for category %d: %w", category.ID, err)
		}
		results = append(results, CategoryResults{Category: category, Scores: scores})
	}

	log.Printf("Tally committed for %d categories", len(results))
	return results, nil
}

// Preview computes the tally for every category without persisting it
func (s *TallyService) Preview(ctx context.Context) ([]CategoryResults, error) {
	var categories []models.Category
	if err := s.repo.DB().WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	results := make([]CategoryResults, 0, len(categories))
	for _, category := range categories {
		scores, err := s.ComputeResults(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, CategoryResults{Category: category, Scores: scores})
	}
	return results, nil
}

// PublicResults returns, per category, the nominee with the best
// committed score. Categories that have never been tallied are omitted.
func (s *TallyService) PublicResults(ctx context.Context) ([]CategoryWinner, error) {
	var categories []models.Category
	if err := s.repo.DB().WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	winners := make([]CategoryWinner, 0, len(categories))
	for _, category := range categories {
		top, err := s.repo.GetCategoryWinner(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		if top == nil || top.Nominee == nil {
			continue
		}
		winners = append(winners, CategoryWinner{
			Category: category,
			Winner:   *top.Nominee,
			Score:    top.TotalScore,
		})
	}
	return winners, nil
}
