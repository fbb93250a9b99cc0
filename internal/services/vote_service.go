package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"awards-platform/internal/models"
	"awards-platform/internal/repository"
)

// VoteOutcome reports whether a vote was newly inserted or replaced an
// earlier vote in the same category
type VoteOutcome string

const (
	VoteCreated VoteOutcome = "created"
	VoteUpdated VoteOutcome = "updated"
)

// VoteService records ballots. It is the sole write path for votes: the
// one-vote-per-category rule is a replace, not an insert constraint.
type VoteService struct {
	repo *repository.Repository
}

// NewVoteService creates a new VoteService
func NewVoteService(repo *repository.Repository) *VoteService {
	return &VoteService{repo: repo}
}

// RecordVote casts or re-casts the user's vote in a category. Any prior
// vote for a different nominee of the same category is overwritten in
// place. The lookup and write run in one transaction so two racing
// requests cannot both insert.
func (s *VoteService) RecordVote(ctx context.Context, userID, categoryID, nomineeID uint, isJury bool) (VoteOutcome, error) {
	var outcome VoteOutcome

	err := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		nominee, err := txRepo.GetNomineeInCategory(ctx, nomineeID, categoryID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: nominee %d in category %d", ErrNotFound, nomineeID, categoryID)
			}
			return err
		}

		existing, err := txRepo.FindUserVoteInCategory(ctx, userID, categoryID)
		if err != nil {
			return err
		}

		if existing != nil {
			existing.NomineeID = nominee.ID
			existing.Jury = isJury
			if err := txRepo.SaveVote(ctx, existing); err != nil {
				return fmt.Errorf("failed to update vote: %w", err)
			}
			outcome = VoteUpdated
			return nil
		}

		vote := models.Vote{
			UserID:    userID,
			NomineeID: nominee.ID,
			Jury:      isJury,
		}
		if err := txRepo.CreateVote(ctx, &vote); err != nil {
			return fmt.Errorf("failed to create vote: %w", err)
		}
		outcome = VoteCreated
		return nil
	})

	if err != nil {
		return "", err
	}
	return outcome, nil
}

// GetUserVote returns the user's current vote in a category, if any
func (s *VoteService) GetUserVote(ctx context.Context, userID, categoryID uint) (*models.Vote, error) {
	return s.repo.FindUserVoteInCategory(ctx, userID, categoryID)
}
