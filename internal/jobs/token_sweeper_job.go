package jobs

import (
	"context"
	"log"
	"time"

	"awards-platform/internal/repository"
	"awards-platform/internal/services"
)

// TokenSweeperJob periodically removes jury tokens that expired without
// being redeemed. Validity checks never depend on the sweep; it only
// keeps the table from accumulating dead rows.
type TokenSweeperJob struct {
	service *services.JuryService
}

func NewTokenSweeperJob(repo *repository.Repository) *TokenSweeperJob {
	return &TokenSweeperJob{
		service: services.NewJuryService(repo),
	}
}

// Start begins the periodic sweep
func (j *TokenSweeperJob) Start(interval time.Duration) {
	go func() {
		ctx := context.Background()
		if n, err := j.service.SweepExpired(ctx); err != nil {
			log.Printf("Initial token sweep error: %v", err)
		} else if n > 0 {
			log.Printf("Token sweep removed %d expired tokens", n)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if n, err := j.service.SweepExpired(ctx); err != nil {
				log.Printf("Token sweep error: %v", err)
			} else if n > 0 {
				log.Printf("Token sweep removed %d expired tokens", n)
			}
		}
	}()
}
