package importer

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"github.com/pr17-lab/sata-backend/internal/app/models"
	"github.com/pr17-lab/sata-backend/internal/app/repositories"
	"github.com/pr17-lab/sata-backend/internal/pkg/auth"
)

// AllowPasswordResetEnv must be set to "true" before a bulk reset runs.
const AllowPasswordResetEnv = "SATA_ALLOW_PASSWORD_RESET"

// DefaultResetWorkers bounds concurrent bcrypt hashing during a bulk reset.
const DefaultResetWorkers = 4

// PasswordResetSummary counts the outcome of a bulk password reset.
type PasswordResetSummary struct {
	Total   int
	Updated int
	Skipped int
	Failed  int
}

// ResetPasswords sets every user's password to "{student_id}@123". Hashing
// is fanned out across a worker pool; each update commits independently and
// row-level failures are logged and skipped.
func ResetPasswords(ctx context.Context, users *repositories.UserRepository, workers int, logger zerolog.Logger) (*PasswordResetSummary, error) {
	if os.Getenv(AllowPasswordResetEnv) != "true" {
		return nil, fmt.Errorf("bulk password reset requires %s=true", AllowPasswordResetEnv)
	}
	if workers < 1 {
		workers = DefaultResetWorkers
	}

	all, err := users.ListWithStudentIDs(ctx)
	if err != nil {
		return nil, err
	}

	summary := &PasswordResetSummary{Total: len(all)}
	var mu sync.Mutex

	work := make(chan models.User)
	g, gctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for user := range work {
				if user.StudentID == nil || *user.StudentID == "" {
					mu.Lock()
					summary.Skipped++
					mu.Unlock()
					continue
				}

				hash, err := auth.HashPassword(*user.StudentID + "@123")
				if err != nil {
					logger.Error().Err(err).Str("userId", user.ID.String()).Msg("Failed to hash password")
					mu.Lock()
					summary.Failed++
					mu.Unlock()
					continue
				}

				if err := users.UpdatePasswordHash(gctx, user.ID, hash); err != nil {
					logger.Error().Err(err).Str("userId", user.ID.String()).Msg("Failed to update password")
					mu.Lock()
					summary.Failed++
					mu.Unlock()
					continue
				}

				mu.Lock()
				summary.Updated++
				mu.Unlock()
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(work)
		for _, user := range all {
			select {
			case work <- user:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return summary, err
	}

	logger.Info().
		Int("total", summary.Total).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("Password reset finished")

	return summary, nil
}
