package admin

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mindgrid/mindgrid-server/internal/model"
	"github.com/mindgrid/mindgrid-server/internal/storage"
)

// resetBatchSize bounds how many accounts are updated per flush, kept
// well under the store's per-transaction write-count limit
const resetBatchSize = 450

// Service implements privileged bulk maintenance operations. Privilege
// checks happen at the API layer; the service assumes an authorized
// caller.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new admin service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// ResetLegalFlags clears the privacy and terms consent flags on every
// account, in bounded batches, and returns how many accounts were
// updated. Accounts deleted mid-iteration are skipped.
func (s *Service) ResetLegalFlags(ctx context.Context) (int, error) {
	ids, err := s.storage.ListAccountIDs(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.Info("resetting legal flags", slog.Int("accounts", len(ids)))

	updated := 0
	for start := 0; start < len(ids); start += resetBatchSize {
		end := min(start+resetBatchSize, len(ids))

		batchUpdated := 0
		for _, id := range ids[start:end] {
			_, err := s.storage.UpdateAccount(ctx, id, func(a *model.Account) error {
				a.AcceptedPrivacy = false
				a.AcceptedTerms = false
				return nil
			})
			if errors.Is(err, model.ErrAccountNotFound) {
				continue
			}
			if err != nil {
				return updated, err
			}
			batchUpdated++
		}

		updated += batchUpdated
		s.logger.Info("legal flag batch committed", slog.Int("batch_size", batchUpdated))
	}

	s.logger.Info("legal flags reset", slog.Int("updated", updated))
	return updated, nil
}
