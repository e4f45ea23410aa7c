package storage

import (
	"context"

	"github.com/mindgrid/mindgrid-server/internal/model"
)

// Storage defines the interface for data persistence.
//
// The two transactional operations carry the system's correctness
// guarantees: CreateAccount must atomically check-and-reserve the
// handle, and UpdateAccount must apply its mutation as a single
// conditional read-modify-write so concurrent updates to the same
// account never interleave.
type Storage interface {
	// CreateAccount atomically writes the account and a handle
	// reservation for its normalized username. Returns
	// model.ErrHandleTaken if the handle is already reserved; in that
	// case nothing is written.
	CreateAccount(ctx context.Context, account *model.Account) error

	// GetAccount returns the account document, or
	// model.ErrAccountNotFound
	GetAccount(ctx context.Context, uid model.AccountID) (*model.Account, error)

	// SaveAccount unconditionally overwrites the account document
	SaveAccount(ctx context.Context, account *model.Account) error

	// UpdateAccount reads the account, applies mutate, and writes the
	// result back, all under optimistic concurrency: if the stored
	// document changes between read and write the whole operation is
	// retried against fresh state. An error from mutate aborts without
	// writing and is returned verbatim. On success the updated account
	// is returned.
	UpdateAccount(ctx context.Context, uid model.AccountID, mutate func(*model.Account) error) (*model.Account, error)

	// ListAccountIDs returns the IDs of all stored accounts
	ListAccountIDs(ctx context.Context) ([]model.AccountID, error)

	// GetHandleReservation returns the reservation for a normalized
	// handle, or model.ErrHandleNotFound
	GetHandleReservation(ctx context.Context, handle string) (*model.HandleReservation, error)
}
