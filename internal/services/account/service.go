package account

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mindgrid/mindgrid-server/internal/dependencies/clock"
	"github.com/mindgrid/mindgrid-server/internal/model"
	"github.com/mindgrid/mindgrid-server/internal/storage"
)

// maxUsernameLength bounds the display handle
const maxUsernameLength = 15

// Service handles account registration and profile reads
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new account service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Register validates the requested handle and contact address, then
// atomically creates the account and its handle reservation. The
// uniqueness check and every write happen in one storage transaction:
// either both the account and the reservation become visible, or
// neither does.
func (s *Service) Register(ctx context.Context, uid model.AccountID, username, email string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.ErrUsernameMissing
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return model.ErrUsernameTooLong
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return model.ErrEmailMissing
	}

	account := model.NewAccount(uid, username, email, s.clock.Now())

	if err := s.storage.CreateAccount(ctx, account); err != nil {
		return err
	}

	s.logger.Info("account created",
		slog.String("uid", string(uid)),
		slog.String("username", username),
	)

	return nil
}

// Get retrieves an account by its subject identifier
func (s *Service) Get(ctx context.Context, uid model.AccountID) (*model.Account, error) {
	return s.storage.GetAccount(ctx, uid)
}
