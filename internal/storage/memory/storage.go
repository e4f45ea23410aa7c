package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mindgrid/mindgrid-server/internal/model"
	"github.com/mindgrid/mindgrid-server/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// The mutex serializes every operation, which trivially gives the same
// atomicity guarantees the Redis implementation gets from WATCH.
type Storage struct {
	mu sync.RWMutex

	accounts map[model.AccountID]*model.Account
	handles  map[string]*model.HandleReservation
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts: make(map[model.AccountID]*model.Account),
		handles:  make(map[string]*model.HandleReservation),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	handle := model.NormalizeHandle(account.Username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.handles[handle]; taken {
		return model.ErrHandleTaken
	}

	stored, err := cloneAccount(account)
	if err != nil {
		return err
	}

	s.accounts[account.UID] = stored
	s.handles[handle] = &model.HandleReservation{
		UID:        account.UID,
		Username:   account.Username,
		ReservedAt: account.CreatedAt,
	}
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, uid model.AccountID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[uid]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return cloneAccount(account)
}

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	stored, err := cloneAccount(account)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.UID] = stored
	return nil
}

func (s *Storage) UpdateAccount(ctx context.Context, uid model.AccountID, mutate func(*model.Account) error) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[uid]
	if !ok {
		return nil, model.ErrAccountNotFound
	}

	// Mutate a copy so a failed mutation leaves the stored document
	// untouched
	updated, err := cloneAccount(account)
	if err != nil {
		return nil, err
	}
	if err := mutate(updated); err != nil {
		return nil, err
	}

	s.accounts[uid] = updated
	return cloneAccount(updated)
}

func (s *Storage) ListAccountIDs(ctx context.Context) ([]model.AccountID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]model.AccountID, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Storage) GetHandleReservation(ctx context.Context, handle string) (*model.HandleReservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reservation, ok := s.handles[handle]
	if !ok {
		return nil, model.ErrHandleNotFound
	}

	copied := *reservation
	return &copied, nil
}

// cloneAccount deep-copies an account document through its JSON form,
// matching what a round trip through the real store would produce
func cloneAccount(account *model.Account) (*model.Account, error) {
	data, err := json.Marshal(account)
	if err != nil {
		return nil, err
	}

	var copied model.Account
	if err := json.Unmarshal(data, &copied); err != nil {
		return nil, err
	}
	return &copied, nil
}
