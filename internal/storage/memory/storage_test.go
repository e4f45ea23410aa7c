package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mindgrid/mindgrid-server/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newAccount(uid model.AccountID, username string) *model.Account {
	return model.NewAccount(uid, username, "player@example.com", time.Now())
}

func (s *StorageSuite) TestCreateAndGetAccount() {
	account := s.newAccount("uid-1", "Alice")

	err := s.storage.CreateAccount(s.ctx, account)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccount(s.ctx, "uid-1")
	s.Require().NoError(err)
	s.Equal(account.UID, retrieved.UID)
	s.Equal("Alice", retrieved.Username)
	s.Equal(0, retrieved.IQ)
	s.NotNil(retrieved.Private)
	s.Equal("player@example.com", retrieved.Private.Email)
}

func (s *StorageSuite) TestCreateAccountReservesHandle() {
	err := s.storage.CreateAccount(s.ctx, s.newAccount("uid-1", "Alice"))
	s.Require().NoError(err)

	reservation, err := s.storage.GetHandleReservation(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.AccountID("uid-1"), reservation.UID)
	s.Equal("Alice", reservation.Username)
}

func (s *StorageSuite) TestCreateAccountHandleTaken() {
	err := s.storage.CreateAccount(s.ctx, s.newAccount("uid-1", "Alice"))
	s.Require().NoError(err)

	// Same handle modulo case
	err = s.storage.CreateAccount(s.ctx, s.newAccount("uid-2", "ALICE"))
	s.ErrorIs(err, model.ErrHandleTaken)

	// Losing registration must leave nothing behind
	_, err = s.storage.GetAccount(s.ctx, "uid-2")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestConcurrentCreateSameHandle() {
	const attempts = 16

	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			uid := model.AccountID(string(rune('a' + i)))
			results[i] = s.storage.CreateAccount(s.ctx, s.newAccount(uid, "Contested"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			s.ErrorIs(err, model.ErrHandleTaken)
		}
	}
	s.Equal(1, succeeded)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestGetHandleReservationNotFound() {
	_, err := s.storage.GetHandleReservation(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrHandleNotFound)
}

func (s *StorageSuite) TestUpdateAccount() {
	s.Require().NoError(s.storage.CreateAccount(s.ctx, s.newAccount("uid-1", "Alice")))

	updated, err := s.storage.UpdateAccount(s.ctx, "uid-1", func(a *model.Account) error {
		a.Coins += 30
		return nil
	})
	s.Require().NoError(err)
	s.Equal(30, updated.Coins)

	retrieved, err := s.storage.GetAccount(s.ctx, "uid-1")
	s.Require().NoError(err)
	s.Equal(30, retrieved.Coins)
}

func (s *StorageSuite) TestUpdateAccountMutateErrorAborts() {
	s.Require().NoError(s.storage.CreateAccount(s.ctx, s.newAccount("uid-1", "Alice")))

	sentinel := errors.New("nope")
	_, err := s.storage.UpdateAccount(s.ctx, "uid-1", func(a *model.Account) error {
		a.Coins = 9999
		return sentinel
	})
	s.ErrorIs(err, sentinel)

	retrieved, err := s.storage.GetAccount(s.ctx, "uid-1")
	s.Require().NoError(err)
	s.Equal(0, retrieved.Coins)
}

func (s *StorageSuite) TestUpdateAccountNotFound() {
	_, err := s.storage.UpdateAccount(s.ctx, "nonexistent", func(a *model.Account) error {
		return nil
	})
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestReturnedAccountIsIsolated() {
	s.Require().NoError(s.storage.CreateAccount(s.ctx, s.newAccount("uid-1", "Alice")))

	first, err := s.storage.GetAccount(s.ctx, "uid-1")
	s.Require().NoError(err)
	first.Coins = 500

	second, err := s.storage.GetAccount(s.ctx, "uid-1")
	s.Require().NoError(err)
	s.Equal(0, second.Coins)
}

func (s *StorageSuite) TestListAccountIDs() {
	s.Require().NoError(s.storage.CreateAccount(s.ctx, s.newAccount("uid-1", "Alice")))
	s.Require().NoError(s.storage.CreateAccount(s.ctx, s.newAccount("uid-2", "Bob")))

	ids, err := s.storage.ListAccountIDs(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]model.AccountID{"uid-1", "uid-2"}, ids)
}
