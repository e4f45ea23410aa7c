package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mindgrid/mindgrid-server/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newAccount(uid model.AccountID, username string) *model.Account {
	return model.NewAccount(uid, username, "player@example.com", time.Now().UTC())
}

func (s *StorageSuite) TestCreateAndGetAccount() {
	account := s.newAccount("uid-1", "Alice")

	err := s.storage.CreateAccount(s.ctx, account)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccount(s.ctx, "uid-1")
	s.Require().NoError(err)
	s.Equal(model.AccountID("uid-1"), retrieved.UID)
	s.Equal("Alice", retrieved.Username)
	s.Equal("Bronze", retrieved.League)
	s.True(retrieved.Achievements.Placeholder)
	s.Nil(retrieved.CurrentGame)
}

func (s *StorageSuite) TestCreateAccountWritesReservation() {
	s.Require().NoError(s.storage.CreateAccount(s.ctx, s.newAccount("uid-1", "Alice")))

	reservation, err := s.storage.GetHandleReservation(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.AccountID("uid-1"), reservation.UID)
	s.Equal("Alice", reservation.Username)
}

func (s *StorageSuite) TestCreateAccountHandleTaken() {
	s.Require().NoError(s.storage.CreateAccount(s.ctx, s.newAccount("uid-1", "Alice")))

	err := s.storage.CreateAccount(s.ctx, s.newAccount("uid-2", "alice"))
	s.ErrorIs(err, model.ErrHandleTaken)

	// No partial write from the losing attempt
	_, err = s.storage.GetAccount(s.ctx, "uid-2")
	s.ErrorIs(err, model.ErrAccountNotFound)
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
		a.Coins += 60
		a.IQ = 15
		return nil
	})
	s.Require().NoError(err)
	s.Equal(60, updated.Coins)
	s.Equal(15, updated.IQ)

	retrieved, err := s.storage.GetAccount(s.ctx, "uid-1")
	s.Require().NoError(err)
	s.Equal(60, retrieved.Coins)
	s.Equal(15, retrieved.IQ)
}

func (s *StorageSuite) TestUpdateAccountMutateErrorAborts() {
	s.Require().NoError(s.storage.CreateAccount(s.ctx, s.newAccount("uid-1", "Alice")))

	sentinel := errors.New("abort")
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

func (s *StorageSuite) TestUpdateAccountPreservesSession() {
	account := s.newAccount("uid-1", "Alice")
	cfg, _ := model.DifficultyExpert.Config()
	account.CurrentGame = model.NewGameSession(model.DifficultyExpert, cfg, time.Now().UTC())
	s.Require().NoError(s.storage.CreateAccount(s.ctx, account))

	updated, err := s.storage.UpdateAccount(s.ctx, "uid-1", func(a *model.Account) error {
		a.Trophies++
		return nil
	})
	s.Require().NoError(err)

	s.Require().NotNil(updated.CurrentGame)
	s.Equal(model.DifficultyExpert, updated.CurrentGame.Difficulty)
	s.Equal(25, updated.CurrentGame.RequiredMoves)
	s.Require().NotNil(updated.CurrentGame.SkipsUsed)
	s.Equal(0, *updated.CurrentGame.SkipsUsed)
}

func (s *StorageSuite) TestListAccountIDs() {
	s.Require().NoError(s.storage.CreateAccount(s.ctx, s.newAccount("uid-1", "Alice")))
	s.Require().NoError(s.storage.CreateAccount(s.ctx, s.newAccount("uid-2", "Bob")))

	ids, err := s.storage.ListAccountIDs(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]model.AccountID{"uid-1", "uid-2"}, ids)
}
