package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mindgrid/mindgrid-server/internal/dependencies/mocks"
	"github.com/mindgrid/mindgrid-server/internal/model"
	"github.com/mindgrid/mindgrid-server/internal/storage/memory"
	"github.com/mindgrid/mindgrid-server/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestRegister() {
	err := s.service.Register(s.ctx, "uid-1", "Alice", "alice@example.com")
	s.Require().NoError(err)

	account, err := s.storage.GetAccount(s.ctx, "uid-1")
	s.Require().NoError(err)
	s.Equal("Alice", account.Username)
	s.Equal(0, account.IQ)
	s.Equal(0, account.Coins)
	s.Equal("Bronze", account.League)
	s.Equal("defaultBrain", account.Avatar)
	s.Equal("english", account.Language)
	s.False(account.AcceptedPrivacy)
	s.False(account.AcceptedTerms)
	s.Equal(s.clock.CurrentTime, account.CreatedAt)
	s.Nil(account.CurrentGame)

	s.Require().NotNil(account.Private)
	s.Equal("alice@example.com", account.Private.Email)
	s.True(account.Achievements.Placeholder)
	s.True(account.LevelProgress.Placeholder)
	s.True(account.InGameMaterials.Placeholder)

	reservation, err := s.storage.GetHandleReservation(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.AccountID("uid-1"), reservation.UID)
	s.Equal("Alice", reservation.Username)
	s.Equal(s.clock.CurrentTime, reservation.ReservedAt)
}

func (s *ServiceSuite) TestRegisterTrimsInput() {
	err := s.service.Register(s.ctx, "uid-1", "  Alice  ", "  alice@example.com ")
	s.Require().NoError(err)

	account, err := s.storage.GetAccount(s.ctx, "uid-1")
	s.Require().NoError(err)
	s.Equal("Alice", account.Username)
	s.Equal("alice@example.com", account.Private.Email)
}

func (s *ServiceSuite) TestRegisterUsernameMissing() {
	err := s.service.Register(s.ctx, "uid-1", "   ", "alice@example.com")
	s.ErrorIs(err, model.ErrUsernameMissing)
}

func (s *ServiceSuite) TestRegisterUsernameTooLong() {
	err := s.service.Register(s.ctx, "uid-1", "abcdefghijklmnop", "alice@example.com")
	s.ErrorIs(err, model.ErrUsernameTooLong)

	// Fifteen characters is the limit, inclusive
	err = s.service.Register(s.ctx, "uid-1", "abcdefghijklmno", "alice@example.com")
	s.NoError(err)
}

func (s *ServiceSuite) TestRegisterEmailMissing() {
	err := s.service.Register(s.ctx, "uid-1", "Alice", " ")
	s.ErrorIs(err, model.ErrEmailMissing)
}

func (s *ServiceSuite) TestRegisterHandleTaken() {
	s.Require().NoError(s.service.Register(s.ctx, "uid-1", "Alice", "alice@example.com"))

	err := s.service.Register(s.ctx, "uid-2", "aLiCe", "other@example.com")
	s.ErrorIs(err, model.ErrHandleTaken)

	// The losing registration must not create an account
	_, err = s.storage.GetAccount(s.ctx, "uid-2")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *ServiceSuite) TestGet() {
	s.Require().NoError(s.service.Register(s.ctx, "uid-1", "Alice", "alice@example.com"))

	account, err := s.service.Get(s.ctx, "uid-1")
	s.Require().NoError(err)
	s.Equal(model.AccountID("uid-1"), account.UID)

	_, err = s.service.Get(s.ctx, "uid-2")
	s.ErrorIs(err, model.ErrAccountNotFound)
}
