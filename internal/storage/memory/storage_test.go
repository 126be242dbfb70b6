package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/padelmixer/padelmixer-admin/internal/dependencies/mocks"
	"github.com/padelmixer/padelmixer-admin/internal/model"
)

type StorageSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.storage = NewSeeded(s.clock, s.random, 0, 0)
	s.ctx = context.Background()
}

func zoeForm() model.PlayerForm {
	return model.PlayerForm{
		FirstName:  "Zoe",
		LastName:   "Ruiz",
		Email:      "zoe@example.com",
		BirthDate:  model.NewDate(1999, time.January, 2),
		SkillLevel: model.SkillIntermediate,
	}
}

// Fetch tests

func (s *StorageSuite) TestFetchAllReturnsSeedInOrder() {
	players, err := s.storage.FetchAll(s.ctx)
	s.Require().NoError(err)

	s.Len(players, 15)
	for i, p := range players {
		s.Equal(model.PlayerID(i+1), p.ID)
	}
	s.Equal("Carlos", players[0].FirstName)
	s.False(players[10].Active)
}

func (s *StorageSuite) TestFetchAllReturnsCopy() {
	players, err := s.storage.FetchAll(s.ctx)
	s.Require().NoError(err)
	players[0].FirstName = "Changed"

	again, err := s.storage.FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Equal("Carlos", again[0].FirstName)
}

func (s *StorageSuite) TestFetchOne() {
	player, err := s.storage.FetchOne(s.ctx, 3)
	s.Require().NoError(err)
	s.Equal("Juan", player.FirstName)
	s.Equal(model.SkillProfessional, player.SkillLevel)

	_, err = s.storage.FetchOne(s.ctx, 99)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Create tests

func (s *StorageSuite) TestCreateAssignsNextID() {
	player, err := s.storage.Create(s.ctx, zoeForm())
	s.Require().NoError(err)

	s.Equal(model.PlayerID(16), player.ID)
	s.True(player.Active)
	s.Equal(s.clock.Now(), player.RegisteredAt)

	players, _ := s.storage.FetchAll(s.ctx)
	s.Len(players, 16)
}

func (s *StorageSuite) TestCreateOnEmptyDirectoryStartsAtOne() {
	empty := New(s.clock, s.random, Config{})

	player, err := empty.Create(s.ctx, zoeForm())
	s.Require().NoError(err)
	s.Equal(model.PlayerID(1), player.ID)
}

func (s *StorageSuite) TestCreateUsesMaxIDNotCount() {
	s.Require().NoError(s.storage.Delete(s.ctx, 2))

	player, err := s.storage.Create(s.ctx, zoeForm())
	s.Require().NoError(err)
	s.Equal(model.PlayerID(16), player.ID)
}

func (s *StorageSuite) TestCreateRejectsInvalidForm() {
	form := zoeForm()
	form.SkillLevel = "EXPERT"

	_, err := s.storage.Create(s.ctx, form)
	s.ErrorIs(err, model.ErrInvalidPlayer)
}

// Update tests

func (s *StorageSuite) TestUpdateMergesPatch() {
	notes := "Vuelve en septiembre"
	player, err := s.storage.Update(s.ctx, 2, model.PlayerPatch{Notes: &notes})
	s.Require().NoError(err)

	s.Equal(notes, player.Notes)
	s.Equal("María", player.FirstName)

	stored, _ := s.storage.FetchOne(s.ctx, 2)
	s.Equal(*player, *stored)
}

func (s *StorageSuite) TestUpdateEmptyPatchIsIdentity() {
	before, _ := s.storage.FetchOne(s.ctx, 4)

	after, err := s.storage.Update(s.ctx, 4, model.PlayerPatch{})
	s.Require().NoError(err)
	s.Equal(*before, *after)
}

func (s *StorageSuite) TestUpdateMissingPlayer() {
	_, err := s.storage.Update(s.ctx, 99, model.PlayerPatch{})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Delete tests

func (s *StorageSuite) TestDeleteRemovesPlayer() {
	s.Require().NoError(s.storage.Delete(s.ctx, 2))

	_, err := s.storage.FetchOne(s.ctx, 2)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeleteMissingPlayer() {
	s.ErrorIs(s.storage.Delete(s.ctx, 99), model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeleteBlockedByDependencies() {
	err := s.storage.Delete(s.ctx, 1)

	var restriction *model.DeleteRestrictionError
	s.Require().True(errors.As(err, &restriction))
	s.Equal(model.RestrictionHasMatches, restriction.Code)
	s.Equal(4, restriction.Count())

	_, err = s.storage.FetchOne(s.ctx, 1)
	s.NoError(err)
}

func (s *StorageSuite) TestDeleteWithExternalLookup() {
	lookup := New(s.clock, s.random, Config{})
	lookup.SetDependencies(3, model.Dependencies{Reservations: 2})
	store := New(s.clock, s.random, Config{Players: s.seedOnly(), Lookup: lookup})

	err := store.Delete(s.ctx, 3)
	var restriction *model.DeleteRestrictionError
	s.Require().True(errors.As(err, &restriction))
	s.Equal(model.RestrictionHasReservations, restriction.Code)

	s.ErrorIs(store.Delete(s.ctx, 99), model.ErrPlayerNotFound)
	s.NoError(store.Delete(s.ctx, 1))
}

func (s *StorageSuite) seedOnly() []model.Player {
	players, err := s.storage.FetchAll(s.ctx)
	s.Require().NoError(err)
	return players
}

// Latency tests

func (s *StorageSuite) TestLatencyWithJitter() {
	s.random.QueueIntn(40)
	store := NewSeeded(s.clock, s.random, DefaultLatency, 100*time.Millisecond)

	_, err := store.FetchAll(s.ctx)
	s.Require().NoError(err)

	s.Equal([]time.Duration{340 * time.Millisecond}, s.clock.Sleeps())
}

func (s *StorageSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.storage.FetchAll(ctx)
	s.ErrorIs(err, context.Canceled)
}
