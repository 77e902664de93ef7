//go:build integration

package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"crediris/internal/simulation/models"
	"crediris/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	_, err := s.pg.Pool.Exec(s.ctx, Schema)
	require.NoError(s.T(), err)
	s.store = NewPostgresStore(s.pg.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	require.NoError(s.T(), s.pg.TruncateAll(s.ctx))
}

func (s *PostgresStoreSuite) record(id, userID string, createdAt time.Time) models.SimulationRecord {
	return models.SimulationRecord{
		ID:                  id,
		UserID:              userID,
		PartnerSimulationID: "SIM-" + id,
		RequestPayload:      json.RawMessage(`{"Assures":[],"Prets":[]}`),
		ResponsePayload:     json.RawMessage(`{"SimulationId":"SIM-` + id + `"}`),
		MonthlyPremium:      38.20,
		TotalPremium:        9168.00,
		CreatedAt:           createdAt,
	}
}

func (s *PostgresStoreSuite) TestSaveAndFind() {
	id := "5f8b4a52-6f62-4a30-8f19-0d0d4a9a0001"
	rec := s.record(id, "user-1", time.Now().UTC().Truncate(time.Millisecond))
	s.Require().NoError(s.store.Save(s.ctx, rec))

	got, err := s.store.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(rec.PartnerSimulationID, got.PartnerSimulationID)
	s.Equal(rec.MonthlyPremium, got.MonthlyPremium)
	s.Equal(rec.TotalPremium, got.TotalPremium)
	s.JSONEq(string(rec.ResponsePayload), string(got.ResponsePayload))
}

func (s *PostgresStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(s.ctx, "5f8b4a52-6f62-4a30-8f19-0d0d4a9a0099")
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpsertOnConflict() {
	id := "5f8b4a52-6f62-4a30-8f19-0d0d4a9a0002"
	rec := s.record(id, "user-1", time.Now().UTC())
	s.Require().NoError(s.store.Save(s.ctx, rec))

	rec.MonthlyPremium = 44.10
	s.Require().NoError(s.store.Save(s.ctx, rec))

	got, err := s.store.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(44.10, got.MonthlyPremium)
}

func (s *PostgresStoreSuite) TestListByUserNewestFirst() {
	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	old := s.record("5f8b4a52-6f62-4a30-8f19-0d0d4a9a0003", "user-1", base)
	recent := s.record("5f8b4a52-6f62-4a30-8f19-0d0d4a9a0004", "user-1", base.Add(time.Hour))
	other := s.record("5f8b4a52-6f62-4a30-8f19-0d0d4a9a0005", "user-2", base)
	s.Require().NoError(s.store.Save(s.ctx, old))
	s.Require().NoError(s.store.Save(s.ctx, recent))
	s.Require().NoError(s.store.Save(s.ctx, other))

	records, err := s.store.ListByUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(recent.ID, records[0].ID)
	s.Equal(old.ID, records[1].ID)
}

func (s *PostgresStoreSuite) TestPing() {
	s.Require().NoError(s.store.Ping(s.ctx))
}
