// Package store persists priced simulation summaries. Implementations are
// interface-driven so the orchestrator can run against memory in tests and
// PostgreSQL in production without rewiring.
package store

import (
	"context"
	"errors"

	"crediris/internal/simulation/models"
)

// ErrNotFound keeps store-level 404s consistent across implementations.
var ErrNotFound = errors.New("simulation record not found")

// Store is the persistence port for simulation records. Save upserts on the
// record id; reads exist for the saved-simulations page.
type Store interface {
	Save(ctx context.Context, record models.SimulationRecord) error
	FindByID(ctx context.Context, id string) (models.SimulationRecord, error)
	ListByUser(ctx context.Context, userID string) ([]models.SimulationRecord, error)
}
