package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crediris/internal/simulation/models"
)

// PostgresStore persists simulation records in PostgreSQL. Payloads go into
// JSONB columns so downstream consumers can query partner fields this core
// does not interpret.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Schema is the DDL for the simulations table; applied by migrations, kept
// here as the single source of truth for the column set.
const Schema = `
CREATE TABLE IF NOT EXISTS loan_simulations (
    id                    UUID PRIMARY KEY,
    user_id               TEXT NOT NULL DEFAULT '',
    partner_simulation_id TEXT NOT NULL,
    request_payload       JSONB NOT NULL,
    response_payload      JSONB NOT NULL,
    monthly_premium       NUMERIC(12,2) NOT NULL,
    total_premium         NUMERIC(14,2) NOT NULL,
    created_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS loan_simulations_user_idx ON loan_simulations (user_id, created_at DESC);
`

// Ping verifies database connectivity for health reporting.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Save(ctx context.Context, record models.SimulationRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO loan_simulations
			(id, user_id, partner_simulation_id, request_payload, response_payload,
			 monthly_premium, total_premium, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			partner_simulation_id = EXCLUDED.partner_simulation_id,
			request_payload       = EXCLUDED.request_payload,
			response_payload      = EXCLUDED.response_payload,
			monthly_premium       = EXCLUDED.monthly_premium,
			total_premium         = EXCLUDED.total_premium`,
		record.ID, record.UserID, record.PartnerSimulationID,
		record.RequestPayload, record.ResponsePayload,
		record.MonthlyPremium, record.TotalPremium, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save simulation record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (models.SimulationRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, user_id, partner_simulation_id, request_payload, response_payload,
		       monthly_premium, total_premium, created_at
		FROM loan_simulations WHERE id = $1`, id)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SimulationRecord{}, ErrNotFound
		}
		return models.SimulationRecord{}, fmt.Errorf("find simulation record: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]models.SimulationRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, partner_simulation_id, request_payload, response_payload,
		       monthly_premium, total_premium, created_at
		FROM loan_simulations
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list simulation records: %w", err)
	}
	defer rows.Close()

	var out []models.SimulationRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan simulation record: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list simulation records: %w", err)
	}
	return out, nil
}

func scanRecord(row pgx.Row) (models.SimulationRecord, error) {
	var record models.SimulationRecord
	err := row.Scan(
		&record.ID, &record.UserID, &record.PartnerSimulationID,
		&record.RequestPayload, &record.ResponsePayload,
		&record.MonthlyPremium, &record.TotalPremium, &record.CreatedAt,
	)
	return record, err
}
