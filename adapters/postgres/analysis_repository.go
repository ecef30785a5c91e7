// Package postgres implements the storage ports on PostgreSQL via sqlx.
// The analyses table keeps both the raw payload and the derived view model
// as JSONB so a stored analysis can be re-rendered or re-derived later.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pregame/internal/errors"
	"pregame/models"
	"pregame/ports"
)

// AnalysisRepository stores analysis records in PostgreSQL
type AnalysisRepository struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a repository over an open connection
func NewAnalysisRepository(db *sqlx.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Schema is the DDL for the analyses table, applied by the migration step
// in main
const Schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id UUID PRIMARY KEY,
	sport TEXT NOT NULL,
	matchup TEXT NOT NULL,
	payload JSONB NOT NULL,
	view_model JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_analyses_sport ON analyses (sport, created_at DESC);
`

// analysisRow is the row shape; the view model round-trips through JSONB
type analysisRow struct {
	ID        uuid.UUID         `db:"id"`
	Sport     string            `db:"sport"`
	Matchup   string            `db:"matchup"`
	Payload   models.RawPayload `db:"payload"`
	ViewModel []byte            `db:"view_model"`
	CreatedAt time.Time         `db:"created_at"`
	UpdatedAt time.Time         `db:"updated_at"`
}

func (r analysisRow) toRecord() (*models.AnalysisRecord, error) {
	record := &models.AnalysisRecord{
		ID:        r.ID,
		Sport:     r.Sport,
		Matchup:   r.Matchup,
		Payload:   r.Payload,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if len(r.ViewModel) > 0 {
		var vm models.ViewModel
		if err := json.Unmarshal(r.ViewModel, &vm); err != nil {
			return nil, errors.Wrap(err, "failed to decode stored view model")
		}
		record.ViewModel = &vm
	}
	return record, nil
}

// Create inserts a new analysis record
func (r *AnalysisRepository) Create(ctx context.Context, record *models.AnalysisRecord) error {
	viewModel, err := json.Marshal(record.ViewModel)
	if err != nil {
		return errors.Wrap(err, "failed to encode view model")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO analyses (id, sport, matchup, payload, view_model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.ID, record.Sport, record.Matchup, record.Payload, viewModel,
		record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to insert analysis")
	}
	return nil
}

// GetByID fetches one analysis record
func (r *AnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	var row analysisRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, sport, matchup, payload, view_model, created_at, updated_at
		FROM analyses WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("analysis not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch analysis")
	}
	return row.toRecord()
}

// List fetches analyses newest-first, optionally filtered by sport
func (r *AnalysisRepository) List(ctx context.Context, filters ports.AnalysisFilters) ([]*models.AnalysisRecord, error) {
	limit := filters.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `
		SELECT id, sport, matchup, payload, view_model, created_at, updated_at
		FROM analyses`
	args := []interface{}{}
	if filters.Sport != "" {
		query += ` WHERE sport = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, filters.Sport, limit, filters.Offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, filters.Offset)
	}

	var rows []analysisRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to list analyses")
	}

	records := make([]*models.AnalysisRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Delete removes an analysis record
func (r *AnalysisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete analysis")
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return errors.NotFound("analysis not found")
	}
	return nil
}
