package ports

import (
	"context"

	"github.com/google/uuid"

	"pregame/models"
)

// AnalysisRepositoryPort provides CRUD access to stored analyses. The
// pipeline itself never touches storage; this port exists for the thin
// service layer around it.
type AnalysisRepositoryPort interface {
	Create(ctx context.Context, record *models.AnalysisRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error)
	List(ctx context.Context, filters AnalysisFilters) ([]*models.AnalysisRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AnalysisFilters narrows List queries
type AnalysisFilters struct {
	Sport  string
	Limit  int
	Offset int
}

// PayloadGeneratorPort produces a raw analysis payload for a matchup. The
// production adapter asks an LLM; tests substitute a canned payload.
type PayloadGeneratorPort interface {
	GeneratePayload(ctx context.Context, sport, matchup string) (models.RawPayload, error)
}
