// Package app wires the pure pipeline to storage and payload generation.
// Everything interesting happens in domain/analysis; this layer is thin
// CRUD orchestration.
package app

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"pregame/domain/analysis"
	"pregame/internal/errors"
	"pregame/models"
	"pregame/ports"
)

// AnalysisService creates, stores, and serves game analyses
type AnalysisService struct {
	repo      ports.AnalysisRepositoryPort
	generator ports.PayloadGeneratorPort
}

// NewAnalysisService creates the service. The generator may be nil when the
// deployment only accepts caller-supplied payloads.
func NewAnalysisService(repo ports.AnalysisRepositoryPort, generator ports.PayloadGeneratorPort) *AnalysisService {
	return &AnalysisService{repo: repo, generator: generator}
}

// Preview runs the pipeline without persisting anything. Pure passthrough
// to the builder; it cannot fail.
func (s *AnalysisService) Preview(payload models.RawPayload, sport string) *models.ViewModel {
	return analysis.BuildViewModel(payload, sport)
}

// CreateRequest is the input to Create. When Payload is nil the upstream
// generator is asked for one using Sport and Matchup.
type CreateRequest struct {
	Sport   string
	Matchup string
	Payload models.RawPayload
}

// Create builds a view model from the request payload (generating one if
// absent) and stores the pair
func (s *AnalysisService) Create(ctx context.Context, req CreateRequest) (*models.AnalysisRecord, error) {
	payload := req.Payload
	if payload == nil {
		if s.generator == nil {
			return nil, errors.New(errors.CodeBadPayload, "no payload supplied and no generator configured")
		}
		generated, err := s.generator.GeneratePayload(ctx, req.Sport, req.Matchup)
		if err != nil {
			return nil, errors.Wrap(err, "payload generation failed")
		}
		payload = generated
	}

	viewModel := analysis.BuildViewModel(payload, req.Sport)

	now := time.Now().UTC()
	record := &models.AnalysisRecord{
		ID:        uuid.New(),
		Sport:     strings.ToLower(strings.TrimSpace(req.Sport)),
		Matchup:   viewModel.Header.Title,
		Payload:   payload,
		ViewModel: viewModel,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to store analysis")
	}

	log.Printf("[AnalysisService] Stored analysis %s (%s, %s)", record.ID, record.Sport, record.Matchup)
	return record, nil
}

// Get fetches one stored analysis
func (s *AnalysisService) Get(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// List fetches stored analyses, newest first
func (s *AnalysisService) List(ctx context.Context, filters ports.AnalysisFilters) ([]*models.AnalysisRecord, error) {
	filters.Sport = strings.ToLower(strings.TrimSpace(filters.Sport))
	return s.repo.List(ctx, filters)
}

// Delete removes a stored analysis
func (s *AnalysisService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
