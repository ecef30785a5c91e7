package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pregame/app"
	"pregame/internal/config"
	"pregame/internal/errors"
	"pregame/models"
	"pregame/ports"
)

// memoryRepository is an in-memory repository for handler tests
type memoryRepository struct {
	records map[uuid.UUID]*models.AnalysisRecord
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{records: make(map[uuid.UUID]*models.AnalysisRecord)}
}

func (r *memoryRepository) Create(_ context.Context, record *models.AnalysisRecord) error {
	r.records[record.ID] = record
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, errors.NotFound("analysis not found")
	}
	return record, nil
}

func (r *memoryRepository) List(_ context.Context, filters ports.AnalysisFilters) ([]*models.AnalysisRecord, error) {
	out := []*models.AnalysisRecord{}
	for _, record := range r.records {
		if filters.Sport != "" && record.Sport != filters.Sport {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return errors.NotFound("analysis not found")
	}
	delete(r.records, id)
	return nil
}

func testServer(repo ports.AnalysisRepositoryPort) *Server {
	service := app.NewAnalysisService(repo, nil)
	return NewServer(service, config.ServerConfig{Port: "0", GinMode: "test"})
}

func TestPreviewEndpoint(t *testing.T) {
	server := testServer(newMemoryRepository())

	body, _ := json.Marshal(map[string]interface{}{
		"sport": "nba",
		"payload": map[string]interface{}{
			"matchup":         "Celtics @ Knicks",
			"opening_summary": "Boston has the edge on both ends.",
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyses/preview", bytes.NewReader(body))
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ViewModel models.ViewModel `json:"view_model"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Celtics @ Knicks", resp.ViewModel.Header.Title)
	assert.NotEmpty(t, resp.ViewModel.QuickTake.Recommendation)
}

func TestPreviewRejectsMissingPayload(t *testing.T) {
	server := testServer(newMemoryRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyses/preview", strings.NewReader(`{"sport":"nba"}`))
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateThenGetAndDelete(t *testing.T) {
	repo := newMemoryRepository()
	server := testServer(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"sport": "nhl",
		"payload": map[string]interface{}{
			"matchup": "Bruins @ Rangers",
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyses", bytes.NewReader(body))
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.AnalysisRecord
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "nhl", created.Sport)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/analyses/"+created.ID.String(), nil)
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/analyses/"+created.ID.String(), nil)
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/analyses/"+created.ID.String(), nil)
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetInvalidID(t *testing.T) {
	server := testServer(newMemoryRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analyses/not-a-uuid", nil)
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummaryEndpointRendersHTML(t *testing.T) {
	repo := newMemoryRepository()
	server := testServer(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"sport": "nba",
		"payload": map[string]interface{}{
			"matchup": "Lakers vs Warriors",
		},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyses", bytes.NewReader(body))
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.AnalysisRecord
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/analyses/"+created.ID.String()+"/summary", nil)
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Lakers vs Warriors")
	assert.Contains(t, w.Body.String(), "Quick Take")
}
