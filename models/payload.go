package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RawPayload is the untrusted analysis payload as produced by the upstream
// content generator. Any field may be absent, null, the wrong type, or use
// an alternate key spelling; the normalizer owns all coercion.
type RawPayload map[string]interface{}

// Value implements driver.Valuer so a RawPayload can be stored in a JSONB column
func (p RawPayload) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB columns
func (p *RawPayload) Scan(value interface{}) error {
	if value == nil {
		*p = make(RawPayload)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*p = make(RawPayload)
		return nil
	}

	if len(bytes) == 0 {
		*p = make(RawPayload)
		return nil
	}

	result := make(RawPayload)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*p = result
	return nil
}

// AnalysisRecord is a stored analysis: the raw payload that came in and the
// view model derived from it, keyed by game
type AnalysisRecord struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Sport     string     `json:"sport" db:"sport"`
	Matchup   string     `json:"matchup" db:"matchup"`
	Payload   RawPayload `json:"payload" db:"payload"`
	ViewModel *ViewModel `json:"view_model" db:"-"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
