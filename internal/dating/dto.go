// internal/dating/dto.go
package dating

import (
	"encoding/json"
	"time"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/compatibility"
)

// DTOs for API requests/responses

// ProfilePayload is an inline profile for ad-hoc scoring. Qualities and
// requirements may be JSON objects or JSON strings holding serialized JSON.
type ProfilePayload struct {
	Height       *float64        `json:"height,omitempty" validate:"omitempty,gt=0,lte=300"`
	DateOfBirth  string          `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Qualities    json.RawMessage `json:"qualities,omitempty"`
	Requirements json.RawMessage `json:"requirements,omitempty"`
}

// Raw converts the payload into the scorer's input shape. DateOfBirth is
// expected to have passed validation already; an unparseable one is dropped.
func (p *ProfilePayload) Raw() compatibility.RawProfile {
	raw := compatibility.RawProfile{
		Height:       p.Height,
		Qualities:    p.Qualities,
		Requirements: p.Requirements,
	}
	if p.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", p.DateOfBirth); err == nil {
			raw.DateOfBirth = &dob
		}
	}
	return raw
}

type ScoreRequestDTO struct {
	ProfileA ProfilePayload `json:"profile_a"`
	ProfileB ProfilePayload `json:"profile_b"`
}

type RecommendationParams struct {
	Limit int `json:"limit" validate:"min=1,max=50"`
}

type CandidateFilters struct {
	Limit int `json:"limit"`
}

// ScoredCandidate is one ranked entry of a recommendation list.
type ScoredCandidate struct {
	UserID        int64                 `json:"user_id"`
	DisplayName   string                `json:"display_name"`
	Quality       compatibility.Quality `json:"quality"`
	Compatibility compatibility.Result  `json:"compatibility"`
}

type SyncAcceptedResponse struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}
