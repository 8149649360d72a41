// internal/dating/models.go

package dating

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/compatibility"
)

// ProfileSnapshot is the slice of a user's profile row the scorer reads.
// Qualities and requirements are stored as serialized JSON and may be NULL
// or malformed; they are decoded tolerantly by the matching engine.
type ProfileSnapshot struct {
	UserID       int64      `json:"user_id" db:"user_id"`
	DisplayName  string     `json:"display_name" db:"display_name"`
	Height       *float64   `json:"height,omitempty" db:"height"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Qualities    *string    `json:"-" db:"qualities"`
	Requirements *string    `json:"-" db:"requirements"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	QCSScore     *int       `json:"qcs_score,omitempty" db:"qcs_score"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Raw converts the row into the scorer's input shape.
func (p *ProfileSnapshot) Raw() compatibility.RawProfile {
	raw := compatibility.RawProfile{
		Height:      p.Height,
		DateOfBirth: p.DateOfBirth,
	}
	if p.Qualities != nil {
		raw.Qualities = *p.Qualities
	}
	if p.Requirements != nil {
		raw.Requirements = *p.Requirements
	}
	return raw
}

// PairScore is a persisted, directional compatibility result:
// UserID judged against CandidateID.
type PairScore struct {
	UserID          int64          `json:"user_id" db:"user_id"`
	CandidateID     int64          `json:"candidate_id" db:"candidate_id"`
	PhysicalScore   int            `json:"physical_score" db:"physical_score"`
	MentalScore     int            `json:"mental_score" db:"mental_score"`
	OverallScore    int            `json:"overall_score" db:"overall_score"`
	SharedInterests pq.StringArray `json:"shared_interests" db:"shared_interests"`
	Reasons         pq.StringArray `json:"compatibility_reasons" db:"reasons"`
	ComputedAt      time.Time      `json:"computed_at" db:"computed_at"`
}

func NewPairScore(userID, candidateID int64, r compatibility.Result, at time.Time) *PairScore {
	return &PairScore{
		UserID:          userID,
		CandidateID:     candidateID,
		PhysicalScore:   r.PhysicalScore,
		MentalScore:     r.MentalScore,
		OverallScore:    r.OverallScore,
		SharedInterests: pq.StringArray(r.SharedInterests),
		Reasons:         pq.StringArray(r.CompatibilityReasons),
		ComputedAt:      at,
	}
}

const (
	SyncStatusRunning   = "running"
	SyncStatusCompleted = "completed"
	SyncStatusFailed    = "failed"
)

// SyncRun is the bookkeeping row of one bulk QCS sync.
type SyncRun struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	Status            string     `json:"status" db:"status"`
	ProfilesProcessed int        `json:"profiles_processed" db:"profiles_processed"`
	PairsScored       int        `json:"pairs_scored" db:"pairs_scored"`
	Failures          int        `json:"failures" db:"failures"`
	StartedAt         time.Time  `json:"started_at" db:"started_at"`
	FinishedAt        *time.Time `json:"finished_at,omitempty" db:"finished_at"`
}
