// internal/compatibility/scorer.go
// Deterministic pairwise compatibility scoring. Pure: no I/O, no shared
// state, safe to call from any number of goroutines.

package compatibility

import (
	"math"
	"time"
)

// Result is the derived, ephemeral outcome of scoring two profiles.
type Result struct {
	PhysicalScore        int       `json:"physical_score"`
	MentalScore          int       `json:"mental_score"`
	OverallScore         int       `json:"overall_score"`
	SharedInterests      []string  `json:"shared_interests"`
	CompatibilityReasons []string  `json:"compatibility_reasons"`
	Breakdown            Breakdown `json:"breakdown"`
}

// Breakdown lists the raw points earned per criterion.
type Breakdown struct {
	Height   float64 `json:"height"`
	BodyType float64 `json:"body_type"`
	Age      float64 `json:"age"`

	Interests float64 `json:"interests"`
	Traits    float64 `json:"personality_traits"`
	Values    float64 `json:"values"`
	Goals     float64 `json:"relationship_goals"`

	PhysicalEarned float64 `json:"physical_earned"`
	PhysicalBudget float64 `json:"physical_budget"`
	MentalEarned   float64 `json:"mental_earned"`
	MentalBudget   float64 `json:"mental_budget"`
}

// Quality buckets a 0-100 score into a label.
type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityFair      Quality = "fair"
	QualityPoor      Quality = "poor"
	QualityNone      Quality = "none"
)

// QualityOf maps a score onto its band.
func QualityOf(score int) Quality {
	switch {
	case score >= 80:
		return QualityExcellent
	case score >= 60:
		return QualityGood
	case score >= 40:
		return QualityFair
	case score >= 20:
		return QualityPoor
	default:
		return QualityNone
	}
}

// Quality returns the band of the overall score.
func (r Result) Quality() Quality {
	return QualityOf(r.OverallScore)
}

// Scorer computes compatibility with a fixed weights table.
type Scorer struct {
	weights Weights
	now     func() time.Time
}

type Option func(*Scorer)

// WithClock overrides the clock used by Score for age calculation.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

// NewScorer builds a Scorer. Weights are assumed valid; see Weights.Validate.
func NewScorer(w Weights, opts ...Option) *Scorer {
	s := &Scorer{weights: w, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights returns the table the scorer was built with.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score evaluates a against b using the scorer's clock.
func (s *Scorer) Score(a, b Profile) Result {
	return s.ScoreAt(a, b, s.now())
}

// ScoreRaw normalizes both raw profiles and scores them. Parse issues are
// returned for the caller to log; they never stop scoring.
func (s *Scorer) ScoreRaw(a, b RawProfile) (Result, []ParseIssue) {
	pa, issuesA := Normalize(a)
	pb, issuesB := Normalize(b)
	return s.Score(pa, pb), append(issuesA, issuesB...)
}

// ScoreAt evaluates a against b as of now. Shared interests and reasons
// follow a's ordering.
func (s *Scorer) ScoreAt(a, b Profile, now time.Time) Result {
	var bd Breakdown

	shared := intersect(a.Qualities.Interests, b.Qualities.Interests)
	physical := s.physicalScore(a, b, now, &bd)
	mental := s.mentalScore(a, b, shared, &bd)

	overall := int(math.Round(float64(mental)*s.weights.MentalShare + float64(physical)*s.weights.PhysicalShare))

	return Result{
		PhysicalScore:        physical,
		MentalScore:          mental,
		OverallScore:         clamp(overall),
		SharedInterests:      shared,
		CompatibilityReasons: reasons(a.Qualities, b.Qualities, shared, s.weights.MaxReasons),
		Breakdown:            bd,
	}
}

// normalize converts earned/budget to a rounded 0-100 integer. Preference
// matches in both directions can out-earn a criterion's budget, so the
// result is clamped.
func normalize(earned, budget float64) int {
	if budget <= 0 {
		return 0
	}
	return clamp(int(math.Round(earned / budget * 100)))
}

func clamp(v int) int {
	return max(0, min(v, 100))
}
