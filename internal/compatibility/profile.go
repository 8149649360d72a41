// internal/compatibility/profile.go
// Profile snapshot read by the scorer, plus tolerant normalization of
// the serialized qualities/requirements columns

package compatibility

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Range is an inclusive numeric bound. A nil end means "use the default".
type Range struct {
	Min *float64 `json:"min,omitempty" toml:"min"`
	Max *float64 `json:"max,omitempty" toml:"max"`
}

// Bounds resolves the range against the given defaults, one end at a time.
func (r Range) Bounds(defMin, defMax float64) (float64, float64) {
	lo, hi := defMin, defMax
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	return lo, hi
}

// Contains reports whether v lies in the resolved range. Inverted ranges
// are evaluated literally and therefore match nothing.
func (r Range) Contains(v, defMin, defMax float64) bool {
	lo, hi := r.Bounds(defMin, defMax)
	return v >= lo && v <= hi
}

// Qualities are the self-described attributes of a user.
type Qualities struct {
	BodyType           string   `json:"body_type,omitempty"`
	Interests          []string `json:"interests,omitempty"`
	PersonalityTraits  []string `json:"personality_traits,omitempty"`
	Values             []string `json:"values,omitempty"`
	RelationshipGoals  []string `json:"relationship_goals,omitempty"`
	EducationLevel     string   `json:"education_level,omitempty"`
	CommunicationStyle string   `json:"communication_style,omitempty"`
}

// Requirements are the partner preferences a user has stated.
type Requirements struct {
	HeightRange                Range    `json:"height_range"`
	PreferredBodyTypes         []string `json:"preferred_body_types,omitempty"`
	AgeRange                   Range    `json:"age_range"`
	PreferredPersonalityTraits []string `json:"preferred_personality_traits,omitempty"`
	PreferredValues            []string `json:"preferred_values,omitempty"`
	PreferredRelationshipGoals []string `json:"preferred_relationship_goals,omitempty"`
}

// UnmarshalJSON accepts both the nested {"height_range":{"min":..}} shape
// and the flat height_range_min / age_range_max columns. Nested values win.
func (r *Requirements) UnmarshalJSON(data []byte) error {
	type plain Requirements
	var aux struct {
		plain
		HeightRangeMin *float64 `json:"height_range_min"`
		HeightRangeMax *float64 `json:"height_range_max"`
		AgeRangeMin    *float64 `json:"age_range_min"`
		AgeRangeMax    *float64 `json:"age_range_max"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = Requirements(aux.plain)
	if r.HeightRange.Min == nil {
		r.HeightRange.Min = aux.HeightRangeMin
	}
	if r.HeightRange.Max == nil {
		r.HeightRange.Max = aux.HeightRangeMax
	}
	if r.AgeRange.Min == nil {
		r.AgeRange.Min = aux.AgeRangeMin
	}
	if r.AgeRange.Max == nil {
		r.AgeRange.Max = aux.AgeRangeMax
	}
	return nil
}

// Profile is the normalized, read-only snapshot the scorer works on.
type Profile struct {
	Height       *float64
	DateOfBirth  *time.Time
	Qualities    Qualities
	Requirements Requirements
}

// RawProfile is what callers hand in. Qualities and Requirements may be
// nil, JSON text ([]byte, string, json.RawMessage), an already decoded
// map[string]any, or the typed structs (value or pointer). JSON text that
// is itself a JSON string is unwrapped once.
type RawProfile struct {
	Height       *float64   `json:"height,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Qualities    any        `json:"qualities,omitempty"`
	Requirements any        `json:"requirements,omitempty"`
}

// ParseIssue records a field that fell back to its empty default.
type ParseIssue struct {
	Field string
	Err   error
}

func (p ParseIssue) Error() string {
	return fmt.Sprintf("%s: %v", p.Field, p.Err)
}

// Normalize turns a RawProfile into a Profile. It never fails: anything
// that can't be decoded becomes an empty object and is reported back.
func Normalize(raw RawProfile) (Profile, []ParseIssue) {
	var issues []ParseIssue

	q, err := parseOrDefault(raw.Qualities, Qualities{})
	if err != nil {
		issues = append(issues, ParseIssue{Field: "qualities", Err: err})
	}
	req, err := parseOrDefault(raw.Requirements, Requirements{})
	if err != nil {
		issues = append(issues, ParseIssue{Field: "requirements", Err: err})
	}

	return Profile{
		Height:       raw.Height,
		DateOfBirth:  raw.DateOfBirth,
		Qualities:    q,
		Requirements: req,
	}, issues
}

// parseOrDefault decodes raw into T, returning fallback and the cause when
// raw is present but unusable. A nil or blank raw is not an error.
func parseOrDefault[T any](raw any, fallback T) (T, error) {
	var data []byte

	switch v := raw.(type) {
	case nil:
		return fallback, nil
	case T:
		return v, nil
	case *T:
		if v == nil {
			return fallback, nil
		}
		return *v, nil
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		// Already-decoded JSON (map[string]any and friends): round-trip it.
		b, err := json.Marshal(v)
		if err != nil {
			return fallback, fmt.Errorf("re-encode %T: %w", raw, err)
		}
		data = b
	}

	if isBlank(data) {
		return fallback, nil
	}

	// A JSON string holding serialized JSON: the column was encoded twice.
	if trimmed := bytes.TrimLeft(data, " \t\n\r"); trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return fallback, fmt.Errorf("decode: %w", err)
		}
		data = []byte(inner)
		if isBlank(data) {
			return fallback, nil
		}
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return fallback, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

func isBlank(data []byte) bool {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return false
	}
	return true
}
