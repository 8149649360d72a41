package compatibility

import "time"

// physicalScore evaluates height, body type and age in both directions.
// Every criterion's budget counts toward the denominator; points are only
// earned when both sides carry the data.
func (s *Scorer) physicalScore(a, b Profile, now time.Time, bd *Breakdown) int {
	w := s.weights.Physical
	d := s.weights.Defaults
	var score float64

	// Height
	if a.Height != nil && b.Height != nil {
		if a.Requirements.HeightRange.Contains(*b.Height, d.HeightMin, d.HeightMax) {
			bd.Height += w.HeightMatch.A
		}
		if b.Requirements.HeightRange.Contains(*a.Height, d.HeightMin, d.HeightMax) {
			bd.Height += w.HeightMatch.B
		}
	}
	score += bd.Height

	// Body type
	if a.Qualities.BodyType != "" && b.Qualities.BodyType != "" {
		bd.BodyType += bodyTypePoints(a.Requirements.PreferredBodyTypes, b.Qualities.BodyType, w.BodyMatch.A, w.BodyFallback.A)
		bd.BodyType += bodyTypePoints(b.Requirements.PreferredBodyTypes, a.Qualities.BodyType, w.BodyMatch.B, w.BodyFallback.B)
	}
	score += bd.BodyType

	// Age
	if a.DateOfBirth != nil && b.DateOfBirth != nil {
		ageA := float64(AgeAt(*a.DateOfBirth, now))
		ageB := float64(AgeAt(*b.DateOfBirth, now))
		if a.Requirements.AgeRange.Contains(ageB, d.AgeMin, d.AgeMax) {
			bd.Age += w.AgeMatch.A
		}
		if b.Requirements.AgeRange.Contains(ageA, d.AgeMin, d.AgeMax) {
			bd.Age += w.AgeMatch.B
		}
	}
	score += bd.Age

	bd.PhysicalEarned = score
	bd.PhysicalBudget = s.weights.PhysicalBudget()
	return normalize(score, bd.PhysicalBudget)
}

func bodyTypePoints(preferred []string, bodyType string, match, fallback float64) float64 {
	if len(preferred) == 0 {
		return fallback
	}
	if containsString(preferred, bodyType) {
		return match
	}
	return 0
}
