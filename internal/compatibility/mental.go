package compatibility

// mentalScore evaluates shared interests, personality, values and
// relationship goals. The denominator is the fixed mental budget.
func (s *Scorer) mentalScore(a, b Profile, shared []string, bd *Breakdown) int {
	w := s.weights.Mental
	qa, qb := a.Qualities, b.Qualities
	ra, rb := a.Requirements, b.Requirements

	bd.Interests = min(float64(len(shared))*w.InterestPerMatch, w.InterestCap)

	bd.Traits = preferenceScore(qb.PersonalityTraits, ra.PreferredPersonalityTraits, w.Traits.PerMatch, w.Traits.Cap.A, w.Traits.Fallback.A) +
		preferenceScore(qa.PersonalityTraits, rb.PreferredPersonalityTraits, w.Traits.PerMatch, w.Traits.Cap.B, w.Traits.Fallback.B)

	bd.Values = preferenceScore(qb.Values, ra.PreferredValues, w.Values.PerMatch, w.Values.Cap.A, w.Values.Fallback.A) +
		preferenceScore(qa.Values, rb.PreferredValues, w.Values.PerMatch, w.Values.Cap.B, w.Values.Fallback.B)

	if len(intersect(qa.RelationshipGoals, qb.RelationshipGoals)) > 0 {
		bd.Goals += w.SharedGoal
	}
	bd.Goals += preferenceScore(qb.RelationshipGoals, ra.PreferredRelationshipGoals, w.Goals.PerMatch, w.Goals.Cap.A, w.Goals.Fallback.A)
	bd.Goals += preferenceScore(qa.RelationshipGoals, rb.PreferredRelationshipGoals, w.Goals.PerMatch, w.Goals.Cap.B, w.Goals.Fallback.B)

	bd.MentalEarned = bd.Interests + bd.Traits + bd.Values + bd.Goals
	bd.MentalBudget = w.Budget
	return normalize(bd.MentalEarned, bd.MentalBudget)
}
