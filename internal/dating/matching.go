package dating

import (
	"log"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/compatibility"
)

type MatchingEngine interface {
	// CalculateCompatibility scores user against candidate, in that direction.
	CalculateCompatibility(user, candidate *ProfileSnapshot) compatibility.Result
	// ScoreRaw scores two inline profiles that are not stored anywhere.
	ScoreRaw(a, b compatibility.RawProfile) compatibility.Result
	Weights() compatibility.Weights
}

type matchingEngine struct {
	scorer *compatibility.Scorer
}

func NewMatchingEngine(scorer *compatibility.Scorer) MatchingEngine {
	return &matchingEngine{scorer: scorer}
}

func (m *matchingEngine) CalculateCompatibility(user, candidate *ProfileSnapshot) compatibility.Result {
	a := m.normalize(user)
	b := m.normalize(candidate)
	return m.scorer.Score(a, b)
}

func (m *matchingEngine) ScoreRaw(a, b compatibility.RawProfile) compatibility.Result {
	result, issues := m.scorer.ScoreRaw(a, b)
	for _, issue := range issues {
		log.Printf("⚠️  Inline profile %s unreadable, using empty value: %v", issue.Field, issue.Err)
		RecordParseFallback(issue.Field)
	}
	return result
}

func (m *matchingEngine) Weights() compatibility.Weights {
	return m.scorer.Weights()
}

// normalize decodes a stored profile, logging every field that fell back.
func (m *matchingEngine) normalize(p *ProfileSnapshot) compatibility.Profile {
	profile, issues := compatibility.Normalize(p.Raw())
	for _, issue := range issues {
		log.Printf("⚠️  Profile %d has unreadable %s, scoring with empty value: %v", p.UserID, issue.Field, issue.Err)
		RecordParseFallback(issue.Field)
	}
	return profile
}
