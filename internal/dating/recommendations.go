// internal/dating/recommendations.go

package dating

import (
	"context"
	"log"
	"sort"
	"time"
)

type RecommendationEngine struct {
	matchingEngine MatchingEngine
	repo           Repository
	candidatePool  int
	now            func() time.Time
}

func NewRecommendationEngine(engine MatchingEngine, repo Repository, candidatePool int) *RecommendationEngine {
	return &RecommendationEngine{
		matchingEngine: engine,
		repo:           repo,
		candidatePool:  candidatePool,
		now:            time.Now,
	}
}

// GenerateRecommendations scores the candidate pool for user, persists the
// top results and returns at most limit of them, best first. A limit of
// zero or less yields an empty list.
func (r *RecommendationEngine) GenerateRecommendations(ctx context.Context, user *ProfileSnapshot, limit int) ([]*ScoredCandidate, error) {
	if limit <= 0 {
		return []*ScoredCandidate{}, nil
	}

	candidates, err := r.findCandidates(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	scored := r.scoreAndRank(user, candidates, SourceRecommendation)
	if len(scored) > limit {
		scored = scored[:limit]
	}

	now := r.now()
	for _, c := range scored {
		if err := r.repo.UpsertPairScore(ctx, NewPairScore(user.UserID, c.UserID, c.Compatibility, now)); err != nil {
			log.Printf("Failed to save score %d -> %d: %v", user.UserID, c.UserID, err)
		}
	}

	return scored, nil
}

func (r *RecommendationEngine) findCandidates(ctx context.Context, userID int64) ([]*ProfileSnapshot, error) {
	filters := &CandidateFilters{
		Limit: r.candidatePool,
	}
	return r.repo.FindCandidates(ctx, userID, filters)
}

func (r *RecommendationEngine) scoreAndRank(user *ProfileSnapshot, candidates []*ProfileSnapshot, source string) []*ScoredCandidate {
	scored := make([]*ScoredCandidate, 0, len(candidates))

	for _, candidate := range candidates {
		if candidate.UserID == user.UserID {
			continue
		}
		result := r.matchingEngine.CalculateCompatibility(user, candidate)
		RecordScore(source, result.OverallScore)

		scored = append(scored, &ScoredCandidate{
			UserID:        candidate.UserID,
			DisplayName:   candidate.DisplayName,
			Quality:       result.Quality(),
			Compatibility: result,
		})
	}

	rankCandidates(scored)
	return scored
}

// rankCandidates orders by overall score, then mental score, then user ID
// so equal scores always come back in the same order.
func rankCandidates(scored []*ScoredCandidate) {
	sort.Slice(scored, func(i, j int) bool {
		a, b := scored[i].Compatibility, scored[j].Compatibility
		if a.OverallScore != b.OverallScore {
			return a.OverallScore > b.OverallScore
		}
		if a.MentalScore != b.MentalScore {
			return a.MentalScore > b.MentalScore
		}
		return scored[i].UserID < scored[j].UserID
	})
}
