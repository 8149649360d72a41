// internal/dating/service.go

package dating

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/compatibility"
)

var (
	ErrCannotScoreSelf = errors.New("cannot score a profile against itself")
	ErrScoreNotFound   = errors.New("no saved score for this pair")
)

type Service interface {
	// Scoring
	CalculateCompatibility(ctx context.Context, userID, candidateID int64) (*compatibility.Result, error)
	ScoreProfiles(ctx context.Context, dto *ScoreRequestDTO) (*compatibility.Result, error)
	GetSavedScore(ctx context.Context, userID, candidateID int64) (*PairScore, error)
	GetTopMatches(ctx context.Context, userID int64, params *RecommendationParams) ([]*PairScore, error)
	Weights() compatibility.Weights

	// Recommendations
	GetRecommendations(ctx context.Context, userID int64, params *RecommendationParams) ([]*ScoredCandidate, error)

	// Scheduled Jobs
	SyncScores(ctx context.Context) (*SyncRun, error)
	StartSync() (uuid.UUID, error)
	CleanupStaleScores(ctx context.Context) error

	// Shutdown waits for a background sync to wind down.
	Shutdown(ctx context.Context) error
}

type ServiceConfig struct {
	CandidatePool  int
	SyncWorkers    int
	SyncPageSize   int
	TopK           int
	ScoreRetention time.Duration

	// BaseContext bounds syncs started with StartSync. Cancel it on process
	// shutdown. Defaults to context.Background().
	BaseContext context.Context
}

type service struct {
	repo            Repository
	cache           ScoreCache
	matchingEngine  MatchingEngine
	recommendations *RecommendationEngine
	syncJob         *SyncJob
	retention       time.Duration
	baseCtx         context.Context
	now             func() time.Time
}

func NewService(repo Repository, cache ScoreCache, matchingEngine MatchingEngine, cfg ServiceConfig) Service {
	baseCtx := cfg.BaseContext
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &service{
		repo:            repo,
		cache:           cache,
		matchingEngine:  matchingEngine,
		recommendations: NewRecommendationEngine(matchingEngine, repo, cfg.CandidatePool),
		syncJob: NewSyncJob(repo, cache, matchingEngine, SyncConfig{
			Workers:       cfg.SyncWorkers,
			PageSize:      cfg.SyncPageSize,
			CandidatePool: cfg.CandidatePool,
			TopK:          cfg.TopK,
		}),
		retention: cfg.ScoreRetention,
		baseCtx:   baseCtx,
		now:       time.Now,
	}
}

func (s *service) CalculateCompatibility(ctx context.Context, userID, candidateID int64) (*compatibility.Result, error) {
	if userID == candidateID {
		return nil, ErrCannotScoreSelf
	}

	cached, err := s.cache.Get(ctx, userID, candidateID)
	switch {
	case err != nil:
		log.Printf("Score cache read failed for %d -> %d: %v", userID, candidateID, err)
		RecordCacheRequest("error")
	case cached != nil:
		RecordCacheRequest("hit")
		return cached, nil
	default:
		RecordCacheRequest("miss")
	}

	user, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.repo.GetProfile(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	result := s.matchingEngine.CalculateCompatibility(user, candidate)
	RecordScore(SourceOnDemand, result.OverallScore)

	if err := s.repo.UpsertPairScore(ctx, NewPairScore(userID, candidateID, result, s.now())); err != nil {
		log.Printf("Failed to save score %d -> %d: %v", userID, candidateID, err)
	}
	if err := s.cache.Set(ctx, userID, candidateID, result); err != nil {
		log.Printf("Score cache write failed for %d -> %d: %v", userID, candidateID, err)
	}

	return &result, nil
}

func (s *service) ScoreProfiles(ctx context.Context, dto *ScoreRequestDTO) (*compatibility.Result, error) {
	result := s.matchingEngine.ScoreRaw(dto.ProfileA.Raw(), dto.ProfileB.Raw())
	RecordScore(SourceAdHoc, result.OverallScore)
	return &result, nil
}

func (s *service) GetSavedScore(ctx context.Context, userID, candidateID int64) (*PairScore, error) {
	score, err := s.repo.GetPairScore(ctx, userID, candidateID)
	if err != nil {
		return nil, err
	}
	if score == nil {
		return nil, ErrScoreNotFound
	}
	return score, nil
}

// GetTopMatches lists userID's best stored pair scores, as left by the
// last sync or on-demand scoring.
func (s *service) GetTopMatches(ctx context.Context, userID int64, params *RecommendationParams) ([]*PairScore, error) {
	if params.Limit <= 0 {
		return []*PairScore{}, nil
	}
	scores, err := s.repo.GetTopPairScores(ctx, userID, params.Limit)
	if err != nil {
		return nil, err
	}
	if scores == nil {
		scores = []*PairScore{}
	}
	return scores, nil
}

func (s *service) Weights() compatibility.Weights {
	return s.matchingEngine.Weights()
}

func (s *service) GetRecommendations(ctx context.Context, userID int64, params *RecommendationParams) ([]*ScoredCandidate, error) {
	user, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.recommendations.GenerateRecommendations(ctx, user, params.Limit)
}

func (s *service) SyncScores(ctx context.Context) (*SyncRun, error) {
	return s.syncJob.Run(ctx)
}

// StartSync runs a sync in the background under the service's base context,
// so it outlives the triggering request but not the process.
func (s *service) StartSync() (uuid.UUID, error) {
	return s.syncJob.Start(s.baseCtx)
}

func (s *service) Shutdown(ctx context.Context) error {
	return s.syncJob.Wait(ctx)
}

func (s *service) CleanupStaleScores(ctx context.Context) error {
	if s.retention <= 0 {
		return nil
	}
	deleted, err := s.repo.DeleteStalePairScores(ctx, s.now().Add(-s.retention))
	if err != nil {
		return err
	}
	log.Printf("🧹 Removed %d stale compatibility scores", deleted)
	return nil
}
