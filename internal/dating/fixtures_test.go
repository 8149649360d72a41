package dating

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/compatibility"
)

var fixedNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func newTestEngine() MatchingEngine {
	return NewMatchingEngine(compatibility.NewScorer(
		compatibility.DefaultWeights(),
		compatibility.WithClock(func() time.Time { return fixedNow }),
	))
}

func ptr[T any](v T) *T { return &v }

func snapshot(id int64, height float64, dob time.Time, qualities, requirements string) *ProfileSnapshot {
	return &ProfileSnapshot{
		UserID:       id,
		DisplayName:  "user" + string(rune('A'+id-1)),
		Height:       ptr(height),
		DateOfBirth:  ptr(dob),
		Qualities:    ptr(qualities),
		Requirements: ptr(requirements),
		IsActive:     true,
		UpdatedAt:    fixedNow,
	}
}

// alice and bob are the reference pair: alice judging bob scores 100/73/84.
func alice() *ProfileSnapshot {
	return snapshot(1, 175, time.Date(1995, time.May, 15, 0, 0, 0, 0, time.UTC),
		`{"body_type":"athletic","interests":["hiking","reading","music"],
		  "personality_traits":["adventurous","kind"],"values":["honesty","family"],
		  "relationship_goals":["long-term"]}`,
		`{"height_range":{"min":160,"max":185},"preferred_body_types":["athletic","slim"],
		  "age_range":{"min":25,"max":35},"preferred_personality_traits":["adventurous"],
		  "preferred_values":["honesty"],"preferred_relationship_goals":["long-term"]}`)
}

func bob() *ProfileSnapshot {
	return snapshot(2, 168, time.Date(1996, time.August, 20, 0, 0, 0, 0, time.UTC),
		`{"body_type":"athletic","interests":["hiking","music"],
		  "personality_traits":["adventurous","creative"],"values":["honesty","adventure"],
		  "relationship_goals":["long-term"]}`,
		`{"height_range_min":170,"height_range_max":190,"preferred_body_types":["athletic"],
		  "age_range_min":24,"age_range_max":32,"preferred_personality_traits":["kind"],
		  "preferred_values":["family"],"preferred_relationship_goals":["long-term"]}`)
}

// blank has no usable data. Against a complete profile it earns only the
// empty-preference fallbacks: 0/17/10.
func blank(id int64) *ProfileSnapshot {
	return &ProfileSnapshot{UserID: id, DisplayName: "blank", IsActive: true, UpdatedAt: fixedNow}
}

// fakeRepository is an in-memory Repository with optional failure injection.
type fakeRepository struct {
	mu       sync.Mutex
	profiles map[int64]*ProfileSnapshot
	scores   map[[2]int64]*PairScore
	qcs      map[int64]int
	runs     map[uuid.UUID]*SyncRun

	findErr   map[int64]error
	upsertErr error
	listErr   error
	deleted   time.Time
}

func newFakeRepository(profiles ...*ProfileSnapshot) *fakeRepository {
	r := &fakeRepository{
		profiles: map[int64]*ProfileSnapshot{},
		scores:   map[[2]int64]*PairScore{},
		qcs:      map[int64]int{},
		runs:     map[uuid.UUID]*SyncRun{},
		findErr:  map[int64]error{},
	}
	for _, p := range profiles {
		r.profiles[p.UserID] = p
	}
	return r
}

func (r *fakeRepository) sortedActive() []*ProfileSnapshot {
	var out []*ProfileSnapshot
	for _, p := range r.profiles {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func (r *fakeRepository) GetProfile(_ context.Context, userID int64) (*ProfileSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeRepository) ListActiveProfiles(_ context.Context, afterID int64, limit int) ([]*ProfileSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*ProfileSnapshot
	for _, p := range r.sortedActive() {
		if p.UserID > afterID && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepository) FindCandidates(_ context.Context, userID int64, filters *CandidateFilters) ([]*ProfileSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.findErr[userID]; err != nil {
		return nil, err
	}
	var out []*ProfileSnapshot
	for _, p := range r.sortedActive() {
		if p.UserID != userID && len(out) < filters.Limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepository) UpdateProfileQCS(_ context.Context, userID int64, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.qcs[userID] = score
	return nil
}

func (r *fakeRepository) UpsertPairScore(_ context.Context, score *PairScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.scores[[2]int64{score.UserID, score.CandidateID}] = score
	return nil
}

func (r *fakeRepository) GetPairScore(_ context.Context, userID, candidateID int64) (*PairScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scores[[2]int64{userID, candidateID}], nil
}

func (r *fakeRepository) GetTopPairScores(_ context.Context, userID int64, limit int) ([]*PairScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*PairScore
	for k, s := range r.scores {
		if k[0] == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OverallScore > out[j].OverallScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepository) DeleteStalePairScores(_ context.Context, olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = olderThan
	var n int64
	for k, s := range r.scores {
		if s.ComputedAt.Before(olderThan) {
			delete(r.scores, k)
			n++
		}
	}
	return n, nil
}

func (r *fakeRepository) CreateSyncRun(_ context.Context, run *SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *run
	r.runs[run.ID] = &cp
	return nil
}

func (r *fakeRepository) FinishSyncRun(_ context.Context, run *SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[run.ID]; !ok {
		return errors.New("unknown run")
	}
	cp := *run
	r.runs[run.ID] = &cp
	return nil
}

// stubCache is a ScoreCache with func fields; nil fields behave as a miss.
type stubCache struct {
	get func(ctx context.Context, userID, candidateID int64) (*compatibility.Result, error)
	set func(ctx context.Context, userID, candidateID int64, r compatibility.Result) error

	mu          sync.Mutex
	invalidated [][2]int64
}

func (c *stubCache) Get(ctx context.Context, userID, candidateID int64) (*compatibility.Result, error) {
	if c.get == nil {
		return nil, nil
	}
	return c.get(ctx, userID, candidateID)
}

func (c *stubCache) Set(ctx context.Context, userID, candidateID int64, r compatibility.Result) error {
	if c.set == nil {
		return nil
	}
	return c.set(ctx, userID, candidateID, r)
}

func (c *stubCache) Invalidate(_ context.Context, userID, candidateID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, [2]int64{userID, candidateID})
	return nil
}

// mockService lets handler tests script each Service method.
type mockService struct {
	calculate       func(ctx context.Context, userID, candidateID int64) (*compatibility.Result, error)
	scoreProfiles   func(ctx context.Context, dto *ScoreRequestDTO) (*compatibility.Result, error)
	savedScore      func(ctx context.Context, userID, candidateID int64) (*PairScore, error)
	recommendations func(ctx context.Context, userID int64, params *RecommendationParams) ([]*ScoredCandidate, error)
	topMatches      func(ctx context.Context, userID int64, params *RecommendationParams) ([]*PairScore, error)
	startSync       func() (uuid.UUID, error)
}

func (m *mockService) CalculateCompatibility(ctx context.Context, userID, candidateID int64) (*compatibility.Result, error) {
	return m.calculate(ctx, userID, candidateID)
}

func (m *mockService) ScoreProfiles(ctx context.Context, dto *ScoreRequestDTO) (*compatibility.Result, error) {
	return m.scoreProfiles(ctx, dto)
}

func (m *mockService) GetSavedScore(ctx context.Context, userID, candidateID int64) (*PairScore, error) {
	return m.savedScore(ctx, userID, candidateID)
}

func (m *mockService) GetTopMatches(ctx context.Context, userID int64, params *RecommendationParams) ([]*PairScore, error) {
	return m.topMatches(ctx, userID, params)
}

func (m *mockService) Weights() compatibility.Weights { return compatibility.DefaultWeights() }

func (m *mockService) GetRecommendations(ctx context.Context, userID int64, params *RecommendationParams) ([]*ScoredCandidate, error) {
	return m.recommendations(ctx, userID, params)
}

func (m *mockService) SyncScores(context.Context) (*SyncRun, error) { return nil, nil }

func (m *mockService) StartSync() (uuid.UUID, error) { return m.startSync() }

func (m *mockService) Shutdown(context.Context) error { return nil }

func (m *mockService) CleanupStaleScores(context.Context) error { return nil }
