// internal/dating/sync.go

package dating

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrSyncInProgress = errors.New("qcs sync already running")

type SyncConfig struct {
	Workers       int
	PageSize      int
	CandidatePool int
	TopK          int
}

// SyncJob recomputes pair scores and the per-profile QCS for every active
// profile. Only one run is active per process.
type SyncJob struct {
	repo           Repository
	cache          ScoreCache
	matchingEngine MatchingEngine
	cfg            SyncConfig
	running        atomic.Bool
	wg             sync.WaitGroup
	now            func() time.Time
}

func NewSyncJob(repo Repository, cache ScoreCache, engine MatchingEngine, cfg SyncConfig) *SyncJob {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 100
	}
	return &SyncJob{
		repo:           repo,
		cache:          cache,
		matchingEngine: engine,
		cfg:            cfg,
		now:            time.Now,
	}
}

func (j *SyncJob) Running() bool {
	return j.running.Load()
}

// Run performs a sync and blocks until it finishes.
func (j *SyncJob) Run(ctx context.Context) (*SyncRun, error) {
	if !j.running.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer j.running.Store(false)

	return j.run(ctx, uuid.New())
}

// Start launches a sync in the background and returns its run ID.
func (j *SyncJob) Start(ctx context.Context) (uuid.UUID, error) {
	if !j.running.CompareAndSwap(false, true) {
		return uuid.Nil, ErrSyncInProgress
	}

	id := uuid.New()
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		defer j.running.Store(false)
		if _, err := j.run(ctx, id); err != nil {
			log.Printf("❌ QCS sync %s failed: %v", id, err)
		}
	}()
	return id, nil
}

// Wait blocks until background runs launched by Start have returned or ctx
// is done.
func (j *SyncJob) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *SyncJob) run(ctx context.Context, id uuid.UUID) (*SyncRun, error) {
	started := j.now()
	run := &SyncRun{ID: id, Status: SyncStatusRunning, StartedAt: started}
	if err := j.repo.CreateSyncRun(ctx, run); err != nil {
		return nil, err
	}
	log.Printf("🔄 QCS sync %s started", id)

	var processed, pairs, failures atomic.Int64
	var afterID int64
	var runErr error

	for {
		profiles, err := j.repo.ListActiveProfiles(ctx, afterID, j.cfg.PageSize)
		if err != nil {
			runErr = err
			break
		}
		if len(profiles) == 0 {
			break
		}

		var g errgroup.Group
		g.SetLimit(j.cfg.Workers)
		for _, p := range profiles {
			p := p
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				n, err := j.syncProfile(ctx, p)
				pairs.Add(int64(n))
				if err != nil {
					log.Printf("⚠️  QCS sync: profile %d failed: %v", p.UserID, err)
					failures.Add(1)
					RecordSyncProfile("failed")
					return nil
				}
				processed.Add(1)
				RecordSyncProfile("ok")
				return nil
			})
		}
		_ = g.Wait()

		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		afterID = profiles[len(profiles)-1].UserID
	}

	finished := j.now()
	run.FinishedAt = &finished
	run.ProfilesProcessed = int(processed.Load())
	run.PairsScored = int(pairs.Load())
	run.Failures = int(failures.Load())
	run.Status = SyncStatusCompleted
	if runErr != nil {
		run.Status = SyncStatusFailed
	}
	RecordSyncDuration(finished.Sub(started))

	// The run row is closed even when ctx was cancelled.
	if err := j.repo.FinishSyncRun(context.WithoutCancel(ctx), run); err != nil {
		log.Printf("Failed to record end of QCS sync %s: %v", id, err)
	}
	log.Printf("✅ QCS sync %s %s: %d profiles, %d pairs, %d failures",
		id, run.Status, run.ProfilesProcessed, run.PairsScored, run.Failures)

	return run, runErr
}

// syncProfile scores p against its candidate pool, stores every pair and
// updates p's QCS. Cached results for rescored pairs are dropped. It
// returns the number of pairs stored.
func (j *SyncJob) syncProfile(ctx context.Context, p *ProfileSnapshot) (int, error) {
	candidates, err := j.repo.FindCandidates(ctx, p.UserID, &CandidateFilters{Limit: j.cfg.CandidatePool})
	if err != nil {
		return 0, err
	}

	now := j.now()
	overall := make([]int, 0, len(candidates))
	stored := 0
	for _, c := range candidates {
		if c.UserID == p.UserID {
			continue
		}
		result := j.matchingEngine.CalculateCompatibility(p, c)
		RecordScore(SourceSync, result.OverallScore)
		if err := j.repo.UpsertPairScore(ctx, NewPairScore(p.UserID, c.UserID, result, now)); err != nil {
			return stored, err
		}
		if err := j.cache.Invalidate(ctx, p.UserID, c.UserID); err != nil {
			log.Printf("Score cache invalidate failed for %d -> %d: %v", p.UserID, c.UserID, err)
		}
		stored++
		overall = append(overall, result.OverallScore)
	}

	return stored, j.repo.UpdateProfileQCS(ctx, p.UserID, ProfileQCS(overall, j.cfg.TopK))
}

// ProfileQCS is the rounded mean of the k best overall scores, 0 when there
// are none. k <= 0 means all of them.
func ProfileQCS(overall []int, k int) int {
	if len(overall) == 0 {
		return 0
	}
	sorted := append([]int(nil), overall...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	if k > 0 && len(sorted) > k {
		sorted = sorted[:k]
	}

	sum := 0
	for _, s := range sorted {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(sorted))))
}
