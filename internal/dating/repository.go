// internal/dating/repository.go

package dating

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrProfileNotFound = errors.New("profile not found")

type Repository interface {
	// Profiles
	GetProfile(ctx context.Context, userID int64) (*ProfileSnapshot, error)
	ListActiveProfiles(ctx context.Context, afterID int64, limit int) ([]*ProfileSnapshot, error)
	FindCandidates(ctx context.Context, userID int64, filters *CandidateFilters) ([]*ProfileSnapshot, error)
	UpdateProfileQCS(ctx context.Context, userID int64, score int) error

	// Pair scores
	UpsertPairScore(ctx context.Context, score *PairScore) error
	GetPairScore(ctx context.Context, userID, candidateID int64) (*PairScore, error)
	GetTopPairScores(ctx context.Context, userID int64, limit int) ([]*PairScore, error)
	DeleteStalePairScores(ctx context.Context, olderThan time.Time) (int64, error)

	// Sync runs
	CreateSyncRun(ctx context.Context, run *SyncRun) error
	FinishSyncRun(ctx context.Context, run *SyncRun) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const profileColumns = `user_id, display_name, height, date_of_birth, qualities,
        requirements, is_active, qcs_score, updated_at`

// Profile Methods

func (r *postgresRepository) GetProfile(ctx context.Context, userID int64) (*ProfileSnapshot, error) {
	var p ProfileSnapshot
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	err := r.db.GetContext(ctx, &p, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActiveProfiles pages through active profiles by keyset on user_id.
func (r *postgresRepository) ListActiveProfiles(ctx context.Context, afterID int64, limit int) ([]*ProfileSnapshot, error) {
	var profiles []*ProfileSnapshot
	query := `
        SELECT ` + profileColumns + `
        FROM profiles
        WHERE is_active = true AND user_id > $1
        ORDER BY user_id
        LIMIT $2
    `
	err := r.db.SelectContext(ctx, &profiles, query, afterID, limit)
	return profiles, err
}

func (r *postgresRepository) FindCandidates(ctx context.Context, userID int64, filters *CandidateFilters) ([]*ProfileSnapshot, error) {
	var candidates []*ProfileSnapshot
	query := `
        SELECT ` + profileColumns + `
        FROM profiles
        WHERE is_active = true
          AND user_id <> $1
        ORDER BY last_active DESC NULLS LAST, user_id
        LIMIT $2
    `
	err := r.db.SelectContext(ctx, &candidates, query, userID, filters.Limit)
	return candidates, err
}

func (r *postgresRepository) UpdateProfileQCS(ctx context.Context, userID int64, score int) error {
	query := `
        UPDATE profiles
        SET qcs_score = $2, qcs_updated_at = NOW()
        WHERE user_id = $1
    `
	res, err := r.db.ExecContext(ctx, query, userID, score)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// Pair Score Methods

func (r *postgresRepository) UpsertPairScore(ctx context.Context, score *PairScore) error {
	query := `
        INSERT INTO compatibility_scores (
            user_id, candidate_id, physical_score, mental_score, overall_score,
            shared_interests, reasons, computed_at
        ) VALUES (:user_id, :candidate_id, :physical_score, :mental_score, :overall_score,
            :shared_interests, :reasons, :computed_at)
        ON CONFLICT (user_id, candidate_id) DO UPDATE SET
            physical_score = EXCLUDED.physical_score,
            mental_score = EXCLUDED.mental_score,
            overall_score = EXCLUDED.overall_score,
            shared_interests = EXCLUDED.shared_interests,
            reasons = EXCLUDED.reasons,
            computed_at = EXCLUDED.computed_at
    `
	_, err := r.db.NamedExecContext(ctx, query, score)
	return err
}

const pairScoreColumns = `user_id, candidate_id, physical_score, mental_score, overall_score,
        shared_interests, reasons, computed_at`

// GetPairScore returns nil, nil when the pair has never been scored.
func (r *postgresRepository) GetPairScore(ctx context.Context, userID, candidateID int64) (*PairScore, error) {
	var s PairScore
	query := `SELECT ` + pairScoreColumns + ` FROM compatibility_scores
        WHERE user_id = $1 AND candidate_id = $2`

	err := r.db.GetContext(ctx, &s, query, userID, candidateID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetTopPairScores returns userID's stored scores, best first.
func (r *postgresRepository) GetTopPairScores(ctx context.Context, userID int64, limit int) ([]*PairScore, error) {
	var scores []*PairScore
	query := `
        SELECT ` + pairScoreColumns + `
        FROM compatibility_scores
        WHERE user_id = $1
        ORDER BY overall_score DESC, mental_score DESC, candidate_id
        LIMIT $2
    `
	err := r.db.SelectContext(ctx, &scores, query, userID, limit)
	return scores, err
}

func (r *postgresRepository) DeleteStalePairScores(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM compatibility_scores WHERE computed_at < $1`, olderThan)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Sync Run Methods

func (r *postgresRepository) CreateSyncRun(ctx context.Context, run *SyncRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	query := `
        INSERT INTO qcs_sync_runs (id, status, started_at)
        VALUES ($1, $2, $3)
    `
	_, err := r.db.ExecContext(ctx, query, run.ID, run.Status, run.StartedAt)
	return err
}

func (r *postgresRepository) FinishSyncRun(ctx context.Context, run *SyncRun) error {
	query := `
        UPDATE qcs_sync_runs
        SET status = $2, profiles_processed = $3, pairs_scored = $4,
            failures = $5, finished_at = $6
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.Status, run.ProfilesProcessed, run.PairsScored,
		run.Failures, run.FinishedAt,
	)
	return err
}
