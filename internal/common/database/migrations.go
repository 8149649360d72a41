// internal/common/database/migrations.go
// Schema for profiles, pair scores and sync runs

package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

// Migrations are idempotent and run in order on every boot.
var Migrations = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
            user_id BIGINT PRIMARY KEY,
            display_name VARCHAR(100) NOT NULL DEFAULT '',
            height NUMERIC(5,1),
            date_of_birth DATE,
            qualities TEXT,
            requirements TEXT,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            qcs_score INTEGER,
            qcs_updated_at TIMESTAMP WITH TIME ZONE,
            last_active TIMESTAMP WITH TIME ZONE,
            updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,

	`CREATE TABLE IF NOT EXISTS compatibility_scores (
            user_id BIGINT NOT NULL REFERENCES profiles(user_id) ON DELETE CASCADE,
            candidate_id BIGINT NOT NULL REFERENCES profiles(user_id) ON DELETE CASCADE,
            physical_score SMALLINT NOT NULL CHECK (physical_score BETWEEN 0 AND 100),
            mental_score SMALLINT NOT NULL CHECK (mental_score BETWEEN 0 AND 100),
            overall_score SMALLINT NOT NULL CHECK (overall_score BETWEEN 0 AND 100),
            shared_interests TEXT[] NOT NULL DEFAULT '{}',
            reasons TEXT[] NOT NULL DEFAULT '{}',
            computed_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (user_id, candidate_id),
            CHECK (user_id <> candidate_id)
        )`,

	`CREATE TABLE IF NOT EXISTS qcs_sync_runs (
            id UUID PRIMARY KEY,
            status VARCHAR(20) NOT NULL,
            profiles_processed INTEGER NOT NULL DEFAULT 0,
            pairs_scored INTEGER NOT NULL DEFAULT 0,
            failures INTEGER NOT NULL DEFAULT 0,
            started_at TIMESTAMP WITH TIME ZONE NOT NULL,
            finished_at TIMESTAMP WITH TIME ZONE
        )`,

	`CREATE INDEX IF NOT EXISTS idx_profiles_active ON profiles(is_active, last_active DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_user_overall ON compatibility_scores(user_id, overall_score DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_computed ON compatibility_scores(computed_at)`,
}

// RunMigrations executes every migration, stopping at the first failure.
func RunMigrations(ctx context.Context, db *sqlx.DB) error {
	for i, migration := range Migrations {
		log.Printf("   - Running migration %d/%d...", i+1, len(Migrations))
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	log.Println("   ✅ All migrations executed successfully")
	return nil
}
