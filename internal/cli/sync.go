package cli

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/common/database"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/compatibility"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/config"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/dating"
)

func newSyncCmd(opts *options) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Recompute pair scores and QCS for every active profile",
		Long: `Run one bulk QCS sync against $DATABASE_URL and wait for it to finish.

Examples:
  qcs sync
  qcs sync --workers 16`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()
			if workers > 0 {
				cfg.SyncWorkers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			w, err := opts.weights()
			if err != nil {
				return err
			}

			db, err := database.NewPostgresDBFromURL(ctx, cfg.DatabaseURL, database.DefaultPool)
			if err != nil {
				return err
			}
			defer db.Close()

			var redisClient *redis.Client
			if cfg.RedisURL != "" {
				if redisClient, err = database.NewRedisClientFromURL(ctx, cfg.RedisURL); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, continuing without cache\n", err)
					redisClient = nil
				} else {
					defer redisClient.Close()
				}
			}

			svc := dating.NewService(
				dating.NewPostgresRepository(db),
				dating.NewRedisScoreCache(redisClient, cfg.ScoreCacheTTL),
				dating.NewMatchingEngine(compatibility.NewScorer(w)),
				dating.ServiceConfig{
					CandidatePool:  cfg.CandidatePool,
					SyncWorkers:    cfg.SyncWorkers,
					SyncPageSize:   cfg.SyncPageSize,
					TopK:           cfg.QCSTopK,
					ScoreRetention: cfg.ScoreRetention,
				},
			)

			run, err := svc.SyncScores(ctx)
			if run != nil {
				if rerr := render(cmd.OutOrStdout(), opts.outputFmt, run); rerr != nil {
					return rerr
				}
			}
			return err
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent profiles (default: $QCS_SYNC_WORKERS)")
	return cmd
}
