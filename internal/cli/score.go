package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/common/utils"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/compatibility"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/dating"
)

func newScoreCmd(opts *options) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "score <profile-a.json> <profile-b.json>",
		Short: "Score two profile files against each other",
		Long: `Score profile A against profile B without touching the database.

Each file holds one profile:
  {"height": 175, "date_of_birth": "1995-05-15",
   "qualities": {...}, "requirements": {...}}

Qualities and requirements may also be JSON strings holding serialized JSON.
Unreadable fields are scored as empty and reported on stderr.

Examples:
  qcs score alice.json bob.json
  qcs score alice.json bob.json --at 2026-01-01 -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := opts.weights()
			if err != nil {
				return err
			}

			now := time.Now()
			if at != "" {
				if now, err = time.Parse("2006-01-02", at); err != nil {
					return fmt.Errorf("invalid --at date: %w", err)
				}
			}

			a, err := readProfile(args[0])
			if err != nil {
				return err
			}
			b, err := readProfile(args[1])
			if err != nil {
				return err
			}

			scorer := compatibility.NewScorer(w, compatibility.WithClock(func() time.Time { return now }))
			result, issues := scorer.ScoreRaw(a.Raw(), b.Raw())
			for _, issue := range issues {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v (scored as empty)\n", issue)
			}

			return render(cmd.OutOrStdout(), opts.outputFmt, result)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "evaluate ages as of this date (YYYY-MM-DD, default today)")
	return cmd
}

func readProfile(path string) (*dating.ProfilePayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p dating.ProfilePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := utils.ValidateStruct(&p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}
