package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/compatibility"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/config"
)

var (
	// Version info set from main
	version = "dev"
	commit  = "unknown"
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c string) {
	version = v
	commit = c
}

// options are the global flags shared by every subcommand.
type options struct {
	weightsFile string
	outputFmt   string
}

// NewRootCmd builds the qcs command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "qcs",
		Short: "Compatibility scoring toolkit",
		Long: `qcs scores dating profiles against each other and maintains the
per-profile QCS (quality compatibility score).

It provides:
  - Offline scoring of two profile JSON files
  - A one-shot bulk sync against the profiles database
  - Inspection of the effective scoring weights`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is normal outside development.
			_ = godotenv.Load()
			if opts.weightsFile == "" {
				opts.weightsFile = config.Load().ScoringWeightsFile
			}
		},
	}

	root.PersistentFlags().StringVarP(&opts.weightsFile, "weights", "w", "",
		"scoring weights TOML file (default: $SCORING_WEIGHTS_FILE or built-in)")
	root.PersistentFlags().StringVarP(&opts.outputFmt, "output", "o", "table",
		"output format (table, json)")

	root.AddCommand(
		newScoreCmd(opts),
		newSyncCmd(opts),
		newWeightsCmd(opts),
		newTokenCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) weights() (compatibility.Weights, error) {
	w, err := config.LoadWeights(o.weightsFile)
	if err != nil {
		return w, fmt.Errorf("load weights: %w", err)
	}
	return w, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qcs %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", commit)
		},
	}
}
