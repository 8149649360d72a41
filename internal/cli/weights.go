package cli

import (
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newWeightsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "weights",
		Short: "Print the effective scoring weights",
		Long: `Print the scoring table after the weights file is applied.

The table output is valid TOML and can be used as a starting point for
a custom weights file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := opts.weights()
			if err != nil {
				return err
			}
			if opts.outputFmt == "json" {
				return writeJSON(cmd.OutOrStdout(), w)
			}

			enc := toml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndentTables(true)
			return enc.Encode(w)
		},
	}
}
