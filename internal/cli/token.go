package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/common/utils"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/config"
)

func newTokenCmd() *cobra.Command {
	var (
		userID int64
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for local testing",
		Long: `Mint a bearer token signed with $JWT_SECRET.

Examples:
  qcs token --user 1
  qcs token --user 1 --role admin --ttl 15m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.IsProduction() {
				return fmt.Errorf("refusing to mint tokens in production")
			}

			tok, err := utils.GenerateJWT(utils.NewAccessClaims(userID, role, ttl), cfg.JWTSecret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user ID to embed")
	cmd.Flags().StringVar(&role, "role", utils.RoleUser, "role claim (user, admin)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
