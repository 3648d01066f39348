package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pg_console/internal/platform/config"
	"github.com/SscSPs/pg_console/internal/utils"
	"github.com/spf13/cobra"
)

func tokenCmd(getConfig func() *config.Config) *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			if cfg.IsProduction {
				return errors.New("token minting is disabled in production")
			}
			if userID == "" {
				return errors.New("--user is required")
			}
			if ttl <= 0 {
				ttl = cfg.JWTExpiryDuration
			}
			token, err := utils.GenerateJWT(userID, cfg.JWTSecret, ttl, cfg.JWTIssuer)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id to put in the token subject, e.g. demo-manager")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")
	return cmd
}
