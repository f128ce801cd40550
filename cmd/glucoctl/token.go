package main

import (
	"fmt"
	"time"

	"github.com/localnerve/glucodb/internal/services"
	"github.com/spf13/cobra"
)

func init() {
	var subject, secret string
	var ttl time.Duration

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token for local testing (AUTH_MODE=jwt)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				secret = cfg.JWTSecret
			}
			token, err := services.IssueToken(secret, subject, ttl)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	tokenCmd.Flags().StringVarP(&subject, "subject", "s", "", "user id to put in the sub claim (required)")
	tokenCmd.Flags().StringVar(&secret, "secret", "", "signing secret (defaults to JWT_SECRET)")
	tokenCmd.Flags().DurationVarP(&ttl, "ttl", "t", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(tokenCmd)
}
