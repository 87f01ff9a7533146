package main

import (
	"fmt"

	"github.com/gartstein/connectify/internal/addressbook/auth"
	"github.com/gartstein/connectify/internal/addressbook/config"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     = auth.DefaultTokenTTL
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a JWT for calling the mutating endpoints",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		token, err := auth.GenerateToken(tokenSubject, cfg.JWTSecret, tokenTTL)
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "local-user", "subject claim of the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", auth.DefaultTokenTTL, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
