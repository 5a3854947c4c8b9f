package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/server"
)

var (
	tokenSubject string
	tokenScope   string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the cache invalidation endpoints",
	Long:  `Sign a JWT with auth.jwt_secret. The token carries the cache:invalidate scope unless --scope says otherwise.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Token subject, e.g. the calling service (required)")
	tokenCmd.Flags().StringVar(&tokenScope, "scope", server.ScopeInvalidate, "Space-separated scopes")

	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Auth.Enabled() {
		return errors.New("auth.jwt_secret is not set (MATCHER_AUTH_JWT_SECRET)")
	}

	token, err := server.NewJWTService(cfg.Auth).GenerateToken(tokenSubject, tokenScope)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
