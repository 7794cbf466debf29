package main

import (
	"fmt"

	"github.com/jonathan/assessment-engine/internal/server"
	"github.com/spf13/cobra"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API bearer token",
	Long: `Issue an HS256 bearer token for the REST API, signed with server.jwt_secret
(JWT_SECRET) and valid for server.jwt_expiration_hours.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Name of the API client the token is issued to")
	_ = tokenCmd.MarkFlagRequired("subject")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	jwtCfg, err := appConfig.JWT()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	if jwtCfg == nil {
		return fmt.Errorf("JWT_SECRET is required to issue tokens")
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(tokenSubject)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
