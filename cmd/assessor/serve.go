package main

import (
	"context"
	"fmt"

	"github.com/jonathan/assessment-engine/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the resume and interview scoring endpoints.
When server.jwt_secret (JWT_SECRET) is set every route except /health requires a
bearer token issued by the token command.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	jwtCfg, err := appConfig.JWT()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	if jwtCfg == nil {
		logger.Warn("JWT_SECRET is not set, the API is unauthenticated")
	}

	port := appConfig.Server.Port
	if servePort != 0 {
		port = servePort
	}

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer closeEngine(engine)

	srv := server.New(engine, server.Config{Port: port, JWT: jwtCfg}, logger)
	return srv.Start(ctx)
}
