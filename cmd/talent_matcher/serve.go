package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes scoring, gap analysis, recommendations and resume extraction over REST.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg := server.ConfigFrom(rt.cfg)
	if servePort != 0 {
		cfg.Port = servePort
	}
	if !rt.cfg.Auth.Enabled() {
		rt.logger.Warn("auth.jwt_secret not set, cache invalidation endpoints are unauthenticated")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, rt.service, rt.logger)
	return srv.Start(ctx)
}
