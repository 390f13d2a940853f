package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/gitwrapped/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP endpoint.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve wrapped results over HTTP",
	Long: `Start an HTTP server that returns wrapped results as JSON.

Endpoints:
  GET /api/github/{username}   wrapped result (optional ?year=YYYY&explain=true)
  GET /healthz                 liveness probe

Responses are cacheable by a CDN for an hour and may be served stale for a day
while revalidating. Failed lookups return {"error": ..., "rateLimit": ...}.

Examples:
  gitwrapped serve --addr :8080
  curl localhost:8080/api/github/octocat`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.StartServer(ctx, cfg, cacheManager)
	},
}
