// Package serve contains the command that runs the HTTP server.
package serve

import (
	"github.com/Gustitos/gustitosgo-backend/cmd/root"
	"github.com/Gustitos/gustitosgo-backend/internal/api"
	"github.com/Gustitos/gustitosgo-backend/internal/service"

	"github.com/spf13/cobra"
)

// Cmd is the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the report backend HTTP server",
	Long: `Load the chain directory and transaction snapshot, then serve the
report-generation API and generated report artifacts over HTTP.`,
	Run: serveFunc,
}

func serveFunc(cmd *cobra.Command, args []string) {
	logger := root.Logger()
	svc := service.New(root.Cfg, logger)
	server := api.NewServer(root.Cfg, svc, logger)

	if err := server.Start(); err != nil {
		root.Log.Fatalf("HTTP server failed: %v", err)
	}
}
