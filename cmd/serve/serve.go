// Package serve implements the HTTP API command
package serve

import (
	"os"
	"os/signal"
	"syscall"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/api"
	"fjacquet/fintrack/internal/container"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve the import, review, rule and category endpoints over HTTP until
interrupted.

Example:
  fintrack serve --addr 127.0.0.1:8080`,
	RunE: runServe,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	appContainer, err := root.RequireContainer()
	if err != nil {
		return err
	}

	listenAddr := addr
	if listenAddr == "" {
		listenAddr = appContainer.GetConfig().Server.Addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.Serve(ctx, listenAddr, NewRouter(appContainer), appContainer.GetLogger())
}

// NewRouter builds the API router over the container's services.
func NewRouter(appContainer *container.Container) chi.Router {
	cfg := appContainer.GetConfig()
	db := appContainer.GetStore()
	logger := appContainer.GetLogger()

	return api.NewRouter(&api.Deps{
		Logger:             logger,
		ResponseHandler:    api.NewResponseHandler(logger),
		Importer:           appContainer.GetImporter(),
		Transactions:       db.Transactions(),
		Rules:              db.Rules(),
		Categories:         db.Categories(),
		DefaultInstitution: cfg.DefaultInstitution(),
		DefaultAccountType: cfg.DefaultAccountType(),
	})
}
