package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/regime7/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [input-file]",
	Short: "Serve projections of a configuration over HTTP",
	Long: `Serve projections of a configuration over HTTP.

Endpoints:
  GET  /api/health
  GET  /api/scenarios
  GET  /api/scenarios/{name}           ?currency=source for household currency
  GET  /api/scenarios/{name}/csv       ?view=full|regime|post|sources
  GET  /api/scenarios/{name}/pdf
  POST /api/projection                 JSON configuration body`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(args[0])
		addr, _ := cmd.Flags().GetString("addr")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Serving %d scenarios from %s on %s\n", len(cfg.Scenarios), args[0], addr)
		if err := server.New(cfg, newEngine(cmd)).ListenAndServe(ctx, addr); err != nil {
			log.Fatal(err)
		}
	},
}
