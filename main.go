// NetCanvas — network-topology inventory editor: REST backend + canvas tooling.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/villeh/netcanvas/internal/canvas"
	"github.com/villeh/netcanvas/internal/client"
	"github.com/villeh/netcanvas/internal/config"
	"github.com/villeh/netcanvas/internal/server"
)

const version = "v0.1.0"

func main() {
	root := &cobra.Command{
		Use:          "netcanvas",
		Short:        "NetCanvas — network-topology inventory editor",
		Long:         `NetCanvas stores a network topology (devices and the links between them) and serves the REST API and canvas UI used to edit it.`,
		SilenceUsage: true,
	}

	// ── server subcommand ─────────────────────────────────────────────────────
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Start the NetCanvas API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			db, err := server.Open(cfg)
			if err != nil {
				return fmt.Errorf("initializing database: %w", err)
			}

			gin.SetMode(gin.ReleaseMode)
			engine := gin.New()
			engine.Use(gin.Recovery(), server.CORSMiddleware(cfg.Origins()))

			api := server.NewAPI(server.NewStore(db))
			api.RegisterRoutes(engine)
			server.RegisterStaticFiles(engine)

			addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.Port)
			fmt.Printf("NetCanvas %s\n", version)
			fmt.Printf("  ✓ API + canvas UI → http://%s\n\n", addr)

			srv := &http.Server{Addr: addr, Handler: engine}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt)

			select {
			case err := <-errCh:
				return err
			case <-quit:
				fmt.Println("\n  → Shutting down gracefully…")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}

	// ── layout subcommand ─────────────────────────────────────────────────────
	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Recompute positions for every device on a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if base, _ := cmd.Flags().GetString("api"); base != "" {
				cfg.APIBaseURL = base
			}

			ctrl := canvas.New(client.New(cfg.APIBaseURL), canvas.NewNotifier(4*time.Second, nil))
			ctx := cmd.Context()
			if err := ctrl.Reload(ctx); err != nil {
				return fmt.Errorf("loading topology: %w", err)
			}
			if err := ctrl.AutoLayout(ctx); err != nil {
				return err
			}
			fmt.Printf("  ✓ Re-laid out %d devices\n", len(ctrl.Nodes()))
			return nil
		},
	}
	layoutCmd.Flags().String("api", "", "API base URL, e.g. http://localhost:3001/api (overrides config)")

	// ── version subcommand ────────────────────────────────────────────────────
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print NetCanvas version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("NetCanvas %s\n", version)
		},
	}

	root.AddCommand(serverCmd, layoutCmd, versionCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
