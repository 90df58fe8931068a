package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"animal-shelter/internal/config"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/router"
	"animal-shelter/internal/session"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "shelter-api",
		Short: "API de gestión del refugio de animales",
	}

	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log := logger.New(logger.Options{
				Level:  logger.ParseLevel(cfg.Log.Level),
				Format: logger.ParseFormat(cfg.Log.Format),
				App:    "animal-shelter",
			})

			store := session.NewStore(cfg.Session.File)
			if err := store.Load(); err != nil {
				// sesión corrupta o ilegible: se arranca sin sesión
				log.Warn("session restore failed", map[string]any{"error": err.Error()})
			}

			r := router.NewRouter(router.Options{
				Config: cfg,
				Logger: log,
				Store:  store,
			})

			srv := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      r,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			log.Info("starting server", map[string]any{"addr": srv.Addr})
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}
