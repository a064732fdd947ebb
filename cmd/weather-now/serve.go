package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	httpapi "github.com/i474232898/weather-now/internal/api/http"
	"github.com/i474232898/weather-now/internal/config"
	"github.com/i474232898/weather-now/internal/controller"
	"github.com/i474232898/weather-now/internal/scheduler"
	"github.com/i474232898/weather-now/internal/store"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the widget page and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, service, err := setup(v)
			if err != nil {
				return err
			}

			// One controller per browser page session.
			sessions := store.NewMemoryStore(cfg.SessionMaxCount, cfg.SessionMaxAge, func() *controller.Controller {
				return controller.New(service)
			})

			sched := scheduler.New(cfg.SessionSweepInterval, sessions)
			if err := sched.Start(); err != nil {
				return err
			}
			defer sched.Stop()

			app := httpapi.NewApp(httpapi.Deps{
				Weather:  service,
				Sessions: sessions,
				View:     viewOptions(cfg),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.Info().Str("port", cfg.Port).Msg("listening")
				return app.Listen(":" + cfg.Port)
			})
			g.Go(func() error {
				<-gctx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := app.ShutdownWithContext(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("error during shutdown")
				}
				return nil
			})

			return g.Wait()
		},
	}

	cmd.Flags().String("port", "", "port to listen on")
	_ = v.BindPFlag(config.KeyPort, cmd.Flags().Lookup("port"))
	return cmd
}
