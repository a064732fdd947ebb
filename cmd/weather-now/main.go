package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/i474232898/weather-now/internal/config"
	"github.com/i474232898/weather-now/internal/logging"
	"github.com/i474232898/weather-now/internal/view"
	"github.com/i474232898/weather-now/internal/weather"
	"github.com/i474232898/weather-now/internal/weather/providers"
)

// dotenvErr is reported once logging is configured.
var dotenvErr error

func main() {
	dotenvErr = config.LoadDotEnv()

	if err := newRootCommand(config.New()).Execute(); err != nil {
		log.Error().Err(err).Msg("weather-now failed")
		os.Exit(1)
	}
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:           "weather-now",
		Short:         "Current weather lookup widget",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	_ = v.BindPFlag(config.KeyLogLevel, root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newServeCommand(v),
		newTUICommand(v),
		newLookupCommand(v),
	)
	return root
}

// setup loads configuration, initialises logging and builds the weather service.
func setup(v *viper.Viper) (*config.AppConfig, *weather.Service, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}
	if err := logging.Init(cfg.LogLevel, nil); err != nil {
		return nil, nil, err
	}
	if dotenvErr != nil {
		log.Debug().Err(dotenvErr).Msg("no .env file loaded")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey,
		providers.WithBaseURL(cfg.OpenWeatherURL),
	)
	return cfg, weather.NewService(provider), nil
}

func viewOptions(cfg *config.AppConfig) view.Options {
	return view.Options{
		IconBaseURL: cfg.IconBaseURL,
		UnitLabel:   "C",
	}
}
