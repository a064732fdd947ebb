package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	KeyAPIKey        = "OPENWEATHER_API_KEY"
	KeyBaseURL       = "OPENWEATHER_BASE_URL"
	KeyIconBaseURL   = "WEATHER_ICON_BASE_URL"
	KeyHTTPTimeout   = "HTTP_TIMEOUT"
	KeyPort          = "PORT"
	KeySessionMax    = "SESSION_MAX_COUNT"
	KeySessionMaxAge = "SESSION_MAX_AGE"
	KeySweepInterval = "SESSION_SWEEP_INTERVAL"
	KeyLogLevel      = "LOG_LEVEL"
)

type AppConfig struct {
	// OpenWeatherAPIKey stays on the server; it is never sent to the browser.
	OpenWeatherAPIKey string `validate:"required"`
	OpenWeatherURL    string `validate:"required,url"`
	IconBaseURL       string `validate:"required,url"`

	// HTTPTimeout bounds outbound calls (0 = transport default).
	HTTPTimeout time.Duration `validate:"gte=0"`

	Port string `validate:"required,numeric"`

	// Session retention.
	SessionMaxCount      int           `validate:"gte=0"` // 0 = unlimited
	SessionMaxAge        time.Duration `validate:"gte=0"` // 0 = never expire
	SessionSweepInterval time.Duration `validate:"gte=0"`

	LogLevel string `validate:"oneof=trace debug info warn error"`
}

var validate = validator.New()

// New returns a viper instance with every default set and the environment bound.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyBaseURL, "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault(KeyIconBaseURL, "https://openweathermap.org/img/wn")
	v.SetDefault(KeyHTTPTimeout, "0s")
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeySessionMax, 1000)
	v.SetDefault(KeySessionMaxAge, "30m")
	v.SetDefault(KeySweepInterval, "5m")
	v.SetDefault(KeyLogLevel, "info")
	return v
}

// LoadDotEnv loads a .env file into the environment. Callers treat the
// returned error as informational: a missing file is normal.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// Load reads configuration from v (see New) and validates it.
func Load(v *viper.Viper) (*AppConfig, error) {
	cfg := &AppConfig{
		OpenWeatherAPIKey: strings.TrimSpace(v.GetString(KeyAPIKey)),
		OpenWeatherURL:    v.GetString(KeyBaseURL),
		IconBaseURL:       v.GetString(KeyIconBaseURL),
		Port:              v.GetString(KeyPort),
		SessionMaxCount:   v.GetInt(KeySessionMax),
		LogLevel:          strings.ToLower(v.GetString(KeyLogLevel)),
	}

	var err error
	if cfg.HTTPTimeout, err = getDuration(v, KeyHTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge, err = getDuration(v, KeySessionMaxAge); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = getDuration(v, KeySweepInterval); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func getDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return d, nil
}
