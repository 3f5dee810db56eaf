package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "MAKERSPACE_"

// defaultGRPCAddr applies only when MAKERSPACE_GRPC_ADDR is absent. Setting
// it to the empty string disables the listener.
const defaultGRPCAddr = ":9090"

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"GRPC_ADDR"` // empty disables the gRPC listener

	// DB
	Env    string `env:"ENV" envDefault:"dev"`                      // "dev" | "prod"
	DBPath string `env:"DB_PATH" envDefault:"./data/makerspace.db"` // e.g. "./data/makerspace.db"

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Controllers registered as enabled on a dev seed, on top of the
	// check-in and check-out controllers.
	KnownControllers []int `env:"KNOWN_CONTROLLERS" envSeparator:","`

	// Access log retention
	AccessLogRetentionDays int `env:"ACCESS_LOG_RETENTION_DAYS" envDefault:"0"` // 0 = keep forever
	PruneIntervalHours     int `env:"PRUNE_INTERVAL_HOURS" envDefault:"6"`

	// Volunteer hours
	CheckInController  int  `env:"CHECKIN_CONTROLLER" envDefault:"1"`
	CheckInDoor        int  `env:"CHECKIN_DOOR" envDefault:"1"`
	CheckOutController int  `env:"CHECKOUT_CONTROLLER" envDefault:"2"`
	CheckOutDoor       int  `env:"CHECKOUT_DOOR" envDefault:"2"`
	HoursIncludeDenied bool `env:"HOURS_INCLUDE_DENIED" envDefault:"false"`
	HoursMaxEvents     int  `env:"HOURS_MAX_EVENTS" envDefault:"50000"` // 0 = unbounded

	RateLimitRPM int `env:"RATE_LIMIT_RPM" envDefault:"600"` // 0 = off
}

// FromEnv reads MAKERSPACE_* variables from the process environment.
func FromEnv() (Config, error) {
	return load(nil)
}

// load parses environ instead of the process environment when it is non-nil.
func load(environ map[string]string) (Config, error) {
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix, Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("environment variables are invalid: %w", withEnvKeys(err))
	}
	if _, set := environ[envPrefix+"GRPC_ADDR"]; !set {
		cfg.GRPCAddr = defaultGRPCAddr
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env != "dev" && cfg.Env != "prod" {
		// fail-soft: treat unknown as dev
		cfg.Env = "dev"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// withEnvKeys rewrites parse failures to name the variable an operator sets
// rather than the Go field it lands in.
func withEnvKeys(err error) error {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return err
	}
	keys := envKeys()
	out := make([]error, 0, len(agg.Errors))
	for _, e := range agg.Errors {
		var pe env.ParseError
		if errors.As(e, &pe) {
			if key, ok := keys[pe.Name]; ok {
				e = fmt.Errorf("%s: %w", key, pe.Err)
			}
		}
		out = append(out, e)
	}
	return errors.Join(out...)
}

// envKeys maps Config field names to their prefixed variable names.
func envKeys() map[string]string {
	t := reflect.TypeOf(Config{})
	keys := make(map[string]string, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("env"), ",")
		if name != "" {
			keys[f.Name] = envPrefix + name
		}
	}
	return keys
}

func (c Config) Validate() error {
	var errs []error
	for _, f := range []struct {
		name string
		v    int
	}{
		{"CHECKIN_CONTROLLER", c.CheckInController},
		{"CHECKIN_DOOR", c.CheckInDoor},
		{"CHECKOUT_CONTROLLER", c.CheckOutController},
		{"CHECKOUT_DOOR", c.CheckOutDoor},
	} {
		if f.v <= 0 {
			errs = append(errs, fmt.Errorf("%s%s must be positive, got %d", envPrefix, f.name, f.v))
		}
	}
	for _, f := range []struct {
		name string
		v    int
	}{
		{"ACCESS_LOG_RETENTION_DAYS", c.AccessLogRetentionDays},
		{"PRUNE_INTERVAL_HOURS", c.PruneIntervalHours},
		{"HOURS_MAX_EVENTS", c.HoursMaxEvents},
		{"RATE_LIMIT_RPM", c.RateLimitRPM},
	} {
		if f.v < 0 {
			errs = append(errs, fmt.Errorf("%s%s must not be negative, got %d", envPrefix, f.name, f.v))
		}
	}
	for _, ctrl := range c.KnownControllers {
		if ctrl <= 0 {
			errs = append(errs, fmt.Errorf("%sKNOWN_CONTROLLERS entries must be positive, got %d", envPrefix, ctrl))
		}
	}
	if c.CheckInController == c.CheckOutController && c.CheckInDoor == c.CheckOutDoor {
		errs = append(errs, errors.New("check-in and check-out readers must differ"))
	}
	if strings.TrimSpace(c.HTTPAddr) == "" {
		errs = append(errs, fmt.Errorf("%sHTTP_ADDR is required", envPrefix))
	}
	return errors.Join(errs...)
}

// SeedControllers lists the controllers a dev database is seeded with.
func (c Config) SeedControllers() []int {
	out := []int{c.CheckInController}
	if c.CheckOutController != c.CheckInController {
		out = append(out, c.CheckOutController)
	}
	for _, k := range c.KnownControllers {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}
