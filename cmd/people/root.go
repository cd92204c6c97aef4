package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/arvarik/people-go/internal/config"
	"github.com/arvarik/people-go/people"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	baseURL    string
	token      string
	timeout    time.Duration
	rateLimit  float64
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:           "people",
		Short:         "People API client",
		Long:          `people lists, queries, creates and deletes records of a REST people collection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&flags.baseURL, "base-url", "", "collection URL, ending with a slash")
	pf.StringVar(&flags.token, "token", "", "bearer token for write operations")
	pf.DurationVar(&flags.timeout, "timeout", 0, "per-request timeout (0 disables)")
	pf.Float64Var(&flags.rateLimit, "rate-limit", 0, "maximum requests per second (0 disables)")
	pf.StringVar(&flags.logLevel, "log", "", "sets the log level")

	rootCmd.AddCommand(
		newListCmd(&flags),
		newGetCmd(&flags),
		newQueryCmd(&flags),
		newByIPCmd(&flags),
		newAddCmd(&flags),
		newDeleteCmd(&flags),
		newDeleteByNameCmd(&flags),
		newImportCmd(&flags),
	)

	return rootCmd
}

// loadConfig layers defaults, the config file, the environment and
// explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		var err error
		cfg, err = config.LoadFromFile(flags.configPath)
		if err != nil {
			return config.Config{}, err
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return config.Config{}, err
	}

	pf := cmd.Flags()
	if pf.Changed("base-url") {
		cfg.BaseURL = flags.baseURL
	}
	if pf.Changed("token") {
		cfg.Token = flags.token
	}
	if pf.Changed("timeout") {
		cfg.Timeout = flags.timeout
	}
	if pf.Changed("rate-limit") {
		cfg.RateLimit = flags.rateLimit
	}
	if pf.Changed("log") {
		cfg.LogLevel = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newClient builds a people client from the resolved configuration.
func newClient(cmd *cobra.Command, flags *globalFlags) (*people.Client, error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}

	setLogging(cfg.LogLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	opts := []people.Option{
		people.WithLogger(logger),
		people.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, people.WithRateLimit(rate.Limit(cfg.RateLimit), 1))
	}

	client := people.NewClient(cfg.BaseURL, cfg.Token, opts...)
	logger.Debug().Stringer("client", client).Msg("client configured")

	return client, nil
}

func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// openInput returns stdin for "-" and the named file otherwise.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	return f, nil
}
