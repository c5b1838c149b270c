package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"immich-stacker/internal/immich"
)

// defaultServerURL is where a locally hosted immich server listens.
const defaultServerURL = "http://localhost:2283"

// Config is the top-level configuration struct, loaded via TOML decoding of
// the file named by --config (or the first of
// ~/.config/immich-stacker/config.toml and ./immich-stacker.toml that
// exists).
//
// The [immich] section may be left out entirely and provided through the
// IMMICH_URL and IMMICH_API_KEY environment variables instead; explicit file
// values win over the environment.
type Config struct {
	immich.Config
	Stacking StackingConfig `toml:"stacking"`
	Logging  LoggingConfig  `toml:"logging"`
}

// StackingConfig tunes how stack primaries are selected.
type StackingConfig struct {
	// PreferredExtensions lists the extensions that win primary selection,
	// most preferred first. Defaults to the JPEG extensions.
	PreferredExtensions []string `toml:"preferred_extensions"`
}

// LoggingConfig controls the default logger.
type LoggingConfig struct {
	// Level is the minimum level to log: debug, info, warn, or error.
	Level string `toml:"level"`
	// Format selects the handler: json or text.
	Format string `toml:"format"`
}

// LoadConfig loads the configuration from path, or from the default search
// locations when path is empty. A missing file is only an error when it was
// named explicitly; the environment alone can configure the client.
func LoadConfig(path string) (*Config, error) {
	conf := defaultConfig()

	configFilePath, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	if configFilePath != "" {
		if _, err := toml.DecodeFile(configFilePath, &conf); err != nil {
			return nil, fmt.Errorf("decode %s: %w", configFilePath, err)
		}
	}

	// Load values from environment variables. File values win.
	conf.Remote.HydrateFromEnv()
	if conf.Remote.URL == "" {
		conf.Remote.URL = defaultServerURL
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// defaultConfig seeds the defaults that TOML decoding and env hydration then
// override.
func defaultConfig() Config {
	var conf Config
	conf.Cache.Enabled = true
	conf.Cache.Size = immich.HumanBytes(8 << 20)
	conf.Logging.Level = "info"
	conf.Logging.Format = "json"
	return conf
}

// resolveConfigPath returns the config file to load, or "" when none exists.
func resolveConfigPath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return path, nil
	}
	for _, candidate := range defaultConfigPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func defaultConfigPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "immich-stacker", "config.toml"))
	}
	return append(paths, "immich-stacker.toml")
}

func (c Config) validate() error {
	if c.Remote.APIKey == "" {
		return errors.New("no api key configured: set api_key in the config file or IMMICH_API_KEY")
	}
	return nil
}

// newLogger builds the run's logger from the logging config. Each -v on the
// command line lowers the minimum level by one step.
func newLogger(conf LoggingConfig, verbosity int) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(conf.Level)); err != nil {
		return nil, fmt.Errorf("logging level %q: %w", conf.Level, err)
	}
	level -= slog.Level(4 * verbosity)

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch conf.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("logging format %q: expected json or text", conf.Format)
	}
	return slog.New(handler), nil
}

// Run parses the command line and executes the stacking run.
func Run() error {
	return newRootCommand().Execute()
}

// run is the body of the root command once flags are parsed.
func run(flags rootFlags) error {
	conf, err := LoadConfig(flags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := newLogger(conf.Logging, flags.verbosity)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	slog.SetDefault(logger)
	// Debug level since conf has sensitive values.
	slog.Debug("loaded config", "config", conf)

	if flags.stack {
		release, err := acquireRunLock()
		if err != nil {
			return err
		}
		defer release()
	}

	client := immich.NewClient(
		immich.WithRemote(conf.Remote),
		immich.WithMemoCache(conf.Cache),
	)
	diagnostics := client.Diagnostics()
	slog.Debug("client diagnostics", "diagnostics", diagnostics)
	if diagnostics.RemoteConnectedError != nil {
		return fmt.Errorf("immich server unreachable: %w", diagnostics.RemoteConnectedError)
	}

	runner := NewStacker(client, conf.Stacking, flags.stack, os.Stdout)
	switch {
	case flags.album != "":
		err = runner.RunAlbum(flags.album)
	case flags.allAlbums:
		err = runner.RunAllAlbums()
	default:
		err = runner.RunDuplicates()
	}
	runner.PrintSummary()
	return err
}
