// Package config loads tt settings from ~/.config/timetrack/config.toml and
// TIMETRACK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/timetrack-cli/internal/duration"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

const (
	configName = "config"
	configType = "toml"
	appDirName = "timetrack"

	ProfilesPathKey   = "profiles.path"
	SecretsDirKey     = "secrets.dir"
	SecretsBackendKey = "secrets.backend"
	FormatKey         = "display.format"
	DecimalPlacesKey  = "display.decimal_places"
	LocaleKey         = "display.locale"
	IntervalKey       = "watch.interval"
	PollIntervalKey   = "watch.poll_interval"
	LogLevelKey       = "log.level"
	BaseURLKey        = "api.base_url"
	TokenKey          = "api.token"
	WebAppURLKey      = "api.web_app_url"

	DefaultBaseURL      = "http://127.0.0.1:8080"
	DefaultWebAppURL    = "http://127.0.0.1:5173"
	DefaultPollInterval = 30 * time.Second
)

var envBindings = map[string]string{
	BaseURLKey:        "TIMETRACK_API_BASE_URL",
	TokenKey:          "TIMETRACK_API_TOKEN",
	WebAppURLKey:      "TIMETRACK_WEB_APP_URL",
	PollIntervalKey:   "TIMETRACK_POLL_INTERVAL",
	LogLevelKey:       "TIMETRACK_LOG_LEVEL",
	FormatKey:         "TIMETRACK_DURATION_FORMAT",
	ProfilesPathKey:   "TIMETRACK_PROFILES_PATH",
	SecretsBackendKey: "TIMETRACK_SECRET_BACKEND",
}

// Secret backends. Auto tries pass first and falls back to files.
const (
	SecretsAuto = "auto"
	SecretsPass = "pass"
	SecretsFile = "file"
)

type Display struct {
	Format        duration.Format
	DecimalPlaces int
	Locale        language.Tag
}

// Options returns the formatter options matching d.
func (d Display) Options() []duration.Option {
	return []duration.Option{
		duration.DecimalPlaces(d.DecimalPlaces),
		duration.Locale(d.Locale),
	}
}

type Watch struct {
	Interval     time.Duration
	PollInterval time.Duration
}

// API holds connection settings that override the selected profile. Empty
// fields leave the profile untouched.
type API struct {
	BaseURL   string
	Token     string
	WebAppURL string
}

type Config struct {
	Dir          string
	File         string
	ProfilesPath string
	SecretsDir   string
	Secrets      string
	Display      Display
	Watch        Watch
	LogLevel     log.Level
	API          API
}

// Load reads the config file (explicit path or the default location) into v
// and resolves it. A missing default config file is not an error.
func Load(v *viper.Viper, explicitFile string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	dir, err := DefaultDir()
	if err != nil {
		return Config{}, err
	}

	v.SetDefault(ProfilesPathKey, filepath.Join(dir, "profiles.toml"))
	v.SetDefault(SecretsDirKey, filepath.Join(dir, "secrets"))
	v.SetDefault(SecretsBackendKey, SecretsAuto)
	v.SetDefault(FormatKey, string(duration.FormatClock))
	v.SetDefault(DecimalPlacesKey, 2)
	v.SetDefault(LocaleKey, duration.DefaultLocale.String())
	v.SetDefault(IntervalKey, "1s")
	v.SetDefault(PollIntervalKey, "30")
	v.SetDefault(LogLevelKey, "warn")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return resolve(v, dir)
}

func resolve(v *viper.Viper, dir string) (Config, error) {
	cfg := Config{
		Dir:          dir,
		File:         v.ConfigFileUsed(),
		ProfilesPath: expandHome(v.GetString(ProfilesPathKey)),
		SecretsDir:   expandHome(v.GetString(SecretsDirKey)),
		API: API{
			BaseURL:   strings.TrimSpace(v.GetString(BaseURLKey)),
			Token:     strings.TrimSpace(v.GetString(TokenKey)),
			WebAppURL: strings.TrimSpace(v.GetString(WebAppURLKey)),
		},
	}
	// keep the resolved path visible to the profile repository
	v.Set(ProfilesPathKey, cfg.ProfilesPath)

	switch backend := strings.ToLower(strings.TrimSpace(v.GetString(SecretsBackendKey))); backend {
	case SecretsAuto, SecretsPass, SecretsFile:
		cfg.Secrets = backend
	default:
		return Config{}, fmt.Errorf("%s: unknown backend %q", SecretsBackendKey, backend)
	}

	format, err := duration.ParseFormat(v.GetString(FormatKey))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", FormatKey, err)
	}
	cfg.Display.Format = format

	places := v.GetInt(DecimalPlacesKey)
	if places < 0 {
		return Config{}, fmt.Errorf("%s: must not be negative", DecimalPlacesKey)
	}
	cfg.Display.DecimalPlaces = places

	locale, err := language.Parse(v.GetString(LocaleKey))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", LocaleKey, err)
	}
	cfg.Display.Locale = locale

	if cfg.Watch.Interval, err = ParseInterval(v.GetString(IntervalKey)); err != nil {
		return Config{}, fmt.Errorf("%s: %w", IntervalKey, err)
	}
	if cfg.Watch.PollInterval, err = ParseInterval(v.GetString(PollIntervalKey)); err != nil {
		return Config{}, fmt.Errorf("%s: %w", PollIntervalKey, err)
	}

	if cfg.LogLevel, err = log.ParseLevel(strings.ToLower(v.GetString(LogLevelKey))); err != nil {
		return Config{}, fmt.Errorf("%s: %w", LogLevelKey, err)
	}

	return cfg, nil
}

// ParseInterval accepts Go durations ("1500ms") and bare integers, which are
// seconds as in TIMETRACK_POLL_INTERVAL=30.
func ParseInterval(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("interval is empty")
	}

	var interval time.Duration
	if seconds, err := strconv.Atoi(raw); err == nil {
		interval = time.Duration(seconds) * time.Second
	} else {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid interval %q", raw)
		}
		interval = parsed
	}

	if interval <= 0 {
		return 0, fmt.Errorf("interval %q must be positive", raw)
	}
	return interval, nil
}

// DefaultDir is $XDG_CONFIG_HOME/timetrack, or ~/.config/timetrack.
func DefaultDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appDirName), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
