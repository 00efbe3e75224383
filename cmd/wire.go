package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	restapi "github.com/bnema/timetrack-cli/internal/adapters/api/rest"
	statusadapter "github.com/bnema/timetrack-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/timetrack-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/timetrack-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/timetrack-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/timetrack-cli/internal/adapters/secrets/pass"
	"github.com/bnema/timetrack-cli/internal/application"
	"github.com/bnema/timetrack-cli/internal/config"
	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/bnema/timetrack-cli/internal/logging"
	"github.com/bnema/timetrack-cli/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	config         config.Config
	logger         *log.Logger
	profiles       *application.ProfileService
	secretStore    ports.SecretStore
	profileID      string
	statusRenderer func(application.Status, statusadapter.RenderOptions) (string, error)
	daysRenderer   func([]application.DayTotals, statusadapter.RenderOptions) (string, error)
	httpClient     *http.Client
	now            func() time.Time

	tracking *application.TrackingService
	profile  domain.Profile
}

func (a *app) wire(cmd *cobra.Command, opts rootOptions) error {
	cfg, err := config.Load(viper.New(), opts.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		level, err := log.ParseLevel(strings.ToLower(opts.logLevel))
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = level
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

	profilesCfg := viper.New()
	profilesCfg.Set(tomlrepo.ProfilesPathKey, cfg.ProfilesPath)
	repo, err := tomlrepo.NewRepository(profilesCfg)
	if err != nil {
		return fmt.Errorf("wire profile repository: %w", err)
	}

	secretStore, err := newSecretStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}

	a.config = cfg
	a.logger = logger
	a.secretStore = secretStore
	a.profiles = application.NewProfileService(repo, secretStore)
	a.profileID = opts.profile
	a.statusRenderer = statusadapter.Render
	a.daysRenderer = statusadapter.RenderDays
	a.httpClient = &http.Client{Timeout: restapi.DefaultTimeout}
	a.now = time.Now

	logger.Debug("config loaded", "file", cfg.File, "profiles", cfg.ProfilesPath, "secrets", cfg.Secrets)
	return nil
}

func newSecretStore(cfg config.Config, logger *log.Logger) (ports.SecretStore, error) {
	switch cfg.Secrets {
	case config.SecretsFile:
		return filestore.NewStore(cfg.SecretsDir), nil
	case config.SecretsPass:
		return passstore.NewStore(), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(cfg.SecretsDir, chainstore.WithLogger(logger))
	}
}

// trackingService resolves the profile and its token on first use, so profile
// and auth commands keep working while a stored token is broken.
func (a *app) trackingService(ctx context.Context) (*application.TrackingService, error) {
	if a.tracking != nil {
		return a.tracking, nil
	}

	profile, token, err := a.resolveConnection(ctx)
	if err != nil {
		return nil, err
	}

	client, err := restapi.NewClient(profile.BaseURL,
		restapi.WithToken(token),
		restapi.WithHTTPClient(a.httpClient),
		restapi.WithLogger(a.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profile.ID, err)
	}

	a.profile = profile
	a.tracking = application.NewTrackingService(client, ports.SystemClock{}, application.WithLogger(a.logger))
	return a.tracking, nil
}

// resolveConnection picks the profile and applies TIMETRACK_API_* overrides.
// Without any stored profile tt talks to the local default server.
func (a *app) resolveConnection(ctx context.Context) (domain.Profile, string, error) {
	resolved, err := a.profiles.Resolve(ctx, a.profileID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrProfileNotFound) && a.profileID == "":
		resolved = application.ResolvedProfile{Profile: domain.Profile{
			ID:        domain.DefaultProfileID,
			Name:      string(domain.DefaultProfileID),
			BaseURL:   config.DefaultBaseURL,
			WebAppURL: config.DefaultWebAppURL,
		}}
	default:
		return domain.Profile{}, "", err
	}

	profile := resolved.Profile
	token := resolved.Token
	if override := a.config.API.BaseURL; override != "" {
		profile.BaseURL = strings.TrimRight(override, "/")
	}
	if override := a.config.API.WebAppURL; override != "" {
		profile.WebAppURL = override
	}
	if override := a.config.API.Token; override != "" {
		token = override
	}

	a.logger.Debug("using profile", "profile", profile.ID, "base_url", profile.BaseURL, "token", token != "")
	return profile, token, nil
}

func (a *app) renderOptions() statusadapter.RenderOptions {
	return statusadapter.RenderOptions{
		Profile:   string(a.profile.ID),
		WebAppURL: a.profile.WebAppURL,
		Format:    a.config.Display.Format,
		Duration:  a.config.Display.Options(),
		Location:  time.Local,
	}
}
