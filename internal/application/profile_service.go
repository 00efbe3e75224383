package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/bnema/timetrack-cli/internal/ports"
)

var ErrEmptyToken = errors.New("api token is empty")

type ProfileService struct {
	repo  ports.ProfileRepository
	store ports.SecretStore
}

func NewProfileService(repo ports.ProfileRepository, store ports.SecretStore) *ProfileService {
	return &ProfileService{repo: repo, store: store}
}

func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// Save creates or updates a profile. The stored token reference survives
// updates.
func (s *ProfileService) Save(ctx context.Context, cmd SaveProfileCommand) (domain.Profile, error) {
	id := domain.ProfileID(strings.TrimSpace(cmd.ID))
	if id == "" {
		id = domain.DefaultProfileID
	}

	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return domain.Profile{}, fmt.Errorf("get profile by id: %w", err)
		}
		profile = domain.Profile{ID: id, Name: string(id)}
	}

	if name := strings.TrimSpace(cmd.Name); name != "" {
		profile.Name = name
	}
	if baseURL := strings.TrimSpace(cmd.BaseURL); baseURL != "" {
		profile.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if webAppURL := strings.TrimSpace(cmd.WebAppURL); webAppURL != "" {
		profile.WebAppURL = webAppURL
	}

	if err := profile.Validate(); err != nil {
		return domain.Profile{}, fmt.Errorf("profile %s: %w", id, err)
	}

	if err := s.repo.Save(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("save profile: %w", err)
	}

	return profile, nil
}

// Current returns the selected profile id, or the default id when none is
// selected.
func (s *ProfileService) Current(ctx context.Context) (domain.ProfileID, error) {
	return s.resolveID(ctx, "")
}

func (s *ProfileService) Use(ctx context.Context, id domain.ProfileID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get profile by id: %w", err)
	}

	if err := s.repo.SetCurrent(ctx, id); err != nil {
		return fmt.Errorf("select profile: %w", err)
	}
	return nil
}

// SetToken stores token for the profile and points the profile at it. A
// failed profile write removes the freshly stored secret again.
func (s *ProfileService) SetToken(ctx context.Context, cmd SetTokenCommand) error {
	token := strings.TrimSpace(cmd.Token)
	if token == "" {
		return ErrEmptyToken
	}

	id, err := s.resolveID(ctx, cmd.Profile)
	if err != nil {
		return err
	}

	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get profile by id: %w", err)
	}
	original := profile

	key := profile.TokenKey()
	if err := s.store.Put(ctx, key, token); err != nil {
		return fmt.Errorf("store api token: %w", err)
	}

	profile.TokenRef = key
	if err := s.repo.Save(ctx, profile); err != nil {
		if original.TokenRef == key {
			return fmt.Errorf("save profile token ref: %w", err)
		}
		if rollbackErr := s.store.Delete(ctx, key); rollbackErr != nil {
			return fmt.Errorf("save profile token ref and rollback stored token: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("save profile token ref: %w", err)
	}

	if original.TokenRef == "" || original.TokenRef == key {
		return nil
	}

	if err := s.store.Delete(ctx, original.TokenRef); err != nil {
		var rollbackErr error
		if restoreErr := s.repo.Save(ctx, original); restoreErr != nil {
			rollbackErr = errors.Join(rollbackErr, restoreErr)
		}
		if deleteErr := s.store.Delete(ctx, key); deleteErr != nil {
			rollbackErr = errors.Join(rollbackErr, deleteErr)
		}
		if rollbackErr != nil {
			return fmt.Errorf("delete previous api token and rollback token update: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("delete previous api token: %w", err)
	}

	return nil
}

func (s *ProfileService) RemoveToken(ctx context.Context, rawID string) error {
	id, err := s.resolveID(ctx, rawID)
	if err != nil {
		return err
	}

	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get profile by id: %w", err)
	}
	if profile.TokenRef == "" {
		return nil
	}
	original := profile

	profile.TokenRef = ""
	if err := s.repo.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile token ref: %w", err)
	}

	if err := s.store.Delete(ctx, original.TokenRef); err != nil {
		if restoreErr := s.repo.Save(ctx, original); restoreErr != nil {
			return fmt.Errorf("delete api token and restore token ref: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete api token: %w", err)
	}

	return nil
}

// Resolve loads a profile and its token. An empty id selects the current
// profile, then the default one.
func (s *ProfileService) Resolve(ctx context.Context, rawID string) (ResolvedProfile, error) {
	id, err := s.resolveID(ctx, rawID)
	if err != nil {
		return ResolvedProfile{}, err
	}

	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ResolvedProfile{}, fmt.Errorf("get profile %s: %w", id, err)
	}

	resolved := ResolvedProfile{Profile: profile}
	if profile.TokenRef == "" {
		return resolved, nil
	}

	token, err := s.store.Get(ctx, profile.TokenRef)
	if err != nil {
		return ResolvedProfile{}, fmt.Errorf("load api token for profile %s: %w", id, err)
	}
	resolved.Token = strings.TrimSpace(token)

	return resolved, nil
}

func (s *ProfileService) resolveID(ctx context.Context, raw string) (domain.ProfileID, error) {
	if id := domain.ProfileID(strings.TrimSpace(raw)); id != "" {
		return id, nil
	}

	current, err := s.repo.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("load current profile: %w", err)
	}
	if current != "" {
		return current, nil
	}

	return domain.DefaultProfileID, nil
}
