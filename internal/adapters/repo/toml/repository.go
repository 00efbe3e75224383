package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/bnema/timetrack-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	ProfilesPathKey = "profiles.path"

	profilesFileMode = 0o600
	profilesDirMode  = 0o700
	tempFilePattern  = ".profiles-*.toml.tmp"
)

type Repository struct {
	profilesPath string
	now          func() time.Time
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ProfileRepository = (*Repository)(nil)

// NewRepository stores profiles at the path configured under
// "profiles.path", which the config layer defaults.
func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		return nil, errors.New("profiles config is nil")
	}

	profilesPath := cfg.GetString(ProfilesPathKey)
	if profilesPath == "" {
		return nil, errors.New("profiles path is empty")
	}

	absPath, err := filepath.Abs(profilesPath)
	if err != nil {
		return nil, fmt.Errorf("resolve profiles path: %w", err)
	}
	profilesPath = filepath.Clean(absPath)

	return &Repository{
		profilesPath: profilesPath,
		now:          time.Now,
		mu:           lockForPath(profilesPath),
	}, nil
}

func (r *Repository) Path() string {
	return r.profilesPath
}

func (r *Repository) Save(ctx context.Context, profile domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(profile)
	encoded.UpdatedAt = r.now().UTC().Format(time.RFC3339)

	updated := false
	for i := range file.Profiles {
		if file.Profiles[i].ID == encoded.ID {
			file.Profiles[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Profiles = append(file.Profiles, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.ProfileID) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Profile{}, err
	}

	for _, entry := range file.Profiles {
		if entry.ID == string(id) {
			return fromSchema(entry), nil
		}
	}

	return domain.Profile{}, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, id)
}

func (r *Repository) List(ctx context.Context) ([]domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(file.Profiles))
	for _, entry := range file.Profiles {
		profiles = append(profiles, fromSchema(entry))
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })

	return profiles, nil
}

func (r *Repository) Current(ctx context.Context) (domain.ProfileID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return "", err
	}

	return domain.ProfileID(file.Current), nil
}

func (r *Repository) SetCurrent(ctx context.Context, id domain.ProfileID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	found := false
	for _, entry := range file.Profiles {
		if entry.ID == string(id) {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, id)
	}

	file.Current = string(id)
	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.profilesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read profiles file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode profiles file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

// writeSchema replaces the profiles file through a temp file and rename so
// readers never see a partial write.
func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	dir := filepath.Dir(r.profilesPath)
	if err := os.MkdirAll(dir, profilesDirMode); err != nil {
		return fmt.Errorf("create profiles directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode profiles file: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp profiles file: %w", err)
	}
	tempName := tempFile.Name()

	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp profiles file: %w", err)
	}
	if err := tempFile.Chmod(profilesFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp profiles file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp profiles file: %w", err)
	}

	if err := os.Rename(tempName, r.profilesPath); err != nil {
		return fmt.Errorf("replace profiles file: %w", err)
	}
	committed = true

	return nil
}

func toSchema(profile domain.Profile) profileSchema {
	return profileSchema{
		ID:        string(profile.ID),
		Name:      profile.Name,
		BaseURL:   profile.BaseURL,
		WebAppURL: profile.WebAppURL,
		TokenRef:  profile.TokenRef,
	}
}

func fromSchema(entry profileSchema) domain.Profile {
	name := entry.Name
	if name == "" {
		name = entry.ID
	}

	return domain.Profile{
		ID:        domain.ProfileID(entry.ID),
		Name:      name,
		BaseURL:   entry.BaseURL,
		WebAppURL: entry.WebAppURL,
		TokenRef:  entry.TokenRef,
	}
}
