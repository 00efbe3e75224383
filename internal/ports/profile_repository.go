package ports

import (
	"context"

	"github.com/bnema/timetrack-cli/internal/domain"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id domain.ProfileID) (domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
	// Current returns the profile selected with SetCurrent, or "" if none.
	Current(ctx context.Context) (domain.ProfileID, error)
	SetCurrent(ctx context.Context, id domain.ProfileID) error
}
