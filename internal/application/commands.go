package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/timetrack-cli/internal/domain"
	"github.com/bnema/timetrack-cli/internal/ports"
)

type StartCommand struct {
	Project string
	Tags    []string
	Comment string
}

func (c StartCommand) request() ports.StartSessionRequest {
	return ports.StartSessionRequest{
		Project: strings.TrimSpace(c.Project),
		Tags:    cleanTags(c.Tags),
		Comment: strings.TrimSpace(c.Comment),
	}
}

// AddCommand describes a finished session entered after the fact.
type AddCommand struct {
	Start   time.Time
	End     time.Time
	Project string
	Tags    []string
	Comment string
}

func (c AddCommand) request() (ports.ManualSessionRequest, error) {
	if c.Start.IsZero() || c.End.IsZero() || !c.End.After(c.Start) {
		return ports.ManualSessionRequest{}, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTimeRange,
			c.Start.Format(time.RFC3339), c.End.Format(time.RFC3339))
	}

	return ports.ManualSessionRequest{
		Start:   c.Start.UTC(),
		End:     c.End.UTC(),
		Project: strings.TrimSpace(c.Project),
		Tags:    cleanTags(c.Tags),
		Comment: strings.TrimSpace(c.Comment),
	}, nil
}

// cleanTags drops blank and repeated tags, keeping the first order.
func cleanTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		tags = append(tags, trimmed)
	}
	return tags
}

type SetTokenCommand struct {
	Profile string
	Token   string
}

type SaveProfileCommand struct {
	ID        string
	Name      string
	BaseURL   string
	WebAppURL string
}
