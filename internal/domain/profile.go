package domain

import (
	"fmt"
	"net/url"
	"strings"
)

type ProfileID string

const DefaultProfileID ProfileID = "default"

type Profile struct {
	ID        ProfileID
	Name      string
	BaseURL   string
	WebAppURL string
	// TokenRef points to a secret-store entry holding the API bearer token.
	TokenRef string
}

func (p Profile) Validate() error {
	if strings.TrimSpace(string(p.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(p.BaseURL) == "" {
		return fmt.Errorf("base url is required")
	}

	parsed, err := url.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", p.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported base url scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base url %q has no host", p.BaseURL)
	}

	return nil
}

// TokenKey is the secret-store key a profile's token is written under.
func (p Profile) TokenKey() string {
	return fmt.Sprintf("timetrack/%s/api_token", p.ID)
}
