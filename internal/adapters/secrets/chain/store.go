package chain

import (
	"context"
	"errors"
	"fmt"
	"io"

	filestore "github.com/bnema/timetrack-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/timetrack-cli/internal/adapters/secrets/pass"
	"github.com/bnema/timetrack-cli/internal/ports"
	"github.com/charmbracelet/log"
)

// Store tries the primary backend first and falls back to the secondary one
// when the primary fails. Deletes always reach both backends so a stale token
// cannot resurface from the fallback.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	logger   *log.Logger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

type Option func(*Store)

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewStore(primary ports.SecretStore, fallback ports.SecretStore, opts ...Option) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	store := &Store{primary: primary, fallback: fallback, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

// NewPassFirstWithFileFallback stores tokens in pass and falls back to files
// below fileRoot on machines without a password-store.
func NewPassFirstWithFileFallback(fileRoot string, opts ...Option) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot), opts...)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if isContextError(err) {
		return err
	}
	s.logger.Debug("primary secret backend failed, using fallback", "op", "put", "key", key, "err", err)

	if fallbackErr := s.fallback.Put(ctx, key, value); fallbackErr != nil {
		return fmt.Errorf("put token: %w", errors.Join(err, fallbackErr))
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if isContextError(err) {
		return "", err
	}
	s.logger.Debug("primary secret backend failed, using fallback", "op", "get", "key", key, "err", err)

	value, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr != nil {
		return "", fmt.Errorf("get token: %w", errors.Join(err, fallbackErr))
	}

	return value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	if primaryErr != nil && isContextError(primaryErr) {
		return primaryErr
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	switch {
	case primaryErr == nil || fallbackErr == nil:
		if primaryErr != nil {
			s.logger.Debug("primary secret backend delete failed", "key", key, "err", primaryErr)
		}
		if fallbackErr != nil {
			s.logger.Debug("fallback secret backend delete failed", "key", key, "err", fallbackErr)
		}
		return nil
	default:
		return fmt.Errorf("delete token: %w", errors.Join(primaryErr, fallbackErr))
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
