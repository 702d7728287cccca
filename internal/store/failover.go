package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// FailoverStore serves from primary until it fails, then falls back and
// probes the primary again after a minute.
type FailoverStore struct {
	primary   Store
	fallback  Store
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverStore(primary, fallback Store, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *FailoverStore) Read(ctx context.Context, collection string) ([]byte, error) {
	if !s.isDown.Load() {
		data, err := s.primary.Read(ctx, collection)
		if err == nil {
			return data, nil
		}
		s.logger.Error().Err(err).Str("collection", collection).Msg("Primary store failed, falling back to memory")
		s.isDown.Store(true)
		s.lastCheck = time.Now()
	}

	// Try to recover after 1 minute
	if s.isDown.Load() && time.Since(s.lastCheck) > time.Minute {
		data, err := s.primary.Read(ctx, collection)
		if err == nil {
			s.isDown.Store(false)
			return data, nil
		}
		s.lastCheck = time.Now()
	}

	return s.fallback.Read(ctx, collection)
}

func (s *FailoverStore) Write(ctx context.Context, collection string, data []byte) error {
	if !s.isDown.Load() {
		err := s.primary.Write(ctx, collection, data)
		if err == nil {
			return nil
		}
		s.logger.Error().Err(err).Str("collection", collection).Msg("Primary store failed, falling back to memory")
		s.isDown.Store(true)
		s.lastCheck = time.Now()
	}

	return s.fallback.Write(ctx, collection, data)
}
