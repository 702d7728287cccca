package store

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	failing bool
	backing MemoryStore
}

var errStoreDown = errors.New("store down")

func (s *failingStore) Read(ctx context.Context, collection string) ([]byte, error) {
	if s.failing {
		return nil, errStoreDown
	}
	return s.backing.Read(ctx, collection)
}

func (s *failingStore) Write(ctx context.Context, collection string, data []byte) error {
	if s.failing {
		return errStoreDown
	}
	return s.backing.Write(ctx, collection, data)
}

func TestFailoverStore(t *testing.T) {
	logger := zerolog.New(io.Discard)
	ctx := context.Background()

	t.Run("uses primary while healthy", func(t *testing.T) {
		primary := &failingStore{}
		fallback := NewMemoryStore()
		s := NewFailoverStore(primary, fallback, &logger)

		require.NoError(t, s.Write(ctx, CollectionGuests, []byte(`[1]`)))
		data, err := s.Read(ctx, CollectionGuests)
		require.NoError(t, err)
		assert.Equal(t, "[1]", string(data))

		// Nothing leaked into the fallback.
		fb, err := fallback.Read(ctx, CollectionGuests)
		require.NoError(t, err)
		assert.Nil(t, fb)
	})

	t.Run("falls back when primary fails", func(t *testing.T) {
		primary := &failingStore{failing: true}
		fallback := NewMemoryStore()
		s := NewFailoverStore(primary, fallback, &logger)

		require.NoError(t, s.Write(ctx, CollectionRooms, []byte(`[2]`)))
		data, err := s.Read(ctx, CollectionRooms)
		require.NoError(t, err)
		assert.Equal(t, "[2]", string(data))
	})

	t.Run("stays on fallback until recovery window", func(t *testing.T) {
		primary := &failingStore{failing: true}
		fallback := NewMemoryStore()
		s := NewFailoverStore(primary, fallback, &logger)

		require.NoError(t, s.Write(ctx, CollectionBookings, []byte(`[3]`)))

		// Primary comes back, but the probe only happens after a minute.
		primary.failing = false
		data, err := s.Read(ctx, CollectionBookings)
		require.NoError(t, err)
		assert.Equal(t, "[3]", string(data))
	})
}
