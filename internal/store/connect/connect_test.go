package connect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/buildmart/internal/store"
	"github.com/Skotchmaster/buildmart/internal/store/sqlstore"
)

func TestOpen_EmptyURLIsUnavailable(t *testing.T) {
	t.Parallel()

	s, closeFn, err := Open(context.Background(), "", "shop")
	require.Error(t, err)
	assert.False(t, store.IsAvailable(s))
	assert.NoError(t, closeFn(context.Background()))

	_, err = s.Count(context.Background(), "product")
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestOpen_UnknownSchemeIsUnavailable(t *testing.T) {
	t.Parallel()

	s, _, err := Open(context.Background(), "redis://localhost:6379", "shop")
	require.Error(t, err)
	assert.False(t, store.IsAvailable(s))

	u, ok := s.(store.Unavailable)
	require.True(t, ok)
	assert.Contains(t, u.Reason, "unsupported")
}

func TestOpen_SQLite(t *testing.T) {
	t.Parallel()

	s, closeFn, err := Open(context.Background(), "sqlite://:memory:", "ignored")
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn(context.Background()) })

	assert.True(t, store.IsAvailable(s))
	_, ok := s.(*sqlstore.GormStore)
	assert.True(t, ok)
}
