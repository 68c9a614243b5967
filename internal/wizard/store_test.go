// internal/wizard/store_test.go
package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "aiready-check/internal/common/errors"
)

// ==========================
// Test Helper Functions
// ==========================

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, 30*time.Minute), mr
}

func storedSession(t *testing.T) Session {
	t.Helper()
	session, err := NewSession().SetAnswer(0, 70)
	require.NoError(t, err)
	return session.Advance()
}

// ==========================
// Memory Store
// ==========================

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	session := storedSession(t)

	require.NoError(t, store.Put(ctx, session))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, 1, got.CurrentStep)
	require.NotNil(t, got.Answers[0])
	assert.Equal(t, 70, *got.Answers[0])
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeSessionNotFound, commonerrors.GetCode(err))
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	session := storedSession(t)

	require.NoError(t, store.Put(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	_, err := store.Get(ctx, session.ID)
	assert.Equal(t, commonerrors.ErrCodeSessionNotFound, commonerrors.GetCode(err))
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	session := storedSession(t)
	require.NoError(t, store.Put(ctx, session))

	updated, err := session.SetAnswer(1, 20)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, updated))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Answers[1])
	assert.Equal(t, 20, *got.Answers[1])
}

// ==========================
// Redis Store
// ==========================

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	session := storedSession(t)

	require.NoError(t, store.Put(ctx, session))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, session.CurrentStep, got.CurrentStep)
	require.NotNil(t, got.Answers[0])
	assert.Equal(t, 70, *got.Answers[0])
	assert.Nil(t, got.Answers[5], "unset answers stay unset after the round trip")
}

func TestRedisStore_GetMissing(t *testing.T) {
	store, _ := newRedisStore(t)

	_, err := store.Get(context.Background(), "missing-id")
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeSessionNotFound, commonerrors.GetCode(err))
}

func TestRedisStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	session := storedSession(t)

	require.NoError(t, store.Put(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	_, err := store.Get(ctx, session.ID)
	assert.Equal(t, commonerrors.ErrCodeSessionNotFound, commonerrors.GetCode(err))
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	session := storedSession(t)

	require.NoError(t, store.Put(ctx, session))

	mr.FastForward(31 * time.Minute)

	_, err := store.Get(ctx, session.ID)
	assert.Equal(t, commonerrors.ErrCodeSessionNotFound, commonerrors.GetCode(err))
}
