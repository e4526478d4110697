package services_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penpals_server/models"
	"penpals_server/services"
)

func newCachedStore(t *testing.T) (*services.CachedStore, *services.FileStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	backend := services.NewFileStore(filepath.Join(t.TempDir(), "database.json"))
	cached := services.NewCachedStore(backend, client, 5*time.Second, testLogger())
	return cached, backend, mr
}

func TestCachedStoreServesSnapshotWithinTTL(t *testing.T) {
	cached, backend, _ := newCachedStore(t)
	ctx := context.Background()

	db := models.NewDatabase()
	db.Users["slug@ucsc.edu"] = &models.User{Email: "slug@ucsc.edu", CreatedAt: time.Now()}
	require.NoError(t, cached.Save(ctx, db))

	// Mutate the backend behind the cache's back.
	sneaky, err := backend.Load(ctx)
	require.NoError(t, err)
	sneaky.Users["sneaky@ucsc.edu"] = &models.User{Email: "sneaky@ucsc.edu", CreatedAt: time.Now()}
	require.NoError(t, backend.Save(ctx, sneaky))

	// Within the TTL the cached snapshot wins.
	loaded, err := cached.Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, loaded.Users, "slug@ucsc.edu")
	assert.NotContains(t, loaded.Users, "sneaky@ucsc.edu")
}

func TestCachedStoreExpiryFallsBackToBackend(t *testing.T) {
	cached, backend, mr := newCachedStore(t)
	ctx := context.Background()

	db := models.NewDatabase()
	db.Users["slug@ucsc.edu"] = &models.User{Email: "slug@ucsc.edu", CreatedAt: time.Now()}
	require.NoError(t, cached.Save(ctx, db))

	fresh, err := backend.Load(ctx)
	require.NoError(t, err)
	fresh.Users["late@ucsc.edu"] = &models.User{Email: "late@ucsc.edu", CreatedAt: time.Now()}
	require.NoError(t, backend.Save(ctx, fresh))

	mr.FastForward(6 * time.Second)

	loaded, err := cached.Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, loaded.Users, "late@ucsc.edu")
}

func TestCachedStoreSaveWritesThrough(t *testing.T) {
	cached, backend, _ := newCachedStore(t)
	ctx := context.Background()

	db := models.NewDatabase()
	db.Users["slug@ucsc.edu"] = &models.User{Email: "slug@ucsc.edu", CreatedAt: time.Now()}
	require.NoError(t, cached.Save(ctx, db))

	// The backend holds the document even if Redis is wiped.
	persisted, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, persisted.Users, "slug@ucsc.edu")
}

func TestCachedStoreSurvivesRedisOutage(t *testing.T) {
	cached, _, mr := newCachedStore(t)
	ctx := context.Background()

	db := models.NewDatabase()
	db.Users["slug@ucsc.edu"] = &models.User{Email: "slug@ucsc.edu", CreatedAt: time.Now()}
	require.NoError(t, cached.Save(ctx, db))

	mr.Close()

	// Reads degrade to the backend instead of failing.
	loaded, err := cached.Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, loaded.Users, "slug@ucsc.edu")
}
