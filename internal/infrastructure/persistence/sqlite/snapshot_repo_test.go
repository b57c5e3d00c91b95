package sqlite_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/eve/internal/logging"
)

func snapshotTestCtx() context.Context {
	logger := zerolog.New(os.Stderr).Level(zerolog.DebugLevel)
	return logging.WithContext(context.Background(), logger)
}

func openTestDB(t *testing.T) (context.Context, *sql.DB) {
	t.Helper()
	ctx := snapshotTestCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "nested", "schemas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return ctx, db
}

func TestNewConnection_AppliesMigrationsOnce(t *testing.T) {
	ctx := snapshotTestCtx()
	path := filepath.Join(t.TempDir(), "schemas.db")

	db, err := sqlite.NewConnection(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must not re-run recorded migrations.
	db, err = sqlite.NewConnection(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	versions, err := sqlite.GetAppliedMigrations(ctx, db)
	require.NoError(t, err)
	migrations, err := sqlite.GetMigrations()
	require.NoError(t, err)
	require.Len(t, versions, len(migrations))
	assert.Equal(t, 1, versions[0])
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(snapshotTestCtx(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestSnapshotRepository_PutGet(t *testing.T) {
	ctx, db := openTestDB(t)
	repo := sqlite.NewSnapshotRepository(db)

	// Arrange
	fetched := time.Unix(1_700_000_000, 0)
	require.NoError(t, repo.Put(ctx, &entity.SchemaSnapshot{
		Key: "api/schema/sensor/dht", Data: []byte(`{"v":1}`), FetchedAt: fetched,
	}))

	// Act
	got, err := repo.Get(ctx, "api/schema/sensor/dht")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "api/schema/sensor/dht", got.Key)
	assert.Equal(t, `{"v":1}`, string(got.Data))
	assert.True(t, fetched.Equal(got.FetchedAt))

	missing, err := repo.Get(ctx, "api/schema/sensor/bme280")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSnapshotRepository_PutReplaces(t *testing.T) {
	ctx, db := openTestDB(t)
	repo := sqlite.NewSnapshotRepository(db)

	require.NoError(t, repo.Put(ctx, &entity.SchemaSnapshot{Key: "api/espboards/esp32", Data: []byte("old")}))
	require.NoError(t, repo.Put(ctx, &entity.SchemaSnapshot{Key: "api/espboards/esp32", Data: []byte("new")}))

	got, err := repo.Get(ctx, "api/espboards/esp32")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new", string(got.Data))
	assert.False(t, got.FetchedAt.IsZero())

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSnapshotRepository_Clear(t *testing.T) {
	ctx, db := openTestDB(t)
	repo := sqlite.NewSnapshotRepository(db)

	for _, key := range []string{"api/components", "api/core-schema/wifi", "api/core-schema/api"} {
		require.NoError(t, repo.Put(ctx, &entity.SchemaSnapshot{Key: key, Data: []byte("{}")}))
	}

	removed, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
