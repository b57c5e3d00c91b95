package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/eve/internal/application/port"
	"github.com/bnema/eve/internal/domain/entity"
	"github.com/bnema/eve/internal/logging"
)

type snapshotRepo struct {
	db *sql.DB
}

// NewSnapshotRepository creates a SQLite-backed schema snapshot store.
func NewSnapshotRepository(db *sql.DB) port.SchemaSnapshotStore {
	return &snapshotRepo{db: db}
}

func (r *snapshotRepo) Get(ctx context.Context, key string) (*entity.SchemaSnapshot, error) {
	var (
		data      []byte
		fetchedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT data, fetched_at FROM schema_snapshots WHERE key = ?", key,
	).Scan(&data, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", key, err)
	}
	return &entity.SchemaSnapshot{
		Key:       key,
		Data:      data,
		FetchedAt: time.Unix(fetchedAt, 0),
	}, nil
}

func (r *snapshotRepo) Put(ctx context.Context, snap *entity.SchemaSnapshot) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", snap.Key).Int("bytes", len(snap.Data)).Msg("storing schema snapshot")

	fetchedAt := snap.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO schema_snapshots (key, data, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, fetched_at = excluded.fetched_at`,
		snap.Key, snap.Data, fetchedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("put snapshot %s: %w", snap.Key, err)
	}
	return nil
}

func (r *snapshotRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_snapshots").Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}

func (r *snapshotRepo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM schema_snapshots")
	if err != nil {
		return 0, fmt.Errorf("clear snapshots: %w", err)
	}
	return res.RowsAffected()
}
