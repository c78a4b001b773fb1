package scheduler

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
	"github.com/MrSnakeDoc/coursesite/internal/index"
	"github.com/MrSnakeDoc/coursesite/internal/logger"
	redisstore "github.com/MrSnakeDoc/coursesite/internal/store/redis"
)

// SnapshotSource returns the last persisted snapshot.
type SnapshotSource interface {
	LoadCurrent(ctx context.Context) (*domain.Snapshot, error)
}

// RedisSyncer restores the last published snapshot from Redis into the
// memory index on startup, before the first file load.
type RedisSyncer struct {
	store  SnapshotSource
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store SnapshotSource,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads the current snapshot from Redis and publishes it.
// An empty store is not an error.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("restoring site snapshot from redis")

	snap, err := rs.store.LoadCurrent(ctx)
	if errors.Is(err, redisstore.ErrNotFound) {
		rs.logger.Info("no snapshot found in redis")
		return nil
	}
	if err != nil {
		return err
	}

	rs.index.Update(snap)

	rs.logger.Info("restored site snapshot from redis",
		logger.String("revision", snap.Revision),
		logger.Time("loaded_at", snap.LoadedAt),
		logger.Int("docs", len(snap.Docs)))

	return nil
}
