package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
	"github.com/MrSnakeDoc/coursesite/internal/export"
)

// DefaultHistory is how many revisions are kept besides the current one.
const DefaultHistory = 10

// ErrNotFound is returned when no snapshot is stored.
var ErrNotFound = errors.New("snapshot not found in redis")

// Store persists published snapshots and their exported artifacts.
type Store struct {
	client  *redis.Client
	ttl     time.Duration
	history int64
}

// NewStore creates a new Redis store. ttl 0 keeps keys forever.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client:  client,
		ttl:     ttl,
		history: DefaultHistory,
	}
}

// SaveSnapshot stores snap as current, keeps it by revision and refreshes
// the exported artifacts, all in one pipeline.
func (s *Store) SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	sidebars, err := export.SidebarsJSON(snap.Sidebars)
	if err != nil {
		return fmt.Errorf("failed to export sidebars: %w", err)
	}
	config, err := export.ConfigJSON(snap.Site, snap.LoadedAt)
	if err != nil {
		return fmt.Errorf("failed to export config: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, KeyCurrentSnapshot, data, s.ttl)
	pipe.Set(ctx, SnapshotKey(snap.Revision), data, s.ttl)
	pipe.LPush(ctx, KeyRevisions, snap.Revision)
	pipe.LTrim(ctx, KeyRevisions, 0, s.history-1)
	pipe.Set(ctx, ExportKey(export.SidebarsFile), sidebars, s.ttl)
	pipe.Set(ctx, ExportKey(export.ConfigFile), config, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snap.Revision, err)
	}
	return nil
}

// LoadCurrent returns the last saved snapshot.
func (s *Store) LoadCurrent(ctx context.Context) (*domain.Snapshot, error) {
	return s.load(ctx, KeyCurrentSnapshot)
}

// LoadRevision returns a snapshot by revision.
func (s *Store) LoadRevision(ctx context.Context, revision string) (*domain.Snapshot, error) {
	return s.load(ctx, SnapshotKey(revision))
}

func (s *Store) load(ctx context.Context, key string) (*domain.Snapshot, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return decodeSnapshot(data)
}

// Revisions lists stored revisions, newest first.
func (s *Store) Revisions(ctx context.Context) ([]string, error) {
	revs, err := s.client.LRange(ctx, KeyRevisions, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	return revs, nil
}

// ExportedArtifact returns a stored generator artifact by file name.
func (s *Store) ExportedArtifact(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, ExportKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", name, err)
	}
	return data, nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func encodeSnapshot(snap *domain.Snapshot) ([]byte, error) {
	if snap == nil || snap.Revision == "" {
		return nil, errors.New("snapshot has no revision")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if snap.Revision == "" {
		return nil, errors.New("stored snapshot has no revision")
	}
	return &snap, nil
}
