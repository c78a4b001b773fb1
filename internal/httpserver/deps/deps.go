package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
	"github.com/MrSnakeDoc/coursesite/internal/index"
	"github.com/MrSnakeDoc/coursesite/internal/logger"
	"github.com/MrSnakeDoc/coursesite/internal/metrics"
)

// SnapshotHistory reads persisted snapshots. Implemented by the redis store.
type SnapshotHistory interface {
	Ping(ctx context.Context) error
	Revisions(ctx context.Context) ([]string, error)
	LoadRevision(ctx context.Context, revision string) (*domain.Snapshot, error)
	ExportedArtifact(ctx context.Context, name string) ([]byte, error)
}

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time   // for testing, defaults to time.Now
	AllowedHosts  []string           // Host headers allowed to trigger reloads
	AllowedCIDRS  []string           // IPs allowed to access reload, readyz, infra and metrics
	TrustProxy    bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	SiteDir       string             // Site definition directory
	MemoryIndex   *index.MemoryIndex // Current site snapshot
	Store         SnapshotHistory    // nil when redis is disabled
	Metrics       *metrics.Metrics   // nil disables /metrics
	ReloadTrigger chan struct{}      // Channel to trigger manual site reload
	ReloadRate    float64            // manual reloads per second per client
	ReloadBurst   int
}

// Now returns the current time, honoring TimeNow.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
