package redis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
)

func TestKeys(t *testing.T) {
	if got := SnapshotKey("abc"); got != "coursesite:snapshot:abc" {
		t.Errorf("SnapshotKey() = %q", got)
	}
	if got := ExportKey("sidebars.json"); got != "coursesite:export:sidebars.json" {
		t.Errorf("ExportKey() = %q", got)
	}
}

func TestSnapshotCodecKeepsNavigation(t *testing.T) {
	snap := &domain.Snapshot{
		Revision: "rev-1",
		LoadedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Site:     domain.Site{Title: "Course", I18n: domain.I18n{DefaultLocale: "uk", Locales: []string{"uk", "en"}}},
		Sidebars: domain.Sidebars{
			"block": {Name: "block", Items: []domain.SidebarNode{
				domain.DocRef("intro"),
				domain.Category("Block 1", domain.DocRef("block-1/variables"), domain.DocRef("block-1/types")),
			}},
		},
		Landing: domain.Landing{Courses: []domain.Course{
			{Title: domain.Lit("Kotlin")},
			{Title: domain.Translated("blog")},
		}},
		Docs: domain.Catalog{"intro": {ID: "intro", Source: "intro.md", Title: "Intro"}},
	}
	snap.Report.Add(domain.SeverityWarning, "asset-missing", "courses.yaml#courses[0].icon", "missing")

	data, err := encodeSnapshot(snap)
	if err != nil {
		t.Fatalf("encodeSnapshot() error = %v", err)
	}
	got, err := decodeSnapshot(data)
	if err != nil {
		t.Fatalf("decodeSnapshot() error = %v", err)
	}

	loc, err := got.Sidebars.Locate("block-1/types")
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if loc.Prev != "block-1/variables" || len(loc.Breadcrumb) != 1 || loc.Breadcrumb[0] != "Block 1" {
		t.Errorf("location after decode = %+v", loc)
	}
	if got.Landing.Courses[1].Title.Key != "blog" {
		t.Errorf("translated course title lost: %+v", got.Landing.Courses[1].Title)
	}
	if !got.LoadedAt.Equal(snap.LoadedAt) {
		t.Errorf("LoadedAt = %v, want %v", got.LoadedAt, snap.LoadedAt)
	}
	if len(got.Report.Issues) != 1 {
		t.Errorf("report lost: %+v", got.Report)
	}
}

func TestEncodeRejectsMissingRevision(t *testing.T) {
	if _, err := encodeSnapshot(&domain.Snapshot{}); err == nil {
		t.Error("expected error for snapshot without revision")
	}
	if _, err := decodeSnapshot([]byte(`{"Revision":""}`)); err == nil {
		t.Error("expected error for stored snapshot without revision")
	}
}

func TestStoreReportsUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	s := NewStore(client, 0)
	ctx := context.Background()

	if _, err := s.Revisions(ctx); err == nil || !strings.Contains(err.Error(), "failed to list revisions") {
		t.Errorf("Revisions() error = %v", err)
	}
	if _, err := s.LoadRevision(ctx, "abc"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("LoadRevision() error = %v, want connection error", err)
	}
	if _, err := s.ExportedArtifact(ctx, "sidebars.json"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("ExportedArtifact() error = %v, want connection error", err)
	}
}
