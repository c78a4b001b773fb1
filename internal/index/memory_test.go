package index

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
)

func TestNewMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()
	if index == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if index.Ready() {
		t.Error("new index should not be ready")
	}
	if _, err := index.Current(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Current() error = %v, want ErrNoSnapshot", err)
	}
	if !index.GetLastReload().IsZero() {
		t.Error("GetLastReload() should be zero before first update")
	}
}

func TestUpdateReplacesSnapshot(t *testing.T) {
	index := NewMemoryIndex()

	first := &domain.Snapshot{Revision: "r1"}
	index.Update(first)
	second := &domain.Snapshot{Revision: "r2"}
	index.Update(second)

	got, err := index.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got != second {
		t.Errorf("Current() = %v, want second snapshot", got.Revision)
	}
	if index.Revision() != "r2" {
		t.Errorf("Revision() = %q, want r2", index.Revision())
	}
	if first.Revision != "r1" {
		t.Error("previous snapshot must not be mutated")
	}
}

func TestRecordFailureClearedOnUpdate(t *testing.T) {
	index := NewMemoryIndex()
	index.RecordFailure(errors.New("boom"))
	if index.LastError() == nil {
		t.Fatal("LastError() should keep the failure")
	}

	index.Update(&domain.Snapshot{Revision: "ok"})
	if index.LastError() != nil {
		t.Errorf("LastError() = %v, want nil after publish", index.LastError())
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewMemoryIndex()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			index.Update(&domain.Snapshot{Revision: fmt.Sprintf("r%d", i)})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = index.Current()
			_ = index.Revision()
		}()
	}
	wg.Wait()

	if !index.Ready() {
		t.Error("index should be ready after concurrent updates")
	}
}
