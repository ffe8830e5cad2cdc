package persist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheStoreLoad(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "plumchess-persist-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	c, err := Open(filepath.Join(tmpDir, "db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	const key uint64 = 0x463b96181691fc9c // startpos Polyglot hash

	if _, found, err := c.Load(key); err != nil {
		t.Fatalf("Load failed: %v", err)
	} else if found {
		t.Error("Expected cache miss before any Store")
	}

	want := Entry{FEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", BestMove: "e2e4", Score: 25, Depth: 12}
	if err := c.Store(key, want); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, found, err := c.Load(key)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !found {
		t.Fatal("Expected cache hit after Store")
	}
	if got.BestMove != want.BestMove || got.Score != want.Score || got.Depth != want.Depth {
		t.Errorf("Got %+v, want BestMove=%s Score=%d Depth=%d", got, want.BestMove, want.Score, want.Depth)
	}
	if got.Timestamp.IsZero() {
		t.Error("Expected Timestamp to be set on Store")
	}
}

func TestDisabledCache(t *testing.T) {
	c := NewDisabled()
	defer c.Close()

	if err := c.Store(12345, Entry{BestMove: "e2e4"}); err != nil {
		t.Errorf("Store on disabled cache should be a no-op, got error: %v", err)
	}

	_, found, err := c.Load(12345)
	if err != nil {
		t.Errorf("Load on disabled cache should not error: %v", err)
	}
	if found {
		t.Error("Disabled cache should never report a hit")
	}
}
