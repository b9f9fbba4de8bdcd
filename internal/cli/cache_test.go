package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/palletizer/pkg/cache"
	"github.com/matzehuels/palletizer/pkg/config"
)

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "sub/b.json", "sub/deeper/c.json"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	count, err := clearDir(dir)
	if err != nil {
		t.Fatalf("clearDir() error: %v", err)
	}
	if count != 3 {
		t.Errorf("clearDir() = %d, want 3", count)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("directory still holds %d entries", len(entries))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache root should survive: %v", err)
	}
}

func TestClearDirMissing(t *testing.T) {
	count, err := clearDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil || count != 0 {
		t.Errorf("clearDir(missing) = %d, %v; want 0, nil", count, err)
	}
}

func TestClearDirNestedEmptyDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "plan", "ab", "cd"), 0o755); err != nil {
		t.Fatal(err)
	}

	count, err := clearDir(dir)
	if err != nil || count != 0 {
		t.Fatalf("clearDir() = %d, %v; want 0, nil", count, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "plan")); !os.IsNotExist(err) {
		t.Errorf("nested directories survived: %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "plan.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := writeConfig(t, "[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	c := New(os.Stderr, LogInfo)
	c.configPath = cfg
	got, err := c.fileCacheDir()
	if err != nil {
		t.Fatalf("fileCacheDir() error: %v", err)
	}
	if got != filepath.ToSlash(dir) {
		t.Errorf("fileCacheDir() = %q, want %q", got, dir)
	}

	if err := runCLI(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "plan.json")); !os.IsNotExist(err) {
		t.Errorf("cached plan should be removed, stat err = %v", err)
	}
}

func TestCachePruneCommand(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	live := "plan:" + cache.RequestHash([]byte("live"))
	stale := "plan:" + cache.RequestHash([]byte("stale"))
	if err := fc.Set(ctx, live, []byte("{}"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(ctx, stale, []byte("{}"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)

	cfg := writeConfig(t, "[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(dir)+"\"\n")
	if err := runCLI(t, "--config", cfg, "cache", "prune"); err != nil {
		t.Fatalf("cache prune: %v", err)
	}
	if _, hit, _ := fc.Get(ctx, live); !hit {
		t.Error("live plan should survive prune")
	}
	if _, hit, _ := fc.Get(ctx, stale); hit {
		t.Error("expired plan should be pruned")
	}
}

func TestNewRunner(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Prefix = "site:lisbon:"
	cfg.Cache.TTL = config.Duration{Duration: time.Hour}

	c := New(io.Discard, LogInfo)
	runner := c.newRunner(context.Background(), cfg, true)
	defer runner.Close()

	if _, ok := runner.Cache.(cache.NullCache); !ok {
		t.Errorf("Cache = %T, want cache.NullCache with --no-cache", runner.Cache)
	}
	if runner.TTL != time.Hour {
		t.Errorf("TTL = %v, want 1h", runner.TTL)
	}
	if key := runner.Keyer.PlanKey("abc", cache.PlanKeyOpts{}); !strings.HasPrefix(key, "site:lisbon:") {
		t.Errorf("PlanKey() = %q, want the configured prefix", key)
	}
}

func TestNewRunnerFileBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()

	runner := New(io.Discard, LogInfo).newRunner(context.Background(), cfg, false)
	defer runner.Close()

	if _, ok := runner.Cache.(*cache.FileCache); !ok {
		t.Errorf("Cache = %T, want *cache.FileCache", runner.Cache)
	}
	if runner.TTL != cache.TTLPlan {
		t.Errorf("TTL = %v, want %v", runner.TTL, cache.TTLPlan)
	}
}
