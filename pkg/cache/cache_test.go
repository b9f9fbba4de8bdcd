package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestRequestHash(t *testing.T) {
	h1 := RequestHash([]byte("hello"))
	if h1 != RequestHash([]byte("hello")) {
		t.Error("RequestHash should be deterministic")
	}
	if h1 == RequestHash([]byte("world")) {
		t.Error("Different requests should produce different hashes")
	}
	if !isDigest(h1) {
		t.Errorf("RequestHash = %q, want 64 hex chars", h1)
	}
}

func TestSplitKey(t *testing.T) {
	sum := RequestHash([]byte("req"))
	tests := []struct {
		key    string
		ns     []string
		digest string
	}{
		{"plan:" + sum, []string{"plan"}, sum},
		{"site:lisbon:plan:" + sum, []string{"site", "lisbon", "plan"}, sum},
		{"plain", []string{}, RequestHash([]byte("plain"))},
		{"plan:short", []string{"plan"}, RequestHash([]byte("plan:short"))},
	}
	for _, tt := range tests {
		ns, digest := splitKey(tt.key)
		if len(ns) != len(tt.ns) || strings.Join(ns, "/") != strings.Join(tt.ns, "/") {
			t.Errorf("splitKey(%q) namespaces = %v, want %v", tt.key, ns, tt.ns)
		}
		if digest != tt.digest {
			t.Errorf("splitKey(%q) digest = %s, want %s", tt.key, digest, tt.digest)
		}
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	pk1 := k.PlanKey("hash123", PlanKeyOpts{MaxWeight: 25, Ceiling: 50, StageOrder: []string{"pacote", "crate", "box"}})
	pk2 := k.PlanKey("hash123", PlanKeyOpts{MaxWeight: 30, Ceiling: 50, StageOrder: []string{"pacote", "crate", "box"}})
	if pk1 == pk2 {
		t.Error("Different PlanKeyOpts should produce different keys")
	}

	pk3 := k.PlanKey("hash123", PlanKeyOpts{MaxWeight: 25, Ceiling: 50, StageOrder: []string{"crate", "pacote", "box"}})
	if pk1 == pk3 {
		t.Error("Stage order should be part of the key")
	}

	if !strings.HasPrefix(pk1, "plan:") {
		t.Errorf("PlanKey should start with plan: got %s", pk1)
	}
	if pk1 != k.PlanKey("hash123", PlanKeyOpts{MaxWeight: 25, Ceiling: 50, StageOrder: []string{"pacote", "crate", "box"}}) {
		t.Error("PlanKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "warehouse:7:")

	key := scoped.PlanKey("hash123", PlanKeyOpts{})
	if key != "warehouse:7:"+inner.PlanKey("hash123", PlanKeyOpts{}) {
		t.Errorf("ScopedKeyer PlanKey should be prefixed: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.PlanKey("h", PlanKeyOpts{})
	if !strings.HasPrefix(key, "prefix:plan:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get on empty cache should miss")
	}

	if err := c.Set(ctx, "k", []byte("plan"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "plan" {
		t.Errorf("Get = %q, %v, %v; want plan, true, nil", data, hit, err)
	}

	// Expired entries are misses
	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("Expired entry should miss")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Deleted entry should miss")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of missing key should succeed: %v", err)
	}
}

func TestFileCacheLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	key := NewScopedKeyer(nil, "site:lisbon:").PlanKey(RequestHash([]byte("req")), PlanKeyOpts{MaxWeight: 25})
	if err := c.Set(ctx, key, []byte(`{"caixas":{}}`), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	_, sum := splitKey(key)
	want := filepath.Join(dir, "site", "lisbon", "plan", sum[:2], sum[2:]+".json")
	raw, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("entry not stored at %s: %v", want, err)
	}
	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.Key != key || string(entry.Data) != `{"caixas":{}}` || entry.StoredAt.IsZero() {
		t.Errorf("entry = %+v", entry)
	}
	if !entry.ExpiresAt.IsZero() {
		t.Errorf("ExpiresAt = %v, want zero for ttl 0", entry.ExpiresAt)
	}
}

func TestFileCacheKeyMismatch(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	key := "plan:" + RequestHash([]byte("a"))
	if err := c.Set(ctx, key, []byte("a"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// An entry written under another key at the same path is not returned.
	raw, _ := json.Marshal(fileEntry{Key: "other", Data: []byte("b")})
	if err := os.WriteFile(c.path(key), raw, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get should miss on a foreign entry")
	}
}

func TestFileCachePrune(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	keep := "plan:" + RequestHash([]byte("keep"))
	stale := "plan:" + RequestHash([]byte("stale"))
	broken := "plan:" + RequestHash([]byte("broken"))
	if err := c.Set(ctx, keep, []byte("k"), 2*time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, stale, []byte("s"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, broken, []byte("b"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path(broken), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	now = now.Add(time.Hour)
	removed, err := c.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune error: %v", err)
	}
	if removed != 2 {
		t.Errorf("Prune() = %d, want 2", removed)
	}
	if _, hit, _ := c.Get(ctx, keep); !hit {
		t.Error("live entry should survive Prune")
	}
	if _, err := os.Stat(c.path(stale)); !os.IsNotExist(err) {
		t.Errorf("expired entry should be removed, stat err = %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, Options{})
	if err != nil {
		t.Fatalf("Open(none) error: %v", err)
	}
	if _, ok := c.(NullCache); !ok {
		t.Errorf("Open(none) = %T, want NullCache", c)
	}

	c, err = Open(ctx, Options{Backend: BackendFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(file) error: %v", err)
	}
	if _, ok := c.(*FileCache); !ok {
		t.Errorf("Open(file) = %T, want *FileCache", c)
	}

	if _, err := Open(ctx, Options{Backend: "memcached"}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(memcached) error = %v, want ErrUnknownBackend", err)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir error: %v", err)
	}
	if dir != "/tmp/xdg/palletizer" {
		t.Errorf("DefaultDir = %s, want /tmp/xdg/palletizer", dir)
	}
}

func TestBackendError(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&BackendError{Backend: BackendRedis, Op: "ping", Err: cause})

	if !errors.Is(err, ErrUnavailable) {
		t.Error("BackendError should match ErrUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Error("BackendError should match its cause")
	}
	if got, want := err.Error(), "redis ping: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestConnectPolicyPing(t *testing.T) {
	ctx := context.Background()
	policy := connectPolicy{attempts: 3, delay: time.Millisecond}
	refused := errors.New("refused")

	tests := []struct {
		name      string
		failures  int
		wantCalls int
		wantErr   bool
	}{
		{"first try", 0, 1, false},
		{"after one failure", 1, 2, false},
		{"never reachable", 5, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := policy.ping(ctx, BackendMongo, func(context.Context) error {
				calls++
				if calls <= tt.failures {
					return refused
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("ping() error = %v, wantErr %v", err, tt.wantErr)
			}
			var be *BackendError
			if tt.wantErr && (!errors.As(err, &be) || be.Backend != BackendMongo || !errors.Is(err, refused)) {
				t.Errorf("ping() error = %v, want BackendError wrapping the last failure", err)
			}
		})
	}
}

func TestConnectPolicyPingCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := connectPolicy{attempts: 3, delay: time.Hour}
	err := policy.ping(ctx, BackendRedis, func(context.Context) error { return ErrUnavailable })
	if err != context.Canceled {
		t.Errorf("ping() error = %v, want context.Canceled", err)
	}
}
