package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/palletizer/pkg/cache"
	"github.com/matzehuels/palletizer/pkg/errors"
	"github.com/matzehuels/palletizer/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "palletizer.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
	opts := cfg.PipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if opts.MaxWeight != pipeline.DefaultMaxWeight || opts.Ceiling != pipeline.DefaultCeiling {
		t.Errorf("options = %+v, want defaults", opts)
	}
	if cfg.Cache.TTL.Duration != cache.TTLPlan {
		t.Errorf("ttl = %v, want %v", cfg.Cache.TTL, cache.TTLPlan)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
max_weight = 18.5
container_ceiling = 10
stage_order = ["crate", "box"]
parallelism = 4

[cache]
backend = "redis"
ttl = "90m"
redis_addr = "cache:6379"

[server]
addr = "127.0.0.1:9000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	opts := cfg.PipelineOptions()
	if opts.MaxWeight != 18.5 || opts.Ceiling != 10 || opts.Parallelism != 4 {
		t.Errorf("PipelineOptions = %+v", opts)
	}
	if diff := cmp.Diff([]string{"crate", "box"}, opts.StageOrder); diff != "" {
		t.Errorf("stage order mismatch (-want +got):\n%s", diff)
	}
	co := cfg.CacheOptions()
	if co.Backend != cache.BackendRedis || co.RedisAddr != "cache:6379" {
		t.Errorf("CacheOptions = %+v", co)
	}
	if co.MongoDatabase != "palletizer" {
		t.Errorf("unset keys should keep defaults, got mongo database %q", co.MongoDatabase)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("ttl = %v, want 90m", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", "max_weight = ", errors.ErrCodeConfiguration},
		{"unknown key", "max_wieght = 3", errors.ErrCodeConfiguration},
		{"bad ttl", "[cache]\nttl = \"soon\"", errors.ErrCodeConfiguration},
		{"bad backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeConfiguration},
		{"negative weight", "max_weight = -1.0", errors.ErrCodeInvalidInput},
		{"unknown stage", `stage_order = ["pallet"]`, errors.ErrCodeInvalidStage},
		{"zero parallelism", "parallelism = 0", errors.ErrCodeConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load error = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("Load(missing) error = %v, want CONFIGURATION", err)
	}
}
