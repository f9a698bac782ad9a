package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/pathplay/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.CacheDir = "/srv/pathplay-cache"
	c := &CLI{Config: cfg}

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != cfg.CacheDir {
		t.Errorf("cacheDir() = %q, want %q", dir, cfg.CacheDir)
	}
}
