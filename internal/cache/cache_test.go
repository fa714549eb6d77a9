package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestPageKey(t *testing.T) {
	key := PageKey("http://example.org/water")

	if !strings.HasPrefix(key, "citehunt:v1:") {
		t.Errorf("key missing version prefix: %q", key)
	}
	if key != PageKey("http://example.org/water") {
		t.Error("key not deterministic")
	}
	if key == PageKey("http://example.org/other") {
		t.Error("distinct URLs must map to distinct keys")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit for missing key")
	}

	if err := c.Set("k", []byte("body"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("body")) {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("entry survived Delete")
	}
}

func TestDiskCache(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("persisted"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("persisted")) {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("entry survived Clear")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expired entry returned")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.disk.Set("k", []byte("on disk"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("on disk")) {
		t.Fatalf("Get = %q, %v", val, found)
	}

	// The hit is now served from memory.
	if _, found := c.memory.Get("k"); !found {
		t.Error("disk hit not promoted to memory")
	}
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("both"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.memory.Get("k"); !found {
		t.Error("memory layer missing entry")
	}
	if _, found := c.disk.Get("k"); !found {
		t.Error("disk layer missing entry")
	}
}
