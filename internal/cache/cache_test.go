// ABOUTME: Tests for the file-backed TTL cache and key fingerprinting.
// ABOUTME: Covers expiry eviction, disabled no-ops, corrupt-file recovery, and persistence.
package cache

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func cachePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cache.json")
}

func TestSetGetRoundTrip(t *testing.T) {
	s := New(cachePath(t), true, time.Minute)

	in := []string{"alpha", "beta"}
	if err := s.Set("k", in, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	var out []string
	if !s.Get("k", &out) {
		t.Fatal("expected cache hit")
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("got %v, want %v", out, in)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := New(cachePath(t), true, time.Minute)
	var out string
	if s.Get("nope", &out) {
		t.Error("expected miss for never-written key")
	}
}

func TestExpiredEntryEvicted(t *testing.T) {
	s := New(cachePath(t), true, time.Minute)

	now := time.Now()
	s.now = func() time.Time { return now }

	if err := s.Set("k", "v", 50*time.Millisecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Jump past the TTL
	s.now = func() time.Time { return now.Add(time.Second) }

	var out string
	if s.Get("k", &out) {
		t.Fatal("expected miss for expired entry")
	}
	if s.Len() != 0 {
		t.Errorf("expected eviction, %d entries remain", s.Len())
	}

	// A third read must not resurrect the entry
	if s.Get("k", &out) {
		t.Error("expired entry came back")
	}
}

func TestDisabledStoreNoOps(t *testing.T) {
	path := cachePath(t)
	s := New(path, false, time.Minute)

	if err := s.Set("k", "v", 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	var out string
	if s.Get("k", &out) {
		t.Error("disabled store returned a hit")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("disabled store wrote the backing file")
	}
}

func TestPersistsAcrossInstances(t *testing.T) {
	path := cachePath(t)

	s1 := New(path, true, time.Minute)
	if err := s1.Set("k", 42, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Fresh instance simulating a new process
	s2 := New(path, true, time.Minute)
	var out int
	if !s2.Get("k", &out) {
		t.Fatal("expected hit from persisted entry")
	}
	if out != 42 {
		t.Errorf("got %d, want 42", out)
	}
}

func TestCorruptFileFailsOpen(t *testing.T) {
	path := cachePath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := New(path, true, time.Minute)
	var out string
	if s.Get("k", &out) {
		t.Error("corrupt cache returned a hit")
	}
	if err := s.Set("k", "v", 0); err != nil {
		t.Fatalf("Set on corrupt cache: %v", err)
	}
	if !s.Get("k", &out) {
		t.Error("expected hit after recovering from corrupt file")
	}
}

func TestOverwriteReplacesEntry(t *testing.T) {
	s := New(cachePath(t), true, time.Minute)

	if err := s.Set("k", "old", 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := s.Set("k", "new", 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	var out string
	if !s.Get("k", &out) {
		t.Fatal("expected hit")
	}
	if out != "new" {
		t.Errorf("got %q, want %q", out, "new")
	}
}

func TestDeleteAndClear(t *testing.T) {
	s := New(cachePath(t), true, time.Minute)

	_ = s.Set("a", 1, 0)
	_ = s.Set("b", 2, 0)

	if err := s.Delete("a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	var out int
	if s.Get("a", &out) {
		t.Error("deleted entry still present")
	}
	if !s.Get("b", &out) {
		t.Error("unrelated entry lost on delete")
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d entries", s.Len())
	}
}

func TestFileFormat(t *testing.T) {
	path := cachePath(t)
	s := New(path, true, time.Minute)
	if err := s.Set("k", "v", 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cache file: %v", err)
	}
	for _, field := range []string{`"data"`, `"storedAt_epoch_ms"`, `"ttl_ms"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("cache file missing %s field: %s", field, data)
		}
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint("search", map[string]any{"q": "go", "limit": 10, "lang": ""})
	b := Fingerprint("search", map[string]any{"lang": "", "limit": 10, "q": "go"})
	if a != b {
		t.Errorf("identical params produced different keys: %q vs %q", a, b)
	}
}

func TestFingerprintDiverges(t *testing.T) {
	base := Fingerprint("search", map[string]any{"q": "go", "limit": 10})
	tests := []struct {
		name string
		op   string
		p    map[string]any
	}{
		{"different op", "replies", map[string]any{"q": "go", "limit": 10}},
		{"different query", "search", map[string]any{"q": "rust", "limit": 10}},
		{"different limit", "search", map[string]any{"q": "go", "limit": 20}},
		{"extra filter", "search", map[string]any{"q": "go", "limit": 10, "verified": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fingerprint(tt.op, tt.p); got == base {
				t.Errorf("expected distinct key for %s", tt.name)
			}
		})
	}
}

// Free-text parameters must not be able to shift their content into a
// neighboring slot of the canonical form.
func TestFingerprintDelimiterValuesDoNotCollide(t *testing.T) {
	a := Fingerprint("search", map[string]any{
		"q":           "go|sort=recent",
		"limit":       10,
		"verified":    false,
		"minLikes":    0,
		"minRetweets": 0,
		"lang":        "",
		"sort":        "popular",
	})
	b := Fingerprint("search", map[string]any{
		"q":           "go",
		"limit":       10,
		"verified":    false,
		"minLikes":    0,
		"minRetweets": 0,
		"lang":        "",
		"sort":        "recent|sort=popular",
	})
	if a == b {
		t.Fatalf("delimiter-bearing values collided on key %q", a)
	}

	c := Fingerprint("search", map[string]any{"q": `a"b`, "lang": `c`})
	d := Fingerprint("search", map[string]any{"q": `a`, "lang": `b"c`})
	if c == d {
		t.Fatalf("quote-bearing values collided on key %q", c)
	}
}
