package driver

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"borrowck/internal/borrowck"
	"borrowck/internal/mir"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := OpenDiskCache(t.TempDir(), "borrowck")
	if err != nil {
		t.Fatal(err)
	}
	key := combineDigest(contentDigest([]byte("module")), "v1")
	in := &DiskPayload{
		Module:  "m",
		Version: "v1",
		Bodies:  3,
		Errors: []borrowck.BodyErrors{{
			Body: "f",
			Errors: []borrowck.Error{{
				Kind:   borrowck.UseAfterMove,
				Local:  2,
				First:  mir.Location{Block: 0, Statement: 1},
				Second: mir.Location{Block: 1, Statement: 0},
			}},
		}},
	}
	if err := c.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out DiskPayload
	hit, err := c.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v", hit, err)
	}
	if !reflect.DeepEqual(&out, in) {
		t.Fatalf("payload mismatch:\n got %+v\nwant %+v", out, *in)
	}

	other := combineDigest(contentDigest([]byte("module")), "v2")
	if hit, err := c.Get(other, &out); hit || err != nil {
		t.Fatalf("unexpected hit for another key: %v, %v", hit, err)
	}
}

func TestDiskCacheSchemaMismatchIsMiss(t *testing.T) {
	c, err := OpenDiskCache(t.TempDir(), "borrowck")
	if err != nil {
		t.Fatal(err)
	}
	key := contentDigest([]byte("x"))
	data, err := msgpack.Marshal(&DiskPayload{Schema: diskCacheSchemaVersion + 1, Module: "old"})
	if err != nil {
		t.Fatal(err)
	}
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}

	var out DiskPayload
	hit, err := c.Get(key, &out)
	if err != nil || hit {
		t.Fatalf("Get = %v, %v", hit, err)
	}
	if out.Module != "" {
		t.Fatalf("stale payload leaked: %+v", out)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	c, err := OpenDiskCache(filepath.Join(t.TempDir(), "cache"), "borrowck")
	if err != nil {
		t.Fatal(err)
	}
	key := contentDigest([]byte("y"))
	if err := c.Put(key, &DiskPayload{Module: "m"}); err != nil {
		t.Fatal(err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	var out DiskPayload
	if hit, _ := c.Get(key, &out); hit {
		t.Fatalf("entry survived DropAll")
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Fatalf("cache dir not recreated: %v", err)
	}
}

func TestDiskCacheDefaultDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	c, err := OpenDiskCache("", "borrowck")
	if err != nil {
		t.Fatal(err)
	}
	if c.Dir() != filepath.Join(base, "borrowck") {
		t.Fatalf("Dir = %s", c.Dir())
	}
}

func TestNilDiskCache(t *testing.T) {
	var c *DiskCache
	var out DiskPayload
	if err := c.Put(Digest{}, &DiskPayload{}); err != nil {
		t.Fatal(err)
	}
	if hit, err := c.Get(Digest{}, &out); hit || err != nil {
		t.Fatalf("nil cache hit")
	}
	if c.DropAll() != nil || c.Dir() != "" {
		t.Fatalf("nil cache misbehaves")
	}
}

func TestCombineDigest(t *testing.T) {
	content := contentDigest([]byte("module"))
	if content.IsZero() || !(Digest{}).IsZero() {
		t.Fatalf("IsZero is wrong")
	}
	a := combineDigest(content, "ab")
	b := combineDigest(content, "a", "b")
	c := combineDigest(content, "b", "a")
	if a == b || b == c {
		t.Fatalf("salts are not separated or ordered")
	}
	if combineDigest(content, "ab") != a {
		t.Fatalf("digest is not deterministic")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex digest = %q", a.String())
	}
}
