package cache

import (
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int]()
	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestCacheGet(t *testing.T) {
	c := New[string, int]()

	c.Add("key1", 42)

	val, ok := c.Get("key1")
	if !ok {
		t.Error("expected key1 to exist")
	}
	if val != 42 {
		t.Errorf("expected 42, got %d", val)
	}

	_, ok = c.Get("nonexistent")
	if ok {
		t.Error("expected nonexistent key to not exist")
	}
}

func TestCacheAddFirstWriterWins(t *testing.T) {
	c := New[string, int]()

	if !c.Add("key", 1) {
		t.Fatal("first Add should store")
	}
	if c.Add("key", 2) {
		t.Error("second Add should not store")
	}
	if val, _ := c.Get("key"); val != 1 {
		t.Errorf("Get(key) = %d, want 1", val)
	}
}

func TestCacheAliases(t *testing.T) {
	type resource struct{ id int }
	c := New[string, *resource]()
	r := &resource{id: 7}

	c.Add("name", r)
	c.Add("http://host/a.png", r)

	a, _ := c.Get("name")
	b, _ := c.Get("http://host/a.png")
	if a != b {
		t.Error("aliased keys should return the same pointer")
	}

	removed := c.DeleteFunc(func(_ string, v *resource) bool { return v == r })
	if len(removed) != 2 {
		t.Errorf("DeleteFunc removed %d keys, want 2", len(removed))
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestCacheSortedKeys(t *testing.T) {
	c := New[string, int]()
	c.Add("b", 2)
	c.Add("a", 1)
	c.Add("c", 3)

	keys := c.SortedKeys(func(a, b string) bool { return a < b })
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("SortedKeys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("SortedKeys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestCacheStats(t *testing.T) {
	c := New[string, int]()

	c.Add("key1", 1)
	c.Add("key2", 2)
	c.Get("key1")
	c.Get("missing")

	stats := c.Stats()
	if stats.Len != 2 {
		t.Errorf("expected Len=2, got %d", stats.Len)
	}
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", stats.Hits, stats.Misses)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("expected HitRate=0.5, got %v", stats.HitRate)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[int, int]()
	var wg sync.WaitGroup

	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 100 {
				c.Add(n*100+j, n*100+j)
			}
		}(i)
	}
	wg.Wait()

	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 100 {
				c.Get(n*100 + j)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 10000 {
		t.Errorf("expected 10000 entries, got %d", c.Len())
	}
}
