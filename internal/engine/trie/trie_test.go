package trie

import "testing"

type entry struct {
	ID   string
	Name string
}

func newTestTrie(cap int) *Trie[entry] {
	return New(cap, func(e entry) string { return e.ID })
}

func TestInsertAndFind(t *testing.T) {
	tr := newTestTrie(10)
	tr.Insert("XYZ Engineering College", entry{ID: "1", Name: "XYZ Engineering College"})
	tr.Insert("Xavier Institute", entry{ID: "2", Name: "Xavier Institute"})

	got := tr.Find("xyz", 10)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("Find(xyz) = %v", got)
	}

	got = tr.Find("x", 10)
	if len(got) != 2 {
		t.Fatalf("Find(x) = %v, want both entries", got)
	}
	// Insertion order is preserved.
	if got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("Find(x) order = %v", got)
	}
}

func TestFindMissingPrefix(t *testing.T) {
	tr := newTestTrie(10)
	tr.Insert("Delhi University", entry{ID: "1"})
	if got := tr.Find("mumbai", 10); got != nil {
		t.Fatalf("Find(mumbai) = %v, want nil", got)
	}
	if got := tr.Find("delhix", 10); got != nil {
		t.Fatalf("Find(delhix) = %v, want nil", got)
	}
}

func TestFindNormalizesPrefix(t *testing.T) {
	tr := newTestTrie(10)
	tr.Insert("St. Xavier's College", entry{ID: "1"})
	if got := tr.Find("ST. XAV", 10); len(got) != 1 {
		t.Fatalf("Find with punctuation/case = %v, want 1 item", got)
	}
}

func TestNodeCapBoundsItems(t *testing.T) {
	tr := newTestTrie(3)
	names := []string{"alpha one", "alpha two", "alpha three", "alpha four", "alpha five"}
	for i, n := range names {
		tr.Insert(n, entry{ID: string(rune('a' + i)), Name: n})
	}

	if got := tr.Find("alpha", 100); len(got) != 3 {
		t.Fatalf("node cap not enforced: got %d items", len(got))
	}
	// The counter stays exact even when nodes refuse items.
	if tr.TotalInserted() != len(names) {
		t.Fatalf("TotalInserted = %d, want %d", tr.TotalInserted(), len(names))
	}
}

func TestInsertDeduplicatesByKey(t *testing.T) {
	tr := newTestTrie(10)
	tr.Insert("delhi college", entry{ID: "1", Name: "Delhi College"})
	tr.Insert("delhi campus", entry{ID: "1", Name: "Delhi College"})

	if got := tr.Find("delhi", 10); len(got) != 1 {
		t.Fatalf("duplicate identity key stored twice: %v", got)
	}
	if tr.TotalInserted() != 2 {
		t.Fatalf("TotalInserted = %d, want 2", tr.TotalInserted())
	}
}

func TestFindLimit(t *testing.T) {
	tr := newTestTrie(10)
	for i := 0; i < 8; i++ {
		tr.Insert("common name", entry{ID: string(rune('0' + i))})
	}
	if got := tr.Find("common", 3); len(got) != 3 {
		t.Fatalf("limit ignored: got %d items", len(got))
	}
	if got := tr.Find("common", 0); len(got) != 8 {
		t.Fatalf("limit<=0 should return all cached items, got %d", len(got))
	}
}

func TestEmptyInsertIgnored(t *testing.T) {
	tr := newTestTrie(10)
	tr.Insert("   ", entry{ID: "1"})
	tr.Insert("!!!", entry{ID: "2"})
	if tr.TotalInserted() != 0 {
		t.Fatalf("TotalInserted = %d, want 0", tr.TotalInserted())
	}
}

func BenchmarkFind(b *testing.B) {
	tr := newTestTrie(10)
	names := []string{
		"national institute of technology",
		"national law school",
		"national school of design",
		"indian institute of science",
		"indian institute of management",
	}
	for i, n := range names {
		tr.Insert(n, entry{ID: string(rune('a' + i)), Name: n})
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tr.Find("national", 8)
	}
}
