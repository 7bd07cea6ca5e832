package storage

import (
	"math/rand"
	"path/filepath"
	"testing"
)

func newTestBufferPoolManager(t *testing.T, poolSize int) *BufferPoolManager {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	disk, err := NewDiskManager(dbPath)
	if err != nil {
		t.Fatalf("NewDiskManager: %v", err)
	}
	t.Cleanup(func() { disk.Close() })
	replacer := NewClockReplacer(poolSize)
	return NewBufferPoolManager(poolSize, disk, replacer)
}

// TestBufferPoolManager_Scenario walks the worked end-to-end scenario from
// spec.md §8: pool_size = 10, a seeded payload for page 1's random bytes.
func TestBufferPoolManager_Scenario(t *testing.T) {
	const poolSize = 10
	bpm := newTestBufferPoolManager(t, poolSize)
	rng := rand.New(rand.NewSource(42))

	// 1. Fresh pool; new_page returns (Some, 1). Write random bytes into it.
	page1, id, err := bpm.NewPage()
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	if id != 1 || page1 == nil {
		t.Fatalf("NewPage() = (%v, %d), want (non-nil, 1)", page1, id)
	}
	payload := make([]byte, PageSize)
	rng.Read(payload)
	if err := page1.SetData(payload); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	if string(page1.GetData()) != string(payload) {
		t.Fatal("GetData after SetData does not match the written payload")
	}

	// 2. Continue calling new_page 9 more times: returns (Some, 2)..(Some, 10).
	for want := PageID(2); want <= 10; want++ {
		p, got, err := bpm.NewPage()
		if err != nil {
			t.Fatalf("NewPage: %v", err)
		}
		if p == nil || got != want {
			t.Fatalf("NewPage() = (%v, %d), want (non-nil, %d)", p, got, want)
		}
	}

	// 3. Pool is saturated and everything is pinned: 10 more calls all fail.
	for i := 0; i < 10; i++ {
		p, got, err := bpm.NewPage()
		if err != nil {
			t.Fatalf("NewPage while saturated: %v", err)
		}
		if p != nil || got != InvalidPageID {
			t.Fatalf("NewPage() while saturated = (%v, %d), want (nil, %d)", p, got, InvalidPageID)
		}
	}

	// 4. unpin_page(i, true) then flush_page(i) for i in 1..5: all succeed.
	// pin count was 1 from NewPage, so each unpin drops it to 0 and
	// UnpinPage's bool return (pinCount > 0) is false; only FlushPage's
	// result matters here.
	for id := PageID(1); id <= 5; id++ {
		bpm.UnpinPage(id, true)
		ok, err := bpm.FlushPage(id)
		if err != nil {
			t.Fatalf("FlushPage(%d): %v", id, err)
		}
		if !ok {
			t.Fatalf("FlushPage(%d) = false, want true", id)
		}
	}
	// The database file now holds page 1's bytes at offset PageSize.
	readBack := make([]byte, PageSize)
	if err := bpm.disk.ReadPage(1, readBack); err != nil {
		t.Fatalf("disk.ReadPage(1): %v", err)
	}
	if string(readBack) != string(payload) {
		t.Fatal("page 1's on-disk bytes do not match what was flushed")
	}

	// 5. new_page 5 times: pages 11..15 installed in the freed frames
	// (frames for pages 1..5, which are now unpinned and eligible).
	for want := PageID(11); want <= 15; want++ {
		p, got, err := bpm.NewPage()
		if err != nil {
			t.Fatalf("NewPage: %v", err)
		}
		if p == nil || got != want {
			t.Fatalf("NewPage() = (%v, %d), want (non-nil, %d)", p, got, want)
		}
		if bpm.UnpinPage(got, false) {
			t.Fatalf("UnpinPage(%d, false) = true, want false (pin count should drop to 0)", got)
		}
	}

	// 6. fetch_page(1) returns the original payload; a final unpin drops it
	// to zero again (fetch re-pinned it to 1 first).
	fetched, err := bpm.FetchPage(1)
	if err != nil {
		t.Fatalf("FetchPage(1): %v", err)
	}
	if fetched == nil {
		t.Fatal("FetchPage(1) = nil, want the resident page")
	}
	if string(fetched.GetData()) != string(payload) {
		t.Fatal("FetchPage(1) bytes do not match the original payload")
	}
	if bpm.UnpinPage(1, true) {
		t.Fatal("UnpinPage(1, true) after a single FetchPage repin = true, want false")
	}

	// 7. Pages 16..19 all succeed; one frame remains available.
	for want := PageID(16); want <= 19; want++ {
		p, got, err := bpm.NewPage()
		if err != nil {
			t.Fatalf("NewPage: %v", err)
		}
		if p == nil || got != want {
			t.Fatalf("NewPage() = (%v, %d), want (non-nil, %d)", p, got, want)
		}
	}

	// 8. fetch_page(1) succeeds again; data is intact. unpin, then new_page
	// evicts page 1's frame; a subsequent fetch_page(1) fails (saturated,
	// nothing unpinned).
	fetched2, err := bpm.FetchPage(1)
	if err != nil {
		t.Fatalf("FetchPage(1) second time: %v", err)
	}
	if fetched2 == nil || string(fetched2.GetData()) != string(payload) {
		t.Fatal("second FetchPage(1) did not return the intact original payload")
	}
	// fetch re-pinned page 1 to 1 (it was 0 after step 6); this unpin drops
	// it back to 0, so UnpinPage's bool return is false here too.
	bpm.UnpinPage(1, true)

	p20, id20, err := bpm.NewPage()
	if err != nil {
		t.Fatalf("NewPage evicting page 1: %v", err)
	}
	if p20 == nil || id20 != 20 {
		t.Fatalf("NewPage() = (%v, %d), want (non-nil, 20)", p20, id20)
	}

	again, err := bpm.FetchPage(1)
	if err != nil {
		t.Fatalf("FetchPage(1) after eviction: %v", err)
	}
	if again != nil {
		t.Fatal("FetchPage(1) after its frame was evicted and the pool saturated should return nil")
	}
}

func TestBufferPoolManager_UnpinNonResidentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic unpinning a non-resident page")
		}
	}()
	bpm := newTestBufferPoolManager(t, 4)
	bpm.UnpinPage(999, false)
}

func TestBufferPoolManager_FlushNonResidentReturnsFalse(t *testing.T) {
	bpm := newTestBufferPoolManager(t, 4)
	ok, err := bpm.FlushPage(999)
	if err != nil {
		t.Fatalf("FlushPage: %v", err)
	}
	if ok {
		t.Fatal("FlushPage of a non-resident page = true, want false")
	}
}

func TestBufferPoolManager_DirtyIsSticky(t *testing.T) {
	bpm := newTestBufferPoolManager(t, 4)
	_, id, err := bpm.NewPage()
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	bpm.UnpinPage(id, true)
	if _, err := bpm.FetchPage(id); err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	// A clean unpin must not clear a previously-recorded dirty flag.
	bpm.UnpinPage(id, false)

	frame := bpm.pageTable[id]
	if !bpm.pages[frame].IsDirty() {
		t.Fatal("dirty flag was cleared by a clean unpin, should be sticky")
	}
}

func TestBufferPoolManager_EvictionDropsOldPageTableEntry(t *testing.T) {
	bpm := newTestBufferPoolManager(t, 1)
	_, firstID, err := bpm.NewPage()
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	bpm.UnpinPage(firstID, false)

	_, secondID, err := bpm.NewPage()
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	if secondID == firstID {
		t.Fatal("expected a distinct page id for the second page")
	}

	if _, ok := bpm.pageTable[firstID]; ok {
		t.Fatal("evicting the only frame should remove the old page's page-table entry")
	}
	if _, ok := bpm.pageTable[secondID]; !ok {
		t.Fatal("the new page must be present in the page table after eviction")
	}
}
