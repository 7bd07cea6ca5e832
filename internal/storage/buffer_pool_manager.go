package storage

import "fmt"

// BufferPoolManager multiplexes a bounded array of frames over an unbounded
// universe of pages. It owns the page table, the free list, a Replacer, and
// a DiskManager for its lifetime. Thread-safety is out of scope: the spec
// deliberately leaves this single-threaded (see spec.md §5) — a realistic
// implementation would guard pageTable with a pool-wide latch and each frame
// with its own reader-writer latch.
type BufferPoolManager struct {
	poolSize int
	disk     *DiskManager
	replacer Replacer

	pages     map[FrameID]*Page
	pageTable map[PageID]FrameID
	freeList  []FrameID
}

// NewBufferPoolManager creates a pool of poolSize frames backed by disk,
// using replacer as its victim-selection policy. Every frame starts on the
// free list.
func NewBufferPoolManager(poolSize int, disk *DiskManager, replacer Replacer) *BufferPoolManager {
	freeList := make([]FrameID, poolSize)
	for i := 0; i < poolSize; i++ {
		freeList[i] = FrameID(i + 1)
	}
	return &BufferPoolManager{
		poolSize:  poolSize,
		disk:      disk,
		replacer:  replacer,
		pages:     make(map[FrameID]*Page, poolSize),
		pageTable: make(map[PageID]FrameID, poolSize),
		freeList:  freeList,
	}
}

// findReplacement returns a frame to house an incoming page: the free list
// is drained first, then the replacer is asked for a victim. Returns
// (0, false) if the pool is fully pinned.
func (bpm *BufferPoolManager) findReplacement() (FrameID, bool) {
	if n := len(bpm.freeList); n > 0 {
		frame := bpm.freeList[n-1]
		bpm.freeList = bpm.freeList[:n-1]
		return frame, true
	}
	return bpm.replacer.Victim()
}

// flushIfDirty writes frame's resident page back to disk if it's dirty.
// It does not touch the page table — callers decide what to do with the
// mapping once the write has actually succeeded, so a failed write never
// clobbers it.
func (bpm *BufferPoolManager) flushIfDirty(frame FrameID) error {
	old, ok := bpm.pages[frame]
	if !ok || !old.IsDirty() {
		return nil
	}
	if err := bpm.disk.WritePage(old.GetID(), old.GetData()); err != nil {
		return fmt.Errorf("evict frame %d: %w", frame, err)
	}
	return nil
}

// clearOldMapping removes frame's previous occupant from the page table.
// Call only after flushIfDirty has succeeded, so a victim write failure
// never leaves the table pointing at a frame whose old mapping was dropped
// without the data actually reaching disk.
func (bpm *BufferPoolManager) clearOldMapping(frame FrameID) {
	if old, ok := bpm.pages[frame]; ok {
		delete(bpm.pageTable, old.GetID())
	}
}

// NewPage allocates a fresh page id on disk, installs a zeroed Page with a
// pin count of 1 in a free or victim frame, and maps it in the page table.
// Returns (nil, InvalidPageID, nil) if the pool is fully pinned — disk
// allocation is never attempted in that case. An I/O error writing back a
// dirty victim is returned without allocating a page id; the victim frame
// keeps its page and mapping and is handed back to the replacer.
func (bpm *BufferPoolManager) NewPage() (*Page, PageID, error) {
	frame, ok := bpm.findReplacement()
	if !ok {
		return nil, InvalidPageID, nil
	}
	if err := bpm.flushIfDirty(frame); err != nil {
		bpm.replacer.Unpin(frame)
		return nil, InvalidPageID, err
	}
	bpm.clearOldMapping(frame)

	id := bpm.disk.AllocatePage()
	page := NewPage(id)
	bpm.pages[frame] = page
	bpm.pageTable[id] = frame
	return page, id, nil
}

// FetchPage returns the page for id, pinning it. If the page is already
// resident, its pin count is bumped and the replacer is told it's no longer
// eligible. Otherwise a frame is found via findReplacement, any dirty
// occupant is flushed, and the page is read in from disk (tolerating the
// short-read case described in DiskManager.ReadPage). Returns (nil, nil) if
// the pool is fully pinned. On an I/O error writing back a dirty victim or
// reading in the requested page, the error is returned, the page table is
// left unchanged, and the frame is handed back to where it came from (the
// replacer for a victim, the free list otherwise).
func (bpm *BufferPoolManager) FetchPage(id PageID) (*Page, error) {
	if frame, ok := bpm.pageTable[id]; ok {
		page := bpm.pages[frame]
		page.Pin()
		bpm.replacer.Pin(frame)
		return page, nil
	}

	frame, ok := bpm.findReplacement()
	if !ok {
		return nil, nil
	}
	if err := bpm.flushIfDirty(frame); err != nil {
		bpm.replacer.Unpin(frame)
		return nil, err
	}

	page := NewPage(id)
	if err := bpm.disk.ReadPage(id, page.GetData()); err != nil {
		if _, occupied := bpm.pages[frame]; occupied {
			bpm.replacer.Unpin(frame)
		} else {
			bpm.freeList = append(bpm.freeList, frame)
		}
		return nil, fmt.Errorf("fetch page %d: %w", id, err)
	}
	bpm.clearOldMapping(frame)
	bpm.pages[frame] = page
	bpm.pageTable[id] = frame
	return page, nil
}

// UnpinPage decrements the pin count for a resident page. isDirty is ORed
// into the page's dirty flag — never cleared — so a clean unpin can't erase
// an earlier dirty unpin. When the pin count reaches zero the frame becomes
// eligible in the replacer. Returns true iff the pin count is still
// positive after the decrement. Unpinning a non-resident page is a
// programmer error.
func (bpm *BufferPoolManager) UnpinPage(id PageID, isDirty bool) bool {
	frame, ok := bpm.pageTable[id]
	if !ok {
		panic(fmt.Sprintf("storage: UnpinPage: page %d is not resident", id))
	}
	page := bpm.pages[frame]
	if isDirty {
		page.MarkDirty(true)
	}
	page.Unpin()
	if page.GetPinCount() == 0 {
		bpm.replacer.Unpin(frame)
	}
	return page.GetPinCount() > 0
}

// FlushPage writes a resident page's bytes to disk regardless of its dirty
// flag, then clears the flag (a refinement over the source, which never
// cleared it, causing redundant writes on subsequent flushes). Returns
// (false, nil) if the page is not resident.
func (bpm *BufferPoolManager) FlushPage(id PageID) (bool, error) {
	frame, ok := bpm.pageTable[id]
	if !ok {
		return false, nil
	}
	page := bpm.pages[frame]
	if err := bpm.disk.WritePage(id, page.GetData()); err != nil {
		return false, fmt.Errorf("flush page %d: %w", id, err)
	}
	page.MarkDirty(false)
	return true, nil
}

// PoolSize returns the fixed number of frames in the pool.
func (bpm *BufferPoolManager) PoolSize() int { return bpm.poolSize }
