// Package storage implements the buffer management core of a disk-backed
// database: a disk manager, a page frame abstraction, a buffer pool manager,
// a pluggable replacement policy, and a codec for the hash-index header page.
//
// The storage format is a flat file of fixed-size pages plus an append-only
// log file. Page 0 is reserved as an invalid page id; the disk manager
// allocates ids starting at 1. There is no superblock and no on-disk
// free-list — deallocation of pages is not modeled at this layer.
package storage

import "fmt"

// PageSize is the fixed size in bytes of every page, matching spec.md's
// PAGE_SIZE = 4096.
const PageSize = 4096

// PageID identifies a page within the database file. PageID 0 is reserved
// and never returned by DiskManager.AllocatePage.
type PageID uint64

// InvalidPageID is the sentinel id NewPage returns when no page could be
// allocated.
const InvalidPageID PageID = 0

// FrameID identifies a slot in the buffer pool, in [1, pool_size].
type FrameID int

// Page is a fixed-size in-memory slab plus metadata. It has no I/O
// knowledge of its own — persistence is the BufferPoolManager's job.
type Page struct {
	data     [PageSize]byte
	id       PageID
	pinCount int
	dirty    bool
}

// NewPage returns a page with zeroed data, the given id, and a pin count
// of 1 (the caller that creates a page is its first pinner).
func NewPage(id PageID) *Page {
	return &Page{id: id, pinCount: 1}
}

// GetData returns the full page buffer. Callers that mutate the returned
// slice must also call MarkDirty(true); Page does not track writes itself.
func (p *Page) GetData() []byte {
	return p.data[:]
}

// SetData overwrites the full page buffer. len(b) must equal PageSize.
func (p *Page) SetData(b []byte) error {
	if len(b) != PageSize {
		return fmt.Errorf("storage: SetData: buffer is %d bytes, want %d", len(b), PageSize)
	}
	copy(p.data[:], b)
	return nil
}

// GetID returns the page's identity.
func (p *Page) GetID() PageID { return p.id }

// GetPinCount returns the current pin count.
func (p *Page) GetPinCount() int { return p.pinCount }

// Pin increments the pin count.
func (p *Page) Pin() { p.pinCount++ }

// Unpin decrements the pin count. Dropping below zero is a caller bug.
func (p *Page) Unpin() {
	if p.pinCount == 0 {
		panic("storage: Page.Unpin: pin count already zero")
	}
	p.pinCount--
}

// IsDirty reports whether the page has unflushed in-memory modifications.
func (p *Page) IsDirty() bool { return p.dirty }

// MarkDirty sets the dirty flag. Callers implementing "sticky dirty"
// semantics (BufferPoolManager.UnpinPage) should OR rather than assign.
func (p *Page) MarkDirty(dirty bool) { p.dirty = dirty }
