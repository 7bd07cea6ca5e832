package storage

import "encoding/binary"

// HashTableHeaderSize is the size in bytes of the fixed header fields
// (lsn, size, pageID, nextIdx), all uint32, little-endian. block_page_ids
// is not part of this wire encoding; higher layers append it in the
// remainder of the page.
const HashTableHeaderSize = 16

// HashTableHeaderPage is the in-memory representation of a hash-index
// header, whose fixed fields live in the first HashTableHeaderSize bytes of
// a page. blockPageIDs is kept on the struct to fix the page-typing
// convention (typed pages are views over a frame's bytes, owned by the
// Page) but is never serialized by Marshal/Unmarshal.
type HashTableHeaderPage struct {
	LSN          uint32
	Size         uint32
	PageID       uint32
	NextIdx      uint32
	blockPageIDs []uint32
}

// AddBlockPageID appends a block page id.
func (h *HashTableHeaderPage) AddBlockPageID(id uint32) {
	h.blockPageIDs = append(h.blockPageIDs, id)
}

// GetBlockPageID returns the block page id at index, and whether it exists.
func (h *HashTableHeaderPage) GetBlockPageID(index int) (uint32, bool) {
	if index < 0 || index >= len(h.blockPageIDs) {
		return 0, false
	}
	return h.blockPageIDs[index], true
}

// NumBlocks returns the number of block page ids recorded.
func (h *HashTableHeaderPage) NumBlocks() int { return len(h.blockPageIDs) }

// MarshalHashTableHeader encodes the fixed header fields into a
// HashTableHeaderSize-byte little-endian buffer. block_page_ids is not
// included — the caller is responsible for the variable-length tail.
func MarshalHashTableHeader(h *HashTableHeaderPage) [HashTableHeaderSize]byte {
	var buf [HashTableHeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], h.LSN)
	binary.LittleEndian.PutUint32(buf[4:8], h.Size)
	binary.LittleEndian.PutUint32(buf[8:12], h.PageID)
	binary.LittleEndian.PutUint32(buf[12:16], h.NextIdx)
	return buf
}

// UnmarshalHashTableHeader decodes the fixed header fields from the first
// HashTableHeaderSize bytes of buf. buf must be at least that long.
func UnmarshalHashTableHeader(buf []byte) HashTableHeaderPage {
	return HashTableHeaderPage{
		LSN:     binary.LittleEndian.Uint32(buf[0:4]),
		Size:    binary.LittleEndian.Uint32(buf[4:8]),
		PageID:  binary.LittleEndian.Uint32(buf[8:12]),
		NextIdx: binary.LittleEndian.Uint32(buf[12:16]),
	}
}
