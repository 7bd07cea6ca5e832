package storage

// Replacer is a pluggable victim-selection policy for the buffer pool. A
// frame becomes eligible once Unpin has been called for it since its last
// Pin; Victim chooses and removes one of the eligible frames.
type Replacer interface {
	// Victim returns an eligible frame id and removes it from eligibility,
	// or returns (0, false) if no frame is eligible.
	Victim() (FrameID, bool)

	// Pin marks a frame as no longer eligible for eviction.
	Pin(id FrameID)

	// Unpin marks a frame as eligible for eviction.
	Unpin(id FrameID)

	// Size reports the number of currently-eligible frames.
	Size() int
}
