package storage

// LoadResult reports which path a store took when rehydrating from its slot.
type LoadResult string

const (
	// LoadFresh means the slot was empty and default state was used.
	LoadFresh LoadResult = "fresh"
	// LoadRestored means a valid snapshot was read back.
	LoadRestored LoadResult = "restored"
	// LoadCorrupted means the slot held an unreadable or invalid snapshot
	// and the store reset to its default state.
	LoadCorrupted LoadResult = "corrupted"
)
