package domain

// Slot names one durable preference key.
type Slot string

const (
	SlotFavorites       Slot = "favorites"
	SlotTheme           Slot = "theme"
	SlotLastSearchQuery Slot = "lastSearchQuery"
	SlotUser            Slot = "user"
)

// Slots lists every slot the application writes
func Slots() []Slot {
	return []Slot{SlotFavorites, SlotTheme, SlotLastSearchQuery, SlotUser}
}

// PreferenceStore is the durable key-value layer behind the application state.
// Values are JSON-encoded. Writes are synchronous and last-writer-wins; there is
// no transaction across slots.
type PreferenceStore interface {
	// Get decodes the slot into dest. A missing slot returns (false, nil).
	Get(slot Slot, dest any) (bool, error)

	// Set encodes and writes value to the slot
	Set(slot Slot, value any) error

	// Delete removes the slot; deleting a missing slot is not an error
	Delete(slot Slot) error

	Close() error
}
