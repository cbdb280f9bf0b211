package rainforest

// Aux is an optional hook passed to Finalize and Hash. A nil Aux is a no-op.
// RamboxWrite is called once per mixing round, after slot has been rewritten, with the
// value it held before.
type Aux interface {
	RamboxWrite(slot uint32, previous uint64)
}

type journalEntry struct {
	slot     uint32
	previous uint64
}

// Journal records rambox writes so they can be undone, keeping a rambox in its
// freshly initialized state without copying all RamboxSize words after every hash.
type Journal struct {
	entries []journalEntry
}

func NewJournal() *Journal {
	return &Journal{
		entries: make([]journalEntry, 0, MixRounds),
	}
}

func (j *Journal) RamboxWrite(slot uint32, previous uint64) {
	j.entries = append(j.entries, journalEntry{slot: slot, previous: previous})
}

// Len number of recorded writes
func (j *Journal) Len() int {
	return len(j.entries)
}

// Slots returns the recorded slots in write order
func (j *Journal) Slots() []uint32 {
	slots := make([]uint32, len(j.entries))
	for i := range j.entries {
		slots[i] = j.entries[i].slot
	}
	return slots
}

// Rollback restores every recorded write in reverse order, then clears the journal
func (j *Journal) Rollback(rb *Rambox) {
	for i := len(j.entries) - 1; i >= 0; i-- {
		e := j.entries[i]
		rb[e.slot&RamboxMask] = e.previous
	}
	j.Reset()
}

// Reset forgets the recorded writes without touching any rambox
func (j *Journal) Reset() {
	j.entries = j.entries[:0]
}
