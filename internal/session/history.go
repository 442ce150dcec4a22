package session

import "hostdash/internal/models"

// history is a fixed-capacity ring of login records with at most one entry
// per username. It is not synchronized; Registry holds the lock.
type history struct {
	buf  []models.SessionRecord
	head int // next write slot; the oldest entry once the ring is full
	n    int
	seen map[string]struct{}
}

func newHistory(size int) *history {
	return &history{
		buf:  make([]models.SessionRecord, size),
		seen: make(map[string]struct{}, size),
	}
}

// add records rec unless its username is already in the ring. When full,
// the oldest entry is dropped and its username becomes eligible again.
func (h *history) add(rec models.SessionRecord) bool {
	if _, dup := h.seen[rec.Username]; dup {
		return false
	}

	if h.n == len(h.buf) {
		delete(h.seen, h.buf[h.head].Username)
	} else {
		h.n++
	}
	h.buf[h.head] = rec
	h.head = (h.head + 1) % len(h.buf)
	h.seen[rec.Username] = struct{}{}
	return true
}

func (h *history) list() []models.SessionRecord {
	out := make([]models.SessionRecord, 0, h.n)
	size := len(h.buf)
	for i := 1; i <= h.n; i++ {
		out = append(out, h.buf[(h.head-i+size)%size])
	}
	return out
}
