// Package feed holds one recipient's in-memory notification feed: the
// newest-first collection a connected client sees, fed by an initial
// snapshot and then by realtime inserts. All mutating operations are
// local-state transitions; persistence is the caller's concern.
package feed

import (
	"github.com/google/uuid"

	"helwati-backend/internal/domain"
)

// Feed is owned by a single recipient. It is not safe for concurrent use;
// the owning connection serializes access.
type Feed struct {
	recipient uuid.UUID
	entries   []domain.Notification
}

// New returns an empty feed scoped to recipient.
func New(recipient uuid.UUID) *Feed {
	return &Feed{recipient: recipient}
}

// Load replaces the collection with a snapshot, assumed already ordered
// newest first (the repository query orders by created_at DESC). Entries
// addressed to another recipient are dropped.
func (f *Feed) Load(snapshot []domain.Notification) {
	f.entries = f.entries[:0]
	for _, n := range snapshot {
		if n.UserID == f.recipient {
			f.entries = append(f.entries, n)
		}
	}
}

// Append inserts n at the head, keeping the newest-first invariant.
// It is a no-op when n belongs to a different recipient, when the actor is
// the recipient (self-notification), or when the id is already present
// (realtime echo of a row the snapshot already contained).
func (f *Feed) Append(n domain.Notification) {
	if n.UserID != f.recipient {
		return
	}
	if n.ActorID != nil && *n.ActorID == n.UserID {
		return
	}
	if f.index(n.NotificationID) >= 0 {
		return
	}
	f.entries = append([]domain.Notification{n}, f.entries...)
}

// MarkRead sets the read flag on the matching entry. Marking an already
// read entry, or an absent id, is a no-op.
func (f *Feed) MarkRead(id uuid.UUID) {
	if i := f.index(id); i >= 0 {
		f.entries[i].IsRead = true
	}
}

// MarkAllRead sets the read flag on every entry.
func (f *Feed) MarkAllRead() {
	for i := range f.entries {
		f.entries[i].IsRead = true
	}
}

// Delete removes the matching entry, preserving the relative order of the
// rest. Absent ids are a no-op.
func (f *Feed) Delete(id uuid.UUID) {
	if i := f.index(id); i >= 0 {
		f.entries = append(f.entries[:i], f.entries[i+1:]...)
	}
}

// ClearAll empties the collection.
func (f *Feed) ClearAll() {
	f.entries = f.entries[:0]
}

// UnreadCount is computed by a full scan on every call so it can never
// drift from the collection.
func (f *Feed) UnreadCount() int {
	count := 0
	for _, n := range f.entries {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// Entries returns the current collection, newest first. The returned slice
// is a copy; mutating it does not affect the feed.
func (f *Feed) Entries() []domain.Notification {
	out := make([]domain.Notification, len(f.entries))
	copy(out, f.entries)
	return out
}

// Len returns the number of entries.
func (f *Feed) Len() int {
	return len(f.entries)
}

func (f *Feed) index(id uuid.UUID) int {
	for i, n := range f.entries {
		if n.NotificationID == id {
			return i
		}
	}
	return -1
}
