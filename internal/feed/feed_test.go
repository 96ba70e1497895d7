package feed

import (
	"testing"

	"helwati-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notif(recipient uuid.UUID, read bool) domain.Notification {
	return domain.Notification{
		NotificationID: uuid.New(),
		UserID:         recipient,
		Type:           domain.NotificationTypeLike,
		IsRead:         read,
	}
}

func TestAppend_NewestFirst(t *testing.T) {
	me := uuid.New()
	f := New(me)
	first := notif(me, false)
	second := notif(me, false)
	f.Append(first)
	f.Append(second)

	entries := f.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, second.NotificationID, entries[0].NotificationID)
	assert.Equal(t, first.NotificationID, entries[1].NotificationID)
}

func TestAppend_WrongRecipientIgnored(t *testing.T) {
	f := New(uuid.New())
	f.Append(notif(uuid.New(), false))
	assert.Equal(t, 0, f.Len())
}

func TestAppend_SelfNotificationSuppressed(t *testing.T) {
	me := uuid.New()
	f := New(me)
	n := notif(me, false)
	n.ActorID = &me
	f.Append(n)
	assert.Equal(t, 0, f.Len())
}

func TestAppend_DuplicateIDIgnored(t *testing.T) {
	me := uuid.New()
	f := New(me)
	n := notif(me, false)
	f.Append(n)
	f.Append(n)
	assert.Equal(t, 1, f.Len())
}

func TestMarkRead_Idempotent(t *testing.T) {
	me := uuid.New()
	f := New(me)
	n := notif(me, false)
	f.Append(n)

	f.MarkRead(n.NotificationID)
	assert.Equal(t, 0, f.UnreadCount())
	f.MarkRead(n.NotificationID)
	assert.Equal(t, 0, f.UnreadCount())
	assert.True(t, f.Entries()[0].IsRead)
}

func TestMarkRead_AbsentIDNoOp(t *testing.T) {
	me := uuid.New()
	f := New(me)
	f.Append(notif(me, false))
	f.MarkRead(uuid.New())
	assert.Equal(t, 1, f.UnreadCount())
}

func TestMarkAllRead(t *testing.T) {
	me := uuid.New()
	f := New(me)
	f.Append(notif(me, false))
	f.Append(notif(me, false))

	f.MarkAllRead()
	assert.Equal(t, 0, f.UnreadCount())
	for _, n := range f.Entries() {
		assert.True(t, n.IsRead)
	}
}

func TestDelete_PreservesOrder(t *testing.T) {
	me := uuid.New()
	f := New(me)
	n1 := notif(me, false)
	n2 := notif(me, false)
	n3 := notif(me, false)
	// Load keeps given order (newest first as queried).
	f.Load([]domain.Notification{n1, n2, n3})

	f.Delete(n2.NotificationID)
	entries := f.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, n1.NotificationID, entries[0].NotificationID)
	assert.Equal(t, n3.NotificationID, entries[1].NotificationID)
}

func TestDelete_AbsentIDNoOp(t *testing.T) {
	me := uuid.New()
	f := New(me)
	f.Append(notif(me, false))
	f.Delete(uuid.New())
	assert.Equal(t, 1, f.Len())
}

func TestClearAll(t *testing.T) {
	me := uuid.New()
	f := New(me)
	f.Append(notif(me, false))
	f.Append(notif(me, true))

	f.ClearAll()
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, 0, f.UnreadCount())
}

func TestLoad_DropsForeignEntries(t *testing.T) {
	me := uuid.New()
	f := New(me)
	f.Load([]domain.Notification{notif(me, false), notif(uuid.New(), false)})
	assert.Equal(t, 1, f.Len())
}

// UnreadCount must always equal a fresh scan regardless of the operation
// sequence applied.
func TestUnreadCount_MatchesScanAfterMixedOperations(t *testing.T) {
	me := uuid.New()
	f := New(me)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		n := notif(me, false)
		ids = append(ids, n.NotificationID)
		f.Append(n)
	}
	f.MarkRead(ids[1])
	f.Delete(ids[3])
	f.MarkRead(ids[3]) // absent
	f.Append(notif(me, true))

	scan := 0
	for _, n := range f.Entries() {
		if !n.IsRead {
			scan++
		}
	}
	assert.Equal(t, scan, f.UnreadCount())
	assert.Equal(t, 3, f.UnreadCount())

	f.MarkAllRead()
	assert.Equal(t, 0, f.UnreadCount())
}
