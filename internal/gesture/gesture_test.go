package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingHaptics struct {
	calls int
}

func (c *countingHaptics) Vibrate() { c.calls++ }

func TestNotificationSwipe_BelowThresholdSnapsBack(t *testing.T) {
	h := &countingHaptics{}
	tr := NewNotificationTracker(h)

	committed := tr.End(-60)
	assert.False(t, committed)
	assert.Equal(t, Resting, tr.State())
	assert.Equal(t, 0, h.calls)
}

func TestNotificationSwipe_CommitAtThreshold(t *testing.T) {
	h := &countingHaptics{}
	tr := NewNotificationTracker(h)

	assert.True(t, tr.End(-100))
	assert.Equal(t, Committed, tr.State())
	assert.Equal(t, 1, h.calls)
}

func TestNotificationSwipe_CommitBeyondThreshold(t *testing.T) {
	tr := NewNotificationTracker(NopHaptics{})
	assert.True(t, tr.End(-140))
	assert.Equal(t, Committed, tr.State())
}

func TestCommittedTrackerIgnoresFurtherGestures(t *testing.T) {
	h := &countingHaptics{}
	tr := NewNotificationTracker(h)
	assert.True(t, tr.End(-120))

	assert.False(t, tr.End(-120))
	assert.Equal(t, Committed, tr.State())
	assert.Equal(t, 1, h.calls)

	tr.Reset()
	assert.Equal(t, Committed, tr.State())
}

func TestDashboardSwipe_RevealAndHide(t *testing.T) {
	tr := NewDashboardTracker(NopHaptics{})

	assert.False(t, tr.End(-50))
	assert.Equal(t, Revealed, tr.State())

	// Short rightward drag keeps the actions revealed.
	assert.False(t, tr.End(20))
	assert.Equal(t, Revealed, tr.State())

	assert.False(t, tr.End(50))
	assert.Equal(t, Resting, tr.State())
}

func TestDashboardSwipe_NeverCommits(t *testing.T) {
	tr := NewDashboardTracker(NopHaptics{})
	assert.False(t, tr.End(-500))
	assert.Equal(t, Revealed, tr.State())
}

func TestShortDragKeepsPriorState(t *testing.T) {
	tr := NewDashboardTracker(NopHaptics{})
	assert.False(t, tr.End(-20))
	assert.Equal(t, Resting, tr.State())

	tr.End(-60)
	assert.Equal(t, Revealed, tr.State())
	// Below both thresholds: stays revealed.
	assert.False(t, tr.End(-10))
	assert.Equal(t, Revealed, tr.State())
}

func TestReset(t *testing.T) {
	tr := NewDashboardTracker(nil)
	tr.End(-80)
	assert.Equal(t, Revealed, tr.State())
	tr.Reset()
	assert.Equal(t, Resting, tr.State())
}
