// Package gesture models the swipe interaction on list rows: a horizontal
// drag either reveals action buttons, commits a delete, or snaps back,
// decided purely by the offset at gesture end against fixed thresholds.
// Rendering (the snap-back animation itself) is out of scope; only the
// threshold contract lives here.
package gesture

// State of one list row's swipe machine. Each row is independent.
type State int

const (
	// Resting: no horizontal offset, actions hidden.
	Resting State = iota
	// Revealed: action buttons exposed at a fixed offset.
	Revealed
	// Committed: the row's destructive action fired; terminal.
	Committed
)

func (s State) String() string {
	switch s {
	case Resting:
		return "resting"
	case Revealed:
		return "revealed"
	case Committed:
		return "committed"
	}
	return "unknown"
}

// Thresholds used by the two swipe contexts in the app. Offsets are in
// view units; leftward drags are negative.
const (
	// DashboardRevealThreshold: seller dashboard rows reveal edit/delete.
	DashboardRevealThreshold = -50
	// DashboardHideThreshold: a rightward drag past this hides them again.
	DashboardHideThreshold = 50
	// NotificationCommitThreshold: notification rows delete directly,
	// with no confirmation step.
	NotificationCommitThreshold = -100
)

// Haptics is the fire-and-forget vibration collaborator. Implementations
// must never block or fail loudly.
type Haptics interface {
	Vibrate()
}

// NopHaptics ignores every signal.
type NopHaptics struct{}

func (NopHaptics) Vibrate() {}

// Tracker runs the swipe machine for one row. CommitThreshold of zero
// disables committing (reveal-only contexts); RevealThreshold of zero
// disables revealing (commit-only contexts).
type Tracker struct {
	RevealThreshold int
	HideThreshold   int
	CommitThreshold int
	Haptics         Haptics

	state State
}

// NewDashboardTracker configures a reveal-only tracker for seller
// dashboard product rows.
func NewDashboardTracker(h Haptics) *Tracker {
	return &Tracker{
		RevealThreshold: DashboardRevealThreshold,
		HideThreshold:   DashboardHideThreshold,
		Haptics:         h,
	}
}

// NewNotificationTracker configures a commit-only tracker for notification
// rows (swipe-to-delete).
func NewNotificationTracker(h Haptics) *Tracker {
	return &Tracker{
		CommitThreshold: NotificationCommitThreshold,
		Haptics:         h,
	}
}

// State returns the current state.
func (t *Tracker) State() State {
	return t.state
}

// End resolves a finished drag gesture. It returns true when the gesture
// crossed the commit threshold; the caller then issues the actual delete
// (feed.Delete or the products remove call). Offsets short of every
// threshold snap back: the state is unchanged. A committed tracker ignores
// further gestures.
func (t *Tracker) End(offset int) bool {
	if t.state == Committed {
		return false
	}
	if t.CommitThreshold != 0 && offset <= t.CommitThreshold {
		t.state = Committed
		if t.Haptics != nil {
			t.Haptics.Vibrate()
		}
		return true
	}
	if t.RevealThreshold != 0 && offset <= t.RevealThreshold {
		t.state = Revealed
		return false
	}
	if t.HideThreshold != 0 && offset >= t.HideThreshold {
		t.state = Resting
		return false
	}
	// Below every threshold: revert to the prior state.
	return false
}

// Reset returns a non-committed tracker to Resting (e.g. after the row's
// actions were dismissed programmatically).
func (t *Tracker) Reset() {
	if t.state != Committed {
		t.state = Resting
	}
}
