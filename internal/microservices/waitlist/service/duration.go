package service

import (
	"fmt"
	"time"

	"restaurant-floor/internal/domain"
)

const SeatedLabel = "Seated"

// WaitDuration is the time a waiting party has been in the queue at now,
// measured between absolute instants so it stays correct across midnight.
// Seated entries report ok=false: their wait is no longer tracked.
func WaitDuration(e domain.WaitListEntry, now time.Time) (d time.Duration, ok bool) {
	if e.IsSeated {
		return 0, false
	}
	d = now.Sub(e.RegisteredAt)
	if d < 0 {
		d = 0
	}
	return d, true
}

// WaitLabel renders "H:MM" for waiting parties and "Seated" otherwise.
func WaitLabel(e domain.WaitListEntry, now time.Time) string {
	d, ok := WaitDuration(e, now)
	if !ok {
		return SeatedLabel
	}
	mins := int(d / time.Minute)
	return fmt.Sprintf("%d:%02d", mins/60, mins%60)
}

// View attaches the wait projection computed at now.
func View(e domain.WaitListEntry, now time.Time) domain.WaitListEntryView {
	v := domain.WaitListEntryView{WaitListEntry: e, WaitLabel: WaitLabel(e, now)}
	if d, ok := WaitDuration(e, now); ok {
		m := int(d / time.Minute)
		v.WaitMinutes = &m
	}
	return v
}
