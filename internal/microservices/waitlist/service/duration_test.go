package service

import (
	"testing"
	"time"

	"restaurant-floor/internal/domain"
)

func TestWaitDurationAcrossMidnight(t *testing.T) {
	registered := time.Date(2026, time.October, 18, 23, 50, 0, 0, time.UTC)
	now := time.Date(2026, time.October, 19, 0, 15, 0, 0, time.UTC)
	e := domain.WaitListEntry{RegisteredAt: registered}

	d, ok := WaitDuration(e, now)
	if !ok || d != 25*time.Minute {
		t.Fatalf("WaitDuration = %v, %v; want 25m", d, ok)
	}
	if got := WaitLabel(e, now); got != "0:25" {
		t.Fatalf("WaitLabel = %q, want 0:25", got)
	}
}

func TestWaitLabel(t *testing.T) {
	registered := time.Date(2026, time.October, 19, 17, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		entry domain.WaitListEntry
		now   time.Time
		want  string
	}{
		{"just registered", domain.WaitListEntry{RegisteredAt: registered}, registered, "0:00"},
		{"over an hour", domain.WaitListEntry{RegisteredAt: registered}, registered.Add(65*time.Minute + 40*time.Second), "1:05"},
		{"clock skew", domain.WaitListEntry{RegisteredAt: registered}, registered.Add(-time.Minute), "0:00"},
		{"seated", domain.WaitListEntry{RegisteredAt: registered, IsSeated: true}, registered.Add(3 * time.Hour), SeatedLabel},
	}
	for _, c := range cases {
		if got := WaitLabel(c.entry, c.now); got != c.want {
			t.Errorf("%s: WaitLabel = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestViewFreezesSeatedEntries(t *testing.T) {
	registered := time.Date(2026, time.October, 19, 17, 0, 0, 0, time.UTC)
	v := View(domain.WaitListEntry{RegisteredAt: registered, IsSeated: true}, registered.Add(time.Hour))
	if v.WaitMinutes != nil || v.WaitLabel != SeatedLabel {
		t.Fatalf("seated view = %+v", v)
	}

	v = View(domain.WaitListEntry{RegisteredAt: registered}, registered.Add(42*time.Minute))
	if v.WaitMinutes == nil || *v.WaitMinutes != 42 {
		t.Fatalf("waiting view = %+v", v)
	}
}
