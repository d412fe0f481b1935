package moderation

import (
	"errors"
	"testing"
	"time"
)

func TestCorrelatePicksMostRecent(t *testing.T) {
	now := time.Now()
	source := &fakeAuditSource{entries: []AuditEntry{
		{ID: "a", Kind: EventBan, ModeratorID: "mod1", TargetID: "u1", Reason: "spam", CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "b", Kind: EventBan, ModeratorID: "mod2", TargetID: "u1", Reason: "raid", CreatedAt: now.Add(-30 * time.Second)},
		{ID: "c", Kind: EventBan, ModeratorID: "mod3", TargetID: "u2", Reason: "otro", CreatedAt: now.Add(-10 * time.Second)},
	}}
	c := NewCorrelator(source)
	c.now = func() time.Time { return now }

	match := c.Correlate("g1", EventBan, "u1")
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.ModeratorID != "mod2" || match.EntryID != "b" {
		t.Errorf("got entry %s by %s, want b by mod2", match.EntryID, match.ModeratorID)
	}
	if match.Reason != "raid" {
		t.Errorf("Reason = %q, want %q", match.Reason, "raid")
	}
}

func TestCorrelateRejectsStaleEntries(t *testing.T) {
	now := time.Now()
	source := &fakeAuditSource{entries: []AuditEntry{
		{ID: "old", Kind: EventKick, ModeratorID: "mod1", TargetID: "u1", CreatedAt: now.Add(-10 * time.Minute)},
	}}
	c := NewCorrelator(source)
	c.now = func() time.Time { return now }

	if match := c.Correlate("g1", EventKick, "u1"); match != nil {
		t.Errorf("stale entry should not match, got %+v", match)
	}
}

func TestCorrelateKindAndTargetMustMatch(t *testing.T) {
	now := time.Now()
	source := &fakeAuditSource{entries: []AuditEntry{
		{ID: "a", Kind: EventUnban, ModeratorID: "mod1", TargetID: "u1", CreatedAt: now},
		{ID: "b", Kind: EventBan, ModeratorID: "mod1", TargetID: "u9", CreatedAt: now},
	}}
	c := NewCorrelator(source)
	c.now = func() time.Time { return now }

	if match := c.Correlate("g1", EventBan, "u1"); match != nil {
		t.Errorf("expected no match, got %+v", match)
	}
}

func TestCorrelateFetchErrorMeansUnknownActor(t *testing.T) {
	source := &fakeAuditSource{err: errors.New("missing permissions")}
	c := NewCorrelator(source)

	// A fetch failure is never a hard error, just an unattributed event.
	if match := c.Correlate("g1", EventBan, "u1"); match != nil {
		t.Errorf("expected nil on fetch error, got %+v", match)
	}
}
