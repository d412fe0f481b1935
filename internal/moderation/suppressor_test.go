package moderation

import (
	"testing"
	"time"
)

func TestSuppressorConsumeExactlyOne(t *testing.T) {
	s := NewSuppressor()
	s.Register("g1", EventBan, "u1", DefaultSuppressionTTL)

	if !s.IsSuppressed("g1", EventBan, "u1") {
		t.Fatal("expected entry to be live after Register")
	}
	if !s.Consume("g1", EventBan, "u1") {
		t.Fatal("expected Consume to find the entry")
	}
	if s.Consume("g1", EventBan, "u1") {
		t.Error("second Consume should not find an entry")
	}
	if s.IsSuppressed("g1", EventBan, "u1") {
		t.Error("entry should be gone after Consume")
	}
}

func TestSuppressorKeyMatching(t *testing.T) {
	s := NewSuppressor()
	s.Register("g1", EventBan, "u1", DefaultSuppressionTTL)

	tests := []struct {
		name    string
		guildID string
		kind    EventKind
		userID  string
		want    bool
	}{
		{"exact match", "g1", EventBan, "u1", true},
		{"different kind", "g1", EventUnban, "u1", false},
		{"different user", "g1", EventBan, "u2", false},
		{"different guild", "g2", EventBan, "u1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsSuppressed(tt.guildID, tt.kind, tt.userID); got != tt.want {
				t.Errorf("IsSuppressed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSuppressorMultipleEntries(t *testing.T) {
	s := NewSuppressor()
	s.Register("g1", EventBan, "u1", DefaultSuppressionTTL)
	s.Register("g1", EventBan, "u1", DefaultSuppressionTTL)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if !s.Consume("g1", EventBan, "u1") {
		t.Fatal("first Consume should succeed")
	}
	if !s.Consume("g1", EventBan, "u1") {
		t.Fatal("second Consume should succeed, two entries were registered")
	}
	if s.Consume("g1", EventBan, "u1") {
		t.Error("third Consume should fail")
	}
}

func TestSuppressorExpiryBoundary(t *testing.T) {
	now := time.Now()
	s := NewSuppressor()
	s.now = func() time.Time { return now }

	s.Register("g1", EventKick, "u1", 15*time.Second)

	// One instant before the deadline the entry is still live.
	s.now = func() time.Time { return now.Add(15*time.Second - time.Nanosecond) }
	if !s.IsSuppressed("g1", EventKick, "u1") {
		t.Error("entry should be live just before expiry")
	}

	// Exactly at the deadline the entry is dead.
	s.now = func() time.Time { return now.Add(15 * time.Second) }
	if s.IsSuppressed("g1", EventKick, "u1") {
		t.Error("entry should be dead exactly at expiry")
	}
	if s.Consume("g1", EventKick, "u1") {
		t.Error("Consume should not find an expired entry")
	}
}

func TestSuppressorDefaultTTL(t *testing.T) {
	now := time.Now()
	s := NewSuppressor()
	s.now = func() time.Time { return now }

	// ttl <= 0 falls back to the default.
	s.Register("g1", EventBan, "u1", 0)

	s.now = func() time.Time { return now.Add(DefaultSuppressionTTL - time.Second) }
	if !s.IsSuppressed("g1", EventBan, "u1") {
		t.Error("entry should still be live within the default TTL")
	}
	s.now = func() time.Time { return now.Add(DefaultSuppressionTTL) }
	if s.IsSuppressed("g1", EventBan, "u1") {
		t.Error("entry should expire after the default TTL")
	}
}
