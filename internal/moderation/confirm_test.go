package moderation

import (
	"errors"
	"testing"
	"time"
)

func TestConfirmResolve(t *testing.T) {
	r := NewConfirmRegistry()

	done := make(chan struct{})
	var reason string
	var err error
	go func() {
		reason, err = r.Wait("c1", "mod1", time.Second)
		close(done)
	}()

	// Wait for the token to be registered before resolving.
	waitFor(t, func() bool { return r.PendingCount() == 1 })

	if !r.Resolve("c1", "mod1", "  spam masivo  ") {
		t.Fatal("Resolve should consume the pending token")
	}
	<-done

	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if reason != "spam masivo" {
		t.Errorf("reason = %q, want trimmed %q", reason, "spam masivo")
	}
	if r.PendingCount() != 0 {
		t.Error("token should be gone after resolution")
	}
}

func TestConfirmCancel(t *testing.T) {
	r := NewConfirmRegistry()

	done := make(chan error, 1)
	go func() {
		_, err := r.Wait("c1", "mod1", time.Second)
		done <- err
	}()
	waitFor(t, func() bool { return r.PendingCount() == 1 })

	if !r.Resolve("c1", "mod1", "CANCELAR") {
		t.Fatal("Resolve should consume the token")
	}
	if err := <-done; !errors.Is(err, ErrCancelled) {
		t.Errorf("Wait() error = %v, want ErrCancelled", err)
	}
}

func TestConfirmTimeout(t *testing.T) {
	r := NewConfirmRegistry()

	_, err := r.Wait("c1", "mod1", 10*time.Millisecond)
	if !errors.Is(err, ErrConfirmationTimeout) {
		t.Errorf("Wait() error = %v, want ErrConfirmationTimeout", err)
	}
	if r.PendingCount() != 0 {
		t.Error("timed-out token should be removed")
	}
}

func TestConfirmWrongAuthorDoesNotResolve(t *testing.T) {
	r := NewConfirmRegistry()

	done := make(chan error, 1)
	go func() {
		_, err := r.Wait("c1", "mod1", 100*time.Millisecond)
		done <- err
	}()
	waitFor(t, func() bool { return r.PendingCount() == 1 })

	// Same channel, different author: the message is not a confirmation.
	if r.Resolve("c1", "otra", "razón") {
		t.Error("a different author must not consume the token")
	}
	if err := <-done; !errors.Is(err, ErrConfirmationTimeout) {
		t.Errorf("Wait() error = %v, want timeout", err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
