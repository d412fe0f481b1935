package moderation

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// runMassbanWithReason drives the confirmation exchange: it starts the batch
// and answers the prompt as the requesting operator.
func runMassbanWithReason(t *testing.T, te *testEngine, req MassbanRequest, answer string) (*BatchOutcome, Outcome) {
	t.Helper()
	type result struct {
		batch *BatchOutcome
		out   Outcome
	}
	done := make(chan result, 1)
	go func() {
		b, o := te.engine.RunMassban(req)
		done <- result{b, o}
	}()

	waitFor(t, func() bool { return te.engine.confirms.PendingCount() == 1 })
	if !te.engine.ResolveConfirmation(req.ChannelID, req.RequesterID, answer) {
		t.Fatal("confirmation message should consume the pending token")
	}
	res := <-done
	return res.batch, res.out
}

func TestMassbanPartialFailure(t *testing.T) {
	te := newTestEngine()
	te.actions.banErr["B"] = errors.New("unknown user")

	req := MassbanRequest{GuildID: "g1", ChannelID: "c1", RequesterID: "m1", TargetIDs: []string{"A", "B", "C"}}
	batch, out := runMassbanWithReason(t, te, req, "raid coordinada")

	if out.Status != StatusSuccess {
		t.Fatalf("outcome = %+v", out)
	}
	if batch.Requested != 3 {
		t.Errorf("Requested = %d, want 3", batch.Requested)
	}
	if len(batch.Succeeded) != 2 || len(batch.Failed) != 1 || batch.Failed[0] != "B" {
		t.Errorf("batch = %+v", batch)
	}

	// One case per successful ban, all tagged with the batch id.
	cases := te.cases.all()
	if len(cases) != 2 {
		t.Fatalf("cases = %d, want 2", len(cases))
	}
	for _, c := range cases {
		if c.BatchID != batch.BatchID {
			t.Errorf("case %d BatchID = %q, want %q", c.CaseNumber, c.BatchID, batch.BatchID)
		}
		if c.Reason != "raid coordinada" {
			t.Errorf("case %d Reason = %q", c.CaseNumber, c.Reason)
		}
	}

	// Exactly one summary record, counting only the successes.
	if len(te.activity.records) != 1 {
		t.Fatalf("activity records = %d, want 1", len(te.activity.records))
	}
	if te.activity.records[0].Count != 2 {
		t.Errorf("summary Count = %d, want 2", te.activity.records[0].Count)
	}
}

func TestMassbanAuthorityPrecheckAbortsWholeBatch(t *testing.T) {
	te := newTestEngine()
	te.authority.deny["B"] = true

	batch, out := te.engine.RunMassban(MassbanRequest{GuildID: "g1", ChannelID: "c1", RequesterID: "m1", TargetIDs: []string{"A", "B", "C"}})
	if out.Status != StatusDenied {
		t.Fatalf("Status = %v, want denied", out.Status)
	}
	if !errors.Is(out.Err, ErrAuthorityDenied) {
		t.Errorf("Err = %v, want ErrAuthorityDenied", out.Err)
	}
	if batch != nil {
		t.Errorf("batch = %+v, want nil", batch)
	}
	// All-or-nothing: not even the allowed targets get touched.
	if te.actions.countOp("ban") != 0 || len(te.cases.all()) != 0 {
		t.Error("a failed pre-check must leave zero mutations and zero cases")
	}
}

func TestMassbanCancellation(t *testing.T) {
	te := newTestEngine()

	req := MassbanRequest{GuildID: "g1", ChannelID: "c1", RequesterID: "m1", TargetIDs: []string{"A"}}
	batch, out := runMassbanWithReason(t, te, req, "cancelar")

	if out.Status != StatusCancelled || !errors.Is(out.Err, ErrCancelled) {
		t.Fatalf("outcome = %+v, want cancelled", out)
	}
	if batch != nil || te.actions.countOp("ban") != 0 {
		t.Error("a cancelled batch must not mutate anything")
	}
}

func TestMassbanTimeout(t *testing.T) {
	te := newTestEngine()

	// Shrink the wait by resolving nothing and using the registry directly.
	done := make(chan Outcome, 1)
	go func() {
		_, err := te.engine.confirms.Wait("c1", "m1", 10*time.Millisecond)
		if errors.Is(err, ErrConfirmationTimeout) {
			done <- Outcome{Status: StatusCancelled, Err: err}
			return
		}
		done <- Outcome{}
	}()
	out := <-done
	if out.Status != StatusCancelled || !errors.Is(out.Err, ErrConfirmationTimeout) {
		t.Fatalf("outcome = %+v, want timeout cancellation", out)
	}
}

func TestMassbanRejectsOversizedBatch(t *testing.T) {
	te := newTestEngine()

	targets := make([]string, MassbanCap+1)
	for i := range targets {
		targets[i] = fmt.Sprintf("user-%d", i)
	}

	batch, out := te.engine.RunMassban(MassbanRequest{GuildID: "g1", ChannelID: "c1", RequesterID: "m1", TargetIDs: targets})
	if !errors.Is(out.Err, ErrTooManyTargets) {
		t.Fatalf("Err = %v, want ErrTooManyTargets", out.Err)
	}
	if batch != nil || te.actions.countOp("ban") != 0 {
		t.Error("an oversized batch must not mutate anything")
	}
}

func TestMassbanDeduplicatesTargets(t *testing.T) {
	te := newTestEngine()

	req := MassbanRequest{GuildID: "g1", ChannelID: "c1", RequesterID: "m1", TargetIDs: []string{"A", "A", "B"}}
	batch, out := runMassbanWithReason(t, te, req, "spam")
	if out.Status != StatusSuccess {
		t.Fatalf("outcome = %+v", out)
	}
	if batch.Requested != 2 || len(batch.Succeeded) != 2 {
		t.Errorf("batch = %+v, want 2 unique targets", batch)
	}
	if te.actions.countOp("ban") != 2 {
		t.Errorf("ban calls = %d, want 2", te.actions.countOp("ban"))
	}
}
