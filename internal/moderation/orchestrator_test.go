package moderation

import (
	"errors"
	"testing"
	"time"

	"github.com/CastorStudios/CentinelaGo/pkg/models"
)

func TestHandleEventSuppressedEchoCreatesNoCase(t *testing.T) {
	te := newTestEngine()
	te.engine.suppressor.Register("g1", EventBan, "u1", DefaultSuppressionTTL)

	c, err := te.engine.HandleEvent(ModerationEvent{GuildID: "g1", UserID: "u1", Kind: EventBan})
	if err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if c != nil {
		t.Errorf("suppressed echo must not create a case, got %+v", c)
	}
	if len(te.cases.all()) != 0 {
		t.Error("no case should be persisted")
	}

	// The suppression was consumed: the same event again is treated as external.
	c, err = te.engine.HandleEvent(ModerationEvent{GuildID: "g1", UserID: "u1", Kind: EventBan})
	if err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if c == nil {
		t.Fatal("second event should create an automatic case")
	}
	if !c.Automatic {
		t.Error("gateway-originated case must be automatic")
	}
}

func TestHandleEventAttributesModeratorFromAudit(t *testing.T) {
	te := newTestEngine()
	te.audit.entries = []AuditEntry{
		{ID: "e1", Kind: EventBan, ModeratorID: "mod9", TargetID: "u1", Reason: "raid", CreatedAt: time.Now()},
	}

	c, err := te.engine.HandleEvent(ModerationEvent{GuildID: "g1", UserID: "u1", Kind: EventBan})
	if err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if c.ModeratorID != "mod9" || c.Reason != "raid" {
		t.Errorf("case = %+v, want moderator mod9 reason raid", c)
	}
}

func TestHandleEventAuditFailureStillCreatesCase(t *testing.T) {
	te := newTestEngine()
	te.audit.err = errors.New("403")

	c, err := te.engine.HandleEvent(ModerationEvent{GuildID: "g1", UserID: "u1", Kind: EventBan})
	if err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if c == nil {
		t.Fatal("audit failure must not block case creation")
	}
	if c.ModeratorID != "" {
		t.Errorf("ModeratorID = %q, want absent", c.ModeratorID)
	}
}

func TestHandleEventKickWithoutAuditMatchIsIgnored(t *testing.T) {
	te := newTestEngine()

	// A member-remove with no kick audit entry is a voluntary leave.
	c, err := te.engine.HandleEvent(ModerationEvent{GuildID: "g1", UserID: "u1", Kind: EventKick})
	if err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if c != nil || len(te.cases.all()) != 0 {
		t.Error("voluntary leave must not create a case")
	}
}

func TestHandleEventMemberJoinReappliesLiveMute(t *testing.T) {
	te := newTestEngine()
	mc, _ := te.cases.CreateCase(&models.Case{GuildID: "g1", Type: models.CaseMute, UserID: "u1"})
	te.mutes.UpsertMute("g1", "u1", mc.CaseNumber, nil)

	if _, err := te.engine.HandleEvent(ModerationEvent{GuildID: "g1", UserID: "u1", Kind: EventMemberJoin}); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if te.actions.countOp("timeout") != 1 {
		t.Error("live mute should be re-applied on rejoin")
	}
	got, _ := te.cases.FindByCaseNumber("g1", mc.CaseNumber)
	if len(got.Notes) != 1 {
		t.Errorf("expected a note on the mute case, got %d", len(got.Notes))
	}
}

func TestRunCommandDeniedLeavesNoState(t *testing.T) {
	te := newTestEngine()
	te.authority.deny["u1"] = true

	out := te.engine.RunCommand(CommandRequest{GuildID: "g1", ModeratorID: "m1", UserID: "u1", Action: models.CaseBan, Reason: "spam"})
	if out.Status != StatusDenied {
		t.Fatalf("Status = %v, want denied", out.Status)
	}
	if len(te.actions.calls) != 0 {
		t.Errorf("denial must not touch the platform, got %+v", te.actions.calls)
	}
	if len(te.cases.all()) != 0 || te.engine.suppressor.Len() != 0 {
		t.Error("denial must leave no case and no suppression")
	}
}

func TestRunCommandBanOrdering(t *testing.T) {
	te := newTestEngine()

	out := te.engine.RunCommand(CommandRequest{GuildID: "g1", ModeratorID: "m1", UserID: "u1", Action: models.CaseBan, Reason: "spam"})
	if out.Status != StatusSuccess {
		t.Fatalf("Status = %v, want success (err=%v)", out.Status, out.Err)
	}
	if !out.Notified {
		t.Error("DM delivered, Notified should be true")
	}
	if out.Case == nil || out.Case.Type != models.CaseBan || out.Case.Automatic {
		t.Errorf("case = %+v", out.Case)
	}

	// For a ban the DM goes out before the mutation.
	if len(te.actions.calls) < 2 || te.actions.calls[0].op != "dm" || te.actions.calls[1].op != "ban" {
		t.Errorf("call order = %+v, want dm then ban", te.actions.calls)
	}

	// The echo of our own ban must be suppressed.
	if !te.engine.suppressor.IsSuppressed("g1", EventBan, "u1") {
		t.Error("a suppression should be live after the ban")
	}
	// The activity log is told to skip both the ban echo and the
	// member-remove it triggers.
	if len(te.activity.ignored) != 2 {
		t.Errorf("activity log should be told to ignore both echoes, got %v", te.activity.ignored)
	}
	if len(te.activity.records) != 1 {
		t.Errorf("exactly one activity record expected, got %d", len(te.activity.records))
	}
}

func TestRunCommandWarnNotifiesAfterAndMutatesNothing(t *testing.T) {
	te := newTestEngine()

	out := te.engine.RunCommand(CommandRequest{GuildID: "g1", ModeratorID: "m1", UserID: "u1", Action: models.CaseWarn, Reason: "flood"})
	if out.Status != StatusSuccess || !out.Notified {
		t.Fatalf("outcome = %+v", out)
	}
	if te.actions.countOp("ban")+te.actions.countOp("kick")+te.actions.countOp("timeout") != 0 {
		t.Error("warn must not mutate the platform")
	}
	if te.engine.suppressor.Len() != 0 {
		t.Error("warn produces no echo, no suppression should be registered")
	}
}

func TestRunCommandMutationFailureCreatesNoCase(t *testing.T) {
	te := newTestEngine()
	te.actions.kickErr = errors.New("50013 missing permissions")

	out := te.engine.RunCommand(CommandRequest{GuildID: "g1", ModeratorID: "m1", UserID: "u1", Action: models.CaseKick})
	if out.Status != StatusMutationFailed {
		t.Fatalf("Status = %v, want mutation failed", out.Status)
	}
	if !errors.Is(out.Err, ErrMutationFailed) {
		t.Errorf("Err = %v, want ErrMutationFailed", out.Err)
	}
	if len(te.cases.all()) != 0 {
		t.Error("a failed mutation must not book a case")
	}
	if len(te.activity.records) != 0 {
		t.Error("a failed mutation must not be recorded as activity")
	}
}

func TestRunCommandRemuteAttachesToOpenCase(t *testing.T) {
	te := newTestEngine()

	first := te.engine.RunCommand(CommandRequest{GuildID: "g1", ModeratorID: "m1", UserID: "u1", Action: models.CaseMute, Reason: "flood", Duration: time.Hour})
	if first.Status != StatusSuccess {
		t.Fatalf("first mute failed: %+v", first)
	}

	second := te.engine.RunCommand(CommandRequest{GuildID: "g1", ModeratorID: "m2", UserID: "u1", Action: models.CaseMute, Reason: "reincidencia", Duration: 2 * time.Hour})
	if second.Status != StatusSuccess {
		t.Fatalf("re-mute failed: %+v", second)
	}

	// Never a second open Mute case for the same user.
	if n := len(te.cases.all()); n != 1 {
		t.Fatalf("cases = %d, want 1", n)
	}
	if second.Case.CaseNumber != first.Case.CaseNumber {
		t.Errorf("re-mute attached to case %d, want %d", second.Case.CaseNumber, first.Case.CaseNumber)
	}
	got, _ := te.cases.FindByCaseNumber("g1", first.Case.CaseNumber)
	if len(got.Notes) != 1 {
		t.Fatalf("notes = %d, want 1", len(got.Notes))
	}
	// The mute state points at the original case with the extended deadline.
	st, _ := te.mutes.FindLiveMute("g1", "u1")
	if st == nil || st.CaseNumber != first.Case.CaseNumber {
		t.Errorf("mute state = %+v", st)
	}
}

func TestRunCommandUnmuteRequiresLiveMute(t *testing.T) {
	te := newTestEngine()

	out := te.engine.RunCommand(CommandRequest{GuildID: "g1", ModeratorID: "m1", UserID: "u1", Action: models.CaseUnmute})
	if out.Status != StatusMutationFailed || !errors.Is(out.Err, ErrNoLiveMute) {
		t.Fatalf("outcome = %+v, want ErrNoLiveMute", out)
	}
}

func TestRunCommandUnmuteReferencesMuteCase(t *testing.T) {
	te := newTestEngine()

	mute := te.engine.RunCommand(CommandRequest{GuildID: "g1", ModeratorID: "m1", UserID: "u1", Action: models.CaseMute, Duration: time.Hour})
	out := te.engine.RunCommand(CommandRequest{GuildID: "g1", ModeratorID: "m1", UserID: "u1", Action: models.CaseUnmute})
	if out.Status != StatusSuccess {
		t.Fatalf("unmute failed: %+v", out)
	}
	if out.Case.RefCase != mute.Case.CaseNumber {
		t.Errorf("RefCase = %d, want %d", out.Case.RefCase, mute.Case.CaseNumber)
	}
	if st, _ := te.mutes.FindLiveMute("g1", "u1"); st != nil {
		t.Error("mute state should be cleared after unmute")
	}
}

func TestRunCommandSoftbanSuppressesBothEchoes(t *testing.T) {
	te := newTestEngine()

	out := te.engine.RunCommand(CommandRequest{GuildID: "g1", ModeratorID: "m1", UserID: "u1", Action: models.CaseSoftban, Reason: "spam"})
	if out.Status != StatusSuccess {
		t.Fatalf("softban failed: %+v", out)
	}
	if te.actions.countOp("ban") != 1 || te.actions.countOp("unban") != 1 {
		t.Errorf("calls = %+v, want ban then unban", te.actions.calls)
	}
	if !te.engine.suppressor.IsSuppressed("g1", EventBan, "u1") || !te.engine.suppressor.IsSuppressed("g1", EventUnban, "u1") {
		t.Error("both the ban and the unban echo must be suppressed")
	}
}

func TestOnCaseCreatedHookFires(t *testing.T) {
	te := newTestEngine()
	var seen []*models.Case
	te.engine.OnCaseCreated(func(c *models.Case) { seen = append(seen, c) })

	te.engine.RunCommand(CommandRequest{GuildID: "g1", ModeratorID: "m1", UserID: "u1", Action: models.CaseWarn})
	if len(seen) != 1 {
		t.Fatalf("hook fired %d times, want 1", len(seen))
	}
}
