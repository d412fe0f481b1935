package moderation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		vars TemplateVars
		want string
	}{
		{
			name: "all placeholders",
			tpl:  "{server}|{reason}|{duration}|{moderator}",
			vars: TemplateVars{Server: "Testland", Reason: "spam", Duration: time.Hour, Moderator: "mod1"},
			want: "Testland|spam|1h0m0s|mod1",
		},
		{
			name: "empty reason gets default",
			tpl:  "{reason}",
			vars: TemplateVars{},
			want: "Sin razón especificada",
		},
		{
			name: "zero duration is indefinite",
			tpl:  "{duration}",
			vars: TemplateVars{},
			want: "indefinido",
		},
		{
			name: "unknown placeholders stay verbatim",
			tpl:  "hola {user} de {server}",
			vars: TemplateVars{Server: "Testland"},
			want: "hola {user} de Testland",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderTemplate(tt.tpl, tt.vars); got != tt.want {
				t.Errorf("RenderTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNotifyBothChannelsDisabled(t *testing.T) {
	actions := newFakeActions()
	n := NewNotifier(actions)

	// Nothing to attempt means delivered by definition, and no transport calls.
	if !n.Notify("u1", "c1", "hola", false, false) {
		t.Error("Notify() = false, want true when both channels are disabled")
	}
	if len(actions.calls) != 0 {
		t.Errorf("expected no transport calls, got %d", len(actions.calls))
	}
}

func TestNotifyDMOnly(t *testing.T) {
	actions := newFakeActions()
	n := NewNotifier(actions)

	if !n.Notify("u1", "", "hola", true, false) {
		t.Error("Notify() = false, want true when the DM succeeds")
	}
	if actions.countOp("dm") != 1 || actions.countOp("channel") != 0 {
		t.Errorf("unexpected calls: %+v", actions.calls)
	}
}

func TestNotifyChannelFallbackIsIndependent(t *testing.T) {
	actions := newFakeActions()
	n := NewNotifier(actions)

	// Both enabled: both get attempted even though the DM succeeded.
	if !n.Notify("u1", "c1", "hola", true, true) {
		t.Error("Notify() = false, want true")
	}
	if actions.countOp("dm") != 1 || actions.countOp("channel") != 1 {
		t.Errorf("both channels should be attempted, got %+v", actions.calls)
	}
}

func TestNotifyDMFailsChannelDelivers(t *testing.T) {
	actions := newFakeActions()
	actions.dmErr = errors.New("cannot send messages to this user")
	n := NewNotifier(actions)

	if !n.Notify("u1", "c1", "hola", true, true) {
		t.Error("Notify() = false, want true when the fallback delivers")
	}
}

func TestNotifyAllTransportsFail(t *testing.T) {
	actions := newFakeActions()
	actions.dmErr = errors.New("dm closed")
	actions.chanErr = errors.New("channel gone")
	n := NewNotifier(actions)

	// Errors are swallowed, the result is just delivered=false.
	if n.Notify("u1", "c1", "hola", true, true) {
		t.Error("Notify() = true, want false when every transport fails")
	}
}

func TestNotifyChannelWithoutFallbackID(t *testing.T) {
	actions := newFakeActions()
	n := NewNotifier(actions)

	if n.Notify("u1", "", "hola", false, true) {
		t.Error("Notify() = true, want false with no fallback channel configured")
	}
	if actions.countOp("channel") != 0 {
		t.Error("no channel call should be made without a channel ID")
	}
}

func TestDefaultTemplatesRender(t *testing.T) {
	cfg := (&fakeConfigSource{}).ModConfig("g1")
	msg := RenderTemplate(cfg.TemplateFor("warn"), TemplateVars{Server: "Testland", Reason: "spam"})
	if !strings.Contains(msg, "Testland") || !strings.Contains(msg, "spam") {
		t.Errorf("rendered warn template missing values: %q", msg)
	}
}
