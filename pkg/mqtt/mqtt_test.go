package mqtt

import "testing"

func TestTopicMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		topic   string
		want    bool
	}{
		{"exact match", "centinela/cases/created", "centinela/cases/created", true},
		{"exact mismatch", "centinela/cases/created", "centinela/cases/updated", false},
		{"plus matches one level", "centinela/+/created", "centinela/cases/created", true},
		{"plus does not span levels", "centinela/+", "centinela/cases/created", false},
		{"hash matches rest", "centinela/#", "centinela/cases/created", true},
		{"hash matches zero levels", "centinela/cases/#", "centinela/cases", true},
		{"pattern longer than topic", "centinela/cases/created", "centinela/cases", false},
		{"topic longer than pattern", "centinela/cases", "centinela/cases/created", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := topicMatch(tt.pattern, tt.topic); got != tt.want {
				t.Errorf("topicMatch(%q, %q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
			}
		})
	}
}
