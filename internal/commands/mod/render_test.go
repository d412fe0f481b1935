package mod

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"empty means permanent", "", 0, false},
		{"minutes", "30m", 30 * time.Minute, false},
		{"hours", "2h", 2 * time.Hour, false},
		{"days", "7d", 7 * 24 * time.Hour, false},
		{"uppercase", "2H", 2 * time.Hour, false},
		{"surrounding spaces", " 45m ", 45 * time.Minute, false},
		{"zero days", "0d", 0, true},
		{"negative", "-1h", 0, true},
		{"garbage", "mañana", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseUserIDs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"raw ids", "111 222", []string{"111", "222"}},
		{"mentions", "<@111> <@!222>", []string{"111", "222"}},
		{"mixed", "<@111> 222", []string{"111", "222"}},
		{"non numeric discarded", "111 pepe <@>", []string{"111"}},
		{"empty", "   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseUserIDs(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseUserIDs(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseUserIDs(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}
