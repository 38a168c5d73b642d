package mlb

import (
	"encoding/json"
	"testing"
)

func TestFlexStringUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want FlexString
	}{
		{"string", `"sv-1"`, "sv-1"},
		{"integer", `202020`, "202020"},
		{"integer-valued float", `202020.0`, "202020"},
		{"float", `1.5`, "1.5"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexString
			if err := json.Unmarshal([]byte(tt.json), &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unmarshal %s = %q, want %q", tt.json, got, tt.want)
			}
		})
	}
}

func TestPlayID(t *testing.T) {
	tests := []struct {
		name   string
		events []PlayEvent
		want   string
	}{
		{"single event", []PlayEvent{{PlayID: "sv-1"}}, "sv-1"},
		{"last event wins", []PlayEvent{{PlayID: "sv-1"}, {PlayID: "sv-2"}}, "sv-2"},
		{"skips trailing empties", []PlayEvent{{PlayID: "sv-1"}, {PlayID: ""}}, "sv-1"},
		{"no events", nil, ""},
		{"all empty", []PlayEvent{{PlayID: ""}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			play := Play{PlayEvents: tt.events}
			if got := play.PlayID(); got != tt.want {
				t.Errorf("PlayID() = %q, want %q", got, tt.want)
			}
		})
	}
}
