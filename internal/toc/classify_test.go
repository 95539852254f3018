package toc

import (
	"strings"
	"testing"
)

var testTagMap = map[string]string{
	"power":    "power_management",
	"voltage":  "power_management",
	"cable":    "hardware",
	"state":    "state_machine",
	"machine":  "state_machine",
	"overview": "overview",
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []string
	}{
		{
			name:  "single tag",
			title: "Cable Assemblies",
			want:  []string{"hardware"},
		},
		{
			name:  "multiple tags sorted",
			title: "Power Supply State Machine",
			want:  []string{"power_management", "state_machine"},
		},
		{
			name:  "case insensitive",
			title: "VOLTAGE Regulation",
			want:  []string{"power_management"},
		},
		{
			name:  "substring match inside word",
			title: "Empowerment", // contains "power"
			want:  []string{"power_management"},
		},
		{
			name:  "two keywords one tag",
			title: "State Machine Transitions",
			want:  []string{"state_machine"},
		},
		{
			name:  "no match",
			title: "Glossary of Terms",
			want:  nil,
		},
		{
			name:  "empty title",
			title: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.title, testTagMap)
			if len(got) != len(tt.want) {
				t.Fatalf("Classify(%q) = %v, want %v", tt.title, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("Classify(%q) = %v, want %v", tt.title, got, tt.want)
				}
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	title := "Power Cable State Overview"
	first := Classify(title, testTagMap)
	for i := 0; i < 50; i++ {
		got := Classify(title, testTagMap)
		if strings.Join(got, ",") != strings.Join(first, ",") {
			t.Fatalf("run %d: Classify returned %v, first run returned %v", i, got, first)
		}
	}
}

func TestClassifyEmptyRules(t *testing.T) {
	if got := Classify("Power Basics", nil); got != nil {
		t.Errorf("Classify with nil rules = %v, want nil", got)
	}
}
