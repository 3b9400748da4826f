package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Date   string `validate:"required,ymd"`
	Time   string `validate:"required,hhmm"`
	Gender string `validate:"gender"`
	Role   string `validate:"required,role"`
}

func TestCustomTags(t *testing.T) {
	v := validator.New()
	if err := RegisterOn(v); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name  string
		in    sample
		valid bool
	}{
		{"ok", sample{"2024-06-03", "09:30", "Female", "Doctor"}, true},
		{"empty gender", sample{"2024-06-03", "09:30", "", "Admin"}, true},
		{"bad date", sample{"2024-13-03", "09:30", "", "Admin"}, false},
		{"bad time", sample{"2024-06-03", "9h30", "", "Admin"}, false},
		{"bad gender", sample{"2024-06-03", "09:30", "f", "Admin"}, false},
		{"bad role", sample{"2024-06-03", "09:30", "", "Nurse"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.valid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	v := validator.New()
	if err := RegisterOn(v); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := v.Struct(sample{Date: "x", Time: "09:00", Role: "Admin"})
	if got := Describe(err); got != "date failed ymd" {
		t.Fatalf("unexpected description %q", got)
	}
}
