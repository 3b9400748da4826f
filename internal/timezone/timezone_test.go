package timezone

import (
	"testing"
	"time"
)

func TestLocationFallback(t *testing.T) {
	if Location("").String() != DefaultTimezone {
		t.Fatalf("expected fallback to %s", DefaultTimezone)
	}
	if Location("Not/AZone").String() != DefaultTimezone {
		t.Fatal("expected fallback for unknown zone")
	}
	if Location("Africa/Cairo").String() != "Africa/Cairo" {
		t.Fatal("expected named zone")
	}
}

func TestStartOfDay(t *testing.T) {
	loc := Location("Africa/Cairo")
	in := time.Date(2024, 6, 1, 17, 45, 12, 0, loc)

	got := StartOfDay(in)
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
