package appointment

import (
	"testing"
	"time"
)

func TestWorkingDaySlots(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	wd := WorkingDay{Open: "09:00", Close: "11:00", Step: 30 * time.Minute}
	slots, err := wd.Slots(date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:00", "09:30", "10:00", "10:30"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, s := range slots {
		if s.Start != want[i] {
			t.Errorf("slot %d: expected %s, got %s", i, want[i], s.Start)
		}
	}
	if slots[3].End != "11:00" {
		t.Errorf("last slot should end at close, got %s", slots[3].End)
	}
}

func TestWorkingDaySlots_PartialTailDropped(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	wd := WorkingDay{Open: "09:00", Close: "10:00", Step: 40 * time.Minute}
	slots, err := wd.Slots(date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 || slots[0].Start != "09:00" {
		t.Fatalf("unexpected slots %+v", slots)
	}
}

func TestWorkingDaySlots_Invalid(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	if _, err := (WorkingDay{Open: "nine", Close: "10:00", Step: time.Hour}).Slots(date); err == nil {
		t.Fatal("expected error for bad open time")
	}
	if _, err := (WorkingDay{Open: "09:00", Close: "10:00"}).Slots(date); err == nil {
		t.Fatal("expected error for zero step")
	}
}
