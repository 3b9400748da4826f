package appointment

import (
	"fmt"
	"time"
)

// WorkingDay is the clinic's booking grid for a single date.
type WorkingDay struct {
	Open  string
	Close string
	Step  time.Duration
}

// Slots lays the grid over date in the date's location. A slot is emitted
// only if it ends at or before closing time.
func (w WorkingDay) Slots(date time.Time) ([]TimeSlot, error) {
	if w.Step <= 0 {
		return nil, fmt.Errorf("working day: step must be positive")
	}

	loc := date.Location()

	parseHM := func(hm string) (time.Time, error) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), nil
	}

	dayStart, err := parseHM(w.Open)
	if err != nil {
		return nil, fmt.Errorf("working day: open: %w", err)
	}
	dayEnd, err := parseHM(w.Close)
	if err != nil {
		return nil, fmt.Errorf("working day: close: %w", err)
	}

	var out []TimeSlot
	for cur := dayStart; !cur.Add(w.Step).After(dayEnd); cur = cur.Add(w.Step) {
		out = append(out, TimeSlot{
			Start: cur.Format("15:04"),
			End:   cur.Add(w.Step).Format("15:04"),
		})
	}
	return out, nil
}
