package slot

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ErrNonexistentTime is returned for a wall-clock time skipped by a DST
// transition in the clinic timezone.
var ErrNonexistentTime = errors.New("slot: time does not exist in clinic timezone")

// Slot is the bookable unit: one doctor at one date and time of day.
type Slot struct {
	DoctorID uint   `json:"doctor_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// Parse normalizes date and time strings and returns the slot together with
// its start instant in loc.
func Parse(doctorID uint, date, tod string, loc *time.Location) (Slot, time.Time, error) {
	date = strings.TrimSpace(date)
	tod = strings.TrimSpace(tod)

	wall, err := time.Parse(DateLayout+" "+TimeLayout, date+" "+tod)
	if err != nil {
		return Slot{}, time.Time{}, err
	}

	start := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), 0, 0, loc)
	if start.Day() != wall.Day() || start.Hour() != wall.Hour() || start.Minute() != wall.Minute() {
		return Slot{}, time.Time{}, ErrNonexistentTime
	}

	return Slot{
		DoctorID: doctorID,
		Date:     start.Format(DateLayout),
		Time:     start.Format(TimeLayout),
	}, start, nil
}

// Key identifies the slot in lock tables and log lines.
func (s Slot) Key() string {
	return fmt.Sprintf("%d|%s|%s", s.DoctorID, s.Date, s.Time)
}

func (s Slot) String() string {
	return fmt.Sprintf("doctor %d on %s at %s", s.DoctorID, s.Date, s.Time)
}
