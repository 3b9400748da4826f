package slot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		tod      string
		wantDate string
		wantTime string
		wantErr  bool
	}{
		{"plain", "2024-06-01", "09:00", "2024-06-01", "09:00", false},
		{"padded input", " 2024-06-01 ", " 09:30", "2024-06-01", "09:30", false},
		{"bad date", "2024-13-01", "09:00", "", "", true},
		{"bad time", "2024-06-01", "9am", "", "", true},
		{"seconds not accepted", "2024-06-01", "09:00:00", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, start, err := Parse(7, tt.date, tt.tod, time.UTC)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if s.DoctorID != 7 || s.Date != tt.wantDate || s.Time != tt.wantTime {
				t.Fatalf("unexpected slot %+v", s)
			}
			if start.Format(DateLayout+" "+TimeLayout) != tt.wantDate+" "+tt.wantTime {
				t.Fatalf("unexpected start %s", start)
			}
		})
	}
}

func TestParse_RejectsTimeInDSTGap(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	if _, _, err := Parse(1, "2024-03-10", "02:30", loc); !errors.Is(err, ErrNonexistentTime) {
		t.Fatalf("expected ErrNonexistentTime, got %v", err)
	}

	s, _, err := Parse(1, "2024-03-10", "03:30", loc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Time != "03:30" {
		t.Fatalf("unexpected slot %+v", s)
	}

	// the repeated hour on fall-back day exists and keeps its wall time
	s, _, err = Parse(1, "2024-11-03", "01:30", loc)
	if err != nil || s.Time != "01:30" {
		t.Fatalf("fall-back hour: slot %+v err %v", s, err)
	}
}

func TestSlotKeyDistinguishesTriple(t *testing.T) {
	a := Slot{DoctorID: 1, Date: "2024-06-01", Time: "09:00"}
	b := Slot{DoctorID: 1, Date: "2024-06-01", Time: "09:30"}
	c := Slot{DoctorID: 2, Date: "2024-06-01", Time: "09:00"}

	if a.Key() == b.Key() || a.Key() == c.Key() {
		t.Fatalf("keys collide: %s %s %s", a.Key(), b.Key(), c.Key())
	}
}

func TestLocker_SerializesSameSlot(t *testing.T) {
	l := NewLocker()
	s := Slot{DoctorID: 1, Date: "2024-06-01", Time: "09:00"}

	var (
		wg      sync.WaitGroup
		active  int
		maxSeen int
		mu      sync.Mutex
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), s)
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("expected exclusive access, saw %d concurrent holders", maxSeen)
	}
	if l.size() != 0 {
		t.Fatalf("expected lock table to be empty, got %d", l.size())
	}
}

func TestLocker_DifferentSlotsDoNotBlock(t *testing.T) {
	l := NewLocker()
	a := Slot{DoctorID: 1, Date: "2024-06-01", Time: "09:00"}
	b := Slot{DoctorID: 1, Date: "2024-06-01", Time: "10:00"}

	unlockA, err := l.Lock(context.Background(), a)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock, err := l.Lock(context.Background(), b)
		if err == nil {
			unlock()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different slot blocked")
	}
}

func TestLocker_UnlockIsIdempotent(t *testing.T) {
	l := NewLocker()
	s := Slot{DoctorID: 3, Date: "2024-06-01", Time: "11:00"}

	unlock, err := l.Lock(context.Background(), s)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	unlock()
	unlock()

	if l.size() != 0 {
		t.Fatalf("expected empty lock table, got %d", l.size())
	}
}

func TestLocker_ContextCancelWhileWaiting(t *testing.T) {
	l := NewLocker()
	s := Slot{DoctorID: 5, Date: "2024-06-01", Time: "12:00"}

	unlock, err := l.Lock(context.Background(), s)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := l.Lock(ctx, s); err == nil {
		t.Fatal("expected waiting lock to give up when ctx expires")
	}

	unlock()
	if l.size() != 0 {
		t.Fatalf("expected empty lock table, got %d", l.size())
	}
}
