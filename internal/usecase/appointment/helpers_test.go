package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/db/dbtest"
	"github.com/clinicops/clinic-scheduler/internal/infra/repository"
	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/session"
	"github.com/clinicops/clinic-scheduler/internal/slot"
)

// fixed clock: Saturday 2024-06-01 08:00 UTC
var testNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

type env struct {
	db        *gorm.DB
	repo      *repository.AppointmentGormRepository
	directory *repository.DirectoryGormRepository

	doctor  models.Doctor
	patient models.Patient

	book     *BookAppointment
	cancel   *CancelAppointment
	noShow   *MarkNoShow
	complete *CompleteVisit
}

func newEnv(t *testing.T) *env {
	t.Helper()

	gdb := dbtest.New(t)
	repo := repository.NewAppointmentGormRepository(gdb)
	dir := repository.NewDirectoryGormRepository(gdb)
	log := zerolog.Nop()

	spec := models.Specialty{Name: "Cardiology"}
	if err := gdb.Create(&spec).Error; err != nil {
		t.Fatalf("create specialty: %v", err)
	}
	doc := models.Doctor{
		FirstName:       "Ahmed",
		LastName:        "Hassan",
		SpecialtyID:     spec.ID,
		ConsultationFee: decimal.NewFromInt(100),
	}
	if err := gdb.Create(&doc).Error; err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	pat := models.Patient{FirstName: "Mona", LastName: "Ali", Phone: "0100"}
	if err := gdb.Create(&pat).Error; err != nil {
		t.Fatalf("create patient: %v", err)
	}

	e := &env{
		db:        gdb,
		repo:      repo,
		directory: dir,
		doctor:    doc,
		patient:   pat,
		book:      NewBookAppointment(repo, dir, slot.NewLocker(), nil, log, "UTC"),
		cancel:    NewCancelAppointment(repo, nil, log),
		noShow:    NewMarkNoShow(repo, nil, log),
		complete:  NewCompleteVisit(repo, dir, nil, log),
	}
	e.book.now = clock
	e.cancel.now = clock
	e.noShow.now = clock
	e.complete.now = clock
	return e
}

func (e *env) addPatient(t *testing.T, first string) models.Patient {
	t.Helper()
	p := models.Patient{FirstName: first, LastName: "Test", Phone: "0111"}
	if err := e.db.Create(&p).Error; err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return p
}

func (e *env) mustBook(t *testing.T, patientID uint, date, tod string) *models.Appointment {
	t.Helper()
	ap, err := e.book.Execute(context.Background(), sess(), BookInput{
		PatientID: patientID,
		DoctorID:  e.doctor.ID,
		Date:      date,
		Time:      tod,
	})
	if err != nil {
		t.Fatalf("book %s %s: %v", date, tod, err)
	}
	return ap
}

func (e *env) count(t *testing.T, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(model).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func sess() session.Session {
	return session.Session{UserID: 1, Username: "reception", Role: session.RoleSecretary, RequestID: "test"}
}

func wantKind(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()
	e, ok := apperr.As(err)
	if !ok {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
	if e.Kind != kind {
		t.Fatalf("expected %s error, got %s (%v)", kind, e.Kind, err)
	}
	return e
}
