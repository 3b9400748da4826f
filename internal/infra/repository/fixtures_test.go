package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/clinicops/clinic-scheduler/internal/models"
)

type fixture struct {
	doctor  models.Doctor
	patient models.Patient
}

func seed(t *testing.T, gdb *gorm.DB) fixture {
	t.Helper()

	spec := models.Specialty{Name: "Cardiology", Description: "Heart specialists"}
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

	return fixture{doctor: doc, patient: pat}
}
