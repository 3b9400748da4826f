package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clinicops/clinic-scheduler/internal/config"
	"github.com/clinicops/clinic-scheduler/internal/db/dbtest"
	"github.com/clinicops/clinic-scheduler/internal/models"
)

func TestRun_IsRepeatable(t *testing.T) {
	gdb := dbtest.New(t)
	cfg := &config.Config{AdminUsername: "admin", AdminPassword: "bootstrap-pass"}

	for i := 0; i < 2; i++ {
		if err := Run(context.Background(), gdb, cfg, zerolog.Nop()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	var specs, users int64
	gdb.Model(&models.Specialty{}).Count(&specs)
	gdb.Model(&models.User{}).Count(&users)

	if specs != 5 {
		t.Fatalf("expected 5 specialties, got %d", specs)
	}
	if users != 1 {
		t.Fatalf("expected 1 admin user, got %d", users)
	}

	var admin models.User
	if err := gdb.Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if admin.Role != "Admin" {
		t.Fatalf("expected Admin role, got %s", admin.Role)
	}
}

func TestRun_NoPasswordSkipsAdmin(t *testing.T) {
	gdb := dbtest.New(t)

	if err := Run(context.Background(), gdb, &config.Config{AdminUsername: "admin"}, zerolog.Nop()); err != nil {
		t.Fatalf("run: %v", err)
	}

	var users int64
	gdb.Model(&models.User{}).Count(&users)
	if users != 0 {
		t.Fatalf("expected no users, got %d", users)
	}
}
