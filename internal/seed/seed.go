package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicops/clinic-scheduler/internal/config"
	"github.com/clinicops/clinic-scheduler/internal/infra/repository"
	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/session"
	ucUser "github.com/clinicops/clinic-scheduler/internal/usecase/user"
)

var specialties = []models.Specialty{
	{Name: "General Practice", Description: "Routine checkups"},
	{Name: "Cardiology", Description: "Heart specialists"},
	{Name: "Dermatology", Description: "Skin care"},
	{Name: "Pediatrics", Description: "Children health"},
	{Name: "Orthopedics", Description: "Bones and muscles"},
}

// Run inserts the base specialties and, on an install without users, the
// bootstrap admin. It is safe to run repeatedly.
func Run(ctx context.Context, db *gorm.DB, cfg *config.Config, log zerolog.Logger) error {
	rows := make([]models.Specialty, len(specialties))
	copy(rows, specialties)

	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error; err != nil {
		return fmt.Errorf("seed specialties: %w", err)
	}
	log.Info().Int("count", len(rows)).Msg("specialties seeded")

	userRepo := repository.NewUserGormRepository(db)

	n, err := userRepo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if n > 0 {
		log.Info().Msg("users exist, skipping admin bootstrap")
		return nil
	}
	if cfg.AdminPassword == "" {
		log.Warn().Msg("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	users := ucUser.NewUsers(userRepo, nil, log)
	admin, err := users.Create(ctx, session.System("seed"), ucUser.CreateInput{
		Username: cfg.AdminUsername,
		FullName: "Administrator",
		Password: cfg.AdminPassword,
		Role:     session.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Info().Str("username", admin.Username).Msg("admin user created")
	return nil
}
