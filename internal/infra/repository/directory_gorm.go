package repository

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/db"
	"github.com/clinicops/clinic-scheduler/internal/domain/directory"
	"github.com/clinicops/clinic-scheduler/internal/models"
)

type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *DirectoryGormRepository) GetPatient(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, "patient", "get patient")
	}
	return &p, nil
}

func (r *DirectoryGormRepository) CreatePatient(
	ctx context.Context,
	p *models.Patient,
) error {
	return translate(
		r.db.WithContext(ctx).Create(p).Error,
		"patient",
		"create patient",
	)
}

func (r *DirectoryGormRepository) ListPatients(
	ctx context.Context,
	search string,
	limit int,
) ([]models.Patient, error) {

	q := r.db.WithContext(ctx).Model(&models.Patient{})

	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ?",
			like, like, like,
		)
	}

	var out []models.Patient
	if err := q.
		Order("last_name ASC, first_name ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, apperr.Persistence("list patients", err)
	}
	return out, nil
}

// --------------------------------------------------
// Specialty
// --------------------------------------------------

func (r *DirectoryGormRepository) CreateSpecialty(
	ctx context.Context,
	s *models.Specialty,
) error {

	err := r.db.WithContext(ctx).Create(s).Error
	if db.IsUniqueViolation(err) {
		return apperr.Validation("specialty_exists", "specialty already exists")
	}
	return translate(err, "specialty", "create specialty")
}

func (r *DirectoryGormRepository) GetSpecialty(
	ctx context.Context,
	id uint,
) (*models.Specialty, error) {

	var s models.Specialty
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err, "specialty", "get specialty")
	}
	return &s, nil
}

func (r *DirectoryGormRepository) ListSpecialties(
	ctx context.Context,
) ([]models.Specialty, error) {

	var out []models.Specialty
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, apperr.Persistence("list specialties", err)
	}
	return out, nil
}

// --------------------------------------------------
// Doctor
// --------------------------------------------------

func (r *DirectoryGormRepository) GetDoctor(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var d models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("Specialty").
		First(&d, id).Error; err != nil {
		return nil, translate(err, "doctor", "get doctor")
	}
	return &d, nil
}

func (r *DirectoryGormRepository) GetDoctorByUserID(
	ctx context.Context,
	userID uint,
) (*models.Doctor, error) {

	var d models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("Specialty").
		Where("user_id = ?", userID).
		First(&d).Error; err != nil {
		return nil, translate(err, "doctor", "get doctor by user")
	}
	return &d, nil
}

func (r *DirectoryGormRepository) CreateDoctor(
	ctx context.Context,
	d *models.Doctor,
) error {

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(d).Error
	if db.IsUniqueViolation(err) {
		return apperr.Validation("user_already_linked", "user is already linked to a doctor")
	}
	return translate(err, "doctor", "create doctor")
}

func (r *DirectoryGormRepository) ListDoctors(
	ctx context.Context,
	specialtyID uint,
) ([]models.Doctor, error) {

	q := r.db.WithContext(ctx).Preload("Specialty")
	if specialtyID != 0 {
		q = q.Where("specialty_id = ?", specialtyID)
	}

	var out []models.Doctor
	if err := q.
		Order("last_name ASC, first_name ASC").
		Find(&out).Error; err != nil {
		return nil, apperr.Persistence("list doctors", err)
	}
	return out, nil
}

func (r *DirectoryGormRepository) UpdateDoctorFee(
	ctx context.Context,
	id uint,
	fee decimal.Decimal,
) (*models.Doctor, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ?", id).
		Update("consultation_fee", fee)
	if res.Error != nil {
		return nil, apperr.Persistence("update doctor fee", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("doctor")
	}
	return r.GetDoctor(ctx, id)
}

func (r *DirectoryGormRepository) LinkDoctorUser(
	ctx context.Context,
	doctorID uint,
	userID uint,
) (*models.Doctor, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ?", doctorID).
		Update("user_id", userID)
	if db.IsUniqueViolation(res.Error) {
		return nil, apperr.Validation("user_already_linked", "user is already linked to a doctor")
	}
	if res.Error != nil {
		return nil, apperr.Persistence("link doctor user", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("doctor")
	}
	return r.GetDoctor(ctx, doctorID)
}

// Compile-time check
var _ directory.Registry = (*DirectoryGormRepository)(nil)
