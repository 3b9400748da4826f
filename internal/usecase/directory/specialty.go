package directory

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clinicops/clinic-scheduler/internal/apperr"
	"github.com/clinicops/clinic-scheduler/internal/audit"
	"github.com/clinicops/clinic-scheduler/internal/cache"
	"github.com/clinicops/clinic-scheduler/internal/domain/directory"
	"github.com/clinicops/clinic-scheduler/internal/models"
	"github.com/clinicops/clinic-scheduler/internal/session"
)

type Specialties struct {
	registry directory.Registry
	cache    *cache.ReadThrough
	audit    *audit.Dispatcher
	log      zerolog.Logger
}

func NewSpecialties(
	registry directory.Registry,
	cache *cache.ReadThrough,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *Specialties {
	return &Specialties{registry: registry, cache: cache, audit: audit, log: log}
}

func (uc *Specialties) Register(
	ctx context.Context,
	sess session.Session,
	name string,
	description string,
) (*models.Specialty, error) {

	s := &models.Specialty{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if s.Name == "" {
		return nil, apperr.Validation("name_required", "specialty name is required")
	}

	if err := uc.registry.CreateSpecialty(ctx, s); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, keySpecialties)

	uc.log.Info().
		Str("request_id", sess.RequestID).
		Uint("specialty_id", s.ID).
		Msg("specialty registered")

	uc.audit.Dispatch(audit.Event{
		UserID:    sess.UserRef(),
		Action:    "specialty_registered",
		Entity:    "specialty",
		EntityID:  &s.ID,
		RequestID: sess.RequestID,
	})

	return s, nil
}

// List may serve data up to the cache TTL old.
func (uc *Specialties) List(ctx context.Context) ([]models.Specialty, error) {
	return cache.Load(ctx, uc.cache, keySpecialties, uc.registry.ListSpecialties)
}
