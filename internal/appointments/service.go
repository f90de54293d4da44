package appointments

import (
	"context"

	"github.com/brightpath-health/clinicstore/pkg/logging"
)

// Service routes appointment candidates through validation before the
// repository persists them. A candidate that fails any rule never reaches
// the file.
type Service struct {
	repo      *Repository
	validator *Validator
	logger    *logging.Logger
}

// NewService constructs an appointments service.
func NewService(repo *Repository, validator *Validator, logger *logging.Logger) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if validator == nil {
		validator = NewValidator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, validator: validator, logger: logger}
}

// List returns every appointment on file.
func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.LoadAll(ctx)
}

// Create validates the candidate (shape, not-in-past, double-booking) and
// persists it. Returns the generated id.
func (s *Service) Create(ctx context.Context, candidate Appointment) (string, error) {
	candidate.ID = ""
	if err := s.validate(ctx, candidate); err != nil {
		return "", err
	}

	id, err := s.repo.Create(ctx, candidate)
	if err != nil {
		return "", err
	}
	s.logger.Info("appointment created",
		"appointment_id", id,
		"clinician_id", candidate.ClinicianID,
		"date", candidate.Date,
		"time", candidate.Time,
	)
	return id, nil
}

// Update validates the candidate and overwrites the record matching its id.
// The candidate's own row is excluded from the double-booking scan, so a
// no-op edit never conflicts with itself.
func (s *Service) Update(ctx context.Context, candidate Appointment) (bool, error) {
	if err := s.validate(ctx, candidate); err != nil {
		return false, err
	}

	found, err := s.repo.Update(ctx, candidate)
	if err != nil {
		return false, err
	}
	if found {
		s.logger.Info("appointment updated", "appointment_id", candidate.ID)
	}
	return found, nil
}

// Cancel marks the appointment Cancelled. Unknown ids report not-found.
func (s *Service) Cancel(ctx context.Context, id string) (bool, error) {
	found, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return false, err
	}
	if found {
		s.logger.Info("appointment cancelled", "appointment_id", id)
	}
	return found, nil
}

func (s *Service) validate(ctx context.Context, candidate Appointment) error {
	if err := candidate.Validate(); err != nil {
		return err
	}
	date, clock, err := candidate.schedule()
	if err != nil {
		return err
	}
	if err := s.validator.NotInPast(date, clock); err != nil {
		return err
	}

	existing, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	return s.validator.NoDoubleBooking(existing, candidate)
}
