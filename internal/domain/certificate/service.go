package certificate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/registry"
	"github.com/hms/hms/internal/domain/staff"
)

// Patients is the slice of the registry the certificate flows need.
type Patients interface {
	GetByID(ctx context.Context, id uuid.UUID) (*registry.Patient, error)
}

// Doctors resolves the certifying doctor.
type Doctors interface {
	GetByID(ctx context.Context, id uuid.UUID) (*staff.User, error)
}

type Service struct {
	repo     Repository
	patients Patients
	doctors  Doctors
}

func NewService(repo Repository, patients Patients, doctors Doctors) *Service {
	return &Service{repo: repo, patients: patients, doctors: doctors}
}

func (s *Service) checkRefs(ctx context.Context, patientID, doctorID uuid.UUID) error {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return fmt.Errorf("patient not found")
	}
	doc, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil || doc.Role != staff.RoleDoctor {
		return fmt.Errorf("doctor not found")
	}
	return nil
}

func validateBirth(bc *BirthCertificate) error {
	if bc.ChildName == "" {
		return fmt.Errorf("child name is required")
	}
	if bc.Gender == "" {
		return fmt.Errorf("gender is required")
	}
	if bc.BornAt.IsZero() {
		return fmt.Errorf("birth time is required")
	}
	if bc.BornAt.After(time.Now()) {
		return fmt.Errorf("birth time cannot be in the future")
	}
	if bc.WeightKG != nil && *bc.WeightKG <= 0 {
		return fmt.Errorf("weight must be positive")
	}
	return nil
}

func (s *Service) CreateBirth(ctx context.Context, bc *BirthCertificate) error {
	if err := validateBirth(bc); err != nil {
		return err
	}
	if err := s.checkRefs(ctx, bc.PatientID, bc.DoctorID); err != nil {
		return err
	}
	return s.repo.CreateBirth(ctx, bc)
}

// UpdateBirth rewrites a certificate's details after re-validating its
// patient and doctor references. The serial stays as issued.
func (s *Service) UpdateBirth(ctx context.Context, bc *BirthCertificate) error {
	existing, err := s.repo.GetBirth(ctx, bc.ID)
	if err != nil {
		return fmt.Errorf("birth certificate not found")
	}
	if err := validateBirth(bc); err != nil {
		return err
	}
	if err := s.checkRefs(ctx, bc.PatientID, bc.DoctorID); err != nil {
		return err
	}
	bc.Serial = existing.Serial
	return s.repo.UpdateBirth(ctx, bc)
}

func (s *Service) DeleteBirth(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetBirth(ctx, id); err != nil {
		return fmt.Errorf("birth certificate not found")
	}
	return s.repo.DeleteBirth(ctx, id)
}

func (s *Service) GetBirth(ctx context.Context, id uuid.UUID) (*BirthCertificate, error) {
	return s.repo.GetBirth(ctx, id)
}

func (s *Service) SearchBirth(ctx context.Context, f Filters, limit, offset int) ([]*BirthCertificate, int, error) {
	return s.repo.SearchBirth(ctx, f, limit, offset)
}

func validateDeath(dc *DeathCertificate) error {
	if dc.Cause == "" {
		return fmt.Errorf("cause of death is required")
	}
	if dc.DiedAt.IsZero() {
		return fmt.Errorf("time of death is required")
	}
	if dc.DiedAt.After(time.Now()) {
		return fmt.Errorf("time of death cannot be in the future")
	}
	return nil
}

func (s *Service) CreateDeath(ctx context.Context, dc *DeathCertificate) error {
	if err := validateDeath(dc); err != nil {
		return err
	}
	if err := s.checkRefs(ctx, dc.PatientID, dc.DoctorID); err != nil {
		return err
	}
	return s.repo.CreateDeath(ctx, dc)
}

func (s *Service) UpdateDeath(ctx context.Context, dc *DeathCertificate) error {
	existing, err := s.repo.GetDeath(ctx, dc.ID)
	if err != nil {
		return fmt.Errorf("death certificate not found")
	}
	if err := validateDeath(dc); err != nil {
		return err
	}
	if err := s.checkRefs(ctx, dc.PatientID, dc.DoctorID); err != nil {
		return err
	}
	dc.Serial = existing.Serial
	return s.repo.UpdateDeath(ctx, dc)
}

func (s *Service) DeleteDeath(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetDeath(ctx, id); err != nil {
		return fmt.Errorf("death certificate not found")
	}
	return s.repo.DeleteDeath(ctx, id)
}

func (s *Service) GetDeath(ctx context.Context, id uuid.UUID) (*DeathCertificate, error) {
	return s.repo.GetDeath(ctx, id)
}

func (s *Service) SearchDeath(ctx context.Context, f Filters, limit, offset int) ([]*DeathCertificate, int, error) {
	return s.repo.SearchDeath(ctx, f, limit, offset)
}
