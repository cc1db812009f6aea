package registry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// validate checks required fields in a fixed order so the first missing one
// is the reported error, then normalizes the CNIC when present.
func (s *Service) validate(p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if p.Gender == "" {
		return fmt.Errorf("gender is required")
	}
	if p.CNIC != nil && *p.CNIC != "" {
		normalized, err := NormalizeCNIC(*p.CNIC)
		if err != nil {
			return err
		}
		p.CNIC = &normalized
	} else {
		p.CNIC = nil
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) GetByMR(ctx context.Context, mr string) (*Patient, error) {
	return s.patients.GetByMR(ctx, mr)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	existing, err := s.patients.GetByID(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("patient not found")
	}
	if err := s.validate(p); err != nil {
		return err
	}
	// MR numbers are immutable once assigned.
	p.MR = existing.MR
	return s.patients.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

// Search normalizes a CNIC filter before querying so clients can search with
// or without dashes.
func (s *Service) Search(ctx context.Context, f Filters, limit, offset int) ([]*Patient, int, error) {
	if f.CNIC != "" {
		if normalized, err := NormalizeCNIC(f.CNIC); err == nil {
			f.CNIC = normalized
		}
	}
	return s.patients.Search(ctx, f, limit, offset)
}
