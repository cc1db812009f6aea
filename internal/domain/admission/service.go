package admission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/facility"
	"github.com/hms/hms/internal/domain/registry"
	"github.com/hms/hms/internal/domain/staff"
)

// ErrBedTaken is returned when the selected bed or unit is no longer
// available at admit time, typically because another admission claimed
// it after the client loaded its options.
var ErrBedTaken = fmt.Errorf("selected bed is no longer available")

// ErrAlreadyAdmitted guards the one-active-admission-per-patient rule.
var ErrAlreadyAdmitted = fmt.Errorf("patient already has an active admission")

// Patients is the slice of the registry the admission flow needs.
type Patients interface {
	GetByID(ctx context.Context, id uuid.UUID) (*registry.Patient, error)
}

// Doctors resolves the admitting doctor.
type Doctors interface {
	GetByID(ctx context.Context, id uuid.UUID) (*staff.User, error)
}

// Facilities covers bed and room unit lookups plus their status flips.
// The claim operations are conditional updates that fail with
// facility.ErrUnavailable when the row is not available anymore.
type Facilities interface {
	GetWard(ctx context.Context, id uuid.UUID) (*facility.Ward, error)
	GetBed(ctx context.Context, id uuid.UUID) (*facility.Bed, error)
	ClaimBed(ctx context.Context, id uuid.UUID) error
	UpdateBedStatus(ctx context.Context, id uuid.UUID, status string) error
	GetRoom(ctx context.Context, id uuid.UUID) (*facility.Room, error)
	GetRoomUnit(ctx context.Context, id uuid.UUID) (*facility.RoomUnit, error)
	ClaimRoomUnit(ctx context.Context, id uuid.UUID) error
	UpdateRoomUnitStatus(ctx context.Context, id uuid.UUID, status string) error
}

// TxRunner runs fn inside a database transaction. Repositories attached
// to the same ctx pick up that transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo       Repository
	patients   Patients
	doctors    Doctors
	facilities Facilities
	inTx       TxRunner
}

func NewService(repo Repository, patients Patients, doctors Doctors, facilities Facilities, inTx TxRunner) *Service {
	return &Service{repo: repo, patients: patients, doctors: doctors, facilities: facilities, inTx: inTx}
}

// Admit creates an admission and marks the chosen bed or unit occupied
// in a single transaction. The bed is claimed with a conditional update
// inside the transaction, so a stale client selection or a concurrent
// admit fails instead of double-booking.
func (s *Service) Admit(ctx context.Context, a *Admission) error {
	if _, err := s.patients.GetByID(ctx, a.PatientID); err != nil {
		return fmt.Errorf("patient not found")
	}
	doc, err := s.doctors.GetByID(ctx, a.DoctorID)
	if err != nil || doc.Role != staff.RoleDoctor {
		return fmt.Errorf("doctor not found")
	}
	if a.Deposit < 0 {
		return fmt.Errorf("deposit cannot be negative")
	}
	if err := s.validateAllocation(ctx, &a.Allocation); err != nil {
		return err
	}

	return s.inTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetActiveByPatient(ctx, a.PatientID); err == nil {
			return ErrAlreadyAdmitted
		}

		switch a.Allocation.Kind {
		case AllocWard:
			if err := s.facilities.ClaimBed(ctx, *a.Allocation.BedID); err != nil {
				if errors.Is(err, facility.ErrUnavailable) {
					return ErrBedTaken
				}
				return err
			}
		case AllocRoom:
			if err := s.facilities.ClaimRoomUnit(ctx, *a.Allocation.UnitID); err != nil {
				if errors.Is(err, facility.ErrUnavailable) {
					return ErrBedTaken
				}
				return err
			}
		}

		a.Status = StatusAdmitted
		a.AdmittedAt = time.Now()
		return s.repo.Create(ctx, a)
	})
}

func (s *Service) validateAllocation(ctx context.Context, al *Allocation) error {
	switch al.Kind {
	case AllocWard:
		if al.WardID == nil || al.BedID == nil {
			return fmt.Errorf("ward and bed are required for a ward admission")
		}
		al.RoomID, al.UnitID = nil, nil
		ward, err := s.facilities.GetWard(ctx, *al.WardID)
		if err != nil {
			return fmt.Errorf("ward not found")
		}
		bed, err := s.facilities.GetBed(ctx, *al.BedID)
		if err != nil {
			return fmt.Errorf("bed not found")
		}
		if bed.WardID != ward.ID {
			return fmt.Errorf("bed does not belong to the selected ward")
		}
	case AllocRoom:
		if al.RoomID == nil || al.UnitID == nil {
			return fmt.Errorf("room and unit are required for a room admission")
		}
		al.WardID, al.BedID = nil, nil
		room, err := s.facilities.GetRoom(ctx, *al.RoomID)
		if err != nil {
			return fmt.Errorf("room not found")
		}
		unit, err := s.facilities.GetRoomUnit(ctx, *al.UnitID)
		if err != nil {
			return fmt.Errorf("room unit not found")
		}
		if unit.RoomID != room.ID {
			return fmt.Errorf("unit does not belong to the selected room")
		}
	default:
		return fmt.Errorf("invalid allocation kind: %s", al.Kind)
	}
	return nil
}

// Discharge closes an admission and frees its bed or unit in one
// transaction.
func (s *Service) Discharge(ctx context.Context, id uuid.UUID) error {
	return s.inTx(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("admission not found")
		}
		if a.Status != StatusAdmitted {
			return fmt.Errorf("admission is already discharged")
		}
		switch a.Allocation.Kind {
		case AllocWard:
			if err := s.facilities.UpdateBedStatus(ctx, *a.Allocation.BedID, facility.BedAvailable); err != nil {
				return err
			}
		case AllocRoom:
			if err := s.facilities.UpdateRoomUnitStatus(ctx, *a.Allocation.UnitID, facility.BedAvailable); err != nil {
				return err
			}
		}
		return s.repo.Discharge(ctx, id)
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Admission, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Search(ctx context.Context, f Filters, limit, offset int) ([]*Admission, int, error) {
	return s.repo.Search(ctx, f, limit, offset)
}
