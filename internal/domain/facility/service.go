package facility

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ErrHasOccupants blocks deleting a ward or room while a patient still
// occupies one of its beds or units.
var ErrHasOccupants = fmt.Errorf("has occupied beds")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Wards

func (s *Service) CreateWard(ctx context.Context, w *Ward) error {
	if w.Name == "" {
		return fmt.Errorf("name is required")
	}
	if w.DailyCharge < 0 {
		return fmt.Errorf("daily charge cannot be negative")
	}
	return s.repo.CreateWard(ctx, w)
}

func (s *Service) GetWard(ctx context.Context, id uuid.UUID) (*Ward, error) {
	return s.repo.GetWard(ctx, id)
}

func (s *Service) ListWards(ctx context.Context, limit, offset int) ([]*Ward, int, error) {
	return s.repo.ListWards(ctx, limit, offset)
}

func (s *Service) UpdateWard(ctx context.Context, w *Ward) error {
	if _, err := s.repo.GetWard(ctx, w.ID); err != nil {
		return fmt.Errorf("ward not found")
	}
	if w.Name == "" {
		return fmt.Errorf("name is required")
	}
	if w.DailyCharge < 0 {
		return fmt.Errorf("daily charge cannot be negative")
	}
	return s.repo.UpdateWard(ctx, w)
}

func (s *Service) DeleteWard(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetWard(ctx, id); err != nil {
		return fmt.Errorf("ward not found")
	}
	occupied, err := s.repo.CountBeds(ctx, id, BedOccupied)
	if err != nil {
		return err
	}
	if occupied > 0 {
		return ErrHasOccupants
	}
	return s.repo.DeleteWard(ctx, id)
}

// Beds

func (s *Service) CreateBed(ctx context.Context, b *Bed) error {
	if b.Number == "" {
		return fmt.Errorf("bed number is required")
	}
	if _, err := s.repo.GetWard(ctx, b.WardID); err != nil {
		return fmt.Errorf("ward not found")
	}
	if b.Status != "" && !validBedStatuses[b.Status] {
		return fmt.Errorf("invalid status: %s", b.Status)
	}
	return s.repo.CreateBed(ctx, b)
}

func (s *Service) ListBeds(ctx context.Context, wardID uuid.UUID, status string) ([]*Bed, error) {
	if status != "" && !validBedStatuses[status] {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	return s.repo.ListBeds(ctx, wardID, status)
}

// SetBedStatus handles manual status changes (maintenance and back).
// Occupancy transitions belong to admissions, so a bed cannot be set to
// occupied here and an occupied bed cannot be changed.
func (s *Service) SetBedStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validBedStatuses[status] {
		return fmt.Errorf("invalid status: %s", status)
	}
	b, err := s.repo.GetBed(ctx, id)
	if err != nil {
		return fmt.Errorf("bed not found")
	}
	if status == BedOccupied || b.Status == BedOccupied {
		return fmt.Errorf("occupancy is managed through admissions")
	}
	return s.repo.UpdateBedStatus(ctx, id, status)
}

func (s *Service) DeleteBed(ctx context.Context, id uuid.UUID) error {
	b, err := s.repo.GetBed(ctx, id)
	if err != nil {
		return fmt.Errorf("bed not found")
	}
	if b.Status == BedOccupied {
		return ErrHasOccupants
	}
	return s.repo.DeleteBed(ctx, id)
}

// Rooms

func (s *Service) CreateRoom(ctx context.Context, r *Room) error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.DailyCharge < 0 {
		return fmt.Errorf("daily charge cannot be negative")
	}
	return s.repo.CreateRoom(ctx, r)
}

func (s *Service) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	return s.repo.GetRoom(ctx, id)
}

func (s *Service) ListRooms(ctx context.Context, limit, offset int) ([]*Room, int, error) {
	return s.repo.ListRooms(ctx, limit, offset)
}

func (s *Service) UpdateRoom(ctx context.Context, r *Room) error {
	if _, err := s.repo.GetRoom(ctx, r.ID); err != nil {
		return fmt.Errorf("room not found")
	}
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.DailyCharge < 0 {
		return fmt.Errorf("daily charge cannot be negative")
	}
	return s.repo.UpdateRoom(ctx, r)
}

func (s *Service) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetRoom(ctx, id); err != nil {
		return fmt.Errorf("room not found")
	}
	occupied, err := s.repo.CountRoomUnits(ctx, id, BedOccupied)
	if err != nil {
		return err
	}
	if occupied > 0 {
		return ErrHasOccupants
	}
	return s.repo.DeleteRoom(ctx, id)
}

// Room units

func (s *Service) CreateRoomUnit(ctx context.Context, u *RoomUnit) error {
	if u.Number == "" {
		return fmt.Errorf("unit number is required")
	}
	if _, err := s.repo.GetRoom(ctx, u.RoomID); err != nil {
		return fmt.Errorf("room not found")
	}
	if u.Status != "" && !validBedStatuses[u.Status] {
		return fmt.Errorf("invalid status: %s", u.Status)
	}
	return s.repo.CreateRoomUnit(ctx, u)
}

func (s *Service) ListRoomUnits(ctx context.Context, roomID uuid.UUID, status string) ([]*RoomUnit, error) {
	if status != "" && !validBedStatuses[status] {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	return s.repo.ListRoomUnits(ctx, roomID, status)
}

func (s *Service) SetRoomUnitStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validBedStatuses[status] {
		return fmt.Errorf("invalid status: %s", status)
	}
	u, err := s.repo.GetRoomUnit(ctx, id)
	if err != nil {
		return fmt.Errorf("room unit not found")
	}
	if status == BedOccupied || u.Status == BedOccupied {
		return fmt.Errorf("occupancy is managed through admissions")
	}
	return s.repo.UpdateRoomUnitStatus(ctx, id, status)
}

func (s *Service) DeleteRoomUnit(ctx context.Context, id uuid.UUID) error {
	u, err := s.repo.GetRoomUnit(ctx, id)
	if err != nil {
		return fmt.Errorf("room unit not found")
	}
	if u.Status == BedOccupied {
		return ErrHasOccupants
	}
	return s.repo.DeleteRoomUnit(ctx, id)
}
