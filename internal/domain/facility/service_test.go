package facility

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	wards map[uuid.UUID]*Ward
	beds  map[uuid.UUID]*Bed
	rooms map[uuid.UUID]*Room
	units map[uuid.UUID]*RoomUnit
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		wards: make(map[uuid.UUID]*Ward),
		beds:  make(map[uuid.UUID]*Bed),
		rooms: make(map[uuid.UUID]*Room),
		units: make(map[uuid.UUID]*RoomUnit),
	}
}

func (m *mockRepo) CreateWard(_ context.Context, w *Ward) error {
	w.ID = uuid.New()
	w.CreatedAt = time.Now()
	m.wards[w.ID] = w
	return nil
}

func (m *mockRepo) GetWard(_ context.Context, id uuid.UUID) (*Ward, error) {
	w, ok := m.wards[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return w, nil
}

func (m *mockRepo) ListWards(_ context.Context, limit, offset int) ([]*Ward, int, error) {
	var result []*Ward
	for _, w := range m.wards {
		result = append(result, w)
	}
	return result, len(result), nil
}

func (m *mockRepo) UpdateWard(_ context.Context, w *Ward) error {
	m.wards[w.ID] = w
	return nil
}

func (m *mockRepo) DeleteWard(_ context.Context, id uuid.UUID) error {
	delete(m.wards, id)
	return nil
}

func (m *mockRepo) CreateBed(_ context.Context, b *Bed) error {
	b.ID = uuid.New()
	if b.Status == "" {
		b.Status = BedAvailable
	}
	m.beds[b.ID] = b
	return nil
}

func (m *mockRepo) GetBed(_ context.Context, id uuid.UUID) (*Bed, error) {
	b, ok := m.beds[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return b, nil
}

func (m *mockRepo) ListBeds(_ context.Context, wardID uuid.UUID, status string) ([]*Bed, error) {
	var result []*Bed
	for _, b := range m.beds {
		if b.WardID != wardID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (m *mockRepo) UpdateBedStatus(_ context.Context, id uuid.UUID, status string) error {
	b, ok := m.beds[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	b.Status = status
	return nil
}

func (m *mockRepo) ClaimBed(_ context.Context, id uuid.UUID) error {
	b, ok := m.beds[id]
	if !ok || b.Status != BedAvailable {
		return ErrUnavailable
	}
	b.Status = BedOccupied
	return nil
}

func (m *mockRepo) DeleteBed(_ context.Context, id uuid.UUID) error {
	delete(m.beds, id)
	return nil
}

func (m *mockRepo) CountBeds(_ context.Context, wardID uuid.UUID, status string) (int, error) {
	n := 0
	for _, b := range m.beds {
		if b.WardID == wardID && b.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *mockRepo) CreateRoom(_ context.Context, r *Room) error {
	r.ID = uuid.New()
	m.rooms[r.ID] = r
	return nil
}

func (m *mockRepo) GetRoom(_ context.Context, id uuid.UUID) (*Room, error) {
	r, ok := m.rooms[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return r, nil
}

func (m *mockRepo) ListRooms(_ context.Context, limit, offset int) ([]*Room, int, error) {
	var result []*Room
	for _, r := range m.rooms {
		result = append(result, r)
	}
	return result, len(result), nil
}

func (m *mockRepo) UpdateRoom(_ context.Context, r *Room) error {
	m.rooms[r.ID] = r
	return nil
}

func (m *mockRepo) DeleteRoom(_ context.Context, id uuid.UUID) error {
	delete(m.rooms, id)
	return nil
}

func (m *mockRepo) CreateRoomUnit(_ context.Context, u *RoomUnit) error {
	u.ID = uuid.New()
	if u.Status == "" {
		u.Status = BedAvailable
	}
	m.units[u.ID] = u
	return nil
}

func (m *mockRepo) GetRoomUnit(_ context.Context, id uuid.UUID) (*RoomUnit, error) {
	u, ok := m.units[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return u, nil
}

func (m *mockRepo) ListRoomUnits(_ context.Context, roomID uuid.UUID, status string) ([]*RoomUnit, error) {
	var result []*RoomUnit
	for _, u := range m.units {
		if u.RoomID != roomID {
			continue
		}
		if status != "" && u.Status != status {
			continue
		}
		result = append(result, u)
	}
	return result, nil
}

func (m *mockRepo) UpdateRoomUnitStatus(_ context.Context, id uuid.UUID, status string) error {
	u, ok := m.units[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	u.Status = status
	return nil
}

func (m *mockRepo) ClaimRoomUnit(_ context.Context, id uuid.UUID) error {
	u, ok := m.units[id]
	if !ok || u.Status != BedAvailable {
		return ErrUnavailable
	}
	u.Status = BedOccupied
	return nil
}

func (m *mockRepo) DeleteRoomUnit(_ context.Context, id uuid.UUID) error {
	delete(m.units, id)
	return nil
}

func (m *mockRepo) CountRoomUnits(_ context.Context, roomID uuid.UUID, status string) (int, error) {
	n := 0
	for _, u := range m.units {
		if u.RoomID == roomID && u.Status == status {
			n++
		}
	}
	return n, nil
}

func TestCreateWardAndBed(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	w := &Ward{Name: "General Ward", DailyCharge: 1500}
	if err := svc.CreateWard(context.Background(), w); err != nil {
		t.Fatalf("CreateWard: %v", err)
	}

	b := &Bed{WardID: w.ID, Number: "G-01"}
	if err := svc.CreateBed(context.Background(), b); err != nil {
		t.Fatalf("CreateBed: %v", err)
	}
	if b.Status != BedAvailable {
		t.Errorf("new bed should be available, got %q", b.Status)
	}
}

func TestCreateBed_UnknownWard(t *testing.T) {
	svc := NewService(newMockRepo())

	b := &Bed{WardID: uuid.New(), Number: "G-01"}
	if err := svc.CreateBed(context.Background(), b); err == nil {
		t.Fatal("expected error for unknown ward")
	}
}

func TestDeleteWard_OccupiedBedsBlock(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	w := &Ward{Name: "ICU", DailyCharge: 5000}
	if err := svc.CreateWard(context.Background(), w); err != nil {
		t.Fatalf("CreateWard: %v", err)
	}
	b := &Bed{WardID: w.ID, Number: "I-01"}
	if err := svc.CreateBed(context.Background(), b); err != nil {
		t.Fatalf("CreateBed: %v", err)
	}
	repo.beds[b.ID].Status = BedOccupied

	err := svc.DeleteWard(context.Background(), w.ID)
	if !errors.Is(err, ErrHasOccupants) {
		t.Fatalf("expected ErrHasOccupants, got %v", err)
	}

	repo.beds[b.ID].Status = BedAvailable
	if err := svc.DeleteWard(context.Background(), w.ID); err != nil {
		t.Fatalf("DeleteWard after freeing bed: %v", err)
	}
}

func TestSetBedStatus_OccupancyReserved(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	w := &Ward{Name: "General Ward"}
	if err := svc.CreateWard(context.Background(), w); err != nil {
		t.Fatalf("CreateWard: %v", err)
	}
	b := &Bed{WardID: w.ID, Number: "G-01"}
	if err := svc.CreateBed(context.Background(), b); err != nil {
		t.Fatalf("CreateBed: %v", err)
	}

	// Cannot set occupied manually.
	if err := svc.SetBedStatus(context.Background(), b.ID, BedOccupied); err == nil {
		t.Fatal("expected error setting a bed occupied directly")
	}
	// Maintenance and back is fine.
	if err := svc.SetBedStatus(context.Background(), b.ID, BedMaintenance); err != nil {
		t.Fatalf("SetBedStatus maintenance: %v", err)
	}
	if err := svc.SetBedStatus(context.Background(), b.ID, BedAvailable); err != nil {
		t.Fatalf("SetBedStatus available: %v", err)
	}
	// An occupied bed cannot be changed here.
	repo.beds[b.ID].Status = BedOccupied
	if err := svc.SetBedStatus(context.Background(), b.ID, BedMaintenance); err == nil {
		t.Fatal("expected error changing an occupied bed")
	}
}

func TestDeleteRoom_OccupiedUnitsBlock(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	r := &Room{Name: "Private", DailyCharge: 8000}
	if err := svc.CreateRoom(context.Background(), r); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	u := &RoomUnit{RoomID: r.ID, Number: "P-101"}
	if err := svc.CreateRoomUnit(context.Background(), u); err != nil {
		t.Fatalf("CreateRoomUnit: %v", err)
	}
	repo.units[u.ID].Status = BedOccupied

	if err := svc.DeleteRoom(context.Background(), r.ID); !errors.Is(err, ErrHasOccupants) {
		t.Fatalf("expected ErrHasOccupants, got %v", err)
	}
}

func TestListBeds_InvalidStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.ListBeds(context.Background(), uuid.New(), "sleeping"); err == nil {
		t.Fatal("expected error for invalid status filter")
	}
}
