package admission

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/facility"
	"github.com/hms/hms/internal/domain/registry"
	"github.com/hms/hms/internal/domain/staff"
)

// -- Mocks --

type mockRepo struct {
	admissions map[uuid.UUID]*Admission
}

func newMockRepo() *mockRepo {
	return &mockRepo{admissions: make(map[uuid.UUID]*Admission)}
}

func (m *mockRepo) Create(_ context.Context, a *Admission) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.admissions[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Admission, error) {
	a, ok := m.admissions[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}

func (m *mockRepo) GetActiveByPatient(_ context.Context, patientID uuid.UUID) (*Admission, error) {
	for _, a := range m.admissions {
		if a.PatientID == patientID && a.Status == StatusAdmitted {
			return a, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Discharge(_ context.Context, id uuid.UUID) error {
	a, ok := m.admissions[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	a.Status = StatusDischarged
	now := time.Now()
	a.DischargedAt = &now
	return nil
}

func (m *mockRepo) Search(_ context.Context, f Filters, limit, offset int) ([]*Admission, int, error) {
	var result []*Admission
	for _, a := range m.admissions {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		result = append(result, a)
	}
	return result, len(result), nil
}

type mockPatients struct {
	patients map[uuid.UUID]*registry.Patient
}

func (m *mockPatients) GetByID(_ context.Context, id uuid.UUID) (*registry.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

type mockDoctors struct {
	users map[uuid.UUID]*staff.User
}

func (m *mockDoctors) GetByID(_ context.Context, id uuid.UUID) (*staff.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return u, nil
}

type mockFacilities struct {
	wards map[uuid.UUID]*facility.Ward
	beds  map[uuid.UUID]*facility.Bed
	rooms map[uuid.UUID]*facility.Room
	units map[uuid.UUID]*facility.RoomUnit
	// denyClaims makes every claim fail regardless of the read status,
	// standing in for a writer that got to the row first.
	denyClaims bool
}

func (m *mockFacilities) GetWard(_ context.Context, id uuid.UUID) (*facility.Ward, error) {
	w, ok := m.wards[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return w, nil
}

func (m *mockFacilities) GetBed(_ context.Context, id uuid.UUID) (*facility.Bed, error) {
	b, ok := m.beds[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return b, nil
}

func (m *mockFacilities) ClaimBed(_ context.Context, id uuid.UUID) error {
	b, ok := m.beds[id]
	if !ok || m.denyClaims || b.Status != facility.BedAvailable {
		return facility.ErrUnavailable
	}
	b.Status = facility.BedOccupied
	return nil
}

func (m *mockFacilities) UpdateBedStatus(_ context.Context, id uuid.UUID, status string) error {
	b, ok := m.beds[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	b.Status = status
	return nil
}

func (m *mockFacilities) GetRoom(_ context.Context, id uuid.UUID) (*facility.Room, error) {
	r, ok := m.rooms[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return r, nil
}

func (m *mockFacilities) GetRoomUnit(_ context.Context, id uuid.UUID) (*facility.RoomUnit, error) {
	u, ok := m.units[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return u, nil
}

func (m *mockFacilities) ClaimRoomUnit(_ context.Context, id uuid.UUID) error {
	u, ok := m.units[id]
	if !ok || m.denyClaims || u.Status != facility.BedAvailable {
		return facility.ErrUnavailable
	}
	u.Status = facility.BedOccupied
	return nil
}

func (m *mockFacilities) UpdateRoomUnitStatus(_ context.Context, id uuid.UUID, status string) error {
	u, ok := m.units[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	u.Status = status
	return nil
}

// passthroughTx runs fn directly, without a database.
func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	svc     *Service
	repo    *mockRepo
	fac     *mockFacilities
	patient *registry.Patient
	doctor  *staff.User
	ward    *facility.Ward
	bed     *facility.Bed
	room    *facility.Room
	unit    *facility.RoomUnit
}

func newFixture() *fixture {
	patient := &registry.Patient{ID: uuid.New(), Name: "Ali Raza", MR: "MR-000001"}
	doctor := &staff.User{ID: uuid.New(), Name: "Dr. Sana", Role: staff.RoleDoctor}
	ward := &facility.Ward{ID: uuid.New(), Name: "General Ward"}
	bed := &facility.Bed{ID: uuid.New(), WardID: ward.ID, Number: "G-01", Status: facility.BedAvailable}
	room := &facility.Room{ID: uuid.New(), Name: "Private"}
	unit := &facility.RoomUnit{ID: uuid.New(), RoomID: room.ID, Number: "P-101", Status: facility.BedAvailable}

	repo := newMockRepo()
	fac := &mockFacilities{
		wards: map[uuid.UUID]*facility.Ward{ward.ID: ward},
		beds:  map[uuid.UUID]*facility.Bed{bed.ID: bed},
		rooms: map[uuid.UUID]*facility.Room{room.ID: room},
		units: map[uuid.UUID]*facility.RoomUnit{unit.ID: unit},
	}
	svc := NewService(repo,
		&mockPatients{patients: map[uuid.UUID]*registry.Patient{patient.ID: patient}},
		&mockDoctors{users: map[uuid.UUID]*staff.User{doctor.ID: doctor}},
		fac, passthroughTx)

	return &fixture{svc: svc, repo: repo, fac: fac, patient: patient, doctor: doctor,
		ward: ward, bed: bed, room: room, unit: unit}
}

func (f *fixture) wardAdmission() *Admission {
	return &Admission{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		Allocation: Allocation{
			Kind:   AllocWard,
			WardID: &f.ward.ID,
			BedID:  &f.bed.ID,
		},
	}
}

func TestAdmit_WardBedOccupied(t *testing.T) {
	f := newFixture()

	a := f.wardAdmission()
	if err := f.svc.Admit(context.Background(), a); err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if a.Status != StatusAdmitted {
		t.Errorf("status = %q, want admitted", a.Status)
	}
	if f.bed.Status != facility.BedOccupied {
		t.Errorf("bed status = %q, want occupied", f.bed.Status)
	}
}

func TestAdmit_SecondActiveAdmissionRejected(t *testing.T) {
	f := newFixture()

	if err := f.svc.Admit(context.Background(), f.wardAdmission()); err != nil {
		t.Fatalf("first Admit: %v", err)
	}

	// Same patient, different placement.
	a := &Admission{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		Allocation: Allocation{
			Kind:   AllocRoom,
			RoomID: &f.room.ID,
			UnitID: &f.unit.ID,
		},
	}
	err := f.svc.Admit(context.Background(), a)
	if !errors.Is(err, ErrAlreadyAdmitted) {
		t.Fatalf("expected ErrAlreadyAdmitted, got %v", err)
	}
}

func TestAdmit_StaleBedSelection(t *testing.T) {
	f := newFixture()
	f.bed.Status = facility.BedOccupied

	err := f.svc.Admit(context.Background(), f.wardAdmission())
	if !errors.Is(err, ErrBedTaken) {
		t.Fatalf("expected ErrBedTaken, got %v", err)
	}
}

// The read may still say available; the conditional claim decides.
func TestAdmit_BedClaimedConcurrently(t *testing.T) {
	f := newFixture()
	f.fac.denyClaims = true

	err := f.svc.Admit(context.Background(), f.wardAdmission())
	if !errors.Is(err, ErrBedTaken) {
		t.Fatalf("expected ErrBedTaken, got %v", err)
	}
	if len(f.repo.admissions) != 0 {
		t.Error("failed claim must not create an admission")
	}
}

func TestAdmit_BedFromAnotherWard(t *testing.T) {
	f := newFixture()

	otherWard := &facility.Ward{ID: uuid.New(), Name: "ICU"}
	f.fac.wards[otherWard.ID] = otherWard

	a := f.wardAdmission()
	a.Allocation.WardID = &otherWard.ID
	if err := f.svc.Admit(context.Background(), a); err == nil {
		t.Fatal("expected error for bed outside the selected ward")
	}
}

func TestAdmit_AllocationKindRequired(t *testing.T) {
	f := newFixture()

	a := f.wardAdmission()
	a.Allocation.Kind = "corridor"
	if err := f.svc.Admit(context.Background(), a); err == nil {
		t.Fatal("expected error for invalid allocation kind")
	}

	a = f.wardAdmission()
	a.Allocation.BedID = nil
	if err := f.svc.Admit(context.Background(), a); err == nil {
		t.Fatal("expected error for ward admission without a bed")
	}
}

func TestAdmit_NonDoctorRejected(t *testing.T) {
	f := newFixture()

	nurse := &staff.User{ID: uuid.New(), Name: "N", Role: staff.RoleNurse}
	f.svc.doctors.(*mockDoctors).users[nurse.ID] = nurse

	a := f.wardAdmission()
	a.DoctorID = nurse.ID
	if err := f.svc.Admit(context.Background(), a); err == nil {
		t.Fatal("expected error for non-doctor admitting reference")
	}
}

func TestDischarge_FreesBed(t *testing.T) {
	f := newFixture()

	a := f.wardAdmission()
	if err := f.svc.Admit(context.Background(), a); err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if err := f.svc.Discharge(context.Background(), a.ID); err != nil {
		t.Fatalf("Discharge: %v", err)
	}
	if f.bed.Status != facility.BedAvailable {
		t.Errorf("bed status = %q, want available", f.bed.Status)
	}

	got, err := f.svc.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusDischarged || got.DischargedAt == nil {
		t.Errorf("expected discharged admission, got %+v", got)
	}

	// Double discharge fails.
	if err := f.svc.Discharge(context.Background(), a.ID); err == nil {
		t.Fatal("expected error discharging twice")
	}
}

func TestAdmit_RoomUnit(t *testing.T) {
	f := newFixture()

	a := &Admission{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		Allocation: Allocation{
			Kind:   AllocRoom,
			RoomID: &f.room.ID,
			UnitID: &f.unit.ID,
		},
	}
	if err := f.svc.Admit(context.Background(), a); err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if f.unit.Status != facility.BedOccupied {
		t.Errorf("unit status = %q, want occupied", f.unit.Status)
	}
	// Ward fields cleared on a room admission.
	if a.Allocation.WardID != nil || a.Allocation.BedID != nil {
		t.Error("ward fields should be nil for a room admission")
	}
}
