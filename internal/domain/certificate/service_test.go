package certificate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/registry"
	"github.com/hms/hms/internal/domain/staff"
)

// -- Mocks --

type mockRepo struct {
	births      map[uuid.UUID]*BirthCertificate
	deaths      map[uuid.UUID]*DeathCertificate
	birthSerial int
	deathSerial int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		births: make(map[uuid.UUID]*BirthCertificate),
		deaths: make(map[uuid.UUID]*DeathCertificate),
	}
}

func (m *mockRepo) CreateBirth(_ context.Context, bc *BirthCertificate) error {
	bc.ID = uuid.New()
	m.birthSerial++
	bc.Serial = fmt.Sprintf("BC-%06d", m.birthSerial)
	bc.CreatedAt = time.Now()
	m.births[bc.ID] = bc
	return nil
}

func (m *mockRepo) GetBirth(_ context.Context, id uuid.UUID) (*BirthCertificate, error) {
	bc, ok := m.births[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return bc, nil
}

func (m *mockRepo) UpdateBirth(_ context.Context, bc *BirthCertificate) error {
	if _, ok := m.births[bc.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.births[bc.ID] = bc
	return nil
}

func (m *mockRepo) DeleteBirth(_ context.Context, id uuid.UUID) error {
	delete(m.births, id)
	return nil
}

func (m *mockRepo) SearchBirth(_ context.Context, f Filters, limit, offset int) ([]*BirthCertificate, int, error) {
	var result []*BirthCertificate
	for _, bc := range m.births {
		result = append(result, bc)
	}
	return result, len(result), nil
}

func (m *mockRepo) CreateDeath(_ context.Context, dc *DeathCertificate) error {
	dc.ID = uuid.New()
	m.deathSerial++
	dc.Serial = fmt.Sprintf("DC-%06d", m.deathSerial)
	dc.CreatedAt = time.Now()
	m.deaths[dc.ID] = dc
	return nil
}

func (m *mockRepo) GetDeath(_ context.Context, id uuid.UUID) (*DeathCertificate, error) {
	dc, ok := m.deaths[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return dc, nil
}

func (m *mockRepo) UpdateDeath(_ context.Context, dc *DeathCertificate) error {
	if _, ok := m.deaths[dc.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.deaths[dc.ID] = dc
	return nil
}

func (m *mockRepo) DeleteDeath(_ context.Context, id uuid.UUID) error {
	delete(m.deaths, id)
	return nil
}

func (m *mockRepo) SearchDeath(_ context.Context, f Filters, limit, offset int) ([]*DeathCertificate, int, error) {
	var result []*DeathCertificate
	for _, dc := range m.deaths {
		result = append(result, dc)
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

func newTestService() (*Service, uuid.UUID, uuid.UUID) {
	patient := &registry.Patient{ID: uuid.New(), Name: "Fatima Bibi", MR: "MR-000001"}
	doctor := &staff.User{ID: uuid.New(), Name: "Dr. Sana", Role: staff.RoleDoctor}
	svc := NewService(newMockRepo(),
		&mockPatients{patients: map[uuid.UUID]*registry.Patient{patient.ID: patient}},
		&mockDoctors{users: map[uuid.UUID]*staff.User{doctor.ID: doctor}})
	return svc, patient.ID, doctor.ID
}

func TestCreateBirth(t *testing.T) {
	svc, patientID, doctorID := newTestService()

	bc := &BirthCertificate{
		PatientID: patientID,
		DoctorID:  doctorID,
		ChildName: "Hassan",
		Gender:    "male",
		BornAt:    time.Now().Add(-2 * time.Hour),
	}
	if err := svc.CreateBirth(context.Background(), bc); err != nil {
		t.Fatalf("CreateBirth: %v", err)
	}
	if bc.Serial != "BC-000001" {
		t.Errorf("serial = %q, want BC-000001", bc.Serial)
	}
}

func TestCreateBirth_Validation(t *testing.T) {
	svc, patientID, doctorID := newTestService()

	base := func() *BirthCertificate {
		return &BirthCertificate{
			PatientID: patientID,
			DoctorID:  doctorID,
			ChildName: "Hassan",
			Gender:    "male",
			BornAt:    time.Now().Add(-time.Hour),
		}
	}

	bc := base()
	bc.ChildName = ""
	if err := svc.CreateBirth(context.Background(), bc); err == nil {
		t.Error("expected error for missing child name")
	}

	bc = base()
	bc.BornAt = time.Now().Add(time.Hour)
	if err := svc.CreateBirth(context.Background(), bc); err == nil {
		t.Error("expected error for future birth time")
	}

	bc = base()
	w := -0.5
	bc.WeightKG = &w
	if err := svc.CreateBirth(context.Background(), bc); err == nil {
		t.Error("expected error for non-positive weight")
	}

	bc = base()
	bc.PatientID = uuid.New()
	if err := svc.CreateBirth(context.Background(), bc); err == nil {
		t.Error("expected error for unknown patient")
	}

	bc = base()
	bc.DoctorID = uuid.New()
	if err := svc.CreateBirth(context.Background(), bc); err == nil {
		t.Error("expected error for unknown doctor")
	}
}

func TestCreateDeath(t *testing.T) {
	svc, patientID, doctorID := newTestService()

	dc := &DeathCertificate{
		PatientID: patientID,
		DoctorID:  doctorID,
		DiedAt:    time.Now().Add(-time.Hour),
		Cause:     "cardiac arrest",
	}
	if err := svc.CreateDeath(context.Background(), dc); err != nil {
		t.Fatalf("CreateDeath: %v", err)
	}
	if dc.Serial != "DC-000001" {
		t.Errorf("serial = %q, want DC-000001", dc.Serial)
	}
}

func TestCreateDeath_CauseRequired(t *testing.T) {
	svc, patientID, doctorID := newTestService()

	dc := &DeathCertificate{
		PatientID: patientID,
		DoctorID:  doctorID,
		DiedAt:    time.Now().Add(-time.Hour),
	}
	if err := svc.CreateDeath(context.Background(), dc); err == nil {
		t.Fatal("expected error for missing cause")
	}
}

func TestUpdateBirth_KeepsSerialAndRevalidates(t *testing.T) {
	svc, patientID, doctorID := newTestService()

	bc := &BirthCertificate{
		PatientID: patientID,
		DoctorID:  doctorID,
		ChildName: "Hassan",
		Gender:    "male",
		BornAt:    time.Now().Add(-2 * time.Hour),
	}
	if err := svc.CreateBirth(context.Background(), bc); err != nil {
		t.Fatalf("CreateBirth: %v", err)
	}

	upd := &BirthCertificate{
		ID:        bc.ID,
		PatientID: patientID,
		DoctorID:  doctorID,
		ChildName: "Hassan Ali",
		Gender:    "male",
		BornAt:    bc.BornAt,
		Serial:    "BC-999999",
	}
	if err := svc.UpdateBirth(context.Background(), upd); err != nil {
		t.Fatalf("UpdateBirth: %v", err)
	}
	if upd.Serial != bc.Serial {
		t.Errorf("serial = %q, want the issued %q", upd.Serial, bc.Serial)
	}

	got, err := svc.GetBirth(context.Background(), bc.ID)
	if err != nil {
		t.Fatalf("GetBirth: %v", err)
	}
	if got.ChildName != "Hassan Ali" {
		t.Errorf("child name = %q, want Hassan Ali", got.ChildName)
	}

	// References are re-checked on update.
	upd.DoctorID = uuid.New()
	if err := svc.UpdateBirth(context.Background(), upd); err == nil {
		t.Error("expected error for unknown doctor on update")
	}

	upd.ID = uuid.New()
	if err := svc.UpdateBirth(context.Background(), upd); err == nil {
		t.Error("expected error updating unknown certificate")
	}
}

func TestDeleteBirth(t *testing.T) {
	svc, patientID, doctorID := newTestService()

	bc := &BirthCertificate{
		PatientID: patientID,
		DoctorID:  doctorID,
		ChildName: "Hassan",
		Gender:    "male",
		BornAt:    time.Now().Add(-time.Hour),
	}
	if err := svc.CreateBirth(context.Background(), bc); err != nil {
		t.Fatalf("CreateBirth: %v", err)
	}
	if err := svc.DeleteBirth(context.Background(), bc.ID); err != nil {
		t.Fatalf("DeleteBirth: %v", err)
	}
	if _, err := svc.GetBirth(context.Background(), bc.ID); err == nil {
		t.Error("expected deleted certificate to be gone")
	}
	if err := svc.DeleteBirth(context.Background(), bc.ID); err == nil {
		t.Error("expected error deleting twice")
	}
}

func TestUpdateDeath_KeepsSerial(t *testing.T) {
	svc, patientID, doctorID := newTestService()

	dc := &DeathCertificate{
		PatientID: patientID,
		DoctorID:  doctorID,
		DiedAt:    time.Now().Add(-time.Hour),
		Cause:     "cardiac arrest",
	}
	if err := svc.CreateDeath(context.Background(), dc); err != nil {
		t.Fatalf("CreateDeath: %v", err)
	}

	upd := &DeathCertificate{
		ID:        dc.ID,
		PatientID: patientID,
		DoctorID:  doctorID,
		DiedAt:    dc.DiedAt,
		Cause:     "myocardial infarction",
		Serial:    "DC-999999",
	}
	if err := svc.UpdateDeath(context.Background(), upd); err != nil {
		t.Fatalf("UpdateDeath: %v", err)
	}
	if upd.Serial != dc.Serial {
		t.Errorf("serial = %q, want the issued %q", upd.Serial, dc.Serial)
	}

	upd.Cause = ""
	if err := svc.UpdateDeath(context.Background(), upd); err == nil {
		t.Error("expected error for missing cause on update")
	}
}

func TestDeleteDeath(t *testing.T) {
	svc, patientID, doctorID := newTestService()

	dc := &DeathCertificate{
		PatientID: patientID,
		DoctorID:  doctorID,
		DiedAt:    time.Now().Add(-time.Hour),
		Cause:     "cardiac arrest",
	}
	if err := svc.CreateDeath(context.Background(), dc); err != nil {
		t.Fatalf("CreateDeath: %v", err)
	}
	if err := svc.DeleteDeath(context.Background(), dc.ID); err != nil {
		t.Fatalf("DeleteDeath: %v", err)
	}
	if _, err := svc.GetDeath(context.Background(), dc.ID); err == nil {
		t.Error("expected deleted certificate to be gone")
	}
}

func TestSerialsIncrement(t *testing.T) {
	svc, patientID, doctorID := newTestService()

	for i := 1; i <= 3; i++ {
		bc := &BirthCertificate{
			PatientID: patientID,
			DoctorID:  doctorID,
			ChildName: "Child",
			Gender:    "female",
			BornAt:    time.Now().Add(-time.Hour),
		}
		if err := svc.CreateBirth(context.Background(), bc); err != nil {
			t.Fatalf("CreateBirth %d: %v", i, err)
		}
		want := fmt.Sprintf("BC-%06d", i)
		if bc.Serial != want {
			t.Errorf("serial = %q, want %q", bc.Serial, want)
		}
	}
}
