package registry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	patients map[uuid.UUID]*Patient
	nextMR   int
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	m.nextMR++
	p.MR = fmt.Sprintf("MR-%06d", m.nextMR)
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockRepo) GetByMR(_ context.Context, mr string) (*Patient, error) {
	for _, p := range m.patients {
		if p.MR == mr {
			return p, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) Search(_ context.Context, f Filters, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		if f.CNIC != "" && (p.CNIC == nil || *p.CNIC != f.CNIC) {
			continue
		}
		result = append(result, p)
	}
	return result, len(result), nil
}

func validPatient() *Patient {
	return &Patient{Name: "Ayesha Khan", Phone: "03001234567", Gender: "female"}
}

func TestCreatePatient(t *testing.T) {
	svc := NewService(newMockRepo())

	p := validPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.MR == "" {
		t.Error("expected MR number to be assigned")
	}
	if p.ID == uuid.Nil {
		t.Error("expected ID to be assigned")
	}
}

func TestCreatePatient_EmptyCNICAllowed(t *testing.T) {
	svc := NewService(newMockRepo())

	empty := ""
	p := validPatient()
	p.CNIC = &empty
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.CNIC != nil {
		t.Errorf("expected empty CNIC to be stored as nil, got %q", *p.CNIC)
	}
}

func TestCreatePatient_NormalizesCNIC(t *testing.T) {
	svc := NewService(newMockRepo())

	raw := "3520212345671"
	p := validPatient()
	p.CNIC = &raw
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.CNIC == nil || *p.CNIC != "35202-1234567-1" {
		t.Errorf("expected normalized CNIC, got %v", p.CNIC)
	}
}

func TestCreatePatient_BadCNIC(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	raw := "12345"
	p := validPatient()
	p.CNIC = &raw
	if err := svc.Create(context.Background(), p); err == nil {
		t.Fatal("expected error for short CNIC")
	}
	if len(repo.patients) != 0 {
		t.Error("invalid patient must not be persisted")
	}
}

func TestCreatePatient_RequiredFieldOrder(t *testing.T) {
	svc := NewService(newMockRepo())

	cases := []struct {
		patient *Patient
		wantErr string
	}{
		{&Patient{}, "name is required"},
		{&Patient{Name: "A"}, "phone is required"},
		{&Patient{Name: "A", Phone: "0300"}, "gender is required"},
	}
	for _, c := range cases {
		err := svc.Create(context.Background(), c.patient)
		if err == nil || err.Error() != c.wantErr {
			t.Errorf("Create(%+v) error = %v, want %q", c.patient, err, c.wantErr)
		}
	}
}

func TestUpdatePatient_MRImmutable(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := validPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	originalMR := p.MR

	upd := &Patient{ID: p.ID, Name: "Ayesha K.", Phone: p.Phone, Gender: p.Gender, MR: "MR-999999"}
	if err := svc.Update(context.Background(), upd); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if upd.MR != originalMR {
		t.Errorf("MR changed from %q to %q", originalMR, upd.MR)
	}
}

func TestUpdatePatient_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	p := validPatient()
	p.ID = uuid.New()
	if err := svc.Update(context.Background(), p); err == nil {
		t.Fatal("expected error for unknown patient")
	}
}

func TestDeleteThenSearch(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := validPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	items, total, err := svc.Search(context.Background(), Filters{}, 10, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Errorf("expected empty result after delete, got %d", total)
	}
}

func TestSearch_NormalizesCNICFilter(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	raw := "35202-1234567-1"
	p := validPatient()
	p.CNIC = &raw
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Search without dashes finds the dashed stored value.
	items, _, err := svc.Search(context.Background(), Filters{CNIC: "3520212345671"}, 10, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 match, got %d", len(items))
	}
}
