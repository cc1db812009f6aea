package staff

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/auth"
)

// -- Mock Repository --

type mockRepo struct {
	users map[uuid.UUID]*User
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockRepo) Create(_ context.Context, u *User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return u, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Update(_ context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	u.PasswordHash = hash
	return nil
}

func (m *mockRepo) Search(_ context.Context, f Filters, limit, offset int) ([]*User, int, error) {
	var result []*User
	for _, u := range m.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Active != nil && u.Active != *f.Active {
			continue
		}
		result = append(result, u)
	}
	return result, len(result), nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	tokens := auth.NewTokenIssuer("test-secret-test-secret-test-secret", time.Hour)
	return NewService(repo, tokens), repo
}

func TestCreateAndLogin(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Create(context.Background(), &CreateRequest{
		User:     User{Name: "Dr. Sana", Email: "sana@clinic.test", Role: RoleDoctor},
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.PasswordHash == "s3cret-pass" {
		t.Error("password stored unhashed")
	}
	if !u.Active {
		t.Error("new accounts should be active")
	}

	result, err := svc.Login(context.Background(), Credentials{Email: "sana@clinic.test", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.User.ID != u.ID {
		t.Error("login returned wrong user")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Create(context.Background(), &CreateRequest{
		User:     User{Name: "Dr. Sana", Email: "sana@clinic.test", Role: RoleDoctor},
		Password: "correct",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Login(context.Background(), Credentials{Email: "sana@clinic.test", Password: "wrong"}); err == nil {
		t.Fatal("expected error for wrong password")
	}
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Create(context.Background(), &CreateRequest{
		User:     User{Name: "Reception", Email: "front@clinic.test", Role: RoleReceptionist},
		Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Deactivate(context.Background(), u.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	if _, err := svc.Login(context.Background(), Credentials{Email: "front@clinic.test", Password: "pass1234"}); err == nil {
		t.Fatal("expected error for deactivated account")
	}
}

func TestCreate_InvalidRole(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &CreateRequest{
		User:     User{Name: "X", Email: "x@clinic.test", Role: "janitor"},
		Password: "pass1234",
	})
	if err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	req := CreateRequest{
		User:     User{Name: "A", Email: "dup@clinic.test", Role: RoleNurse},
		Password: "pass1234",
	}
	if _, err := svc.Create(context.Background(), &req); err != nil {
		t.Fatalf("Create: %v", err)
	}
	req2 := CreateRequest{
		User:     User{Name: "B", Email: "dup@clinic.test", Role: RoleNurse},
		Password: "pass1234",
	}
	if _, err := svc.Create(context.Background(), &req2); err == nil {
		t.Fatal("expected error for duplicate email")
	}
}

// A PUT body that carries no active flag must not deactivate the
// account.
func TestUpdate_PreservesActiveFlag(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Create(context.Background(), &CreateRequest{
		User:     User{Name: "Dr. Sana", Email: "sana@clinic.test", Role: RoleDoctor},
		Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	upd := &User{ID: u.ID, Name: "Dr. Sana Malik", Email: "sana@clinic.test"}
	if err := svc.Update(context.Background(), upd); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.Get(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Active {
		t.Error("update without active flag deactivated the account")
	}
	if got.Role != RoleDoctor {
		t.Errorf("role = %q, want backfilled doctor", got.Role)
	}

	// Deactivation survives an update the same way.
	if err := svc.Deactivate(context.Background(), u.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	upd = &User{ID: u.ID, Name: "Dr. Sana Malik", Email: "sana@clinic.test", Active: true}
	if err := svc.Update(context.Background(), upd); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = svc.Get(context.Background(), u.ID)
	if got.Active {
		t.Error("update must not reactivate a deactivated account")
	}
}

func TestActivate_RestoresLogin(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Create(context.Background(), &CreateRequest{
		User:     User{Name: "Reception", Email: "front@clinic.test", Role: RoleReceptionist},
		Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Deactivate(context.Background(), u.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if _, err := svc.Login(context.Background(), Credentials{Email: "front@clinic.test", Password: "pass1234"}); err == nil {
		t.Fatal("expected login to fail while deactivated")
	}
	if err := svc.Activate(context.Background(), u.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if _, err := svc.Login(context.Background(), Credentials{Email: "front@clinic.test", Password: "pass1234"}); err != nil {
		t.Fatalf("login after activate: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Create(context.Background(), &CreateRequest{
		User:     User{Name: "N", Email: "n@clinic.test", Role: RoleNurse},
		Password: "old-pass",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), u.ID, "bad-old", "new-pass"); err == nil {
		t.Fatal("expected error for wrong current password")
	}
	if err := svc.ChangePassword(context.Background(), u.ID, "old-pass", "new-pass"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := svc.Login(context.Background(), Credentials{Email: "n@clinic.test", Password: "new-pass"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestListDoctors_OnlyActiveDoctors(t *testing.T) {
	svc, _ := newTestService()

	doc, err := svc.Create(context.Background(), &CreateRequest{
		User:     User{Name: "Doc", Email: "doc@clinic.test", Role: RoleDoctor},
		Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Create doctor: %v", err)
	}
	if _, err := svc.Create(context.Background(), &CreateRequest{
		User:     User{Name: "Nurse", Email: "nurse@clinic.test", Role: RoleNurse},
		Password: "pass1234",
	}); err != nil {
		t.Fatalf("Create nurse: %v", err)
	}
	inactive, err := svc.Create(context.Background(), &CreateRequest{
		User:     User{Name: "Gone", Email: "gone@clinic.test", Role: RoleDoctor},
		Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Create inactive doctor: %v", err)
	}
	if err := svc.Deactivate(context.Background(), inactive.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	items, total, err := svc.ListDoctors(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListDoctors: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != doc.ID {
		t.Errorf("expected only the active doctor, got %d items", len(items))
	}
}
