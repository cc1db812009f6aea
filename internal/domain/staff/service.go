package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/auth"
)

type Service struct {
	users  Repository
	tokens *auth.TokenIssuer
}

func NewService(users Repository, tokens *auth.TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// LoginResult carries the issued token together with the account it belongs
// to, minus the password hash.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	u, err := s.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !u.Active {
		return nil, fmt.Errorf("account is deactivated")
	}
	if !auth.CheckPassword(creds.Password, u.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := s.tokens.Issue(u.ID, u.Name, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, User: u}, nil
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*User, error) {
	u := req.User
	if u.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if u.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if !validRoles[u.Role] {
		return nil, fmt.Errorf("invalid role: %s", u.Role)
	}
	if existing, err := s.users.GetByEmail(ctx, u.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("email already in use")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	u.Active = true

	if err := s.users.Create(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, u *User) error {
	existing, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("staff user not found")
	}
	if u.Role == "" {
		u.Role = existing.Role
	}
	if !validRoles[u.Role] {
		return fmt.Errorf("invalid role: %s", u.Role)
	}
	if u.Name == "" {
		return fmt.Errorf("name is required")
	}
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	// Activation is managed through Deactivate and Activate only; a PUT
	// body that omits the flag must not deactivate the account.
	u.Active = existing.Active
	return s.users.Update(ctx, u)
}

// Deactivate disables login for an account. Accounts are never deleted so
// that records they created keep a valid author reference.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("staff user not found")
	}
	u.Active = false
	return s.users.Update(ctx, u)
}

// Activate re-enables login for a deactivated account.
func (s *Service) Activate(ctx context.Context, id uuid.UUID) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("staff user not found")
	}
	u.Active = true
	return s.users.Update(ctx, u)
}

func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("new password is required")
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("staff user not found")
	}
	if !auth.CheckPassword(oldPassword, u.PasswordHash) {
		return fmt.Errorf("current password is incorrect")
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, id, hash)
}

func (s *Service) Search(ctx context.Context, f Filters, limit, offset int) ([]*User, int, error) {
	return s.users.Search(ctx, f, limit, offset)
}

// ListDoctors returns active doctor accounts, used by admission and
// certificate forms to populate doctor selections.
func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*User, int, error) {
	active := true
	return s.users.Search(ctx, Filters{Role: RoleDoctor, Active: &active}, limit, offset)
}
