package staff

import (
	"time"

	"github.com/google/uuid"
)

// Roles a staff account can hold. admin implicitly passes every role check.
const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleDoctor       = "doctor"
	RoleNurse        = "nurse"
	RolePharmacist   = "pharmacist"
)

var validRoles = map[string]bool{
	RoleAdmin: true, RoleReceptionist: true, RoleDoctor: true,
	RoleNurse: true, RolePharmacist: true,
}

// User maps to the staff_user table. Doctor-specific fields are null for
// other roles; OPD/IPD mark which departments a doctor serves.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	Role           string    `db:"role" json:"role"`
	Active         bool      `db:"active" json:"active"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Specialization *string   `db:"specialization" json:"specialization,omitempty"`
	OPD            bool      `db:"opd" json:"opd"`
	IPD            bool      `db:"ipd" json:"ipd"`
	ConsultFee     *float64  `db:"consult_fee" json:"consultationFee,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateRequest is the body for creating a staff account.
type CreateRequest struct {
	User
	Password string `json:"password"`
}

// Filters narrows staff list queries.
type Filters struct {
	Role   string
	Search string
	Active *bool
}
