package registry

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. MR numbers are generated server-side
// from a sequence and are unique; clients never supply them.
type Patient struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	MR        string     `db:"mr" json:"mr"`
	Name      string     `db:"name" json:"name"`
	Phone     string     `db:"phone" json:"phone"`
	Gender    string     `db:"gender" json:"gender"`
	BirthDate *time.Time `db:"birth_date" json:"dob,omitempty"`
	CNIC      *string    `db:"cnic" json:"cnic,omitempty"`
	Address   *string    `db:"address" json:"address,omitempty"`
	PhotoURL  *string    `db:"photo_url" json:"image,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}

// Filters narrows patient list queries. Search matches the name as a
// substring; MR, Phone, and CNIC match exactly; From/To bound the
// registration date.
type Filters struct {
	Search string
	MR     string
	Phone  string
	CNIC   string
	From   *time.Time
	To     *time.Time
}
