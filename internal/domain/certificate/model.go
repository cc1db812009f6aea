package certificate

import (
	"time"

	"github.com/google/uuid"
)

// BirthCertificate records a birth attended at the facility. PatientID
// references the mother's registry entry; Serial is assigned by the
// server in the form BC-000001.
type BirthCertificate struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Serial     string    `db:"serial" json:"serial"`
	PatientID  uuid.UUID `db:"patient_id" json:"patientId"`
	DoctorID   uuid.UUID `db:"doctor_id" json:"doctorId"`
	ChildName  string    `db:"child_name" json:"childName"`
	Gender     string    `db:"gender" json:"gender"`
	BornAt     time.Time `db:"born_at" json:"bornAt"`
	WeightKG   *float64  `db:"weight_kg" json:"weightKg,omitempty"`
	FatherName *string   `db:"father_name" json:"fatherName,omitempty"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`

	MotherName string `db:"-" json:"motherName,omitempty"`
	MotherMR   string `db:"-" json:"motherMr,omitempty"`
	DoctorName string `db:"-" json:"doctorName,omitempty"`
}

// DeathCertificate records a death certified at the facility. Serial is
// assigned by the server in the form DC-000001.
type DeathCertificate struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Serial    string    `db:"serial" json:"serial"`
	PatientID uuid.UUID `db:"patient_id" json:"patientId"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctorId"`
	DiedAt    time.Time `db:"died_at" json:"diedAt"`
	Cause     string    `db:"cause" json:"cause"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	PatientName string `db:"-" json:"patientName,omitempty"`
	PatientMR   string `db:"-" json:"patientMr,omitempty"`
	DoctorName  string `db:"-" json:"doctorName,omitempty"`
}

// Filters narrows certificate list queries.
type Filters struct {
	Search string
	From   *time.Time
	To     *time.Time
}
