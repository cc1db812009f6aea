package admission

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusAdmitted   = "admitted"
	StatusDischarged = "discharged"
)

// Allocation kinds. Exactly one of the two id pairs is set, matching
// the kind.
const (
	AllocWard = "ward"
	AllocRoom = "room"
)

// Allocation records where an admitted patient is placed. For a ward
// admission WardID and BedID are set; for a room admission RoomID and
// UnitID are set.
type Allocation struct {
	Kind   string     `db:"alloc_kind" json:"kind"`
	WardID *uuid.UUID `db:"ward_id" json:"wardId,omitempty"`
	BedID  *uuid.UUID `db:"bed_id" json:"bedId,omitempty"`
	RoomID *uuid.UUID `db:"room_id" json:"roomId,omitempty"`
	UnitID *uuid.UUID `db:"room_unit_id" json:"unitId,omitempty"`
}

type Admission struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PatientID    uuid.UUID  `db:"patient_id" json:"patientId"`
	DoctorID     uuid.UUID  `db:"doctor_id" json:"doctorId"`
	Allocation   Allocation `json:"allocation"`
	Reason       *string    `db:"reason" json:"reason,omitempty"`
	Diagnosis    *string    `db:"diagnosis" json:"diagnosis,omitempty"`
	Deposit      float64    `db:"deposit" json:"deposit"`
	Status       string     `db:"status" json:"status"`
	AdmittedAt   time.Time  `db:"admitted_at" json:"admittedAt"`
	DischargedAt *time.Time `db:"discharged_at" json:"dischargedAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`

	// Populated on reads for display.
	PatientName string `db:"-" json:"patientName,omitempty"`
	PatientMR   string `db:"-" json:"patientMr,omitempty"`
	DoctorName  string `db:"-" json:"doctorName,omitempty"`
}

// Filters narrows admission list queries.
type Filters struct {
	Status    string
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	From      *time.Time
	To        *time.Time
}
