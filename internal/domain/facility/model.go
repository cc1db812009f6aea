package facility

import (
	"time"

	"github.com/google/uuid"
)

// Bed statuses. A bed leaves "available" only through an admission and
// returns to it on discharge; "maintenance" takes it out of rotation.
const (
	BedAvailable   = "available"
	BedOccupied    = "occupied"
	BedMaintenance = "maintenance"
)

var validBedStatuses = map[string]bool{
	BedAvailable: true, BedOccupied: true, BedMaintenance: true,
}

// Ward is a shared, multi-bed unit (general ward, ICU, nursery).
type Ward struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	DailyCharge float64   `db:"daily_charge" json:"dailyCharge"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	// Populated on list queries.
	TotalBeds     int `db:"-" json:"totalBeds"`
	AvailableBeds int `db:"-" json:"availableBeds"`
}

type Bed struct {
	ID        uuid.UUID `db:"id" json:"id"`
	WardID    uuid.UUID `db:"ward_id" json:"wardId"`
	Number    string    `db:"number" json:"number"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Room is a category of private rooms (private, semi-private, deluxe).
type Room struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	DailyCharge float64   `db:"daily_charge" json:"dailyCharge"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	TotalUnits     int `db:"-" json:"totalUnits"`
	AvailableUnits int `db:"-" json:"availableUnits"`
}

// RoomUnit is a single occupiable room within a category. It reuses the
// bed status vocabulary so occupancy handling is uniform.
type RoomUnit struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RoomID    uuid.UUID `db:"room_id" json:"roomId"`
	Number    string    `db:"number" json:"number"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
