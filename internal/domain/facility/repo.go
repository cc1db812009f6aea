package facility

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUnavailable is returned by the claim operations when the bed or
// unit was not in the available state at the moment of the update.
var ErrUnavailable = errors.New("not available")

type Repository interface {
	CreateWard(ctx context.Context, w *Ward) error
	GetWard(ctx context.Context, id uuid.UUID) (*Ward, error)
	ListWards(ctx context.Context, limit, offset int) ([]*Ward, int, error)
	UpdateWard(ctx context.Context, w *Ward) error
	DeleteWard(ctx context.Context, id uuid.UUID) error

	CreateBed(ctx context.Context, b *Bed) error
	GetBed(ctx context.Context, id uuid.UUID) (*Bed, error)
	ListBeds(ctx context.Context, wardID uuid.UUID, status string) ([]*Bed, error)
	UpdateBedStatus(ctx context.Context, id uuid.UUID, status string) error
	// ClaimBed flips an available bed to occupied in one conditional
	// update, returning ErrUnavailable when another writer got there
	// first.
	ClaimBed(ctx context.Context, id uuid.UUID) error
	DeleteBed(ctx context.Context, id uuid.UUID) error
	CountBeds(ctx context.Context, wardID uuid.UUID, status string) (int, error)

	CreateRoom(ctx context.Context, r *Room) error
	GetRoom(ctx context.Context, id uuid.UUID) (*Room, error)
	ListRooms(ctx context.Context, limit, offset int) ([]*Room, int, error)
	UpdateRoom(ctx context.Context, r *Room) error
	DeleteRoom(ctx context.Context, id uuid.UUID) error

	CreateRoomUnit(ctx context.Context, u *RoomUnit) error
	GetRoomUnit(ctx context.Context, id uuid.UUID) (*RoomUnit, error)
	ListRoomUnits(ctx context.Context, roomID uuid.UUID, status string) ([]*RoomUnit, error)
	UpdateRoomUnitStatus(ctx context.Context, id uuid.UUID, status string) error
	ClaimRoomUnit(ctx context.Context, id uuid.UUID) error
	DeleteRoomUnit(ctx context.Context, id uuid.UUID) error
	CountRoomUnits(ctx context.Context, roomID uuid.UUID, status string) (int, error)
}
