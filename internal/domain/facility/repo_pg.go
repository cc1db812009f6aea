package facility

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// Wards

func (r *repoPG) CreateWard(ctx context.Context, w *Ward) error {
	w.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO ward (id, name, description, daily_charge)
		VALUES ($1,$2,$3,$4)`,
		w.ID, w.Name, w.Description, w.DailyCharge)
	return err
}

func (r *repoPG) GetWard(ctx context.Context, id uuid.UUID) (*Ward, error) {
	var w Ward
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, name, description, daily_charge, created_at, updated_at
		FROM ward WHERE id = $1`, id).
		Scan(&w.ID, &w.Name, &w.Description, &w.DailyCharge, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repoPG) ListWards(ctx context.Context, limit, offset int) ([]*Ward, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM ward`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT w.id, w.name, w.description, w.daily_charge, w.created_at, w.updated_at,
			COUNT(b.id) AS total_beds,
			COUNT(b.id) FILTER (WHERE b.status = 'available') AS available_beds
		FROM ward w
		LEFT JOIN bed b ON b.ward_id = w.id
		GROUP BY w.id
		ORDER BY w.name
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Ward
	for rows.Next() {
		var w Ward
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.DailyCharge,
			&w.CreatedAt, &w.UpdatedAt, &w.TotalBeds, &w.AvailableBeds); err != nil {
			return nil, 0, err
		}
		items = append(items, &w)
	}
	return items, total, nil
}

func (r *repoPG) UpdateWard(ctx context.Context, w *Ward) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE ward SET name=$2, description=$3, daily_charge=$4, updated_at=NOW()
		WHERE id = $1`,
		w.ID, w.Name, w.Description, w.DailyCharge)
	return err
}

func (r *repoPG) DeleteWard(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM ward WHERE id = $1`, id)
	return err
}

// Beds

func (r *repoPG) CreateBed(ctx context.Context, b *Bed) error {
	b.ID = uuid.New()
	if b.Status == "" {
		b.Status = BedAvailable
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bed (id, ward_id, number, status) VALUES ($1,$2,$3,$4)`,
		b.ID, b.WardID, b.Number, b.Status)
	return err
}

func (r *repoPG) GetBed(ctx context.Context, id uuid.UUID) (*Bed, error) {
	var b Bed
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, ward_id, number, status, created_at, updated_at
		FROM bed WHERE id = $1`, id).
		Scan(&b.ID, &b.WardID, &b.Number, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repoPG) ListBeds(ctx context.Context, wardID uuid.UUID, status string) ([]*Bed, error) {
	query := `SELECT id, ward_id, number, status, created_at, updated_at
		FROM bed WHERE ward_id = $1`
	args := []interface{}{wardID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY number`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Bed
	for rows.Next() {
		var b Bed
		if err := rows.Scan(&b.ID, &b.WardID, &b.Number, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &b)
	}
	return items, nil
}

func (r *repoPG) UpdateBedStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE bed SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	return err
}

// ClaimBed only succeeds when the row is still available, so two
// concurrent admissions cannot both take the same bed.
func (r *repoPG) ClaimBed(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE bed SET status='occupied', updated_at=NOW()
		WHERE id = $1 AND status = 'available'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUnavailable
	}
	return nil
}

func (r *repoPG) DeleteBed(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM bed WHERE id = $1`, id)
	return err
}

func (r *repoPG) CountBeds(ctx context.Context, wardID uuid.UUID, status string) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM bed WHERE ward_id = $1 AND status = $2`, wardID, status).Scan(&n)
	return n, err
}

// Rooms

func (r *repoPG) CreateRoom(ctx context.Context, rm *Room) error {
	rm.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO room (id, name, description, daily_charge)
		VALUES ($1,$2,$3,$4)`,
		rm.ID, rm.Name, rm.Description, rm.DailyCharge)
	return err
}

func (r *repoPG) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	var rm Room
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, name, description, daily_charge, created_at, updated_at
		FROM room WHERE id = $1`, id).
		Scan(&rm.ID, &rm.Name, &rm.Description, &rm.DailyCharge, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *repoPG) ListRooms(ctx context.Context, limit, offset int) ([]*Room, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM room`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT r.id, r.name, r.description, r.daily_charge, r.created_at, r.updated_at,
			COUNT(u.id) AS total_units,
			COUNT(u.id) FILTER (WHERE u.status = 'available') AS available_units
		FROM room r
		LEFT JOIN room_unit u ON u.room_id = r.id
		GROUP BY r.id
		ORDER BY r.name
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Room
	for rows.Next() {
		var rm Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Description, &rm.DailyCharge,
			&rm.CreatedAt, &rm.UpdatedAt, &rm.TotalUnits, &rm.AvailableUnits); err != nil {
			return nil, 0, err
		}
		items = append(items, &rm)
	}
	return items, total, nil
}

func (r *repoPG) UpdateRoom(ctx context.Context, rm *Room) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE room SET name=$2, description=$3, daily_charge=$4, updated_at=NOW()
		WHERE id = $1`,
		rm.ID, rm.Name, rm.Description, rm.DailyCharge)
	return err
}

func (r *repoPG) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM room WHERE id = $1`, id)
	return err
}

// Room units

func (r *repoPG) CreateRoomUnit(ctx context.Context, u *RoomUnit) error {
	u.ID = uuid.New()
	if u.Status == "" {
		u.Status = BedAvailable
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO room_unit (id, room_id, number, status) VALUES ($1,$2,$3,$4)`,
		u.ID, u.RoomID, u.Number, u.Status)
	return err
}

func (r *repoPG) GetRoomUnit(ctx context.Context, id uuid.UUID) (*RoomUnit, error) {
	var u RoomUnit
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, room_id, number, status, created_at, updated_at
		FROM room_unit WHERE id = $1`, id).
		Scan(&u.ID, &u.RoomID, &u.Number, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repoPG) ListRoomUnits(ctx context.Context, roomID uuid.UUID, status string) ([]*RoomUnit, error) {
	query := `SELECT id, room_id, number, status, created_at, updated_at
		FROM room_unit WHERE room_id = $1`
	args := []interface{}{roomID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY number`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*RoomUnit
	for rows.Next() {
		var u RoomUnit
		if err := rows.Scan(&u.ID, &u.RoomID, &u.Number, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &u)
	}
	return items, nil
}

func (r *repoPG) UpdateRoomUnitStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE room_unit SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) ClaimRoomUnit(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE room_unit SET status='occupied', updated_at=NOW()
		WHERE id = $1 AND status = 'available'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUnavailable
	}
	return nil
}

func (r *repoPG) DeleteRoomUnit(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM room_unit WHERE id = $1`, id)
	return err
}

func (r *repoPG) CountRoomUnits(ctx context.Context, roomID uuid.UUID, status string) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM room_unit WHERE room_id = $1 AND status = $2`, roomID, status).Scan(&n)
	return n, err
}
