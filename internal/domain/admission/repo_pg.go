package admission

import (
	"context"
	"fmt"

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

const admissionCols = `a.id, a.patient_id, a.doctor_id, a.alloc_kind, a.ward_id,
	a.bed_id, a.room_id, a.room_unit_id, a.reason, a.diagnosis, a.deposit,
	a.status, a.admitted_at, a.discharged_at, a.created_at, a.updated_at,
	p.name, p.mr, d.name`

func scanAdmission(row pgx.Row) (*Admission, error) {
	var a Admission
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Allocation.Kind,
		&a.Allocation.WardID, &a.Allocation.BedID, &a.Allocation.RoomID,
		&a.Allocation.UnitID, &a.Reason, &a.Diagnosis, &a.Deposit, &a.Status,
		&a.AdmittedAt, &a.DischargedAt, &a.CreatedAt, &a.UpdatedAt,
		&a.PatientName, &a.PatientMR, &a.DoctorName)
	return &a, err
}

const admissionJoin = ` FROM admission a
	JOIN patient p ON p.id = a.patient_id
	JOIN staff_user d ON d.id = a.doctor_id`

func (r *repoPG) Create(ctx context.Context, a *Admission) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO admission (id, patient_id, doctor_id, alloc_kind, ward_id,
			bed_id, room_id, room_unit_id, reason, diagnosis, deposit, status, admitted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		a.ID, a.PatientID, a.DoctorID, a.Allocation.Kind, a.Allocation.WardID,
		a.Allocation.BedID, a.Allocation.RoomID, a.Allocation.UnitID,
		a.Reason, a.Diagnosis, a.Deposit, a.Status, a.AdmittedAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Admission, error) {
	return scanAdmission(r.conn(ctx).QueryRow(ctx,
		`SELECT `+admissionCols+admissionJoin+` WHERE a.id = $1`, id))
}

func (r *repoPG) GetActiveByPatient(ctx context.Context, patientID uuid.UUID) (*Admission, error) {
	return scanAdmission(r.conn(ctx).QueryRow(ctx,
		`SELECT `+admissionCols+admissionJoin+` WHERE a.patient_id = $1 AND a.status = 'admitted'`,
		patientID))
}

func (r *repoPG) Discharge(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE admission SET status='discharged', discharged_at=NOW(), updated_at=NOW()
		WHERE id = $1`, id)
	return err
}

func (r *repoPG) Search(ctx context.Context, f Filters, limit, offset int) ([]*Admission, int, error) {
	query := `SELECT ` + admissionCols + admissionJoin + ` WHERE 1=1`
	countQuery := `SELECT COUNT(*)` + admissionJoin + ` WHERE 1=1`
	var args []interface{}
	idx := 1

	add := func(clause string, val interface{}) {
		query += fmt.Sprintf(clause, idx)
		countQuery += fmt.Sprintf(clause, idx)
		args = append(args, val)
		idx++
	}

	if f.Status != "" {
		add(` AND a.status = $%d`, f.Status)
	}
	if f.PatientID != nil {
		add(` AND a.patient_id = $%d`, *f.PatientID)
	}
	if f.DoctorID != nil {
		add(` AND a.doctor_id = $%d`, *f.DoctorID)
	}
	if f.From != nil {
		add(` AND a.admitted_at >= $%d`, *f.From)
	}
	if f.To != nil {
		add(` AND a.admitted_at < $%d`, *f.To)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY a.admitted_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Admission
	for rows.Next() {
		a, err := scanAdmission(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}
