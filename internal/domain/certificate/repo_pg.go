package certificate

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

// Birth certificates

const birthCols = `b.id, b.serial, b.patient_id, b.doctor_id, b.child_name,
	b.gender, b.born_at, b.weight_kg, b.father_name, b.notes,
	b.created_at, b.updated_at, p.name, p.mr, d.name`

const birthJoin = ` FROM birth_certificate b
	JOIN patient p ON p.id = b.patient_id
	JOIN staff_user d ON d.id = b.doctor_id`

func scanBirth(row pgx.Row) (*BirthCertificate, error) {
	var bc BirthCertificate
	err := row.Scan(&bc.ID, &bc.Serial, &bc.PatientID, &bc.DoctorID, &bc.ChildName,
		&bc.Gender, &bc.BornAt, &bc.WeightKG, &bc.FatherName, &bc.Notes,
		&bc.CreatedAt, &bc.UpdatedAt, &bc.MotherName, &bc.MotherMR, &bc.DoctorName)
	return &bc, err
}

func (r *repoPG) CreateBirth(ctx context.Context, bc *BirthCertificate) error {
	var seq int64
	if err := r.conn(ctx).QueryRow(ctx, `SELECT nextval('birth_cert_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("next birth serial: %w", err)
	}
	bc.ID = uuid.New()
	bc.Serial = fmt.Sprintf("BC-%06d", seq)
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO birth_certificate (id, serial, patient_id, doctor_id, child_name,
			gender, born_at, weight_kg, father_name, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		bc.ID, bc.Serial, bc.PatientID, bc.DoctorID, bc.ChildName,
		bc.Gender, bc.BornAt, bc.WeightKG, bc.FatherName, bc.Notes)
	return err
}

func (r *repoPG) GetBirth(ctx context.Context, id uuid.UUID) (*BirthCertificate, error) {
	return scanBirth(r.conn(ctx).QueryRow(ctx,
		`SELECT `+birthCols+birthJoin+` WHERE b.id = $1`, id))
}

// UpdateBirth rewrites the certificate's details. The serial is never
// touched.
func (r *repoPG) UpdateBirth(ctx context.Context, bc *BirthCertificate) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE birth_certificate
		SET patient_id=$2, doctor_id=$3, child_name=$4, gender=$5, born_at=$6,
			weight_kg=$7, father_name=$8, notes=$9, updated_at=NOW()
		WHERE id = $1`,
		bc.ID, bc.PatientID, bc.DoctorID, bc.ChildName, bc.Gender, bc.BornAt,
		bc.WeightKG, bc.FatherName, bc.Notes)
	return err
}

func (r *repoPG) DeleteBirth(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM birth_certificate WHERE id = $1`, id)
	return err
}

func (r *repoPG) SearchBirth(ctx context.Context, f Filters, limit, offset int) ([]*BirthCertificate, int, error) {
	query := `SELECT ` + birthCols + birthJoin + ` WHERE 1=1`
	countQuery := `SELECT COUNT(*)` + birthJoin + ` WHERE 1=1`
	var args []interface{}
	idx := 1

	add := func(clause string, val interface{}) {
		query += fmt.Sprintf(clause, idx)
		countQuery += fmt.Sprintf(clause, idx)
		args = append(args, val)
		idx++
	}

	if f.Search != "" {
		add(` AND (b.serial ILIKE $%[1]d OR b.child_name ILIKE $%[1]d)`, "%"+f.Search+"%")
	}
	if f.From != nil {
		add(` AND b.born_at >= $%d`, *f.From)
	}
	if f.To != nil {
		add(` AND b.born_at < $%d`, *f.To)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*BirthCertificate
	for rows.Next() {
		bc, err := scanBirth(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, bc)
	}
	return items, total, nil
}

// Death certificates

const deathCols = `dc.id, dc.serial, dc.patient_id, dc.doctor_id, dc.died_at,
	dc.cause, dc.notes, dc.created_at, dc.updated_at, p.name, p.mr, d.name`

const deathJoin = ` FROM death_certificate dc
	JOIN patient p ON p.id = dc.patient_id
	JOIN staff_user d ON d.id = dc.doctor_id`

func scanDeath(row pgx.Row) (*DeathCertificate, error) {
	var c DeathCertificate
	err := row.Scan(&c.ID, &c.Serial, &c.PatientID, &c.DoctorID, &c.DiedAt,
		&c.Cause, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
		&c.PatientName, &c.PatientMR, &c.DoctorName)
	return &c, err
}

func (r *repoPG) CreateDeath(ctx context.Context, dc *DeathCertificate) error {
	var seq int64
	if err := r.conn(ctx).QueryRow(ctx, `SELECT nextval('death_cert_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("next death serial: %w", err)
	}
	dc.ID = uuid.New()
	dc.Serial = fmt.Sprintf("DC-%06d", seq)
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO death_certificate (id, serial, patient_id, doctor_id, died_at, cause, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		dc.ID, dc.Serial, dc.PatientID, dc.DoctorID, dc.DiedAt, dc.Cause, dc.Notes)
	return err
}

func (r *repoPG) GetDeath(ctx context.Context, id uuid.UUID) (*DeathCertificate, error) {
	return scanDeath(r.conn(ctx).QueryRow(ctx,
		`SELECT `+deathCols+deathJoin+` WHERE dc.id = $1`, id))
}

func (r *repoPG) UpdateDeath(ctx context.Context, dc *DeathCertificate) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE death_certificate
		SET patient_id=$2, doctor_id=$3, died_at=$4, cause=$5, notes=$6, updated_at=NOW()
		WHERE id = $1`,
		dc.ID, dc.PatientID, dc.DoctorID, dc.DiedAt, dc.Cause, dc.Notes)
	return err
}

func (r *repoPG) DeleteDeath(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM death_certificate WHERE id = $1`, id)
	return err
}

func (r *repoPG) SearchDeath(ctx context.Context, f Filters, limit, offset int) ([]*DeathCertificate, int, error) {
	query := `SELECT ` + deathCols + deathJoin + ` WHERE 1=1`
	countQuery := `SELECT COUNT(*)` + deathJoin + ` WHERE 1=1`
	var args []interface{}
	idx := 1

	add := func(clause string, val interface{}) {
		query += fmt.Sprintf(clause, idx)
		countQuery += fmt.Sprintf(clause, idx)
		args = append(args, val)
		idx++
	}

	if f.Search != "" {
		add(` AND (dc.serial ILIKE $%[1]d OR p.name ILIKE $%[1]d)`, "%"+f.Search+"%")
	}
	if f.From != nil {
		add(` AND dc.died_at >= $%d`, *f.From)
	}
	if f.To != nil {
		add(` AND dc.died_at < $%d`, *f.To)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY dc.created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*DeathCertificate
	for rows.Next() {
		dc, err := scanDeath(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, dc)
	}
	return items, total, nil
}
