package registry

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

const patientCols = `id, mr, name, phone, gender, birth_date, cnic, address, photo_url,
	created_at, updated_at`

func (r *repoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.MR, &p.Name, &p.Phone, &p.Gender, &p.BirthDate,
		&p.CNIC, &p.Address, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()

	var seq int64
	if err := r.conn(ctx).QueryRow(ctx, `SELECT nextval('patient_mr_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("next mr number: %w", err)
	}
	p.MR = fmt.Sprintf("MR-%06d", seq)

	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, mr, name, phone, gender, birth_date, cnic, address, photo_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.MR, p.Name, p.Phone, p.Gender, p.BirthDate, p.CNIC, p.Address, p.PhotoURL)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) GetByMR(ctx context.Context, mr string) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE mr = $1`, mr))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET name=$2, phone=$3, gender=$4, birth_date=$5, cnic=$6,
			address=$7, photo_url=$8, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Phone, p.Gender, p.BirthDate, p.CNIC, p.Address, p.PhotoURL)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *repoPG) Search(ctx context.Context, f Filters, limit, offset int) ([]*Patient, int, error) {
	query := `SELECT ` + patientCols + ` FROM patient WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM patient WHERE 1=1`
	var args []interface{}
	idx := 1

	add := func(clause string, val interface{}) {
		query += fmt.Sprintf(clause, idx)
		countQuery += fmt.Sprintf(clause, idx)
		args = append(args, val)
		idx++
	}

	if f.Search != "" {
		add(` AND name ILIKE $%d`, "%"+f.Search+"%")
	}
	if f.MR != "" {
		add(` AND mr = $%d`, f.MR)
	}
	if f.Phone != "" {
		add(` AND phone = $%d`, f.Phone)
	}
	if f.CNIC != "" {
		add(` AND cnic = $%d`, f.CNIC)
	}
	if f.From != nil {
		add(` AND created_at >= $%d`, *f.From)
	}
	if f.To != nil {
		add(` AND created_at < $%d`, *f.To)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}
