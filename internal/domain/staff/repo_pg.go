package staff

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

const userCols = `id, name, email, phone, role, active, password_hash,
	specialization, opd, ipd, consult_fee, created_at, updated_at`

func (r *repoPG) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Active,
		&u.PasswordHash, &u.Specialization, &u.OPD, &u.IPD, &u.ConsultFee,
		&u.CreatedAt, &u.UpdatedAt)
	return &u, err
}

func (r *repoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO staff_user (id, name, email, phone, role, active, password_hash,
			specialization, opd, ipd, consult_fee)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		u.ID, u.Name, u.Email, u.Phone, u.Role, u.Active, u.PasswordHash,
		u.Specialization, u.OPD, u.IPD, u.ConsultFee)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.scanUser(r.conn(ctx).QueryRow(ctx, `SELECT `+userCols+` FROM staff_user WHERE id = $1`, id))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.conn(ctx).QueryRow(ctx, `SELECT `+userCols+` FROM staff_user WHERE email = $1`, email))
}

func (r *repoPG) Update(ctx context.Context, u *User) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE staff_user SET name=$2, email=$3, phone=$4, role=$5, active=$6,
			specialization=$7, opd=$8, ipd=$9, consult_fee=$10, updated_at=NOW()
		WHERE id = $1`,
		u.ID, u.Name, u.Email, u.Phone, u.Role, u.Active,
		u.Specialization, u.OPD, u.IPD, u.ConsultFee)
	return err
}

func (r *repoPG) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE staff_user SET password_hash=$2, updated_at=NOW() WHERE id = $1`, id, hash)
	return err
}

func (r *repoPG) Search(ctx context.Context, f Filters, limit, offset int) ([]*User, int, error) {
	query := `SELECT ` + userCols + ` FROM staff_user WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM staff_user WHERE 1=1`
	var args []interface{}
	idx := 1

	add := func(clause string, val interface{}) {
		query += fmt.Sprintf(clause, idx)
		countQuery += fmt.Sprintf(clause, idx)
		args = append(args, val)
		idx++
	}

	if f.Role != "" {
		add(` AND role = $%d`, f.Role)
	}
	if f.Search != "" {
		add(` AND name ILIKE $%d`, "%"+f.Search+"%")
	}
	if f.Active != nil {
		add(` AND active = $%d`, *f.Active)
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
	var items []*User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	return items, total, nil
}
