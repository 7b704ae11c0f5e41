package postgres

import (
	"context"
	"database/sql"
	"errors"

	"doseup-parent/internal/domain/parents"
)

type ParentsRepo struct {
	db *sql.DB
}

func NewParentsRepo(db *sql.DB) *ParentsRepo {
	return &ParentsRepo{db: db}
}

const parentColumns = `admin_id, id, phone_number, name, timezone`

func (r *ParentsRepo) Create(ctx context.Context, p parents.Parent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO parents (`+parentColumns+`)
		VALUES ($1,$2,$3,$4,$5)
	`,
		p.AdminID,
		p.ID,
		p.PhoneNumber,
		p.Name,
		p.Timezone,
	)
	return err
}

func (r *ParentsRepo) GetByRef(ctx context.Context, ref parents.Ref) (parents.Parent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+parentColumns+`
		FROM parents
		WHERE admin_id = $1 AND id = $2
	`, ref.AdminID, ref.ParentID)
	return scanParent(row)
}

func (r *ParentsRepo) FindByPhone(ctx context.Context, phone string) (parents.Parent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+parentColumns+`
		FROM parents
		WHERE phone_number = $1
		ORDER BY created_at ASC
		LIMIT 1
	`, phone)
	return scanParent(row)
}

func (r *ParentsRepo) ListAll(ctx context.Context) ([]parents.Parent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+parentColumns+`
		FROM parents
		ORDER BY admin_id, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]parents.Parent, 0)
	for rows.Next() {
		p, err := scanParent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParent(s rowScanner) (parents.Parent, error) {
	var p parents.Parent
	if err := s.Scan(
		&p.AdminID,
		&p.ID,
		&p.PhoneNumber,
		&p.Name,
		&p.Timezone,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return parents.Parent{}, parents.ErrNotFound
		}
		return parents.Parent{}, err
	}
	return p, nil
}
