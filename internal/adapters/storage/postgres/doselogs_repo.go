package postgres

import (
	"context"
	"database/sql"

	"doseup-parent/internal/domain/doselogs"
	"doseup-parent/internal/domain/parents"
)

type DoseLogsRepo struct {
	db *sql.DB
}

func NewDoseLogsRepo(db *sql.DB) *DoseLogsRepo {
	return &DoseLogsRepo{db: db}
}

func (r *DoseLogsRepo) Append(ctx context.Context, l doselogs.DoseLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dose_logs (
			id, admin_id, parent_id,
			medicine_id, dose_time, date,
			taken_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		l.ID,
		l.AdminID,
		l.ParentID,
		l.MedicineID,
		l.DoseTime,
		l.Date,
		l.TakenAt,
	)
	if isUniqueViolation(err) {
		return doselogs.ErrAlreadyTaken
	}
	return err
}

func (r *DoseLogsRepo) ListByDate(ctx context.Context, ref parents.Ref, date string) ([]doselogs.DoseLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, admin_id, parent_id,
			medicine_id, dose_time, date,
			taken_at
		FROM dose_logs
		WHERE admin_id = $1 AND parent_id = $2 AND date = $3
		ORDER BY taken_at ASC
	`, ref.AdminID, ref.ParentID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doselogs.DoseLog, 0)
	for rows.Next() {
		var l doselogs.DoseLog
		if err := rows.Scan(
			&l.ID,
			&l.AdminID,
			&l.ParentID,
			&l.MedicineID,
			&l.DoseTime,
			&l.Date,
			&l.TakenAt,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
