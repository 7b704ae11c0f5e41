package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"doseup-parent/internal/domain/medicines"
	"doseup-parent/internal/domain/parents"
)

type MedicinesRepo struct {
	db *sql.DB
}

func NewMedicinesRepo(db *sql.DB) *MedicinesRepo {
	return &MedicinesRepo{db: db}
}

const medicineColumns = `admin_id, parent_id, id, name, dosage, notes, dose_times, frequency, last_taken_at, reminder_interval`

func (r *MedicinesRepo) ListByParent(ctx context.Context, ref parents.Ref) ([]medicines.Medicine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE admin_id = $1 AND parent_id = $2
		ORDER BY name ASC, id ASC
	`, ref.AdminID, ref.ParentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicines.Medicine, 0)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicinesRepo) GetByID(ctx context.Context, ref parents.Ref, id string) (medicines.Medicine, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE admin_id = $1 AND parent_id = $2 AND id = $3
	`, ref.AdminID, ref.ParentID, id)

	m, err := scanMedicine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return medicines.Medicine{}, medicines.ErrNotFound
	}
	return m, err
}

func (r *MedicinesRepo) Upsert(ctx context.Context, m medicines.Medicine) error {
	doseTimes, freq, err := encodeSchedule(m)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medicines (`+medicineColumns+`, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, now())
		ON CONFLICT (admin_id, parent_id, id) DO UPDATE SET
			name = EXCLUDED.name,
			dosage = EXCLUDED.dosage,
			notes = EXCLUDED.notes,
			dose_times = EXCLUDED.dose_times,
			frequency = EXCLUDED.frequency,
			last_taken_at = EXCLUDED.last_taken_at,
			reminder_interval = EXCLUDED.reminder_interval,
			updated_at = now()
	`,
		m.AdminID,
		m.ParentID,
		m.ID,
		m.Name,
		m.Dosage,
		m.Notes,
		doseTimes,
		freq,
		m.LastTakenAt,
		m.ReminderInterval,
	)
	return err
}

func scanMedicine(s rowScanner) (medicines.Medicine, error) {
	var m medicines.Medicine
	var doseTimes, freq []byte
	if err := s.Scan(
		&m.AdminID,
		&m.ParentID,
		&m.ID,
		&m.Name,
		&m.Dosage,
		&m.Notes,
		&doseTimes,
		&freq,
		&m.LastTakenAt,
		&m.ReminderInterval,
	); err != nil {
		return medicines.Medicine{}, err
	}

	dt, f, err := decodeSchedule(doseTimes, freq)
	if err != nil {
		return medicines.Medicine{}, fmt.Errorf("medicine %s: %w", m.ID, err)
	}
	m.DoseTimes, m.Frequency = dt, f
	return m, nil
}

// dose_times y frequency son JSONB. frequency NULL => sin frecuencia (todos los días).
func encodeSchedule(m medicines.Medicine) (doseTimes []byte, freq []byte, err error) {
	dt := m.DoseTimes
	if dt == nil {
		dt = []string{}
	}
	doseTimes, err = json.Marshal(dt)
	if err != nil {
		return nil, nil, err
	}
	if m.Frequency != nil {
		freq, err = json.Marshal(m.Frequency)
		if err != nil {
			return nil, nil, err
		}
	}
	return doseTimes, freq, nil
}

func decodeSchedule(doseTimes, freq []byte) ([]string, *medicines.Frequency, error) {
	out := []string{}
	if len(doseTimes) > 0 {
		if err := json.Unmarshal(doseTimes, &out); err != nil {
			return nil, nil, fmt.Errorf("dose_times: %w", err)
		}
	}
	if len(freq) == 0 || string(freq) == "null" {
		return out, nil, nil
	}
	var f medicines.Frequency
	if err := json.Unmarshal(freq, &f); err != nil {
		return nil, nil, fmt.Errorf("frequency: %w", err)
	}
	return out, &f, nil
}
