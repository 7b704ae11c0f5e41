package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"doseup-parent/internal/domain/doselogs"
	"doseup-parent/internal/domain/medicines"
	"doseup-parent/internal/domain/parents"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var ref = parents.Ref{AdminID: "adm-1", ParentID: "par-1"}

func TestParentsRepo_FindByPhone(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`(?s)SELECT\s+admin_id, id, phone_number, name, timezone\s+FROM parents\s+WHERE phone_number = \$1`).
		WithArgs("+51999111222").
		WillReturnRows(sqlmock.NewRows([]string{"admin_id", "id", "phone_number", "name", "timezone"}).
			AddRow("adm-1", "par-1", "+51999111222", "Rosa", "America/Lima"))

	p, err := NewParentsRepo(db).FindByPhone(context.Background(), "+51999111222")
	require.NoError(t, err)
	assert.Equal(t, "Rosa", p.Name)
	assert.Equal(t, ref, p.Ref())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParentsRepo_GetByRef_NotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`(?s)FROM parents\s+WHERE admin_id = \$1 AND id = \$2`).
		WithArgs("adm-1", "par-1").
		WillReturnError(sql.ErrNoRows)

	_, err := NewParentsRepo(db).GetByRef(context.Background(), ref)
	assert.ErrorIs(t, err, parents.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicinesRepo_GetByID_DecodesJSONB(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`(?s)FROM medicines\s+WHERE admin_id = \$1 AND parent_id = \$2 AND id = \$3`).
		WithArgs("adm-1", "par-1", "med-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"admin_id", "parent_id", "id", "name", "dosage", "notes",
			"dose_times", "frequency", "last_taken_at", "reminder_interval",
		}).AddRow(
			"adm-1", "par-1", "med-1", "Aspirin", "100mg", "",
			[]byte(`["08:00","20:00"]`), []byte(`{"type":"weekly","days":[1,3]}`), "", 0,
		))

	m, err := NewMedicinesRepo(db).GetByID(context.Background(), ref, "med-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "20:00"}, m.DoseTimes)
	require.NotNil(t, m.Frequency)
	assert.Equal(t, medicines.FrequencyWeekly, m.Frequency.Type)
	assert.Equal(t, []int{1, 3}, m.Frequency.Days)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicinesRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`FROM medicines`).WillReturnError(sql.ErrNoRows)

	_, err := NewMedicinesRepo(db).GetByID(context.Background(), ref, "ghost")
	assert.ErrorIs(t, err, medicines.ErrNotFound)
}

func TestMedicinesRepo_UpsertSendsJSONB(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`(?s)INSERT INTO medicines .*ON CONFLICT \(admin_id, parent_id, id\) DO UPDATE`).
		WithArgs("adm-1", "par-1", "med-1", "Aspirin", "100mg", "",
			[]byte(`["08:00"]`), sqlmock.AnyArg(), "", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewMedicinesRepo(db).Upsert(context.Background(), medicines.Medicine{
		AdminID: "adm-1", ParentID: "par-1", ID: "med-1",
		Name: "Aspirin", Dosage: "100mg", DoseTimes: []string{"08:00"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoseLogsRepo_AppendUniqueViolation(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO dose_logs`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := NewDoseLogsRepo(db).Append(context.Background(), doselogs.DoseLog{
		ID: "l-1", AdminID: "adm-1", ParentID: "par-1",
		MedicineID: "med-1", DoseTime: "08:00", Date: "2026-10-14",
	})
	assert.ErrorIs(t, err, doselogs.ErrAlreadyTaken)
}

func TestDoseLogsRepo_AppendOtherError(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO dose_logs`).WillReturnError(errors.New("db down"))

	err := NewDoseLogsRepo(db).Append(context.Background(), doselogs.DoseLog{ID: "l-1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, doselogs.ErrAlreadyTaken)
}

func TestDoseLogsRepo_ListByDate(t *testing.T) {
	db, mock := newMock(t)
	takenAt := time.Date(2026, 10, 14, 8, 3, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)FROM dose_logs\s+WHERE admin_id = \$1 AND parent_id = \$2 AND date = \$3`).
		WithArgs("adm-1", "par-1", "2026-10-14").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "admin_id", "parent_id", "medicine_id", "dose_time", "date", "taken_at",
		}).AddRow("l-1", "adm-1", "par-1", "med-1", "08:00", "2026-10-14", takenAt))

	logs, err := NewDoseLogsRepo(db).ListByDate(context.Background(), ref, "2026-10-14")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "08:00", logs[0].DoseTime)
	assert.True(t, takenAt.Equal(logs[0].TakenAt))
	require.NoError(t, mock.ExpectationsWereMet())
}
