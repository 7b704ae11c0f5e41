package local

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"doseup-parent/internal/domain/medicines"
	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/domain/reminders"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Notifier {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "reminders.db"))
	require.NoError(t, err)
	return New(db, parents.Ref{AdminID: "a-1", ParentID: "p-1"})
}

func TestNotifier_ReconcileAndList(t *testing.T) {
	n := openTestDB(t)
	ctx := context.Background()
	rec := reminders.NewReconciler(n, nil)

	meds := []medicines.Medicine{{ID: "m", Name: "Aspirin", DoseTimes: []string{"08:00", "20:30"}}}
	res, err := rec.Sync(ctx, meds)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Scheduled)

	regs, err := n.List(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 2)

	res, err = rec.Sync(ctx, meds)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Kept)

	// otro parent sobre la misma base no ve nada
	other := New(n.db, parents.Ref{AdminID: "a-1", ParentID: "p-2"})
	regs, err = other.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, regs)

	require.NoError(t, n.CancelAll(ctx))
	regs, err = n.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, regs)
}

func TestNotifier_DueFiresOncePerDay(t *testing.T) {
	n := openTestDB(t)
	ctx := context.Background()

	_, err := n.Schedule(ctx, reminders.Reminder{MedicineID: "m", MedicineName: "A", DoseTime: "08:00", Hour: 8})
	require.NoError(t, err)
	_, err = n.Schedule(ctx, reminders.Reminder{MedicineID: "m", MedicineName: "A", DoseTime: "20:30", Hour: 20, Minute: 30})
	require.NoError(t, err)

	day := func(d, h, m int) time.Time { return time.Date(2026, 3, d, h, m, 0, 0, time.UTC) }

	due, err := n.Due(ctx, day(10, 7, 59))
	require.NoError(t, err)
	assert.Empty(t, due)

	due, err = n.Due(ctx, day(10, 8, 0))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "08:00", due[0].Reminder.DoseTime)

	due, err = n.Due(ctx, day(10, 9, 0))
	require.NoError(t, err)
	assert.Empty(t, due)

	due, err = n.Due(ctx, day(10, 21, 0))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "20:30", due[0].Reminder.DoseTime)

	// al día siguiente vuelve a disparar
	due, err = n.Due(ctx, day(11, 8, 5))
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(" ")
	assert.Error(t, err)
}
