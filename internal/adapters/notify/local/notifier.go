package local

import (
	"context"
	"errors"
	"fmt"
	"time"

	"doseup-parent/internal/domain/dosetime"
	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/domain/reminders"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier es la vista de un parent sobre la tabla compartida.
type Notifier struct {
	db  *gorm.DB
	ref parents.Ref
}

func New(db *gorm.DB, ref parents.Ref) *Notifier {
	return &Notifier{db: db, ref: ref}
}

func Factory(db *gorm.DB) reminders.NotifierFactory {
	return func(ref parents.Ref) (reminders.Notifier, error) {
		if !ref.Valid() {
			return nil, errors.New("local notifier: invalid parent ref")
		}
		return New(db, ref), nil
	}
}

func (n *Notifier) scoped(ctx context.Context) *gorm.DB {
	return n.db.WithContext(ctx).Where("admin_id = ? AND parent_id = ?", n.ref.AdminID, n.ref.ParentID)
}

func (n *Notifier) List(ctx context.Context) ([]reminders.Registration, error) {
	var rows []registration
	if err := n.scoped(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("local notifier: list: %w", err)
	}
	out := make([]reminders.Registration, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRegistration(r))
	}
	return out, nil
}

func (n *Notifier) Schedule(ctx context.Context, r reminders.Reminder) (string, error) {
	row := registration{
		ID:           uuid.NewString(),
		AdminID:      n.ref.AdminID,
		ParentID:     n.ref.ParentID,
		MedicineID:   r.MedicineID,
		MedicineName: r.MedicineName,
		Dosage:       r.Dosage,
		DoseTime:     r.DoseTime,
		Hour:         r.Hour,
		Minute:       r.Minute,
	}
	if err := n.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("local notifier: schedule: %w", err)
	}
	return row.ID, nil
}

func (n *Notifier) Cancel(ctx context.Context, id string) error {
	if err := n.scoped(ctx).Where("id = ?", id).Delete(&registration{}).Error; err != nil {
		return fmt.Errorf("local notifier: cancel: %w", err)
	}
	return nil
}

func (n *Notifier) CancelAll(ctx context.Context) error {
	if err := n.scoped(ctx).Delete(&registration{}).Error; err != nil {
		return fmt.Errorf("local notifier: cancel all: %w", err)
	}
	return nil
}

// Due devuelve los recordatorios cuya hora ya llegó hoy (hora local de now) y que
// todavía no se dispararon hoy, y los marca como disparados.
func (n *Notifier) Due(ctx context.Context, now time.Time) ([]reminders.Registration, error) {
	today := dosetime.DateKey(now)
	nowMinutes := dosetime.MinutesOf(now)

	var due []reminders.Registration
	err := n.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []registration
		if err := tx.
			Where("admin_id = ? AND parent_id = ?", n.ref.AdminID, n.ref.ParentID).
			Where("last_fired_on <> ?", today).
			Where("hour * 60 + minute <= ?", nowMinutes).
			Order("hour ASC, minute ASC, id ASC").
			Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		ids := make([]string, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.ID)
			due = append(due, toRegistration(r))
		}
		return tx.Model(&registration{}).Where("id IN ?", ids).Update("last_fired_on", today).Error
	})
	if err != nil {
		return nil, fmt.Errorf("local notifier: due: %w", err)
	}
	return due, nil
}

func toRegistration(r registration) reminders.Registration {
	return reminders.Registration{
		ID: r.ID,
		Reminder: reminders.Reminder{
			MedicineID:   r.MedicineID,
			MedicineName: r.MedicineName,
			Dosage:       r.Dosage,
			DoseTime:     r.DoseTime,
			Hour:         r.Hour,
			Minute:       r.Minute,
		},
	}
}
