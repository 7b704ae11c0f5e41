package reminders

import (
	"fmt"
	"strings"

	"doseup-parent/internal/domain/dosetime"
	"doseup-parent/internal/domain/medicines"
)

// Channel es el canal de notificaciones (Android) que usan los recordatorios.
const Channel = "medicine-reminders"

// Reminder es una notificación local diaria y repetida para una toma.
// Es comparable: dos Reminder iguales son el mismo recordatorio.
type Reminder struct {
	MedicineID   string
	MedicineName string
	Dosage       string
	DoseTime     string
	Hour         int
	Minute       int
}

// Registration es un Reminder ya registrado en el notificador.
type Registration struct {
	ID       string
	Reminder Reminder
}

func (r Reminder) Title() string {
	return "💊 Medicine Reminder"
}

func (r Reminder) Body() string {
	if d := strings.TrimSpace(r.Dosage); d != "" {
		return fmt.Sprintf("Time to take %s (%s)", r.MedicineName, d)
	}
	return fmt.Sprintf("Time to take %s", r.MedicineName)
}

// Data viaja en la notificación para que el tap abra el detalle de esa toma.
func (r Reminder) Data() map[string]string {
	return map[string]string{
		"medicineId": r.MedicineID,
		"doseTime":   r.DoseTime,
	}
}

// slotError es una toma que no se pudo convertir en recordatorio.
type slotError struct {
	MedicineID string
	DoseTime   string
	Err        error
}

// desired arma el set de recordatorios: todas las medicinas × todas sus horas,
// sin filtrar por frecuencia. Horas repetidas en una medicina colapsan en uno.
func desired(meds []medicines.Medicine) ([]Reminder, []slotError) {
	seen := map[Reminder]struct{}{}
	out := make([]Reminder, 0)
	var bad []slotError

	for _, m := range meds {
		for _, t := range m.DoseTimes {
			d, err := dosetime.Parse(t)
			if err != nil {
				bad = append(bad, slotError{MedicineID: m.ID, DoseTime: t, Err: err})
				continue
			}
			r := Reminder{
				MedicineID:   m.ID,
				MedicineName: m.Name,
				Dosage:       m.Dosage,
				DoseTime:     t,
				Hour:         d.Hour,
				Minute:       d.Minute,
			}
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	return out, bad
}
