package schedule

import (
	"sort"
	"time"

	"doseup-parent/internal/domain/dosetime"
	"doseup-parent/internal/domain/medicines"
)

// DoseRow es una toma concreta (medicina + hora) para hoy. No se persiste.
type DoseRow struct {
	MedicineID   string
	MedicineName string
	DoseTime     string
	Medicine     medicines.Medicine
}

type rankedRow struct {
	row    DoseRow
	offset int  // minutos respecto a now, solo si parsed
	parsed bool
}

// BuildDoseRows filtra por el weekday de now, expande cada hora de toma en su propia
// fila y ordena: primero las que vienen (offset >= 0) por offset ascendente, luego
// las que ya pasaron, también por offset ascendente.
//
// Horas que no parsean van al final, en el orden de entrada. Empates conservan
// el orden de entrada.
func BuildDoseRows(meds []medicines.Medicine, now time.Time) []DoseRow {
	nowMinutes := dosetime.MinutesOf(now)

	ranked := make([]rankedRow, 0)
	for _, m := range medicines.ActiveOn(meds, now.Weekday()) {
		for _, t := range m.DoseTimes {
			r := rankedRow{
				row: DoseRow{
					MedicineID:   m.ID,
					MedicineName: m.Name,
					DoseTime:     t,
					Medicine:     m,
				},
			}
			if d, err := dosetime.Parse(t); err == nil {
				r.offset = d.Minutes() - nowMinutes
				r.parsed = true
			}
			ranked = append(ranked, r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return before(ranked[i], ranked[j])
	})

	out := make([]DoseRow, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.row)
	}
	return out
}

func before(a, b rankedRow) bool {
	if a.parsed != b.parsed {
		return a.parsed
	}
	if !a.parsed {
		return false
	}

	aUpcoming, bUpcoming := a.offset >= 0, b.offset >= 0
	if aUpcoming != bUpcoming {
		return aUpcoming
	}
	return a.offset < b.offset
}

// Offset devuelve doseMinutes - nowMinutes para la fila; ok=false si la hora no parsea.
func (r DoseRow) Offset(now time.Time) (int, bool) {
	d, err := dosetime.Parse(r.DoseTime)
	if err != nil {
		return 0, false
	}
	return d.Minutes() - dosetime.MinutesOf(now), true
}
