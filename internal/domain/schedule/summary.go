package schedule

import (
	"time"

	"doseup-parent/internal/domain/dosetime"
)

type Entry struct {
	DoseRow

	Taken    bool
	Upcoming bool // offset >= 0 respecto a now
	Display  string
}

type Progress struct {
	Taken      int
	Total      int
	Percentage float64
}

type Schedule struct {
	Date     string
	Entries  []Entry
	Progress Progress

	// Next es la primera fila que viene y no está tomada.
	Next *Entry
}

// TakenFunc responde si (medicineID, doseTime) ya tiene registro en el día del Schedule.
type TakenFunc func(medicineID, doseTime string) bool

// Summarize anota las filas (ya ordenadas) con tomado/pendiente y calcula el progreso.
func Summarize(rows []DoseRow, now time.Time, taken TakenFunc) Schedule {
	s := Schedule{
		Date:    dosetime.DateKey(now),
		Entries: make([]Entry, 0, len(rows)),
	}

	for _, r := range rows {
		e := Entry{
			DoseRow: r,
			Display: dosetime.Display(r.DoseTime),
		}
		if taken != nil {
			e.Taken = taken(r.MedicineID, r.DoseTime)
		}
		if off, ok := r.Offset(now); ok {
			e.Upcoming = off >= 0
		}
		if e.Taken {
			s.Progress.Taken++
		}
		s.Entries = append(s.Entries, e)
	}

	s.Progress.Total = len(s.Entries)
	if s.Progress.Total > 0 {
		s.Progress.Percentage = float64(s.Progress.Taken) / float64(s.Progress.Total) * 100
	}

	for i := range s.Entries {
		if s.Entries[i].Upcoming && !s.Entries[i].Taken {
			s.Next = &s.Entries[i]
			break
		}
	}
	return s
}
