package medicines

import (
	"sort"
	"time"

	"doseup-parent/internal/domain/dosetime"
)

type NextDose struct {
	DoseTime string
	Today    bool // false => es la primera toma de mañana
}

// NextDoseOf es la primera hora estrictamente posterior a now; si ya pasaron
// todas, la primera del día (mañana). ok=false si no hay horas válidas.
func NextDoseOf(m Medicine, now time.Time) (NextDose, bool) {
	times := make([]dosetime.DoseTime, 0, len(m.DoseTimes))
	for _, s := range m.DoseTimes {
		if d, err := dosetime.Parse(s); err == nil {
			times = append(times, d)
		}
	}
	if len(times) == 0 {
		return NextDose{}, false
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Minutes() < times[j].Minutes() })

	nowMinutes := dosetime.MinutesOf(now)
	for _, d := range times {
		if d.Minutes() > nowMinutes {
			return NextDose{DoseTime: d.String(), Today: true}, true
		}
	}
	return NextDose{DoseTime: times[0].String(), Today: false}, true
}
