package medicines

import (
	"slices"
	"time"
)

// IsActiveOn decide si una medicina con esta frecuencia corresponde al weekday dado.
// - nil => true
// - daily => true
// - weekly/custom => true solo si Days contiene el weekday (Days vacío => false)
// - cualquier otro tipo => false
func IsActiveOn(freq *Frequency, weekday time.Weekday) bool {
	if freq == nil {
		return true
	}

	switch freq.Type {
	case FrequencyDaily:
		return true
	case FrequencyWeekly, FrequencyCustom:
		return slices.Contains(freq.Days, int(weekday))
	default:
		return false
	}
}

// ActiveOn filtra las medicinas activas en el weekday dado, preservando el orden.
func ActiveOn(meds []Medicine, weekday time.Weekday) []Medicine {
	out := make([]Medicine, 0, len(meds))
	for _, m := range meds {
		if IsActiveOn(m.Frequency, weekday) {
			out = append(out, m)
		}
	}
	return out
}
