package medicines

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"sort"
)

type hashEntry struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage"`
	DoseTimes []string   `json:"dose_times"`
	Frequency *Frequency `json:"frequency"`
}

// Hash resume lo que afecta a recordatorios y agenda. Dos listas con el mismo
// contenido en distinto orden dan el mismo hash.
func Hash(meds []Medicine) string {
	entries := make([]hashEntry, 0, len(meds))
	for _, m := range meds {
		times := slices.Clone(m.DoseTimes)
		sort.Strings(times)

		var freq *Frequency
		if m.Frequency != nil {
			days := slices.Clone(m.Frequency.Days)
			sort.Ints(days)
			freq = &Frequency{Type: m.Frequency.Type, Days: days}
		}

		entries = append(entries, hashEntry{
			ID:        m.ID,
			Name:      m.Name,
			Dosage:    m.Dosage,
			DoseTimes: times,
			Frequency: freq,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	b, _ := json.Marshal(entries)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
