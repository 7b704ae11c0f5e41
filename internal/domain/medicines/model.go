package medicines

import (
	"strings"
	"time"
)

// FrequencyType define en qué días está activa una medicina.
// @Enum daily, weekly, custom
type FrequencyType string

const (
	FrequencyDaily  FrequencyType = "daily"
	FrequencyWeekly FrequencyType = "weekly"
	FrequencyCustom FrequencyType = "custom"
)

// Frequency: para weekly/custom, Days son índices de weekday (0=domingo..6=sábado).
type Frequency struct {
	Type FrequencyType `json:"type"`
	Days []int         `json:"days,omitempty"`
}

// Medicine es un medicamento recetado a un parent.
type Medicine struct {
	ID       string
	AdminID  string
	ParentID string

	Name   string
	Dosage string // "500 mg", opcional
	Notes  string // texto libre (markdown), opcional

	// "HH:MM" 24h, hora local del dispositivo, sin zona.
	DoseTimes []string

	// nil => activa todos los días (compatibilidad con registros viejos).
	Frequency *Frequency

	// ISO-8601. Tracking legacy de una sola toma por día.
	LastTakenAt string

	ReminderInterval int
}

// TakenOnLegacy responde si LastTakenAt cae en el mismo día calendario que day
// (en la zona de day). Registros con LastTakenAt inválido cuentan como no tomados.
func (m Medicine) TakenOnLegacy(day time.Time) bool {
	s := strings.TrimSpace(m.LastTakenAt)
	if s == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return false
	}
	t = t.In(day.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
