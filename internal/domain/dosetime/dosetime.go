// Package dosetime maneja las horas de toma "HH:MM" (24h, hora local, sin zona)
// y las claves de día "yyyy-MM-dd".
package dosetime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDoseTime = errors.New("invalid dose time")

const DateLayout = "2006-01-02"

type DoseTime struct {
	Hour   int
	Minute int
}

// Parse acepta "H:MM" o "HH:MM". Cualquier otra cosa => ErrInvalidDoseTime.
func Parse(s string) (DoseTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return DoseTime{}, fmt.Errorf("%w: %q", ErrInvalidDoseTime, s)
	}

	h, err := atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return DoseTime{}, fmt.Errorf("%w: %q", ErrInvalidDoseTime, s)
	}
	m, err := atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || m < 0 || m > 59 {
		return DoseTime{}, fmt.Errorf("%w: %q", ErrInvalidDoseTime, s)
	}
	return DoseTime{Hour: h, Minute: m}, nil
}

func atoi(s string) (int, error) {
	if s == "" || len(s) > 2 {
		return 0, ErrInvalidDoseTime
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidDoseTime
		}
	}
	return strconv.Atoi(s)
}

// Minutes desde medianoche.
func (d DoseTime) Minutes() int {
	return d.Hour*60 + d.Minute
}

// String en forma canónica "08:00".
func (d DoseTime) String() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

// Display en 12h: "8:00 AM", "12:30 PM".
func (d DoseTime) Display() string {
	period := "AM"
	if d.Hour >= 12 {
		period = "PM"
	}
	h := d.Hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, d.Minute, period)
}

// Display formatea s en 12h; si no parsea lo devuelve tal cual.
func Display(s string) string {
	d, err := Parse(s)
	if err != nil {
		return s
	}
	return d.Display()
}

// MinutesOf devuelve los minutos desde medianoche de t.
func MinutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DateKey es el día calendario local de t: "2026-03-10".
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey valida una clave "yyyy-MM-dd".
func ParseDateKey(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// On devuelve el instante de d en el día calendario de day (zona de day).
func (d DoseTime) On(day time.Time) time.Time {
	y, m, dd := day.Date()
	return time.Date(y, m, dd, d.Hour, d.Minute, 0, 0, day.Location())
}

// NextTrigger es el próximo instante para s: hoy si todavía no pasó, si no mañana.
// Exactamente "ahora" cuenta como pasado.
func NextTrigger(s string, now time.Time) (time.Time, error) {
	d, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	trigger := d.On(now)
	if !trigger.After(now) {
		trigger = d.On(now.AddDate(0, 0, 1))
	}
	return trigger, nil
}
