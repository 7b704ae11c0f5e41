package parents

import (
	"strings"
	"time"
)

// Parent es el familiar que recibe el cuidado. Lo crea el panel del admin (cuidador);
// esta app solo lo lee.
type Parent struct {
	ID          string
	AdminID     string
	PhoneNumber string
	Name        string

	// IANA, opcional. Vacío => zona por defecto del servicio.
	Timezone string
}

// Ref identifica a un parent dentro de su admin: users/{adminID}/parents/{parentID}.
type Ref struct {
	AdminID  string
	ParentID string
}

func (p Parent) Ref() Ref {
	return Ref{AdminID: p.AdminID, ParentID: p.ID}
}

func (r Ref) Valid() bool {
	return strings.TrimSpace(r.AdminID) != "" && strings.TrimSpace(r.ParentID) != ""
}

// Location devuelve la zona del parent o fallback si no tiene / es inválida.
func Location(p Parent, fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.Local
	}
	tz := strings.TrimSpace(p.Timezone)
	if tz == "" {
		return fallback
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fallback
	}
	return loc
}

// DigitsOnly deja solo dígitos: "+51 999-111" => "51999111".
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// E164 antepone "+" si falta (formato que espera el proveedor de OTP).
func E164(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+" + phone
}
