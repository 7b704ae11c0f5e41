package sessions

import (
	"time"

	"doseup-parent/internal/domain/parents"
)

// Verification es un login por OTP en curso. El cliente la guarda y la devuelve en el confirm.
type Verification struct {
	ID        string
	Phone     string
	ExpiresAt time.Time
}

// Session es el resultado de un login: token + parent resuelto por teléfono.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Parent    parents.Parent
}
