package auth

import "time"

// Claims representa la información extraída del token de sesión.
type Claims struct {
	ParentID string
	AdminID  string
	Phone    string
}

// Challenge es una verificación OTP en curso. Se le devuelve al cliente y vuelve
// en el confirm; el servidor no guarda estado.
type Challenge struct {
	ID        string
	Phone     string
	ExpiresAt time.Time
}
