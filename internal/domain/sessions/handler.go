package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"doseup-parent/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth/otp", func(ar chi.Router) {
		ar.Post("/start", startVerificationHandler(svc))
		ar.Post("/confirm", confirmVerificationHandler(svc))
	})
}

// startRequest es el cuerpo para pedir un código por SMS.
type startRequest struct {
	Phone string `json:"phone"`
}

// verificationResponse es la verificación en curso; el cliente la reenvía en el confirm.
type verificationResponse struct {
	VerificationID string    `json:"verification_id"`
	Phone          string    `json:"phone"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type confirmRequest struct {
	VerificationID string    `json:"verification_id"`
	Phone          string    `json:"phone"`
	ExpiresAt      time.Time `json:"expires_at"`
	Code           string    `json:"code"`
}

type parentResponse struct {
	ID          string `json:"id"`
	AdminID     string `json:"admin_id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Timezone    string `json:"timezone,omitempty"`
}

type sessionResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Parent    parentResponse `json:"parent"`
}

// startVerificationHandler godoc
// @Summary Iniciar login por OTP
// @Description Envía un código de verificación por SMS al teléfono indicado. Devuelve la verificación que hay que reenviar en `/auth/otp/confirm`.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body startRequest true "Teléfono del familiar (con o sin +)"
// @Success 200 {object} verificationResponse
// @Failure 400 {string} string "invalid json / phone required"
// @Failure 502 {string} string "otp provider error"
// @Router /auth/otp/start [post]
func startVerificationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.StartVerification(r.Context(), req.Phone)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "phone required", http.StatusBadRequest)
				return
			}
			http.Error(w, "otp provider error", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, verificationResponse{
			VerificationID: v.ID,
			Phone:          v.Phone,
			ExpiresAt:      v.ExpiresAt,
		})
	}
}

// confirmVerificationHandler godoc
// @Summary Confirmar login por OTP
// @Description Confirma el código recibido por SMS. Si el teléfono corresponde a un familiar dado de alta por un admin, devuelve el token de sesión (`Authorization: Bearer <token>`).
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body confirmRequest true "Verificación devuelta por /auth/otp/start más el código"
// @Success 200 {object} sessionResponse
// @Failure 400 {string} string "invalid json / missing fields"
// @Failure 401 {string} string "invalid code / verification expired"
// @Failure 404 {string} string "no parent account found for this phone number"
// @Failure 429 {string} string "too many attempts"
// @Router /auth/otp/confirm [post]
func confirmVerificationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req confirmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		s, err := svc.ConfirmVerification(r.Context(), Verification{
			ID:        req.VerificationID,
			Phone:     req.Phone,
			ExpiresAt: req.ExpiresAt,
		}, req.Code)
		switch {
		case err == nil:
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, "verification_id, phone and code required", http.StatusBadRequest)
			return
		case errors.Is(err, auth.ErrInvalidCode):
			http.Error(w, "invalid code", http.StatusUnauthorized)
			return
		case errors.Is(err, auth.ErrExpired):
			http.Error(w, "verification expired", http.StatusUnauthorized)
			return
		case errors.Is(err, auth.ErrTooManyAttempts):
			http.Error(w, "too many attempts", http.StatusTooManyRequests)
			return
		case errors.Is(err, ErrNoParent):
			http.Error(w, ErrNoParent.Error(), http.StatusNotFound)
			return
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, sessionResponse{
			Token:     s.Token,
			ExpiresAt: s.ExpiresAt,
			Parent: parentResponse{
				ID:          s.Parent.ID,
				AdminID:     s.Parent.AdminID,
				Name:        s.Parent.Name,
				PhoneNumber: s.Parent.PhoneNumber,
				Timezone:    s.Parent.Timezone,
			},
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
