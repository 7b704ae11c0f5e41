package otp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"doseup-parent/internal/platform/httpclient"
	"doseup-parent/internal/ports/auth"
)

var ErrGatewayUpstream = errors.New("otp gateway upstream error")

// GatewayProvider delega envío y chequeo del código en un servicio de verificación por SMS.
//
//	POST /v1/verifications            {"phone"}          => {"id","expires_at"}
//	POST /v1/verifications/{id}/check {"phone","code"}   => {"status":"approved"|"pending"}
type GatewayProvider struct {
	client *httpclient.Client
}

func NewGatewayProvider(c *httpclient.Client) *GatewayProvider {
	return &GatewayProvider{client: c}
}

type startRequest struct {
	Phone   string `json:"phone"`
	Channel string `json:"channel"`
}

type startResponse struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type checkRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type checkResponse struct {
	Status string `json:"status"`
}

func (p *GatewayProvider) Start(ctx context.Context, phone string) (auth.Challenge, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return auth.Challenge{}, errors.New("otp: phone required")
	}

	var out startResponse
	if err := p.client.DoJSON(ctx, http.MethodPost, "/v1/verifications", startRequest{Phone: phone, Channel: "sms"}, &out); err != nil {
		return auth.Challenge{}, fmt.Errorf("%w: %v", ErrGatewayUpstream, err)
	}
	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return auth.Challenge{}, fmt.Errorf("%w: response missing id", ErrGatewayUpstream)
	}

	return auth.Challenge{ID: out.ID, Phone: phone, ExpiresAt: out.ExpiresAt}, nil
}

func (p *GatewayProvider) Confirm(ctx context.Context, ch auth.Challenge, code string) error {
	if strings.TrimSpace(ch.ID) == "" {
		return auth.ErrInvalidCode
	}

	path := "/v1/verifications/" + url.PathEscape(ch.ID) + "/check"
	var out checkResponse
	err := p.client.DoJSON(ctx, http.MethodPost, path, checkRequest{Phone: ch.Phone, Code: strings.TrimSpace(code)}, &out)
	switch httpclient.StatusOf(err) {
	case 0:
		if err != nil {
			return fmt.Errorf("%w: %v", ErrGatewayUpstream, err)
		}
	case http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity:
		return auth.ErrInvalidCode
	case http.StatusGone:
		return auth.ErrExpired
	case http.StatusTooManyRequests:
		return auth.ErrTooManyAttempts
	default:
		return fmt.Errorf("%w: %v", ErrGatewayUpstream, err)
	}

	if !strings.EqualFold(out.Status, "approved") {
		return auth.ErrInvalidCode
	}
	return nil
}
