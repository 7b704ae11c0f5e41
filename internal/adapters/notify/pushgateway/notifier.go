package pushgateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/domain/reminders"
	"doseup-parent/internal/platform/httpclient"
)

var ErrUpstream = errors.New("push gateway upstream error")

// Notifier registra los recordatorios como notificaciones locales repetidas
// en el dispositivo del parent, a través del push gateway:
//
//	GET    /v1/devices/{adminID}/{parentID}/reminders
//	POST   /v1/devices/{adminID}/{parentID}/reminders
//	DELETE /v1/devices/{adminID}/{parentID}/reminders/{id}
//	DELETE /v1/devices/{adminID}/{parentID}/reminders
type Notifier struct {
	client *httpclient.Client
	base   string
}

func New(c *httpclient.Client, ref parents.Ref) *Notifier {
	return &Notifier{
		client: c,
		base:   "/v1/devices/" + url.PathEscape(ref.AdminID) + "/" + url.PathEscape(ref.ParentID) + "/reminders",
	}
}

// Factory comparte el cliente HTTP entre todos los parents.
func Factory(c *httpclient.Client) reminders.NotifierFactory {
	return func(ref parents.Ref) (reminders.Notifier, error) {
		if !ref.Valid() {
			return nil, errors.New("pushgateway: invalid parent ref")
		}
		return New(c, ref), nil
	}
}

// wireReminder es el payload que entiende el gateway.
type wireReminder struct {
	ID           string            `json:"id,omitempty"`
	MedicineID   string            `json:"medicine_id"`
	MedicineName string            `json:"medicine_name"`
	Dosage       string            `json:"dosage,omitempty"`
	DoseTime     string            `json:"dose_time"`
	Hour         int               `json:"hour"`
	Minute       int               `json:"minute"`
	Title        string            `json:"title,omitempty"`
	Body         string            `json:"body,omitempty"`
	Channel      string            `json:"channel,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
	Repeats      bool              `json:"repeats"`
}

type createResponse struct {
	ID string `json:"id"`
}

func (n *Notifier) List(ctx context.Context) ([]reminders.Registration, error) {
	var items []wireReminder
	if err := n.client.DoJSON(ctx, http.MethodGet, n.base, nil, &items); err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrUpstream, err)
	}

	out := make([]reminders.Registration, 0, len(items))
	for _, w := range items {
		out = append(out, reminders.Registration{
			ID: w.ID,
			Reminder: reminders.Reminder{
				MedicineID:   w.MedicineID,
				MedicineName: w.MedicineName,
				Dosage:       w.Dosage,
				DoseTime:     w.DoseTime,
				Hour:         w.Hour,
				Minute:       w.Minute,
			},
		})
	}
	return out, nil
}

func (n *Notifier) Schedule(ctx context.Context, r reminders.Reminder) (string, error) {
	in := wireReminder{
		MedicineID:   r.MedicineID,
		MedicineName: r.MedicineName,
		Dosage:       r.Dosage,
		DoseTime:     r.DoseTime,
		Hour:         r.Hour,
		Minute:       r.Minute,
		Title:        r.Title(),
		Body:         r.Body(),
		Channel:      reminders.Channel,
		Data:         r.Data(),
		Repeats:      true,
	}
	var out createResponse
	if err := n.client.DoJSON(ctx, http.MethodPost, n.base, in, &out); err != nil {
		return "", fmt.Errorf("%w: schedule: %v", ErrUpstream, err)
	}
	if strings.TrimSpace(out.ID) == "" {
		return "", fmt.Errorf("%w: schedule: response missing id", ErrUpstream)
	}
	return out.ID, nil
}

func (n *Notifier) Cancel(ctx context.Context, id string) error {
	err := n.client.DoJSON(ctx, http.MethodDelete, n.base+"/"+url.PathEscape(id), nil, nil)
	// ya no existe => objetivo cumplido
	if err != nil && httpclient.StatusOf(err) != http.StatusNotFound {
		return fmt.Errorf("%w: cancel: %v", ErrUpstream, err)
	}
	return nil
}

func (n *Notifier) CancelAll(ctx context.Context) error {
	if err := n.client.DoJSON(ctx, http.MethodDelete, n.base, nil, nil); err != nil {
		return fmt.Errorf("%w: cancel all: %v", ErrUpstream, err)
	}
	return nil
}
