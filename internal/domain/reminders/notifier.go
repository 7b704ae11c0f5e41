package reminders

import "context"

// Notifier es el servicio de notificaciones locales (tabla global de registros
// del dispositivo). Lo implementan los adapters en adapters/notify.
type Notifier interface {
	List(ctx context.Context) ([]Registration, error)

	// Schedule registra una notificación diaria repetida a Hour:Minute.
	Schedule(ctx context.Context, r Reminder) (string, error)
	Cancel(ctx context.Context, id string) error
	CancelAll(ctx context.Context) error
}
