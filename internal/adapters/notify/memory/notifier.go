package memory

import (
	"context"
	"sort"
	"sync"

	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/domain/reminders"

	"github.com/google/uuid"
)

// Notifier guarda los recordatorios en memoria. Un Notifier = un dispositivo.
type Notifier struct {
	mu    sync.RWMutex
	byID  map[string]reminders.Registration
	order []string
}

func NewNotifier() *Notifier {
	return &Notifier{byID: map[string]reminders.Registration{}}
}

// Factory arma un notificador por parent y lo reutiliza.
func Factory() reminders.NotifierFactory {
	var mu sync.Mutex
	byRef := map[parents.Ref]*Notifier{}
	return func(ref parents.Ref) (reminders.Notifier, error) {
		mu.Lock()
		defer mu.Unlock()
		n, ok := byRef[ref]
		if !ok {
			n = NewNotifier()
			byRef[ref] = n
		}
		return n, nil
	}
}

func (n *Notifier) List(ctx context.Context) ([]reminders.Registration, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]reminders.Registration, 0, len(n.order))
	for _, id := range n.order {
		out = append(out, n.byID[id])
	}
	return out, nil
}

func (n *Notifier) Schedule(ctx context.Context, r reminders.Reminder) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := uuid.NewString()
	n.byID[id] = reminders.Registration{ID: id, Reminder: r}
	n.order = append(n.order, id)
	return id, nil
}

func (n *Notifier) Cancel(ctx context.Context, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.byID[id]; !ok {
		return nil
	}
	delete(n.byID, id)
	for i, v := range n.order {
		if v == id {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
	return nil
}

func (n *Notifier) CancelAll(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.byID = map[string]reminders.Registration{}
	n.order = nil
	return nil
}

// Times devuelve las horas registradas ordenadas (útil en tests y en el CLI).
func (n *Notifier) Times() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]string, 0, len(n.byID))
	for _, r := range n.byID {
		out = append(out, r.Reminder.DoseTime)
	}
	sort.Strings(out)
	return out
}
