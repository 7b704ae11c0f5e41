package reminders

import (
	"context"
	"sync"

	"doseup-parent/internal/domain/medicines"
	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/platform/logger"
)

// NotifierFactory devuelve el notificador de un parent (su "dispositivo").
type NotifierFactory func(ref parents.Ref) (Notifier, error)

// Manager mantiene un Reconciler por parent, para que el single-flight sea por parent.
type Manager struct {
	factory NotifierFactory
	log     logger.Logger

	mu    sync.Mutex
	byRef map[parents.Ref]*Reconciler
}

func NewManager(factory NotifierFactory, log logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		factory: factory,
		log:     log,
		byRef:   map[parents.Ref]*Reconciler{},
	}
}

func (m *Manager) For(ref parents.Ref) (*Reconciler, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.byRef[ref]; ok {
		return r, nil
	}
	n, err := m.factory(ref)
	if err != nil {
		return nil, err
	}
	r := NewReconciler(n, m.log.With(map[string]any{
		"admin_id":  ref.AdminID,
		"parent_id": ref.ParentID,
	}))
	m.byRef[ref] = r
	return r, nil
}

// MedicineSource es la suscripción en vivo a las medicinas (la cumple *medicines.Service).
type MedicineSource interface {
	Subscribe(ctx context.Context, ref parents.Ref, onChange func([]medicines.Medicine), onError func(error)) func()
}

// Follow reconcilia al restaurar la sesión (primer emit) y en cada cambio de medicinas.
// Un único worker corre las pasadas; mientras una corre, de los emits siguientes solo
// queda el último, así la pasada final siempre usa la lista más nueva.
// stop corta la suscripción, corre lo pendiente y espera al worker.
func Follow(ctx context.Context, src MedicineSource, ref parents.Ref, rec *Reconciler, log logger.Logger) (stop func()) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"parent_id": ref.ParentID})

	var (
		mu     sync.Mutex
		latest []medicines.Medicine
	)
	kick := make(chan struct{}, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-kick:
				if !ok {
					return
				}
			}
			mu.Lock()
			meds := latest
			mu.Unlock()

			if _, err := rec.Sync(ctx, meds); err != nil {
				log.Warn("reminder sync aborted", map[string]any{"error": err})
			}
		}
	}()

	unsubscribe := src.Subscribe(ctx, ref,
		func(meds []medicines.Medicine) {
			mu.Lock()
			latest = meds
			mu.Unlock()
			select {
			case kick <- struct{}{}:
			default:
			}
		},
		func(err error) {
			log.Error("medicines subscription error", map[string]any{"error": err})
		},
	)

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			close(kick)
			<-done
		})
	}
}
