package reminders

import (
	"context"
	"sync"

	"doseup-parent/internal/domain/medicines"
	"doseup-parent/internal/platform/logger"
)

// Result de una pasada de reconciliación.
type Result struct {
	// IDs: medicineID => ids de registro vigentes (incluye los que se conservaron).
	// Toda medicina recibida aparece, aunque sea con lista vacía.
	IDs map[string][]string

	Scheduled int
	Cancelled int
	Kept      int
	Failed    int

	// FullReplace: no se pudo listar lo registrado y se hizo cancel-all + schedule.
	FullReplace bool
}

// Reconciler lleva el notificador al set deseado de recordatorios.
// Hay como máximo una pasada en vuelo; lo que llegue mientras tanto se encola en
// lotes (ver enqueue) que corren en orden de llegada al terminar la pasada actual.
type Reconciler struct {
	notifier Notifier
	log      logger.Logger

	mu      sync.Mutex
	running bool
	pending []*batch
}

// batch agrupa pedidos coalescidos. clear marca un logout: sus medicinas se ignoran.
type batch struct {
	meds    []medicines.Medicine
	clear   bool
	waiters []chan Result
}

func NewReconciler(n Notifier, log logger.Logger) *Reconciler {
	if log == nil {
		log = logger.Nop()
	}
	return &Reconciler{notifier: n, log: log}
}

// Sync reconcilia contra meds. Si ya hay una pasada corriendo, espera a la pasada
// de cola que lo incluye (con la lista más reciente) y devuelve su resultado.
// Los errores por slot se loguean y cuentan en Result.Failed; nunca cortan la pasada.
func (r *Reconciler) Sync(ctx context.Context, meds []medicines.Medicine) (Result, error) {
	return r.run(ctx, meds, false)
}

// Clear cancela todos los recordatorios (logout). Un Clear encolado no lo pisa un
// Sync posterior: ese Sync corre en su propia pasada, después del cancel-all.
func (r *Reconciler) Clear(ctx context.Context) (Result, error) {
	return r.run(ctx, nil, true)
}

func (r *Reconciler) run(ctx context.Context, meds []medicines.Medicine, clear bool) (Result, error) {
	r.mu.Lock()
	if r.running {
		ch := make(chan Result, 1)
		r.enqueue(meds, clear, ch)
		r.mu.Unlock()

		select {
		case res := <-ch:
			return res, nil
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
	r.running = true
	r.mu.Unlock()

	if clear {
		meds = nil
	}
	res := r.reconcile(ctx, meds)

	// Las pasadas de cola no dependen del ctx de quien las dispara.
	trailingCtx := context.WithoutCancel(ctx)
	for {
		r.mu.Lock()
		if len(r.pending) == 0 {
			r.running = false
			r.mu.Unlock()
			return res, nil
		}
		next := r.pending[0]
		r.pending = r.pending[1:]
		r.mu.Unlock()

		trailing := r.reconcile(trailingCtx, next.meds)
		for _, w := range next.waiters {
			w <- trailing
		}
	}
}

// enqueue deja pending como [], [sync], [clear] o [clear, sync]:
//   - un clear absorbe todo lo encolado antes (también los syncs);
//   - un sync se junta con el último lote si es sync, si no abre uno nuevo.
//
// Requiere r.mu.
func (r *Reconciler) enqueue(meds []medicines.Medicine, clear bool, ch chan Result) {
	if clear {
		var waiters []chan Result
		for _, b := range r.pending {
			waiters = append(waiters, b.waiters...)
		}
		r.pending = []*batch{{clear: true, waiters: append(waiters, ch)}}
		return
	}
	if n := len(r.pending); n > 0 && !r.pending[n-1].clear {
		last := r.pending[n-1]
		last.meds = meds
		last.waiters = append(last.waiters, ch)
		return
	}
	r.pending = append(r.pending, &batch{meds: meds, waiters: []chan Result{ch}})
}

// Registered lista lo que hoy tiene el notificador.
func (r *Reconciler) Registered(ctx context.Context) ([]Registration, error) {
	return r.notifier.List(ctx)
}

func (r *Reconciler) reconcile(ctx context.Context, meds []medicines.Medicine) Result {
	res := Result{IDs: make(map[string][]string, len(meds))}
	for _, m := range meds {
		res.IDs[m.ID] = []string{}
	}

	want, bad := desired(meds)
	for _, b := range bad {
		res.Failed++
		r.log.Warn("reminder slot skipped", map[string]any{
			"medicine_id": b.MedicineID,
			"dose_time":   b.DoseTime,
			"error":       b.Err,
		})
	}

	// Sin nada deseado: un único cancel-all.
	if len(want) == 0 {
		if err := r.notifier.CancelAll(ctx); err != nil {
			res.Failed++
			r.log.Error("cancel all reminders failed", map[string]any{"error": err})
		}
		r.logResult(res)
		return res
	}

	registered, err := r.notifier.List(ctx)
	if err != nil {
		r.log.Warn("list reminders failed, replacing all", map[string]any{"error": err})
		res.FullReplace = true
		registered = nil
		// Si el cancel-all falla no se agenda nada en esta pasada.
		if err := r.notifier.CancelAll(ctx); err != nil {
			res.Failed++
			r.log.Error("cancel all reminders failed, skipping schedule", map[string]any{"error": err})
			r.logResult(res)
			return res
		}
	}

	wanted := make(map[Reminder]struct{}, len(want))
	for _, w := range want {
		wanted[w] = struct{}{}
	}

	// 1) cancelar lo que sobra (removido, cambiado o duplicado) antes de agregar
	kept := make(map[Reminder]string, len(registered))
	for _, reg := range registered {
		if _, ok := wanted[reg.Reminder]; ok {
			if _, dup := kept[reg.Reminder]; !dup {
				kept[reg.Reminder] = reg.ID
				continue
			}
		}
		if err := r.notifier.Cancel(ctx, reg.ID); err != nil {
			res.Failed++
			r.log.Error("cancel reminder failed", map[string]any{
				"registration_id": reg.ID,
				"medicine_id":     reg.Reminder.MedicineID,
				"error":           err,
			})
			continue
		}
		res.Cancelled++
	}

	// 2) agregar lo que falta, en orden de medicinas/horas
	for _, w := range want {
		if id, ok := kept[w]; ok {
			res.Kept++
			res.IDs[w.MedicineID] = append(res.IDs[w.MedicineID], id)
			continue
		}

		id, err := r.notifier.Schedule(ctx, w)
		if err != nil {
			res.Failed++
			r.log.Error("schedule reminder failed", map[string]any{
				"medicine_id": w.MedicineID,
				"dose_time":   w.DoseTime,
				"error":       err,
			})
			continue
		}
		res.Scheduled++
		res.IDs[w.MedicineID] = append(res.IDs[w.MedicineID], id)
	}

	r.logResult(res)
	return res
}

func (r *Reconciler) logResult(res Result) {
	r.log.Info("reminders reconciled", map[string]any{
		"scheduled":    res.Scheduled,
		"cancelled":    res.Cancelled,
		"kept":         res.Kept,
		"failed":       res.Failed,
		"full_replace": res.FullReplace,
	})
}
