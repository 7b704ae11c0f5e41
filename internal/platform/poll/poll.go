// Package poll convierte un fetch periódico en una suscripción: emite el valor
// inicial y luego solo cuando cambia su fingerprint.
package poll

import (
	"context"
	"sync"
	"time"
)

type Watch[T any] struct {
	Every       time.Duration
	Fetch       func(ctx context.Context) (T, error)
	Fingerprint func(T) string

	OnChange func(T)
	OnError  func(error) // opcional
}

// Start corre el loop en una goroutine. El stop devuelto cancela y espera a que
// termine; no llamarlo desde OnChange/OnError.
func (w Watch[T]) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		last, has := "", false
		tick := func() {
			v, err := w.Fetch(ctx)
			if err != nil {
				if ctx.Err() == nil && w.OnError != nil {
					w.OnError(err)
				}
				return
			}
			fp := w.Fingerprint(v)
			if has && fp == last {
				return
			}
			last, has = fp, true
			w.OnChange(v)
		}

		tick()

		t := time.NewTicker(w.Every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				tick()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
