package main

import (
	"context"
	"fmt"
	"time"

	"doseup-parent/internal/adapters/notify/local"
	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/domain/reminders"
	"doseup-parent/internal/platform/logger"

	"github.com/spf13/cobra"
)

func agentCmd() *cobra.Command {
	var ref parents.Ref

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Keep a parent's reminders in sync and fire them when due (NOTIFIER=local)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ref.Valid() {
				return fmt.Errorf("--admin and --parent are required")
			}

			rt, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer rt.close()

			if rt.cfg.Notifier != "local" {
				return fmt.Errorf("agent requires NOTIFIER=local, got %q", rt.cfg.Notifier)
			}
			a, err := rt.app()
			if err != nil {
				return err
			}

			rec, err := a.Reminders.For(ref)
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			log := rt.log.With(map[string]any{"admin_id": ref.AdminID, "parent_id": ref.ParentID})
			log.Info("agent started", map[string]any{"poll_interval": rt.cfg.PollInterval.String()})

			unfollow := reminders.Follow(ctx, a.Medicines, ref, rec, log)
			defer unfollow()

			device := local.New(a.LocalDB, ref)
			loc := a.Parents.LocationOf(ctx, ref, a.Location)
			fire(ctx, device, loc, log)

			tick := time.NewTicker(rt.cfg.PollInterval)
			defer tick.Stop()
			for {
				select {
				case <-ctx.Done():
					log.Info("agent stopped", nil)
					return nil
				case <-tick.C:
					fire(ctx, device, loc, log)
				}
			}
		},
	}

	cmd.Flags().StringVar(&ref.AdminID, "admin", "", "admin (caregiver) id")
	cmd.Flags().StringVar(&ref.ParentID, "parent", "", "parent id")
	return cmd
}

// fire "muestra" los recordatorios vencidos: en el agent la notificación es una línea de log.
func fire(ctx context.Context, device *local.Notifier, loc *time.Location, log logger.Logger) {
	due, err := device.Due(ctx, time.Now().In(loc))
	if err != nil {
		log.Error("due reminders failed", map[string]any{"error": err})
		return
	}
	for _, reg := range due {
		log.Info(reg.Reminder.Title(), map[string]any{
			"body":    reg.Reminder.Body(),
			"channel": reminders.Channel,
			"data":    reg.Reminder.Data(),
		})
	}
}
