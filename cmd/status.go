package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/studygenie/internal/controller"
	"github.com/abhisek/studygenie/internal/render"
	"github.com/abhisek/studygenie/internal/ui/theme"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the backend's agents and recent events",
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		interval, _ := cmd.Flags().GetDuration("interval")

		return withSession(cmd, func(d *deps) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, theme.Hint.Render("Backend: "+d.ctrl.Endpoint()))

			if !watch {
				st, err := d.ctrl.PollStatus(cmd.Context())
				if err != nil {
					fmt.Fprintln(out, render.Status(nil, controller.StatusErrorText))
					return err
				}
				fmt.Fprintln(out, render.Status(&st, ""))
				return nil
			}

			if interval <= 0 {
				interval = d.cfg.PollInterval
			}
			updates := make(chan controller.StatusUpdate, 1)
			d.ctrl.SetOnStatus(func(u controller.StatusUpdate) {
				select {
				case updates <- u:
				case <-cmd.Context().Done():
				}
			})
			defer d.ctrl.SetOnStatus(nil)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				_, _ = d.ctrl.PollStatus(ctx)
				d.ctrl.RunStatusPoller(ctx, interval, nil)
				return nil
			})
			g.Go(func() error {
				for {
					select {
					case <-ctx.Done():
						return nil
					case u := <-updates:
						errText := ""
						if u.Err != nil {
							errText = controller.StatusErrorText
						}
						fmt.Fprintln(out, theme.Hint.Render("── "+time.Now().Format("15:04:05")+" ──"))
						fmt.Fprintln(out, render.Status(u.Status, errText))
						if u.Err != nil && u.Status != nil {
							fmt.Fprintln(out, theme.Incorrect.Render(errText))
						}
						fmt.Fprintln(out)
					}
				}
			})
			return g.Wait()
		})
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Trigger the backend's autonomous agent demo",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(d *deps) error {
			out := cmd.OutOrStdout()

			refreshed := make(chan controller.StatusUpdate, 1)
			d.ctrl.SetOnStatus(func(u controller.StatusUpdate) {
				select {
				case refreshed <- u:
				default:
				}
			})
			defer d.ctrl.SetOnStatus(nil)

			// The health check and the trigger are independent; a down
			// backend fails both, and the trigger error is the one kept.
			g, ctx := errgroup.WithContext(cmd.Context())
			var healthErr error
			g.Go(func() error {
				healthErr = d.ctrl.CheckHealth(ctx)
				return nil
			})
			g.Go(func() error {
				return d.ctrl.TriggerDemo(ctx)
			})
			if err := g.Wait(); err != nil {
				return err
			}
			if healthErr != nil {
				d.logger.Warn("backend health check failed", "error", healthErr)
			}

			timeout := d.cfg.DemoRefresh + d.cfg.Backend.Timeout
			select {
			case u := <-refreshed:
				if u.Err != nil {
					fmt.Fprintln(out, render.Status(u.Status, controller.StatusErrorText))
					return u.Err
				}
				fmt.Fprintln(out, render.Status(u.Status, ""))
			case <-time.After(timeout):
				return fmt.Errorf("no status refresh within %s", timeout)
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
			return nil
		})
	},
}

func init() {
	statusCmd.Flags().BoolP("watch", "w", false, "Keep polling and print every update")
	statusCmd.Flags().Duration("interval", 0, "Poll interval with --watch (default from config, 30s)")
}
