package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"livecounter-backend/internal/hook"
	"livecounter-backend/internal/model"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var (
		interval time.Duration
		count    int
	)

	cmd := &cobra.Command{
		Use:   "watch <resource> <value>",
		Short: "Refresh counters on an interval until interrupted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}
			fetch, err := lookupFetcher(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			settled := make(chan struct{}, 1)
			produce := hook.Infallible(func(ctx context.Context, arg string) model.ApiResponse[stats] {
				return fetch(ctx, opts.client, arg)
			})
			call := hook.New(ctx, args[1], produce, hook.OnChange(func(s model.ApiResponse[stats]) {
				if !s.Settled() {
					return
				}
				fmt.Fprintf(out, "[%s]\n", time.Now().Format(time.TimeOnly))
				if s.Failed() {
					fmt.Fprintf(out, "  error: %s\n", s.Error)
				} else {
					printStats(out, *s.Data)
				}
				select {
				case settled <- struct{}{}:
				default:
				}
			}))
			defer func() {
				call.Close()
				call.Wait()
			}()

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			rounds := 0
			pending := true
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-settled:
					pending = false
					rounds++
					if count > 0 && rounds >= count {
						return nil
					}
				case <-ticker.C:
					// A slow lookup is never superseded by the next tick.
					if !pending {
						pending = true
						call.Refetch()
					}
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Refresh interval")
	cmd.Flags().IntVar(&count, "count", 0, "Stop after this many refreshes (0 = until interrupted)")
	return cmd
}
