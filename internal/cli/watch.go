package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/lewiesnyder/RulePort/internal/logging"
	"github.com/lewiesnyder/RulePort/internal/source"
	"github.com/lewiesnyder/RulePort/internal/ui"
	"github.com/lewiesnyder/RulePort/internal/watch"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Sync once, then re-sync whenever source rules change",
		UsageText: "ruleport watch [path] [tool...] [options]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "quiet period after the last change before syncing",
				Value: watch.DefaultDebounce,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject(ctx, cmd)
			if err != nil {
				return err
			}
			return runWatchWith(ctx, p, cmd.Duration("debounce"))
		},
	}
}

func runWatch(ctx context.Context, p *project) error {
	return runWatchWith(ctx, p, watch.DefaultDebounce)
}

// runWatchWith syncs once and then watches the source rule directory until
// interrupted. A failed re-sync is reported and watching continues.
func runWatchWith(ctx context.Context, p *project, debounce time.Duration) error {
	if _, err := runSync(ctx, p); err != nil {
		if errors.Is(err, source.ErrSourceNotFound) {
			return err
		}
		fmt.Println(ui.StatusError(err.Error()))
	}

	logger := p.Logger.With(logging.Operation("watch"))
	dir := p.Paths.RulesDir(p.Source)
	fmt.Printf("\n👀 Watching %s for changes (Ctrl+C to stop)...\n", p.Paths.Rel(dir))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return watch.Watch(ctx, watch.Options{
			Dir:      dir,
			Debounce: debounce,
			Logger:   logger,
			Handler: func(ctx context.Context, changed []string) error {
				fmt.Printf("\n📁 %d change(s) detected, re-syncing...\n\n", len(changed))
				_, err := runSync(ctx, p)
				return err
			},
		})
	})

	g.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigs)
		select {
		case <-ctx.Done():
		case sig := <-sigs:
			logger.Info("received signal, stopping", slog.String("signal", sig.String()))
			fmt.Println("\nStopping watcher.")
			cancel()
		}
		return nil
	})

	return g.Wait()
}
