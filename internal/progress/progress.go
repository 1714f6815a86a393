// Package progress shows a progress bar while planned writes are applied.
package progress

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/lewiesnyder/RulePort/internal/logging"
	"github.com/lewiesnyder/RulePort/internal/ui"
)

// Bar wraps a progressbar. When output is not an interactive terminal it
// degrades to debug log lines and every method is a no-op.
type Bar struct {
	bar     *progressbar.ProgressBar
	logger  *slog.Logger
	enabled bool
	desc    string
}

// Options configures the progress bar.
type Options struct {
	// Total is the number of steps.
	Total int
	// Description is the text shown before the bar.
	Description string
	// Writer is the output destination. Defaults to os.Stderr.
	Writer io.Writer
	// Logger receives start and finish lines when the bar is hidden.
	Logger *slog.Logger
}

// New creates a progress bar. The bar is shown only when the writer is a
// terminal, colors are enabled, and the logger is quieter than debug.
func New(opts Options) *Bar {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	b := &Bar{
		logger:  opts.Logger,
		enabled: opts.Total > 1 && shouldShow(opts.Writer, opts.Logger),
		desc:    opts.Description,
	}

	if !b.enabled {
		b.logger.Debug(fmt.Sprintf("%s started", opts.Description), logging.Count(opts.Total))
		return b
	}

	b.bar = progressbar.NewOptions(
		opts.Total,
		progressbar.OptionSetDescription(opts.Description),
		progressbar.OptionSetWriter(opts.Writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionEnableColorCodes(ui.IsColorEnabled()),
	)
	return b
}

// Enabled reports whether the bar is drawn.
func (b *Bar) Enabled() bool {
	return b.enabled
}

// Add advances the bar by n steps.
func (b *Bar) Add(n int) error {
	if !b.enabled {
		return nil
	}
	return b.bar.Add(n)
}

// Describe updates the description, typically to the file being written.
func (b *Bar) Describe(desc string) {
	b.desc = desc
	if !b.enabled {
		return
	}
	b.bar.Describe(desc)
}

// Finish completes the bar.
func (b *Bar) Finish() error {
	if !b.enabled {
		b.logger.Debug(fmt.Sprintf("%s completed", b.desc))
		return nil
	}
	return b.bar.Finish()
}

func shouldShow(w io.Writer, logger *slog.Logger) bool {
	if !ui.IsColorEnabled() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	// Bars and debug log lines share stderr.
	return !logger.Enabled(context.Background(), logging.LevelDebug)
}
