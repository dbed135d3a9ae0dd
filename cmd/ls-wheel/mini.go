package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-wheel/internal/render"
)

const (
	defaultMiniWidth  = 72
	defaultMiniHeight = 30
)

type miniOpts struct {
	width  int
	height int
	watch  time.Duration
	labels string
	plain  bool
}

func newMiniCmd(g *globalOpts) *cobra.Command {
	var opts miniOpts

	cmd := &cobra.Command{
		Use:   "mini <chart>",
		Short: "Print a small wheel in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseLabelMode(opts.labels)
			if err != nil {
				return err
			}
			return runMini(cmd.Context(), cmd.OutOrStdout(), g, args[0], opts, mode)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 0, "canvas width in cells (default: terminal width)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "canvas height in cells (default: terminal height)")
	cmd.Flags().DurationVar(&opts.watch, "watch", 0, "redraw at interval (e.g., 5s)")
	cmd.Flags().StringVar(&opts.labels, "labels", "all", "planet names: off, focus, all")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "ASCII text instead of glyphs")

	return cmd
}

func parseLabelMode(s string) (render.TermLabelMode, error) {
	for _, m := range []render.TermLabelMode{render.TermLabelNone, render.TermLabelFocused, render.TermLabelAll} {
		if m.String() == s {
			return m, nil
		}
	}
	return render.TermLabelNone, fmt.Errorf("invalid labels %q: must be off, focus or all", s)
}

// canvasSize fills unset dimensions from the terminal, leaving a line for
// the prompt.
func canvasSize(width, height int, isTTY bool) (int, int) {
	if isTTY && (width <= 0 || height <= 0) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h - 1
			}
		}
	}
	if width <= 0 {
		width = defaultMiniWidth
	}
	if height <= 0 {
		height = defaultMiniHeight
	}
	return width, height
}

func runMini(ctx context.Context, w io.Writer, g *globalOpts, path string, opts miniOpts, mode render.TermLabelMode) error {
	logger := loggerFrom(ctx)
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	th, err := loadTheme(ctx, g)
	if err != nil {
		return err
	}

	drawOnce := func() error {
		c, _, err := loadChart(ctx, path)
		if err != nil {
			return err
		}
		width, height := canvasSize(opts.width, opts.height, isTTY)
		scene := render.BuildScene(c, th)
		canvas := render.RenderTerminal(scene, width, height, render.TermOptions{
			Labels: mode,
			Plain:  opts.plain,
		})
		if isTTY {
			fmt.Fprintln(w, canvas.String())
		} else {
			fmt.Fprintln(w, canvas.Plain())
		}
		return nil
	}

	if opts.watch == 0 {
		return drawOnce()
	}

	if err := drawOnce(); err != nil {
		logger.Error("%v", err)
	}

	ticker := time.NewTicker(opts.watch)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watch loop shutting down")
			return nil
		case <-ticker.C:
			fmt.Fprintln(w)
			if err := drawOnce(); err != nil {
				logger.Error("%v", err)
			}
		}
	}
}
