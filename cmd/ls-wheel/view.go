package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-wheel/internal/chart"
	"github.com/litescript/ls-wheel/internal/logging"
	"github.com/litescript/ls-wheel/internal/state"
	"github.com/litescript/ls-wheel/internal/ui"
)

const (
	defaultRefresh = 2 * time.Second
	minRefresh     = 250 * time.Millisecond
	maxRefresh     = 5 * time.Minute
)

func newViewCmd(g *globalOpts) *cobra.Command {
	refresh := defaultRefresh

	cmd := &cobra.Command{
		Use:   "view <chart>",
		Short: "Open the interactive wheel viewer",
		Long:  "Open the interactive wheel viewer. The chart file is watched and redrawn when it changes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), g, args[0], clampRefresh(refresh))
		},
	}

	cmd.Flags().DurationVar(&refresh, "refresh", refresh, "how often to check the chart file for changes")

	return cmd
}

func clampRefresh(d time.Duration) time.Duration {
	if d < minRefresh {
		return minRefresh
	}
	if d > maxRefresh {
		return maxRefresh
	}
	return d
}

func runView(ctx context.Context, g *globalOpts, path string, refresh time.Duration) error {
	logger := loggerFrom(ctx)

	th, err := loadTheme(ctx, g)
	if err != nil {
		return err
	}

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = refresh
	stateMgr := state.NewManager(stateCfg, th)

	// Fail fast on a chart that cannot be read at all.
	c, elapsed, err := loadChart(ctx, path)
	if err != nil {
		return err
	}
	stateMgr.Update(c, elapsed, nil)

	loader := func() (*chart.Chart, error) { return chart.Load(path) }
	model := ui.New(stateMgr, loader)

	// The TUI owns the terminal; keep log lines out of the alt screen.
	logger.SetOutput(viewLogOutput())

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	go runWatchLoop(ctx, path, stateMgr, p, logger)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// viewLogOutput is the file named by LS_WHEEL_LOG, or nowhere.
func viewLogOutput() io.Writer {
	if name := os.Getenv("LS_WHEEL_LOG"); name != "" {
		if f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			return f
		}
	}
	return io.Discard
}

// runWatchLoop reloads the chart whenever its modification time changes.
func runWatchLoop(ctx context.Context, path string, stateMgr *state.Manager, p *tea.Program, logger *logging.Logger) {
	lastMod := modTime(path)

	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watch loop shutting down")
			return
		case <-ticker.C:
			mod := modTime(path)
			if mod.Equal(lastMod) {
				continue
			}
			lastMod = mod
			doReload(path, stateMgr, p, logger)
		}
	}
}

func doReload(path string, stateMgr *state.Manager, p *tea.Program, logger *logging.Logger) {
	logger.Debug("Reloading %s", path)

	start := time.Now()
	c, err := chart.Load(path)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error("Reload failed: %v", err)
		stateMgr.Update(nil, elapsed, err)
		p.Send(ui.ErrorMsg{Error: err})
		return
	}

	logger.Debug("Reload complete: %d planets in %v", len(c.Planets), elapsed)
	stateMgr.Update(c, elapsed, nil)
	p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
}

func modTime(path string) time.Time {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}
