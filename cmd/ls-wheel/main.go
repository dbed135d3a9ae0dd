// Command ls-wheel lays out and draws astrological chart wheels.
//
// The planet labels around the wheel are spread apart so that no two sit
// closer than the configured minimum angular distance. The command can write
// the wheel as SVG or PNG, print the placements, draw a mini wheel in the
// terminal, or run an interactive viewer that follows the chart file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-wheel/internal/chart"
	"github.com/litescript/ls-wheel/internal/logging"
	"github.com/litescript/ls-wheel/internal/style"
	"github.com/litescript/ls-wheel/internal/version"
)

// globalOpts are the persistent flags shared by every subcommand.
type globalOpts struct {
	themePath  string
	logLevel   string
	minDist    float64
	minDistSet bool // --min-dist given explicitly, even as 0
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *logging.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

func loggerFrom(ctx context.Context) *logging.Logger {
	if l, ok := ctx.Value(loggerKey).(*logging.Logger); ok {
		return l
	}
	return logging.Discard()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	root := &cobra.Command{
		Use:           "ls-wheel",
		Short:         "Lay out and draw astrological chart wheels",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.minDistSet = cmd.Flags().Changed("min-dist")
			logger := logging.New(logging.ParseLevel(opts.logLevel))
			logger.SetOutput(cmd.ErrOrStderr())
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(version.String() + "\n")
	root.PersistentFlags().StringVarP(&opts.themePath, "config", "c", "", "theme TOML file (defaults built in)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().Float64Var(&opts.minDist, "min-dist", 0, "minimum angular distance between labels in degrees (overrides theme)")

	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newLayoutCmd(opts))
	root.AddCommand(newMiniCmd(opts))
	root.AddCommand(newViewCmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}

// loadTheme resolves the theme from flags: the file when given, then the
// --min-dist override, then validation.
func loadTheme(ctx context.Context, opts *globalOpts) (style.Theme, error) {
	logger := loggerFrom(ctx)

	th := style.DefaultTheme()
	if opts.themePath != "" {
		var err error
		th, err = style.LoadTheme(opts.themePath)
		if err != nil {
			return style.Theme{}, err
		}
		logger.Debug("Loaded theme %s", opts.themePath)
	}
	if opts.minDistSet {
		th.Settings.CollisionMinDist = opts.minDist
	}
	if err := th.Validate(); err != nil {
		return style.Theme{}, &chart.OpError{
			Op:   "cli.theme",
			Kind: chart.KindInvalidConfig,
			Path: opts.themePath,
			Err:  err,
		}
	}
	return th, nil
}

// loadChart reads a chart file and logs how long it took.
func loadChart(ctx context.Context, path string) (*chart.Chart, time.Duration, error) {
	start := time.Now()
	c, err := chart.Load(path)
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, err
	}
	loggerFrom(ctx).Debug("Loaded %s: %d planets, %d houses in %v",
		path, len(c.Planets), len(c.Houses), elapsed.Round(time.Microsecond))
	return c, elapsed, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
