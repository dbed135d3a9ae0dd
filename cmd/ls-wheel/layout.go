package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-wheel/internal/chart"
	"github.com/litescript/ls-wheel/internal/layout"
	"github.com/litescript/ls-wheel/internal/render"
)

func newLayoutCmd(g *globalOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "layout <chart>",
		Short: "Print where each planet label is placed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd.Context(), cmd.OutOrStdout(), g, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print placements as JSON")

	return cmd
}

func runLayout(ctx context.Context, w io.Writer, g *globalOpts, path string, asJSON bool) error {
	th, err := loadTheme(ctx, g)
	if err != nil {
		return err
	}
	c, _, err := loadChart(ctx, path)
	if err != nil {
		return err
	}

	cfg := th.LayoutConfig()
	l := layout.Plan(c.Objects(th.Registry), cfg)
	loggerFrom(ctx).Debug("Placed %d planets in %d clusters", len(l.Objects), len(l.Clusters))

	if asJSON {
		if err := render.ExportPlacements(c, l, cfg).WriteJSON(w); err != nil {
			return &chart.OpError{Op: "cli.layout", Kind: chart.KindRender, Err: err}
		}
		return nil
	}
	render.WritePlacementTable(w, c, l)
	return nil
}
