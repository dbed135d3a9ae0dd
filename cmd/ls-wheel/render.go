package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-wheel/internal/chart"
	"github.com/litescript/ls-wheel/internal/render"
)

const (
	formatSVG = "svg"
	formatPNG = "png"
)

type renderOpts struct {
	output   string  // output file, "-" for stdout
	format   string  // svg or png; inferred from output when empty
	size     int     // PNG edge length / SVG width in pixels
	ticks    bool    // mark true longitudes of displaced planets
	rotation float64 // wheel rotation in degrees
}

func newRenderCmd(g *globalOpts) *cobra.Command {
	opts := renderOpts{size: render.DefaultPNGSize}

	cmd := &cobra.Command{
		Use:   "render <chart>",
		Short: "Draw a chart wheel to SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			opts.format = format
			return runRender(cmd.Context(), cmd.OutOrStdout(), g, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output file (- for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png (default from extension, else svg)")
	cmd.Flags().IntVar(&opts.size, "size", opts.size, "image size in pixels")
	cmd.Flags().BoolVar(&opts.ticks, "ticks", false, "mark the true longitude of displaced planets")
	cmd.Flags().Float64Var(&opts.rotation, "rotate", 0, "rotate the wheel by degrees")

	return cmd
}

// resolveFormat picks the output format from the flag or the file extension.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".png":
			return formatPNG, nil
		default:
			return formatSVG, nil
		}
	}
	switch f := strings.ToLower(format); f {
	case formatSVG, formatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be svg or png", format)
	}
}

func runRender(ctx context.Context, stdout io.Writer, g *globalOpts, path string, opts renderOpts) error {
	logger := loggerFrom(ctx)

	th, err := loadTheme(ctx, g)
	if err != nil {
		return err
	}
	c, _, err := loadChart(ctx, path)
	if err != nil {
		return err
	}

	sceneOpts := []render.Option{render.WithRotation(opts.rotation)}
	if opts.ticks {
		sceneOpts = append(sceneOpts, render.WithTicks())
	}
	scene := render.BuildScene(c, th, sceneOpts...)
	if scene.Layout.Saturated {
		logger.Warn("Wheel is saturated at %.1f°: %d planets cannot all keep their distance",
			th.Settings.CollisionMinDist, len(scene.Layout.Objects))
	}

	var buf bytes.Buffer
	switch opts.format {
	case formatPNG:
		if err := render.RenderPNG(&buf, scene, opts.size); err != nil {
			return &chart.OpError{Op: "cli.render", Kind: chart.KindRender, Path: opts.output, Err: err}
		}
	default:
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		buf.Write(render.RenderSVG(scene, render.WithWidth(float64(opts.size)), render.WithTitle(title)))
	}

	if err := writeOutput(stdout, opts.output, buf.Bytes()); err != nil {
		return err
	}
	if opts.output != "-" {
		logger.Info("Wrote %s (%d planets, %d clusters)", opts.output,
			len(scene.Layout.Objects), len(scene.Layout.Clusters))
	}
	return nil
}

func writeOutput(stdout io.Writer, output string, data []byte) error {
	if output == "" || output == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return &chart.OpError{Op: "cli.write", Kind: chart.KindRender, Path: output, Err: err}
	}
	return nil
}
