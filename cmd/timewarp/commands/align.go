// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/timewarp/dtw"
	"github.com/katalvlaran/timewarp/render"
	"github.com/katalvlaran/timewarp/seqio"
)

var (
	// ErrPairsFailed is returned when at least one --pairs document failed.
	ErrPairsFailed = errors.New("some pairs failed")

	// ErrAlignArgs indicates a wrong number of positional arguments.
	ErrAlignArgs = errors.New("align needs two sequences, or --pairs with one or more files")
)

// alignOptions holds the flags of the align command.
type alignOptions struct {
	band    int
	matrix  bool
	noColor bool
	format  string
	metric  string
	inline  bool
	pairs   bool
	workers int
}

// alignResult is one computed alignment, ready to print.
type alignResult struct {
	label       string
	distance    float64
	path        dtw.Path
	cells       int
	restriction dtw.Restriction
	table       string
	err         error
}

func newAlignCommand(g *globals) *cobra.Command {
	o := &alignOptions{}

	cmd := &cobra.Command{
		Use:   "align A B | align --pairs FILE...",
		Short: "Align two sequences and print distance and warping path",
		Long: `Align two numeric sequences with Dynamic Time Warping.

A and B are files (YAML, JSON or one value per line, chosen by extension or
--format), or literal comma-separated values with --inline.

With --pairs every argument is a document {a: [...], b: [...]}; pairs are
aligned concurrently by up to --workers goroutines.`,
		Example: `  timewarp align a.txt b.txt --band 2 --matrix
  timewarp align --inline 1,3,9,2,1 2,0,0,8,7,2
  timewarp align --pairs runs/*.yaml --workers 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("band") {
				o.band = g.cfg.Align.Band
			}
			if !cmd.Flags().Changed("matrix") {
				o.matrix = g.cfg.Align.ShowMatrix
			}
			if !cmd.Flags().Changed("workers") {
				o.workers = g.cfg.Align.Workers
			}
			if !g.cfg.Align.Color {
				o.noColor = true
			}

			return runAlign(cmd.Context(), cmd.OutOrStdout(), g, o, args)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&o.band, "band", "b", -1, "Sakoe-Chiba band radius; -1 for unrestricted")
	f.BoolVarP(&o.matrix, "matrix", "m", false, "print the cost matrix")
	f.BoolVar(&o.noColor, "no-color", false, "disable coloured output")
	f.StringVarP(&o.format, "format", "f", "", "input format: lines, yaml or json (default by extension)")
	f.StringVar(&o.metric, "metric", dtw.MetricAbs, "element metric: abs or squared")
	f.BoolVar(&o.inline, "inline", false, "treat A and B as comma-separated values")
	f.BoolVar(&o.pairs, "pairs", false, "arguments are pair documents")
	f.IntVarP(&o.workers, "workers", "w", 4, "concurrent pair alignments")

	return cmd
}

// restriction maps the band flag: negative is unrestricted.
func (o *alignOptions) restriction() dtw.Restriction {
	if o.band < 0 {
		return dtw.Unrestricted()
	}

	return dtw.Band(o.band)
}

func runAlign(ctx context.Context, out io.Writer, g *globals, o *alignOptions, args []string) error {
	if o.band < -1 {
		return fmt.Errorf("--band %d: %w", o.band, dtw.ErrBadRadius)
	}
	metric, err := dtw.MetricByName[float64](o.metric)
	if err != nil {
		return err
	}

	if o.pairs {
		if len(args) == 0 {
			return ErrAlignArgs
		}
		return runPairs(ctx, out, g, o, metric, args)
	}
	if len(args) != 2 {
		return ErrAlignArgs
	}

	a, err := o.read(args[0])
	if err != nil {
		return err
	}
	b, err := o.read(args[1])
	if err != nil {
		return err
	}

	res := alignOne(fmt.Sprintf("%s ~ %s", args[0], args[1]), a, b, metric, o)
	if res.err != nil {
		if res.table != "" {
			fmt.Fprintln(out, res.table)
		}
		return res.err
	}
	g.logger.Debug("aligned", "n", len(a), "m", len(b), "restriction", res.restriction, "cells", res.cells)
	printResult(out, res, false, o.noColor)

	return nil
}

// read loads one sequence argument.
func (o *alignOptions) read(arg string) ([]float64, error) {
	if o.inline {
		seq, err := seqio.Decode(strings.NewReader(arg), seqio.FormatLines)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", arg, err)
		}
		return seq, nil
	}
	if o.format == "" {
		return seqio.ReadFile(arg)
	}
	f, err := seqio.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(arg)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	seq, err := seqio.Decode(fh, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", arg, err)
	}

	return seq, nil
}

// runPairs aligns every pair document with at most o.workers in flight and
// prints the results in argument order.
func runPairs(ctx context.Context, out io.Writer, g *globals, o *alignOptions, metric dtw.Metric[float64, float64], files []string) error {
	results := make([]alignResult, len(files))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(o.workers, 1))
	for k, file := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := seqio.ReadPairFile(file)
			if err != nil {
				results[k] = alignResult{label: file, err: err}
				return nil
			}
			results[k] = alignOne(file, p.A, p.B, metric, o)
			g.logger.Debug("pair aligned", "file", file, "cells", results[k].cells, "error", results[k].err)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
		}
		printResult(out, res, true, o.noColor)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPairsFailed, failed, len(files))
	}

	return nil
}

// alignOne runs one alignment and renders the optional matrix.
func alignOne(label string, a, b []float64, metric dtw.Metric[float64, float64], o *alignOptions) alignResult {
	res := alignResult{label: label, restriction: o.restriction()}

	opts := dtw.Options{Restriction: res.restriction}
	al, err := dtw.Align(a, b, metric, &opts)
	if err != nil {
		res.err = err
		return res
	}
	res.cells = res.restriction.Count(al.Shape())

	res.distance, res.err = al.Distance()
	if res.err == nil {
		res.path, res.err = al.Path()
	}

	if o.matrix {
		tableOpts := []render.Option{render.WithColor(!o.noColor && !color.NoColor)}
		if res.err == nil {
			tableOpts = append(tableOpts, render.WithPath(res.path))
		}
		// an infeasible matrix is still worth printing
		if t, err := render.Table(al, tableOpts...); err == nil {
			res.table = t
		}
	}

	return res
}

// printResult writes one result. In pair mode errors are printed inline
// instead of being returned.
func printResult(out io.Writer, res alignResult, pairMode, noColor bool) {
	if pairMode {
		paint(noColor, color.Bold).Fprintf(out, "%s\n", res.label)
	}
	if res.err != nil {
		paint(noColor, color.FgRed).Fprintf(out, "  error: %v\n", res.err)
		if res.table != "" {
			fmt.Fprintln(out, res.table)
		}
		return
	}

	fmt.Fprintf(out, "distance:    %s\n", formatFloat(res.distance))
	fmt.Fprintf(out, "restriction: %s\n", res.restriction)
	fmt.Fprintf(out, "cells:       %s\n", humanize.Comma(int64(res.cells)))
	fmt.Fprintf(out, "path:        %s\n", formatPath(res.path))
	if res.table != "" {
		fmt.Fprintln(out, res.table)
	}
}

// paint returns a colour for attrs that stays plain under --no-color,
// leaving the package-wide color.NoColor untouched.
func paint(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	}

	return c
}

// formatPath renders a path as "(0,0) (0,1) ...".
func formatPath(p dtw.Path) string {
	parts := make([]string, len(p))
	for k, c := range p {
		parts[k] = fmt.Sprintf("(%d,%d)", c.I, c.J)
	}

	return strings.Join(parts, " ")
}

// formatFloat trims trailing zeros: 9 rather than 9.000000.
func formatFloat(v float64) string {
	return humanize.Ftoa(v)
}
