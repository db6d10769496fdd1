package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukaji3/chartly-go/pkg/chartly"
	"github.com/ukaji3/chartly-go/pkg/chartly/codec"
	"github.com/ukaji3/chartly-go/pkg/chartly/editor"
	"github.com/ukaji3/chartly-go/pkg/chartly/export"
	"github.com/ukaji3/chartly-go/pkg/chartly/models"
	"github.com/ukaji3/chartly-go/pkg/chartly/output"
	"github.com/ukaji3/chartly-go/pkg/chartly/sample"
	"github.com/ukaji3/chartly-go/pkg/chartly/server"
	"github.com/ukaji3/chartly-go/pkg/chartly/settings"
)

// outputFlags are shared by the commands producing a chart.
type outputFlags struct {
	kind   string
	format string
	title  string
	out    string
	save   bool
	pretty bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "kind", "k", "", "chart kind, see 'chartly kinds'")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: png, html, json, csv or xlsx (default from config)")
	cmd.Flags().StringVar(&f.title, "title", "", "chart title")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "export into DIR/Pictures/Chartly or DIR/Documents/Chartly instead of stdout")
	cmd.Flags().BoolVar(&f.save, "save", false, "export below export.base_dir instead of stdout")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "pretty-print JSON output")
	_ = cmd.MarkFlagRequired("kind")
}

func (a *app) options(f *outputFlags) (models.Kind, chartly.Options, error) {
	kind, ok := models.ParseKind(f.kind)
	if !ok {
		return "", chartly.Options{}, fmt.Errorf("unknown chart kind %q", f.kind)
	}
	name := f.format
	if name == "" {
		name = a.conf.Render.Format
	}
	format := chartly.FormatPNG
	if name != "" {
		var err error
		if format, err = chartly.ParseFormat(name); err != nil {
			return "", chartly.Options{}, err
		}
	}
	return kind, chartly.Options{
		Format: format,
		Width:  a.conf.Render.Width,
		Height: a.conf.Render.Height,
		Title:  f.title,
		Pretty: f.pretty,
	}, nil
}

// exporter returns nil when output goes to stdout.
func (a *app) exporter(f *outputFlags) *export.Exporter {
	switch {
	case f.out != "":
		return export.New(f.out, a.logger)
	case f.save:
		return export.New(a.conf.Export.BaseDir, a.logger)
	}
	return nil
}

// notifier routes editor notices to the log.
func (a *app) notifier() editor.Notifier {
	return editor.NotifierFunc(func(msg string) {
		a.logger.Info().Str("notice", msg).Msg("editor")
	})
}

// emit writes rows to stdout or hands them to an editor screen for export.
func (a *app) emit(cmd *cobra.Command, f *outputFlags, kind models.Kind, rows []models.Row) error {
	_, opts, err := a.options(&outputFlags{kind: string(kind), format: f.format, title: f.title, pretty: f.pretty})
	if err != nil {
		return err
	}
	exp := a.exporter(f)
	if exp == nil {
		var buf bytes.Buffer
		if err := chartly.Render(&buf, kind, rows, opts); err != nil {
			return err
		}
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	screen, err := editor.New(kind, a.notifier())
	if err != nil {
		return err
	}
	screen.Load(rows)

	var path string
	switch opts.Format {
	case chartly.FormatPNG:
		path, err = screen.ExportChart(func(d *models.ChartData) (string, error) { return exp.PNG(d, opts.RenderOptions()) })
	case chartly.FormatHTML:
		path, err = screen.ExportChart(func(d *models.ChartData) (string, error) { return exp.HTML(d, opts.RenderOptions()) })
	case chartly.FormatJSON:
		path, err = screen.ExportChart(func(d *models.ChartData) (string, error) {
			if opts.Title != "" {
				d.Title = opts.Title
			}
			return exp.JSON(d, opts.Pretty)
		})
	case chartly.FormatCSV:
		path, err = screen.ExportRows(exp.CSV)
	case chartly.FormatXLSX:
		path, err = screen.ExportRows(func(s models.Schema, r []models.Row) (string, error) {
			return exp.Workbook(s, r, codec.WorkbookOptions{Title: opts.Title})
		})
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, string, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), "stdin", nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", chartly.ErrFileNotFound, path)
		}
		return nil, "", err
	}
	return f, filepath.Base(path), nil
}

func (a *app) readRows(cmd *cobra.Command, path string, kind models.Kind) ([]models.Row, error) {
	in, source, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	res, err := chartly.ReadCSV(in, source, kind)
	if err != nil {
		return nil, err
	}
	if res.Skipped > 0 {
		a.logger.Warn().Int("skipped", res.Skipped).Str("source", source).Msg("skipped lines with too few columns")
	}
	return res.Rows, nil
}

func (a *app) renderCmd() *cobra.Command {
	var (
		flags outputFlags
		input string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render CSV rows as a chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, _, err := a.options(&flags)
			if err != nil {
				return err
			}
			rows, err := a.readRows(cmd, input, kind)
			if err != nil {
				return err
			}
			return a.emit(cmd, &flags, kind, rows)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "-", "CSV file, - for stdin")
	return cmd
}

func (a *app) convertCmd() *cobra.Command {
	var from, to, input string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Carry CSV rows over to another chart kind",
		Long: `convert moves rows between chart kinds the way switching screens does:
rows that do not split into the destination columns are dropped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, ok := models.ParseKind(from)
			if !ok {
				return fmt.Errorf("unknown chart kind %q", from)
			}
			dst, ok := models.ParseKind(to)
			if !ok {
				return fmt.Errorf("unknown chart kind %q", to)
			}
			in, source, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer in.Close()

			shell, err := editor.NewShell(src, a.notifier())
			if err != nil {
				return err
			}
			if _, err := shell.Current().ImportCSV(in); err != nil {
				return err
			}
			read := shell.Current().Len()
			if read == 0 {
				return chartly.NewImportError(source, 0, chartly.ErrNoValidData)
			}
			screen, err := shell.Navigate(dst)
			if err != nil {
				return err
			}
			if dropped := read - screen.Len(); dropped > 0 {
				a.logger.Warn().Int("dropped", dropped).Msg("rows did not fit the destination kind")
			}
			return screen.ExportCSV(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "source chart kind")
	cmd.Flags().StringVar(&to, "to", "", "destination chart kind")
	cmd.Flags().StringVarP(&input, "input", "i", "-", "CSV file, - for stdin")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func (a *app) sampleCmd() *cobra.Command {
	var (
		flags outputFlags
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Render a chart from random preview rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, _, err := a.options(&flags)
			if err != nil {
				return err
			}
			var rng *rand.Rand
			if cmd.Flags().Changed("seed") {
				rng = rand.New(rand.NewPCG(seed, seed))
			}
			rows, err := sample.Rows(kind, rng)
			if err != nil {
				return err
			}
			return a.emit(cmd, &flags, kind, rows)
		},
	}
	flags.register(cmd)
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible rows")
	return cmd
}

func (a *app) xlsxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Move chart rows in and out of Excel workbooks",
	}

	var (
		kind, sheet string
		asCSV       bool
		pretty      bool
	)
	importCmd := &cobra.Command{
		Use:   "import <book.xlsx>",
		Short: "Read chart rows from a workbook as JSON or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := codec.ReadOptions{SheetName: sheet}
			if kind != "" {
				k, ok := models.ParseKind(kind)
				if !ok {
					return fmt.Errorf("unknown chart kind %q", kind)
				}
				opts.Kind = k
			}
			book, err := chartly.LoadWorkbook(args[0], opts)
			if err != nil {
				return err
			}
			if asCSV {
				return codec.EncodeCSV(cmd.OutOrStdout(), models.MustSchema(book.Kind), book.Rows)
			}
			out, err := output.WorkbookToJSON(book, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	importCmd.Flags().StringVarP(&kind, "kind", "k", "", "force the chart kind instead of inferring it")
	importCmd.Flags().StringVar(&sheet, "sheet", "", "sheet to read")
	importCmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV rows instead of JSON")
	importCmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print JSON output")

	var (
		flags outputFlags
		input string
	)
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write CSV rows and a native chart to a workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.format = string(chartly.FormatXLSX)
			kind, _, err := a.options(&flags)
			if err != nil {
				return err
			}
			in, _, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer in.Close()
			rows, _, err := codec.DecodeCSV(in, models.MustSchema(kind))
			if err != nil {
				return err
			}
			return a.emit(cmd, &flags, kind, rows)
		},
	}
	exportCmd.Flags().StringVarP(&flags.kind, "kind", "k", "", "chart kind")
	exportCmd.Flags().StringVar(&flags.title, "title", "", "chart title")
	exportCmd.Flags().StringVarP(&flags.out, "out", "o", "", "export into DIR/Documents/Chartly instead of stdout")
	exportCmd.Flags().BoolVar(&flags.save, "save", false, "export below export.base_dir instead of stdout")
	exportCmd.Flags().StringVarP(&input, "input", "i", "-", "CSV file, - for stdin")
	_ = exportCmd.MarkFlagRequired("kind")

	cmd.AddCommand(importCmd, exportCmd)
	return cmd
}

func (a *app) kindsCmd() *cobra.Command {
	var asJSON, pretty bool
	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List chart kinds and their columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				out, err := output.KindsToJSON(pretty)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			}
			for _, k := range models.AllKinds {
				schema := models.MustSchema(k)
				names := make([]string, len(schema.Columns))
				for i, col := range schema.Columns {
					names[i] = col.Name
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-15s %s\n", k, strings.Join(names, ",")); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print schemas as JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print JSON output")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(a.conf, a.logger).Run(ctx)
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := settings.DumpTOML(a.conf)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
