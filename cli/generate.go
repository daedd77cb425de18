package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/schematic"
	js "github.com/reoring/schematic/jsonschema"
)

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTITLE\tSOURCE")
			for _, e := range a.catalog.Entries() {
				src := "shape"
				if e.Type != nil {
					src = e.Type.String()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Title, src)
			}
			return tw.Flush()
		},
	}
}

func (a *app) generateCommand() *cobra.Command {
	var (
		outDir, format, dialect string
		indent, workers         int
	)
	cmd := &cobra.Command{
		Use:   "generate [name...]",
		Short: "Generate schema documents",
		Long: `Generates the named schemas, or all registered schemas when no name is
given. With --out-dir each document is written to <name>.schema.json (or
.yaml); otherwise documents are written to stdout in catalog order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("out-dir") {
				cfg.OutDir = outDir
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if flags.Changed("dialect") {
				cfg.Dialect = dialect
			}
			if flags.Changed("indent") {
				cfg.Indent = indent
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			entries, err := a.catalog.Select(args...)
			if err != nil {
				return err
			}
			results, err := schematic.GenerateAll(cmd.Context(), entries,
				schematic.WithLogger(a.logger), schematic.WithWorkers(cfg.Workers))
			if err != nil {
				return err
			}
			opts := js.EncodeOptions{Format: cfg.FormatValue(), Dialect: cfg.DialectValue(), Indent: cfg.Indent}
			if cfg.OutDir == "" {
				return a.writeStream(cmd, results, opts)
			}
			return a.writeFiles(cfg.OutDir, results, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&outDir, "out-dir", "o", "", "directory to write <name>.schema.<ext> files into")
	f.StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	f.StringVar(&dialect, "dialect", "classic", "keyword dialect: classic or 2020")
	f.IntVar(&indent, "indent", 2, "spaces per indentation level (0 for compact JSON)")
	f.IntVar(&workers, "workers", 0, "schemas generated concurrently (0 = one per schema)")
	return cmd
}

func (a *app) writeStream(cmd *cobra.Command, results []schematic.Result, opts js.EncodeOptions) error {
	w := cmd.OutOrStdout()
	for i, r := range results {
		if i > 0 && opts.Format == js.FormatYAML {
			if _, err := fmt.Fprintln(w, "---"); err != nil {
				return err
			}
		}
		if err := js.Encode(w, r.Document, opts); err != nil {
			return fmt.Errorf("%s: %w", r.Entry.Name, err)
		}
	}
	return nil
}

// writeFiles encodes every document before touching the directory so that an
// encoding failure leaves no partial output.
func (a *app) writeFiles(dir string, results []schematic.Result, opts js.EncodeOptions) error {
	bufs := make([][]byte, len(results))
	for i, r := range results {
		var b bytes.Buffer
		if err := js.Encode(&b, r.Document, opts); err != nil {
			return fmt.Errorf("%s: %w", r.Entry.Name, err)
		}
		bufs[i] = b.Bytes()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for i, r := range results {
		path := filepath.Join(dir, r.Entry.Name+".schema"+opts.Format.Ext())
		if err := os.WriteFile(path, bufs[i], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		a.logger.Info("schema written", zap.String("name", r.Entry.Name), zap.String("path", path))
	}
	return nil
}

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [name...]",
		Short: "Generate schemas and compile them with a JSON Schema validator",
		Long: `Generates the named schemas (all when none is given) and compiles each
one as a draft 2020-12 document, reporting unresolved references and invalid
keywords.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.catalog.Select(args...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, e := range entries {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				doc, err := e.Generate(schematic.WithLogger(a.logger))
				if err == nil {
					err = schematic.Check(doc)
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", e.Name, err)
					a.logger.Debug("check failed", zap.String("name", e.Name), zap.Error(err))
					continue
				}
				fmt.Fprintf(out, "ok   %s\n", e.Name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d schemas failed", failed, len(entries))
			}
			return nil
		},
	}
}
