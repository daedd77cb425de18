// Package cli is the command-line front end over a schematic.Catalog.
//
// Go types cannot be discovered at run time, so a project builds its own
// binary: register the root types in a catalog and hand it to Execute.
//
//	func main() {
//	    c := schematic.NewCatalog()
//	    schematic.MustRegister[Config](c, "config", "Service Config")
//	    os.Exit(cli.Execute(c))
//	}
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/schematic"
	"github.com/reoring/schematic/i18n"
	"github.com/reoring/schematic/internal/config"
	"github.com/reoring/schematic/internal/logging"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	catalog *schematic.Catalog

	// persistent flags
	configPath string
	verbose    bool
	logFile    string
	lang       string

	cfg     *config.Config
	logger  *zap.Logger
	cleanup func() error
}

// NewRootCommand returns the schematic command tree bound to c.
func NewRootCommand(c *schematic.Catalog) *cobra.Command {
	a := &app{catalog: c, logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "schematic",
		Short: "Derive JSON Schema documents from Go types",
		Long: `schematic derives JSON Schema documents from the types registered in this
binary's catalog and writes them to files or stdout.

Settings come from an optional YAML file (--config), then SCHEMATIC_*
environment variables, then flags.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.logFile, "log-file", "", "also write logs to this file (rotated)")
	pf.StringVar(&a.lang, "lang", "", "language of error messages (en, ja)")

	root.AddCommand(a.listCommand(), a.generateCommand(), a.checkCommand())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.Log.File = a.logFile
	}
	if flags.Changed("lang") {
		cfg.Lang = a.lang
	}
	a.cfg = cfg

	lc := logging.Config{
		Level:      cfg.Log.Level,
		Verbose:    a.verbose,
		FilePath:   cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}
	logger, cleanup, err := logging.New(lc)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger, a.cleanup = logger, cleanup
	i18n.SetLanguage(cfg.Lang)
	a.logger.Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.String("format", cfg.Format),
		zap.String("dialect", cfg.Dialect),
		zap.Int("workers", cfg.Workers))
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}

// Execute runs the command tree with os.Args and returns the process exit
// code. SIGINT and SIGTERM cancel a running generation.
func Execute(c *schematic.Catalog) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	root := NewRootCommand(c)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}
