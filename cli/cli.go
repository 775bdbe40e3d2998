// Package cli implements the omapedit command: it loads an ordered map from a
// file, applies one edit and writes the result.
package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgolang/omapedit/omap"
)

type app struct {
	args   Args
	cfg    Config
	logger *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   "omapedit",
		Short: "Edit ordered maps without losing their order",
		Long: `omapedit loads an ordered map written as a literal ({a: 1, 0: "x"}), JSON or
msgpack, applies one positional edit and prints the result.

FILE may be "-" to read from stdin. INSERTION and VALUE arguments are literals:
a map or list literal inserts a block of entries, anything else a single value.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	ProcessArgs(&a.args, root)

	root.AddCommand(
		a.fmtCmd(),
		a.insertAtOffsetCmd(),
		a.insertAtKeyCmd(),
		a.insertAtValueCmd(),
		a.renameCmd(),
		a.removeCmd(),
		a.sortCmd(),
	)
	return root, a
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.args.ConfigPath)
	if err != nil {
		return err
	}
	applyFlags(&cfg, &a.args, cmd)
	if err := checkFormat(cfg.Output); err != nil {
		return err
	}
	if err := checkFormat(a.args.Input); err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		logger, err := newLogger("info", os.Stderr)
		if err != nil {
			return zap.NewNop()
		}
		a.logger = logger
	}
	return a.logger
}

// Execute runs the command line and exits with a non-zero status on failure.
func Execute(version string) {
	root, a := newRoot()
	root.Version = version
	if err := root.Execute(); err != nil {
		a.log().Error("omapedit failed", zap.Error(err))
		os.Exit(1)
	}
}

// edit loads FILE, lets fn change the map and writes the result to stdout, or
// back to FILE with --write.
func (a *app) edit(cmd *cobra.Command, path string, op string, fn func(m *omap.Map[any]) error) error {
	inFormat := a.args.Input
	if inFormat == "" {
		inFormat = formatOf(path)
	}
	m, err := readFile(path, cmd.InOrStdin(), inFormat)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	logger := a.log().With(zap.String("op", op), zap.String("file", path))
	debugDump(logger, "loaded map", m)

	if err := fn(m); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	debugDump(logger, "edited map", m)

	outFormat := a.cfg.Output
	if outFormat == "" {
		outFormat = inFormat
	}
	if !a.args.Write || path == "-" {
		return writeMap(cmd.OutOrStdout(), m, outFormat, a.cfg.Indent)
	}
	var buf bytes.Buffer
	if err := writeMap(&buf, m, outFormat, a.cfg.Indent); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("wrote map", zap.Int("entries", m.Len()))
	return nil
}

// debugDump logs m with a full dump, which is only rendered at debug level.
func debugDump(logger *zap.Logger, msg string, m *omap.Map[any]) {
	if ce := logger.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(zap.Int("entries", m.Len()), zap.String("dump", m.GoString()))
	}
}
