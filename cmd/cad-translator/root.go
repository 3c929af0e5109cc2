package main

import (
	"context"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"cad-translator/internal/host"
	"cad-translator/internal/model"
	"cad-translator/internal/modelfile"
	"cad-translator/internal/session"
)

var version = "dev"

// app holds the state shared by every command of one invocation.
type app struct {
	v *viper.Viper

	cfgFile string
	verbose bool
	trace   bool
	dump    bool

	cfg      session.Config
	log      *zap.Logger
	tracer   trace.Tracer
	shutdown func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:          "cad-translator",
		Short:        "Translate CAD models between the internal model and a host document",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: ./cad-translator.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "development logging at debug level")
	flags.BoolVar(&a.trace, "trace", false, "print trace spans to stderr")
	flags.BoolVar(&a.dump, "dump", false, "dump the translated model to stderr")
	flags.Bool("strict", true, "fail on host constraints without an internal counterpart")
	flags.Bool("expose-internal", true, "expose ellipse axes and foci on export")
	flags.String("document-name", "", "name of the host document")

	bindFlags(a.v, flags)

	root.AddCommand(newExportCmd(a), newRoundtripCmd(a), newInspectCmd(a))

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}

	a.cfg = cfg

	a.log, err = newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	a.tracer, a.shutdown, err = newTracer(a.trace, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}

	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("loaded config", zap.String("path", used))
	}

	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			return fmt.Errorf("failed to flush traces: %w", err)
		}
	}

	if a.log != nil {
		// Sync on a terminal stderr returns EINVAL; nothing to report.
		_ = a.log.Sync()
	}

	return nil
}

// newSession builds a session over doc with the invocation's config,
// logger and tracer.
func (a *app) newSession(doc host.Document, m *model.Model) *session.Session {
	return session.New(doc, m,
		session.WithConfig(a.cfg),
		session.WithLogger(a.log),
		session.WithTracer(a.tracer))
}

// exportFile loads, builds and exports a model file into a fresh document.
func (a *app) exportFile(ctx context.Context, path string) (*host.MemoryDocument, *session.Session, error) {
	mf, err := modelfile.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	m, err := modelfile.Build(mf)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid model file %s: %w", path, err)
	}

	doc := host.NewMemoryDocument(a.cfg.DocumentName)
	s := a.newSession(doc, m)

	if err := s.Export(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to export %s: %w", path, err)
	}

	return doc, s, nil
}

func (a *app) dumpModel(w io.Writer, m *model.Model) {
	if a.dump {
		spew.Fdump(w, m.Features())
	}
}
