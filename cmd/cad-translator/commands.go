package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cad-translator/internal/diagnostic"
	"cad-translator/internal/model"
	"cad-translator/internal/modelfile"
	"cad-translator/internal/session"
)

func newExportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <model.yaml>",
		Short: "Export a model file and print the host document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, s, err := a.exportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			a.dumpModel(cmd.ErrOrStderr(), s.Model())

			data, err := doc.Marshal()
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func newRoundtripCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "roundtrip <model.yaml>",
		Short: "Export a model file, import it back and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.exportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			in := a.newSession(doc, nil)
			if err := in.Import(cmd.Context()); err != nil {
				return fmt.Errorf("failed to import %s: %w", doc.Name, err)
			}

			a.dumpModel(cmd.ErrOrStderr(), in.Model())
			report(cmd.ErrOrStderr(), a.log, in.Diagnostics())

			mf, err := modelfile.FromModel(in.Model())
			if err != nil {
				return err
			}

			data, err := modelfile.Marshal(mf)
			if err != nil {
				return fmt.Errorf("failed to marshal model: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <model.yaml>",
		Short: "Export a model file and print its correspondence tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := a.exportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printCorrespondences(cmd.OutOrStdout(), s)

			return nil
		},
	}
}

func printCorrespondences(w io.Writer, s *session.Session) {
	for _, row := range s.Correspondences() {
		fmt.Fprintf(w, "%s %q -> %s\n", row.Feature.Kind(), row.Feature.Label(), row.ID)

		for _, e := range row.Table {
			fmt.Fprintf(w, "  %-12s %v\n", e.Reference, e.ID)
		}

		sketch, ok := row.Feature.(*model.Sketch)
		if !ok {
			continue
		}

		for i, g := range sketch.Geometry {
			fmt.Fprintf(w, "  geometry %d (%s)\n", i, g.Kind())

			for _, ref := range model.References(g.Kind()) {
				// Ellipse sub-parts exist only once exposed.
				if id, err := s.HostID(g, ref); err == nil {
					fmt.Fprintf(w, "    %-10s %v\n", ref, id)
				}
			}
		}

		for _, c := range sketch.Constraints {
			if id, err := s.ConstraintID(c); err == nil {
				fmt.Fprintf(w, "  constraint %s -> %v\n", c.Kind(), id)
			}
		}
	}
}

// report prints non-fatal diagnostics of an import.
func report(w io.Writer, log *zap.Logger, d diagnostic.Diagnostics) {
	for _, info := range d.Infos {
		log.Debug(info.Message, zap.String("code", info.Code), zap.String("feature", info.Feature))
	}

	for _, warning := range d.Warnings {
		log.Warn("import warning", zap.String("code", warning.Code), zap.String("feature", warning.Feature))
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
