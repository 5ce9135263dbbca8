package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/internal/samples"
	"github.com/vango-dev/markup/pkg/publish"
)

func renderCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "render <sample>",
		Short: "Render a sample document",
		Long: `Render a sample document to stdout or a file.

The formatting defaults to render.format from markup.json.

Examples:
  markup render hello-world
  markup render search --format none
  markup render nested -o nested.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], format, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Formatting: none, pretty or newline")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, name, format, out string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := resolveFormat(cfg, format)
	if err != nil {
		return err
	}

	sample, err := samples.Lookup(name)
	if err != nil {
		return err
	}
	doc := sample.Build()
	doc.SetDoctype(cfg.Render.Doctype)

	if out != "" {
		if err := os.WriteFile(out, []byte(doc.Get(f)), 0644); err != nil {
			return errors.New("P001").WithDetail(out).Wrap(err)
		}
		success(cmd.ErrOrStderr(), "Wrote %s to %s", name, out)
		return nil
	}

	p := publish.NewPublisher(
		publish.NewWriterSink(cmd.OutOrStdout()),
		publish.WithFormat(f),
		publish.WithLogger(newLogger(cmd)),
	)
	return p.Publish(cmd.Context(), name, doc)
}
