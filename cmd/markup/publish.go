package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/config"
	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/internal/samples"
	"github.com/vango-dev/markup/pkg/markup"
	"github.com/vango-dev/markup/pkg/publish"
)

type publishOptions struct {
	dir    string
	bucket string
	prefix string
	format string
}

func publishCmd() *cobra.Command {
	var opts publishOptions

	cmd := &cobra.Command{
		Use:   "publish [sample...]",
		Short: "Render samples to a directory or an S3 bucket",
		Long: `Render sample documents and store each as <name><extension>.

Without arguments every sample is published. The destination is
--bucket, then --dir, then publish.bucket from markup.json, and
finally output.dir.

S3 credentials come from the standard AWS chain: environment
variables, AWS_PROFILE and ~/.aws files, SSO or an instance role.

Examples:
  markup publish
  markup publish search --dir site
  markup publish --bucket my-site --prefix docs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Output directory")
	cmd.Flags().StringVarP(&opts.bucket, "bucket", "b", "", "S3 bucket")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "S3 key prefix")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Formatting: none, pretty or newline")

	return cmd
}

func runPublish(cmd *cobra.Command, names []string, opts publishOptions) error {
	if opts.dir != "" && opts.bucket != "" {
		return errors.New("X001").
			WithDetail("--dir and --bucket are mutually exclusive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := resolveFormat(cfg, opts.format)
	if err != nil {
		return err
	}

	docs, err := selectSamples(names, cfg.Render.Doctype)
	if err != nil {
		return err
	}

	sink, err := newSink(cmd.Context(), cfg, opts)
	if err != nil {
		return err
	}

	p := publish.NewPublisher(sink,
		publish.WithFormat(f),
		publish.WithExtension(cfg.Output.Extension),
		publish.WithLogger(newLogger(cmd)),
	)
	if err := p.PublishAll(cmd.Context(), docs); err != nil {
		return err
	}

	success(cmd.OutOrStdout(), "Published %d documents to %s", len(docs), sink)
	return nil
}

// newSink picks the destination: --bucket, --dir, publish.bucket, then
// output.dir.
func newSink(ctx context.Context, cfg *config.Config, opts publishOptions) (publish.Sink, error) {
	bucket := opts.bucket
	if bucket == "" && opts.dir == "" {
		bucket = cfg.Publish.Bucket
	}
	if bucket != "" {
		prefix := cfg.Publish.Prefix
		if opts.prefix != "" {
			prefix = opts.prefix
		}
		client, err := publish.NewS3Client(ctx, cfg.Publish.Region, cfg.Publish.Endpoint)
		if err != nil {
			return nil, err
		}
		return publish.NewS3Sink(client, bucket, prefix), nil
	}
	if opts.dir != "" {
		return publish.NewDirSink(opts.dir), nil
	}
	return publish.NewDirSink(cfg.OutputPath()), nil
}

// selectSamples builds the named samples, or every sample when names is
// empty.
func selectSamples(names []string, doctype string) (map[string]markup.Renderable, error) {
	if len(names) == 0 {
		names = samples.Names()
	}

	docs := make(map[string]markup.Renderable, len(names))
	for _, name := range names {
		s, err := samples.Lookup(name)
		if err != nil {
			return nil, err
		}
		doc := s.Build()
		doc.SetDoctype(doctype)
		docs[name] = doc
	}
	return docs, nil
}
