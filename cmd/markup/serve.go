package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/samples"
	"github.com/vango-dev/markup/pkg/preview"
)

func serveCmd() *cobra.Command {
	var (
		host     string
		port     int
		format   string
		noReload bool
		noWatch  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sample documents on a live preview server",
		Long: `Start the preview server with every sample document published.

Pages are served at /pages/<name>; add ?format=none|pretty|newline
to override the rendering. /metrics exposes Prometheus metrics
unless metrics.enabled is false in markup.json.

Examples:
  markup serve
  markup serve --port 8080
  markup serve --host 0.0.0.0 --no-reload

Editing markup.json while the server runs republishes every
sample with the new doctype.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("host") {
				cfg.Serve.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Serve.Port = port
			}
			if noReload {
				cfg.Serve.Reload = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			f, err := resolveFormat(cfg, format)
			if err != nil {
				return err
			}

			logger := newLogger(cmd)
			server := preview.New(preview.Config{
				Addr:      cfg.ServeAddress(),
				Format:    f,
				Reload:    cfg.Serve.Reload,
				Metrics:   cfg.Metrics.Enabled,
				Namespace: cfg.Metrics.Namespace,
				Logger:    logger,
			})
			if err := publishSamples(server, cfg.Render.Doctype); err != nil {
				return err
			}

			if !noWatch {
				// Republishing pushes a reload to every open tab.
				watcher := preview.NewWatcher(preview.DefaultWatchInterval, func(path string) {
					next, err := loadConfig()
					if err != nil {
						logger.Warn("config reload failed", "path", path, "error", err)
						return
					}
					logger.Info("config changed", "path", path)
					if err := publishSamples(server, next.Render.Doctype); err != nil {
						logger.Warn("republish failed", "error", err)
					}
				}, cfg.Path())
				go watcher.Run(cmd.Context())
			}

			w := cmd.OutOrStdout()
			success(w, "Serving %d pages", len(server.Pages()))
			info(w, "%s", cfg.ServeURL())
			if cfg.Metrics.Enabled {
				info(w, "%s/metrics", cfg.ServeURL())
			}

			return server.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Host to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Default formatting: none, pretty or newline")
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "Disable live reload")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not republish when markup.json changes")

	return cmd
}

// publishSamples builds every sample with doctype and publishes it.
func publishSamples(server *preview.Server, doctype string) error {
	for _, s := range samples.All() {
		doc := s.Build()
		doc.SetDoctype(doctype)
		if err := server.Publish(s.Name, doc); err != nil {
			return err
		}
	}
	return nil
}
