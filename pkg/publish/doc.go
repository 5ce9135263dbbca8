// Package publish hands rendered documents to byte sinks.
//
// A Sink stores one named blob. Three sinks are provided:
//
//   - WriterSink: writes to any io.Writer (stdout in the CLI)
//   - DirSink: writes <dir>/<name> files
//   - S3Sink: uploads objects with PutObject
//
// A Publisher renders markup.Renderable values with a fixed Formatting and
// puts the result into its sink:
//
//	p := publish.NewPublisher(publish.NewDirSink("dist"),
//	    publish.WithFormat(markup.FormatPretty),
//	    publish.WithLogger(logger),
//	)
//	err := p.Publish(ctx, "index", doc) // dist/index.html
//
// Each Publish call is traced with the global OpenTelemetry tracer provider.
package publish
