package publish

import (
	"context"
	stderrors "errors"
	"log/slog"
	"mime"
	"reflect"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/markup"
)

const tracerName = "github.com/vango-dev/markup/pkg/publish"

// DefaultContentType is used when the extension has no registered MIME type.
const DefaultContentType = "text/plain; charset=utf-8"

// Publisher renders documents and stores them in a Sink.
type Publisher struct {
	sink      Sink
	format    markup.Formatting
	extension string
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithFormat sets the formatting used to render documents.
func WithFormat(f markup.Formatting) Option {
	return func(p *Publisher) {
		p.format = f
	}
}

// WithExtension sets the suffix appended to each document name.
func WithExtension(ext string) Option {
	return func(p *Publisher) {
		p.extension = ext
	}
}

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTracer overrides the tracer resolved from the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Publisher) {
		p.tracer = tracer
	}
}

// NewPublisher creates a Publisher writing to sink. The defaults are no
// formatting and a ".html" extension.
func NewPublisher(sink Sink, opts ...Option) *Publisher {
	p := &Publisher{
		sink:      sink,
		format:    markup.FormatNone,
		extension: ".html",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.tracer == nil {
		p.tracer = otel.Tracer(tracerName)
	}
	return p
}

// ContentType returns the MIME type blobs are stored with.
func (p *Publisher) ContentType() string {
	if ct := mime.TypeByExtension(p.extension); ct != "" {
		return ct
	}
	return DefaultContentType
}

// Publish renders r and stores it as name plus the configured extension.
func (p *Publisher) Publish(ctx context.Context, name string, r markup.Renderable) error {
	if isNil(r) {
		return errors.New("P002").WithDetailf("document %q is nil", name)
	}

	key := name + p.extension
	ctx, span := p.tracer.Start(ctx, "publish "+name,
		trace.WithAttributes(
			attribute.String("markup.document", name),
			attribute.String("markup.format", p.format.String()),
		),
	)
	defer span.End()

	data := []byte(r.Render(p.format, 0))
	span.SetAttributes(attribute.Int("markup.bytes", len(data)))

	if err := p.sink.Put(ctx, key, data, p.ContentType()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Error("publish failed", "name", key, "sink", p.sink, "error", err)
		return err
	}

	span.SetStatus(codes.Ok, "")
	p.logger.Info("published", "name", key, "bytes", len(data), "sink", p.sink)
	return nil
}

// PublishAll publishes every document in name order. A failure does not
// stop the remaining documents; all failures are joined into the result.
func (p *Publisher) PublishAll(ctx context.Context, docs map[string]markup.Renderable) error {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := p.Publish(ctx, name, docs[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// isNil reports whether r is nil or a nil pointer.
func isNil(r markup.Renderable) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
