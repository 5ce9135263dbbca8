package preview

import (
	"context"
	"html"
	"log/slog"
	"net"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/markup"
	"github.com/vango-dev/markup/pkg/middleware"
)

// Config configures a preview Server.
type Config struct {
	// Addr is the listen address (e.g., "localhost:3000").
	Addr string

	// Format is the default formatting for served pages.
	Format markup.Formatting

	// Reload appends the live-reload script to served pages.
	Reload bool

	// Metrics exposes /metrics and records request metrics.
	Metrics bool

	// Namespace prefixes metric names (default: "markup").
	Namespace string

	// Registry receives the metrics. Default: a fresh registry per Server.
	Registry *prometheus.Registry

	// Logger is used for server events. Default: slog.Default().
	Logger *slog.Logger

	// ShutdownTimeout bounds graceful shutdown (default: 5s).
	ShutdownTimeout time.Duration
}

// page holds one published document rendered in every formatting.
type page struct {
	renders   map[markup.Formatting]string
	updatedAt time.Time
}

// Server serves published documents over HTTP and notifies open browser
// tabs when a document changes.
type Server struct {
	config  Config
	logger  *slog.Logger
	hub     *ReloadHub
	metrics *middleware.Metrics

	mu    sync.RWMutex
	pages map[string]page
}

var formats = []markup.Formatting{markup.FormatNone, markup.FormatPretty, markup.FormatNewline}

// New creates a preview server.
func New(config Config) *Server {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 5 * time.Second
	}
	if config.Namespace == "" {
		config.Namespace = "markup"
	}

	s := &Server{
		config: config,
		logger: config.Logger,
		hub:    NewReloadHub(),
		pages:  make(map[string]page),
	}

	if config.Metrics {
		if s.config.Registry == nil {
			s.config.Registry = prometheus.NewRegistry()
		}
		s.metrics = middleware.NewMetrics(
			middleware.WithNamespace(config.Namespace),
			middleware.WithRegistry(s.config.Registry),
		)
		s.hub.onChange = s.metrics.SetReloadClients
	}

	return s
}

// Publish renders r in every formatting, stores it under name and notifies
// reload clients watching that page.
func (s *Server) Publish(name string, r markup.Renderable) error {
	if isNil(r) {
		return errors.New("P002").WithDetailf("document %q is nil", name)
	}

	p := page{renders: make(map[markup.Formatting]string, len(formats)), updatedAt: time.Now()}
	for _, f := range formats {
		p.renders[f] = r.Render(f, 0)
	}

	s.mu.Lock()
	s.pages[name] = p
	s.mu.Unlock()

	sent := s.hub.NotifyPage(name)
	if s.metrics != nil {
		s.metrics.RecordBroadcast()
	}
	s.logger.Info("page published", "name", name, "bytes", len(p.renders[s.config.Format]), "clients", sent)
	return nil
}

// Remove deletes a page. It reports whether the page existed.
func (s *Server) Remove(name string) bool {
	s.mu.Lock()
	_, ok := s.pages[name]
	delete(s.pages, name)
	s.mu.Unlock()

	if ok {
		s.hub.NotifyRemoved(name)
		s.logger.Info("page removed", "name", name)
	}
	return ok
}

// Pages returns the published page names in sorted order.
func (s *Server) Pages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.pages))
	for name := range s.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hub returns the server's reload hub.
func (s *Server) Hub() *ReloadHub { return s.hub }

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.OpenTelemetry(
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz" && r.URL.Path != "/ws"
		}),
	))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.Get("/", s.handleIndex)
	r.Get("/pages/{name}", s.handlePage)
	r.Get("/pages/{name}/source", s.handleSource)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if s.config.Reload {
		r.Handle("/ws", s.hub)
	}
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	}

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return errors.New("S001").WithDetail(s.config.Addr).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("preview server running", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			s.hub.Close()
			return errors.New("S001").Wrap(err)
		}
		return nil
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.New("S001").WithDetail("shutdown").Wrap(err)
	}
	s.logger.Info("preview server stopped")
	return <-errCh
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (string, markup.Formatting, string, bool) {
	name := chi.URLParam(r, "name")

	format := s.config.Format
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := markup.ParseFormatting(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return "", 0, "", false
		}
		format = f
	}

	s.mu.RLock()
	p, ok := s.pages[name]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, errors.New("P002").WithDetailf("no page named %q", name).Error(), http.StatusNotFound)
		return "", 0, "", false
	}

	body := p.renders[format]
	if s.metrics != nil {
		s.metrics.RecordRender(name, format.String(), len(body))
	}
	return name, format, body, true
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name, _, body, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if s.config.Reload {
		body = injectReload(body, name)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(body))
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	_, _, body, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(body))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc := s.indexDocument()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(doc.Get(s.config.Format)))
}

// indexDocument lists the published pages.
func (s *Server) indexDocument() *markup.Document {
	none := markup.Properties{}

	head := markup.NewSectionTag(markup.TagHead, none)
	head.PushBack(markup.NewElement("title", none, "markup preview", markup.NonSelfClosing))
	head.PushBack(markup.NewElement("meta", markup.NewProperties(markup.NewProperty("charset", "utf-8")), "", markup.NonClosed))

	list := markup.NewSectionTag(markup.TagUl, none)
	for _, name := range s.Pages() {
		item := markup.NewSectionTag(markup.TagLi, none)
		item.PushBack(markup.NewElement("a",
			markup.NewProperties(markup.NewProperty("href", "/pages/"+html.EscapeString(name))),
			html.EscapeString(name), markup.NonSelfClosing))
		item.PushBack(markup.NewElement("a",
			markup.NewProperties(markup.NewProperty("href", "/pages/"+html.EscapeString(name)+"/source")),
			"source", markup.NonSelfClosing))
		list.PushBackSection(item)
	}

	body := markup.NewSectionTag(markup.TagBody, none)
	body.PushBack(markup.NewElement("h1", none, "Pages", markup.NonSelfClosing))
	if list.Size() == 0 {
		body.PushBack(markup.NewElement("p", none, "Nothing published yet.", markup.NonSelfClosing))
	} else {
		body.PushBackSection(list)
	}

	root := markup.NewSectionTag(markup.TagHTML, none)
	root.PushBackSection(head)
	root.PushBackSection(body)
	return markup.NewDocument(root)
}

// injectReload places the reload script before </body>, or at the end when
// the page has no body.
func injectReload(body, name string) string {
	script := strings.Replace(ReloadScript, "<script>", `<script data-page="`+html.EscapeString(name)+`">`, 1)
	if i := strings.LastIndex(body, "</body>"); i >= 0 {
		return body[:i] + script + body[i:]
	}
	return body + script
}

// isNil reports whether r is nil or a nil pointer.
func isNil(r markup.Renderable) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
