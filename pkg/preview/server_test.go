package preview

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/markup/pkg/markup"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPage() *markup.Document {
	body := markup.NewSectionTag(markup.TagBody, markup.Properties{})
	body.PushBack(markup.NewElement("p", markup.Properties{}, "hello", markup.NonSelfClosing))
	html := markup.NewSectionTag(markup.TagHTML, markup.Properties{})
	html.PushBackSection(body)
	return markup.NewDocument(html)
}

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	cfg.Logger = testLogger()
	s := New(cfg)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp, string(body)
}

func TestServer_Pages(t *testing.T) {
	s, ts := newTestServer(t, Config{Format: markup.FormatPretty})
	s.Publish("index", testPage())

	resp, body := get(t, ts.URL+"/pages/index")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if want := testPage().Get(markup.FormatPretty); body != want {
		t.Errorf("got %q, want %q", body, want)
	}

	_, body = get(t, ts.URL+"/pages/index?format=none")
	if body != testPage().String() {
		t.Errorf("format=none got %q", body)
	}

	resp, body = get(t, ts.URL+"/pages/index/source?format=newline")
	if ct := resp.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("source Content-Type = %q", ct)
	}
	if body != testPage().Get(markup.FormatNewline) {
		t.Errorf("source got %q", body)
	}
}

func TestServer_Errors(t *testing.T) {
	s, ts := newTestServer(t, Config{})
	s.Publish("index", testPage())

	tests := []struct {
		path string
		want int
	}{
		{"/pages/missing", http.StatusNotFound},
		{"/pages/index?format=fancy", http.StatusBadRequest},
		{"/ws", http.StatusNotFound},
		{"/metrics", http.StatusNotFound},
	}
	for _, tt := range tests {
		resp, _ := get(t, ts.URL+tt.path)
		if resp.StatusCode != tt.want {
			t.Errorf("GET %s status = %d, want %d", tt.path, resp.StatusCode, tt.want)
		}
	}
}

func TestServer_IndexAndHealth(t *testing.T) {
	s, ts := newTestServer(t, Config{})

	_, body := get(t, ts.URL+"/")
	if !strings.Contains(body, "<p>Nothing published yet.</p>") {
		t.Errorf("empty index = %q", body)
	}

	s.Publish("b", testPage())
	s.Publish("a", testPage())

	_, body = get(t, ts.URL+"/")
	if !strings.HasPrefix(body, "<!DOCTYPE html><html><head><title>markup preview</title>") {
		t.Errorf("index = %q", body)
	}
	a := strings.Index(body, `<a href="/pages/a">a</a>`)
	b := strings.Index(body, `<a href="/pages/b">b</a>`)
	if a < 0 || b < 0 || a > b {
		t.Errorf("index should list pages in order, got %q", body)
	}
	if !strings.Contains(body, `<a href="/pages/a/source">source</a>`) {
		t.Errorf("index missing source link: %q", body)
	}

	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || body != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}

	if !s.Remove("a") || s.Remove("a") {
		t.Error("Remove should report whether the page existed")
	}
	if got := strings.Join(s.Pages(), ","); got != "b" {
		t.Errorf("Pages() = %q", got)
	}
}

func TestServer_Metrics(t *testing.T) {
	s, ts := newTestServer(t, Config{Metrics: true, Namespace: "preview"})
	s.Publish("index", testPage())

	get(t, ts.URL+"/pages/index")
	_, body := get(t, ts.URL+"/metrics")

	for _, want := range []string{
		`preview_http_requests_total{code="200",method="GET",route="/pages/{name}"} 1`,
		`preview_renders_total{document="index",format="none"} 1`,
		`preview_reload_broadcasts_total 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestServer_Reload(t *testing.T) {
	s, ts := newTestServer(t, Config{Reload: true, Metrics: true})
	s.Publish("index", testPage())

	_, body := get(t, ts.URL+"/pages/index")
	if !strings.Contains(body, `<script data-page="index">`) || !strings.HasSuffix(body, "</script></body></html>") {
		t.Errorf("reload script not injected before </body>: %q", body)
	}

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return s.Hub().ClientCount() == 1 })

	s.Publish("index", testPage())

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}

	var msg ReloadMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if msg.Type != ReloadTypePage || msg.Page != "index" {
		t.Errorf("message = %+v", msg)
	}

	s.Remove("index")
	_, data, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if !strings.Contains(string(data), `"type":"removed"`) {
		t.Errorf("message = %s", data)
	}

	conn.Close()
	waitFor(t, func() bool { return s.Hub().ClientCount() == 0 })
}

func TestServer_PublishNil(t *testing.T) {
	s := New(Config{Logger: testLogger()})

	var doc *markup.Document
	tests := []struct {
		name string
		r    markup.Renderable
	}{
		{"nil interface", nil},
		{"nil document", doc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Publish("empty", tt.r)
			if err == nil || !strings.Contains(err.Error(), "P002") {
				t.Errorf("Publish error = %v, want P002", err)
			}
		})
	}
	if len(s.Pages()) != 0 {
		t.Errorf("Pages() = %v, want none", s.Pages())
	}
}

func TestInjectReload(t *testing.T) {
	got := injectReload("<p>x</p>", "a")
	if !strings.HasPrefix(got, `<p>x</p><script data-page="a">`) {
		t.Errorf("got %q", got)
	}
}

func TestServer_ServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	s := New(Config{Logger: testLogger(), Reload: true})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, _ := get(t, "http://"+ln.Addr().String()+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServer_ListenError(t *testing.T) {
	s := New(Config{Logger: testLogger(), Addr: "256.0.0.1:bad"})
	if err := s.ListenAndServe(context.Background()); err == nil || !strings.Contains(err.Error(), "S001") {
		t.Errorf("ListenAndServe error = %v, want S001", err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within 5s")
}
