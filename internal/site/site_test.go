package site

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/folio/internal/bootstrap"
	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/fetch"
	"github.com/ziadkadry99/folio/internal/logger"
	"github.com/ziadkadry99/folio/internal/reveal"
)

const (
	indexShell = `<!DOCTYPE html><html><head><title>Home</title></head><body>
<h1 id="hero-text" data-animate>loading</h1>
</body></html>`

	notesShell = `<!DOCTYPE html><html><head><title>Notes</title></head><body>
<p class="scholar-page-subtitle">Notes</p>
<ul id="incoming-notes-list"></ul>
<div id="notes-sections"></div>
</body></html>`

	researchShell = `<!DOCTYPE html><html><head><title>Research</title></head><body>
<div id="scholar-sections"></div>
<p id="scholar-page-footnote"></p>
</body></html>`

	notesJSON = `{"incomingNotes":["Linear algebra"],"sections":[{"title":"Math","items":[{"subject":"Calculus","language":"EN","file":"notes/calc.pdf"}]}]}`

	researchJSON = `{"pageFootnote":"* equal contribution","sections":[{"title":"Papers","entries":[{"title":"Paper A","authors":"A, B","bullets":["one"]}]}]}`
)

// writeSite lays out a site whose home data is missing.
func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":                  indexShell,
		"notes.html":                  notesShell,
		"research.html":               researchShell,
		"data/notes/sections.json":    notesJSON,
		"data/research/sections.json": researchJSON,
		"style.css":                   "body{}",
		"assets/js/app.js":            "console.log(1)",
		"README.md":                   "# readme",
	}
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func testConfig(siteDir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.SiteDir = siteDir
	cfg.DataSource = siteDir
	return cfg
}

func testRunner(t *testing.T, cfg *config.Config) *bootstrap.Runner {
	t.Helper()
	f, err := fetch.New(cfg.DataSource)
	if err != nil {
		t.Fatalf("fetch.New: %v", err)
	}
	return &bootstrap.Runner{
		Fetcher:      f,
		Capabilities: reveal.Capabilities{IntersectionObserver: cfg.Reveal.Observer},
		Threshold:    cfg.Reveal.Threshold,
		ScriptPath:   cfg.Reveal.Script,
		Logger:       logger.Nop(),
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestPages(t *testing.T) {
	pages := Pages(config.DefaultConfig())
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	wantShells := []string{"index.html", "notes.html", "research.html"}
	wantMounts := []string{bootstrap.HomeMount, bootstrap.NotesMount, bootstrap.ResearchMount}
	for i, p := range pages {
		if p.Shell != wantShells[i] {
			t.Errorf("page %d shell = %q, want %q", i, p.Shell, wantShells[i])
		}
		if p.Page.PrimaryMount != wantMounts[i] {
			t.Errorf("page %d mount = %q, want %q", i, p.Page.PrimaryMount, wantMounts[i])
		}
	}
	if len(pages[0].Page.Resources) != 6 {
		t.Errorf("home should fetch 6 resources, got %v", pages[0].Page.Resources)
	}
}

func TestGenerate(t *testing.T) {
	siteDir := writeSite(t)
	outDir := filepath.Join(t.TempDir(), "public")
	cfg := testConfig(siteDir)

	gen := NewSiteGenerator(siteDir, outDir, Pages(cfg), testRunner(t, cfg))
	gen.Static = cfg.Static
	gen.Exclude = cfg.Exclude

	manifest, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	notes := readFile(t, filepath.Join(outDir, "notes.html"))
	for _, want := range []string{"<li>Linear algebra</li>", "Calculus", `download="calc.pdf"`, `<script src="reveal.js" defer="">`} {
		if !strings.Contains(notes, want) {
			t.Errorf("notes.html missing %q", want)
		}
	}

	research := readFile(t, filepath.Join(outDir, "research.html"))
	if !strings.Contains(research, "Paper A") || !strings.Contains(research, "* equal contribution") {
		t.Errorf("research.html not rendered:\n%s", research)
	}

	index := readFile(t, filepath.Join(outDir, "index.html"))
	if !strings.Contains(index, "Content failed to load") {
		t.Errorf("index.html should carry the fallback:\n%s", index)
	}
	if !strings.Contains(index, `class="visible"`) {
		t.Errorf("fallback page should reveal marked elements:\n%s", index)
	}

	script := readFile(t, filepath.Join(outDir, "reveal.js"))
	if !strings.Contains(script, "IntersectionObserver") {
		t.Error("reveal.js not written")
	}

	if _, err := os.Stat(filepath.Join(outDir, "README.md")); !os.IsNotExist(err) {
		t.Error("excluded README.md was copied")
	}
	if _, err := os.Stat(filepath.Join(outDir, "assets", "js", "app.js")); err != nil {
		t.Errorf("assets not copied: %v", err)
	}

	if manifest.BuildID == "" {
		t.Error("manifest has no build id")
	}
	failed := manifest.Failed()
	if len(failed) != 1 || failed[0].Name != "home" {
		t.Errorf("expected only home to fail, got %+v", failed)
	}

	var onDisk Manifest
	if err := json.Unmarshal([]byte(readFile(t, filepath.Join(outDir, ManifestFile))), &onDisk); err != nil {
		t.Fatalf("manifest on disk: %v", err)
	}
	if onDisk.BuildID != manifest.BuildID || len(onDisk.Pages) != 3 {
		t.Errorf("manifest on disk = %+v", onDisk)
	}
}

func TestGenerate_NestedShellNamesCopied(t *testing.T) {
	siteDir := writeSite(t)
	demo := filepath.Join(siteDir, "assets", "demo", "index.html")
	if err := os.MkdirAll(filepath.Dir(demo), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(demo, []byte("<p>demo</p>"), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := t.TempDir()
	cfg := testConfig(siteDir)

	gen := NewSiteGenerator(siteDir, outDir, Pages(cfg), testRunner(t, cfg))
	gen.Static = []string{"assets/**", "*.html"}
	gen.Exclude = cfg.Exclude
	manifest, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got := readFile(t, filepath.Join(outDir, "assets", "demo", "index.html")); got != "<p>demo</p>" {
		t.Errorf("nested index.html = %q, want copied verbatim", got)
	}
	for _, a := range manifest.Assets {
		if a == "index.html" || a == "notes.html" || a == "research.html" {
			t.Errorf("shell %s copied as a static asset", a)
		}
	}
	if !strings.Contains(readFile(t, filepath.Join(outDir, "notes.html")), "Calculus") {
		t.Error("notes.html should be the rendered page, not the raw shell")
	}
}

func TestGenerate_NoObserver(t *testing.T) {
	siteDir := writeSite(t)
	outDir := t.TempDir()
	cfg := testConfig(siteDir)
	cfg.Reveal.Observer = false

	gen := NewSiteGenerator(siteDir, outDir, Pages(cfg), testRunner(t, cfg))
	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "reveal.js")); !os.IsNotExist(err) {
		t.Error("reveal.js should not be written without the observer")
	}
	notes := readFile(t, filepath.Join(outDir, "notes.html"))
	if strings.Contains(notes, "reveal.js") {
		t.Error("notes.html should not link the reveal script")
	}
	if !strings.Contains(notes, `class="note-section visible"`) {
		t.Errorf("sections should be revealed at build time:\n%s", notes)
	}
}

func TestGenerate_MissingShell(t *testing.T) {
	siteDir := writeSite(t)
	if err := os.Remove(filepath.Join(siteDir, "notes.html")); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(siteDir)

	gen := NewSiteGenerator(siteDir, t.TempDir(), Pages(cfg), testRunner(t, cfg))
	if _, err := gen.Generate(context.Background()); err == nil {
		t.Fatal("expected error for missing shell")
	}
}

func TestGenerate_NoPages(t *testing.T) {
	gen := NewSiteGenerator(t.TempDir(), t.TempDir(), nil, &bootstrap.Runner{})
	if _, err := gen.Generate(context.Background()); err == nil {
		t.Fatal("expected error with no pages")
	}
}

func TestCopyStatic(t *testing.T) {
	siteDir := writeSite(t)
	outDir := t.TempDir()

	copied, err := CopyStatic(siteDir, outDir, []string{"*.css", "assets/**", "*.md", "*.css"}, []string{"*.md"}, nil)
	if err != nil {
		t.Fatalf("CopyStatic: %v", err)
	}
	want := []string{"assets/js/app.js", "style.css"}
	if len(copied) != len(want) {
		t.Fatalf("copied = %v, want %v", copied, want)
	}
	for i := range want {
		if copied[i] != want[i] {
			t.Errorf("copied[%d] = %q, want %q", i, copied[i], want[i])
		}
	}
	if got := readFile(t, filepath.Join(outDir, "style.css")); got != "body{}" {
		t.Errorf("style.css = %q", got)
	}
}

func newTestServer(t *testing.T, watch bool) (*Server, *httptest.Server) {
	t.Helper()
	siteDir := writeSite(t)
	cfg := testConfig(siteDir)
	srv := NewServer(ServerConfig{SiteDir: siteDir, Watch: watch}, Pages(cfg), testRunner(t, cfg), logger.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestServer_Routes(t *testing.T) {
	_, ts := newTestServer(t, false)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/healthz", http.StatusOK, `{"status":"ok"}`},
		{"/", http.StatusOK, "Content failed to load"},
		{"/notes.html", http.StatusOK, "Calculus"},
		{"/research.html", http.StatusOK, "Paper A"},
		{"/reveal.js", http.StatusOK, "IntersectionObserver"},
		{"/style.css", http.StatusOK, "body{}"},
		{"/data/notes/sections.json", http.StatusOK, "Linear algebra"},
		{"/missing.html", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if !strings.Contains(body, tt.wantBody) {
				t.Errorf("body missing %q:\n%s", tt.wantBody, body)
			}
		})
	}
}

func TestServer_Head(t *testing.T) {
	_, ts := newTestServer(t, false)

	for _, p := range []string{"/", "/notes.html", "/style.css"} {
		resp, err := http.Head(ts.URL + p)
		if err != nil {
			t.Fatalf("HEAD %s: %v", p, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("HEAD %s = %d, want 200", p, resp.StatusCode)
		}
	}
}

func TestServer_FallbackHeader(t *testing.T) {
	_, ts := newTestServer(t, false)

	resp, _ := get(t, ts.URL+"/")
	if resp.Header.Get("X-Folio-Fallback") != "1" {
		t.Error("home should be marked as fallback")
	}
	resp, _ = get(t, ts.URL+"/notes.html")
	if resp.Header.Get("X-Folio-Fallback") != "" {
		t.Error("notes should not be marked as fallback")
	}
}

func TestServer_LiveReload(t *testing.T) {
	srv, ts := newTestServer(t, true)

	_, body := get(t, ts.URL+"/notes.html")
	if !strings.Contains(body, LiveReloadPath) {
		t.Fatal("live reload script not injected")
	}

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + LiveReloadPath
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for srv.Reloader().Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	srv.Reloader().Broadcast()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if string(msg) != "reload" {
		t.Errorf("message = %q, want reload", msg)
	}
}

func TestServer_NoLiveReloadByDefault(t *testing.T) {
	srv, ts := newTestServer(t, false)
	if srv.Reloader() != nil {
		t.Error("reloader should be nil without watch")
	}
	_, body := get(t, ts.URL+"/notes.html")
	if strings.Contains(body, LiveReloadPath) {
		t.Error("live reload script injected without watch")
	}
}

func TestReloader_Watch(t *testing.T) {
	dir := t.TempDir()
	h := NewReloader(logger.Nop())

	ts := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Watch(ctx, dir) }()

	// Give the watcher time to register before touching files.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "hero.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	if _, msg, err := conn.ReadMessage(); err != nil || string(msg) != "reload" {
		t.Fatalf("ReadMessage = %q, %v", msg, err)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch: %v", err)
	}
}

func TestIsExcluded(t *testing.T) {
	exclude := []string{"*.md", ".git/**", ".DS_Store"}
	tests := []struct {
		rel  string
		want bool
	}{
		{"README.md", true},
		{"docs/notes/README.md", true},
		{".git/config", true},
		{"images/.DS_Store", true},
		{"images/me.jpg", false},
		{"style.css", false},
	}
	for _, tt := range tests {
		if got := isExcluded(tt.rel, exclude); got != tt.want {
			t.Errorf("isExcluded(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}
