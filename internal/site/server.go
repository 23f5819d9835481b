package site

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"path"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/folio/internal/bootstrap"
	"github.com/ziadkadry99/folio/internal/reveal"
)

// ServerConfig holds dev server configuration.
type ServerConfig struct {
	Port     int
	SiteDir  string // shells and static assets
	AllowAll bool   // allow all CORS origins
	Watch    bool   // live reload on change
}

// Server renders pages on every request so that edits to content or shells
// show up without a rebuild.
type Server struct {
	cfg        ServerConfig
	pages      map[string]PageSpec
	home       string
	runner     *bootstrap.Runner
	reload     *Reloader
	log        zerolog.Logger
	router     chi.Router
	httpServer *http.Server
}

// NewServer creates a dev server for pages. The first page is served at "/".
func NewServer(cfg ServerConfig, pages []PageSpec, runner *bootstrap.Runner, log zerolog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		pages:  make(map[string]PageSpec, len(pages)),
		runner: runner,
		log:    log,
	}
	for i, p := range pages {
		shell := strings.TrimPrefix(path.Clean("/"+p.Shell), "/")
		if i == 0 {
			s.home = shell
		}
		s.pages[shell] = p
	}
	if cfg.Watch {
		s.reload = NewReloader(log)
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	if s.runner.Capabilities.IntersectionObserver && s.runner.ScriptPath != "" {
		script := reveal.Script(s.runner.Threshold)
		r.Get("/"+strings.TrimPrefix(s.runner.ScriptPath, "/"), func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
			w.Write([]byte(script))
		})
	}

	if s.reload != nil {
		r.Get(LiveReloadPath, s.reload.ServeWS)
	}

	static := http.FileServer(http.Dir(s.cfg.SiteDir))
	handle := func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" {
			name = s.home
		}
		if spec, ok := s.pages[name]; ok {
			s.servePage(w, r, spec)
			return
		}
		static.ServeHTTP(w, r)
	}
	r.Get("/*", handle)
	r.Head("/*", handle)

	return r
}

// servePage renders spec for a single request. Content failures still
// produce the page with its fallback, as a built site would.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	doc, res, err := renderShell(r.Context(), s.runner, s.cfg.SiteDir, spec)
	if err != nil {
		s.log.Error().Err(err).Str("page", spec.Page.Name).Msg("rendering page")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if res.Fallback {
		w.Header().Set("X-Folio-Fallback", "1")
	}
	if s.reload != nil {
		doc.AppendInlineScript(liveReloadScript)
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Reloader returns the live reload hub, or nil when watching is disabled.
func (s *Server) Reloader() *Reloader { return s.reload }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info().Str("addr", addr).Bool("watch", s.cfg.Watch).Msg("folio dev server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and closes live reload clients.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.reload != nil {
		s.reload.Close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// requestLogger logs each request through zerolog.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("took", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
