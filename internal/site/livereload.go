package site

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// LiveReloadPath is where browsers connect for reload notifications.
const LiveReloadPath = "/__livereload"

const reloadDebounce = 300 * time.Millisecond

const liveReloadScript = `(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "` + LiveReloadPath + `");
  ws.onmessage = function () { location.reload(); };
})();`

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Reloader tracks connected browsers and tells them to reload.
type Reloader struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	log     zerolog.Logger
}

// NewReloader creates an empty hub.
func NewReloader(log zerolog.Logger) *Reloader {
	return &Reloader{clients: make(map[*websocket.Conn]struct{}), log: log}
}

// ServeWS upgrades the request and holds the connection until the browser
// goes away.
func (h *Reloader) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("live reload upgrade")
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Clients returns the number of connected browsers.
func (h *Reloader) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends a reload message to every client. Clients that cannot
// be written to are dropped.
func (h *Reloader) Broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// Close disconnects every client.
func (h *Reloader) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

// Watch watches dirs recursively and broadcasts a reload after changes
// settle. It blocks until ctx is done.
func (h *Reloader) Watch(ctx context.Context, dirs ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range dirs {
		if _, err := os.Stat(root); err != nil {
			h.log.Warn().Str("dir", root).Msg("not watching missing directory")
			continue
		}
		_ = filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if werr := watcher.Add(p); werr != nil {
					h.log.Warn().Err(werr).Str("dir", p).Msg("watch failed")
				}
			}
			return nil
		})
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			h.log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("change detected")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, h.Broadcast)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.log.Warn().Err(err).Msg("watcher error")
		}
	}
}
