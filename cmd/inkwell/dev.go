package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/cyberinsights/inkwell/internal/config"
	"github.com/cyberinsights/inkwell/internal/site"
)

// reloadPath is the websocket endpoint pages connect to in dev mode
const reloadPath = "/__reload"

type devServer struct {
	config    *config.Config
	site      *site.Site
	logger    *slog.Logger
	watcher   *fsnotify.Watcher
	wsClients map[*websocket.Conn]bool
	wsMutex   sync.RWMutex
	upgrader  websocket.Upgrader
	// reloadMutex serializes content reloads
	reloadMutex sync.Mutex
}

func newDevCommand(flags *rootFlags) *cobra.Command {
	var port int
	var host string
	var wasm bool

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long:  `Serves the blog, watches content and static files, and reloads open pages on change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cfg.Content.Dir == "" {
				cfg.Content.Dir = "content"
			}
			return runDev(cfg, flags.logger(), wasm)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to run the dev server on")
	cmd.Flags().StringVarP(&host, "host", "H", "localhost", "Host to bind the dev server to")
	cmd.Flags().BoolVar(&wasm, "wasm", false, "Build the WebAssembly client into the static dir first")

	return cmd
}

func newDevServer(cfg *config.Config, logger *slog.Logger) (*devServer, error) {
	s, err := newSite(cfg, logger, cfg.Dev.LiveReload)
	if err != nil {
		return nil, err
	}

	server := &devServer{
		config:    cfg,
		site:      s,
		logger:    logger,
		wsClients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins in dev mode
				return true
			},
		},
	}
	s.Router().Handle(reloadPath, http.HandlerFunc(server.handleWebSocket))
	return server, nil
}

func runDev(cfg *config.Config, logger *slog.Logger, wasm bool) error {
	if wasm {
		if err := buildClient(filepath.Join(cfg.Server.StaticDir, "assets")); err != nil {
			log.Printf("⚠️  Client build failed: %v (pages stay static)", err)
		}
	}

	server, err := newDevServer(cfg, logger)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()
	server.watcher = watcher

	if err := server.setupWatcher(); err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}
	go server.watchFiles()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.site,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("✨ Dev server running at http://%s", cfg.Addr())
	log.Printf("👀 Watching %s", strings.Join(server.watchRoots(), ", "))

	return serveUntilSignal(srv, cfg.Server.ShutdownTimeout, server.closeClients)
}

func (s *devServer) watchRoots() []string {
	var roots []string
	for _, dir := range []string{s.config.Content.Dir, s.config.Server.StaticDir} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			roots = append(roots, dir)
		}
	}
	return roots
}

func (s *devServer) setupWatcher() error {
	for _, root := range s.watchRoots() {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Skip hidden directories
			if info.IsDir() && path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}

			if info.IsDir() {
				return s.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *devServer) watchFiles() {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	var pendingEvents []fsnotify.Event

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			// New directories need their own watch
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := s.watcher.Add(event.Name); err != nil {
						log.Printf("⚠️  Failed to watch %s: %v", event.Name, err)
					}
					continue
				}
			}

			if !s.isRelevantFile(event.Name) {
				continue
			}

			pendingEvents = append(pendingEvents, event)
			debounce.Reset(s.config.Dev.Debounce)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Println("Watcher error:", err)

		case <-debounce.C:
			events := pendingEvents
			pendingEvents = nil

			if len(events) > 0 {
				s.handleFileChanges(events)
			}
		}
	}
}

func (s *devServer) isRelevantFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".css", ".js", ".wasm", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp":
		return true
	}
	return false
}

// handleFileChanges reloads content when Markdown changed, otherwise only
// drops cached pages, then tells every open page to reload. A failed reload
// keeps serving the previous content.
func (s *devServer) handleFileChanges(events []fsnotify.Event) {
	s.reloadMutex.Lock()
	defer s.reloadMutex.Unlock()

	var hasContentChanges bool
	changed := make([]string, 0, len(events))
	for _, event := range events {
		changed = append(changed, filepath.ToSlash(event.Name))
		if strings.EqualFold(filepath.Ext(event.Name), ".md") {
			hasContentChanges = true
		}
	}

	if hasContentChanges {
		log.Printf("📝 Content changed: %s", strings.Join(changed, ", "))
		store, err := loadStore(s.config, s.logger)
		if err != nil {
			log.Printf("⚠️  %v", err)
			return
		}
		s.site.Reload(store)
	} else {
		log.Printf("🎨 Static files changed: %s", strings.Join(changed, ", "))
		s.site.Invalidate()
	}

	s.notifyClients("reload", map[string]interface{}{"files": changed})
}

func (s *devServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	defer func() {
		s.wsMutex.Lock()
		delete(s.wsClients, conn)
		s.wsMutex.Unlock()
	}()

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch msg["type"] {
		case "HELLO":
			s.wsMutex.Lock()
			err := conn.WriteJSON(map[string]interface{}{"type": "ACK"})
			s.wsMutex.Unlock()
			if err != nil {
				return
			}
		default:
			log.Printf("Unknown WebSocket message type: %v", msg["type"])
		}
	}
}

func (s *devServer) notifyClients(msgType string, data map[string]interface{}) {
	// Writers hold the exclusive lock: a websocket connection supports one
	// concurrent writer.
	s.wsMutex.Lock()
	defer s.wsMutex.Unlock()

	message := map[string]interface{}{
		"type": strings.ToUpper(msgType),
	}
	for k, v := range data {
		message[k] = v
	}

	for client := range s.wsClients {
		if err := client.WriteJSON(message); err != nil {
			log.Printf("Failed to send message to client: %v", err)
		}
	}
}

func (s *devServer) clientCount() int {
	s.wsMutex.RLock()
	defer s.wsMutex.RUnlock()
	return len(s.wsClients)
}

func (s *devServer) closeClients() {
	s.wsMutex.Lock()
	defer s.wsMutex.Unlock()
	for client := range s.wsClients {
		_ = client.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
	}
}
