package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zeusync/arcadephys/internal/core/observability/log"
	"github.com/zeusync/arcadephys/internal/core/simulation"
)

const (
	sendBufferSize  = 16
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Config holds snapshot server settings.
type Config struct {
	Addr       string
	MaxClients int
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// SnapshotServer streams simulation snapshots to websocket clients. Clients
// only listen; anything they send is discarded. A client that falls behind
// loses frames instead of slowing the simulation down.
type SnapshotServer struct {
	config Config
	logger log.Log

	mu      sync.Mutex
	clients map[*client]struct{}

	running atomic.Bool
	dropped atomic.Uint64
}

func NewSnapshotServer(config Config, logger log.Log) *SnapshotServer {
	return &SnapshotServer{
		config:  config,
		logger:  logger.With(log.String("component", "snapshot_server")),
		clients: make(map[*client]struct{}),
	}
}

// Handler serves /ws and /healthz.
func (s *SnapshotServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *SnapshotServer) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// and disconnects every client.
func (s *SnapshotServer) Serve(ctx context.Context, ln net.Listener) error {
	if !s.running.CompareAndSwap(false, true) {
		_ = ln.Close()
		return ErrServerAlreadyRunning
	}
	defer s.running.Store(false)

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	s.logger.Info("snapshot server listening", log.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		s.closeAll()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeAll()
	s.logger.Info("snapshot server stopped", log.Uint64("dropped_snapshots", s.Dropped()))
	return err
}

// Broadcast sends snap to every connected client.
func (s *SnapshotServer) Broadcast(snap simulation.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- payload:
		default:
			s.dropped.Add(1)
		}
	}
	return nil
}

// Clients returns the number of connected clients.
func (s *SnapshotServer) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Dropped returns how many snapshots were skipped for slow clients.
func (s *SnapshotServer) Dropped() uint64 { return s.dropped.Load() }

func (s *SnapshotServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	c := &client{send: make(chan []byte, sendBufferSize)}
	if !s.add(c) {
		http.Error(w, ErrMaxClientsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.remove(c)
		s.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	c.conn = conn
	s.logger.Debug("client connected", log.String("remote", conn.RemoteAddr().String()))

	go s.writeLoop(c)
	go s.readLoop(c)
}

func (s *SnapshotServer) writeLoop(c *client) {
	defer c.conn.Close()
	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.remove(c)
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
		time.Now().Add(writeTimeout))
}

// readLoop drains inbound frames so control messages are processed and a
// closed peer is noticed.
func (s *SnapshotServer) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			s.remove(c)
			return
		}
	}
}

// add reserves a slot for c before the upgrade, so concurrent handshakes
// cannot exceed MaxClients.
func (s *SnapshotServer) add(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config.MaxClients > 0 && len(s.clients) >= s.config.MaxClients {
		return false
	}
	s.clients[c] = struct{}{}
	return true
}

func (s *SnapshotServer) remove(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
	if c.conn != nil {
		s.logger.Debug("client disconnected", log.String("remote", c.conn.RemoteAddr().String()))
	}
}

func (s *SnapshotServer) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
}
