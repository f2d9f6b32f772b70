// Package telemetry pushes phase snapshots to external viewers over a
// websocket, the adapter the core's "external collaborators may
// serialise phase snapshots" hook resolves into a running server.
// Routing is gorilla/mux, the socket is gorilla/websocket, and the push
// loop (drop-when-too-quick, one pending write in flight) mirrors the
// server used to push training-progress updates to a browser.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/flocksim/swarmcore/phase"
)

const (
	writeWait        = time.Second
	closeGracePeriod = 2 * time.Second
	minPublishGap    = 50 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Snapshot is the JSON wire shape pushed to connected clients: enough of
// a Phase to render a swarm, without exposing the full inner-state block.
type Snapshot struct {
	Tick             int          `json:"tick"`
	Coordinates      [][3]float64 `json:"coordinates"`
	Velocities       [][3]float64 `json:"velocities"`
	RealIDs          []int        `json:"realIds"`
	SecondEigenvalue float64      `json:"lambda2"`
}

// SnapshotOf projects a Phase into the wire shape Publish sends.
func SnapshotOf(tick int, p phase.Phase) Snapshot {
	coords := make([][3]float64, len(p.Coordinates))
	for i, c := range p.Coordinates {
		coords[i] = c
	}
	vels := make([][3]float64, len(p.Velocities))
	for i, v := range p.Velocities {
		vels[i] = v
	}
	return Snapshot{
		Tick:             tick,
		Coordinates:      coords,
		Velocities:       vels,
		RealIDs:          p.RealIDs,
		SecondEigenvalue: p.SecondEigenvalue,
	}
}

// Server serves a single static index page and a /ws endpoint that
// streams Snapshots to every connected client as they're published.
type Server struct {
	addr   string
	log    *slog.Logger
	router *mux.Router

	mu      sync.Mutex
	clients map[*websocket.Conn]chan Snapshot
}

// NewServer builds a Server bound to addr (e.g. ":8090"); it does not
// start listening until Serve is called.
func NewServer(addr string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		addr:    addr,
		log:     log,
		clients: make(map[*websocket.Conn]chan Snapshot),
	}
	r := mux.NewRouter()
	r.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.serveWebsocket).Methods(http.MethodGet)
	s.router = r
	return s
}

// Serve blocks, serving until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("telemetry: listen: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), closeGracePeriod)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Publish fans a Snapshot out to every connected client. Clients whose
// per-connection channel is still full from the previous publish are
// skipped for this tick rather than blocking the scheduler.
func (s *Server) Publish(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.clients {
		select {
		case ch <- snap:
		default:
			s.log.Warn("telemetry: dropping snapshot for slow client")
		}
	}
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("telemetry: upgrade failed", "error", err)
		return
	}

	ch := make(chan Snapshot, 4)
	s.mu.Lock()
	s.clients[conn] = ch
	s.mu.Unlock()

	defer s.disconnect(conn, ch)
	s.pump(conn, ch)
}

func (s *Server) pump(conn *websocket.Conn, ch chan Snapshot) {
	var last time.Time
	for snap := range ch {
		if time.Since(last) < minPublishGap {
			continue
		}
		last = time.Now()

		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
	}
}

func (s *Server) disconnect(conn *websocket.Conn, ch chan Snapshot) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	close(ch)

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()
}

const indexHTML = `<!DOCTYPE html>
<html><head><title>swarmcore telemetry</title></head>
<body>
<pre id="out"></pre>
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (ev) => {
  document.getElementById("out").textContent = ev.data;
};
</script>
</body></html>`
