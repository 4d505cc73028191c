package network

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Observer streams flow field summaries to websocket clients
// Read-only: it only ever sees summaries handed to Publish, never the field store
type Observer struct {
	upgrader websocket.Upgrader
	log      logrus.FieldLogger

	mu      sync.RWMutex
	clients map[*Connection]struct{}
	latest  *FieldSummary
	closed  bool
}

// NewObserver creates an observer hub
func NewObserver(log logrus.FieldLogger) *Observer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Observer{
		upgrader: websocket.Upgrader{
			// Debug tool, any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     log.WithField("component", "observer"),
		clients: make(map[*Connection]struct{}),
	}
}

// Handler returns the HTTP handler serving the websocket endpoint at /ws
func (o *Observer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", o.serveWS)
	return mux
}

func (o *Observer) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := o.upgrader.Upgrade(w, r, nil)
	if err != nil {
		o.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	conn := newConnection(ws)

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		ws.Close()
		return
	}
	// Queued under the lock so hello always precedes the first broadcast
	if hello, err := json.Marshal(Message{Type: MsgHello, Summary: o.latest}); err == nil {
		conn.send <- hello
	}
	o.clients[conn] = struct{}{}
	o.mu.Unlock()

	o.log.WithField("remote", r.RemoteAddr).Info("observer connected")

	go conn.writePump()
	go conn.readPump(func() { o.remove(conn) })
}

// Publish records summary as the latest and broadcasts it to every client
// Clients whose queue is full are dropped
func (o *Observer) Publish(summary *FieldSummary) {
	data, err := json.Marshal(Message{Type: MsgField, Summary: summary})
	if err != nil {
		o.log.WithError(err).Error("encode field summary")
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.latest = summary
	for conn := range o.clients {
		select {
		case conn.send <- data:
		default:
			o.log.Warn("observer too slow, dropping")
			delete(o.clients, conn)
			close(conn.send)
		}
	}
}

// Clients returns the number of connected observers
func (o *Observer) Clients() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.clients)
}

// Close disconnects every client
func (o *Observer) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	for conn := range o.clients {
		delete(o.clients, conn)
		close(conn.send)
	}
}

func (o *Observer) remove(conn *Connection) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.clients[conn]; ok {
		delete(o.clients, conn)
		close(conn.send)
	}
}
