package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/anotherclibrary/acsite/pkg/logging"
	"github.com/anotherclibrary/acsite/pkg/metrics"
	"github.com/anotherclibrary/acsite/pkg/node"
)

// Live message types.
const (
	MsgTree   = "tree"
	MsgRender = "render"
	MsgPing   = "ping"
	MsgPong   = "pong"
	MsgError  = "error"
)

// Label recorded for message types the hub does not handle.
const msgUnknown = "unknown"

var (
	// ErrHubClosed is returned when a connection arrives after Close.
	ErrHubClosed = errors.New("live hub closed")
	// ErrHubFull is returned when every connection slot is taken.
	ErrHubFull = errors.New("too many live connections")
)

const liveReadLimit = 4096

// Message is the envelope exchanged over a live connection.
type Message struct {
	Type     string         `json:"type"`
	Ref      string         `json:"ref,omitempty"`
	Session  string         `json:"session,omitempty"`
	Document *node.Document `json:"document,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// HubOptions configures a Hub.
type HubOptions struct {
	// OriginPatterns are accepted cross-origin hosts. Same-origin requests
	// are always accepted.
	OriginPatterns []string
	// MaxConnections caps concurrent connections; 0 is unlimited.
	MaxConnections int
	Logger         logging.Logger
	Metrics        *metrics.Metrics
}

type liveConn struct {
	id   string
	conn *websocket.Conn
}

// Hub streams the page tree to live clients. A client receives the tree on
// join and again for every render request.
type Hub struct {
	doc  func() node.Document
	opts HubOptions

	mu     sync.Mutex
	conns  map[*liveConn]struct{}
	slots  int // reserved, including handshakes in progress
	closed bool
}

// NewHub creates a hub serving the document returned by doc.
func NewHub(doc func() node.Document, opts HubOptions) *Hub {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewMetrics("")
	}
	return &Hub{
		doc:   doc,
		opts:  opts,
		conns: make(map[*liveConn]struct{}),
	}
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// acquire reserves a connection slot. Callers release it with release.
func (h *Hub) acquire() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHubClosed
	}
	if h.opts.MaxConnections > 0 && h.slots >= h.opts.MaxConnections {
		return ErrHubFull
	}
	h.slots++
	return nil
}

func (h *Hub) release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.slots--
}

func (h *Hub) add(c *liveConn) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHubClosed
	}
	h.conns[c] = struct{}{}
	h.opts.Metrics.LiveActive.Inc()
	h.opts.Metrics.LiveTotal.Inc()
	return nil
}

func (h *Hub) remove(c *liveConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; ok {
		delete(h.conns, c)
		h.opts.Metrics.LiveActive.Dec()
	}
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logging.L(r.Context())

	if err := h.acquire(); err != nil {
		if errors.Is(err, ErrHubFull) {
			h.opts.Metrics.ErrorsTotal.Inc("live_capacity")
		}
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer h.release()

	// Server write deadlines must not apply to the hijacked connection.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.opts.OriginPatterns,
	})
	if err != nil {
		log.Warn("live accept failed", logging.Err(err))
		h.opts.Metrics.ErrorsTotal.Inc("live_accept")
		return
	}
	conn.SetReadLimit(liveReadLimit)

	c := &liveConn{id: uuid.NewString(), conn: conn}
	if err := h.add(c); err != nil {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	defer h.remove(c)

	log = log.With(logging.String("session", c.id))
	log.Debug("live connection opened")

	err = h.serveConn(r.Context(), c)
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Debug("live connection closed")
	default:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Debug("live connection ended", logging.Err(err))
		}
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func (h *Hub) serveConn(ctx context.Context, c *liveConn) error {
	if err := h.sendTree(ctx, c, ""); err != nil {
		return err
	}

	for {
		var msg Message
		if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
			return err
		}
		h.opts.Metrics.LiveMessages.Inc(messageLabel(msg.Type))

		var err error
		switch msg.Type {
		case MsgPing:
			err = h.send(ctx, c, Message{Type: MsgPong, Ref: msg.Ref, Session: c.id})
		case MsgRender:
			err = h.sendTree(ctx, c, msg.Ref)
		default:
			err = h.send(ctx, c, Message{
				Type:    MsgError,
				Ref:     msg.Ref,
				Session: c.id,
				Error:   "unknown message type " + msg.Type,
			})
		}
		if err != nil {
			return err
		}
	}
}

// messageLabel bounds the metric label set to the handled types.
func messageLabel(typ string) string {
	switch typ {
	case MsgPing, MsgRender:
		return typ
	default:
		return msgUnknown
	}
}

func (h *Hub) sendTree(ctx context.Context, c *liveConn, ref string) error {
	doc := h.doc()
	return h.send(ctx, c, Message{Type: MsgTree, Ref: ref, Session: c.id, Document: &doc})
}

func (h *Hub) send(ctx context.Context, c *liveConn, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return wsjson.Write(ctx, c.conn, msg)
}

// Close rejects new connections and closes open ones.
func (h *Hub) Close(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	conns := make([]*liveConn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	var wg sync.WaitGroup
	for _, c := range conns {
		wg.Add(1)
		go func(c *liveConn) {
			defer wg.Done()
			_ = c.conn.Close(websocket.StatusGoingAway, "server shutting down")
		}(c)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
