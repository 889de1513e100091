package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/minifw/internal/errors"
	"github.com/vango-dev/minifw/pkg/app"
	"github.com/vango-dev/minifw/pkg/host"
	"github.com/vango-dev/minifw/pkg/router"
	"github.com/vango-dev/minifw/pkg/vdom"
)

// Client message types.
const (
	MsgEvent    = "event"
	MsgNavigate = "navigate"
	MsgBack     = "back"
	MsgForward  = "forward"
)

// Server message types.
const (
	MsgInit  = "init"
	MsgPatch = "patch"
	MsgError = "error"
)

// ClientMessage is a message sent by the browser.
type ClientMessage struct {
	Type    string `json:"type"`
	Target  string `json:"target,omitempty"`
	Event   string `json:"event,omitempty"`
	Key     string `json:"key,omitempty"`
	Value   string `json:"value,omitempty"`
	Checked bool   `json:"checked,omitempty"`
	Path    string `json:"path,omitempty"`
}

// ServerMessage is a message sent to the browser. An init message carries
// the full body HTML; a patch message carries the mutations applied while
// handling one client message.
type ServerMessage struct {
	Type             string          `json:"type"`
	HTML             string          `json:"html,omitempty"`
	URL              string          `json:"url,omitempty"`
	Mutations        []host.Mutation `json:"mutations,omitempty"`
	DefaultPrevented bool            `json:"defaultPrevented,omitempty"`
	Code             string          `json:"code,omitempty"`
	Error            string          `json:"error,omitempty"`
}

// Session is one live app instance bound to a WebSocket connection.
// ReadLoop is the only goroutine that touches the instance.
type Session struct {
	id      string
	client  string
	conn    *websocket.Conn
	config  *Config
	doc     *host.Document
	browser *router.Browser
	inst    *app.Instance
	logger  *slog.Logger
	tracer  trace.Tracer

	writeMu   sync.Mutex
	closeOnce sync.Once
}

func newSession(id, client string, conn *websocket.Conn, start string, s *Server) (*Session, error) {
	doc := host.NewDocument()
	browser := router.NewBrowser(start)
	inst, err := s.factory(doc, browser, client)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		id:      id,
		client:  client,
		conn:    conn,
		config:  s.config,
		doc:     doc,
		browser: browser,
		inst:    inst,
		logger:  s.logger.With("session", id),
		tracer:  s.tracer,
	}

	sess.logger.Debug("session started", "url", start)
	return sess, nil
}

// sendInit sends the full body HTML, with node IDs, and discards the
// mutations that produced it.
func (s *Session) sendInit() error {
	s.doc.Drain()
	return s.send(&ServerMessage{
		Type: MsgInit,
		HTML: s.doc.HTMLWithIDs(s.doc.Body()),
		URL:  s.browser.URL(),
	})
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Client returns the identifier of the browser that opened the session.
func (s *Session) Client() string {
	return s.client
}

// ReadLoop reads client messages until the connection closes, replying to
// each with the resulting mutations.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.config.MaxMessageSize)
	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		reply := s.handle(data)
		if err := s.send(reply); err != nil {
			s.logger.Error("write error", "error", err)
			return
		}
	}
}

func (s *Session) handle(data []byte) *ServerMessage {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return errorMessage(errors.New("E600").Wrap(err))
	}

	attrs := []attribute.KeyValue{
		attribute.String("minifw.session_id", s.id),
		attribute.String("minifw.url", s.browser.URL()),
	}
	if msg.Type == MsgEvent {
		attrs = append(attrs,
			attribute.String("minifw.event_type", msg.Event),
			attribute.String("minifw.event_target", msg.Target),
		)
	}
	_, span := s.tracer.Start(context.Background(), "minifw."+msg.Type,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...))
	defer span.End()

	reply := s.apply(&msg)
	if reply.Type == MsgError {
		span.SetStatus(codes.Error, reply.Error)
	} else {
		span.SetStatus(codes.Ok, "")
		span.SetAttributes(attribute.Int("minifw.mutation_count", len(reply.Mutations)))
	}
	return reply
}

func (s *Session) apply(msg *ClientMessage) *ServerMessage {
	reply := &ServerMessage{Type: MsgPatch}
	switch msg.Type {
	case MsgEvent:
		e := &vdom.Event{
			Type:    msg.Event,
			Key:     msg.Key,
			Value:   msg.Value,
			Checked: msg.Checked,
		}
		if !s.doc.Dispatch(msg.Target, e) {
			return errorMessage(errors.New("E602").
				WithDetailf("no %q handler on node %q", msg.Event, msg.Target))
		}
		reply.DefaultPrevented = e.DefaultPrevented()
	case MsgNavigate:
		s.inst.Router.Navigate(msg.Path)
	case MsgBack:
		s.browser.Back()
	case MsgForward:
		s.browser.Forward()
	default:
		return errorMessage(errors.New("E601").WithDetailf("got %q", msg.Type))
	}

	reply.Mutations = s.doc.Drain()
	reply.URL = s.browser.URL()
	return reply
}

func errorMessage(err *errors.Error) *ServerMessage {
	return &ServerMessage{Type: MsgError, Code: err.Code, Error: err.Error()}
}

func (s *Session) send(msg *ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Close destroys the app instance and closes the connection. It is safe to
// call more than once. Only the goroutine running ReadLoop may call it;
// other goroutines use Disconnect.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.inst.Destroy()
		s.Disconnect()
		s.logger.Debug("session closed")
	})
}

// Disconnect sends a normal close frame and closes the connection without
// touching the app instance. The pending read in ReadLoop then fails and
// ReadLoop tears the session down. It is safe to call from any goroutine.
func (s *Session) Disconnect() {
	s.writeMu.Lock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	s.writeMu.Unlock()
	s.conn.Close()
}
