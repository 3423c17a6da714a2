package netrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/ringworld/selection"
)

const (
	writeWait   = 5 * time.Second
	sendBuffer  = 16
	readLimit   = 64 * 1024
	closeReason = "controller already connected"
)

var (
	ErrNoView        = errors.New("netrpc: no view received yet")
	errSessionClosed = errors.New("netrpc: session closed")
)

type ServerConfig struct {
	Logger *log.Logger
	// Locker serialises resolution against whatever mutates the registry,
	// usually the world tick. Nil means no outside locking.
	Locker sync.Locker
}

// Server resolves marquee requests for connected controllers against the
// latest view each one has reported.
type Server struct {
	service  *selection.Service
	logger   *log.Logger
	locker   sync.Locker
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[selection.ControllerID]*session
}

type session struct {
	controller selection.ControllerID
	conn       *websocket.Conn
	send       chan message

	mu   sync.Mutex
	view *viewPayload
}

func NewServer(service *selection.Service, cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	locker := cfg.Locker
	if locker == nil {
		locker = &sync.Mutex{}
	}
	return &Server{
		service: service,
		logger:  logger,
		locker:  locker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		sessions: make(map[selection.ControllerID]*session),
	}
}

// Controllers lists the connected controllers.
func (s *Server) Controllers() []selection.ControllerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]selection.ControllerID, 0, len(s.sessions))
	for id := range s.sessions {
		out = append(out, id)
	}
	return out
}

func (s *Server) Handle(w http.ResponseWriter, r *http.Request) {
	controller := selection.ControllerID(r.URL.Query().Get(ControllerParam))
	if controller == "" {
		controller = selection.ControllerID(uuid.NewString())
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("netrpc: upgrade failed for %s: %v", controller, err)
		return
	}
	conn.SetReadLimit(readLimit)

	sess := &session{controller: controller, conn: conn, send: make(chan message, sendBuffer)}
	if !s.attach(sess) {
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, closeReason)
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		conn.Close()
		return
	}
	s.logger.Printf("netrpc: controller=%s connected", controller)

	sess.send <- message{Ver: ProtocolVersion, Type: typeHello, Controller: string(controller)}
	err = s.serve(r.Context(), sess)
	s.detach(sess)
	if err != nil && !errors.Is(err, errSessionClosed) {
		s.logger.Printf("netrpc: controller=%s: %v", controller, err)
	}
	s.logger.Printf("netrpc: controller=%s disconnected", controller)
}

func (s *Server) attach(sess *session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.controller]; ok {
		return false
	}
	s.sessions[sess.controller] = sess
	return true
}

// detach drops the session and releases everything its controller had
// selected.
func (s *Server) detach(sess *session) {
	s.locker.Lock()
	s.service.Forget(sess.controller)
	s.locker.Unlock()

	s.mu.Lock()
	delete(s.sessions, sess.controller)
	s.mu.Unlock()
}

func (s *Server) serve(ctx context.Context, sess *session) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer sess.conn.Close()
		return s.writeLoop(ctx, sess)
	})
	eg.Go(func() error {
		return s.readLoop(ctx, sess)
	})
	return eg.Wait()
}

func (s *Server) writeLoop(ctx context.Context, sess *session) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-sess.send:
			data, err := json.Marshal(msg)
			if err != nil {
				s.logger.Printf("netrpc: controller=%s marshal %s: %v", sess.controller, msg.Type, err)
				continue
			}
			sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sess.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return fmt.Errorf("netrpc: write: %w", err)
			}
		}
	}
}

func (s *Server) readLoop(ctx context.Context, sess *session) error {
	for {
		_, payload, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || ctx.Err() != nil {
				return errSessionClosed
			}
			return fmt.Errorf("netrpc: read: %w", err)
		}

		var msg message
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Printf("netrpc: discarding malformed message from %s: %v", sess.controller, err)
			continue
		}
		if msg.Ver != ProtocolVersion {
			s.reply(ctx, sess, message{Type: typeError, Seq: msg.Seq, Error: fmt.Sprintf("unsupported protocol version %d", msg.Ver)})
			continue
		}

		switch msg.Type {
		case typeView:
			if msg.View != nil {
				sess.setView(msg.View)
			}
		case typeSelect:
			if msg.View != nil {
				sess.setView(msg.View)
			}
			if msg.Request == nil {
				s.reply(ctx, sess, message{Type: typeError, Seq: msg.Seq, Error: "select without request"})
				continue
			}
			result := s.resolve(sess, msg.Seq, *msg.Request)
			s.reply(ctx, sess, message{Type: typeResult, Seq: msg.Seq, Result: &result})
		default:
			s.reply(ctx, sess, message{Type: typeError, Seq: msg.Seq, Error: fmt.Sprintf("unknown message type %q", msg.Type)})
		}
	}
}

func (s *Server) resolve(sess *session, seq uint64, req selection.Request) Result {
	result := Result{Seq: seq}
	view := sess.currentView()
	if view == nil {
		result.Error = ErrNoView.Error()
		return result
	}
	proj, err := view.projection()
	if err != nil {
		result.Error = err.Error()
		return result
	}

	s.locker.Lock()
	diff := s.service.Resolve(sess.controller, proj, req)
	result.Selected = s.service.Selected(sess.controller)
	s.locker.Unlock()

	result.Added = diff.Selected
	result.Removed = diff.Deselected
	return result
}

func (s *Server) reply(ctx context.Context, sess *session, msg message) {
	msg.Ver = ProtocolVersion
	select {
	case sess.send <- msg:
	case <-ctx.Done():
	}
}

func (sess *session) setView(v *viewPayload) {
	sess.mu.Lock()
	sess.view = v
	sess.mu.Unlock()
}

func (sess *session) currentView() *viewPayload {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view
}
