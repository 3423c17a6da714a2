package netrpc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/milk9111/ringworld/camera"
	"github.com/milk9111/ringworld/selection"
)

var ErrClientClosed = errors.New("netrpc: client closed")

type ClientConfig struct {
	Logger *log.Logger
	// Controller asks the server for a specific controller ID.
	Controller selection.ControllerID
}

// Client is the remote side of a Server. It sends views and marquee
// requests and keeps the last selection the server reported.
type Client struct {
	conn       *websocket.Conn
	logger     *log.Logger
	controller selection.ControllerID
	results    chan Result
	done       chan struct{}

	writeMu sync.Mutex
	seq     uint64

	mu       sync.Mutex
	selected []selection.Handle
	err      error
}

// Dial connects to a Server at rawURL and waits for its hello.
func Dial(ctx context.Context, rawURL string, cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("netrpc: parse %s: %w", rawURL, err)
	}
	if cfg.Controller != "" {
		q := u.Query()
		q.Set(ControllerParam, string(cfg.Controller))
		u.RawQuery = q.Encode()
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("netrpc: dial %s: %w", u, err)
	}

	var hello message
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}
	if err := conn.ReadJSON(&hello); err != nil {
		conn.Close()
		return nil, fmt.Errorf("netrpc: hello: %w", err)
	}
	conn.SetReadDeadline(time.Time{})
	if hello.Type != typeHello || hello.Controller == "" {
		conn.Close()
		return nil, fmt.Errorf("netrpc: expected hello, got %q", hello.Type)
	}

	c := &Client{
		conn:       conn,
		logger:     logger,
		controller: selection.ControllerID(hello.Controller),
		results:    make(chan Result, sendBuffer),
		done:       make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Controller is the ID the server resolves this client's requests for.
func (c *Client) Controller() selection.ControllerID {
	return c.controller
}

// Results delivers every result the server sends. Results are dropped
// while the channel is full; Result.Selected is always the full set.
func (c *Client) Results() <-chan Result {
	return c.results
}

// Selected is the selection from the most recent successful result.
func (c *Client) Selected() []selection.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]selection.Handle(nil), c.selected...)
}

func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Client) SendView(view camera.ViewInfo, viewport camera.Viewport) error {
	return c.write(message{Type: typeView, View: newViewPayload(view, viewport)})
}

// SendSelection sends a marquee request. The server always resolves it for
// the session's controller, so controller is only checked for logging.
func (c *Client) SendSelection(controller selection.ControllerID, req selection.Request) error {
	if controller != "" && controller != c.controller {
		c.logger.Printf("netrpc: request for %s sent as %s", controller, c.controller)
	}
	return c.write(message{Type: typeSelect, Request: &req})
}

func (c *Client) write(msg message) error {
	select {
	case <-c.done:
		if err := c.Err(); err != nil {
			return err
		}
		return ErrClientClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	msg.Ver = ProtocolVersion
	if msg.Type == typeSelect {
		c.seq++
		msg.Seq = c.seq
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("netrpc: send %s: %w", msg.Type, err)
	}
	return nil
}

func (c *Client) readLoop() {
	defer close(c.done)
	defer close(c.results)
	for {
		var msg message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) && !errors.Is(err, net.ErrClosed) {
				c.setErr(fmt.Errorf("netrpc: read: %w", err))
			}
			return
		}
		switch msg.Type {
		case typeResult:
			if msg.Result == nil {
				continue
			}
			if msg.Result.Error == "" {
				c.mu.Lock()
				c.selected = append(c.selected[:0], msg.Result.Selected...)
				c.mu.Unlock()
			} else {
				c.logger.Printf("netrpc: select %d: %s", msg.Result.Seq, msg.Result.Error)
			}
			select {
			case c.results <- *msg.Result:
			default:
				c.logger.Printf("netrpc: result %d dropped, reader is behind", msg.Result.Seq)
			}
		case typeError:
			c.logger.Printf("netrpc: server error for %d: %s", msg.Seq, msg.Error)
		}
	}
}

func (c *Client) setErr(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

// Close sends a close frame and waits for the read loop to stop.
func (c *Client) Close() error {
	select {
	case <-c.done:
		return c.conn.Close()
	default:
	}

	c.writeMu.Lock()
	err := c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	c.writeMu.Unlock()

	select {
	case <-c.done:
	case <-time.After(writeWait):
	}
	c.conn.Close()
	<-c.done
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		return fmt.Errorf("netrpc: close: %w", err)
	}
	return nil
}
