package relay

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is a Window backed by a hub websocket connection.
type Conn struct {
	ws *websocket.Conn

	writeMu sync.Mutex
	subs    listeners
	done    chan struct{}
	err     error
}

// Dial connects to the hub at hubURL (ws:// or wss://) as role in session.
// origin is sent as the Origin header. Listeners receive the origin the hub
// stamped on each message, which is the peer's checked Origin.
func Dial(ctx context.Context, hubURL, session string, role Role, origin string) (*Conn, error) {
	u, err := url.Parse(hubURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("session", session)
	q.Set("role", string(role))
	u.RawQuery = q.Encode()

	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		return nil, err
	}

	c := &Conn{ws: ws, done: make(chan struct{})}
	go c.readLoop()
	return c, nil
}

func (c *Conn) Post(ctx context.Context, msg Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	c.ws.SetWriteDeadline(deadline)
	return c.ws.WriteJSON(msg)
}

func (c *Conn) Subscribe(fn Listener) func() {
	return c.subs.add(fn)
}

// ListenerCount is the number of installed listeners.
func (c *Conn) ListenerCount() int {
	return c.subs.count()
}

// Done is closed when the connection stops reading.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Err returns the error that ended the read loop, once Done is closed.
func (c *Conn) Err() error {
	<-c.done
	return c.err
}

func (c *Conn) Close() error {
	c.writeMu.Lock()
	c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()
	return c.ws.Close()
}

func (c *Conn) readLoop() {
	defer close(c.done)
	for {
		var msg Envelope
		if err := c.ws.ReadJSON(&msg); err != nil {
			c.err = err
			return
		}
		c.subs.dispatch(msg.Origin, msg)
	}
}
