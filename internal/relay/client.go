package relay

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	apperrors "yt-planner/pkg/errors"
)

const (
	DefaultFlowTimeout  = 5 * time.Minute
	DefaultTokenTimeout = 5 * time.Second
)

// ErrTimeout is returned, wrapped in a DEADLINE_EXCEEDED app error, when the
// parent does not answer in time. Callers should offer a manual retry.
var ErrTimeout = errors.New("relay: parent did not respond")

// Client is the child side of the relay.
type Client struct {
	window       Window
	FlowTimeout  time.Duration
	TokenTimeout time.Duration

	pending atomic.Int64
}

func NewClient(window Window) *Client {
	return &Client{
		window:       window,
		FlowTimeout:  DefaultFlowTimeout,
		TokenTimeout: DefaultTokenTimeout,
	}
}

// SignIn asks the parent to run its sign-in flow and waits for auth:ready.
func (c *Client) SignIn(ctx context.Context) error {
	_, err := c.call(ctx, SignInRequest, Ready, c.FlowTimeout)
	return err
}

// SignOut asks the parent to sign out and waits for auth:ready.
func (c *Client) SignOut(ctx context.Context) error {
	_, err := c.call(ctx, SignOutRequest, Ready, c.FlowTimeout)
	return err
}

// Token fetches a session token from the parent.
func (c *Client) Token(ctx context.Context) (string, error) {
	msg, err := c.call(ctx, TokenRequest, TokenResponse, c.TokenTimeout)
	if err != nil {
		return "", err
	}
	return msg.Token, nil
}

// OnReady calls fn for every auth:ready the parent sends, solicited or not.
// The embedding view uses it to reload and re-derive its auth state.
func (c *Client) OnReady(fn func()) (unsubscribe func()) {
	return c.window.Subscribe(func(_ string, msg Envelope) {
		if msg.Type == Ready {
			fn()
		}
	})
}

// ListenerCount is the number of calls still waiting for a response.
func (c *Client) ListenerCount() int {
	return int(c.pending.Load())
}

// call posts one request and waits for the response that names it in
// ReplyTo. The listener is removed on every exit path, so a response that
// arrives after a timeout finds nobody to deliver to.
func (c *Client) call(ctx context.Context, reqType, respType MessageType, timeout time.Duration) (Envelope, error) {
	req := newEnvelope(reqType, "")
	done := make(chan Envelope, 1)

	unsubscribe := c.window.Subscribe(func(_ string, msg Envelope) {
		if msg.Type != respType || msg.ReplyTo != req.ID {
			return
		}
		select {
		case done <- msg:
		default:
		}
	})
	c.pending.Add(1)
	defer func() {
		unsubscribe()
		c.pending.Add(-1)
	}()

	if err := c.window.Post(ctx, req); err != nil {
		return Envelope{}, fmt.Errorf("posting %s: %w", reqType, err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg := <-done:
		if msg.Error != "" {
			return msg, fmt.Errorf("%s failed: %s", reqType, msg.Error)
		}
		return msg, nil
	case <-timer.C:
		log.WithFields(log.Fields{"type": reqType, "id": req.ID}).Warn("relay request timed out")
		return Envelope{}, apperrors.DeadlineExceeded(fmt.Sprintf("%s timed out after %s", reqType, timeout), ErrTimeout)
	case <-ctx.Done():
		return Envelope{}, ctx.Err()
	}
}
