// Package relay carries auth requests from an embedded child view to the
// parent window that can complete sign-in on its behalf.
package relay

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	SignInRequest  MessageType = "auth:signin-request"
	SignOutRequest MessageType = "auth:signout-request"
	TokenRequest   MessageType = "auth:token-request"
	TokenResponse  MessageType = "auth:token-response"
	Ready          MessageType = "auth:ready"
)

// IsRequest reports whether t travels from child to parent.
func (t MessageType) IsRequest() bool {
	switch t {
	case SignInRequest, SignOutRequest, TokenRequest:
		return true
	}
	return false
}

// IsResponse reports whether t travels from parent to child.
func (t MessageType) IsResponse() bool {
	return t == TokenResponse || t == Ready
}

// Envelope is the JSON wire format. Responses set ReplyTo to the ID of the
// request they answer; an auth:ready without ReplyTo is an unsolicited
// notification.
type Envelope struct {
	Type      MessageType `json:"type"`
	ID        string      `json:"id"`
	ReplyTo   string      `json:"replyTo,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Token     string      `json:"token,omitempty"`
	Error     string      `json:"error,omitempty"`
	// Origin is stamped by the hub with the sender's checked Origin header.
	// Values supplied by the sender are overwritten.
	Origin string `json:"origin,omitempty"`
}

func newEnvelope(t MessageType, replyTo string) Envelope {
	return Envelope{
		Type:      t,
		ID:        uuid.NewString(),
		ReplyTo:   replyTo,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Listener receives every message delivered to a window along with the
// origin of the sender.
type Listener func(origin string, msg Envelope)

// Window is one end of a cross-window channel.
type Window interface {
	Post(ctx context.Context, msg Envelope) error
	// Subscribe installs fn until the returned func is called. Calling the
	// returned func more than once is a no-op.
	Subscribe(fn Listener) (unsubscribe func())
}

// listeners is the registry behind every Window implementation.
type listeners struct {
	mu   sync.RWMutex
	next int
	fns  map[int]Listener
}

func (l *listeners) add(fn Listener) func() {
	l.mu.Lock()
	if l.fns == nil {
		l.fns = make(map[int]Listener)
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.fns, id)
			l.mu.Unlock()
		})
	}
}

func (l *listeners) dispatch(origin string, msg Envelope) {
	l.mu.RLock()
	fns := make([]Listener, 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.RUnlock()

	for _, fn := range fns {
		fn(origin, msg)
	}
}

func (l *listeners) count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.fns)
}
