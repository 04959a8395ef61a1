package relay

import (
	"context"

	log "github.com/sirupsen/logrus"

	apperrors "yt-planner/pkg/errors"
)

// HostConfig holds the parent-side callbacks. Any of them may be nil, in
// which case the request is answered with an error.
type HostConfig struct {
	// Origins that may send requests. "*" is accepted only when Demo is set.
	Origins []string
	Demo    bool

	SignIn  func(ctx context.Context) error
	SignOut func(ctx context.Context) error
	Token   func(ctx context.Context) (string, error)
}

// Host is the parent side of the relay.
type Host struct {
	window Window
	cfg    HostConfig
	any    bool
}

func NewHost(window Window, cfg HostConfig) (*Host, error) {
	h := &Host{window: window, cfg: cfg}
	for _, o := range cfg.Origins {
		if o == "*" {
			if !cfg.Demo {
				return nil, apperrors.Configuration("relay origin \"*\" is only allowed in demo mode")
			}
			h.any = true
		}
	}
	return h, nil
}

// Allowed reports whether origin may send requests to this host.
func (h *Host) Allowed(origin string) bool {
	return h.any || originAllowed(h.cfg.Origins, origin)
}

// Listen handles requests until ctx is done or the returned func is called.
func (h *Host) Listen(ctx context.Context) (stop func()) {
	return h.window.Subscribe(func(origin string, msg Envelope) {
		if err := h.Handle(ctx, origin, msg); err != nil {
			log.WithFields(log.Fields{"origin": origin, "type": msg.Type}).Warnf("relay host: %v", err)
		}
	})
}

// Handle answers a single message. Messages from other origins and
// messages that are not requests are ignored.
func (h *Host) Handle(ctx context.Context, origin string, msg Envelope) error {
	if !msg.Type.IsRequest() {
		return nil
	}
	if !h.Allowed(origin) {
		return apperrors.Forbidden("origin " + origin + " is not allowed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	switch msg.Type {
	case SignInRequest:
		return h.reply(ctx, Ready, msg.ID, "", runFlow(ctx, h.cfg.SignIn))
	case SignOutRequest:
		return h.reply(ctx, Ready, msg.ID, "", runFlow(ctx, h.cfg.SignOut))
	case TokenRequest:
		if h.cfg.Token == nil {
			return h.reply(ctx, TokenResponse, msg.ID, "", errNoHandler)
		}
		token, err := h.cfg.Token(ctx)
		return h.reply(ctx, TokenResponse, msg.ID, token, err)
	}
	return nil
}

var errNoHandler = apperrors.FailedPrecondition("parent does not handle this request")

func runFlow(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return errNoHandler
	}
	return fn(ctx)
}

func (h *Host) reply(ctx context.Context, t MessageType, replyTo, token string, cause error) error {
	resp := newEnvelope(t, replyTo)
	resp.Token = token
	if cause != nil {
		resp.Error = cause.Error()
	}
	return h.window.Post(ctx, resp)
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, o := range allowed {
		if o == origin {
			return true
		}
	}
	return false
}
