package relay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "yt-planner/pkg/errors"
)

// pipeEnd is an in-memory Window. Messages posted on one end are delivered
// synchronously to the listeners of the other end.
type pipeEnd struct {
	origin string
	peer   *pipeEnd
	subs   listeners

	mu     sync.Mutex
	posted []Envelope
}

func newPipe(childOrigin, parentOrigin string) (child, parent *pipeEnd) {
	child = &pipeEnd{origin: childOrigin}
	parent = &pipeEnd{origin: parentOrigin}
	child.peer, parent.peer = parent, child
	return child, parent
}

func (p *pipeEnd) Post(ctx context.Context, msg Envelope) error {
	p.mu.Lock()
	p.posted = append(p.posted, msg)
	p.mu.Unlock()
	go p.peer.subs.dispatch(p.origin, msg)
	return nil
}

func (p *pipeEnd) Subscribe(fn Listener) func() { return p.subs.add(fn) }

func (p *pipeEnd) sent() []Envelope {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Envelope(nil), p.posted...)
}

const childOrigin = "https://embedder.example"

func TestTokenRequestTimesOutOnce(t *testing.T) {
	child, _ := newPipe(childOrigin, "https://app.example")
	c := NewClient(child)
	c.TokenTimeout = 20 * time.Millisecond

	results := make(chan error, 2)
	go func() {
		_, err := c.Token(context.Background())
		results <- err
	}()

	select {
	case err := <-results:
		assert.ErrorIs(t, err, ErrTimeout)
		assert.Equal(t, apperrors.CodeDeadlineExceeded, apperrors.CodeOf(err))
	case <-time.After(time.Second):
		t.Fatal("token request never resolved")
	}

	select {
	case <-results:
		t.Fatal("token request resolved twice")
	case <-time.After(50 * time.Millisecond):
	}

	assert.Equal(t, 0, c.ListenerCount())
	assert.Equal(t, 0, child.subs.count())
}

func TestLateResponseIgnored(t *testing.T) {
	child, parent := newPipe(childOrigin, "https://app.example")
	c := NewClient(child)
	c.TokenTimeout = 10 * time.Millisecond

	_, err := c.Token(context.Background())
	require.ErrorIs(t, err, ErrTimeout)

	req := child.sent()[0]
	late := newEnvelope(TokenResponse, req.ID)
	late.Token = "too-late"
	require.NoError(t, parent.Post(context.Background(), late))

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, child.subs.count())
}

func TestContextCancelRemovesListener(t *testing.T) {
	child, _ := newPipe(childOrigin, "https://app.example")
	c := NewClient(child)

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- c.SignIn(ctx) }()

	require.Eventually(t, func() bool { return c.ListenerCount() == 1 }, time.Second, time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-errs, context.Canceled)
	assert.Equal(t, 0, c.ListenerCount())
	assert.Equal(t, 0, child.subs.count())
}

func TestClientHostRoundTrip(t *testing.T) {
	child, parent := newPipe(childOrigin, "https://app.example")
	var signIns, signOuts int
	var mu sync.Mutex
	host, err := NewHost(parent, HostConfig{
		Origins: []string{childOrigin},
		SignIn: func(ctx context.Context) error {
			mu.Lock()
			signIns++
			mu.Unlock()
			return nil
		},
		SignOut: func(ctx context.Context) error {
			mu.Lock()
			signOuts++
			mu.Unlock()
			return nil
		},
		Token: func(ctx context.Context) (string, error) { return "parent-token", nil },
	})
	require.NoError(t, err)
	stop := host.Listen(context.Background())
	defer stop()

	c := NewClient(child)
	ctx := context.Background()

	token, err := c.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "parent-token", token)

	require.NoError(t, c.SignIn(ctx))
	require.NoError(t, c.SignOut(ctx))

	mu.Lock()
	assert.Equal(t, 1, signIns)
	assert.Equal(t, 1, signOuts)
	mu.Unlock()
	assert.Equal(t, 0, c.ListenerCount())
}

func TestConcurrentSameTypeRequestsAreIndependent(t *testing.T) {
	child, parent := newPipe(childOrigin, "https://app.example")
	var n int
	var mu sync.Mutex
	host, err := NewHost(parent, HostConfig{
		Origins: []string{childOrigin},
		Token: func(ctx context.Context) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			n++
			return "token", nil
		},
	})
	require.NoError(t, err)
	defer host.Listen(context.Background())()

	c := NewClient(child)
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Token(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, n)
	assert.Equal(t, 0, c.ListenerCount())
}

func TestHostRejectsUnknownOrigin(t *testing.T) {
	child, parent := newPipe("https://evil.example", "https://app.example")
	host, err := NewHost(parent, HostConfig{
		Origins: []string{childOrigin},
		Token:   func(ctx context.Context) (string, error) { return "secret", nil },
	})
	require.NoError(t, err)

	err = host.Handle(context.Background(), "https://evil.example", newEnvelope(TokenRequest, ""))
	assert.Equal(t, apperrors.CodePermissionDenied, apperrors.CodeOf(err))
	assert.Empty(t, parent.sent())
	assert.Empty(t, child.sent())
}

func TestHostWildcardOnlyInDemo(t *testing.T) {
	_, parent := newPipe(childOrigin, "https://app.example")

	_, err := NewHost(parent, HostConfig{Origins: []string{"*"}})
	assert.Equal(t, apperrors.CodeConfiguration, apperrors.CodeOf(err))

	host, err := NewHost(parent, HostConfig{Origins: []string{"*"}, Demo: true})
	require.NoError(t, err)
	assert.True(t, host.Allowed("https://anything.example"))
}

func TestHostReportsFlowError(t *testing.T) {
	child, parent := newPipe(childOrigin, "https://app.example")
	host, err := NewHost(parent, HostConfig{
		Origins: []string{childOrigin},
		SignIn:  func(ctx context.Context) error { return errors.New("user closed the modal") },
	})
	require.NoError(t, err)
	defer host.Listen(context.Background())()

	err = NewClient(child).SignIn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user closed the modal")
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestOnReadyReceivesUnsolicitedReady(t *testing.T) {
	child, parent := newPipe(childOrigin, "https://app.example")
	c := NewClient(child)

	fired := make(chan struct{}, 1)
	unsubscribe := c.OnReady(func() { fired <- struct{}{} })
	defer unsubscribe()

	require.NoError(t, parent.Post(context.Background(), newEnvelope(Ready, "")))
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("OnReady was not called")
	}
}

func TestMessageDirection(t *testing.T) {
	assert.True(t, RoleChild.mayPost(TokenRequest))
	assert.False(t, RoleChild.mayPost(TokenResponse))
	assert.True(t, RoleParent.mayPost(Ready))
	assert.False(t, RoleParent.mayPost(SignInRequest))
	assert.False(t, Role("other").mayPost(Ready))
}
