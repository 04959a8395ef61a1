package relay

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type Role string

const (
	RoleChild  Role = "child"
	RoleParent Role = "parent"
)

// mayPost enforces direction: children send requests, parents answer.
func (r Role) mayPost(t MessageType) bool {
	switch r {
	case RoleChild:
		return t.IsRequest()
	case RoleParent:
		return t.IsResponse()
	}
	return false
}

func (r Role) peer() Role {
	if r == RoleChild {
		return RoleParent
	}
	return RoleChild
}

const (
	writeWait = 10 * time.Second
	// maxMessageSize bounds a single envelope read from a peer.
	maxMessageSize = 4096
)

type hubPeer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (p *hubPeer) send(msg Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteJSON(msg)
}

// Hub pairs one child and one parent connection per session id and forwards
// envelopes between them. A role stays with the first connection that claims
// it until that connection closes; session ids should be unguessable.
type Hub struct {
	upgrader websocket.Upgrader
	origins  []string
	any      bool

	mu       sync.Mutex
	sessions map[string]map[Role]*hubPeer
}

// NewHub accepts websocket connections whose Origin is in origins. allowAny
// lets "*" match every origin and must only be set in demo deployments.
func NewHub(origins []string, allowAny bool) *Hub {
	h := &Hub{
		origins:  origins,
		sessions: make(map[string]map[Role]*hubPeer),
	}
	for _, o := range origins {
		if o == "*" && allowAny {
			h.any = true
		}
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return h.originAllowed(r.Header.Get("Origin"))
		},
	}
	return h
}

func (h *Hub) originAllowed(origin string) bool {
	return h.any || originAllowed(h.origins, origin)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session")
	role := Role(r.URL.Query().Get("role"))
	if session == "" || (role != RoleChild && role != RoleParent) {
		http.Error(w, "session and role=child|parent are required", http.StatusBadRequest)
		return
	}

	if h.Connected(session, role) {
		http.Error(w, "role is already attached to this session", http.StatusConflict)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		log.Printf("Relay upgrade failed for session %s: %v", session, err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	p := &hubPeer{conn: conn}
	if !h.register(session, role, p) {
		// Lost a race with another connection for the same role.
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "role is already attached"),
			time.Now().Add(time.Second))
		conn.Close()
		return
	}
	defer func() {
		h.unregister(session, role, p)
		conn.Close()
	}()

	// CheckOrigin has accepted this value; it is the sender identity the peer
	// sees.
	origin := r.Header.Get("Origin")
	for {
		var msg Envelope
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Relay read error for session %s (%s): %v", session, role, err)
			}
			return
		}
		if !role.mayPost(msg.Type) {
			log.WithFields(log.Fields{"session": session, "role": role, "type": msg.Type}).Warn("Dropping relay message sent in the wrong direction")
			continue
		}
		msg.Origin = origin
		target := h.peer(session, role.peer())
		if target == nil {
			log.WithFields(log.Fields{"session": session, "type": msg.Type}).Debug("No peer connected, dropping relay message")
			continue
		}
		if err := target.send(msg); err != nil {
			log.Printf("Relay forward failed for session %s: %v", session, err)
		}
	}
}

// Connected reports whether a role is attached to session.
func (h *Hub) Connected(session string, role Role) bool {
	return h.peer(session, role) != nil
}

// register attaches p unless the role is already taken.
func (h *Hub) register(session string, role Role, p *hubPeer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	peers, ok := h.sessions[session]
	if !ok {
		peers = make(map[Role]*hubPeer)
		h.sessions[session] = peers
	}
	if _, taken := peers[role]; taken {
		return false
	}
	peers[role] = p
	return true
}

func (h *Hub) unregister(session string, role Role, p *hubPeer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	peers, ok := h.sessions[session]
	if !ok || peers[role] != p {
		return
	}
	delete(peers, role)
	if len(peers) == 0 {
		delete(h.sessions, session)
	}
}

func (h *Hub) peer(session string, role Role) *hubPeer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[session][role]
}
