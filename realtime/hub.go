package realtime

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub routes messages to connected clients. Each user id maps to its latest
// connection; admins form a set. State is process local.
type Hub struct {
	mu     sync.RWMutex
	users  map[string]*Client
	admins map[*Client]struct{}
	log    *logrus.Entry
}

func NewHub(log *logrus.Entry) *Hub {
	return &Hub{
		users:  make(map[string]*Client),
		admins: make(map[*Client]struct{}),
		log:    log,
	}
}

// RegisterUser routes userID to c, replacing any earlier connection. A client
// holds at most one user id; re-registering under another id drops the old route.
func (h *Hub) RegisterUser(userID string, c *Client) {
	h.mu.Lock()
	if prev := c.UserID(); prev != "" && prev != userID && h.users[prev] == c {
		delete(h.users, prev)
	}
	c.setUser(userID)
	h.users[userID] = c
	h.mu.Unlock()
	h.log.WithField("user", userID).Debug("ws user registered")
}

func (h *Hub) MarkAdmin(c *Client) {
	c.setAdmin()
	h.mu.Lock()
	h.admins[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister forgets c and closes its queue.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if id := c.UserID(); id != "" && h.users[id] == c {
		delete(h.users, id)
	}
	delete(h.admins, c)
	h.mu.Unlock()
	c.Close()
}

// SendToUser reports whether the user had a live connection.
func (h *Hub) SendToUser(userID string, msg Message) bool {
	h.mu.RLock()
	c, ok := h.users[userID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	if !c.Send(msg) {
		h.log.WithField("user", userID).Warn("ws send queue full, message dropped")
		return false
	}
	return true
}

// SendToAdmins returns how many admin connections accepted msg.
func (h *Hub) SendToAdmins(msg Message) int {
	h.mu.RLock()
	admins := make([]*Client, 0, len(h.admins))
	for c := range h.admins {
		admins = append(admins, c)
	}
	h.mu.RUnlock()

	n := 0
	for _, c := range admins {
		if c.Send(msg) {
			n++
		}
	}
	return n
}

func (h *Hub) IsUserOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.users[userID]
	return ok
}

func (h *Hub) AdminCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.admins)
}
