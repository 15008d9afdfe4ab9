package chat

import (
	"hash/fnv"
	"sync"
)

// Registry maps user id -> set of live connections. Sharded so one hot
// user cannot serialize unrelated users' register/send traffic.

const shardCount = 32

type shard struct {
	mu     sync.RWMutex
	byUser map[string]map[string]*Client // user -> conn_id -> client
}

type Registry struct {
	shards [shardCount]*shard
}

func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.shards {
		r.shards[i] = &shard{byUser: make(map[string]map[string]*Client)}
	}
	return r
}

func (r *Registry) shardFor(userID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return r.shards[h.Sum32()%shardCount]
}

// Register adds the connection to the user's set. Idempotent per
// connection id; never fails.
func (r *Registry) Register(userID string, c *Client) {
	s := r.shardFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.byUser[userID]
	if m == nil {
		m = make(map[string]*Client)
		s.byUser[userID] = m
	}
	m[c.ID] = c
}

// Unregister removes the connection. No-op when already absent so
// disconnect races never fault.
func (r *Registry) Unregister(userID string, c *Client) {
	s := r.shardFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if m := s.byUser[userID]; m != nil {
		delete(m, c.ID)
		if len(m) == 0 {
			delete(s.byUser, userID)
		}
	}
}

// SendToUser enqueues payload to every live connection for the user and
// returns how many accepted it. A connection with a full send queue is
// skipped (and logged by the caller if it cares); 0 reached just means
// the store is the only record.
func (r *Registry) SendToUser(userID string, payload []byte) int {
	s := r.shardFor(userID)
	s.mu.RLock()
	m := s.byUser[userID]
	conns := make([]*Client, 0, len(m))
	for _, c := range m {
		conns = append(conns, c)
	}
	s.mu.RUnlock()

	n := 0
	for _, c := range conns {
		if c.Enqueue(payload) {
			n++
		}
	}
	return n
}

// Connections reports the live connection count for a user.
func (r *Registry) Connections(userID string) int {
	s := r.shardFor(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUser[userID])
}
