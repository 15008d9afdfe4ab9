package chat

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegistryFanout(t *testing.T) {
	r := NewRegistry()
	const n = 5
	clients := make([]*Client, 0, n)
	for i := 0; i < n; i++ {
		c := NewClient("u1", "alice", nil)
		clients = append(clients, c)
		r.Register("u1", c)
	}

	if got := r.SendToUser("u1", []byte("hello")); got != n {
		t.Fatalf("SendToUser reached %d, want %d", got, n)
	}
	for i, c := range clients {
		select {
		case payload := <-c.Out():
			if string(payload) != "hello" {
				t.Fatalf("conn %d got %q", i, payload)
			}
		default:
			t.Fatalf("conn %d received nothing", i)
		}
	}

	r.Unregister("u1", clients[0])
	if got := r.SendToUser("u1", []byte("again")); got != n-1 {
		t.Fatalf("after unregister reached %d, want %d", got, n-1)
	}
}

func TestRegistryUnknownUser(t *testing.T) {
	r := NewRegistry()
	if got := r.SendToUser("nobody", []byte("x")); got != 0 {
		t.Fatalf("reached %d connections for unknown user", got)
	}
}

func TestRegisterIdempotent(t *testing.T) {
	r := NewRegistry()
	c := NewClient("u1", "alice", nil)
	r.Register("u1", c)
	r.Register("u1", c)
	if got := r.Connections("u1"); got != 1 {
		t.Fatalf("double register produced %d entries", got)
	}
}

func TestUnregisterAbsentIsNoop(t *testing.T) {
	r := NewRegistry()
	c := NewClient("u1", "alice", nil)
	r.Unregister("u1", c) // must not fault
	r.Register("u1", c)
	r.Unregister("u1", c)
	r.Unregister("u1", c)
	if got := r.Connections("u1"); got != 0 {
		t.Fatalf("expected empty set, got %d", got)
	}
}

func TestRegistryFullQueueSkipsConnection(t *testing.T) {
	r := NewRegistry()
	stalled := NewClient("u1", "alice", nil)
	healthy := NewClient("u1", "alice", nil)
	r.Register("u1", stalled)
	r.Register("u1", healthy)

	for i := 0; i < sendQueueSize; i++ {
		stalled.Enqueue([]byte("fill"))
	}

	if got := r.SendToUser("u1", []byte("payload")); got != 1 {
		t.Fatalf("reached %d, want 1 (stalled conn skipped)", got)
	}
}

func TestRegistryConcurrentRegisterUnregister(t *testing.T) {
	r := NewRegistry()
	const users = 8
	const connsPerUser = 50

	var wg sync.WaitGroup
	kept := make([][]*Client, users)
	for u := 0; u < users; u++ {
		kept[u] = make([]*Client, connsPerUser)
		for i := 0; i < connsPerUser; i++ {
			uid := fmt.Sprintf("user%d", u)
			c := NewClient(uid, uid, nil)
			kept[u][i] = c
			wg.Add(1)
			go func(uid string, c *Client) {
				defer wg.Done()
				r.Register(uid, c)
			}(uid, c)
		}
	}
	// churn: transient connections registered and removed concurrently
	for u := 0; u < users; u++ {
		for i := 0; i < connsPerUser; i++ {
			uid := fmt.Sprintf("user%d", u)
			c := NewClient(uid, uid, nil)
			wg.Add(1)
			go func(uid string, c *Client) {
				defer wg.Done()
				r.Register(uid, c)
				r.Unregister(uid, c)
			}(uid, c)
		}
	}
	wg.Wait()

	// nothing that wasn't removed may be lost
	for u := 0; u < users; u++ {
		uid := fmt.Sprintf("user%d", u)
		if got := r.Connections(uid); got != connsPerUser {
			t.Fatalf("user %s has %d connections, want %d", uid, got, connsPerUser)
		}
	}
}
