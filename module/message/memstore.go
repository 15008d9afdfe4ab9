package message

import (
	"context"
	"sort"
	"sync"
	"time"

	"EMProject/tools/errs"
	"EMProject/tools/ids"
)

// MemStore is an in-process Store used by tests and by local runs
// without mongo. Timestamps are forced strictly monotonic so descending
// order is total even within one clock tick.
type MemStore struct {
	mu   sync.Mutex
	msgs []Message
	last time.Time

	// FailAppends simulates an unavailable backend.
	FailAppends bool
}

func NewMemStore() *MemStore { return &MemStore{} }

var _ Store = (*MemStore)(nil)

func (s *MemStore) Append(ctx context.Context, sender, recipient Party, content string) (*Message, error) {
	if content == "" {
		return nil, errs.ErrInvalidInput.WithMsg("content must be non-empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAppends {
		return nil, errs.ErrStorage.WithMsg("Message could not be saved")
	}
	now := time.Now().UTC()
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	m := Message{
		ID:          ids.GenerateString(),
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Sender:      sender.Username,
		Recipient:   recipient.Username,
		Content:     content,
		Timestamp:   now,
	}
	s.msgs = append(s.msgs, m)
	return &m, nil
}

func (s *MemStore) Conversation(ctx context.Context, userA, userB string) ([]Message, error) {
	return s.filter(func(m Message) bool {
		return (m.SenderID == userA && m.RecipientID == userB) ||
			(m.SenderID == userB && m.RecipientID == userA)
	}), nil
}

func (s *MemStore) ForUser(ctx context.Context, userID string) ([]Message, error) {
	return s.filter(func(m Message) bool {
		return m.SenderID == userID || m.RecipientID == userID
	}), nil
}

func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

func (s *MemStore) filter(keep func(Message) bool) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Message{}
	for _, m := range s.msgs {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}
