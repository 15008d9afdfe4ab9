package message

import (
	"context"
	"errors"
	"testing"

	"EMProject/tools/errs"
)

var (
	alice = Party{ID: "u-alice", Username: "alice"}
	bob   = Party{ID: "u-bob", Username: "bob"}
	carol = Party{ID: "u-carol", Username: "carol"}
)

func seed(t *testing.T) *MemStore {
	t.Helper()
	s := NewMemStore()
	ctx := context.Background()
	for _, m := range []struct {
		from, to Party
		body     string
	}{
		{alice, bob, "one"},
		{bob, alice, "two"},
		{alice, carol, "other thread"},
		{alice, bob, "three"},
	} {
		if _, err := s.Append(ctx, m.from, m.to, m.body); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	return s
}

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	s := NewMemStore()
	m, err := s.Append(context.Background(), alice, bob, "hi")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if m.ID == "" || m.Timestamp.IsZero() {
		t.Fatalf("missing id/timestamp: %+v", m)
	}
	if m.Sender != "alice" || m.Recipient != "bob" {
		t.Fatalf("wrong parties: %+v", m)
	}
}

func TestAppendRejectsEmptyContent(t *testing.T) {
	s := NewMemStore()
	_, err := s.Append(context.Background(), alice, bob, "")
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
	if s.Len() != 0 {
		t.Fatal("empty message was stored")
	}
}

func TestAppendTimestampsMonotonic(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	var prev *Message
	for i := 0; i < 100; i++ {
		m, err := s.Append(ctx, alice, bob, "x")
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if prev != nil && !m.Timestamp.After(prev.Timestamp) {
			t.Fatalf("timestamp not increasing: %v then %v", prev.Timestamp, m.Timestamp)
		}
		prev = m
	}
}

func TestConversationSymmetricAndDescending(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	ab, err := s.Conversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	ba, err := s.Conversation(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}

	if len(ab) != 3 {
		t.Fatalf("conversation has %d messages, want 3", len(ab))
	}
	if len(ab) != len(ba) {
		t.Fatalf("asymmetric: %d vs %d", len(ab), len(ba))
	}
	for i := range ab {
		if ab[i].ID != ba[i].ID {
			t.Fatalf("order differs at %d", i)
		}
	}
	for i := 1; i < len(ab); i++ {
		if ab[i].Timestamp.After(ab[i-1].Timestamp) {
			t.Fatalf("not descending at %d", i)
		}
	}
	if ab[0].Content != "three" {
		t.Fatalf("most recent = %q, want %q", ab[0].Content, "three")
	}
}

func TestConversationExcludesThirdParties(t *testing.T) {
	s := seed(t)
	ab, _ := s.Conversation(context.Background(), alice.ID, bob.ID)
	for _, m := range ab {
		if m.SenderID == carol.ID || m.RecipientID == carol.ID {
			t.Fatalf("third-party message leaked: %+v", m)
		}
	}
}

func TestForUser(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	got, err := s.ForUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("forUser: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("bob sees %d messages, want 3 (sent or received)", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Fatalf("not descending at %d", i)
		}
	}

	carols, _ := s.ForUser(ctx, carol.ID)
	if len(carols) != 1 {
		t.Fatalf("carol sees %d, want 1", len(carols))
	}
}
