package message

import (
	"context"
	"time"
)

// Message is an immutable direct message. ID and Timestamp are assigned
// by the store at append time; records are never updated or deleted.
type Message struct {
	ID          string    `bson:"_id" json:"id"`
	SenderID    string    `bson:"sender_id" json:"-"`
	RecipientID string    `bson:"recipient_id" json:"-"`
	Sender      string    `bson:"sender" json:"sender"`
	Recipient   string    `bson:"recipient" json:"recipient"`
	Content     string    `bson:"content" json:"content"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
}

// Party identifies one side of a message. Username is denormalized into
// the record so history reads don't need a user join.
type Party struct {
	ID       string
	Username string
}

// Store is the append-only persistence contract for direct messages.
// Queries return point-in-time snapshots ordered timestamp-descending.
type Store interface {
	Append(ctx context.Context, sender, recipient Party, content string) (*Message, error)
	// Conversation returns every message between the two users, in
	// either direction. Symmetric in its arguments.
	Conversation(ctx context.Context, userA, userB string) ([]Message, error)
	// ForUser returns every message the user sent or received.
	ForUser(ctx context.Context, userID string) ([]Message, error)
}
