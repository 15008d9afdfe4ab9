package message

import (
	"context"
	"time"

	"EMProject/tools/errs"
	"EMProject/tools/ids"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collMessages = "messages"

// MongoStore persists messages in a single collection. Append is one
// InsertOne, so the atomic-create requirement falls out of the driver.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore { return &MongoStore{db: db} }

var _ Store = (*MongoStore)(nil)

func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(collMessages).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	return err
}

func (s *MongoStore) Append(ctx context.Context, sender, recipient Party, content string) (*Message, error) {
	if content == "" {
		return nil, errs.ErrInvalidInput.WithMsg("content must be non-empty")
	}
	m := &Message{
		ID:          ids.GenerateString(),
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Sender:      sender.Username,
		Recipient:   recipient.Username,
		Content:     content,
		Timestamp:   time.Now().UTC(),
	}
	if _, err := s.db.Collection(collMessages).InsertOne(ctx, m); err != nil {
		return nil, errs.ErrStorage.Wrap(err)
	}
	return m, nil
}

func (s *MongoStore) Conversation(ctx context.Context, userA, userB string) ([]Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userA, "recipient_id": userB},
		bson.M{"sender_id": userB, "recipient_id": userA},
	}}
	return s.find(ctx, filter)
}

func (s *MongoStore) ForUser(ctx context.Context, userID string) ([]Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID},
		bson.M{"recipient_id": userID},
	}}
	return s.find(ctx, filter)
}

func (s *MongoStore) find(ctx context.Context, filter bson.M) ([]Message, error) {
	cur, err := s.db.Collection(collMessages).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, errs.ErrStorage.Wrap(err)
	}
	defer cur.Close(ctx)
	out := []Message{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.ErrStorage.Wrap(err)
	}
	return out, nil
}
