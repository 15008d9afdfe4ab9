package service

import (
	"context"
	"errors"
	"time"

	usermodel "EMProject/module/user/model"
	"EMProject/tools/errs"
	"EMProject/tools/ids"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const collUsers = "users"

// Service owns the users collection: create/authenticate/resolve. The
// chat gateway consumes it through the Resolver facet only.
type Service struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Service { return &Service{db: db} }

// Resolver is the identity lookup facet the messaging gateway needs.
type Resolver interface {
	ByUsername(ctx context.Context, username string) (*usermodel.User, error)
	ByID(ctx context.Context, id string) (*usermodel.User, error)
}

func (s *Service) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(collUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type CreateParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	IsStaff   bool
}

func (s *Service) Create(ctx context.Context, in CreateParams) (*usermodel.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, errs.ErrInvalidInput.WithMsg("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.ErrStorage.Wrap(err)
	}
	u := &usermodel.User{
		ID:           ids.GenerateString(),
		Username:     in.Username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsStaff:      in.IsStaff,
		CreateTime:   time.Now().UTC(),
	}
	if _, err := s.db.Collection(collUsers).InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errs.ErrConflict.WithMsg("username already taken")
		}
		return nil, errs.ErrStorage.Wrap(err)
	}
	return u, nil
}

// Authenticate checks username/password and returns the user. Failure is
// always the same unauthenticated error, no user-vs-password split.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*usermodel.User, error) {
	u, err := s.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUnauthenticated.WithMsg("Invalid credentials")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, errs.ErrUnauthenticated.WithMsg("Invalid credentials")
	}
	return u, nil
}

func (s *Service) ByUsername(ctx context.Context, username string) (*usermodel.User, error) {
	var u usermodel.User
	err := s.db.Collection(collUsers).FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound.WithMsg("User does not exist")
	}
	if err != nil {
		return nil, errs.ErrStorage.Wrap(err)
	}
	return &u, nil
}

func (s *Service) ByID(ctx context.Context, id string) (*usermodel.User, error) {
	var u usermodel.User
	err := s.db.Collection(collUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound.WithMsg("user does not exist")
	}
	if err != nil {
		return nil, errs.ErrStorage.Wrap(err)
	}
	return &u, nil
}

// List returns all users, id+username only shape left to the handler.
func (s *Service) List(ctx context.Context) ([]usermodel.User, error) {
	cur, err := s.db.Collection(collUsers).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, errs.ErrStorage.Wrap(err)
	}
	defer cur.Close(ctx)
	var out []usermodel.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.ErrStorage.Wrap(err)
	}
	return out, nil
}

// Delete refuses while dependent records exist: no implicit cascades.
// Dependent collections are passed in by name so this package does not
// import the record modules.
func (s *Service) Delete(ctx context.Context, id string, dependents map[string]bson.M) error {
	for coll, filter := range dependents {
		n, err := s.db.Collection(coll).CountDocuments(ctx, filter)
		if err != nil {
			return errs.ErrStorage.Wrap(err)
		}
		if n > 0 {
			return errs.ErrConflict.WithMsg("user has dependent " + coll + " records")
		}
	}
	res, err := s.db.Collection(collUsers).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errs.ErrStorage.Wrap(err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound.WithMsg("user does not exist")
	}
	return nil
}
