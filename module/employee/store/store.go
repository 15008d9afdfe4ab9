package store

import (
	"context"
	"errors"
	"time"

	emodel "EMProject/module/employee/model"
	"EMProject/tools/errs"
	"EMProject/tools/ids"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollComplaints = "complaints"
	CollAttendance = "attendance"
	CollTasks      = "tasks"
	CollSalaries   = "salaries"
)

// Store is the mongo persistence layer for the four record services.
// Ownership scoping stays in the handlers; this layer only runs the
// filters it is given.
type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store { return &Store{db: db} }

func (s *Store) EnsureIndexes(ctx context.Context) error {
	// one attendance row per employee per day
	_, err := s.db.Collection(CollAttendance).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = s.db.Collection(CollTasks).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "assigned_to", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

// ---- complaints ----

func (s *Store) CreateComplaint(ctx context.Context, c *emodel.Complaint) error {
	c.ID = ids.GenerateString()
	c.Status = emodel.ComplaintPending
	c.CreateTime = time.Now().UTC()
	if _, err := s.db.Collection(CollComplaints).InsertOne(ctx, c); err != nil {
		return errs.ErrStorage.Wrap(err)
	}
	return nil
}

func (s *Store) ListComplaints(ctx context.Context, employeeID string) ([]emodel.Complaint, error) {
	filter := bson.M{}
	if employeeID != "" {
		filter["employee_id"] = employeeID
	}
	out := []emodel.Complaint{}
	err := s.findAll(ctx, CollComplaints, filter, "created_at", &out)
	return out, err
}

func (s *Store) GetComplaint(ctx context.Context, id string) (*emodel.Complaint, error) {
	var c emodel.Complaint
	if err := s.getOne(ctx, CollComplaints, id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) UpdateComplaintStatus(ctx context.Context, id, status string) error {
	return s.updateOne(ctx, CollComplaints, id, bson.M{"status": status})
}

func (s *Store) DeleteComplaint(ctx context.Context, id string) error {
	return s.deleteOne(ctx, CollComplaints, id)
}

// ---- attendance ----

func (s *Store) CreateAttendance(ctx context.Context, a *emodel.Attendance) error {
	a.ID = ids.GenerateString()
	if _, err := s.db.Collection(CollAttendance).InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrConflict.WithMsg("attendance already marked for this date")
		}
		return errs.ErrStorage.Wrap(err)
	}
	return nil
}

func (s *Store) ListAttendance(ctx context.Context, employeeID string) ([]emodel.Attendance, error) {
	filter := bson.M{}
	if employeeID != "" {
		filter["employee_id"] = employeeID
	}
	out := []emodel.Attendance{}
	err := s.findAll(ctx, CollAttendance, filter, "date", &out)
	return out, err
}

func (s *Store) DeleteAttendance(ctx context.Context, id string) error {
	return s.deleteOne(ctx, CollAttendance, id)
}

// ---- tasks ----

func (s *Store) CreateTask(ctx context.Context, t *emodel.Task) error {
	t.ID = ids.GenerateString()
	now := time.Now().UTC()
	t.CreateTime = now
	t.UpdateTime = now
	if _, err := s.db.Collection(CollTasks).InsertOne(ctx, t); err != nil {
		return errs.ErrStorage.Wrap(err)
	}
	return nil
}

func (s *Store) ListTasks(ctx context.Context, assignedTo string) ([]emodel.Task, error) {
	filter := bson.M{}
	if assignedTo != "" {
		filter["assigned_to"] = assignedTo
	}
	out := []emodel.Task{}
	err := s.findAll(ctx, CollTasks, filter, "created_at", &out)
	return out, err
}

func (s *Store) GetTask(ctx context.Context, id string) (*emodel.Task, error) {
	var t emodel.Task
	if err := s.getOne(ctx, CollTasks, id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC()
	return s.updateOne(ctx, CollTasks, id, fields)
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.deleteOne(ctx, CollTasks, id)
}

// ---- salary ----

func (s *Store) CreateSalary(ctx context.Context, sal *emodel.Salary) error {
	sal.ID = ids.GenerateString()
	sal.NetSalary = sal.Net()
	if _, err := s.db.Collection(CollSalaries).InsertOne(ctx, sal); err != nil {
		return errs.ErrStorage.Wrap(err)
	}
	return nil
}

func (s *Store) ListSalaries(ctx context.Context, employeeID string) ([]emodel.Salary, error) {
	filter := bson.M{}
	if employeeID != "" {
		filter["employee_id"] = employeeID
	}
	out := []emodel.Salary{}
	err := s.findAll(ctx, CollSalaries, filter, "date", &out)
	return out, err
}

// ---- shared plumbing ----

func (s *Store) findAll(ctx context.Context, coll string, filter bson.M, sortKey string, out any) error {
	cur, err := s.db.Collection(coll).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: sortKey, Value: -1}}))
	if err != nil {
		return errs.ErrStorage.Wrap(err)
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, out); err != nil {
		return errs.ErrStorage.Wrap(err)
	}
	return nil
}

func (s *Store) getOne(ctx context.Context, coll, id string, out any) error {
	err := s.db.Collection(coll).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.ErrNotFound.WithMsg("record does not exist")
	}
	if err != nil {
		return errs.ErrStorage.Wrap(err)
	}
	return nil
}

func (s *Store) updateOne(ctx context.Context, coll, id string, fields bson.M) error {
	res, err := s.db.Collection(coll).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return errs.ErrStorage.Wrap(err)
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound.WithMsg("record does not exist")
	}
	return nil
}

func (s *Store) deleteOne(ctx context.Context, coll, id string) error {
	res, err := s.db.Collection(coll).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errs.ErrStorage.Wrap(err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound.WithMsg("record does not exist")
	}
	return nil
}
