// ============================================================================
// internal/records/mongo.go
// MongoDB-backed Repository implementation
// ============================================================================

package records

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"resultportal/internal/shared"
)

// MongoRepository implements Repository on top of MongoDB collections.
type MongoRepository struct {
	client   *mongo.Client
	students *mongo.Collection
	marks    *mongo.Collection
	admins   *mongo.Collection
	sessions *mongo.Collection
	logger   *zap.Logger
}

// NewMongoRepository creates a repository bound to the portal collections.
func NewMongoRepository(client *mongo.Client, db *mongo.Database, logger *zap.Logger) *MongoRepository {
	return &MongoRepository{
		client:   client,
		students: db.Collection("students"),
		marks:    db.Collection("marks"),
		admins:   db.Collection("admins"),
		sessions: db.Collection("sessions"),
		logger:   logger,
	}
}

// EnsureIndexes creates the indexes the repository's guarantees depend on:
// unique seat numbers, one mark per (student, subject), unique session
// tokens, and a TTL on session expiry.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	queryCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.students.Indexes().CreateOne(queryCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "seat_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return shared.RepositoryErr("create students index", err)
	}

	_, err = r.marks.Indexes().CreateOne(queryCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "subject_code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return shared.RepositoryErr("create marks index", err)
	}

	_, err = r.admins.Indexes().CreateOne(queryCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return shared.RepositoryErr("create admins index", err)
	}

	_, err = r.sessions.Indexes().CreateMany(queryCtx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		return shared.RepositoryErr("create sessions indexes", err)
	}

	return nil
}

// ============================================================================
// Students
// ============================================================================

// CreateStudent inserts the student together with its initial mark rows.
// Preferred path is a multi-document transaction; standalone Mongo servers
// do not support those, so a sequential fallback with manual cleanup covers
// local development.
func (r *MongoRepository) CreateStudent(ctx context.Context, student *shared.Student, marks []shared.MarkEntry) error {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	insertAll := func(c context.Context) error {
		if _, err := r.students.InsertOne(c, student); err != nil {
			return err
		}
		if len(marks) == 0 {
			return nil
		}
		docs := make([]interface{}, len(marks))
		for i := range marks {
			docs[i] = marks[i]
		}
		_, err := r.marks.InsertMany(c, docs)
		return err
	}

	err := shared.WithTransaction(queryCtx, r.client, func(sessCtx mongo.SessionContext) error {
		return insertAll(sessCtx)
	})
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return shared.ErrDuplicateSeatNumber
	}

	// Step 2: transactions need a replica set; retry sequentially and roll
	// back the student document by hand if the marks insert fails.
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) || errors.Is(err, mongo.ErrClientDisconnected) {
		r.logger.Warn("transaction unavailable, falling back to sequential insert",
			zap.String("student_id", student.ID),
			zap.Error(err))

		if seqErr := insertAll(queryCtx); seqErr != nil {
			if mongo.IsDuplicateKeyError(seqErr) {
				return shared.ErrDuplicateSeatNumber
			}
			_, _ = r.students.DeleteOne(queryCtx, bson.M{"_id": student.ID})
			return shared.RepositoryErr("create student", seqErr)
		}
		return nil
	}

	return shared.RepositoryErr("create student", err)
}

func (r *MongoRepository) UpdateStudent(ctx context.Context, student *shared.Student) error {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"seat_number":   student.SeatNumber,
		"full_name":     student.FullName,
		"date_of_birth": student.DateOfBirth,
		"updated_at":    student.UpdatedAt,
	}}

	result, err := r.students.UpdateOne(queryCtx, bson.M{"_id": student.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return shared.ErrDuplicateSeatNumber
		}
		return shared.RepositoryErr("update student", err)
	}
	if result.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteStudent removes the student and cascades to its marks. Mark cleanup
// runs even when the student document is already gone, so a retried delete
// cannot leave orphans behind.
func (r *MongoRepository) DeleteStudent(ctx context.Context, studentID string) error {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.students.DeleteOne(queryCtx, bson.M{"_id": studentID})
	if err != nil {
		return shared.RepositoryErr("delete student", err)
	}

	if _, err := r.marks.DeleteMany(queryCtx, bson.M{"student_id": studentID}); err != nil {
		return shared.RepositoryErr("delete student marks", err)
	}

	if result.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) GetStudent(ctx context.Context, studentID string) (*shared.Student, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var student shared.Student
	err := r.students.FindOne(queryCtx, bson.M{"_id": studentID}).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.RepositoryErr("get student", err)
	}
	return &student, nil
}

func (r *MongoRepository) ListStudents(ctx context.Context, orderBy string) ([]shared.Student, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Whitelisted sort keys only; anything else sorts by seat number.
	switch orderBy {
	case OrderBySeatNumber, OrderByFullName, OrderByCreatedAt:
	default:
		orderBy = OrderBySeatNumber
	}

	cursor, err := r.students.Find(queryCtx, bson.M{},
		options.Find().SetSort(bson.D{{Key: orderBy, Value: 1}}))
	if err != nil {
		return nil, shared.RepositoryErr("list students", err)
	}
	defer cursor.Close(queryCtx)

	students := []shared.Student{}
	if err := cursor.All(queryCtx, &students); err != nil {
		return nil, shared.RepositoryErr("decode students", err)
	}
	return students, nil
}

func (r *MongoRepository) FindStudentByCredentials(ctx context.Context, seatNumber, dateOfBirth string) (*shared.Student, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"seat_number":   seatNumber,
		"date_of_birth": dateOfBirth,
	}

	var student shared.Student
	err := r.students.FindOne(queryCtx, filter).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.RepositoryErr("find student by credentials", err)
	}
	return &student, nil
}

// ============================================================================
// Marks
// ============================================================================

// UpsertMark writes the score for a (student, subject) pair. Last write wins;
// the unique compound index keeps concurrent upserts from creating twins.
func (r *MongoRepository) UpsertMark(ctx context.Context, mark *shared.MarkEntry) error {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"student_id":   mark.StudentID,
		"subject_code": mark.SubjectCode,
	}
	update := bson.M{"$set": bson.M{
		"score":      mark.Score,
		"updated_by": mark.UpdatedBy,
		"updated_at": mark.UpdatedAt,
	}}

	_, err := r.marks.UpdateOne(queryCtx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return shared.RepositoryErr("upsert mark", err)
	}
	return nil
}

func (r *MongoRepository) ListMarksForStudent(ctx context.Context, studentID string) ([]shared.MarkEntry, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.marks.Find(queryCtx, bson.M{"student_id": studentID})
	if err != nil {
		return nil, shared.RepositoryErr("list marks", err)
	}
	defer cursor.Close(queryCtx)

	marks := []shared.MarkEntry{}
	if err := cursor.All(queryCtx, &marks); err != nil {
		return nil, shared.RepositoryErr("decode marks", err)
	}
	return marks, nil
}

// ============================================================================
// Admins
// ============================================================================

func (r *MongoRepository) InsertAdmin(ctx context.Context, admin *shared.AdminProfile) error {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.admins.InsertOne(queryCtx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return shared.Validationf("username %q already exists", admin.Username)
		}
		return shared.RepositoryErr("insert admin", err)
	}
	return nil
}

func (r *MongoRepository) FindAdminByUsername(ctx context.Context, username string) (*shared.AdminProfile, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var admin shared.AdminProfile
	err := r.admins.FindOne(queryCtx, bson.M{"username": username}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.RepositoryErr("find admin", err)
	}
	return &admin, nil
}

func (r *MongoRepository) GetAdmin(ctx context.Context, adminID string) (*shared.AdminProfile, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var admin shared.AdminProfile
	err := r.admins.FindOne(queryCtx, bson.M{"_id": adminID}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.RepositoryErr("get admin", err)
	}
	return &admin, nil
}

// ============================================================================
// Sessions
// ============================================================================

func (r *MongoRepository) InsertSession(ctx context.Context, session *shared.Session) error {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.sessions.InsertOne(queryCtx, session); err != nil {
		return shared.RepositoryErr("insert session", err)
	}
	return nil
}

func (r *MongoRepository) FindSessionByToken(ctx context.Context, token string) (*shared.Session, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var session shared.Session
	err := r.sessions.FindOne(queryCtx, bson.M{"token": token}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.RepositoryErr("find session", err)
	}
	return &session, nil
}

// DeleteSessionByToken is idempotent: deleting an already-gone session
// succeeds, so logout can be retried freely.
func (r *MongoRepository) DeleteSessionByToken(ctx context.Context, token string) error {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.sessions.DeleteOne(queryCtx, bson.M{"token": token}); err != nil {
		return shared.RepositoryErr("delete session", err)
	}
	return nil
}
