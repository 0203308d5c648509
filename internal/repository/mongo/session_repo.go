// internal/repository/mongo/session_repo.go
package mongo

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionCollectionName = "sessions"

// mongoSessionRepository implements repository.SessionRepository
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new WorkoutSession repository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// Create inserts a fully derived session. Timestamps come from the aggregator.
func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	if session.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("session requires userId")
	}
	session.ID = primitive.NewObjectID()
	if session.ExercisesPerformed == nil {
		session.ExercisesPerformed = []domain.PerformedExercise{}
	}

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted session ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single session owned by userID.
func (r *mongoSessionRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	filter := bson.M{"_id": id, "userId": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Find lists the user's sessions matching query.
func (r *mongoSessionRepository) Find(ctx context.Context, userID primitive.ObjectID, query repository.SessionQuery) ([]domain.WorkoutSession, error) {
	sessions := []domain.WorkoutSession{}
	findOptions := options.Find().SetSort(sessionSort(query.Sort))
	if query.Limit > 0 {
		findOptions.SetLimit(query.Limit)
	}

	cursor, err := r.collection.Find(ctx, sessionFilter(userID, query), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindOne returns the first session matching query in its sort order.
func (r *mongoSessionRepository) FindOne(ctx context.Context, userID primitive.ObjectID, query repository.SessionQuery) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	findOptions := options.FindOne().SetSort(sessionSort(query.Sort))

	err := r.collection.FindOne(ctx, sessionFilter(userID, query), findOptions).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Replace overwrites the whole stored document. There is no version check,
// the last write wins.
func (r *mongoSessionRepository) Replace(ctx context.Context, session *domain.WorkoutSession) error {
	if session.ID == primitive.NilObjectID || session.UserID == primitive.NilObjectID {
		return errors.New("session ID and user ID are required for replace")
	}

	filter := bson.M{"_id": session.ID, "userId": session.UserID}
	result, err := r.collection.ReplaceOne(ctx, filter, session)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a session only when it belongs to userID.
func (r *mongoSessionRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "userId": userID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// sessionFilter always scopes by owner.
func sessionFilter(userID primitive.ObjectID, query repository.SessionQuery) bson.D {
	filter := bson.D{{Key: "userId", Value: userID}}
	if query.ExerciseName != "" {
		filter = append(filter, bson.E{Key: "exercisesPerformed.exerciseName", Value: query.ExerciseName})
	}

	dateRange := bson.D{}
	if query.From != nil {
		dateRange = append(dateRange, bson.E{Key: "$gte", Value: *query.From})
	}
	if query.To != nil {
		dateRange = append(dateRange, bson.E{Key: "$lt", Value: *query.To})
	}
	if len(dateRange) > 0 {
		filter = append(filter, bson.E{Key: "date", Value: dateRange})
	}
	return filter
}

// sessionSort breaks date ties by _id so equal dates resolve to the later insert.
func sessionSort(order repository.SortOrder) bson.D {
	direction := 1
	if order == repository.SortDateDesc {
		direction = -1
	}
	return bson.D{{Key: "date", Value: direction}, {Key: "_id", Value: direction}}
}

// EnsureSessionIndexes creates necessary indexes. Call during startup.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Volume trend and session listing
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			// E1RM trend and last performance lookups
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exercisesPerformed.exerciseName", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
