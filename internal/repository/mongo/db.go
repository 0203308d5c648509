package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/multierr"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Connect succeeds lazily, so ping the primary to surface a dead server now.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection and returns all
// failures combined.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	var err error
	err = multierr.Append(err, EnsureUserIndexes(ctx, db.Collection(userCollectionName)))
	err = multierr.Append(err, EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName)))
	err = multierr.Append(err, EnsureTemplateIndexes(ctx, db.Collection(templateCollectionName)))
	err = multierr.Append(err, EnsureSessionIndexes(ctx, db.Collection(sessionCollectionName)))
	err = multierr.Append(err, EnsureExportIndexes(ctx, db.Collection(exportCollectionName)))
	return err
}
