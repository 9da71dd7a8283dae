package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	dmn "github.com/mazehunt/mazehunt-api/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RunRepo handles the persistence of finished hunts.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// Save inserts a finished run. Runs are immutable once recorded.
func (r *RunRepo) Save(run *dmn.Run) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, run); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByPlayer retrieves the most recent runs of a player, newest first.
func (r *RunRepo) ByPlayer(id uuid.UUID, limit int64) ([]*dmn.Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"playerId": id}
	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	var runs []*dmn.Run
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return runs, nil
}
