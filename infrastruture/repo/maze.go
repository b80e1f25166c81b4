package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/mazelab/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	writeTimeout = time.Second
	readTimeout  = 2 * time.Second
)

// MazeRepo handles the persistence of saved mazes.
type MazeRepo struct {
	collection *mongo.Collection
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MazeRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the unique fingerprint index mazes are deduplicated on.
func (m *MazeRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "maze.fingerprint", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Save inserts or updates a maze in the repository.
// If the maze already exists, it updates the existing record.
// If the maze does not exist, it adds a new record.
func (m *MazeRepo) Save(ctx context.Context, maze *dmn.SavedMaze) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	filter := bson.M{"_id": maze.ID}
	update := bson.M{
		"$set": bson.M{
			"algorithm": maze.Algorithm,
			"seed":      maze.Seed,
			"maze":      maze.Maze,
			"createdAt": maze.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: fingerprint %s", dmn.ErrMazeExists, maze.Maze.Fingerprint)
		}
		return fmt.Errorf("unexpected error: %w", err)
	}

	return nil
}

// ByID retrieves a maze by its ID.
// Returns dmn.ErrMazeNotFound if the maze is not found.
func (m *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.SavedMaze, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

// ByFingerprint retrieves the maze with the given wall layout fingerprint.
// Returns dmn.ErrMazeNotFound if the maze is not found.
func (m *MazeRepo) ByFingerprint(ctx context.Context, fingerprint string) (*dmn.SavedMaze, error) {
	return m.findOne(ctx, bson.M{"maze.fingerprint": fingerprint})
}

func (m *MazeRepo) findOne(ctx context.Context, filter bson.M) (*dmn.SavedMaze, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var maze dmn.SavedMaze
	if err := m.collection.FindOne(ctx, filter).Decode(&maze); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrMazeNotFound
		}
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return &maze, nil
}
