package progression

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"strivehub/models"
)

// MongoStore persists progression state in MongoDB. Award atomicity comes from
// a session transaction wrapped around the engine's write sequence.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore creates a store backed by the given database.
func NewMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{client: client, db: db}
}

func (s *MongoStore) users() *mongo.Collection {
	return s.db.Collection("users")
}

// WithTransaction runs fn inside a Mongo session transaction. Store methods
// called with the callback's context join the transaction; on error everything
// rolls back.
func (s *MongoStore) WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

// IncrementXP atomically adds amount to xp_total and returns the new total.
// Expressed as a relative $inc so concurrent awards serialize on the row.
func (s *MongoStore) IncrementXP(ctx context.Context, userID primitive.ObjectID, amount int) (int, error) {
	update := bson.M{
		"$inc": bson.M{"xpTotal": amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	result := s.users().FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated struct {
		XPTotal int `bson:"xpTotal"`
	}
	if err := result.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to increment xp: %w", err)
	}
	return updated.XPTotal, nil
}

func (s *MongoStore) SetTitle(ctx context.Context, userID primitive.ObjectID, title string) error {
	_, err := s.users().UpdateByID(ctx, userID, bson.M{"$set": bson.M{"title": title}})
	if err != nil {
		return fmt.Errorf("failed to set title: %w", err)
	}
	return nil
}

func (s *MongoStore) InsertXPHistory(ctx context.Context, rec models.XPHistoryRecord) error {
	if _, err := s.db.Collection("xp_history").InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert xp history: %w", err)
	}
	return nil
}

func (s *MongoStore) InsertActivity(ctx context.Context, rec models.ActivityRecord) error {
	if _, err := s.db.Collection("activities").InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (s *MongoStore) StreakState(ctx context.Context, userID primitive.ObjectID) (int, *time.Time, error) {
	var user struct {
		StreakCount    int        `bson:"streakCount"`
		LastActiveDate *time.Time `bson:"lastActiveDate"`
	}
	err := s.users().FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil, ErrUserNotFound
		}
		return 0, nil, fmt.Errorf("failed to read streak state: %w", err)
	}
	return user.StreakCount, user.LastActiveDate, nil
}

func (s *MongoStore) SetStreakState(ctx context.Context, userID primitive.ObjectID, count int, lastActive time.Time) error {
	update := bson.M{"$set": bson.M{
		"streakCount":    count,
		"lastActiveDate": lastActive,
		"updatedAt":      time.Now(),
	}}
	_, err := s.users().UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}
	return nil
}
