package progression

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"strivehub/models"
)

// ErrUserNotFound is returned when an award or streak touch targets a user
// that does not exist.
var ErrUserNotFound = errors.New("user not found")

// Store is the persistence surface the engine drives. WithTransaction must
// execute fn atomically: every store call made with the callback's context
// commits together or not at all. Production uses Mongo sessions; tests use an
// in-memory store.
type Store interface {
	WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error

	// IncrementXP adds amount to the user's xp_total and returns the updated
	// total, holding the row for the rest of the transaction.
	IncrementXP(ctx context.Context, userID primitive.ObjectID, amount int) (int, error)

	// SetTitle persists the recomputed title. Idempotent.
	SetTitle(ctx context.Context, userID primitive.ObjectID, title string) error

	InsertXPHistory(ctx context.Context, rec models.XPHistoryRecord) error
	InsertActivity(ctx context.Context, rec models.ActivityRecord) error

	// StreakState returns the user's current streak counter and last active
	// date (nil when the user has never been active).
	StreakState(ctx context.Context, userID primitive.ObjectID) (int, *time.Time, error)

	// SetStreakState updates the counter and last active date together.
	SetStreakState(ctx context.Context, userID primitive.ObjectID, count int, lastActive time.Time) error
}
