package progression

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"strivehub/models"
)

// Notifier receives gamification events after a successful commit. Implemented
// by the websocket hub; a nil notifier disables broadcasting.
type Notifier interface {
	Notify(event models.GamificationEvent)
}

// Engine coordinates XP awards, title recomputation, the append-only ledger
// and streak touches. All award writes for one call happen in one transaction:
// no caller may observe a user whose title disagrees with their XP total, or
// an XP delta without its ledger entry.
type Engine struct {
	store    Store
	notifier Notifier
	location *time.Location
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier broadcasts gamification events after commits.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithLocation sets the timezone whose midnight bounds streak days.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.location = loc }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a progression engine on top of the given store.
func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		location: time.Local,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AwardXP adds amount XP to the user, recomputes their title and appends one
// XPHistoryRecord and one ActivityRecord, atomically. A zero amount is allowed
// and still produces ledger rows (failed attempts are audited this way).
// Negative amounts and unknown sources are rejected before any write. Returns
// the user's title after the award.
func (e *Engine) AwardXP(ctx context.Context, userID primitive.ObjectID, amount int, source Source, sourceID *primitive.ObjectID) (string, error) {
	if amount < 0 {
		return "", fmt.Errorf("xp amount must be non-negative, got %d", amount)
	}
	if !source.Valid() {
		return "", fmt.Errorf("unknown xp source %q", source)
	}

	var (
		newTitle string
		newTotal int
	)
	err := e.store.WithTransaction(ctx, func(txCtx context.Context) error {
		total, err := e.store.IncrementXP(txCtx, userID, amount)
		if err != nil {
			return err
		}

		newTitle = TitleForXP(total)
		newTotal = total
		if err := e.store.SetTitle(txCtx, userID, newTitle); err != nil {
			return err
		}

		now := e.now()
		if err := e.store.InsertXPHistory(txCtx, models.XPHistoryRecord{
			ID:         primitive.NewObjectID(),
			UserID:     userID,
			SourceType: string(source),
			SourceID:   sourceID,
			XPAmount:   amount,
			CreatedAt:  now,
		}); err != nil {
			return err
		}

		meta := map[string]interface{}{}
		if sourceID != nil {
			meta["sourceId"] = sourceID.Hex()
		}
		return e.store.InsertActivity(txCtx, models.ActivityRecord{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Type:      string(source),
			Meta:      meta,
			XPEarned:  amount,
			CreatedAt: now,
		})
	})
	if err != nil {
		return "", fmt.Errorf("failed to award xp: %w", err)
	}

	if e.notifier != nil {
		e.notifier.Notify(models.GamificationEvent{
			Type:      "xp_awarded",
			UserID:    userID.Hex(),
			Source:    string(source),
			XPAmount:  amount,
			NewTotal:  newTotal,
			Title:     newTitle,
			Timestamp: e.now(),
		})
	}
	return newTitle, nil
}

// TouchStreak records that the user was active today. Same-day repeats are
// no-ops, which makes the call idempotent across the many routes that invoke
// it. Reaching a positive multiple of 7 consecutive days awards a bonus of
// min(streak*2, 50) XP through AwardXP. Returns the current streak count.
func (e *Engine) TouchStreak(ctx context.Context, userID primitive.ObjectID) (int, error) {
	today := Midnight(e.now(), e.location)

	var (
		newCount   int
		transition StreakTransition
	)
	err := e.store.WithTransaction(ctx, func(txCtx context.Context) error {
		current, lastActive, err := e.store.StreakState(txCtx, userID)
		if err != nil {
			return err
		}

		var last *time.Time
		if lastActive != nil {
			normalized := Midnight(*lastActive, e.location)
			last = &normalized
		}

		newCount, transition = NextStreak(today, last, current)
		if transition == StreakHold {
			return nil
		}
		return e.store.SetStreakState(txCtx, userID, newCount, today)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to touch streak: %w", err)
	}

	if transition == StreakHold {
		return newCount, nil
	}

	if bonus := StreakBonus(newCount); bonus > 0 {
		if _, err := e.AwardXP(ctx, userID, bonus, SourceStreakAchieved, nil); err != nil {
			return newCount, fmt.Errorf("failed to award streak bonus: %w", err)
		}
	}

	if e.notifier != nil {
		e.notifier.Notify(models.GamificationEvent{
			Type:        "streak_updated",
			UserID:      userID.Hex(),
			StreakCount: newCount,
			Timestamp:   e.now(),
		})
	}
	return newCount, nil
}
