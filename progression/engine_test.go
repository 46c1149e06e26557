package progression

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"strivehub/models"
)

// memStore is an in-memory Store with transaction rollback, used to exercise
// the engine without a database.
type memStore struct {
	users      map[primitive.ObjectID]*memUser
	history    []models.XPHistoryRecord
	activities []models.ActivityRecord

	failSetTitle    bool
	failHistory     bool
	failActivity    bool
	failStreakWrite bool
}

type memUser struct {
	xpTotal     int
	title       string
	streakCount int
	lastActive  *time.Time
}

func newMemStore() *memStore {
	return &memStore{users: make(map[primitive.ObjectID]*memUser)}
}

func (s *memStore) addUser(id primitive.ObjectID) {
	s.users[id] = &memUser{title: TitleForXP(0)}
}

func (s *memStore) WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	// Snapshot state so a failing callback rolls everything back.
	usersCopy := make(map[primitive.ObjectID]*memUser, len(s.users))
	for id, u := range s.users {
		copied := *u
		if u.lastActive != nil {
			la := *u.lastActive
			copied.lastActive = &la
		}
		usersCopy[id] = &copied
	}
	historyLen := len(s.history)
	activitiesLen := len(s.activities)

	if err := fn(ctx); err != nil {
		s.users = usersCopy
		s.history = s.history[:historyLen]
		s.activities = s.activities[:activitiesLen]
		return err
	}
	return nil
}

func (s *memStore) IncrementXP(ctx context.Context, userID primitive.ObjectID, amount int) (int, error) {
	u, ok := s.users[userID]
	if !ok {
		return 0, ErrUserNotFound
	}
	u.xpTotal += amount
	return u.xpTotal, nil
}

func (s *memStore) SetTitle(ctx context.Context, userID primitive.ObjectID, title string) error {
	if s.failSetTitle {
		return errors.New("injected title failure")
	}
	u, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.title = title
	return nil
}

func (s *memStore) InsertXPHistory(ctx context.Context, rec models.XPHistoryRecord) error {
	if s.failHistory {
		return errors.New("injected history failure")
	}
	s.history = append(s.history, rec)
	return nil
}

func (s *memStore) InsertActivity(ctx context.Context, rec models.ActivityRecord) error {
	if s.failActivity {
		return errors.New("injected activity failure")
	}
	s.activities = append(s.activities, rec)
	return nil
}

func (s *memStore) StreakState(ctx context.Context, userID primitive.ObjectID) (int, *time.Time, error) {
	u, ok := s.users[userID]
	if !ok {
		return 0, nil, ErrUserNotFound
	}
	return u.streakCount, u.lastActive, nil
}

func (s *memStore) SetStreakState(ctx context.Context, userID primitive.ObjectID, count int, lastActive time.Time) error {
	if s.failStreakWrite {
		return errors.New("injected streak failure")
	}
	u, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.streakCount = count
	u.lastActive = &lastActive
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func newTestEngine(store *memStore) *Engine {
	return NewEngine(store, WithLocation(time.UTC), WithClock(fixedClock(testNow)))
}

func TestAwardXPUpdatesTotalTitleAndLedger(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	engine := newTestEngine(store)

	srcID := primitive.NewObjectID()
	title, err := engine.AwardXP(context.Background(), uid, 120, SourceQuizComplete, &srcID)
	if err != nil {
		t.Fatalf("AwardXP failed: %v", err)
	}
	if title != "Beginner+" {
		t.Errorf("expected title Beginner+, got %q", title)
	}

	u := store.users[uid]
	if u.xpTotal != 120 {
		t.Errorf("expected xpTotal 120, got %d", u.xpTotal)
	}
	if u.title != TitleForXP(u.xpTotal) {
		t.Errorf("title %q inconsistent with xp total %d", u.title, u.xpTotal)
	}
	if len(store.history) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(store.history))
	}
	if len(store.activities) != 1 {
		t.Fatalf("expected 1 activity record, got %d", len(store.activities))
	}
	rec := store.history[0]
	if rec.XPAmount != 120 || rec.SourceType != "quiz_complete" || rec.SourceID == nil || *rec.SourceID != srcID {
		t.Errorf("unexpected history record: %+v", rec)
	}
	if store.activities[0].XPEarned != rec.XPAmount {
		t.Errorf("activity xp %d does not match ledger xp %d", store.activities[0].XPEarned, rec.XPAmount)
	}
}

func TestAwardXPTitleConsistentAcrossSequence(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	engine := newTestEngine(store)

	amounts := []int{50, 49, 1, 400, 1500, 3000, 5000, 0}
	total := 0
	for _, amount := range amounts {
		title, err := engine.AwardXP(context.Background(), uid, amount, SourceChallengeComplete, nil)
		if err != nil {
			t.Fatalf("AwardXP(%d) failed: %v", amount, err)
		}
		total += amount

		u := store.users[uid]
		if u.xpTotal != total {
			t.Fatalf("after award of %d: xpTotal %d, want %d", amount, u.xpTotal, total)
		}
		if title != TitleForXP(total) || u.title != TitleForXP(total) {
			t.Errorf("after total %d: title %q, want %q", total, u.title, TitleForXP(total))
		}
	}
	if len(store.history) != len(amounts) {
		t.Errorf("expected %d ledger rows, got %d", len(amounts), len(store.history))
	}
}

func TestAwardXPZeroAmountStillRecorded(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	engine := newTestEngine(store)

	cid := primitive.NewObjectID()
	title, err := engine.AwardXP(context.Background(), uid, 0, SourceChallengeComplete, &cid)
	if err != nil {
		t.Fatalf("zero award failed: %v", err)
	}
	if title != "Beginner" {
		t.Errorf("expected title Beginner, got %q", title)
	}
	if store.users[uid].xpTotal != 0 {
		t.Errorf("zero award changed xpTotal to %d", store.users[uid].xpTotal)
	}
	if len(store.history) != 1 || store.history[0].XPAmount != 0 {
		t.Errorf("expected one zero-amount ledger row, got %+v", store.history)
	}
	if len(store.activities) != 1 || store.activities[0].XPEarned != 0 {
		t.Errorf("expected one zero-amount activity, got %+v", store.activities)
	}
}

func TestAwardXPRejectsNegativeAmount(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	engine := newTestEngine(store)

	if _, err := engine.AwardXP(context.Background(), uid, -10, SourceQuizComplete, nil); err == nil {
		t.Fatal("expected error for negative amount")
	}
	if store.users[uid].xpTotal != 0 || len(store.history) != 0 || len(store.activities) != 0 {
		t.Error("negative award must not write anything")
	}
}

func TestAwardXPRejectsUnknownSource(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	engine := newTestEngine(store)

	if _, err := engine.AwardXP(context.Background(), uid, 10, Source("level_up"), nil); err == nil {
		t.Fatal("expected error for unknown source")
	}
	if store.users[uid].xpTotal != 0 || len(store.history) != 0 {
		t.Error("unknown source must not write anything")
	}
}

func TestAwardXPRollsBackOnLedgerFailure(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	engine := newTestEngine(store)

	if _, err := engine.AwardXP(context.Background(), uid, 200, SourceQuizComplete, nil); err != nil {
		t.Fatalf("setup award failed: %v", err)
	}

	store.failHistory = true
	if _, err := engine.AwardXP(context.Background(), uid, 500, SourceQuizComplete, nil); err == nil {
		t.Fatal("expected error when ledger write fails")
	}

	u := store.users[uid]
	if u.xpTotal != 200 {
		t.Errorf("rollback left xpTotal %d, want 200", u.xpTotal)
	}
	if u.title != TitleForXP(200) {
		t.Errorf("rollback left title %q, want %q", u.title, TitleForXP(200))
	}
	if len(store.history) != 1 || len(store.activities) != 1 {
		t.Errorf("rollback left %d history / %d activity rows, want 1/1", len(store.history), len(store.activities))
	}
}

func TestAwardXPRollsBackOnActivityFailure(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	engine := newTestEngine(store)

	store.failActivity = true
	if _, err := engine.AwardXP(context.Background(), uid, 50, SourceSkillAdded, nil); err == nil {
		t.Fatal("expected error when activity write fails")
	}
	if store.users[uid].xpTotal != 0 || len(store.history) != 0 {
		t.Error("partial award leaked after activity failure")
	}
}

func TestTouchStreakFirstActivity(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	engine := newTestEngine(store)

	count, err := engine.TouchStreak(context.Background(), uid)
	if err != nil {
		t.Fatalf("TouchStreak failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected streak 1, got %d", count)
	}
	u := store.users[uid]
	if u.lastActive == nil || !u.lastActive.Equal(Midnight(testNow, time.UTC)) {
		t.Errorf("lastActive not set to today: %v", u.lastActive)
	}
	if len(store.history) != 0 {
		t.Errorf("streak of 1 must not award a bonus, got %d ledger rows", len(store.history))
	}
}

func TestTouchStreakSameDayIdempotent(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	engine := newTestEngine(store)

	if _, err := engine.TouchStreak(context.Background(), uid); err != nil {
		t.Fatalf("first touch failed: %v", err)
	}
	count, err := engine.TouchStreak(context.Background(), uid)
	if err != nil {
		t.Fatalf("second touch failed: %v", err)
	}
	if count != 1 {
		t.Errorf("second same-day touch changed streak to %d", count)
	}
	if store.users[uid].streakCount != 1 {
		t.Errorf("stored streak changed to %d", store.users[uid].streakCount)
	}
}

func TestTouchStreakConsecutiveDayAwardsBonusAtSeven(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	yesterday := Midnight(testNow, time.UTC).AddDate(0, 0, -1)
	store.users[uid].streakCount = 6
	store.users[uid].lastActive = &yesterday
	engine := newTestEngine(store)

	count, err := engine.TouchStreak(context.Background(), uid)
	if err != nil {
		t.Fatalf("TouchStreak failed: %v", err)
	}
	if count != 7 {
		t.Errorf("expected streak 7, got %d", count)
	}
	if len(store.history) != 1 {
		t.Fatalf("expected one bonus ledger row, got %d", len(store.history))
	}
	rec := store.history[0]
	if rec.SourceType != "streak_achieved" || rec.XPAmount != 14 {
		t.Errorf("expected streak_achieved bonus of 14, got %q %d", rec.SourceType, rec.XPAmount)
	}
	if store.users[uid].xpTotal != 14 {
		t.Errorf("bonus not credited: xpTotal %d", store.users[uid].xpTotal)
	}
}

func TestTouchStreakGapResetsWithoutBonus(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	fiveDaysAgo := Midnight(testNow, time.UTC).AddDate(0, 0, -5)
	store.users[uid].streakCount = 20
	store.users[uid].lastActive = &fiveDaysAgo
	engine := newTestEngine(store)

	count, err := engine.TouchStreak(context.Background(), uid)
	if err != nil {
		t.Fatalf("TouchStreak failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected streak reset to 1, got %d", count)
	}
	if len(store.history) != 0 {
		t.Errorf("reset must not award a bonus, got %d ledger rows", len(store.history))
	}
}

func TestTouchStreakBonusCapped(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	yesterday := Midnight(testNow, time.UTC).AddDate(0, 0, -1)
	store.users[uid].streakCount = 34
	store.users[uid].lastActive = &yesterday
	engine := newTestEngine(store)

	count, err := engine.TouchStreak(context.Background(), uid)
	if err != nil {
		t.Fatalf("TouchStreak failed: %v", err)
	}
	if count != 35 {
		t.Errorf("expected streak 35, got %d", count)
	}
	if len(store.history) != 1 || store.history[0].XPAmount != 50 {
		t.Errorf("expected capped bonus of 50, got %+v", store.history)
	}
}

func TestTouchStreakRollsBackOnWriteFailure(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	engine := newTestEngine(store)

	store.failStreakWrite = true
	if _, err := engine.TouchStreak(context.Background(), uid); err == nil {
		t.Fatal("expected error when streak write fails")
	}
	u := store.users[uid]
	if u.streakCount != 0 || u.lastActive != nil {
		t.Errorf("failed touch mutated streak state: count=%d lastActive=%v", u.streakCount, u.lastActive)
	}
}

// eventRecorder captures broadcast events for assertions.
type eventRecorder struct {
	events []models.GamificationEvent
}

func (r *eventRecorder) Notify(event models.GamificationEvent) {
	r.events = append(r.events, event)
}

func TestAwardXPNotifiesAfterCommit(t *testing.T) {
	store := newMemStore()
	uid := primitive.NewObjectID()
	store.addUser(uid)
	recorder := &eventRecorder{}
	engine := NewEngine(store, WithLocation(time.UTC), WithClock(fixedClock(testNow)), WithNotifier(recorder))

	if _, err := engine.AwardXP(context.Background(), uid, 30, SourceCommunityPost, nil); err != nil {
		t.Fatalf("AwardXP failed: %v", err)
	}
	if len(recorder.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(recorder.events))
	}
	ev := recorder.events[0]
	if ev.Type != "xp_awarded" || ev.NewTotal != 30 || ev.Source != "community_post" {
		t.Errorf("unexpected event: %+v", ev)
	}

	// A failed award must not notify.
	store.failHistory = true
	engine.AwardXP(context.Background(), uid, 10, SourceCommunityPost, nil)
	if len(recorder.events) != 1 {
		t.Errorf("failed award broadcast an event")
	}
}
