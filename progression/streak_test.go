package progression

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextStreakFirstActivity(t *testing.T) {
	today := day(2026, 3, 10)
	count, transition := NextStreak(today, nil, 0)
	if count != 1 || transition != StreakReset {
		t.Errorf("first activity: got (%d, %v), want (1, StreakReset)", count, transition)
	}
}

func TestNextStreakSameDay(t *testing.T) {
	today := day(2026, 3, 10)
	last := today
	count, transition := NextStreak(today, &last, 6)
	if count != 6 || transition != StreakHold {
		t.Errorf("same day: got (%d, %v), want (6, StreakHold)", count, transition)
	}
}

func TestNextStreakConsecutiveDay(t *testing.T) {
	today := day(2026, 3, 10)
	last := day(2026, 3, 9)
	count, transition := NextStreak(today, &last, 6)
	if count != 7 || transition != StreakExtend {
		t.Errorf("consecutive day: got (%d, %v), want (7, StreakExtend)", count, transition)
	}
}

func TestNextStreakGapResets(t *testing.T) {
	today := day(2026, 3, 10)
	last := day(2026, 3, 5)
	count, transition := NextStreak(today, &last, 20)
	if count != 1 || transition != StreakReset {
		t.Errorf("gap: got (%d, %v), want (1, StreakReset)", count, transition)
	}
}

func TestNextStreakMonthBoundary(t *testing.T) {
	today := day(2026, 3, 1)
	last := day(2026, 2, 28)
	count, transition := NextStreak(today, &last, 3)
	if count != 4 || transition != StreakExtend {
		t.Errorf("month boundary: got (%d, %v), want (4, StreakExtend)", count, transition)
	}
}

func TestStreakBonus(t *testing.T) {
	cases := []struct {
		count int
		want  int
	}{
		{1, 0},
		{6, 0},
		{7, 14},
		{8, 0},
		{14, 28},
		{21, 42},
		{28, 50}, // 28*2=56 capped
		{30, 0},  // not a multiple of 7
		{35, 50},
		{0, 0},
	}
	for _, c := range cases {
		if got := StreakBonus(c.count); got != c.want {
			t.Errorf("StreakBonus(%d) = %d, want %d", c.count, got, c.want)
		}
	}
}

func TestMidnightTruncates(t *testing.T) {
	loc := time.UTC
	at := time.Date(2026, 3, 10, 23, 59, 12, 0, loc)
	got := Midnight(at, loc)
	want := day(2026, 3, 10)
	if !got.Equal(want) {
		t.Errorf("Midnight(%v) = %v, want %v", at, got, want)
	}
}
