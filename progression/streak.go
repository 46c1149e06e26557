package progression

import "time"

// StreakTransition describes what a streak touch did.
type StreakTransition int

const (
	// StreakHold means the user was already active today; nothing changes.
	StreakHold StreakTransition = iota
	// StreakExtend means the user was last active yesterday; the counter grows.
	StreakExtend
	// StreakReset means a gap (or first-ever activity); the counter restarts at 1.
	StreakReset
)

// Streak bonus tuning: a bonus fires every bonusInterval consecutive days,
// worth 2 XP per streak day, capped at bonusCap.
const (
	bonusInterval = 7
	bonusPerDay   = 2
	bonusCap      = 50
)

// NextStreak decides the streak transition for an activity on today, given the
// user's last active date and current counter. Comparison is by calendar date
// only; a user active at 23:59 and again at 00:01 counts as consecutive days.
// Both dates must be in the same location.
func NextStreak(today time.Time, lastActive *time.Time, current int) (int, StreakTransition) {
	if lastActive == nil {
		return 1, StreakReset
	}
	if sameDay(*lastActive, today) {
		return current, StreakHold
	}
	if sameDay(*lastActive, today.AddDate(0, 0, -1)) {
		return current + 1, StreakExtend
	}
	return 1, StreakReset
}

// StreakBonus returns the bonus XP owed for reaching newCount consecutive
// days, or 0 if no bonus is due. Bonuses fire at positive multiples of 7 and
// flatten at 50 XP.
func StreakBonus(newCount int) int {
	if newCount <= 0 || newCount%bonusInterval != 0 {
		return 0
	}
	bonus := newCount * bonusPerDay
	if bonus > bonusCap {
		bonus = bonusCap
	}
	return bonus
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Midnight truncates t to the start of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
