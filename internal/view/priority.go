package view

import (
	"time"

	"gtdone/internal/model"
)

// Priority score weights. The score is a deterministic function of the
// task's fields and the current date, bounded to [0, 100].
const (
	overdueBonus  = 30
	dueTodayBonus = 20
	starredBonus  = 15

	nextBonus    = 20
	inboxBonus   = 10
	waitingBonus = 5

	agePenaltyPerWeek = 1
	maxAgePenalty     = 15
)

// PriorityScore ranks a task for the "engage" view. Completed tasks score 0.
func PriorityScore(t model.Task, now time.Time) int {
	if t.Completed {
		return 0
	}

	score := 10

	switch t.Status {
	case model.StatusNext:
		score += nextBonus
	case model.StatusInbox:
		score += inboxBonus
	case model.StatusWaiting:
		score += waitingBonus
	}

	if t.IsOverdue(now) {
		score += overdueBonus
	} else if t.IsDueToday(now) {
		score += dueTodayBonus
	}

	if t.Starred {
		score += starredBonus
	}

	if weeks := int(now.Sub(t.CreatedAt).Hours() / (24 * 7)); weeks > 0 {
		penalty := weeks * agePenaltyPerWeek
		if penalty > maxAgePenalty {
			penalty = maxAgePenalty
		}
		score -= penalty
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
