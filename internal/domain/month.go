package domain

import (
	"math"
	"strings"
)

// Evaluation is the tier assigned to a month's or year's overall progress
type Evaluation string

const (
	EvaluationMet         Evaluation = "met"
	EvaluationProgressing Evaluation = "progressing"
	EvaluationBehind      Evaluation = "behind"
)

// MonthNames holds display names indexed by month number minus one
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Month is a container of goals for one calendar month of the plan
type Month struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Goals    []*Goal `json:"goals"`
	IsClosed bool    `json:"isClosed"`
}

// MonthSummary aggregates a set of goals into totals and an evaluation tier
type MonthSummary struct {
	TotalGoals         int        `json:"totalGoals"`
	CompletedGoals     int        `json:"completedGoals"`
	PendingGoals       int        `json:"pendingGoals"`
	ProgressPercentage int        `json:"progressPercentage"`
	Evaluation         Evaluation `json:"evaluation"`
}

// SummarizeGoals computes the summary for an arbitrary goal set. The same
// tiering is used for single months and for the whole year.
func SummarizeGoals(goals []*Goal) MonthSummary {
	total := len(goals)
	completed := 0
	for _, g := range goals {
		if g.Status == GoalStatusCompleted {
			completed++
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return MonthSummary{
		TotalGoals:         total,
		CompletedGoals:     completed,
		PendingGoals:       total - completed,
		ProgressPercentage: percentage,
		Evaluation:         EvaluateProgress(percentage),
	}
}

// EvaluateProgress maps a completion percentage to an evaluation tier
func EvaluateProgress(percentage int) Evaluation {
	switch {
	case percentage >= 80:
		return EvaluationMet
	case percentage >= 50:
		return EvaluationProgressing
	default:
		return EvaluationBehind
	}
}

// Summary aggregates the month's goals
func (m *Month) Summary() MonthSummary {
	return SummarizeGoals(m.Goals)
}

// FindGoal returns the goal with the given id, or nil
func (m *Month) FindGoal(goalID string) *Goal {
	for _, g := range m.Goals {
		if g.ID == goalID {
			return g
		}
	}
	return nil
}

// MonthName returns the display name for a month number, empty if out of range
func MonthName(id int) string {
	if id < 1 || id > 12 {
		return ""
	}
	return MonthNames[id-1]
}

// MonthIDByName resolves a display name back to a month number,
// case-insensitively. Unrecognized names resolve to January.
func MonthIDByName(name string) int {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i, n := range MonthNames {
		if strings.ToLower(n) == normalized {
			return i + 1
		}
	}
	return 1
}
