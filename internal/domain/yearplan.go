package domain

// YearPlan is the aggregate root: one year and its twelve months.
// It is the unit of persistence and of import/export.
type YearPlan struct {
	Year   int      `json:"year"`
	Months []*Month `json:"months"`
}

// NewEmptyYearPlan builds a twelve-month skeleton with no goals and every
// month open. Months are never added or removed afterwards.
func NewEmptyYearPlan(year int) *YearPlan {
	months := make([]*Month, 0, len(MonthNames))
	for i, name := range MonthNames {
		months = append(months, &Month{
			ID:       i + 1,
			Name:     name,
			Goals:    []*Goal{},
			IsClosed: false,
		})
	}
	return &YearPlan{Year: year, Months: months}
}

// FindMonth returns the month with the given id, or nil
func (p *YearPlan) FindMonth(monthID int) *Month {
	for _, m := range p.Months {
		if m.ID == monthID {
			return m
		}
	}
	return nil
}

// AllGoals flattens every month's goals in month order
func (p *YearPlan) AllGoals() []*Goal {
	var goals []*Goal
	for _, m := range p.Months {
		goals = append(goals, m.Goals...)
	}
	return goals
}

// GoalsByType returns all goals of the given type across the year
func (p *YearPlan) GoalsByType(goalType GoalType) []*Goal {
	var goals []*Goal
	for _, m := range p.Months {
		for _, g := range m.Goals {
			if g.Type == goalType {
				goals = append(goals, g)
			}
		}
	}
	return goals
}

// Clone returns a deep copy of the plan
func (p *YearPlan) Clone() *YearPlan {
	cp := &YearPlan{Year: p.Year, Months: make([]*Month, 0, len(p.Months))}
	for _, m := range p.Months {
		goals := make([]*Goal, 0, len(m.Goals))
		for _, g := range m.Goals {
			goals = append(goals, g.Clone())
		}
		cp.Months = append(cp.Months, &Month{
			ID:       m.ID,
			Name:     m.Name,
			Goals:    goals,
			IsClosed: m.IsClosed,
		})
	}
	return cp
}

// YearPlanRepository is the persistence contract for year plans,
// keyed by year
type YearPlanRepository interface {
	Load(year int) (*YearPlan, error)
	Save(plan *YearPlan) error
	LoadAll() ([]*YearPlan, error)
	Delete(year int) error
}
