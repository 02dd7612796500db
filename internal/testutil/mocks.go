// Package testutil provides in-memory fakes shared by service and handler
// tests.
package testutil

import (
	"sort"
	"sync"

	"github.com/planvida/planvida-backend/internal/domain"
)

// MockYearPlanRepository is a mock implementation of domain.YearPlanRepository
type MockYearPlanRepository struct {
	Plans     map[int]*domain.YearPlan
	SaveCount int
	SaveFn    func(plan *domain.YearPlan) error
	LoadFn    func(year int) (*domain.YearPlan, error)
}

// NewMockYearPlanRepository creates a new MockYearPlanRepository
func NewMockYearPlanRepository() *MockYearPlanRepository {
	return &MockYearPlanRepository{
		Plans: make(map[int]*domain.YearPlan),
	}
}

// AddPlan seeds a stored plan
func (m *MockYearPlanRepository) AddPlan(plan *domain.YearPlan) {
	m.Plans[plan.Year] = plan
}

// Load retrieves the plan for a year
func (m *MockYearPlanRepository) Load(year int) (*domain.YearPlan, error) {
	if m.LoadFn != nil {
		return m.LoadFn(year)
	}
	if plan, ok := m.Plans[year]; ok {
		return plan, nil
	}
	return nil, domain.ErrYearPlanNotFound
}

// Save stores the plan under its year
func (m *MockYearPlanRepository) Save(plan *domain.YearPlan) error {
	m.SaveCount++
	if m.SaveFn != nil {
		return m.SaveFn(plan)
	}
	m.Plans[plan.Year] = plan
	return nil
}

// LoadAll returns every stored plan ordered by year
func (m *MockYearPlanRepository) LoadAll() ([]*domain.YearPlan, error) {
	years := make([]int, 0, len(m.Plans))
	for year := range m.Plans {
		years = append(years, year)
	}
	sort.Ints(years)

	plans := make([]*domain.YearPlan, 0, len(years))
	for _, year := range years {
		plans = append(plans, m.Plans[year])
	}
	return plans, nil
}

// Delete removes the plan for a year
func (m *MockYearPlanRepository) Delete(year int) error {
	delete(m.Plans, year)
	return nil
}

// MockFinanceRepository is a mock implementation of domain.FinanceRepository
type MockFinanceRepository struct {
	Data      map[int]*domain.FinancialData
	SaveCount int
	SaveFn    func(fin *domain.FinancialData) error
}

// NewMockFinanceRepository creates a new MockFinanceRepository
func NewMockFinanceRepository() *MockFinanceRepository {
	return &MockFinanceRepository{
		Data: make(map[int]*domain.FinancialData),
	}
}

// AddData seeds stored financial data
func (m *MockFinanceRepository) AddData(fin *domain.FinancialData) {
	m.Data[fin.Year] = fin
}

// Load retrieves the financial data for a year
func (m *MockFinanceRepository) Load(year int) (*domain.FinancialData, error) {
	if fin, ok := m.Data[year]; ok {
		return fin, nil
	}
	return nil, domain.ErrFinanceNotFound
}

// Save stores the financial data under its year
func (m *MockFinanceRepository) Save(fin *domain.FinancialData) error {
	m.SaveCount++
	if m.SaveFn != nil {
		return m.SaveFn(fin)
	}
	m.Data[fin.Year] = fin
	return nil
}

// Delete removes the financial data for a year
func (m *MockFinanceRepository) Delete(year int) error {
	delete(m.Data, year)
	return nil
}

// PublishedEvent is one recorded notifier call
type PublishedEvent struct {
	Entity  string
	Action  string
	Payload interface{}
}

// MockNotifier records published change events
type MockNotifier struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Publish records the event
func (m *MockNotifier) Publish(entity string, action string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{Entity: entity, Action: action, Payload: payload})
}

// Last returns the most recent event, or a zero event when none were
// published
func (m *MockNotifier) Last() PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Events) == 0 {
		return PublishedEvent{}
	}
	return m.Events[len(m.Events)-1]
}
