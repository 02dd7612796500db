package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/planvida/planvida-backend/internal/domain"
	"github.com/planvida/planvida-backend/internal/service"
)

// PlannerHandler handles year-plan and goal HTTP requests
type PlannerHandler struct {
	planner *service.PlannerService
}

// NewPlannerHandler creates a new PlannerHandler
func NewPlannerHandler(planner *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{planner: planner}
}

// GoalRequest represents a goal create/update payload
type GoalRequest struct {
	Title        string          `json:"title"`
	Type         string          `json:"type"`
	TargetValue  decimal.Decimal `json:"targetValue"`
	CurrentValue decimal.Decimal `json:"currentValue"`

	Destination  *string                `json:"destination,omitempty"`
	TravelStatus *domain.TravelStatus   `json:"travelStatus,omitempty"`
	Expenses     []domain.ExpenseItem   `json:"expenses,omitempty"`

	Product        *string                `json:"product,omitempty"`
	PurchaseStatus *domain.PurchaseStatus `json:"purchaseStatus,omitempty"`
	PurchaseItems  []domain.ExpenseItem   `json:"purchaseItems,omitempty"`
}

// GoalUpdateRequest represents a partial goal update payload
type GoalUpdateRequest struct {
	Title        *string          `json:"title,omitempty"`
	Type         *string          `json:"type,omitempty"`
	TargetValue  *decimal.Decimal `json:"targetValue,omitempty"`
	CurrentValue *decimal.Decimal `json:"currentValue,omitempty"`
	CarryOver    *bool            `json:"carryOver,omitempty"`

	Destination  *string              `json:"destination,omitempty"`
	TravelStatus *domain.TravelStatus `json:"travelStatus,omitempty"`
	Expenses     []domain.ExpenseItem `json:"expenses,omitempty"`

	Product        *string                `json:"product,omitempty"`
	PurchaseStatus *domain.PurchaseStatus `json:"purchaseStatus,omitempty"`
	PurchaseItems  []domain.ExpenseItem   `json:"purchaseItems,omitempty"`
}

// DistributedGoalRequest represents a distributed goal payload
type DistributedGoalRequest struct {
	Title       string          `json:"title"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	StartMonth  int             `json:"startMonth"`
	EndMonth    int             `json:"endMonth"`
}

// GetPlan handles GET /api/v1/plan
func (h *PlannerHandler) GetPlan(c echo.Context) error {
	return c.JSON(http.StatusOK, h.planner.Plan())
}

// GetYearSummary handles GET /api/v1/plan/summary
func (h *PlannerHandler) GetYearSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.planner.YearSummary())
}

// GetMonthSummary handles GET /api/v1/plan/months/:monthId/summary
func (h *PlannerHandler) GetMonthSummary(c echo.Context) error {
	monthID, ok := monthParam(c)
	if !ok {
		return invalidMonthError(c)
	}
	return c.JSON(http.StatusOK, h.planner.MonthSummary(monthID))
}

// GetMonthlySavings handles GET /api/v1/plan/months/:monthId/savings
func (h *PlannerHandler) GetMonthlySavings(c echo.Context) error {
	monthID, ok := monthParam(c)
	if !ok {
		return invalidMonthError(c)
	}
	return c.JSON(http.StatusOK, map[string]decimal.Decimal{
		"total": h.planner.MonthlySavingsTotal(monthID),
	})
}

// GetGoalsByType handles GET /api/v1/plan/goals?type=savings
func (h *PlannerHandler) GetGoalsByType(c echo.Context) error {
	goalType := domain.GoalType(c.QueryParam("type"))
	if _, ok := domain.GoalTypeLabels[goalType]; !ok {
		return NewValidationError(c, "Invalid goal type", []ValidationError{
			{Field: "type", Message: "Type must be savings, travel or purchase"},
		})
	}

	goals := h.planner.GoalsByType(goalType)
	if goals == nil {
		goals = []*domain.Goal{}
	}
	return c.JSON(http.StatusOK, goals)
}

// CreateGoal handles POST /api/v1/plan/months/:monthId/goals
func (h *PlannerHandler) CreateGoal(c echo.Context) error {
	monthID, ok := monthParam(c)
	if !ok {
		return invalidMonthError(c)
	}

	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if errs := validateGoalRequest(req); len(errs) > 0 {
		return NewValidationError(c, "Invalid goal", errs)
	}

	goal := h.planner.AddGoal(monthID, service.AddGoalInput{
		Title:          req.Title,
		Type:           domain.GoalType(req.Type),
		TargetValue:    req.TargetValue,
		CurrentValue:   req.CurrentValue,
		Destination:    req.Destination,
		TravelStatus:   req.TravelStatus,
		Expenses:       req.Expenses,
		Product:        req.Product,
		PurchaseStatus: req.PurchaseStatus,
		PurchaseItems:  req.PurchaseItems,
	})
	if goal == nil {
		return NewNotFoundError(c, "Month not found")
	}

	return c.JSON(http.StatusCreated, goal)
}

// CreateDistributedGoal handles POST /api/v1/plan/goals/distributed
func (h *PlannerHandler) CreateDistributedGoal(c echo.Context) error {
	var req DistributedGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var errs []ValidationError
	if req.Title == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "Title is required"})
	}
	if !req.TotalAmount.GreaterThan(decimal.Zero) {
		errs = append(errs, ValidationError{Field: "totalAmount", Message: "Total amount must be positive"})
	}
	if req.StartMonth < 1 || req.StartMonth > 12 {
		errs = append(errs, ValidationError{Field: "startMonth", Message: "Start month must be between 1 and 12"})
	}
	if req.EndMonth < 1 || req.EndMonth > 12 {
		errs = append(errs, ValidationError{Field: "endMonth", Message: "End month must be between 1 and 12"})
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid distributed goal", errs)
	}

	goals := h.planner.AddDistributedGoal(service.DistributedGoalInput{
		Title:       req.Title,
		TotalAmount: req.TotalAmount,
		StartMonth:  req.StartMonth,
		EndMonth:    req.EndMonth,
	})
	if goals == nil {
		goals = []*domain.Goal{}
	}
	return c.JSON(http.StatusCreated, goals)
}

// UpdateGoal handles PUT /api/v1/plan/months/:monthId/goals/:goalId
func (h *PlannerHandler) UpdateGoal(c echo.Context) error {
	monthID, ok := monthParam(c)
	if !ok {
		return invalidMonthError(c)
	}

	var req GoalUpdateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	update := service.GoalUpdate{
		Title:          req.Title,
		TargetValue:    req.TargetValue,
		CurrentValue:   req.CurrentValue,
		CarryOver:      req.CarryOver,
		Destination:    req.Destination,
		TravelStatus:   req.TravelStatus,
		Expenses:       req.Expenses,
		Product:        req.Product,
		PurchaseStatus: req.PurchaseStatus,
		PurchaseItems:  req.PurchaseItems,
	}
	if req.Type != nil {
		goalType := domain.GoalType(*req.Type)
		if _, ok := domain.GoalTypeLabels[goalType]; !ok {
			return NewValidationError(c, "Invalid goal type", []ValidationError{
				{Field: "type", Message: "Type must be savings, travel or purchase"},
			})
		}
		update.Type = &goalType
	}

	goal := h.planner.UpdateGoal(monthID, c.Param("goalId"), update)
	if goal == nil {
		return NewNotFoundError(c, "Goal not found")
	}

	return c.JSON(http.StatusOK, goal)
}

// DeleteGoal handles DELETE /api/v1/plan/months/:monthId/goals/:goalId
func (h *PlannerHandler) DeleteGoal(c echo.Context) error {
	monthID, ok := monthParam(c)
	if !ok {
		return invalidMonthError(c)
	}

	h.planner.DeleteGoal(monthID, c.Param("goalId"))
	return c.NoContent(http.StatusNoContent)
}

// CloseMonth handles POST /api/v1/plan/months/:monthId/close
func (h *PlannerHandler) CloseMonth(c echo.Context) error {
	monthID, ok := monthParam(c)
	if !ok {
		return invalidMonthError(c)
	}

	h.planner.CloseMonth(monthID)
	return c.NoContent(http.StatusNoContent)
}

// ReopenMonth handles POST /api/v1/plan/months/:monthId/reopen
func (h *PlannerHandler) ReopenMonth(c echo.Context) error {
	monthID, ok := monthParam(c)
	if !ok {
		return invalidMonthError(c)
	}

	h.planner.ReopenMonth(monthID)
	return c.NoContent(http.StatusNoContent)
}

// ChangeYear handles PUT /api/v1/plan/year
func (h *PlannerHandler) ChangeYear(c echo.Context) error {
	var req struct {
		Year int `json:"year"`
	}
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Year < 2000 || req.Year > 2100 {
		return NewValidationError(c, "Invalid year", []ValidationError{
			{Field: "year", Message: "Year must be between 2000 and 2100"},
		})
	}

	h.planner.ChangeYear(req.Year)
	return c.JSON(http.StatusOK, h.planner.Plan())
}

// ResetYear handles POST /api/v1/plan/reset
func (h *PlannerHandler) ResetYear(c echo.Context) error {
	h.planner.ResetYear()
	return c.JSON(http.StatusOK, h.planner.Plan())
}

// ListPlans handles GET /api/v1/plans
func (h *PlannerHandler) ListPlans(c echo.Context) error {
	plans, err := h.planner.ListPlans()
	if err != nil {
		return NewInternalError(c, "Failed to list year plans")
	}
	if plans == nil {
		plans = []*domain.YearPlan{}
	}
	return c.JSON(http.StatusOK, plans)
}

// DeletePlan handles DELETE /api/v1/plans/:year
func (h *PlannerHandler) DeletePlan(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return NewValidationError(c, "Invalid year", []ValidationError{
			{Field: "year", Message: "Year must be a number"},
		})
	}

	if err := h.planner.DeleteYear(year); err != nil {
		return NewInternalError(c, "Failed to delete year plan")
	}
	return c.NoContent(http.StatusNoContent)
}

func monthParam(c echo.Context) (int, bool) {
	monthID, err := strconv.Atoi(c.Param("monthId"))
	if err != nil || monthID < 1 || monthID > 12 {
		return 0, false
	}
	return monthID, true
}

func invalidMonthError(c echo.Context) error {
	return NewValidationError(c, "Invalid month", []ValidationError{
		{Field: "monthId", Message: "Month must be between 1 and 12"},
	})
}

func validateGoalRequest(req GoalRequest) []ValidationError {
	var errs []ValidationError
	if req.Title == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "Title is required"})
	}
	if _, ok := domain.GoalTypeLabels[domain.GoalType(req.Type)]; !ok {
		errs = append(errs, ValidationError{Field: "type", Message: "Type must be savings, travel or purchase"})
	}
	if req.TargetValue.IsNegative() {
		errs = append(errs, ValidationError{Field: "targetValue", Message: "Target value cannot be negative"})
	}
	if req.CurrentValue.IsNegative() {
		errs = append(errs, ValidationError{Field: "currentValue", Message: "Current value cannot be negative"})
	}
	return errs
}
