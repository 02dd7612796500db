package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, plannerHandler *PlannerHandler, financeHandler *FinanceHandler, exportHandler *ExportHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Year plan routes
	plan := api.Group("/plan")
	plan.GET("", plannerHandler.GetPlan)
	plan.GET("/summary", plannerHandler.GetYearSummary)
	plan.GET("/goals", plannerHandler.GetGoalsByType)
	plan.POST("/goals/distributed", plannerHandler.CreateDistributedGoal)
	plan.PUT("/year", plannerHandler.ChangeYear)
	plan.POST("/reset", plannerHandler.ResetYear)
	plan.GET("/months/:monthId/summary", plannerHandler.GetMonthSummary)
	plan.GET("/months/:monthId/savings", plannerHandler.GetMonthlySavings)
	plan.POST("/months/:monthId/goals", plannerHandler.CreateGoal)
	plan.PUT("/months/:monthId/goals/:goalId", plannerHandler.UpdateGoal)
	plan.DELETE("/months/:monthId/goals/:goalId", plannerHandler.DeleteGoal)
	plan.POST("/months/:monthId/close", plannerHandler.CloseMonth)
	plan.POST("/months/:monthId/reopen", plannerHandler.ReopenMonth)

	// Stored plan management
	plans := api.Group("/plans")
	plans.GET("", plannerHandler.ListPlans)
	plans.DELETE("/:year", plannerHandler.DeletePlan)

	// Finance routes
	finances := api.Group("/finances")
	finances.GET("", financeHandler.GetFinances)
	finances.PUT("/year", financeHandler.ChangeYear)
	finances.POST("/reset", financeHandler.ResetFinances)
	finances.GET("/summary", financeHandler.GetMonthlySummary)
	finances.GET("/summary/year", financeHandler.GetYearlySummary)
	finances.GET("/transactions", financeHandler.GetTransactions)
	finances.POST("/transactions", financeHandler.CreateTransaction)
	finances.PUT("/transactions/:id", financeHandler.UpdateTransaction)
	finances.DELETE("/transactions/:id", financeHandler.DeleteTransaction)
	finances.GET("/accounts", financeHandler.GetAccounts)
	finances.POST("/accounts", financeHandler.CreateAccount)
	finances.PUT("/accounts/:id", financeHandler.UpdateAccount)
	finances.DELETE("/accounts/:id", financeHandler.DeleteAccount)
	finances.GET("/budgets", financeHandler.GetBudgets)
	finances.POST("/budgets", financeHandler.CreateBudget)
	finances.GET("/budgets/status", financeHandler.GetBudgetStatus)
	finances.PUT("/budgets/:id", financeHandler.UpdateBudget)
	finances.DELETE("/budgets/:id", financeHandler.DeleteBudget)

	// Export and import routes
	exports := api.Group("/export")
	exports.GET("/csv", exportHandler.ExportYearCSV)
	exports.GET("/months/:monthId/csv", exportHandler.ExportMonthCSV)
	exports.GET("/backup", exportHandler.ExportBackup)
	exports.GET("/report", exportHandler.ExportReport)
	exports.POST("/backup/upload", exportHandler.UploadBackup)

	imports := api.Group("/import")
	imports.POST("/csv", exportHandler.ImportCSV)
	imports.POST("/backup", exportHandler.ImportBackup)

	// WebSocket endpoint for change events
	e.GET("/ws", wsHandler.HandleWS)
}
