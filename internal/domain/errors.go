package domain

import "errors"

// Domain errors
var (
	ErrYearPlanNotFound = errors.New("year plan not found")
	ErrFinanceNotFound  = errors.New("financial data not found")
	ErrInvalidBackup    = errors.New("invalid backup format")
	ErrInvalidInput     = errors.New("invalid input")
)
