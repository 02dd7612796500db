// Package export converts year plans to and from their interchange
// formats: CSV for spreadsheets, JSON snapshots for lossless backup, and a
// printable HTML report.
package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planvida/planvida-backend/internal/domain"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

var yearCSVHeader = []string{
	"Month", "Year", "Title", "Type", "Target", "Current", "Progress %",
	"Status", "Month Closed", "Created", "Completed", "Line Items",
}

var monthCSVHeader = []string{
	"Month", "Year", "Title", "Type", "Target", "Current", "Progress %",
	"Status", "Created", "Completed", "Line Items",
}

// MonthCSV renders one month's goals as CSV, one row per goal
func MonthCSV(month *domain.Month, year int) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write(monthCSVHeader)
	for _, g := range month.Goals {
		_ = w.Write([]string{
			month.Name,
			strconv.Itoa(year),
			g.Title,
			string(g.Type),
			g.TargetValue.String(),
			g.CurrentValue.String(),
			strconv.Itoa(goalProgress(g)),
			string(g.Status),
			formatDate(g.CreatedAt),
			formatDatePtr(g.CompletedAt),
			lineItemDetail(g),
		})
	}
	w.Flush()
	return sb.String()
}

// YearCSV renders every goal in the plan as CSV, one row per goal
func YearCSV(plan *domain.YearPlan) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write(yearCSVHeader)
	for _, month := range plan.Months {
		for _, g := range month.Goals {
			_ = w.Write([]string{
				month.Name,
				strconv.Itoa(plan.Year),
				g.Title,
				string(g.Type),
				g.TargetValue.String(),
				g.CurrentValue.String(),
				strconv.Itoa(goalProgress(g)),
				string(g.Status),
				strconv.FormatBool(month.IsClosed),
				formatDate(g.CreatedAt),
				formatDatePtr(g.CompletedAt),
				lineItemDetail(g),
			})
		}
	}
	w.Flush()
	return sb.String()
}

// ImportCSV applies CSV rows onto a copy of the plan and returns the copy.
// Rows whose title matches an existing goal in the resolved month
// (case-insensitively) update currentValue and status in place; other rows
// create new goals with best-effort parsing. A file without the required
// columns fails as a whole before anything is applied.
func ImportCSV(plan *domain.YearPlan, data string) (*domain.YearPlan, error) {
	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("csv file is empty or has no data rows")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	monthIdx := findColumn(header, "month")
	titleIdx := findColumn(header, "title")
	typeIdx := findColumn(header, "type")
	targetIdx := findColumn(header, "target")
	currentIdx := findColumn(header, "current")
	statusIdx := findColumn(header, "status")

	if titleIdx == -1 || typeIdx == -1 {
		return nil, fmt.Errorf("csv must have Title and Type columns")
	}

	imported := plan.Clone()

	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}

		monthID := 1
		if monthIdx >= 0 && monthIdx < len(row) {
			monthID = domain.MonthIDByName(row[monthIdx])
		}
		month := imported.FindMonth(monthID)
		if month == nil {
			continue
		}

		title := strings.TrimSpace(cell(row, titleIdx))
		if title == "" {
			continue
		}

		if existing := findGoalByTitle(month, title); existing != nil {
			if v, ok := parseAmount(cell(row, currentIdx)); ok {
				existing.CurrentValue = v
			}
			if status := cell(row, statusIdx); status != "" {
				existing.Status = parseGoalStatus(status)
			}
			continue
		}

		target, _ := parseAmount(cell(row, targetIdx))
		current, _ := parseAmount(cell(row, currentIdx))
		goal := &domain.Goal{
			ID:           domain.NewGoalID(),
			Title:        title,
			Type:         parseGoalType(cell(row, typeIdx)),
			TargetValue:  target,
			CurrentValue: current,
			Status:       parseGoalStatus(cell(row, statusIdx)),
			CarryOver:    false,
			CreatedAt:    time.Now().UTC(),
		}
		month.Goals = append(month.Goals, goal)
	}

	return imported, nil
}

func findColumn(header []string, name string) int {
	for i, h := range header {
		if strings.Contains(h, name) {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func findGoalByTitle(month *domain.Month, title string) *domain.Goal {
	for _, g := range month.Goals {
		if strings.EqualFold(g.Title, title) {
			return g
		}
	}
	return nil
}

// parseAmount strips everything that is not a digit, dot or minus sign
// before parsing
func parseAmount(value string) (decimal.Decimal, bool) {
	cleaned := nonNumeric.ReplaceAllString(value, "")
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func parseGoalType(value string) domain.GoalType {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(domain.GoalTypeTravel):
		return domain.GoalTypeTravel
	case string(domain.GoalTypePurchase):
		return domain.GoalTypePurchase
	}
	return domain.GoalTypeSavings
}

func parseGoalStatus(value string) domain.GoalStatus {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(domain.GoalStatusCompleted):
		return domain.GoalStatusCompleted
	case string(domain.GoalStatusPartial):
		return domain.GoalStatusPartial
	case "not_completed", "not completed":
		return domain.GoalStatusNotCompleted
	}
	return domain.GoalStatusPending
}

func goalProgress(g *domain.Goal) int {
	if !g.TargetValue.GreaterThan(decimal.Zero) {
		return 0
	}
	ratio, _ := g.CurrentValue.Div(g.TargetValue).Float64()
	return int(math.Round(ratio * 100))
}

func lineItemDetail(g *domain.Goal) string {
	items := g.LineItems()
	if len(items) == 0 {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s: %s", item.Name, item.Cost.String()))
	}
	return strings.Join(parts, " | ")
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}
