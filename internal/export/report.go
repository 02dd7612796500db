package export

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/planvida/planvida-backend/internal/domain"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Year Plan {{.Year}}</title>
<style>
body { font-family: -apple-system, Segoe UI, sans-serif; margin: 2rem; color: #1f2937; }
h1 { border-bottom: 2px solid #3b82f6; padding-bottom: .5rem; }
h2 { margin-top: 2rem; }
table { border-collapse: collapse; width: 100%; margin-top: .5rem; }
th, td { border: 1px solid #d1d5db; padding: .4rem .6rem; text-align: left; }
th { background: #f3f4f6; }
.summary { background: #eff6ff; padding: 1rem; border-radius: .5rem; }
.closed { color: #6b7280; font-size: .85em; }
footer { margin-top: 3rem; font-size: .8em; color: #9ca3af; }
</style>
</head>
<body>
<h1>Year Plan {{.Year}}</h1>
<div class="summary">
<p><strong>{{.Summary.CompletedGoals}}</strong> of <strong>{{.Summary.TotalGoals}}</strong> goals completed ({{.Summary.ProgressPercentage}}%)</p>
</div>
{{range .Months}}
<h2>{{.Name}}{{if .IsClosed}} <span class="closed">(closed)</span>{{end}}</h2>
<table>
<tr><th>Goal</th><th>Type</th><th>Target</th><th>Current</th><th>Progress</th><th>Status</th></tr>
{{range .Goals}}
<tr><td>{{.Title}}</td><td>{{.TypeLabel}}</td><td>{{.Target}}</td><td>{{.Current}}</td><td>{{.Progress}}%</td><td>{{.StatusLabel}}</td></tr>
{{end}}
</table>
{{end}}
<footer>Generated {{.GeneratedAt}}</footer>
</body>
</html>
`))

type reportData struct {
	Year        int
	Summary     domain.MonthSummary
	Months      []reportMonth
	GeneratedAt string
}

type reportMonth struct {
	Name     string
	IsClosed bool
	Goals    []reportGoal
}

type reportGoal struct {
	Title       string
	TypeLabel   string
	Target      string
	Current     string
	Progress    int
	StatusLabel string
}

// YearReport renders the plan as a self-contained printable HTML page.
// Months without goals are omitted.
func YearReport(plan *domain.YearPlan) (string, error) {
	data := reportData{
		Year:        plan.Year,
		Summary:     domain.SummarizeGoals(plan.AllGoals()),
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04"),
	}
	for _, month := range plan.Months {
		if len(month.Goals) == 0 {
			continue
		}
		rm := reportMonth{Name: month.Name, IsClosed: month.IsClosed}
		for _, g := range month.Goals {
			rm.Goals = append(rm.Goals, reportGoal{
				Title:       g.Title,
				TypeLabel:   domain.GoalTypeLabels[g.Type],
				Target:      g.TargetValue.String(),
				Current:     g.CurrentValue.String(),
				Progress:    goalProgress(g),
				StatusLabel: domain.GoalStatusLabels[g.Status],
			})
		}
		data.Months = append(data.Months, rm)
	}

	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return sb.String(), nil
}
