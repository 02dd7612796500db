package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/planvida/planvida-backend/internal/export"
	"github.com/planvida/planvida-backend/internal/repository/storage"
	"github.com/planvida/planvida-backend/internal/service"
)

const presignedURLExpiry = 15 * time.Minute

// ExportHandler handles export, import and backup HTTP requests
type ExportHandler struct {
	planner *service.PlannerService
	backups storage.BackupRepository // nil when off-site backups are not configured
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(planner *service.PlannerService, backups storage.BackupRepository) *ExportHandler {
	return &ExportHandler{planner: planner, backups: backups}
}

// ExportYearCSV handles GET /api/v1/export/csv
func (h *ExportHandler) ExportYearCSV(c echo.Context) error {
	plan := h.planner.Plan()
	filename := fmt.Sprintf("year-plan-%d.csv", plan.Year)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, "text/csv", []byte(export.YearCSV(plan)))
}

// ExportMonthCSV handles GET /api/v1/export/months/:monthId/csv
func (h *ExportHandler) ExportMonthCSV(c echo.Context) error {
	monthID, ok := monthParam(c)
	if !ok {
		return invalidMonthError(c)
	}

	plan := h.planner.Plan()
	month := plan.FindMonth(monthID)
	if month == nil {
		return NewNotFoundError(c, "Month not found")
	}

	filename := fmt.Sprintf("%s-%d.csv", month.Name, plan.Year)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, "text/csv", []byte(export.MonthCSV(month, plan.Year)))
}

// ExportBackup handles GET /api/v1/export/backup
func (h *ExportHandler) ExportBackup(c echo.Context) error {
	plan := h.planner.Plan()
	data, err := export.Backup(plan)
	if err != nil {
		log.Error().Err(err).Int("year", plan.Year).Msg("Failed to serialize backup")
		return NewInternalError(c, "Failed to create backup")
	}

	filename := fmt.Sprintf("year-plan-%d-backup.json", plan.Year)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// ExportReport handles GET /api/v1/export/report
func (h *ExportHandler) ExportReport(c echo.Context) error {
	html, err := export.YearReport(h.planner.Plan())
	if err != nil {
		log.Error().Err(err).Msg("Failed to render year report")
		return NewInternalError(c, "Failed to render report")
	}
	return c.HTML(http.StatusOK, html)
}

// UploadBackup handles POST /api/v1/export/backup/upload
// Pushes the current plan's snapshot to the configured bucket and returns
// a presigned download URL
func (h *ExportHandler) UploadBackup(c echo.Context) error {
	if h.backups == nil {
		return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
			Type:     ErrorTypeInternal,
			Title:    "Backups Not Configured",
			Status:   http.StatusServiceUnavailable,
			Detail:   "No backup bucket is configured",
			Instance: c.Request().URL.Path,
		})
	}

	plan := h.planner.Plan()
	data, err := export.Backup(plan)
	if err != nil {
		log.Error().Err(err).Int("year", plan.Year).Msg("Failed to serialize backup")
		return NewInternalError(c, "Failed to create backup")
	}

	ctx := c.Request().Context()
	key := fmt.Sprintf("backups/%d/%s.json", plan.Year, time.Now().UTC().Format("20060102-150405"))
	if _, err := h.backups.Upload(ctx, key, data); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to upload backup")
		return NewInternalError(c, "Failed to upload backup")
	}

	url, err := h.backups.GeneratePresignedURL(ctx, key, presignedURLExpiry)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to presign backup URL")
		return NewInternalError(c, "Failed to generate download URL")
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"key": key,
		"url": url,
	})
}

// ImportCSV handles POST /api/v1/import/csv
// A file that fails to parse is rejected whole; no partial import happens
func (h *ExportHandler) ImportCSV(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return NewValidationError(c, "Failed to read request body", nil)
	}

	if err := h.planner.ImportCSV(string(body)); err != nil {
		return NewValidationError(c, err.Error(), nil)
	}
	return c.JSON(http.StatusOK, h.planner.Plan())
}

// ImportBackup handles POST /api/v1/import/backup
func (h *ExportHandler) ImportBackup(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return NewValidationError(c, "Failed to read request body", nil)
	}

	if err := h.planner.RestoreBackup(body); err != nil {
		return NewValidationError(c, err.Error(), nil)
	}
	return c.JSON(http.StatusOK, h.planner.Plan())
}
