package web

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pmateos/devtrack/internal/analytics"
	"github.com/pmateos/devtrack/internal/task"
)

// handleDashboard returns summary statistics and stored platform snapshots.
func (s *Server) handleDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	uid := userID(c)

	tasks, err := s.store.ListTasks(ctx, uid, task.Filter{})
	if err != nil {
		s.logger.Error("listing tasks", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	records, err := s.store.ListPlatformRecords(ctx, uid)
	if err != nil {
		s.logger.Error("listing platform records", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"stats":     task.Summarize(tasks),
		"platforms": recordsToDTO(records),
	})
}

// handleChartData returns the aggregated chart payload for the dashboard.
func (s *Server) handleChartData(c echo.Context) error {
	data, err := analytics.Build(c.Request().Context(), s.store, userID(c), time.Now())
	if err != nil {
		s.logger.Error("building chart data", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, data)
}
