package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pmateos/devtrack/internal/task"
)

// handleListTasks returns the user's tasks, optionally filtered by
// status and platform. "all" and empty both mean no filter.
func (s *Server) handleListTasks(c echo.Context) error {
	filter := task.Filter{}
	if v := c.QueryParam("status"); v != "" && v != "all" {
		status := task.Status(v)
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": task.ErrInvalidStatus.Error()})
		}
		filter.Status = status
	}
	if v := c.QueryParam("platform"); v != "" && v != "all" {
		filter.Platform = v
	}

	tasks, err := s.store.ListTasks(c.Request().Context(), userID(c), filter)
	if err != nil {
		s.logger.Error("listing tasks", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToDTO(t))
	}
	return c.JSON(http.StatusOK, out)
}

// handleCreateTask adds a new pending task for the user.
func (s *Server) handleCreateTask(c echo.Context) error {
	var dto TaskInputDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	t, err := task.New(userID(c), dto.Title, dto.Description, dto.Platform)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := s.store.CreateTask(c.Request().Context(), t); err != nil {
		s.logger.Error("creating task", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusCreated, taskToDTO(t))
}

// handleUpdateTask edits a task's title, description and platform.
func (s *Server) handleUpdateTask(c echo.Context) error {
	t, err := s.ownedTask(c)
	if err != nil {
		return s.taskError(c, err)
	}

	var dto TaskInputDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	// Validate the new fields without touching status or timestamps.
	validated, err := task.New(t.UserID, dto.Title, dto.Description, dto.Platform)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	t.Title = validated.Title
	t.Description = validated.Description
	t.Platform = validated.Platform

	if err := s.store.UpdateTask(c.Request().Context(), t); err != nil {
		s.logger.Error("updating task", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, taskToDTO(t))
}

// handleToggleTask flips a task between pending and completed.
func (s *Server) handleToggleTask(c echo.Context) error {
	t, err := s.ownedTask(c)
	if err != nil {
		return s.taskError(c, err)
	}

	t.Toggle(time.Now())
	if err := s.store.UpdateTask(c.Request().Context(), t); err != nil {
		s.logger.Error("toggling task", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	dto := taskToDTO(t)
	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"status":       dto.Status,
		"completed_at": dto.CompletedAt,
	})
}

// handleDeleteTask removes the user's task.
func (s *Server) handleDeleteTask(c echo.Context) error {
	t, err := s.ownedTask(c)
	if err != nil {
		return s.taskError(c, err)
	}

	if err := s.store.DeleteTask(c.Request().Context(), t.ID); err != nil {
		s.logger.Error("deleting task", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.NoContent(http.StatusNoContent)
}

// handleListPlatforms returns the distinct platform labels of the
// user's tasks, for filter dropdowns.
func (s *Server) handleListPlatforms(c echo.Context) error {
	platforms, err := s.store.ListPlatforms(c.Request().Context(), userID(c))
	if err != nil {
		s.logger.Error("listing platforms", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if platforms == nil {
		platforms = []string{}
	}
	return c.JSON(http.StatusOK, platforms)
}

// ownedTask loads the task from the :id route param and verifies the
// authenticated user owns it.
func (s *Server) ownedTask(c echo.Context) (*task.Task, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return nil, task.ErrTaskNotFound
	}

	t, err := s.store.GetTask(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, task.ErrTaskNotFound
	}
	if t.UserID != userID(c) {
		return nil, task.ErrNotOwner
	}
	return t, nil
}

// taskError maps task lookup failures to HTTP responses.
func (s *Server) taskError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
	case errors.Is(err, task.ErrNotOwner):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access forbidden"})
	default:
		s.logger.Error("loading task", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
