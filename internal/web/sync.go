package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pmateos/devtrack/internal/platform"
)

// handleSync pulls live statistics from an external platform and stores
// the normalized snapshot for the user.
func (s *Server) handleSync(c echo.Context) error {
	platformName := c.Param("platform")

	var dto SyncDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if dto.Username == "" {
		dto.Username = c.QueryParam("username")
	}

	data, err := s.syncer.Sync(c.Request().Context(), userID(c), platformName, dto.Username)
	if err != nil {
		return s.syncError(c, platformName, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("%s data synced successfully", capitalize(platformName)),
		"data":    json.RawMessage(data),
	})
}

// handlePlatformStats returns every stored snapshot for the user.
func (s *Server) handlePlatformStats(c echo.Context) error {
	records, err := s.store.ListPlatformRecords(c.Request().Context(), userID(c))
	if err != nil {
		s.logger.Error("listing platform records", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, recordsToDTO(records))
}

// syncError maps sync failures to HTTP responses. Input errors are the
// caller's fault; everything else surfaces as a failed sync with the
// normalizer's message unchanged.
func (s *Server) syncError(c echo.Context, platformName string, err error) error {
	if errors.Is(err, platform.ErrUnsupportedPlatform) || errors.Is(err, platform.ErrUsernameRequired) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
	}

	s.logger.Warn("platform sync failed", "platform", platformName, "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
}

// capitalize uppercases the first letter: "github" becomes "Github".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
