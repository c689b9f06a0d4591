package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/pmateos/devtrack/internal/user"
)

// handleRegister creates a new account.
func (s *Server) handleRegister(c echo.Context) error {
	var dto RegisterDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	u, err := user.New(dto.Username, dto.Email, dto.Password)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := s.store.CreateUser(c.Request().Context(), u); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) || errors.Is(err, user.ErrEmailTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		s.logger.Error("creating user", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
	})
}

// handleLogin verifies credentials and issues a session token.
func (s *Server) handleLogin(c echo.Context) error {
	var dto LoginDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	u, err := s.store.GetUserByEmail(c.Request().Context(), dto.Email)
	if err != nil {
		s.logger.Error("fetching user", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if u == nil || !u.CheckPassword(dto.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"exp":      time.Now().Add(s.cfg.TokenTTL()).Unix(),
	})

	signed, err := token.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		s.logger.Error("signing token", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"token": signed})
}

// userID extracts the authenticated user's ID from the JWT claims.
func userID(c echo.Context) int64 {
	token := c.Get("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	return int64(claims["user_id"].(float64))
}
