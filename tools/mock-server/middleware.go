package main

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/rocketsource-go/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// requestLog logs each request and echoes or assigns an X-Request-ID.
func requestLog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			metrics.MockRequestsTotal.WithLabelValues(
				c.Request().Method, c.Path(), strconv.Itoa(status),
			).Inc()

			log.Debug("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"query", c.Request().URL.RawQuery,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)
			return nil
		}
	}
}

// bearerAuth rejects requests without a bearer token. When apiKey is set the
// token must match it.
func bearerAuth(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := strings.CutPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" || (apiKey != "" && token != apiKey) {
				return c.JSON(http.StatusUnauthorized, errorBody("Unauthenticated."))
			}
			return next(c)
		}
	}
}

func errorBody(msg string) map[string]any {
	return map[string]any{"message": msg}
}

func validationBody(field, msg string) map[string]any {
	return map[string]any{
		"message": "The given data was invalid.",
		"errors":  map[string][]string{field: {msg}},
	}
}
