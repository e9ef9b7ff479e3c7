package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, ErrorResponse{
		Error:   errType,
		Message: message,
	})
}

func timetableIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "timetable id must be a positive integer")
		return 0, false
	}
	return id, true
}

// requestNow honours an RFC3339 virtual time in the given query parameter.
func requestNow(c *gin.Context, param string) (time.Time, bool) {
	raw := c.Query(param)
	if raw == "" {
		return time.Now(), true
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid "+param+" time format, expected RFC3339")
		return time.Time{}, false
	}

	slog.InfoContext(c.Request.Context(), "using virtual time",
		slog.Time("virtual_now", parsed),
	)
	return parsed, true
}
