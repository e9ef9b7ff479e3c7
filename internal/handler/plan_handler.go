package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/plan"
)

type Planner interface {
	PlanTimetable(ctx context.Context, timetableID int64, now time.Time, runID string) (*plan.Response, error)
	PlanDefault(ctx context.Context, now time.Time, runID string) (*plan.Response, error)
	Status(ctx context.Context, timetableID int64, now time.Time) (*plan.StatusResponse, error)
}

type PlanHandler struct {
	planner Planner
}

func NewPlanHandler(planner Planner) *PlanHandler {
	return &PlanHandler{planner: planner}
}

func (h *PlanHandler) HandlePlanTimetable(c *gin.Context) {
	ctx := c.Request.Context()

	timetableID, ok := timetableIDParam(c)
	if !ok {
		return
	}
	now, ok := requestNow(c, "from")
	if !ok {
		return
	}

	resp, err := h.planner.PlanTimetable(ctx, timetableID, now, runID(c))
	if err != nil {
		h.respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) HandlePlanDefault(c *gin.Context) {
	ctx := c.Request.Context()

	now, ok := requestNow(c, "from")
	if !ok {
		return
	}

	resp, err := h.planner.PlanDefault(ctx, now, runID(c))
	if err != nil {
		h.respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) HandleStatus(c *gin.Context) {
	ctx := c.Request.Context()

	timetableID, ok := timetableIDParam(c)
	if !ok {
		return
	}
	now, ok := requestNow(c, "at")
	if !ok {
		return
	}

	resp, err := h.planner.Status(ctx, timetableID, now)
	if err != nil {
		h.respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) respondPlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTimetableNotFound), errors.Is(err, domain.ErrNoTimetable):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "planning request failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to plan reminders")
	}
}

// runID reuses the caller's X-Run-ID so repeated deliveries share one run.
func runID(c *gin.Context) string {
	if id := c.GetHeader("X-Run-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}
