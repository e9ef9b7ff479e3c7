package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/reminder"
)

type TriggerFirer interface {
	Fire(ctx context.Context, trigger domain.Trigger, now time.Time) (*reminder.FireOutcome, error)
}

type TriggerHandler struct {
	firer TriggerFirer
	now   func() time.Time
}

func NewTriggerHandler(firer TriggerFirer) *TriggerHandler {
	return &TriggerHandler{firer: firer, now: time.Now}
}

type FireResponse struct {
	Stale   bool                  `json:"stale"`
	Outcome *reminder.FireOutcome `json:"outcome,omitempty"`
}

// HandleFire is the timer sink callback. Stale and unknown triggers are
// acknowledged with 200 so the sink does not redeliver them.
func (h *TriggerHandler) HandleFire(c *gin.Context) {
	ctx := c.Request.Context()

	var task taskqueue.TriggerTask
	if err := c.ShouldBindJSON(&task); err != nil {
		slog.WarnContext(ctx, "trigger callback unmarshal failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	trigger := task.Trigger
	if trigger.ID == "" || !trigger.Kind.Valid() {
		respondError(c, http.StatusBadRequest, "validation_error", "trigger_id and a valid kind are required")
		return
	}

	slog.InfoContext(ctx, "trigger fired",
		slog.String("trigger_id", trigger.ID),
		slog.String("occurrence_key", trigger.Key.String()),
		slog.String("kind", trigger.Kind.String()),
	)

	outcome, err := h.firer.Fire(ctx, trigger, h.now())
	if err != nil {
		if errors.Is(err, domain.ErrStaleTrigger) {
			c.JSON(http.StatusOK, FireResponse{Stale: true})
			return
		}
		slog.ErrorContext(ctx, "failed to handle fired trigger",
			slog.String("trigger_id", trigger.ID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to handle trigger")
		return
	}

	c.JSON(http.StatusOK, FireResponse{Outcome: outcome})
}
