package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/action"
)

type ActionDispatcher interface {
	Dispatch(ctx context.Context, key domain.OccurrenceKey, act domain.Action, now time.Time) (*action.Result, error)
}

type ActionHandler struct {
	dispatcher ActionDispatcher
	now        func() time.Time
}

func NewActionHandler(dispatcher ActionDispatcher) *ActionHandler {
	return &ActionHandler{dispatcher: dispatcher, now: time.Now}
}

type ActionRequest struct {
	Key    string        `json:"key" binding:"required"`
	Action domain.Action `json:"action" binding:"required"`
}

func (h *ActionHandler) HandleAction(c *gin.Context) {
	ctx := c.Request.Context()

	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	key, err := domain.ParseOccurrenceKey(req.Key)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	result, err := h.dispatcher.Dispatch(ctx, key, req.Action, h.now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownAction):
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, domain.ErrOccurrenceNotFound):
			respondError(c, http.StatusNotFound, "not_found", err.Error())
		default:
			slog.ErrorContext(ctx, "notification action failed",
				slog.String("occurrence_key", req.Key),
				slog.String("action", req.Action.String()),
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusInternalServerError, "processing_error", "failed to handle action")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
