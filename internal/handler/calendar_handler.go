package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/calendarexport"
)

// defaultExportDays is the export range when the caller gives no end date.
const defaultExportDays = 28

type OccurrenceLister interface {
	Location() *time.Location
	Occurrences(ctx context.Context, timetableID int64, from, to civil.Date, now time.Time) ([]domain.Occurrence, error)
}

type CalendarHandler struct {
	lister OccurrenceLister
	now    func() time.Time
}

func NewCalendarHandler(lister OccurrenceLister) *CalendarHandler {
	return &CalendarHandler{lister: lister, now: time.Now}
}

func (h *CalendarHandler) HandleExport(c *gin.Context) {
	ctx := c.Request.Context()

	timetableID, ok := timetableIDParam(c)
	if !ok {
		return
	}

	loc := h.lister.Location()
	now := h.now().In(loc)

	from := civil.DateOf(now)
	if raw := c.Query("from"); raw != "" {
		parsed, err := civil.ParseDate(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid from date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}

	to := from.AddDays(defaultExportDays - 1)
	if raw := c.Query("to"); raw != "" {
		parsed, err := civil.ParseDate(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid to date, expected YYYY-MM-DD")
			return
		}
		to = parsed
	}

	if to.Before(from) {
		respondError(c, http.StatusBadRequest, "validation_error", "to must not be before from")
		return
	}

	occurrences, err := h.lister.Occurrences(ctx, timetableID, from, to, now)
	if err != nil {
		if errors.Is(err, domain.ErrTimetableNotFound) {
			respondError(c, http.StatusNotFound, "not_found", err.Error())
			return
		}
		slog.ErrorContext(ctx, "failed to resolve occurrences for export",
			slog.Int64("timetable_id", timetableID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to export calendar")
		return
	}

	var buf bytes.Buffer
	name := "Timetable " + strconv.FormatInt(timetableID, 10)
	if err := calendarexport.NewExporter(loc).Write(&buf, name, occurrences, now); err != nil {
		slog.ErrorContext(ctx, "failed to write calendar",
			slog.Int64("timetable_id", timetableID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to export calendar")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="timetable.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
