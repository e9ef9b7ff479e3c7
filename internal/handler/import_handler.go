package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/service/importer"
)

const maxImportBytes = 1 << 20

type Importer interface {
	Import(ctx context.Context, timetableID int64, r io.Reader, today civil.Date) (*importer.Result, error)
}

type ImportHandler struct {
	importer Importer
	loc      *time.Location
	now      func() time.Time
}

func NewImportHandler(imp Importer, loc *time.Location) *ImportHandler {
	return &ImportHandler{importer: imp, loc: loc, now: time.Now}
}

// HandleImport accepts a WakeUp export either as a multipart "file" field or
// as the raw request body.
func (h *ImportHandler) HandleImport(c *gin.Context) {
	ctx := c.Request.Context()

	timetableID, ok := timetableIDParam(c)
	if !ok {
		return
	}

	var body io.Reader = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "multipart upload requires a file field")
			return
		}
		file, err := header.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "read_error", "failed to open uploaded file")
			return
		}
		defer file.Close()
		body = io.LimitReader(file, maxImportBytes)
	}

	today := civil.DateOf(h.now().In(h.loc))
	result, err := h.importer.Import(ctx, timetableID, body, today)
	if err != nil {
		if errors.Is(err, importer.ErrInvalidImport) {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		slog.ErrorContext(ctx, "schedule import failed",
			slog.Int64("timetable_id", timetableID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to import schedule")
		return
	}

	c.JSON(http.StatusOK, result)
}
