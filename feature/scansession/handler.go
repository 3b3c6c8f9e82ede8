package scansession

import (
	"errors"

	"list-scanner/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Handler handles HTTP requests for scanning sessions.
type Handler struct {
	service *Service
	reports singleflight.Group
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sessions")
	group.Post("/", h.HandleCreateSession)
	group.Get("/", h.HandleListSessions)
	group.Get("/:id/progress", h.HandleGetProgress)
	group.Post("/:id/scans", h.HandleScan)
	group.Post("/:id/imports", h.HandleImport)
	group.Get("/:id/report", h.HandleGetReport)
	group.Post("/:id/report/upload", h.HandleUploadReport)
}

type columnPayload struct {
	Label string   `json:"label"`
	Items []string `json:"items"`
}

type createSessionRequest struct {
	Filename string          `json:"filename"`
	Columns  []columnPayload `json:"columns"`
}

type createSessionResponse struct {
	SessionID  string `json:"session_id"`
	Datetime   string `json:"datetime"`
	TotalItems int64  `json:"total_items"`
}

type scanRequest struct {
	Token string `json:"token"`
}

type importRequest struct {
	Records []PositionalScan `json:"records"`
}

type progressResponse struct {
	Scanned   int64 `json:"scanned"`
	Total     int64 `json:"total"`
	Completed bool  `json:"completed"`
}

// HandleCreateSession opens a new session from an already tokenized column
// table. Columns are loaded in payload order, which fixes how ambiguous
// tokens resolve.
func (h *Handler) HandleCreateSession(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	table := NewReferenceTable()
	for _, column := range req.Columns {
		table.Append(column.Label, column.Items...)
	}

	session, total, err := h.service.LoadList(c.Context(), req.Filename, table)
	if err != nil {
		l.Error("Failed to load list", zap.Error(err))
		return h.errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(createSessionResponse{
		SessionID:  session.ID,
		Datetime:   session.Datetime,
		TotalItems: total,
	})
}

// HandleListSessions returns every recorded session.
func (h *Handler) HandleListSessions(c *fiber.Ctx) error {
	sessions, err := h.service.Sessions(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list sessions", zap.Error(err))
		return h.errorResponse(c, err)
	}
	return c.JSON(sessions)
}

// HandleGetProgress returns the session's reconciliation progress.
func (h *Handler) HandleGetProgress(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if _, err := h.service.Session(c.Context(), sessionID); err != nil {
		return h.errorResponse(c, err)
	}

	scanned, total, err := h.service.Progress(c.Context(), sessionID)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to compute progress", zap.Error(err))
		return h.errorResponse(c, err)
	}
	return c.JSON(progressResponse{
		Scanned:   scanned,
		Total:     total,
		Completed: total > 0 && scanned == total,
	})
}

// HandleScan matches a single token against the session. A whitespace-only
// token is acknowledged without recording anything.
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if _, err := h.service.Session(c.Context(), sessionID); err != nil {
		return h.errorResponse(c, err)
	}

	outcome, err := h.service.Scan(c.Context(), sessionID, req.Token)
	if err != nil {
		l.Error("Scan failed", zap.Error(err))
		return h.errorResponse(c, err)
	}
	if outcome == nil {
		return c.JSON(fiber.Map{"skipped": true})
	}
	return c.JSON(outcome)
}

// HandleImport runs a positional bulk import against the session.
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	results, err := h.service.ImportPositionalScans(c.Context(), sessionID, req.Records)
	if err != nil {
		l.Error("Positional import failed", zap.Error(err))
		return h.errorResponse(c, err)
	}
	return c.JSON(results)
}

// HandleGetReport returns the session report as semicolon-delimited text.
// Concurrent requests for the same session collapse into one report build.
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	data, err, _ := h.reports.Do(sessionID, func() (any, error) {
		return h.service.ExportReport(c.Context(), sessionID)
	})
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Report export failed", zap.Error(err))
		return h.errorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(data.([]byte))
}

// HandleUploadReport builds the session report and uploads it to object
// storage.
func (h *Handler) HandleUploadReport(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	objectName, err := h.service.UploadReport(c.Context(), sessionID)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Report upload failed", zap.Error(err))
		return h.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"object": objectName})
}

// errorResponse translates engine error kinds into HTTP status codes.
func (h *Handler) errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrInvalidState):
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
