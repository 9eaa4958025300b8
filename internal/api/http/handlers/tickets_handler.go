package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/complainthub/complainthub/internal/analytics"
	"github.com/complainthub/complainthub/internal/api/dto"
	"github.com/complainthub/complainthub/internal/auth"
	"github.com/complainthub/complainthub/internal/config"
	"github.com/complainthub/complainthub/internal/domain"
	"github.com/complainthub/complainthub/internal/repository"
	"github.com/complainthub/complainthub/internal/service"
	apperrors "github.com/complainthub/complainthub/pkg/util"
)

const maxVoiceNoteBytes = 10 << 20

// TicketsHandler serves the complaint lifecycle endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
	storage config.StorageConfig
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(tickets *service.TicketService, storage config.StorageConfig) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, storage: storage}
}

// Create files a new complaint.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	ticket, err := h.tickets.CreateTicket(c.Context(), actor, service.TicketCreateInput{
		BrandID:     req.BrandID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Urgency:     domain.TicketUrgency(req.Urgency),
		Channel:     domain.TicketChannel(req.Channel),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTicketResponse(ticket))
}

// List returns the actor's visible tickets, optionally filtered by brand,
// status, calendar day and free-text search.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)

	filter := repository.TicketFilter{
		Limit:  c.QueryInt("limit", 100),
		Offset: c.QueryInt("offset", 0),
	}
	tickets, err := h.tickets.ListTickets(c.Context(), actor, filter)
	if err != nil {
		return err
	}

	spec, err := parseFilterSpec(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketListResponse(analytics.Filter(tickets, spec)))
}

// Track resolves a complaint by reference code for the public status page.
func (h *TicketsHandler) Track(c *fiber.Ctx) error {
	ticket, err := h.tickets.TrackByReference(c.Context(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketTrackingResponse(ticket))
}

// Get returns one ticket.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.tickets.GetTicket(c.Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// UpdateStatus transitions a ticket through the lifecycle.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	ticket, err := h.tickets.UpdateStatus(c.Context(), actor, id, domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// Rate records the owner's satisfaction rating.
func (h *TicketsHandler) Rate(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.RateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	ticket, err := h.tickets.RateTicket(c.Context(), actor, id, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// UploadVoiceNote stores a multipart voice recording against the ticket. The
// visibility check runs before anything touches disk, and a failed attachment
// insert removes the file again so no orphan is left behind.
func (h *TicketsHandler) UploadVoiceNote(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.tickets.GetTicket(c.Context(), actor, id); err != nil {
		return err
	}
	file, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file required", nil)
	}
	if file.Size > maxVoiceNoteBytes {
		return apperrors.NewValidationError("file too large", map[string]any{"max_bytes": maxVoiceNoteBytes})
	}

	storageKey := fmt.Sprintf("%d-%s%s", id, uuid.NewString(), filepath.Ext(file.Filename))
	dest := filepath.Join(h.storage.VoiceUploadDir, storageKey)
	if err := c.SaveFile(file, dest); err != nil {
		return apperrors.NewInternalError(err)
	}

	att, err := h.tickets.AttachVoiceNote(c.Context(), actor, id, service.VoiceNoteInput{
		FileName:   file.Filename,
		MimeType:   file.Header.Get("Content-Type"),
		SizeBytes:  file.Size,
		StorageKey: storageKey,
	})
	if err != nil {
		_ = os.Remove(dest)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewVoiceAttachmentResponse(att))
}

// ListVoiceNotes returns the ticket's voice recordings.
func (h *TicketsHandler) ListVoiceNotes(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	notes, err := h.tickets.ListVoiceNotes(c.Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewVoiceAttachmentListResponse(notes))
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"param": name})
	}
	return id, nil
}

// parseFilterSpec reads the shared list filter query params.
func parseFilterSpec(c *fiber.Ctx) (analytics.FilterSpec, error) {
	var spec analytics.FilterSpec

	if raw := c.Query("brand_id"); raw != "" {
		brandID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return spec, apperrors.NewValidationError("invalid brand_id", nil)
		}
		spec.BrandID = &brandID
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.TicketStatus(raw)
		if !status.Valid() {
			return spec, apperrors.NewValidationError("unknown status", map[string]any{"status": raw})
		}
		spec.Status = &status
	}
	if raw := c.Query("date"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return spec, apperrors.NewValidationError("invalid date, expected YYYY-MM-DD", nil)
		}
		spec.Date = &day
	}
	spec.Search = strings.TrimSpace(c.Query("search"))
	return spec, nil
}
