package handler

import (
	"strings"
	"time"

	eventapp "github.com/eventhub/backend/internal/application/event"
	"github.com/eventhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// EventHandler handles the authenticated event management endpoints
type EventHandler struct {
	BaseHandler
	service *eventapp.Service
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(service *eventapp.Service) *EventHandler {
	return &EventHandler{service: service}
}

// RegisterRoutes registers event management routes on the given group
func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.POST("", h.Create)
		events.GET("", h.List)
		events.GET("/:id", h.GetByID)
		events.PATCH("/:id", h.Update)
	}
}

// CreateEventBody is the request body for creating an event
type CreateEventBody struct {
	Title         string    `json:"title" binding:"required,min=1,max=200"`
	Location      string    `json:"location" binding:"required,min=1,max=200"`
	StartAt       time.Time `json:"startAt" binding:"required"`
	EndAt         time.Time `json:"endAt" binding:"required"`
	Status        string    `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED CANCELLED"`
	InternalNotes string    `json:"internalNotes" binding:"omitempty,max=5000"`
}

// Create handles POST /events
func (h *EventHandler) Create(c *gin.Context) {
	var body CreateEventBody
	if err := c.ShouldBindJSON(&body); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			h.ValidationError(c, err)
			return
		}
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), eventapp.CreateEventRequest{
		Title:         body.Title,
		Location:      body.Location,
		StartAt:       body.StartAt,
		EndAt:         body.EndAt,
		Status:        body.Status,
		InternalNotes: body.InternalNotes,
		CreatedBy:     middleware.GetJWTEmail(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListEventsQuery holds the query parameters for event listings.
// Dates select by the calendar day (UTC) of the event start, inclusive.
type ListEventsQuery struct {
	DateFrom  *time.Time `form:"dateFrom" time_format:"2006-01-02" time_utc:"1"`
	DateTo    *time.Time `form:"dateTo" time_format:"2006-01-02" time_utc:"1"`
	Locations string     `form:"locations"`
	Statuses  string     `form:"status"`
	Page      int        `form:"page" binding:"omitempty,gte=1"`
	Limit     int        `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

func (q ListEventsQuery) toFilter() eventapp.ListFilter {
	return eventapp.ListFilter{
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
		Locations: splitCSV(q.Locations),
		Statuses:  splitCSV(q.Statuses),
		Page:      q.Page,
		Limit:     q.Limit,
	}
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	var query ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			h.ValidationError(c, err)
			return
		}
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), query.toFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Data, result.Pagination.Total, result.Pagination.Page, result.Pagination.Limit)
}

// GetByID handles GET /events/:id
func (h *EventHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateEventBody is the request body for a partial event update. Only
// status and internal notes are mutable.
type UpdateEventBody struct {
	Status        *string `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED CANCELLED"`
	InternalNotes *string `json:"internalNotes" binding:"omitempty,max=5000"`
}

// Update handles PATCH /events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var body UpdateEventBody
	if err := c.ShouldBindJSON(&body); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			h.ValidationError(c, err)
			return
		}
		h.BadRequest(c, "Invalid request body")
		return
	}
	if body.Status == nil && body.InternalNotes == nil {
		h.BadRequest(c, "At least one of status or internalNotes must be provided")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, eventapp.UpdateEventRequest{
		Status:        body.Status,
		InternalNotes: body.InternalNotes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
