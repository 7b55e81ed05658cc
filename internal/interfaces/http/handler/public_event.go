package handler

import (
	"fmt"

	eventapp "github.com/eventhub/backend/internal/application/event"
	"github.com/eventhub/backend/internal/application/summary"
	"github.com/eventhub/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SummaryCacheHeader advertises whether the summary came from cache.
// It is written before the first body byte, so clients know the
// delivery path up front.
const SummaryCacheHeader = "X-Summary-Cache"

// PublicEventHandler handles the unauthenticated event endpoints
type PublicEventHandler struct {
	BaseHandler
	service   *eventapp.Service
	summaries *summary.Orchestrator
}

// NewPublicEventHandler creates a new PublicEventHandler
func NewPublicEventHandler(service *eventapp.Service, summaries *summary.Orchestrator) *PublicEventHandler {
	return &PublicEventHandler{
		service:   service,
		summaries: summaries,
	}
}

// RegisterRoutes registers public routes on the given group
func (h *PublicEventHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/public")
	{
		public.GET("/events", h.List)
		public.GET("/events/:id/summary", h.StreamSummary)
	}
}

// List handles GET /public/events. A status query parameter is not
// accepted here: visitors always see PUBLISHED and CANCELLED events.
func (h *PublicEventHandler) List(c *gin.Context) {
	var query ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			h.ValidationError(c, err)
			return
		}
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := query.toFilter()
	filter.Statuses = nil // visibility is never caller-controlled here

	result, err := h.service.ListPublic(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Data, result.Pagination.Total, result.Pagination.Page, result.Pagination.Limit)
}

// StreamSummary handles GET /public/events/:id/summary. The summary is
// delivered as a Server-Sent Events stream, one data event per fragment,
// terminated by an "event: done" marker.
func (h *PublicEventHandler) StreamSummary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	delivery, err := h.summaries.Prepare(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	log := logger.GetGinLogger(c)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.Header().Set(SummaryCacheHeader, string(delivery.Status))
	c.Writer.WriteHeaderNow()

	err = delivery.Run(c.Request.Context(), func(fragment string) error {
		if _, werr := fmt.Fprintf(c.Writer, "data: %s\n\n", fragment); werr != nil {
			return werr
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		// Headers are gone; all that is left is an in-band error event.
		log.Warn("summary stream aborted",
			zap.String("event_id", id.String()),
			zap.Error(err))
		fmt.Fprintf(c.Writer, "event: error\ndata: %s\n\n", "summary generation interrupted")
		c.Writer.Flush()
		return
	}

	fmt.Fprint(c.Writer, "event: done\ndata: \n\n")
	c.Writer.Flush()
}
