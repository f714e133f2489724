package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gocomet/rides-api/internal/api/dto"
	"github.com/gocomet/rides-api/internal/domain/ride"
	apperrors "github.com/gocomet/rides-api/pkg/errors"
)

// Health handles GET /health
func (h *Handlers) Health(c *gin.Context) {
	c.String(http.StatusOK, "Healthy")
}

// CreateRide handles POST /rides
func (h *Handlers) CreateRide(c *gin.Context) {
	var req dto.CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.Validation("Invalid request payload", err))
		return
	}

	created, err := h.Rides.Create(c.Request.Context(), req.RawInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSingle(c, http.StatusCreated, created)
}

// ListRides handles GET /rides?page=&pageSize=
func (h *Handlers) ListRides(c *gin.Context) {
	page, err := ride.ParsePage(c.Query("page"), c.Query("pageSize"), h.opts.DefaultPageSize, h.opts.MaxPageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}

	rides, err := h.Rides.List(c.Request.Context(), page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondJSON(c, http.StatusOK, rides)
}

// GetRide handles GET /rides/:id
func (h *Handlers) GetRide(c *gin.Context) {
	// ids are positive integers; anything else cannot match a ride
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		h.respondError(c, ride.ErrRidesNotFound)
		return
	}

	rd, err := h.Rides.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSingle(c, http.StatusOK, rd)
}

func (h *Handlers) respondSingle(c *gin.Context, code int, rd *ride.Ride) {
	if h.opts.LegacyResponses {
		h.respondJSON(c, code, []*ride.Ride{rd})
		return
	}
	h.respondJSON(c, code, rd)
}
