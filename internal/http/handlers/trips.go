package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type logTripRequest struct {
	RouteID int64  `json:"routeId"`
	Vehicle string `json:"vehicle"`
}

// POST /api/driver/trips
func (h *Handler) LogTrip(c *gin.Context) {
	d, ok := h.currentDriver(c)
	if !ok {
		return
	}
	var req logTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, err := h.tripService(c).LogTrip(c.Request.Context(), d.ID, req.RouteID, req.Vehicle)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// GET /api/driver/trips
func (h *Handler) MyTrips(c *gin.Context) {
	d, ok := h.currentDriver(c)
	if !ok {
		return
	}
	trips, err := h.tripService(c).ListDriverTrips(c.Request.Context(), d.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GET /api/driver/earnings
func (h *Handler) MyEarnings(c *gin.Context) {
	d, ok := h.currentDriver(c)
	if !ok {
		return
	}
	e, err := h.tripService(c).DriverEarnings(c.Request.Context(), d.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// GET /api/admin/trips?settled=true|false
func (h *Handler) ListTrips(c *gin.Context) {
	var settled *bool
	if raw := c.Query("settled"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "settled must be true or false", nil)
			return
		}
		settled = &v
	}
	trips, err := h.tripService(c).ListTrips(c.Request.Context(), settled)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}
