package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/http/middleware"
)

// GET /api/admin/drivers?status=pending|approved
func (h *Handler) ListDrivers(c *gin.Context) {
	drivers, err := h.driverService(c).List(c.Request.Context(), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// PUT /api/admin/drivers/:id/approve
func (h *Handler) ApproveDriver(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	d, err := h.driverService(c).Approve(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// PUT /api/admin/drivers/:id/reject
func (h *Handler) RejectDriver(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.driverService(c).Reject(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": models.DriverRemoved})
}

// currentDriver resolves the driver record of the authenticated user.
func (h *Handler) currentDriver(c *gin.Context) (models.Driver, bool) {
	d, err := h.driverService(c).GetByUserID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return models.Driver{}, false
	}
	return d, true
}

// GET /api/driver/profile
func (h *Handler) DriverProfile(c *gin.Context) {
	d, ok := h.currentDriver(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": d, "status": d.Status()})
}
