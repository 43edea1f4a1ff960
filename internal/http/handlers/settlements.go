package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
)

type processSettlementRequest struct {
	Type string `json:"type"`
}

// GET /api/admin/settlements/preview?type=weekly|monthly
func (h *Handler) PreviewSettlement(c *gin.Context) {
	lines, err := h.settlementService(c).Preview(c.Request.Context(), c.Query("type"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	var total int64
	for _, l := range lines {
		total += l.TotalAmount
	}
	typ, _ := models.ParseSettlementType(c.Query("type"))
	c.JSON(http.StatusOK, gin.H{"type": typ, "drivers": lines, "totalAmount": total})
}

// POST /api/admin/settlements
func (h *Handler) ProcessSettlement(c *gin.Context) {
	var req processSettlementRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	st, err := h.settlementService(c).Process(c.Request.Context(), req.Type)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// GET /api/admin/settlements
func (h *Handler) ListSettlements(c *gin.Context) {
	history, err := h.settlementService(c).History(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// GET /api/admin/settlements/:id
func (h *Handler) GetSettlement(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	st, err := h.settlementService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// GET /api/admin/settlements/:id/statement returns the PDF inline.
func (h *Handler) SettlementStatement(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	pdf, filename, err := h.settlementService(c).Statement(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/admin/stats
func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.statsService().Admin(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
