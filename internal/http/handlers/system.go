package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DBCheck pings the backing store.
func (h *Handler) DBCheck(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		respondError(c, http.StatusServiceUnavailable, "store_unavailable", "store unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Endpoints lists the registered HTTP routes.
func (h *Handler) Endpoints(c *gin.Context) {
	h.routerMu.RLock()
	r := h.router
	h.routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "router_not_ready", "router not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	c.JSON(http.StatusOK, gin.H{"endpoints": out})
}

// Routes returns the tariff table.
func (h *Handler) Routes(c *gin.Context) {
	routes, err := h.Store.ListRoutes(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}
