package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/http/middleware"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/services"
)

// Handler carries the dependencies shared by every endpoint. Services are
// built per request so they log with that request's id.
type Handler struct {
	Store     services.Store
	Locker    services.Locker
	JWTSecret []byte
	TokenTTL  time.Duration
	Now       func() time.Time

	routerMu sync.RWMutex
	router   *gin.Engine
}

// SetRouter stores the active gin engine for /api/endpoints.
func (h *Handler) SetRouter(r *gin.Engine) {
	h.routerMu.Lock()
	defer h.routerMu.Unlock()
	h.router = r
}

func (h *Handler) Auth() services.AuthService {
	return services.AuthService{Users: h.Store, Secret: h.JWTSecret, TTL: h.TokenTTL, Now: h.Now}
}

func (h *Handler) authService(c *gin.Context) services.AuthService {
	svc := h.Auth()
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

func (h *Handler) driverService(c *gin.Context) services.DriverService {
	return services.DriverService{Drivers: h.Store, RequestID: middleware.GetRequestID(c), Now: h.Now}
}

func (h *Handler) tripService(c *gin.Context) services.TripService {
	return services.TripService{
		Routes:    h.Store,
		Drivers:   h.Store,
		Trips:     h.Store,
		RequestID: middleware.GetRequestID(c),
		Now:       h.Now,
	}
}

func (h *Handler) settlementService(c *gin.Context) services.SettlementService {
	return services.SettlementService{
		Routes:      h.Store,
		Drivers:     h.Store,
		Trips:       h.Store,
		Settlements: h.Store,
		Locker:      h.Locker,
		RequestID:   middleware.GetRequestID(c),
		Now:         h.Now,
	}
}

func (h *Handler) statsService() services.StatsService {
	return services.StatsService{Drivers: h.Store, Trips: h.Store, Settlements: h.Store}
}

// paramID parses :id, writing a 400 when it is not a positive integer.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "invalid id", nil)
		return 0, false
	}
	return id, true
}
