package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/domain/models"
	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/services"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string         `json:"token"`
	User   models.User    `json:"user"`
	Driver *models.Driver `json:"driver,omitempty"`
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	token, user, err := h.authService(c).Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	resp := loginResponse{Token: token, User: user}
	if user.Role == models.RoleDriver {
		if d, err := h.driverService(c).GetByUserID(c.Request.Context(), user.ID); err == nil {
			resp.Driver = &d
		}
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req services.RegisterDriverInput
	if !BindJSONOrError(c, &req) {
		return
	}
	d, err := h.driverService(c).Register(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "registration submitted for approval", "driver": d})
}
