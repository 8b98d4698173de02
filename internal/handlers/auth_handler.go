package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/services"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/utils"
)

// AuthHandler serves the three role-scoped login endpoints.
type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	h.login(c, models.RoleAdmin)
}

func (h *AuthHandler) LoginTeacher(c *gin.Context) {
	h.login(c, models.RoleTeacher)
}

func (h *AuthHandler) LoginStudent(c *gin.Context) {
	h.login(c, models.RoleStudent)
}

func (h *AuthHandler) login(c *gin.Context, role models.UserRole) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Login attempt", "username", req.Username, "role", role)

	resp, err := h.service.Login(c.Request.Context(), &req, role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"username":   resp.Username,
		"role":       resp.Role,
		"linked_id":  resp.LinkedID,
		"access":     resp.Token,
		"expires_at": resp.ExpiresAt,
	})
}
