package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/internal/service"
	"github.com/arnavshah/roster-api-go/pkg/auth"
	"github.com/arnavshah/roster-api-go/pkg/models"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB      *gorm.DB
	Auth    service.AuthService
	Rosters service.RosterService
	Swaps   service.SwapService
	Reports service.ReportService
	Audit   *service.AuditService
}

// AuthMiddleware verifies the JWT token for authenticated routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// AdminMiddleware additionally requires the ADMIN profile
func (h *Handler) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		if claims == nil || claims.Profile != models.ProfileAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin profile required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Login authenticates a professional and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, professional, err := h.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "professional": professional})
}

func currentClaims(c *gin.Context) *auth.Claims {
	raw, ok := c.Get("claims")
	if !ok {
		return nil
	}
	claims, _ := raw.(*auth.Claims)
	return claims
}

// actorFrom builds the audit actor identity from the request context
func actorFrom(c *gin.Context) service.Actor {
	actor := service.Actor{IP: c.ClientIP()}
	if claims := currentClaims(c); claims != nil {
		actor.ID = claims.RegisteredClaims.Subject
		if actor.ID == "" {
			actor.ID = claims.Email
		}
		actor.Email = claims.Email
	}
	return actor
}

// respondServiceError maps business errors onto HTTP statuses
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRosterNotFound),
		errors.Is(err, service.ErrShiftNotFound),
		errors.Is(err, service.ErrProfessionalNotFound),
		errors.Is(err, service.ErrSwapNotFound),
		errors.Is(err, service.ErrHospitalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrShiftUnassigned),
		errors.Is(err, service.ErrSwapAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
