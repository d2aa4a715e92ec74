package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every route onto the engine. Shared between the
// standalone server and the serverless entry point.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Roster API (Go Version)",
			"version": "1.0.0",
		})
	})

	r.POST("/login", h.Login)

	api := r.Group("/api")
	api.Use(h.AuthMiddleware())
	{
		api.GET("/hospitals", h.ListHospitals)
		api.GET("/hospitals/:id", h.GetHospital)
		api.GET("/hospitals/:id/locations", h.ListLocations)
		api.GET("/specialties", h.ListSpecialties)

		api.GET("/professionals", h.ListProfessionals)
		api.GET("/professionals/:id", h.GetProfessional)
		api.POST("/professionals/:id/availability", h.SaveAvailability)
		api.GET("/professionals/:id/availability", h.ListAvailability)
		api.DELETE("/professionals/:id/availability/:availabilityId", h.DeleteAvailability)

		api.POST("/hospitals/:id/rosters/generate", h.GenerateRoster)
		api.GET("/hospitals/:id/rosters/latest", h.LatestRoster)
		api.GET("/rosters/:id", h.GetRoster)
		api.DELETE("/rosters/:id", h.DeleteRoster)

		api.GET("/hospitals/:id/shifts", h.ListShifts)
		api.POST("/shifts", h.CreateShift)
		api.PUT("/shifts/:id", h.UpdateShift)
		api.DELETE("/shifts/:id", h.DeleteShift)

		api.POST("/swaps", h.RequestSwap)
		api.PUT("/swaps/:id/approve", h.ApproveSwap)
		api.PUT("/swaps/:id/reject", h.RejectSwap)
		api.GET("/swaps", h.ListSwaps)

		api.GET("/hospitals/:id/reports/professionals", h.ProfessionalReport)
		api.GET("/hospitals/:id/reports/swaps", h.SwapReport)

		api.GET("/hospitals/:id/rules", h.ListRuleParameters)
		api.GET("/hospitals/:id/rule-configurations", h.ListRuleConfigurations)
		api.GET("/rule-configurations/:id", h.GetRuleConfiguration)
	}

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware(), h.AdminMiddleware())
	{
		admin.POST("/hospitals", h.CreateHospital)
		admin.PUT("/hospitals/:id", h.UpdateHospital)
		admin.POST("/hospitals/:id/locations", h.CreateLocation)
		admin.DELETE("/locations/:id", h.DeleteLocation)
		admin.POST("/specialties", h.CreateSpecialty)

		admin.POST("/professionals", h.CreateProfessional)
		admin.PUT("/professionals/:id", h.UpdateProfessional)
		admin.DELETE("/professionals/:id", h.DeactivateProfessional)

		admin.POST("/hospitals/:id/rules", h.CreateRuleParameter)
		admin.DELETE("/hospitals/:id/rules/:paramId", h.DeleteRuleParameter)
		admin.POST("/hospitals/:id/rule-configurations", h.CreateRuleConfiguration)
		admin.DELETE("/rule-configurations/:id", h.DeleteRuleConfiguration)

		admin.GET("/audit", h.ListAuditLog)
	}
}
