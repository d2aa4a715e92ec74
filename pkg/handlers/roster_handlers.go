package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/roster-api-go/internal/service"
	"github.com/arnavshah/roster-api-go/pkg/models"
)

// GenerateRoster runs the allocation engine for a hospital window
func (h *Handler) GenerateRoster(c *gin.Context) {
	hospitalID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var input service.GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Rosters.Generate(c.Request.Context(), hospitalID, input, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// LatestRoster returns the roster with the most recent start date
func (h *Handler) LatestRoster(c *gin.Context) {
	hospitalID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	roster, err := h.Rosters.LatestRoster(c.Request.Context(), hospitalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// GetRoster returns one roster with its shifts
func (h *Handler) GetRoster(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	roster, err := h.Rosters.GetRoster(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// DeleteRoster removes a roster and its shifts
func (h *Handler) DeleteRoster(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.Rosters.DeleteRoster(c.Request.Context(), id, actorFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListShifts returns a hospital's shifts in an inclusive date range
func (h *Handler) ListShifts(c *gin.Context) {
	hospitalID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	from, err1 := time.Parse("2006-01-02", c.Query("from"))
	to, err2 := time.Parse("2006-01-02", c.Query("to"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be YYYY-MM-DD"})
		return
	}

	var shifts []models.Shift
	err := h.DB.WithContext(c.Request.Context()).
		Where("hospital_id = ? AND date BETWEEN ? AND ?", hospitalID, from, to).
		Order("date ASC, start_time ASC").
		Find(&shifts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// CreateShift records a manually entered shift outside any generation run
func (h *Handler) CreateShift(c *gin.Context) {
	var input struct {
		HospitalID     uint   `json:"hospital_id" binding:"required"`
		Date           string `json:"date" binding:"required"`
		StartTime      string `json:"start_time" binding:"required"`
		EndTime        string `json:"end_time" binding:"required"`
		Type           string `json:"type" binding:"required"`
		Location       string `json:"location"`
		ProfessionalID *uint  `json:"professional_id"`
		RosterID       *uint  `json:"roster_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	shift := models.Shift{
		HospitalID:     input.HospitalID,
		Date:           date,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Type:           input.Type,
		Location:       input.Location,
		ProfessionalID: input.ProfessionalID,
		RosterID:       input.RosterID,
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&shift).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.Audit.Record(c.Request.Context(), actorFrom(c), "CREATE", "shift", strconv.FormatUint(uint64(shift.ID), 10), nil, shift)
	c.JSON(http.StatusCreated, shift)
}

// UpdateShift edits a single shift (manual reassignment or time change)
func (h *Handler) UpdateShift(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var shift models.Shift
	if err := h.DB.WithContext(c.Request.Context()).First(&shift, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shift not found"})
		return
	}
	before := shift

	var input struct {
		StartTime      *string `json:"start_time"`
		EndTime        *string `json:"end_time"`
		Type           *string `json:"type"`
		Location       *string `json:"location"`
		ProfessionalID *uint   `json:"professional_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.StartTime != nil {
		shift.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		shift.EndTime = *input.EndTime
	}
	if input.Type != nil {
		shift.Type = *input.Type
	}
	if input.Location != nil {
		shift.Location = *input.Location
	}
	if input.ProfessionalID != nil {
		shift.ProfessionalID = input.ProfessionalID
	}

	if err := h.DB.WithContext(c.Request.Context()).Save(&shift).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.Audit.Record(c.Request.Context(), actorFrom(c), "UPDATE", "shift", c.Param("id"), before, shift)
	c.JSON(http.StatusOK, shift)
}

// DeleteShift removes a single shift
func (h *Handler) DeleteShift(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var shift models.Shift
	if err := h.DB.WithContext(c.Request.Context()).First(&shift, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shift not found"})
		return
	}
	if err := h.DB.WithContext(c.Request.Context()).Delete(&models.Shift{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.Audit.Record(c.Request.Context(), actorFrom(c), "DELETE", "shift", c.Param("id"), shift, nil)
	c.Status(http.StatusNoContent)
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}
