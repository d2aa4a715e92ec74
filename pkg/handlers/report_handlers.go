package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func reportPeriod(c *gin.Context) (from, to time.Time, ok bool) {
	from, err1 := time.Parse("2006-01-02", c.Query("from"))
	to, err2 := time.Parse("2006-01-02", c.Query("to"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be YYYY-MM-DD"})
		return from, to, false
	}
	return from, to, true
}

// ProfessionalReport returns per-professional workload totals for a period
func (h *Handler) ProfessionalReport(c *gin.Context) {
	hospitalID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	from, to, ok := reportPeriod(c)
	if !ok {
		return
	}

	summaries, err := h.Reports.ProfessionalSummary(c.Request.Context(), hospitalID, from, to, c.Query("type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// SwapReport returns swap-workflow indicators for a period
func (h *Handler) SwapReport(c *gin.Context) {
	hospitalID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	from, to, ok := reportPeriod(c)
	if !ok {
		return
	}

	indicators, err := h.Reports.SwapIndicators(c.Request.Context(), hospitalID, from, to, c.Query("type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, indicators)
}
