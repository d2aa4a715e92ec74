package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RequestSwap opens a swap request for an assigned shift
func (h *Handler) RequestSwap(c *gin.Context) {
	var input struct {
		ShiftID       uint   `json:"shift_id" binding:"required"`
		DestinationID uint   `json:"destination_id" binding:"required"`
		Reason        string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.Swaps.Request(c.Request.Context(), input.ShiftID, input.DestinationID, input.Reason, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// ApproveSwap resolves a pending request and reassigns the shift
func (h *Handler) ApproveSwap(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	request, err := h.Swaps.Approve(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// RejectSwap resolves a pending request without changing the shift
func (h *Handler) RejectSwap(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	request, err := h.Swaps.Reject(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// ListSwaps returns swap requests, optionally scoped to one hospital
func (h *Handler) ListSwaps(c *gin.Context) {
	var hospitalID uint
	if raw := c.Query("hospital_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hospital_id"})
			return
		}
		hospitalID = uint(v)
	}

	requests, err := h.Swaps.List(c.Request.Context(), hospitalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}
