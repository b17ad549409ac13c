package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/kavanaghpatrick/rent-fair-value/internal/model"
	"github.com/kavanaghpatrick/rent-fair-value/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler handles feedback-related HTTP requests
type FeedbackHandler struct {
	predictor *service.Predictor
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(predictor *service.Predictor) *FeedbackHandler {
	return &FeedbackHandler{
		predictor: predictor,
	}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// Validate verdict
	validVerdicts := map[string]bool{
		model.VerdictAccurate: true,
		model.VerdictTooHigh:  true,
		model.VerdictTooLow:   true,
	}

	if !validVerdicts[req.Verdict] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verdict. Must be one of: accurate, too_high, too_low"})
		return
	}

	err := h.predictor.RecordFeedback(c.Request.Context(), req.ValuationID, req.Verdict)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStorageDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Valuation storage not configured"})
		case errors.Is(err, sql.ErrNoRows):
			c.JSON(http.StatusNotFound, gin.H{"error": "Valuation not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record feedback: " + err.Error()})
		}
		return
	}

	response := model.FeedbackResponse{
		Success: true,
		Message: "Feedback recorded successfully",
	}

	c.JSON(http.StatusOK, response)
}
