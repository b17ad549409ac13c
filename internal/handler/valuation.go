package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kavanaghpatrick/rent-fair-value/internal/model"
	"github.com/kavanaghpatrick/rent-fair-value/internal/service"

	"github.com/gin-gonic/gin"
)

// ValuationHandler handles valuation-related HTTP requests
type ValuationHandler struct {
	predictor          *service.Predictor
	defaultComparables int
	maxComparables     int
}

// NewValuationHandler creates a new valuation handler
func NewValuationHandler(predictor *service.Predictor, defaultComparables, maxComparables int) *ValuationHandler {
	return &ValuationHandler{
		predictor:          predictor,
		defaultComparables: defaultComparables,
		maxComparables:     maxComparables,
	}
}

// Valuate handles POST /api/v1/valuations
func (h *ValuationHandler) Valuate(c *gin.Context) {
	var req model.ValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.predictor.Predict(c.Request.Context(), &req.Attributes, req.AskingPrice)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrModelNotLoaded):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Valuation model not loaded"})
		case errors.Is(err, service.ErrInvalidPrediction):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Valuation produced an invalid result"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Valuation failed: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetValuation handles GET /api/v1/valuations/:id
func (h *ValuationHandler) GetValuation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid valuation ID"})
		return
	}

	valuation, err := h.predictor.GetValuation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStorageDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Valuation storage not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get valuation: " + err.Error()})
		return
	}

	if valuation == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Valuation not found"})
		return
	}

	c.JSON(http.StatusOK, valuation)
}

// Comparables handles POST /api/v1/comparables
func (h *ValuationHandler) Comparables(c *gin.Context) {
	var req model.ComparablesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Limit <= 0 {
		req.Limit = h.defaultComparables
	}
	if req.Limit > h.maxComparables {
		req.Limit = h.maxComparables
	}

	response, err := h.predictor.Comparables(c.Request.Context(), &req.Attributes, req.Limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrModelNotLoaded):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Valuation model not loaded"})
		case errors.Is(err, service.ErrStorageDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Valuation storage not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Comparables lookup failed: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}
