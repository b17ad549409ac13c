package model

// PropertyAttributes holds the raw attributes of a single rental listing as
// extracted by the page-scraping collaborator. Every field may legitimately
// be missing; the feature pipeline substitutes documented defaults rather
// than rejecting the property.
type PropertyAttributes struct {
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty"`
	SizeSqft     *float64 `json:"size_sqft,omitempty"`
	Postcode     string   `json:"postcode,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Address      string   `json:"address,omitempty"`
	Description  string   `json:"description,omitempty"`
	AgentName    string   `json:"agent_name,omitempty"`
	SourceURL    string   `json:"source_url,omitempty"`
	// Transcript is the raw text output of the floor-plan OCR collaborator.
	// May be empty when no floor plan was available.
	Transcript string `json:"floorplan_transcript,omitempty"`
}

// Size-source values reported in PredictionResult
const (
	SizeSourceListing   = "listing"
	SizeSourceEstimated = "estimated"
)

// PredictionResult is the outcome of a single valuation. FairValue is the
// model's estimate of monthly rent in whole currency units; the range is a
// fixed band around it, not a statistical confidence interval.
type PredictionResult struct {
	FairValue  int64   `json:"fair_value"`
	RangeLow   int64   `json:"range_low"`
	RangeHigh  int64   `json:"range_high"`
	PremiumPct float64 `json:"premium_pct"`

	AmenitiesDetected []string `json:"amenities_detected"`
	SizeSource        string   `json:"size_source"`
}

// ValuationRequest is the request body for POST /api/v1/valuations
type ValuationRequest struct {
	Attributes  PropertyAttributes `json:"attributes" binding:"required"`
	AskingPrice float64            `json:"asking_price" binding:"required"`
}

// ValuationResponse wraps a prediction with request metadata
type ValuationResponse struct {
	ValuationID *int64           `json:"valuation_id,omitempty"`
	Result      PredictionResult `json:"result"`
	Took        int64            `json:"took_ms"`
}

// ComparablesRequest is the request body for POST /api/v1/comparables
type ComparablesRequest struct {
	Attributes PropertyAttributes `json:"attributes" binding:"required"`
	Limit      int                `json:"limit,omitempty"`
}

// ComparablesResponse lists stored valuations nearest in feature space
type ComparablesResponse struct {
	Results []ComparableResult `json:"results"`
	Took    int64              `json:"took_ms"`
}

// Feedback verdicts accepted by POST /api/v1/feedback
const (
	VerdictAccurate = "accurate"
	VerdictTooHigh  = "too_high"
	VerdictTooLow   = "too_low"
)

// FeedbackRequest records a user's verdict on a stored valuation
type FeedbackRequest struct {
	ValuationID int64  `json:"valuation_id" binding:"required"`
	Verdict     string `json:"verdict" binding:"required"`
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
