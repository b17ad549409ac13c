package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/kavanaghpatrick/rent-fair-value/internal/logger"
	"github.com/kavanaghpatrick/rent-fair-value/internal/model"
	"github.com/kavanaghpatrick/rent-fair-value/internal/repository"
)

// Fair-value band multipliers. A fixed heuristic band, not a statistical
// confidence interval.
const (
	rangeLowFactor  = 0.79
	rangeHighFactor = 1.21
)

var (
	// ErrModelNotLoaded means Predict ran before a successful artifact
	// load. That is a programming error in the caller, not bad input.
	ErrModelNotLoaded = errors.New("valuation model not loaded")

	// ErrInvalidPrediction means the inverse transform produced a
	// zero or non-finite fair value
	ErrInvalidPrediction = errors.New("invalid prediction result")

	// ErrStorageDisabled means a storage-backed operation ran with no
	// database configured
	ErrStorageDisabled = errors.New("valuation storage not configured")
)

// Predictor orchestrates the feature pipeline and the tree-ensemble
// evaluator, and optionally persists each valuation for comparables lookup.
type Predictor struct {
	artifacts *repository.ArtifactRepository
	store     *repository.PostgresRepository // nil when no database is configured
}

// NewPredictor creates a predictor. store may be nil; persistence and
// comparables then degrade gracefully.
func NewPredictor(artifacts *repository.ArtifactRepository, store *repository.PostgresRepository) *Predictor {
	return &Predictor{
		artifacts: artifacts,
		store:     store,
	}
}

// Predict estimates fair market rent for a property and compares it to the
// asking price. Requires a loaded artifact. Storage failures never fail the
// prediction; the valuation id is simply omitted.
func (p *Predictor) Predict(ctx context.Context, attrs *model.PropertyAttributes, askingPrice float64) (*model.ValuationResponse, error) {
	startTime := time.Now()

	artifact := p.artifacts.Artifact()
	if artifact == nil {
		return nil, ErrModelNotLoaded
	}

	build := BuildFeatures(attrs, askingPrice)
	score := Evaluate(artifact, build.Vector)

	// The model predicts log1p(rent); invert and round to whole currency
	fairValue := math.Round(math.Expm1(score))
	if fairValue <= 0 || math.IsNaN(fairValue) || math.IsInf(fairValue, 0) {
		return nil, ErrInvalidPrediction
	}

	premiumPct := math.Round((askingPrice/fairValue-1)*1000) / 10

	result := model.PredictionResult{
		FairValue:         int64(fairValue),
		RangeLow:          int64(math.Round(fairValue * rangeLowFactor)),
		RangeHigh:         int64(math.Round(fairValue * rangeHighFactor)),
		PremiumPct:        premiumPct,
		AmenitiesDetected: build.AmenitiesDetected,
		SizeSource:        build.SizeSource,
	}
	if result.AmenitiesDetected == nil {
		result.AmenitiesDetected = []string{}
	}

	response := &model.ValuationResponse{
		Result: result,
		Took:   time.Since(startTime).Milliseconds(),
	}

	if p.store != nil {
		id, err := p.store.SaveValuation(ctx, buildValuationRecord(attrs, askingPrice, build, result), VectorForOrder(artifact.FeatureOrder, build.Vector))
		if err != nil {
			logger.Get().Warnw("failed to store valuation", "error", err)
		} else {
			response.ValuationID = &id
		}
	}

	return response, nil
}

// Comparables returns the stored valuations nearest to the given property
// in feature space
func (p *Predictor) Comparables(ctx context.Context, attrs *model.PropertyAttributes, limit int) (*model.ComparablesResponse, error) {
	startTime := time.Now()

	artifact := p.artifacts.Artifact()
	if artifact == nil {
		return nil, ErrModelNotLoaded
	}
	if p.store == nil {
		return nil, ErrStorageDisabled
	}

	build := BuildFeatures(attrs, 0)
	results, err := p.store.FindComparables(ctx, VectorForOrder(artifact.FeatureOrder, build.Vector), limit)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.ComparableResult{}
	}

	return &model.ComparablesResponse{
		Results: results,
		Took:    time.Since(startTime).Milliseconds(),
	}, nil
}

// GetValuation fetches a stored valuation by id
func (p *Predictor) GetValuation(ctx context.Context, id int64) (*model.Valuation, error) {
	if p.store == nil {
		return nil, ErrStorageDisabled
	}
	return p.store.GetValuation(ctx, id)
}

// RecordFeedback stores a user's verdict against a valuation
func (p *Predictor) RecordFeedback(ctx context.Context, valuationID int64, verdict string) error {
	if p.store == nil {
		return ErrStorageDisabled
	}
	return p.store.RecordFeedback(ctx, valuationID, verdict)
}

// VectorForOrder flattens a named feature vector into the artifact's
// feature order. Names the pipeline did not compute read as 0, mirroring
// the evaluator's lookup rule.
func VectorForOrder(featureOrder []string, vector model.FeatureVector) []float32 {
	out := make([]float32, len(featureOrder))
	for i, name := range featureOrder {
		out[i] = float32(vector[name])
	}
	return out
}

// buildValuationRecord projects the request and result onto the stored row
func buildValuationRecord(attrs *model.PropertyAttributes, askingPrice float64, build *FeatureBuild, result model.PredictionResult) *model.Valuation {
	record := &model.Valuation{
		District:   &build.District,
		FairValue:  result.FairValue,
		RangeLow:   result.RangeLow,
		RangeHigh:  result.RangeHigh,
		PremiumPct: result.PremiumPct,
		Amenities:  model.JSONArray(result.AmenitiesDetected),
		SizeSource: &result.SizeSource,
	}
	propertyType := build.PropertyType
	record.PropertyType = &propertyType

	if attrs.Postcode != "" {
		record.Postcode = &attrs.Postcode
	}
	if attrs.Address != "" {
		record.Address = &attrs.Address
	}
	if attrs.SourceURL != "" {
		record.SourceURL = &attrs.SourceURL
	}
	record.Bedrooms = attrs.Bedrooms
	record.Bathrooms = attrs.Bathrooms
	record.SizeSqft = attrs.SizeSqft
	if askingPrice > 0 {
		record.AskingPrice = &askingPrice
	}
	return record
}
