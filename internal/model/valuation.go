package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Valuation is a stored record of a completed prediction. The feature vector
// is persisted as a pgvector column so later requests can find comparable
// properties by distance in feature space.
type Valuation struct {
	ID           int64           `json:"id" db:"id"`
	Postcode     *string         `json:"postcode,omitempty" db:"postcode"`
	District     *string         `json:"district,omitempty" db:"district"`
	PropertyType *string         `json:"property_type,omitempty" db:"property_type"`
	Bedrooms     *int            `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms    *int            `json:"bathrooms,omitempty" db:"bathrooms"`
	SizeSqft     *float64        `json:"size_sqft,omitempty" db:"size_sqft"`
	Address      *string         `json:"address,omitempty" db:"address"`
	SourceURL    *string         `json:"source_url,omitempty" db:"source_url"`
	AskingPrice  *float64        `json:"asking_price,omitempty" db:"asking_price"`
	FairValue    int64           `json:"fair_value" db:"fair_value"`
	RangeLow     int64           `json:"range_low" db:"range_low"`
	RangeHigh    int64           `json:"range_high" db:"range_high"`
	PremiumPct   float64         `json:"premium_pct" db:"premium_pct"`
	Amenities    JSONArray       `json:"amenities,omitempty" db:"amenities"`
	SizeSource   *string         `json:"size_source,omitempty" db:"size_source"`
	Features     pgvector.Vector `json:"-" db:"features"`
	Verdict      *string         `json:"verdict,omitempty" db:"verdict"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// ComparableResult is a stored valuation with its feature-space distance
// to the query property
type ComparableResult struct {
	Valuation
	Distance float64 `json:"distance" db:"distance"`
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
