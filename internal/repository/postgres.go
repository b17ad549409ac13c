package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kavanaghpatrick/rent-fair-value/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresRepository stores completed valuations. The features column is a
// pgvector whose dimensionality equals the loaded artifact's feature order,
// which is what makes distance-based comparables lookup possible.
//
// Expected table (vector dimension must match the deployed artifact):
//
//	CREATE TABLE valuations (
//	    id BIGSERIAL PRIMARY KEY,
//	    postcode TEXT, district TEXT, property_type TEXT,
//	    bedrooms INT, bathrooms INT, size_sqft DOUBLE PRECISION,
//	    address TEXT, source_url TEXT,
//	    asking_price DOUBLE PRECISION,
//	    fair_value BIGINT NOT NULL, range_low BIGINT NOT NULL, range_high BIGINT NOT NULL,
//	    premium_pct DOUBLE PRECISION NOT NULL,
//	    amenities JSONB, size_source TEXT,
//	    features VECTOR NOT NULL,
//	    verdict TEXT,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// SaveValuation inserts a completed valuation with its feature vector and
// returns the new row id
func (r *PostgresRepository) SaveValuation(ctx context.Context, valuation *model.Valuation, features []float32) (int64, error) {
	query := `
		INSERT INTO valuations (
			postcode, district, property_type, bedrooms, bathrooms, size_sqft,
			address, source_url, asking_price,
			fair_value, range_low, range_high, premium_pct,
			amenities, size_source, features
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`

	var id int64
	err := r.db.GetContext(ctx, &id, query,
		valuation.Postcode, valuation.District, valuation.PropertyType,
		valuation.Bedrooms, valuation.Bathrooms, valuation.SizeSqft,
		valuation.Address, valuation.SourceURL, valuation.AskingPrice,
		valuation.FairValue, valuation.RangeLow, valuation.RangeHigh, valuation.PremiumPct,
		valuation.Amenities, valuation.SizeSource, pgvector.NewVector(features),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save valuation: %w", err)
	}
	return id, nil
}

// GetValuation retrieves a single stored valuation by id. Returns nil when
// no row exists.
func (r *PostgresRepository) GetValuation(ctx context.Context, id int64) (*model.Valuation, error) {
	var valuation model.Valuation
	query := `
		SELECT
			id, postcode, district, property_type, bedrooms, bathrooms, size_sqft,
			address, source_url, asking_price,
			fair_value, range_low, range_high, premium_pct,
			amenities, size_source, features, verdict, created_at
		FROM valuations
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &valuation, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get valuation: %w", err)
	}
	return &valuation, nil
}

// FindComparables returns the stored valuations nearest to the query
// feature vector by Euclidean distance
func (r *PostgresRepository) FindComparables(ctx context.Context, features []float32, limit int) ([]model.ComparableResult, error) {
	query := `
		SELECT
			id, postcode, district, property_type, bedrooms, bathrooms, size_sqft,
			address, source_url, asking_price,
			fair_value, range_low, range_high, premium_pct,
			amenities, size_source, features, verdict, created_at,
			features <-> $1 AS distance
		FROM valuations
		ORDER BY features <-> $1
		LIMIT $2
	`

	var results []model.ComparableResult
	err := r.db.SelectContext(ctx, &results, query, pgvector.NewVector(features), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find comparables: %w", err)
	}
	return results, nil
}

// RecordFeedback stores a user's verdict against a valuation
func (r *PostgresRepository) RecordFeedback(ctx context.Context, valuationID int64, verdict string) error {
	query := `UPDATE valuations SET verdict = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, valuationID, verdict)
	if err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
