package service

import (
	"math"
	"testing"

	"github.com/kavanaghpatrick/rent-fair-value/internal/model"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestSizeQuantileBin(t *testing.T) {
	tests := []struct {
		size     float64
		expected float64
	}{
		{0, 0},
		{483, 0},
		{484, 1},
		{634, 1},
		{635, 2},
		{817, 2},
		{818, 3},
		{1140, 3},
		{1141, 4},
		{5000, 4},
	}

	for _, tt := range tests {
		if got := sizeQuantileBin(tt.size); got != tt.expected {
			t.Errorf("sizeQuantileBin(%v) = %v, expected %v", tt.size, got, tt.expected)
		}
	}
}

func TestBuildFeatures_Defaults(t *testing.T) {
	build := BuildFeatures(&model.PropertyAttributes{}, 0)
	v := build.Vector

	if v["bedrooms"] != 1 || v["bathrooms"] != 1 {
		t.Error("Empty attributes should default to 1 bedroom and 1 bathroom")
	}
	if v["size_sqft"] != 450 {
		t.Errorf("Size should estimate as bedrooms x 450, got %v", v["size_sqft"])
	}
	if build.SizeSource != model.SizeSourceEstimated {
		t.Errorf("Expected estimated size source, got %q", build.SizeSource)
	}
	if build.District != "SW1" {
		t.Errorf("Missing postcode should default to SW1, got %q", build.District)
	}
	if build.PropertyType != TypeFlat {
		t.Errorf("Missing type should default to flat, got %q", build.PropertyType)
	}
	if v["center_distance_km"] != 0 {
		t.Error("Missing coordinates should read as the center itself")
	}
	if v["inv_center_distance"] != 1 {
		t.Errorf("Expected inverse distance 1 at center, got %v", v["inv_center_distance"])
	}
}

func TestBuildFeatures_ZeroBedroomsIsDefaulted(t *testing.T) {
	build := BuildFeatures(&model.PropertyAttributes{Bedrooms: intPtr(0)}, 0)
	if build.Vector["bedrooms"] != 1 {
		t.Errorf("Zero bedrooms should default to 1, got %v", build.Vector["bedrooms"])
	}
}

func TestBuildFeatures_Golden(t *testing.T) {
	attrs := &model.PropertyAttributes{
		Bedrooms:     intPtr(2),
		Bathrooms:    intPtr(1),
		SizeSqft:     floatPtr(750),
		Postcode:     "SW3 2AB",
		PropertyType: "flat",
	}
	build := BuildFeatures(attrs, 0)
	v := build.Vector

	logSize := math.Log1p(750)
	sqrtSize := math.Sqrt(750)
	stationKm := HaversineKm(CenterLat, CenterLon, 51.5036, -0.1143)

	expected := map[string]float64{
		"bedrooms":         2,
		"bathrooms":        1,
		"size_sqft":        750,
		"size_per_bedroom": 375,
		"log_size":         logSize,
		"sqrt_size":        sqrtSize,
		"size_squared_k":   562.5,
		"bedrooms_squared": 4,
		"bath_per_bed":     0.5,
		"ensuite_luxury":   0,
		"many_bathrooms":   0,
		"excess_bathrooms": 0,

		"center_distance_km":   0,
		"log_center_distance":  0,
		"inv_center_distance":  1,
		"nearest_station_km":   stationKm,
		"log_station_distance": math.Log1p(stationKm),

		"is_prime_postcode": 1,
		"district_freq":     0.0295,
		"area_freq":         0.2197,
		"district_SW3":      1,
		"district_SW1":      0,
		"district_W8":       0,

		"size_quantile_bin": 2,
		"type_flat":         1,
		"type_house":        0,
		"is_house":          0,

		"amenity_score":  0,
		"furnished":      0,
		"part_furnished": 0,
		"unfurnished":    0,
		"premium_agent":  0,
		"source_quality": 1,
		"prestige_score": 0,
		"social_housing": 0,
		"has_ground":     0,
		"floor_count":    0,

		"bed_x_bath":               2,
		"bed_x_log_size":           2 * logSize,
		"bath_x_log_size":          logSize,
		"size_x_inv_center":        750,
		"log_size_x_district_freq": logSize * 0.0295,
		"log_size_x_area_freq":     logSize * 0.2197,
		"prime_x_log_size":         logSize,
		"prime_x_bedrooms":         2,
		"prime_x_size":             750,
		"quality_x_log_size":       logSize,
		"bin_x_district_freq":      2 * 0.0295,
		"sqrt_size_x_inv_center":   sqrtSize,
		"amenity_x_log_size":       0,
		"is_house_x_log_size":      0,
		"social_x_log_size":        0,
	}

	for name, want := range expected {
		got, ok := v[name]
		if !ok {
			t.Errorf("Feature %s missing from vector", name)
			continue
		}
		if got != want {
			t.Errorf("%s = %v, expected %v", name, got, want)
		}
	}

	// Every one-hot and text flag outside the expectations above is 0
	for _, code := range DistrictVocabulary {
		if code != "SW3" && v["district_"+code] != 0 {
			t.Errorf("district_%s = %v, expected 0", code, v["district_"+code])
		}
	}
	for _, label := range TypeLabels {
		if label != TypeFlat && v["type_"+label] != 0 {
			t.Errorf("type_%s = %v, expected 0", label, v["type_"+label])
		}
	}
	for _, name := range AmenityFeatureNames {
		if v[name] != 0 {
			t.Errorf("%s = %v, expected 0", name, v[name])
		}
	}
	for _, name := range []string{
		"has_basement", "is_ground_floor", "has_first_floor", "has_second_floor",
		"has_third_floor", "has_fourth_plus", "has_roof_terrace", "is_multi_floor",
		"style_modern", "style_period", "garden_square", "ultra_prime_address",
		"prime_street",
	} {
		if v[name] != 0 {
			t.Errorf("%s = %v, expected 0", name, v[name])
		}
	}

	if len(v) != 129 {
		t.Errorf("Expected exactly 129 features, got %d", len(v))
	}
	if build.SizeSource != model.SizeSourceListing {
		t.Errorf("Expected listing size source, got %q", build.SizeSource)
	}
	if len(build.AmenitiesDetected) != 0 {
		t.Errorf("Expected no amenities, got %v", build.AmenitiesDetected)
	}
}

func TestBuildFeatures_VectorShape(t *testing.T) {
	build := BuildFeatures(&model.PropertyAttributes{
		Bedrooms:     intPtr(3),
		Bathrooms:    intPtr(2),
		SizeSqft:     floatPtr(1200),
		Postcode:     "W8 4PX",
		PropertyType: "terraced house",
		Latitude:     floatPtr(51.4994),
		Longitude:    floatPtr(-0.1940),
		Description:  "Modern house with private garden and parking, offered furnished",
		Transcript:   "Ground Floor\nFirst Floor\nSecond Floor",
	}, 9500)
	v := build.Vector

	if len(v) != 129 {
		t.Fatalf("Expected exactly 129 features, got %d", len(v))
	}
	for name, value := range v {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			t.Errorf("Feature %s is not finite: %v", name, value)
		}
	}

	// Exactly one district one-hot and one type one-hot may be set
	districts, types := 0, 0
	for _, code := range DistrictVocabulary {
		if v["district_"+code] == 1 {
			districts++
		}
	}
	for _, label := range TypeLabels {
		if v["type_"+label] == 1 {
			types++
		}
	}
	if districts != 1 {
		t.Errorf("Expected exactly one district one-hot, got %d", districts)
	}
	if types != 1 {
		t.Errorf("Expected exactly one type one-hot, got %d", types)
	}

	if v["is_ground_floor"] != v["has_ground"] {
		t.Error("is_ground_floor must mirror has_ground")
	}
	if v["is_house"] != 1 {
		t.Error("Terraced house should count as a house")
	}
	if v["floor_count"] != 3 || v["is_multi_floor"] != 1 {
		t.Errorf("Expected 3-floor transcript, got count=%v multi=%v", v["floor_count"], v["is_multi_floor"])
	}
	if v["garden_x_is_house"] != 1 {
		t.Errorf("garden_x_is_house = %v, expected 1", v["garden_x_is_house"])
	}
	if v["multi_floor_x_size"] != 1200 {
		t.Errorf("multi_floor_x_size = %v, expected 1200", v["multi_floor_x_size"])
	}
}

func TestBuildFeatures_UnknownDistrictSetsNoOneHot(t *testing.T) {
	build := BuildFeatures(&model.PropertyAttributes{Postcode: "SE15 4AB"}, 0)
	for _, code := range DistrictVocabulary {
		if build.Vector["district_"+code] != 0 {
			t.Errorf("district_%s should be 0 for SE15", code)
		}
	}
	if build.Vector["district_freq"] != 0.0020 {
		t.Errorf("Unknown district should read default frequency, got %v", build.Vector["district_freq"])
	}
}
