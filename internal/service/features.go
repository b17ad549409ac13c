package service

import (
	"math"

	"github.com/kavanaghpatrick/rent-fair-value/internal/model"
)

// Attribute defaults applied before any feature math. The model was trained
// with these exact substitutions; changing them shifts every prediction.
const (
	defaultBedrooms    = 1.0
	defaultBathrooms   = 1.0
	sqftPerBedroom     = 450.0 // size fallback: bedrooms x 450
	minBedroomsDivisor = 0.5   // floor for per-bedroom ratios
)

// sizeBinUpperBounds discretizes size into the training quantile bins
// [0,484), [484,635), [635,818), [818,1141), [1141,inf). A value lands in
// the first bin whose upper bound exceeds it.
var sizeBinUpperBounds = []float64{484, 635, 818, 1141}

// FeatureBuild is the pipeline output: the named vector the evaluator
// consumes plus the derived metadata surfaced in the prediction result.
type FeatureBuild struct {
	Vector            model.FeatureVector
	District          string
	PropertyType      string
	AmenitiesDetected []string
	SizeSource        string
}

// BuildFeatures deterministically converts raw property attributes into the
// named feature vector the model expects. It never fails: missing or
// malformed attributes degrade to the documented defaults. The asking price
// feeds only the price-per-sqft social-housing heuristic, never the vector
// directly.
func BuildFeatures(attrs *model.PropertyAttributes, askingPrice float64) *FeatureBuild {
	v := make(model.FeatureVector, 160)

	// Attribute defaults
	bedrooms := defaultBedrooms
	if attrs.Bedrooms != nil && *attrs.Bedrooms > 0 {
		bedrooms = float64(*attrs.Bedrooms)
	}
	bathrooms := defaultBathrooms
	if attrs.Bathrooms != nil && *attrs.Bathrooms > 0 {
		bathrooms = float64(*attrs.Bathrooms)
	}
	size := bedrooms * sqftPerBedroom
	sizeSource := model.SizeSourceEstimated
	if attrs.SizeSqft != nil && *attrs.SizeSqft > 0 {
		size = *attrs.SizeSqft
		sizeSource = model.SizeSourceListing
	}
	district := DefaultDistrict
	if attrs.Postcode != "" {
		district = NormalizeDistrict(attrs.Postcode)
	}
	propertyType := ClassifyPropertyType(attrs.PropertyType)

	// Core size and ratio features
	bedDivisor := math.Max(bedrooms, minBedroomsDivisor)
	logSize := math.Log1p(size)
	sqrtSize := math.Sqrt(size)

	v["bedrooms"] = bedrooms
	v["bathrooms"] = bathrooms
	v["size_sqft"] = size
	v["size_per_bedroom"] = size / bedDivisor
	v["log_size"] = logSize
	v["sqrt_size"] = sqrtSize
	v["size_squared_k"] = size * size / 1000
	v["bedrooms_squared"] = bedrooms * bedrooms

	v["bath_per_bed"] = bathrooms / bedDivisor
	v["ensuite_luxury"] = boolFeature(bathrooms/bedDivisor >= 1)
	v["many_bathrooms"] = boolFeature(bathrooms >= 4)
	v["excess_bathrooms"] = math.Max(0, bathrooms-bedrooms)

	// Location features
	centerKm := CenterDistanceKm(attrs.Latitude, attrs.Longitude)
	stationKm := NearestLandmarkKm(attrs.Latitude, attrs.Longitude)
	invCenter := 1 / (1 + centerKm)

	v["center_distance_km"] = centerKm
	v["log_center_distance"] = math.Log1p(centerKm)
	v["inv_center_distance"] = invCenter
	v["nearest_station_km"] = stationKm
	v["log_station_distance"] = math.Log1p(stationKm)

	prime := boolFeature(IsPrimePostcode(district))
	districtFreq := DistrictFrequency(district)
	areaFreq := AreaFrequency(DistrictArea(district))

	v["is_prime_postcode"] = prime
	v["district_freq"] = districtFreq
	v["area_freq"] = areaFreq
	for _, code := range DistrictVocabulary {
		v["district_"+code] = boolFeature(district == code)
	}

	// Size quantile bin
	v["size_quantile_bin"] = sizeQuantileBin(size)

	// Property type one-hot
	for _, label := range TypeLabels {
		v["type_"+label] = boolFeature(propertyType == label)
	}
	isHouse := boolFeature(houseLabels[propertyType])
	v["is_house"] = isHouse

	// Description signals
	amenities, detected := ExtractAmenities(attrs.Description)
	amenityScore := 0.0
	for name, flag := range amenities {
		v[name] = flag
	}
	for _, name := range AmenityFeatureNames {
		amenityScore += amenities[name]
	}
	v["amenity_score"] = amenityScore

	furnished, partFurnished, unfurnished := FurnishedStatus(attrs.Description)
	v["furnished"] = furnished
	v["part_furnished"] = partFurnished
	v["unfurnished"] = unfurnished

	// Agent and source signals
	premiumAgent := IsPremiumAgent(attrs.AgentName, attrs.SourceURL)
	quality := SourceQuality(attrs.SourceURL)
	v["premium_agent"] = premiumAgent
	v["source_quality"] = quality

	// Address prestige and social housing
	gardenSquare, ultraPrime, primeStreet, prestigeScore := AddressPrestige(attrs.Address)
	v["garden_square"] = gardenSquare
	v["ultra_prime_address"] = ultraPrime
	v["prime_street"] = primeStreet
	v["prestige_score"] = prestigeScore

	ppsf := 0.0
	if askingPrice > 0 && size > 0 {
		ppsf = askingPrice / size
	}
	social := IsSocialHousing(attrs.Address, district, ppsf)
	v["social_housing"] = social

	// Floor-plan transcript signals. is_ground_floor duplicates has_ground
	// on purpose: the trained feature order expects both names.
	floors := ExtractFloors(attrs.Transcript)
	v["has_basement"] = floors.HasBasement
	v["has_ground"] = floors.HasGround
	v["is_ground_floor"] = floors.HasGround
	v["has_first_floor"] = floors.HasFirstFloor
	v["has_second_floor"] = floors.HasSecondFloor
	v["has_third_floor"] = floors.HasThirdFloor
	v["has_fourth_plus"] = floors.HasFourthPlus
	v["has_roof_terrace"] = floors.HasRoofTerrace
	v["floor_count"] = floors.FloorCount
	v["is_multi_floor"] = floors.IsMultiFloor

	// Interaction terms
	v["bed_x_bath"] = bedrooms * bathrooms
	v["bed_x_log_size"] = bedrooms * logSize
	v["bath_x_log_size"] = bathrooms * logSize
	v["size_x_inv_center"] = size * invCenter
	v["log_size_x_district_freq"] = logSize * districtFreq
	v["log_size_x_area_freq"] = logSize * areaFreq
	v["prime_x_log_size"] = prime * logSize
	v["prime_x_bedrooms"] = prime * bedrooms
	v["prime_x_size"] = prime * size
	v["prestige_x_log_size"] = prestigeScore * logSize
	v["prestige_x_inv_center"] = prestigeScore * invCenter
	v["premium_agent_x_log_size"] = premiumAgent * logSize
	v["premium_agent_x_prime"] = premiumAgent * prime
	v["quality_x_log_size"] = quality * logSize
	v["amenity_x_inv_center"] = amenityScore * invCenter
	v["amenity_x_log_size"] = amenityScore * logSize
	v["amenity_x_prime"] = amenityScore * prime
	v["is_house_x_log_size"] = isHouse * logSize
	v["is_house_x_bedrooms"] = isHouse * bedrooms
	v["luxury_x_log_size"] = v["ensuite_luxury"] * logSize
	v["furnished_x_log_size"] = furnished * logSize
	v["view_x_prime"] = amenities["amenity_view"] * prime
	v["lift_x_fourth_plus"] = amenities["amenity_lift"] * floors.HasFourthPlus
	v["porter_x_prime"] = amenities["amenity_porter"] * prime
	v["garden_x_is_house"] = amenities["amenity_garden"] * isHouse
	v["multi_floor_x_size"] = floors.IsMultiFloor * size
	v["floor_count_x_log_size"] = floors.FloorCount * logSize
	v["social_x_log_size"] = social * logSize
	v["bin_x_district_freq"] = v["size_quantile_bin"] * districtFreq
	v["sqrt_size_x_inv_center"] = sqrtSize * invCenter

	return &FeatureBuild{
		Vector:            v,
		District:          district,
		PropertyType:      propertyType,
		AmenitiesDetected: detected,
		SizeSource:        sizeSource,
	}
}

// sizeQuantileBin assigns a size to the first bin whose upper bound
// exceeds it
func sizeQuantileBin(size float64) float64 {
	for bin, upper := range sizeBinUpperBounds {
		if size < upper {
			return float64(bin)
		}
	}
	return float64(len(sizeBinUpperBounds))
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
