package service

import "math"

const earthRadiusKm = 6371.0

// Valuation center: the fixed reference coordinate the model was trained
// against. Missing coordinates fall back to it.
const (
	CenterLat = 51.5074
	CenterLon = -0.1278
)

// Landmark is a named transit-stop coordinate
type Landmark struct {
	Name string
	Lat  float64
	Lon  float64
}

// landmarks is the fixed registry of central-London transit stops used for
// the nearest-station distance feature. Built once; order is irrelevant.
var landmarks = []Landmark{
	{"Oxford Circus", 51.5152, -0.1419},
	{"Bond Street", 51.5142, -0.1494},
	{"Green Park", 51.5067, -0.1428},
	{"Victoria", 51.4965, -0.1447},
	{"Sloane Square", 51.4924, -0.1565},
	{"South Kensington", 51.4941, -0.1738},
	{"Knightsbridge", 51.5015, -0.1607},
	{"High Street Kensington", 51.5009, -0.1925},
	{"Notting Hill Gate", 51.5094, -0.1967},
	{"Paddington", 51.5154, -0.1755},
	{"Baker Street", 51.5226, -0.1571},
	{"King's Cross St Pancras", 51.5308, -0.1238},
	{"Angel", 51.5322, -0.1058},
	{"Liverpool Street", 51.5178, -0.0823},
	{"Bank", 51.5133, -0.0886},
	{"London Bridge", 51.5052, -0.0864},
	{"Waterloo", 51.5036, -0.1143},
	{"Canary Wharf", 51.5036, -0.0195},
	{"Hampstead", 51.5567, -0.1780},
	{"St John's Wood", 51.5347, -0.1740},
}

// HaversineKm returns the great-circle distance in kilometres between two
// coordinates, using the mean Earth radius.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// CenterDistanceKm returns the distance from the given point to the
// valuation center. Nil coordinates fall back to the center itself,
// yielding distance 0.
func CenterDistanceKm(lat, lon *float64) float64 {
	la, lo := coordsOrCenter(lat, lon)
	return HaversineKm(la, lo, CenterLat, CenterLon)
}

// NearestLandmarkKm returns the distance from the given point to the closest
// registered landmark. Nil coordinates fall back to the valuation center,
// which still yields a deterministic non-zero minimum.
func NearestLandmarkKm(lat, lon *float64) float64 {
	la, lo := coordsOrCenter(lat, lon)

	minKm := math.Inf(1)
	for _, lm := range landmarks {
		if d := HaversineKm(la, lo, lm.Lat, lm.Lon); d < minKm {
			minKm = d
		}
	}
	return minKm
}

func coordsOrCenter(lat, lon *float64) (float64, float64) {
	if lat == nil || lon == nil {
		return CenterLat, CenterLon
	}
	return *lat, *lon
}
