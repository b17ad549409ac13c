package service

import "strings"

// Canonical property-type labels. The one-hot feature group is keyed as
// "type_<label>" over exactly this vocabulary.
const (
	TypeHMO             = "hmo"
	TypeLinkDetached    = "link_detached"
	TypeGroundFloorFlat = "ground_floor_flat"
	TypeEndOfTerrace    = "end_of_terrace"
	TypeSemiDetached    = "semi_detached"
	TypeTownHouse       = "town_house"
	TypeHouseBoat       = "house_boat"
	TypePenthouse       = "penthouse"
	TypeMaisonette      = "maisonette"
	TypeTerraced        = "terraced"
	TypeDetached        = "detached"
	TypeApartment       = "apartment"
	TypeStudio          = "studio"
	TypeDuplex          = "duplex"
	TypeMews            = "mews"
	TypeFlat            = "flat"
	TypeHouse           = "house"
)

// TypeLabels is the closed one-hot vocabulary for property types
var TypeLabels = []string{
	TypeHMO, TypeLinkDetached, TypeGroundFloorFlat, TypeEndOfTerrace,
	TypeSemiDetached, TypeTownHouse, TypeHouseBoat, TypePenthouse,
	TypeMaisonette, TypeTerraced, TypeDetached, TypeApartment,
	TypeStudio, TypeDuplex, TypeMews, TypeFlat, TypeHouse,
}

// houseLabels are the labels counted as houses for the is_house feature
var houseLabels = map[string]bool{
	TypeHouse:        true,
	TypeTerraced:     true,
	TypeSemiDetached: true,
	TypeDetached:     true,
	TypeEndOfTerrace: true,
	TypeTownHouse:    true,
	TypeLinkDetached: true,
}

type typePattern struct {
	substr string
	label  string
}

// typePatterns is scanned in order; the first substring hit wins. Multi-word
// patterns sit above the single words they contain ("semi-detached" above
// "detached", "penthouse" above "house"). Reordering this list silently
// misclassifies, so treat the order as part of the vocabulary.
var typePatterns = []typePattern{
	{"house of multiple occupation", TypeHMO},
	{"hmo", TypeHMO},
	{"link detached", TypeLinkDetached},
	{"link-detached", TypeLinkDetached},
	{"ground floor flat", TypeGroundFloorFlat},
	{"end of terrace", TypeEndOfTerrace},
	{"end-of-terrace", TypeEndOfTerrace},
	{"semi-detached", TypeSemiDetached},
	{"semi detached", TypeSemiDetached},
	{"town house", TypeTownHouse},
	{"townhouse", TypeTownHouse},
	{"house boat", TypeHouseBoat},
	{"houseboat", TypeHouseBoat},
	{"penthouse", TypePenthouse},
	{"maisonette", TypeMaisonette},
	{"terraced", TypeTerraced},
	{"detached", TypeDetached},
	{"apartment", TypeApartment},
	{"studio", TypeStudio},
	{"duplex", TypeDuplex},
	{"mews", TypeMews},
	{"flat", TypeFlat},
	{"house", TypeHouse},
}

// ClassifyPropertyType maps a free-text type string to a canonical label.
// Unknown or empty input defaults to flat.
func ClassifyPropertyType(raw string) string {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return TypeFlat
	}
	for _, p := range typePatterns {
		if strings.Contains(text, p.substr) {
			return p.label
		}
	}
	return TypeFlat
}

// DistrictVocabulary is the closed one-hot vocabulary for postcode
// districts. Districts outside it are invisible to the one-hot group;
// there is no "other" bucket.
var DistrictVocabulary = []string{
	"SW1", "SW3", "SW5", "SW6", "SW7", "SW10", "SW11",
	"W1", "W2", "W8", "W9", "W11", "W14",
	"NW1", "NW3", "NW6", "NW8",
	"SE1", "SE11",
	"N1", "E1", "E14", "EC1", "WC1", "WC2",
}

// DefaultDistrict is substituted when a property carries no postcode
const DefaultDistrict = "SW1"

// NormalizeDistrict extracts the uppercase outward code (portion before the
// first space) from a full postcode. A well-formed UK outward code (1-2
// letters, 1-2 digits, optional trailing letter) passes through as matched;
// anything else is returned raw, never trimmed to a partial match, since the
// raw fallback and the accepted form are the same string and downstream
// lookups hit their explicit defaults either way.
func NormalizeDistrict(postcode string) string {
	outward := strings.ToUpper(strings.TrimSpace(postcode))
	if i := strings.IndexAny(outward, " \t"); i >= 0 {
		outward = outward[:i]
	}
	return outward
}

// DistrictArea returns the leading letters of a district ("SW" for "SW3")
func DistrictArea(district string) string {
	for i, r := range district {
		if r >= '0' && r <= '9' {
			return district[:i]
		}
	}
	return district
}

// districtFrequency is the training-set share of each district. Unseen
// districts read the explicit default entry; lookups never miss.
var districtFrequency = map[string]float64{
	"SW1":     0.0410,
	"SW3":     0.0295,
	"SW5":     0.0262,
	"SW6":     0.0338,
	"SW7":     0.0301,
	"SW10":    0.0224,
	"SW11":    0.0367,
	"W1":      0.0452,
	"W2":      0.0389,
	"W8":      0.0218,
	"W9":      0.0191,
	"W11":     0.0247,
	"W14":     0.0233,
	"NW1":     0.0312,
	"NW3":     0.0284,
	"NW6":     0.0269,
	"NW8":     0.0205,
	"SE1":     0.0343,
	"SE11":    0.0152,
	"N1":      0.0328,
	"E1":      0.0290,
	"E14":     0.0356,
	"EC1":     0.0213,
	"WC1":     0.0147,
	"WC2":     0.0121,
	"default": 0.0020,
}

// areaFrequency is the training-set share of each postcode area
var areaFrequency = map[string]float64{
	"SW":      0.2197,
	"W":       0.1730,
	"NW":      0.1070,
	"SE":      0.0495,
	"N":       0.0328,
	"E":       0.0646,
	"EC":      0.0213,
	"WC":      0.0268,
	"default": 0.0100,
}

// DistrictFrequency returns the training frequency for a district
func DistrictFrequency(district string) float64 {
	if f, ok := districtFrequency[district]; ok {
		return f
	}
	return districtFrequency["default"]
}

// AreaFrequency returns the training frequency for a postcode area
func AreaFrequency(area string) float64 {
	if f, ok := areaFrequency[area]; ok {
		return f
	}
	return areaFrequency["default"]
}

// primePostcodePrefixes flag the districts treated as prime central London.
// Matched by prefix so "SW1W" and "SW1" both count.
var primePostcodePrefixes = []string{
	"SW1", "SW3", "SW7", "SW10",
	"W1", "W8", "W11",
	"NW1", "NW3", "NW8",
	"WC2", "EC1",
}

// IsPrimePostcode reports whether the district falls in the fixed prime set
func IsPrimePostcode(district string) bool {
	for _, prefix := range primePostcodePrefixes {
		if strings.HasPrefix(district, prefix) {
			return true
		}
	}
	return false
}
