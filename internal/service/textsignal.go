package service

import "strings"

// amenityRule describes one keyword-driven amenity flag. Exclusion phrases
// are stripped from the text before the keywords are tested, so "roof
// terrace" never scores the plain terrace flag.
type amenityRule struct {
	feature  string
	label    string
	keywords []string
	exclude  []string
}

// amenityRules is the fixed, ordered amenity vocabulary. Order only affects
// the order of the detected-amenity labels in the result, not the flags.
var amenityRules = []amenityRule{
	{"amenity_balcony", "balcony", []string{"balcony", "balconies"}, nil},
	{"amenity_terrace", "terrace", []string{"terrace"}, []string{"roof terrace", "roof-terrace"}},
	{"amenity_roof_terrace", "roof terrace", []string{"roof terrace", "roof-terrace", "roof garden"}, nil},
	{"amenity_garden", "garden", []string{"garden"}, []string{"roof garden"}},
	{"amenity_porter", "porter", []string{"porter", "concierge"}, nil},
	{"amenity_gym", "gym", []string{"gym", "fitness"}, nil},
	{"amenity_pool", "pool", []string{"pool", "swimming"}, []string{"liverpool"}},
	{"amenity_parking", "parking", []string{"parking", "garage"}, nil},
	{"amenity_lift", "lift", []string{"lift", "elevator"}, nil},
	{"amenity_aircon", "air conditioning", []string{"air conditioning", "air-conditioning", "air con", "aircon", "a/c"}, nil},
	{"amenity_high_ceilings", "high ceilings", []string{"high ceiling", "high ceilings"}, nil},
	{"amenity_view", "view", []string{"view"}, []string{"viewing", "review"}},
}

// styleRules feed the two style flags; they do not count toward the
// amenity score.
var styleRules = []amenityRule{
	{"style_modern", "modern", []string{"modern", "contemporary"}, nil},
	{"style_period", "period", []string{"period", "victorian", "georgian"}, nil},
}

// AmenityFeatureNames lists the flags summed into amenity_score, in the
// order they appear in the feature schema.
var AmenityFeatureNames = func() []string {
	names := make([]string, len(amenityRules))
	for i, r := range amenityRules {
		names[i] = r.feature
	}
	return names
}()

// ExtractAmenities scans a listing description for the fixed amenity and
// style vocabulary. Returns 0/1 flags keyed by feature name plus the
// human-readable labels of detected amenities. Empty descriptions yield
// all-zero flags, never an error.
func ExtractAmenities(description string) (map[string]float64, []string) {
	text := strings.ToLower(description)

	flags := make(map[string]float64, len(amenityRules)+len(styleRules))
	var detected []string

	for _, r := range amenityRules {
		hit := matchRule(text, r)
		flags[r.feature] = hit
		if hit == 1 {
			detected = append(detected, r.label)
		}
	}
	for _, r := range styleRules {
		flags[r.feature] = matchRule(text, r)
	}

	return flags, detected
}

func matchRule(text string, r amenityRule) float64 {
	for _, excl := range r.exclude {
		text = strings.ReplaceAll(text, excl, "")
	}
	for _, kw := range r.keywords {
		if strings.Contains(text, kw) {
			return 1
		}
	}
	return 0
}

// FurnishedStatus classifies the furnished state of a listing. The three
// flags are mutually exclusive: "unfurnished" is checked first so its
// "furnished" substring cannot shadow it, then part-furnished, then
// furnished. All zero when the description says nothing.
func FurnishedStatus(description string) (furnished, partFurnished, unfurnished float64) {
	text := strings.ToLower(description)

	switch {
	case strings.Contains(text, "unfurnished"):
		return 0, 0, 1
	case strings.Contains(text, "part furnished"), strings.Contains(text, "part-furnished"):
		return 0, 1, 0
	case strings.Contains(text, "furnished"):
		return 1, 0, 0
	}
	return 0, 0, 0
}

// premiumAgentFragments are name fragments of high-end agencies. Matched
// against the combined agent name and source URL.
var premiumAgentFragments = []string{
	"knight frank",
	"knightfrank",
	"savills",
	"foxtons",
	"hamptons",
	"strutt",
	"chestertons",
	"marsh & parsons",
	"marshandparsons",
	"john d wood",
	"harrods estates",
	"sotheby",
}

// IsPremiumAgent reports whether the agent name or listing URL matches the
// fixed premium-agency list
func IsPremiumAgent(agentName, sourceURL string) float64 {
	text := strings.ToLower(agentName + " " + sourceURL)
	for _, fragment := range premiumAgentFragments {
		if strings.Contains(text, fragment) {
			return 1
		}
	}
	return 0
}

// sourceQualityTiers maps listing-site host fragments to a quality tier.
// Unknown sources get tier 1.
var sourceQualityTiers = map[string]int{
	"rightmove":   3,
	"zoopla":      3,
	"onthemarket": 2,
	"openrent":    2,
	"spareroom":   1,
	"gumtree":     1,
}

// SourceQuality returns the quality tier for a listing URL
func SourceQuality(sourceURL string) float64 {
	url := strings.ToLower(sourceURL)
	for host, tier := range sourceQualityTiers {
		if strings.Contains(url, host) {
			return float64(tier)
		}
	}
	return 1
}

// Three independent prestige vocabularies. An address can hit all three.

var gardenSquareNames = []string{
	"eaton square",
	"cadogan square",
	"belgrave square",
	"chester square",
	"onslow square",
	"lennox gardens",
	"ladbroke square",
	"montpelier square",
}

var ultraPrimeNames = []string{
	"eaton square",
	"belgravia",
	"knightsbridge",
	"mayfair",
	"one hyde park",
	"grosvenor square",
	"cadogan place",
}

var primeStreetNames = []string{
	"king's road",
	"kings road",
	"sloane street",
	"fulham road",
	"westbourne grove",
	"marylebone high street",
	"elizabeth street",
	"mount street",
	"portobello road",
}

// AddressPrestige runs the three prestige detectors over an address.
// Composite score weights ultra-prime over garden squares over prime
// streets: 3*ultraPrime + 2*gardenSquare + 1*primeStreet.
func AddressPrestige(address string) (gardenSquare, ultraPrime, primeStreet, score float64) {
	text := strings.ToLower(address)

	gardenSquare = matchAny(text, gardenSquareNames)
	ultraPrime = matchAny(text, ultraPrimeNames)
	primeStreet = matchAny(text, primeStreetNames)
	score = 3*ultraPrime + 2*gardenSquare + 1*primeStreet
	return
}

func matchAny(text string, names []string) float64 {
	for _, name := range names {
		if strings.Contains(text, name) {
			return 1
		}
	}
	return 0
}

// knownEstateNames are social-housing estates that occasionally surface in
// prime-postcode listings
var knownEstateNames = []string{
	"churchill gardens",
	"world's end estate",
	"worlds end estate",
	"peabody",
	"guinness trust",
	"aylesbury estate",
	"alton estate",
	"winstanley estate",
	"carpenters estate",
}

// socialHousingPPSFThreshold: listings in premium districts priced below
// this per-square-foot value are assumed to be social housing stock
const socialHousingPPSFThreshold = 3.5

// IsSocialHousing applies the two independent trigger paths: a known estate
// name in the address (high confidence), or a premium district with
// implausibly low price per square foot. A zero PPSF means the price is
// unknown and cannot trigger the second path.
func IsSocialHousing(address, district string, pricePerSqft float64) float64 {
	text := strings.ToLower(address)
	for _, estate := range knownEstateNames {
		if strings.Contains(text, estate) {
			return 1
		}
	}

	if IsPrimePostcode(district) && pricePerSqft > 0 && pricePerSqft < socialHousingPPSFThreshold {
		return 1
	}
	return 0
}
