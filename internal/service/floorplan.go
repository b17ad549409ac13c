package service

import (
	"regexp"
	"strings"
)

// ocrSubstitutions normalizes character-level misreads the OCR collaborator
// produces on floor-plan typography. Applied to the lowercased transcript
// before any matching.
var ocrSubstitutions = []struct {
	from, to string
}{
	{"gr0und", "ground"},
	{"groud", "ground"},
	{"grnd", "ground"},
	{"f1rst", "first"},
	{"flrst", "first"},
	{"fst floor", "first floor"},
	{"1ower", "lower"},
	{"l0wer", "lower"},
	{"basment", "basement"},
	{"basemen t", "basement"},
	{"mezannine", "mezzanine"},
	{"mezanine", "mezzanine"},
	{"penth0use", "penthouse"},
	{"r00f", "roof"},
}

// exclusionPatterns discard transcript lines that mention a floor only to
// say it is not part of the demise. An excluded line can never contribute a
// positive floor match.
var exclusionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`excluding`),
	regexp.MustCompile(`excluded`),
	regexp.MustCompile(`not\s+included`),
	regexp.MustCompile(`reduced\s+headroom`),
	regexp.MustCompile(`restricted\s+height`),
	regexp.MustCompile(`limited\s+use`),
}

// Canonical floor names in detection order. Earlier floors consume their
// matched text before later ones run, which is what keeps "lower ground
// floor" from also registering as a ground floor. roof_terrace is detected
// but not counted as a main floor.
const (
	floorBasement    = "basement"
	floorLowerGround = "lower_ground"
	floorGround      = "ground"
	floorMezzanine   = "mezzanine"
	floorPenthouse   = "penthouse"
	floorRoofTerrace = "roof_terrace"
)

type floorPattern struct {
	name     string
	patterns []*regexp.Regexp
}

var floorPatterns = []floorPattern{
	{floorBasement, compileAll(`basement`, `cellar`)},
	{floorLowerGround, compileAll(`lower\s+ground(\s+floor)?`)},
	{floorGround, compileAll(`ground\s+floor`, `\bground\b`)},
	{floorMezzanine, compileAll(`mezzanine`)},
	{"first", compileAll(`first\s+floor`, `1st\s+floor`)},
	{"second", compileAll(`second\s+floor`, `2nd\s+floor`)},
	{"third", compileAll(`third\s+floor`, `3rd\s+floor`)},
	{"fourth", compileAll(`fourth\s+floor`, `4th\s+floor`)},
	{"fifth", compileAll(`fifth\s+floor`, `5th\s+floor`)},
	{"sixth", compileAll(`sixth\s+floor`, `6th\s+floor`)},
	{"seventh", compileAll(`seventh\s+floor`, `7th\s+floor`)},
	{"eighth", compileAll(`eighth\s+floor`, `8th\s+floor`)},
	{"ninth", compileAll(`ninth\s+floor`, `9th\s+floor`)},
	{"tenth", compileAll(`tenth\s+floor`, `10th\s+floor`)},
	{floorPenthouse, compileAll(`penthouse`)},
	{floorRoofTerrace, compileAll(`roof\s+terrace`, `roof\s+garden`)},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// FloorSignals are the derived flags the feature pipeline consumes.
// FloorCount counts distinct matched main floors (everything except
// roof_terrace).
type FloorSignals struct {
	HasBasement    float64
	HasGround      float64
	HasFirstFloor  float64
	HasSecondFloor float64
	HasThirdFloor  float64
	HasFourthPlus  float64
	HasRoofTerrace float64
	FloorCount     float64
	IsMultiFloor   float64
}

// ExtractFloors parses a floor-plan OCR transcript into floor flags. An
// empty transcript yields the zero value; malformed lines are simply
// ignored.
func ExtractFloors(transcript string) FloorSignals {
	var signals FloorSignals
	if strings.TrimSpace(transcript) == "" {
		return signals
	}

	text := strings.ToLower(transcript)
	for _, sub := range ocrSubstitutions {
		text = strings.ReplaceAll(text, sub.from, sub.to)
	}

	matched := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		if isExcludedLine(line) {
			continue
		}
		for _, fp := range floorPatterns {
			for _, re := range fp.patterns {
				if re.MatchString(line) {
					matched[fp.name] = true
					// Consume the span so "lower ground" cannot re-match
					// as plain "ground" further down the list.
					line = re.ReplaceAllString(line, " ")
				}
			}
		}
	}

	if matched[floorBasement] || matched[floorLowerGround] {
		signals.HasBasement = 1
	}
	if matched[floorGround] {
		signals.HasGround = 1
	}
	if matched["first"] || matched[floorMezzanine] {
		signals.HasFirstFloor = 1
	}
	if matched["second"] {
		signals.HasSecondFloor = 1
	}
	if matched["third"] {
		signals.HasThirdFloor = 1
	}
	for _, upper := range []string{"fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth", floorPenthouse} {
		if matched[upper] {
			signals.HasFourthPlus = 1
			break
		}
	}
	if matched[floorRoofTerrace] {
		signals.HasRoofTerrace = 1
	}

	count := 0
	for name := range matched {
		if name != floorRoofTerrace {
			count++
		}
	}
	signals.FloorCount = float64(count)
	if count >= 2 {
		signals.IsMultiFloor = 1
	}

	return signals
}

func isExcludedLine(line string) bool {
	for _, re := range exclusionPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
