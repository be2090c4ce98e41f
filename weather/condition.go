package weather

import "regexp"

// Condition is the coarse weather category shown next to a prediction result.
type Condition int

const (
	Sunny Condition = iota
	Rainy
	Cloudy
	Foggy
)

// String returns the display name of the condition.
func (c Condition) String() string {
	switch c {
	case Rainy:
		return "Rainy"
	case Cloudy:
		return "Cloudy"
	case Foggy:
		return "Foggy"
	default:
		return "Sunny"
	}
}

// MarshalText encodes the condition by its display name.
func (c Condition) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type conditionRule struct {
	pattern   *regexp.Regexp
	condition Condition
}

// conditionRules are evaluated in order; the first match wins.
var conditionRules = []conditionRule{
	{pattern: regexp.MustCompile(`(?i)rain`), condition: Rainy},
	{pattern: regexp.MustCompile(`(?i)cloud`), condition: Cloudy},
	{pattern: regexp.MustCompile(`(?i)fog|mist|haze`), condition: Foggy},
}

// Classify maps a free-form provider condition text onto a Condition.
// Text matching none of the rules, including the empty string, is Sunny.
//
// Parameters:
//   - text: the provider's condition description, e.g. "Patchy light rain"
//
// Returns:
//   - Condition: the first matching category in the order rain, cloud, fog/mist/haze
func Classify(text string) Condition {
	for _, rule := range conditionRules {
		if rule.pattern.MatchString(text) {
			return rule.condition
		}
	}
	return Sunny
}
