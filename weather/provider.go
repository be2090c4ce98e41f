package weather

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrEmptyLocation is returned when a lookup is requested for a blank location.
	ErrEmptyLocation = errors.New("weather: location is empty")

	// ErrMissingAPIKey is returned by providers constructed without credentials.
	ErrMissingAPIKey = errors.New("weather: api key is not configured")
)

// PlaceholderTemperature is shown in place of a temperature the provider could not supply.
const PlaceholderTemperature = "--"

// Report is the current conditions for one location, already shaped for display.
type Report struct {
	// Location is the resolved place name.
	Location string `json:"location"`
	// Temperature is the rounded Celsius temperature as text, or PlaceholderTemperature.
	Temperature string `json:"temperature"`
	// TempC is the raw Celsius temperature reported by the provider.
	TempC float64 `json:"tempC"`
	// Condition is the classified weather category.
	Condition Condition `json:"condition"`
	// Description is the provider's free-form condition text.
	Description string `json:"description,omitempty"`
	// Placeholder is true when the report was synthesised after a failed lookup.
	Placeholder bool `json:"placeholder"`
}

// Provider fetches current weather conditions.
type Provider interface {
	// Name returns a human readable provider name used in log lines.
	Name() string

	// Current fetches the current conditions for a location.
	//
	// Parameters:
	//   - ctx: cancels the lookup
	//   - location: a free-form place query such as a city name
	//
	// Returns:
	//   - Report: the display-ready conditions
	//   - error: ErrEmptyLocation for blank input, or a wrapped transport/decoding error
	Current(ctx context.Context, location string) (Report, error)
}

// Title title-cases a free-form location query for display.
// A Caser carries state, so each call builds its own.
func Title(location string) string {
	return cases.Title(language.English).String(strings.TrimSpace(location))
}

// Placeholder builds the report shown when a lookup fails.
func Placeholder(location string) Report {
	return Report{
		Location:    Title(location),
		Temperature: PlaceholderTemperature,
		Condition:   Sunny,
		Placeholder: true,
	}
}
