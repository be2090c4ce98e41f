package weather

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Condition
	}{
		{"Patchy light rain", Rainy},
		{"RAIN", Rainy},
		{"Patchy rain, cloudy", Rainy},
		{"Partly cloudy", Cloudy},
		{"Overcast clouds", Cloudy},
		{"Fog", Foggy},
		{"Mist", Foggy},
		{"Smoke and haze", Foggy},
		{"Clear", Sunny},
		{"Sunny", Sunny},
		{"", Sunny},
	}

	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestConditionString(t *testing.T) {
	names := map[Condition]string{Sunny: "Sunny", Rainy: "Rainy", Cloudy: "Cloudy", Foggy: "Foggy", Condition(42): "Sunny"}
	for c, want := range names {
		if got := c.String(); got != want {
			t.Errorf("Condition(%d).String() = %q, want %q", int(c), got, want)
		}
	}
}

func TestPlaceholder(t *testing.T) {
	r := Placeholder("  new york city ")
	if r.Location != "New York City" {
		t.Fatalf("expected title-cased location, got %q", r.Location)
	}
	if r.Temperature != PlaceholderTemperature || r.Condition != Sunny || !r.Placeholder {
		t.Fatalf("unexpected placeholder report %+v", r)
	}
}
