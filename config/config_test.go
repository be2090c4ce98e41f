package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults failed validation: %v", err)
	}
	if s.Zoom.From != 1 || s.Zoom.To != 1.4 || s.Zoom.Duration != 1500*time.Millisecond {
		t.Fatalf("unexpected zoom defaults %+v", s.Zoom)
	}
	if len(s.Globe.Markers) != 10 || len(s.Weather.Cities) != 10 {
		t.Fatalf("expected 10 default markers and cities, got %d and %d", len(s.Globe.Markers), len(s.Weather.Cities))
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	data := []byte(`
window:
  title: Weather
globe:
  spin_speed: 0.5
zoom:
  duration: 2s
weather:
  cities:
    - name: Lima
      location: {lat: -12.0464, lng: -77.0428}
remote:
  enabled: true
  broadcast_interval: 250ms
`)
	s, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Window.Title != "Weather" || s.Window.Width != 800 {
		t.Fatalf("unexpected window settings %+v", s.Window)
	}
	if s.Globe.SpinSpeed != 0.5 || s.Globe.MovementDamping != 1400 {
		t.Fatalf("unexpected globe settings %+v", s.Globe)
	}
	if s.Zoom.Duration != 2*time.Second || s.Zoom.To != 1.4 {
		t.Fatalf("unexpected zoom settings %+v", s.Zoom)
	}
	if len(s.Weather.Cities) != 1 || s.Weather.Cities[0].Name != "Lima" || s.Weather.Cities[0].Location.Lat != -12.0464 {
		t.Fatalf("unexpected cities %+v", s.Weather.Cities)
	}
	if !s.Remote.Enabled || s.Remote.Addr != "127.0.0.1:8090" || s.Remote.BroadcastInterval != 250*time.Millisecond {
		t.Fatalf("unexpected remote settings %+v", s.Remote)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	docs := map[string]string{
		"size":         "window: {width: 0}",
		"present mode": "renderer: {present_mode: sometimes}",
		"damping":      "globe: {movement_damping: -1}",
		"zoom":         "zoom: {to: 0}",
		"rate":         "weather: {rate_limit: 0}",
		"remote":       "remote: {enabled: true, addr: \"\"}",
		"tick":         "engine: {tick_rate: 0}",
	}
	for name, doc := range docs {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
	if _, err := Parse([]byte("window: [")); err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("expected a parse error, got %v", err)
	}
}

func TestApplyEnvPrecedence(t *testing.T) {
	tests := []struct {
		name string
		file map[string]string
		proc map[string]string
		want string
	}{
		{name: "none", want: ""},
		{name: "file", file: map[string]string{APIKeyEnv: "from-file"}, want: "from-file"},
		{name: "process wins", file: map[string]string{APIKeyEnv: "from-file"}, proc: map[string]string{APIKeyEnv: "from-env"}, want: "from-env"},
		{name: "legacy name", file: map[string]string{legacyAPIKeyEnv: "legacy"}, want: "legacy"},
		{name: "primary beats legacy", file: map[string]string{APIKeyEnv: "primary"}, proc: map[string]string{legacyAPIKeyEnv: "legacy"}, want: "primary"},
		{name: "blank ignored", proc: map[string]string{APIKeyEnv: "  "}, file: map[string]string{APIKeyEnv: "from-file"}, want: "from-file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			lookup := func(key string) (string, bool) {
				v, ok := tt.proc[key]
				return v, ok
			}
			s.ApplyEnv(tt.file, lookup)
			if s.Weather.APIKey != tt.want {
				t.Fatalf("expected api key %q, got %q", tt.want, s.Weather.APIKey)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "globe.yaml")
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(settingsPath, []byte("engine: {profiling: true}\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	if err := os.WriteFile(envPath, []byte(APIKeyEnv+"=file-key\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv(APIKeyEnv, "")

	s, err := Load(settingsPath, envPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Engine.Profiling || s.Weather.APIKey != "file-key" {
		t.Fatalf("unexpected settings %+v", s)
	}

	t.Setenv(APIKeyEnv, "env-key")
	s, err = Load("", filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Weather.APIKey != "env-key" {
		t.Fatalf("expected the process environment key, got %q", s.Weather.APIKey)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Fatalf("expected an error for a missing settings file")
	}
}

func TestMarshalOmitsAPIKey(t *testing.T) {
	s := Default()
	s.Weather.APIKey = "secret"
	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if back.Weather.APIKey != "" {
		t.Fatalf("api key leaked into YAML")
	}
	if back.Zoom != s.Zoom || back.Window != s.Window {
		t.Fatalf("round trip changed settings: %+v vs %+v", back, s)
	}
}
