// Package config loads application settings from a YAML file and secrets from the environment.
// Settings are plain values handed to constructors; nothing here is global.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/weather"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv is the environment variable holding the weatherapi.com key.
const APIKeyEnv = "WEATHERAPI_KEY"

// legacyAPIKeyEnv is read when APIKeyEnv is unset.
const legacyAPIKeyEnv = "NEXT_PUBLIC_WEATHERAPI_KEY"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid settings")

// WindowSettings size and name the host window.
type WindowSettings struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RendererSettings choose the present mode, anti-aliasing and globe style.
type RendererSettings struct {
	// PresentMode is "vsync" or "uncapped".
	PresentMode   string  `yaml:"present_mode"`
	MSAA          bool    `yaml:"msaa"`
	ForceSoftware bool    `yaml:"force_software"`
	Dark          float32 `yaml:"dark"`
	Diffuse       float32 `yaml:"diffuse"`
	MapBrightness float32 `yaml:"map_brightness"`
}

// GlobeSettings tune rotation and list the markers drawn on the sphere.
type GlobeSettings struct {
	// SpinSpeed is the auto-spin rate in radians per second.
	SpinSpeed float64 `yaml:"spin_speed"`
	// MovementDamping is the pixels of drag per radian of rotation.
	MovementDamping float64 `yaml:"movement_damping"`
	// InitialLatitude is the starting tilt in radians.
	InitialLatitude float64 `yaml:"initial_latitude"`
	// MarkersFile is an optional GeoJSON file replacing Markers.
	MarkersFile string          `yaml:"markers_file,omitempty"`
	Markers     []common.Marker `yaml:"markers"`
}

// ZoomSettings describe the scale animation played when a search starts.
type ZoomSettings struct {
	From     float64       `yaml:"from"`
	To       float64       `yaml:"to"`
	Duration time.Duration `yaml:"duration"`
}

// WeatherSettings configure the weather provider chain and the landing cities.
type WeatherSettings struct {
	// APIKey is never read from or written to the YAML file.
	APIKey      string         `yaml:"-"`
	BaseURL     string         `yaml:"base_url"`
	Timeout     time.Duration  `yaml:"timeout"`
	RateLimit   float64        `yaml:"rate_limit"`
	Burst       int            `yaml:"burst"`
	CacheTTL    time.Duration  `yaml:"cache_ttl"`
	MarkerDelay time.Duration  `yaml:"marker_delay"`
	Cities      []weather.City `yaml:"cities"`
}

// RemoteSettings control the websocket remote feed.
type RemoteSettings struct {
	Enabled           bool          `yaml:"enabled"`
	Addr              string        `yaml:"addr"`
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`
}

// EngineSettings configure the engine loop.
type EngineSettings struct {
	Profiling bool    `yaml:"profiling"`
	TickRate  float64 `yaml:"tick_rate"`
}

// Settings is the full application configuration.
type Settings struct {
	Window   WindowSettings   `yaml:"window"`
	Renderer RendererSettings `yaml:"renderer"`
	Globe    GlobeSettings    `yaml:"globe"`
	Zoom     ZoomSettings     `yaml:"zoom"`
	Weather  WeatherSettings  `yaml:"weather"`
	Remote   RemoteSettings   `yaml:"remote"`
	Engine   EngineSettings   `yaml:"engine"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		Window: WindowSettings{Title: "Globe", Width: 800, Height: 800},
		Renderer: RendererSettings{
			PresentMode:   "vsync",
			MSAA:          true,
			Diffuse:       0.4,
			MapBrightness: 1.2,
		},
		Globe: GlobeSettings{
			SpinSpeed:       0.3,
			MovementDamping: 1400,
			InitialLatitude: 0.3,
			Markers:         append([]common.Marker(nil), common.DefaultMarkers...),
		},
		Zoom: ZoomSettings{From: 1.0, To: 1.4, Duration: 1500 * time.Millisecond},
		Weather: WeatherSettings{
			BaseURL:     weather.DefaultWeatherAPIBaseURL,
			Timeout:     weather.DefaultRequestTimeout,
			RateLimit:   1,
			Burst:       5,
			CacheTTL:    weather.DefaultCacheTTL,
			MarkerDelay: time.Second,
			Cities:      append([]weather.City(nil), weather.DefaultCities...),
		},
		Remote: RemoteSettings{
			Addr:              "127.0.0.1:8090",
			BroadcastInterval: 100 * time.Millisecond,
		},
		Engine: EngineSettings{TickRate: 60},
	}
}

// Parse overlays YAML data onto the defaults and validates the result.
// Keys absent from data keep their default values.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads settings from a YAML file and the API key from the environment.
//
// Parameters:
//   - path: the YAML settings file; empty uses the defaults
//   - envFile: a .env file consulted for the API key; a missing file is not an error
//
// Returns:
//   - Settings: the merged settings
//   - error: a read, parse or validation error
func Load(path, envFile string) (Settings, error) {
	var (
		s   Settings
		err error
	)
	if path == "" {
		s = Default()
	} else {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return Settings{}, fmt.Errorf("failed to read settings: %w", readErr)
		}
		if s, err = Parse(data); err != nil {
			return Settings{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	env, err := ReadEnvFile(envFile)
	if err != nil {
		return Settings{}, err
	}
	s.ApplyEnv(env, os.LookupEnv)
	return s, nil
}

// ReadEnvFile reads KEY=value pairs without touching the process environment.
// A missing file yields an empty map.
func ReadEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return env, nil
}

// ApplyEnv sets the API key. The process environment wins over the env file, and APIKeyEnv wins
// over the legacy variable name.
//
// Parameters:
//   - file: values read from a .env file
//   - lookup: the process environment lookup, usually os.LookupEnv
func (s *Settings) ApplyEnv(file map[string]string, lookup func(string) (string, bool)) {
	for _, key := range []string{APIKeyEnv, legacyAPIKeyEnv} {
		if lookup != nil {
			if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
				s.Weather.APIKey = strings.TrimSpace(v)
				return
			}
		}
		if v, ok := file[key]; ok && strings.TrimSpace(v) != "" {
			s.Weather.APIKey = strings.TrimSpace(v)
			return
		}
	}
}

// Validate reports the first setting that cannot be used.
func (s Settings) Validate() error {
	switch {
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	case s.Renderer.PresentMode != "vsync" && s.Renderer.PresentMode != "uncapped":
		return fmt.Errorf("%w: present_mode %q", ErrInvalid, s.Renderer.PresentMode)
	case !common.IsFinite(s.Globe.SpinSpeed):
		return fmt.Errorf("%w: spin_speed %v", ErrInvalid, s.Globe.SpinSpeed)
	case !common.IsFinite(s.Globe.MovementDamping) || s.Globe.MovementDamping <= 0:
		return fmt.Errorf("%w: movement_damping %v", ErrInvalid, s.Globe.MovementDamping)
	case s.Zoom.From <= 0 || s.Zoom.To <= 0:
		return fmt.Errorf("%w: zoom %v -> %v", ErrInvalid, s.Zoom.From, s.Zoom.To)
	case s.Zoom.Duration < 0:
		return fmt.Errorf("%w: zoom duration %s", ErrInvalid, s.Zoom.Duration)
	case s.Weather.RateLimit <= 0 || s.Weather.Burst < 1:
		return fmt.Errorf("%w: weather rate %v burst %d", ErrInvalid, s.Weather.RateLimit, s.Weather.Burst)
	case len(s.Weather.Cities) == 0:
		return fmt.Errorf("%w: no landing cities", ErrInvalid)
	case s.Remote.Enabled && s.Remote.Addr == "":
		return fmt.Errorf("%w: remote enabled without addr", ErrInvalid)
	case s.Engine.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate %v", ErrInvalid, s.Engine.TickRate)
	}
	return nil
}

// Marshal encodes the settings as YAML. The API key is omitted.
func (s Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
