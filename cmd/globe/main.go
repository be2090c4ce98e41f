// Command globe opens a window with an interactive globe and a weather search: type a location,
// press Enter, and the globe zooms in, flies to a city and shows the current conditions.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/config"
	"github.com/Carmen-Shannon/oxy-globe/engine"
	"github.com/Carmen-Shannon/oxy-globe/engine/animator"
	"github.com/Carmen-Shannon/oxy-globe/engine/globe"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
	"github.com/Carmen-Shannon/oxy-globe/engine/scene"
	"github.com/Carmen-Shannon/oxy-globe/engine/window"
	"github.com/Carmen-Shannon/oxy-globe/predict"
	"github.com/Carmen-Shannon/oxy-globe/remote"
	"github.com/Carmen-Shannon/oxy-globe/weather"
	"github.com/google/uuid"
)

func main() {
	settingsPath := flag.String("config", "", "Path to a YAML settings file")
	envFile := flag.String("env", ".env", "Path to a .env file holding "+config.APIKeyEnv)
	markersPath := flag.String("markers", "", "GeoJSON marker file, overrides the settings file")
	remoteAddr := flag.String("remote", "", "Serve the remote control feed on this address")
	profiling := flag.Bool("profile", false, "Log frame statistics")
	printConfig := flag.Bool("print-config", false, "Print the effective settings and exit")
	flag.Parse()

	settings, err := config.Load(*settingsPath, *envFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *markersPath != "" {
		settings.Globe.MarkersFile = *markersPath
	}
	if *remoteAddr != "" {
		settings.Remote.Enabled = true
		settings.Remote.Addr = *remoteAddr
	}
	if *profiling {
		settings.Engine.Profiling = true
	}

	if *printConfig {
		data, err := settings.Marshal()
		if err != nil {
			log.Fatalf("Failed to encode configuration: %v", err)
		}
		os.Stdout.Write(data)
		return
	}

	markers := settings.Globe.Markers
	if settings.Globe.MarkersFile != "" {
		if markers, err = weather.LoadMarkersFile(settings.Globe.MarkersFile); err != nil {
			log.Fatalf("Failed to load markers: %v", err)
		}
	}

	if err := run(settings, markers); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(settings config.Settings, markers []common.Marker) error {
	// ── Window ──────────────────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(settings.Window.Title),
		window.WithSize(settings.Window.Width, settings.Window.Height),
	)

	// ── Globe + zoom ────────────────────────────────────────────────────
	zoom := animator.NewScaleAnimator(settings.Zoom.From, settings.Zoom.To, settings.Zoom.Duration)
	g := globe.NewGlobe(
		globe.WithInitialRotation(0, settings.Globe.InitialLatitude),
		globe.WithSpinSpeed(settings.Globe.SpinSpeed),
		globe.WithMovementDamping(settings.Globe.MovementDamping),
		globe.WithScale(settings.Zoom.From),
		globe.WithMarkers(markers),
	)

	// ── Renderer ────────────────────────────────────────────────────────
	style := renderer.DefaultStyle
	style.Dark = settings.Renderer.Dark
	style.Diffuse = settings.Renderer.Diffuse
	style.MapBrightness = settings.Renderer.MapBrightness

	presentMode := renderer.PresentModeVSync
	if settings.Renderer.PresentMode == "uncapped" {
		presentMode = renderer.PresentModeUncapped
	}
	msaa := renderer.MSAAOff
	if settings.Renderer.MSAA {
		msaa = renderer.MSAA4x
	}

	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(settings.Renderer.ForceSoftware),
		renderer.WithStyle(style),
	)
	if err != nil {
		win.Close()
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	sc := scene.NewScene("Globe", g, r,
		scene.WithActive(true),
		scene.WithScaleAnimator(zoom),
	)

	// ── Weather + search ────────────────────────────────────────────────
	if settings.Weather.APIKey == "" {
		log.Printf("Warning: %s is not set, searches will show placeholder results", config.APIKeyEnv)
	}
	var provider weather.Provider = weather.NewWeatherAPIProvider(
		settings.Weather.APIKey,
		weather.WithBaseURL(settings.Weather.BaseURL),
		weather.WithTimeout(settings.Weather.Timeout),
	)
	provider = weather.NewRateLimitedProvider(provider, settings.Weather.RateLimit, settings.Weather.Burst)
	provider = weather.NewCachedProvider(provider, settings.Weather.CacheTTL, weather.WithCacheLogging(true))

	pred := predict.NewPredictor(g, zoom, provider,
		predict.WithCities(settings.Weather.Cities),
		predict.WithMarkerDelay(settings.Weather.MarkerDelay),
	)
	defer pred.Close()

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithProfiling(settings.Engine.Profiling),
		engine.WithTickRate(settings.Engine.TickRate),
		engine.WithWindow(win),
		engine.WithScene(0, sc),
	)

	// ── Input ───────────────────────────────────────────────────────────
	input := newSearchInput()
	refreshTitle := func(s predict.Snapshot) {
		win.SetTitle(windowTitle(settings.Window.Title, input.String(), s))
	}

	g.SetCursorCallback(func(c globe.Cursor) {
		switch c {
		case globe.CursorGrabbing:
			win.SetCursor(window.CursorGrabbing)
		default:
			win.SetCursor(window.CursorGrab)
		}
	})
	win.SetCursor(window.CursorGrab)
	win.SetPointerDownCallback(func(x, y float64) { g.PointerDown(x, y) })
	win.SetPointerMoveCallback(func(x, y float64) { g.PointerMove(x, y) })
	win.SetPointerUpCallback(func(x, y float64) { g.PointerUp() })
	win.SetPointerLeaveCallback(g.PointerLeave)

	win.SetCharCallback(func(c rune) {
		if pred.Snapshot().Phase != predict.PhaseIdle {
			return
		}
		if input.Type(c) {
			refreshTitle(pred.Snapshot())
		}
	})

	profilerOn := &atomic.Bool{}
	profilerOn.Store(settings.Engine.Profiling)
	win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyEnter:
			if pred.Snapshot().Phase != predict.PhaseIdle {
				return
			}
			query := input.Take()
			if _, err := pred.Submit(query); err != nil {
				log.Printf("[Predict] search %q not started: %v", query, err)
			}
		case common.KeyBack:
			if input.Backspace() {
				refreshTitle(pred.Snapshot())
			}
		case common.KeyEsc:
			input.Clear()
			pred.Reset()
		case common.KeyF1:
			g.ResumeAutoSpin()
		case common.KeyF2:
			if city, ok := weather.RandomCity(settings.Weather.Cities, nil); ok {
				if _, err := g.FlyTo(globe.FlyToRequest{Lat: city.Location.Lat, Lng: city.Location.Lng, Token: uuid.NewString()}); err != nil {
					log.Printf("[Globe] fly-to %s failed: %v", city.Name, err)
				}
			}
		case common.KeyF3:
			if profilerOn.Load() {
				eng.DisableProfiler()
			} else {
				eng.EnableProfiler()
			}
			profilerOn.Store(!profilerOn.Load())
		}
	})

	pred.SetChangeCallback(refreshTitle)
	eng.SetTickCallback(func(dt time.Duration) {
		pred.Update()
	})
	refreshTitle(pred.Snapshot())

	// ── Remote feed ─────────────────────────────────────────────────────
	if settings.Remote.Enabled {
		srv := remote.NewServer(g,
			remote.WithPredictor(pred),
			remote.WithBroadcastInterval(settings.Remote.BroadcastInterval),
		)
		go func() {
			if err := srv.ListenAndServe(settings.Remote.Addr); err != nil {
				log.Printf("[Remote] %v", err)
			}
		}()
		defer srv.Close()
	}

	eng.Run()
	return nil
}
