// Package predict runs the weather search flow on top of a globe: a zoom ramp, an asynchronous
// provider lookup, a fly-to once the zoom lands and a delayed marker reveal.
package predict

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-globe/engine/animator"
	"github.com/Carmen-Shannon/oxy-globe/engine/globe"
	"github.com/Carmen-Shannon/oxy-globe/weather"
	"github.com/google/uuid"
)

var (
	// ErrBusy is returned by Submit while a search is already showing. Reset first.
	ErrBusy = errors.New("predict: a search is already in progress")

	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("predict: predictor is closed")
)

// Phase is the stage of the search flow.
type Phase int

const (
	// PhaseIdle waits for a query.
	PhaseIdle Phase = iota
	// PhaseZooming ramps the globe scale while the lookup runs.
	PhaseZooming
	// PhaseLanded has fired the fly-to; the result and marker follow when ready.
	PhaseLanded
)

func (p Phase) String() string {
	switch p {
	case PhaseZooming:
		return "zooming"
	case PhaseLanded:
		return "landed"
	default:
		return "idle"
	}
}

// Snapshot is a copy of the search state for display.
type Snapshot struct {
	Phase Phase
	// Query is the submitted location text.
	Query string
	// Token identifies the current search and is used as the fly-to trigger token.
	Token string
	// Target is the city the globe lands on.
	Target weather.City
	// Loading is true while the provider lookup is in flight.
	Loading bool
	// Result is the lookup outcome, nil until it arrives.
	Result *weather.Report
	// MarkerVisible turns true MarkerDelay after the result arrives.
	MarkerVisible bool
}

// Predictor drives one globe through search, landing and reset.
type Predictor interface {
	// Submit starts a search for a location.
	//
	// Parameters:
	//   - query: the free-form location text
	//
	// Returns:
	//   - string: the search token, also used as the fly-to trigger token
	//   - error: weather.ErrEmptyLocation for blank input, ErrBusy if a search is showing, ErrClosed after Close
	Submit(query string) (string, error)

	// Update advances time-based transitions. It fires the fly-to once the zoom completes and
	// reveals the marker once its delay elapses. Call it once per tick.
	Update()

	// Snapshot returns a copy of the current search state.
	Snapshot() Snapshot

	// Reset discards the current search, restores scale 1 and resumes auto-spin.
	// A lookup still in flight is ignored when it returns.
	Reset()

	// SetChangeCallback registers a callback invoked after each state change.
	//
	// Parameters:
	//   - callback: receives the new snapshot; called without internal locks held
	SetChangeCallback(callback func(s Snapshot))

	// Close cancels in-flight lookups, waits for them and stops the worker pool.
	Close()
}

type predictor struct {
	mu *sync.Mutex

	g        globe.Globe
	zoom     animator.ScaleAnimator
	provider weather.Provider
	cities   []weather.City
	rng      *rand.Rand

	pool          worker.DynamicWorkerPool
	workers       int
	queueSize     int
	lookupTimeout time.Duration
	markerDelay   time.Duration
	logging       bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool

	state    Snapshot
	revealAt time.Time
	seq      int
	onChange func(s Snapshot)
}

var _ Predictor = &predictor{}

// NewPredictor creates a predictor bound to a globe, its zoom animator and a weather provider.
//
// Parameters:
//   - g: the globe to fly and scale
//   - zoom: the animator whose ramp the scene applies to the globe; its clock drives the flow
//   - provider: the weather source
//   - options: functional options to configure the predictor
//
// Returns:
//   - Predictor: the predictor, with its worker pool running
func NewPredictor(g globe.Globe, zoom animator.ScaleAnimator, provider weather.Provider, options ...PredictorBuilderOption) Predictor {
	if g == nil || zoom == nil || provider == nil {
		panic("predict: globe, animator and provider are required")
	}
	p := &predictor{
		mu:            &sync.Mutex{},
		g:             g,
		zoom:          zoom,
		provider:      provider,
		cities:        weather.DefaultCities,
		workers:       DefaultWorkers,
		queueSize:     DefaultQueueSize,
		lookupTimeout: DefaultLookupTimeout,
		markerDelay:   DefaultMarkerDelay,
		logging:       true,
	}
	for _, option := range options {
		option(p)
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.pool = worker.NewDynamicWorkerPool(p.workers, p.queueSize, time.Second)
	return p
}

// pickTarget lands on the named city when the query matches one, otherwise on a random city.
func (p *predictor) pickTarget(query string) (weather.City, bool) {
	if c, ok := weather.LookupCity(p.cities, query); ok {
		return c, true
	}
	return weather.RandomCity(p.cities, p.rng)
}

func (p *predictor) Submit(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", weather.ErrEmptyLocation
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return "", ErrClosed
	}
	if p.state.Phase != PhaseIdle {
		p.mu.Unlock()
		return "", ErrBusy
	}
	target, ok := p.pickTarget(query)
	if !ok {
		p.mu.Unlock()
		return "", fmt.Errorf("predict: no landing cities configured")
	}

	p.seq++
	seq := p.seq
	token := uuid.NewString()
	p.state = Snapshot{
		Phase:   PhaseZooming,
		Query:   query,
		Token:   token,
		Target:  target,
		Loading: true,
	}
	p.revealAt = time.Time{}
	p.zoom.StartNow()
	p.wg.Add(1)
	snap := p.state
	p.mu.Unlock()

	if p.logging {
		log.Printf("[Predict] searching %q, landing on %s", query, target.Name)
	}

	p.pool.SubmitTask(worker.Task{
		ID:      seq,
		Payload: query,
		Do: func() (any, error) {
			defer p.wg.Done()
			return p.lookup(seq, query)
		},
	})

	p.notify(snap)
	return token, nil
}

// lookup runs on a pool worker.
func (p *predictor) lookup(seq int, query string) (any, error) {
	ctx, cancel := context.WithTimeout(p.ctx, p.lookupTimeout)
	defer cancel()

	report, err := p.provider.Current(ctx, query)
	if err != nil {
		if p.logging {
			log.Printf("[Predict] lookup for %q via %s failed: %v", query, p.provider.Name(), err)
		}
		report = weather.Placeholder(query)
	}

	p.mu.Lock()
	if p.closed || seq != p.seq || p.state.Phase == PhaseIdle {
		p.mu.Unlock()
		return nil, err
	}
	p.state.Loading = false
	p.state.Result = &report
	p.revealAt = p.zoom.Now().Add(p.markerDelay)
	snap := p.state
	p.mu.Unlock()

	p.notify(snap)
	return report, err
}

func (p *predictor) Update() {
	now := p.zoom.Now()
	changed := false

	p.mu.Lock()
	if p.state.Phase == PhaseZooming && p.zoom.Done(now) {
		if _, err := p.g.FlyTo(globe.FlyToRequest{
			Lat:   p.state.Target.Location.Lat,
			Lng:   p.state.Target.Location.Lng,
			Token: p.state.Token,
		}); err != nil && p.logging {
			log.Printf("[Predict] fly-to %s failed: %v", p.state.Target.Name, err)
		}
		p.state.Phase = PhaseLanded
		changed = true
	}
	if p.state.Result != nil && !p.state.MarkerVisible && !p.revealAt.IsZero() && !now.Before(p.revealAt) {
		p.state.MarkerVisible = true
		changed = true
	}
	snap := p.state
	p.mu.Unlock()

	if changed {
		p.notify(snap)
	}
}

func (p *predictor) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *predictor) Reset() {
	p.mu.Lock()
	p.state = Snapshot{}
	p.revealAt = time.Time{}
	p.zoom.Reset()
	snap := p.state
	p.mu.Unlock()

	if err := p.g.SetScale(p.zoom.From()); err != nil && p.logging {
		log.Printf("[Predict] reset scale failed: %v", err)
	}
	p.g.ResumeAutoSpin()
	p.notify(snap)
}

func (p *predictor) SetChangeCallback(callback func(s Snapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = callback
}

func (p *predictor) notify(s Snapshot) {
	p.mu.Lock()
	cb := p.onChange
	p.mu.Unlock()
	if cb != nil {
		cb(s)
	}
}

func (p *predictor) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
	p.pool.Stop()
}
