// Package remote exposes a globe over a websocket feed so an external search UI can deliver
// fly-to requests and follow the globe's orientation.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/globe"
	"github.com/Carmen-Shannon/oxy-globe/predict"
	"github.com/Carmen-Shannon/oxy-globe/weather"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// ErrNoPredictor is reported to clients sending search messages to a server without a predictor.
var ErrNoPredictor = errors.New("remote: search is not enabled")

// Server serves the websocket feed and a few plain HTTP endpoints.
//
// Routes:
//   - /ws: bidirectional feed of Request and State/Reply messages
//   - /healthz: liveness probe
//   - /markers: the globe's markers as a GeoJSON FeatureCollection
type Server interface {
	// Handler returns the HTTP handler serving every route.
	Handler() http.Handler

	// Start launches the state broadcast loop. Calling it more than once has no effect.
	Start()

	// ListenAndServe starts the broadcast loop and serves on addr until Close.
	//
	// Parameters:
	//   - addr: the TCP address to listen on, e.g. ":8090"
	//
	// Returns:
	//   - error: the listener error, nil after a clean Close
	ListenAndServe(addr string) error

	// BroadcastState sends the current state to every client immediately.
	BroadcastState()

	// Clients returns the number of connected clients.
	Clients() int

	// Close stops the broadcast loop, shuts the listener down and disconnects every client.
	Close() error
}

type client struct {
	id      string
	conn    *websocket.Conn
	writeMu *sync.Mutex
	limiter *rate.Limiter
}

type server struct {
	g         globe.Globe
	predictor predict.Predictor

	upgrader     websocket.Upgrader
	interval     time.Duration
	writeTimeout time.Duration
	messageRate  rate.Limit
	messageBurst int
	logging      bool

	clientsMu *sync.RWMutex
	clients   map[string]*client

	startOnce *sync.Once
	closeOnce *sync.Once
	quit      chan struct{}
	wg        sync.WaitGroup

	httpMu *sync.Mutex
	http   *http.Server
}

var _ Server = &server{}

// NewServer creates a remote feed for a globe.
//
// Parameters:
//   - g: the globe to control and report on
//   - options: functional options to configure the server
//
// Returns:
//   - Server: the server, not yet broadcasting
func NewServer(g globe.Globe, options ...ServerBuilderOption) Server {
	if g == nil {
		panic("remote: globe is required")
	}
	s := &server{
		g:            g,
		interval:     DefaultBroadcastInterval,
		writeTimeout: DefaultWriteTimeout,
		messageRate:  rate.Limit(DefaultMessageRate),
		messageBurst: DefaultMessageBurst,
		logging:      true,
		clientsMu:    &sync.RWMutex{},
		clients:      make(map[string]*client),
		startOnce:    &sync.Once{},
		closeOnce:    &sync.Once{},
		quit:         make(chan struct{}),
		httpMu:       &sync.Mutex{},
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/markers", s.handleMarkers)
	return mux
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	data, err := weather.MarkersGeoJSON(s.g.Markers())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(data)
}

func (s *server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if s.logging {
			log.Println("[Remote] websocket upgrade error:", err)
		}
		return
	}
	defer conn.Close()

	c := &client{
		id:      uuid.NewString(),
		conn:    conn,
		writeMu: &sync.Mutex{},
		limiter: rate.NewLimiter(s.messageRate, s.messageBurst),
	}
	s.clientsMu.Lock()
	s.clients[c.id] = c
	s.clientsMu.Unlock()
	defer s.removeClient(c.id)

	if s.logging {
		log.Printf("[Remote] client %s connected from %s", c.id, r.RemoteAddr)
	}

	if err := s.send(c, s.state()); err != nil {
		return
	}

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if s.logging && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[Remote] client %s read error: %v", c.id, err)
			}
			return
		}
		if !c.limiter.Allow() {
			s.send(c, Reply{Type: MessageError, Request: req.Type, Error: "rate limited"})
			continue
		}
		if err := s.send(c, s.handle(req)); err != nil {
			return
		}
	}
}

// handle applies one request to the globe or predictor.
func (s *server) handle(req Request) Reply {
	reply := Reply{Type: MessageAck, Request: req.Type, Token: req.Token}

	switch req.Type {
	case MessageFlyTo:
		if req.Lat == nil || req.Lng == nil {
			return errorReply(req, globe.ErrInvalidCoordinates)
		}
		var token any
		if req.Token != "" {
			token = req.Token
		}
		accepted, err := s.g.FlyTo(globe.FlyToRequest{Lat: *req.Lat, Lng: *req.Lng, Token: token})
		if err != nil {
			return errorReply(req, err)
		}
		reply.Accepted = accepted
	case MessageResume:
		s.g.ResumeAutoSpin()
		reply.Accepted = true
	case MessageSearch:
		if s.predictor == nil {
			return errorReply(req, ErrNoPredictor)
		}
		token, err := s.predictor.Submit(req.Query)
		if err != nil {
			return errorReply(req, err)
		}
		reply.Token = token
		reply.Accepted = true
	case MessageReset:
		if s.predictor == nil {
			return errorReply(req, ErrNoPredictor)
		}
		s.predictor.Reset()
		reply.Accepted = true
	default:
		return errorReply(req, fmt.Errorf("remote: unknown message type %q", req.Type))
	}
	return reply
}

func errorReply(req Request, err error) Reply {
	return Reply{Type: MessageError, Request: req.Type, Token: req.Token, Error: err.Error()}
}

func (s *server) state() State {
	o := s.g.Orientation()
	st := State{
		Type:  MessageState,
		Phi:   o.Phi,
		Theta: o.Theta,
		Lat:   common.Clamp(common.RadToDeg(o.Theta), -90, 90),
		Lng:   -common.RadToDeg(common.AngleDelta(0, o.Phi)),
		Mode:  s.g.Mode().String(),
		Scale: s.g.Scale(),
	}
	if s.predictor != nil {
		snap := s.predictor.Snapshot()
		search := &SearchState{
			Phase:         snap.Phase.String(),
			Query:         snap.Query,
			Target:        snap.Target.Name,
			Loading:       snap.Loading,
			MarkerVisible: snap.MarkerVisible,
		}
		if snap.Result != nil {
			search.Location = snap.Result.Location
			search.Temperature = snap.Result.Temperature
			search.Condition = snap.Result.Condition.String()
		}
		st.Search = search
	}
	return st
}

func (s *server) send(c *client, v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	return c.conn.WriteJSON(v)
}

func (s *server) removeClient(id string) {
	s.clientsMu.Lock()
	delete(s.clients, id)
	s.clientsMu.Unlock()
	if s.logging {
		log.Printf("[Remote] client %s disconnected", id)
	}
}

func (s *server) BroadcastState() {
	st := s.state()

	s.clientsMu.RLock()
	targets := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		targets = append(targets, c)
	}
	s.clientsMu.RUnlock()

	for _, c := range targets {
		if err := s.send(c, st); err != nil {
			// The read loop notices the broken connection and removes the client.
			c.conn.Close()
		}
	}
}

func (s *server) Start() {
	s.startOnce.Do(func() {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			ticker := time.NewTicker(s.interval)
			defer ticker.Stop()
			for {
				select {
				case <-s.quit:
					return
				case <-ticker.C:
					s.BroadcastState()
				}
			}
		}()
	})
}

func (s *server) ListenAndServe(addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.httpMu.Lock()
	s.http = hs
	s.httpMu.Unlock()

	s.Start()
	if s.logging {
		log.Printf("[Remote] listening on %s", addr)
	}
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("remote: listen on %s: %w", addr, err)
	}
	return nil
}

func (s *server) Clients() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

func (s *server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.quit)
		s.wg.Wait()

		s.httpMu.Lock()
		hs := s.http
		s.httpMu.Unlock()
		if hs != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			err = hs.Shutdown(ctx)
		}

		s.clientsMu.RLock()
		for _, c := range s.clients {
			c.writeMu.Lock()
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"),
				time.Now().Add(time.Second))
			c.writeMu.Unlock()
			c.conn.Close()
		}
		s.clientsMu.RUnlock()
	})
	return err
}
