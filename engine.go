package main

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const appVersion = "1.0.0"

// HealthSnapshot is the cached health view served by /api/v1/health. The
// engine refreshes it on its own tick so the handler never computes.
type HealthSnapshot struct {
	Status        string    `json:"status"`
	Name          string    `json:"name"`
	Version       string    `json:"version"`
	Environment   string    `json:"environment"`
	Uptime        string    `json:"uptime"`
	ActiveMatches int       `json:"active_matches"`
	TotalMatches  int       `json:"total_matches"`
	FeedLength    int       `json:"feed_length"`
	Source        string    `json:"source"`
	Timestamp     time.Time `json:"timestamp"`
}

// Engine owns all mutable runtime state: the live feed and the health
// snapshot. Two independent tickers drive it, a slow refresh and a faster
// live-event tick; only the engine's own loop mutates its state.
type Engine struct {
	cfg      *Config
	clock    clockwork.Clock
	sim      *Simulator
	gen      *EventGenerator
	feed     *Feed
	hub      *Hub
	provider *ProviderClient

	mu         sync.RWMutex
	health     HealthSnapshot
	lastSource string
	started    time.Time
}

func NewEngine(cfg *Config, clock clockwork.Clock, sim *Simulator, gen *EventGenerator, feed *Feed, hub *Hub, provider *ProviderClient) *Engine {
	e := &Engine{
		cfg:        cfg,
		clock:      clock,
		sim:        sim,
		gen:        gen,
		feed:       feed,
		hub:        hub,
		provider:   provider,
		lastSource: "simulator",
		started:    clock.Now(),
	}
	e.refresh()
	return e
}

// Run blocks until the context is cancelled, driving both tickers.
func (e *Engine) Run(ctx context.Context) {
	refresh := e.clock.NewTicker(time.Duration(e.cfg.RefreshIntervalSeconds) * time.Second)
	events := e.clock.NewTicker(time.Duration(e.cfg.EventIntervalSeconds) * time.Second)
	defer refresh.Stop()
	defer events.Stop()

	log.Info().
		Int("refresh_interval_s", e.cfg.RefreshIntervalSeconds).
		Int("event_interval_s", e.cfg.EventIntervalSeconds).
		Msg("engine started")

	for {
		select {
		case <-refresh.Chan():
			e.refresh()
		case <-events.Chan():
			e.tickEvent()
		case <-ctx.Done():
			log.Info().Msg("engine stopped")
			return
		}
	}
}

// tickEvent appends one synthetic event for a currently playing side and
// broadcasts it. A quiet slate (nothing live) is a no-op.
func (e *Engine) tickEvent() {
	ev, ok := e.gen.LiveEvent(e.sim.AllMatches())
	if !ok {
		return
	}

	e.feed.Append(ev)
	feedLength.Set(float64(e.feed.Len()))
	eventsGenerated.WithLabelValues(ev.Type, "live").Inc()
	e.hub.Broadcast(ev)

	log.Debug().
		Str("match_id", ev.MatchID).
		Str("type", ev.Type).
		Str("team", ev.TeamName).
		Int("minute", ev.Minute).
		Msg("live event generated")
}

func (e *Engine) refresh() {
	states := e.sim.AllMatches()
	active := 0
	for _, st := range states {
		if st.Status == StatusLive || st.Status == StatusHalfTime {
			active++
		}
	}

	e.mu.RLock()
	source := e.lastSource
	e.mu.RUnlock()

	snapshot := HealthSnapshot{
		Status:        "healthy",
		Name:          "NPFL Pulse",
		Version:       appVersion,
		Environment:   e.cfg.Environment,
		Uptime:        e.clock.Now().Sub(e.started).Round(time.Second).String(),
		ActiveMatches: active,
		TotalMatches:  len(states),
		FeedLength:    e.feed.Len(),
		Source:        source,
		Timestamp:     e.clock.Now(),
	}

	e.mu.Lock()
	e.health = snapshot
	e.mu.Unlock()

	feedLength.Set(float64(snapshot.FeedLength))
}

// noteSource records which data source actually served the last request, so
// health reports reality rather than whether a provider key is configured.
func (e *Engine) noteSource(source string) {
	e.mu.Lock()
	e.lastSource = source
	e.health.Source = source
	e.mu.Unlock()
}

func (e *Engine) Health() HealthSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.health
}
