package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// API binds the simulator, generator, feed and provider behind the HTTP
// surface. Handlers read snapshots; nothing here mutates engine state.
type API struct {
	registry *Registry
	sim      *Simulator
	gen      *EventGenerator
	feed     *Feed
	engine   *Engine
	hub      *Hub
	provider *ProviderClient
}

func NewAPI(registry *Registry, sim *Simulator, gen *EventGenerator, feed *Feed, engine *Engine, hub *Hub, provider *ProviderClient) *API {
	return &API{
		registry: registry,
		sim:      sim,
		gen:      gen,
		feed:     feed,
		engine:   engine,
		hub:      hub,
		provider: provider,
	}
}

func (a *API) Routes(router *mux.Router) {
	router.HandleFunc("/", a.serveHomepage).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", a.healthCheck).Methods("GET")

	api.HandleFunc("/matches", a.getAllMatches).Methods("GET")
	api.HandleFunc("/matches/{index:[0-9]+}", a.getMatch).Methods("GET")
	api.HandleFunc("/matches/{index:[0-9]+}/events", a.getMatchEvents).Methods("GET")
	api.HandleFunc("/matches/{index:[0-9]+}/stats", a.getMatchStats).Methods("GET")

	api.HandleFunc("/feed", a.getFeed).Methods("GET")
	api.HandleFunc("/live", a.hub.ServeWS).Methods("GET")

	api.HandleFunc("/teams", a.getAllTeams).Methods("GET")
	api.HandleFunc("/teams/{id:[0-9]+}", a.getTeam).Methods("GET")

	api.HandleFunc("/fixtures", a.getTodayFixtures).Methods("GET")
	api.HandleFunc("/fixtures/sets", a.getFixtureSets).Methods("GET")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// matchStates resolves today's matches, provider first with simulator
// fallback. Provider failures never reach the dashboard.
func (a *API) matchStates(r *http.Request) ([]MatchState, string) {
	if a.provider != nil && a.provider.Enabled() {
		fixtures, err := a.provider.LiveFixtures(r.Context())
		if err == nil && len(fixtures) > 0 {
			states := make([]MatchState, 0, len(fixtures))
			for _, f := range fixtures {
				states = append(states, fixtureToMatchState(f))
			}
			a.engine.noteSource("api-football")
			return states, "api-football"
		}
		if err != nil {
			log.Warn().Err(err).Msg("provider unavailable, falling back to simulator")
		}
	}
	a.engine.noteSource("simulator")
	return a.sim.AllMatches(), "simulator"
}

// matchDetail resolves one match's state and timeline. With the provider
// enabled the index addresses today's provider fixture list and the timeline
// comes from the fixture events endpoint; any provider failure or a missing
// fixture falls back to the simulated match.
func (a *API) matchDetail(r *http.Request, index int) (MatchState, []MatchEvent, string) {
	if a.provider != nil && a.provider.Enabled() {
		state, events, err := a.providerDetail(r, index)
		if err == nil {
			a.engine.noteSource("api-football")
			return state, events, "api-football"
		}
		log.Warn().Err(err).Int("match_index", index).Msg("provider unavailable, falling back to simulator")
	}

	state, _ := a.sim.MatchState(index)
	a.engine.noteSource("simulator")
	return state, a.gen.Retrospective(state), "simulator"
}

func (a *API) providerDetail(r *http.Request, index int) (MatchState, []MatchEvent, error) {
	fixtures, err := a.provider.LiveFixtures(r.Context())
	if err != nil {
		return MatchState{}, nil, err
	}
	if index >= len(fixtures) {
		return MatchState{}, nil, fmt.Errorf("no provider fixture at index %d", index)
	}

	fixture := fixtures[index]
	state := fixtureToMatchState(fixture)

	raw, err := a.provider.FixtureEvents(r.Context(), fixture.Fixture.ID)
	if err != nil {
		return MatchState{}, nil, err
	}

	events := make([]MatchEvent, 0, len(raw))
	for _, e := range raw {
		events = append(events, providerEventToMatchEvent(e, state))
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Minute > events[j].Minute
	})
	return state, events, nil
}

func (a *API) getAllMatches(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")

	states, source := a.matchStates(r)
	if statusFilter != "" {
		filtered := states[:0]
		for _, st := range states {
			if st.Status == statusFilter {
				filtered = append(filtered, st)
			}
		}
		states = filtered
	}

	writeJSON(w, map[string]interface{}{
		"matches":   states,
		"count":     len(states),
		"source":    source,
		"timestamp": time.Now(),
	})
}

func (a *API) matchIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "Invalid match index", http.StatusBadRequest)
		return 0, false
	}
	if index < 0 || index >= FixturesPerSet {
		http.Error(w, "Match not found", http.StatusNotFound)
		return 0, false
	}
	return index, true
}

func (a *API) getMatch(w http.ResponseWriter, r *http.Request) {
	index, ok := a.matchIndex(w, r)
	if !ok {
		return
	}

	state, events, source := a.matchDetail(r, index)
	if source == "simulator" {
		for _, ev := range events {
			eventsGenerated.WithLabelValues(ev.Type, "retrospective").Inc()
		}
	}

	writeJSON(w, map[string]interface{}{
		"match":     state,
		"events":    events,
		"stats":     a.gen.Stats(state),
		"source":    source,
		"timestamp": time.Now(),
	})
}

func (a *API) getMatchEvents(w http.ResponseWriter, r *http.Request) {
	index, ok := a.matchIndex(w, r)
	if !ok {
		return
	}

	state, events, source := a.matchDetail(r, index)
	writeJSON(w, map[string]interface{}{
		"match_id":  state.MatchID,
		"events":    events,
		"count":     len(events),
		"source":    source,
		"timestamp": time.Now(),
	})
}

func (a *API) getMatchStats(w http.ResponseWriter, r *http.Request) {
	index, ok := a.matchIndex(w, r)
	if !ok {
		return
	}

	state, _, _ := a.matchDetail(r, index)
	writeJSON(w, a.gen.Stats(state))
}

func (a *API) getFeed(w http.ResponseWriter, r *http.Request) {
	events := a.feed.Snapshot()
	writeJSON(w, map[string]interface{}{
		"events":    events,
		"count":     len(events),
		"timestamp": time.Now(),
	})
}

func (a *API) getAllTeams(w http.ResponseWriter, r *http.Request) {
	teams := a.registry.Teams()
	writeJSON(w, map[string]interface{}{
		"league": LeagueNPFL,
		"count":  len(teams),
		"teams":  teams,
	})
}

func (a *API) getTeam(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	team, ok := a.registry.Team(id)
	if !ok {
		http.Error(w, "Team not found", http.StatusNotFound)
		return
	}
	writeJSON(w, team)
}

func (a *API) getTodayFixtures(w http.ResponseWriter, r *http.Request) {
	set := a.sim.ActiveSet()
	writeJSON(w, map[string]interface{}{
		"set":       set,
		"count":     len(set.Fixtures),
		"timestamp": time.Now(),
	})
}

func (a *API) getFixtureSets(w http.ResponseWriter, r *http.Request) {
	sets := a.registry.Sets()
	writeJSON(w, map[string]interface{}{
		"sets":  sets,
		"count": len(sets),
	})
}

func (a *API) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.engine.Health())
}
