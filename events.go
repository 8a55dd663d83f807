package main

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// MatchEvent is a single timestamped occurrence in a match. Generated
// events live in memory only; nothing in the simulation path persists them.
type MatchEvent struct {
	EventID   string    `json:"event_id"`
	MatchID   string    `json:"match_id"`
	Type      string    `json:"event_type"`
	Minute    int       `json:"minute"`
	TeamName  string    `json:"team_name"`
	Player    string    `json:"player_name"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

// EventGenerator produces synthetic match events. The generator owns its
// random source so tests can seed it and assert exact sequences; production
// seeds from entropy at startup.
type EventGenerator struct {
	mu       sync.Mutex
	rng      *rand.Rand
	registry *Registry
	clock    clockwork.Clock
}

func NewEventGenerator(registry *Registry, clock clockwork.Clock, seed int64) *EventGenerator {
	return &EventGenerator{
		rng:      rand.New(rand.NewSource(seed)),
		registry: registry,
		clock:    clock,
	}
}

// Retrospective generates the full event list consistent with a match's
// current score: exactly HomeScore goal events for the home side and
// AwayScore for the away side, plus at most one disciplinary event once the
// match is past the 20th minute. Scheduled matches have no events.
// The result is sorted by descending minute.
func (g *EventGenerator) Retrospective(state MatchState) []MatchEvent {
	if state.Status == StatusScheduled {
		return []MatchEvent{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	bound := state.Minute
	if state.Status == StatusFullTime {
		bound = 90
	}
	if bound < 1 {
		bound = 1
	}

	events := make([]MatchEvent, 0, state.HomeScore+state.AwayScore+1)
	for i := 0; i < state.HomeScore; i++ {
		events = append(events, g.goalEvent(state, state.HomeTeam.Name, bound))
	}
	for i := 0; i < state.AwayScore; i++ {
		events = append(events, g.goalEvent(state, state.AwayTeam.Name, bound))
	}

	if state.Minute > 20 && g.rng.Intn(2) == 0 {
		team := state.HomeTeam.Name
		if g.rng.Intn(2) == 0 {
			team = state.AwayTeam.Name
		}
		events = append(events, MatchEvent{
			EventID:   uuid.NewString(),
			MatchID:   state.MatchID,
			Type:      EventCard,
			Minute:    1 + g.rng.Intn(bound),
			TeamName:  team,
			Player:    g.pickPlayer(team),
			Detail:    "Yellow card",
			Timestamp: g.clock.Now(),
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Minute > events[j].Minute
	})
	return events
}

func (g *EventGenerator) goalEvent(state MatchState, team string, bound int) MatchEvent {
	return MatchEvent{
		EventID:   uuid.NewString(),
		MatchID:   state.MatchID,
		Type:      EventGoal,
		Minute:    1 + g.rng.Intn(bound),
		TeamName:  team,
		Player:    g.pickPlayer(team),
		Detail:    goalDetails[g.rng.Intn(len(goalDetails))],
		Timestamp: g.clock.Now(),
	}
}

// LiveEvent synthesizes one event for a uniformly chosen side among the
// matches currently in play. It reports false when nothing is live, so a
// team without a running match can never be attributed an event.
func (g *EventGenerator) LiveEvent(states []MatchState) (MatchEvent, bool) {
	type side struct {
		state MatchState
		team  string
	}

	var playing []side
	for _, st := range states {
		if st.Status != StatusLive && st.Status != StatusHalfTime {
			continue
		}
		playing = append(playing, side{state: st, team: st.HomeTeam.Name})
		playing = append(playing, side{state: st, team: st.AwayTeam.Name})
	}
	if len(playing) == 0 {
		return MatchEvent{}, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	pick := playing[g.rng.Intn(len(playing))]
	eventType := liveEventTypes[g.rng.Intn(len(liveEventTypes))]
	details := eventDetails[eventType]

	minute := pick.state.Minute
	if minute < 1 {
		minute = 1
	}

	return MatchEvent{
		EventID:   uuid.NewString(),
		MatchID:   pick.state.MatchID,
		Type:      eventType,
		Minute:    minute,
		TeamName:  pick.team,
		Player:    g.pickPlayer(pick.team),
		Detail:    details[g.rng.Intn(len(details))],
		Timestamp: g.clock.Now(),
	}, true
}

func (g *EventGenerator) pickPlayer(teamName string) string {
	roster := g.registry.Roster(teamName)
	return roster[g.rng.Intn(len(roster))]
}

// Feed is the bounded in-memory live event list. Events are held in
// insertion order, newest first, and eviction always drops the oldest
// insertion: a fresh kickoff's minute-1 event must displace a stale
// minute-89 entry, not the other way round. Snapshot returns a
// minute-ordered copy for the dashboard.
type Feed struct {
	mu       sync.RWMutex
	capacity int
	events   []MatchEvent
}

func NewFeed(capacity int) *Feed {
	return &Feed{capacity: capacity}
}

func (f *Feed) Append(ev MatchEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append([]MatchEvent{ev}, f.events...)
	if len(f.events) > f.capacity {
		f.events = f.events[:f.capacity]
	}
}

func (f *Feed) Snapshot() []MatchEvent {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]MatchEvent, len(f.events))
	copy(out, f.events)
	// Stable: newest-first insertion order breaks minute ties.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Minute > out[j].Minute
	})
	return out
}

func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.events)
}
