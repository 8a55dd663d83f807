package main

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Simulated match timing. Every 120 wall-clock minutes is one full match
// cycle: first half, half-time, second half, full-time, then a scheduled gap
// before the next kickoff. Matches in the same set are phase-shifted by
// their index so they never all kick off together.
const (
	cycleLength      = 120
	halfTimeStart    = 45
	halfTimeEnd      = 50
	secondHalfEnd    = 95
	fullTimeEnd      = 105
	indexPhaseShift  = 20
	indexMinuteShift = 15
	firstKickoffHour = 18
)

// MatchState is the derived lifecycle snapshot for one fixture. It is
// recomputed from the clock on every query and never persisted.
type MatchState struct {
	MatchID     string    `json:"match_id"`
	SetIndex    int       `json:"set_index"`
	MatchIndex  int       `json:"match_index"`
	Competition string    `json:"competition"`
	HomeTeam    Team      `json:"home_team"`
	AwayTeam    Team      `json:"away_team"`
	Venue       string    `json:"venue"`
	Status      string    `json:"status"`
	Clock       string    `json:"clock"`
	Minute      int       `json:"minute"`
	HomeScore   int       `json:"home_score"`
	AwayScore   int       `json:"away_score"`
	LastUpdate  time.Time `json:"last_update"`
}

// ErrMatchIndex is returned when a match index falls outside the active
// fixture set. This is the one input that cannot be normalized away.
type ErrMatchIndex struct {
	Index int
}

func (e ErrMatchIndex) Error() string {
	return fmt.Sprintf("match index %d outside [0, %d)", e.Index, FixturesPerSet)
}

// Simulator derives match lifecycle state deterministically from the wall
// clock. The clock is injected so tests can pin exact instants; within the
// same clock minute two calls always produce identical states.
type Simulator struct {
	clock    clockwork.Clock
	registry *Registry
}

func NewSimulator(clock clockwork.Clock, registry *Registry) *Simulator {
	return &Simulator{clock: clock, registry: registry}
}

// ActiveSet returns today's fixture set, rotated by day of year.
func (s *Simulator) ActiveSet() FixtureSet {
	return s.registry.Set(dayOfYear(s.clock.Now()))
}

// MatchState computes the current state of one match in today's set.
func (s *Simulator) MatchState(matchIndex int) (MatchState, error) {
	if matchIndex < 0 || matchIndex >= FixturesPerSet {
		return MatchState{}, ErrMatchIndex{Index: matchIndex}
	}
	return s.matchStateAt(s.clock.Now(), matchIndex), nil
}

// AllMatches computes the state of every match in today's set.
func (s *Simulator) AllMatches() []MatchState {
	now := s.clock.Now()
	states := make([]MatchState, 0, FixturesPerSet)
	for i := 0; i < FixturesPerSet; i++ {
		states = append(states, s.matchStateAt(now, i))
	}
	return states
}

func (s *Simulator) matchStateAt(now time.Time, matchIndex int) MatchState {
	day := dayOfYear(now)
	set := s.registry.Set(day)
	fixture := set.Fixtures[matchIndex]

	home, _ := s.registry.Team(fixture.HomeID)
	away, _ := s.registry.Team(fixture.AwayID)

	cycle := cycleMinutes(now)
	status, minute, label := lifecyclePhase(cycle, matchIndex)

	homeScore, awayScore := scores(now, matchIndex)
	if status == StatusScheduled {
		homeScore, awayScore = 0, 0
	}

	return MatchState{
		MatchID:     fmt.Sprintf("npfl_sim_%03d_%d", day, matchIndex),
		SetIndex:    set.Index,
		MatchIndex:  matchIndex,
		Competition: LeagueNPFL,
		HomeTeam:    *home,
		AwayTeam:    *away,
		Venue:       fixture.Venue,
		Status:      status,
		Clock:       label,
		Minute:      minute,
		HomeScore:   homeScore,
		AwayScore:   awayScore,
		LastUpdate:  now.Truncate(time.Minute),
	}
}

// lifecyclePhase maps the minute-of-cycle and match index onto a status,
// elapsed minute and clock label. Half-time includes the phase-50 boundary;
// the second half runs strictly after it.
func lifecyclePhase(cycle, matchIndex int) (status string, minute int, label string) {
	phase := (cycle + matchIndex*indexPhaseShift) % cycleLength

	switch {
	case phase < halfTimeStart:
		minute = (cycle+matchIndex*indexMinuteShift)%90 + 1
		return StatusLive, minute, fmt.Sprintf("%d'", minute)
	case phase <= halfTimeEnd:
		return StatusHalfTime, halfTimeStart, "HT"
	case phase < secondHalfEnd:
		minute = halfTimeStart + (phase - halfTimeEnd)
		return StatusLive, minute, fmt.Sprintf("%d'", minute)
	case phase < fullTimeEnd:
		return StatusFullTime, 90, "FT"
	default:
		return StatusScheduled, 0, kickoffLabel(matchIndex)
	}
}

// scores derives both sides' scores from the minute of day. Home and away
// use distinct seeds so the same kickoff slot does not mirror itself.
func scores(now time.Time, matchIndex int) (home, away int) {
	minuteOfDay := now.Hour()*60 + now.Minute()
	home = scoreBucket((minuteOfDay + (2*matchIndex)*17) % 100)
	away = scoreBucket((minuteOfDay + (2*matchIndex+1)*17) % 100)
	return home, away
}

// scoreBucket maps a 0-99 value onto a 0-4 score with fixed ascending
// thresholds, so the score is monotonic in its input.
func scoreBucket(n int) int {
	switch {
	case n < 30:
		return 0
	case n < 55:
		return 1
	case n < 75:
		return 2
	case n < 90:
		return 3
	default:
		return 4
	}
}

func kickoffLabel(matchIndex int) string {
	return fmt.Sprintf("%02d:00", (firstKickoffHour+matchIndex)%24)
}

func cycleMinutes(now time.Time) int {
	return (now.Hour()*60 + now.Minute()) % cycleLength
}

// dayOfYear is 0-based: January 1st is day 0.
func dayOfYear(now time.Time) int {
	return now.YearDay() - 1
}
