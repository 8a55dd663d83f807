package main

import (
	"fmt"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(seed int64) *EventGenerator {
	return NewEventGenerator(NewRegistry(), clockwork.NewFakeClockAt(day343), seed)
}

func liveTestState(home, away string, homeScore, awayScore, minute int) MatchState {
	return MatchState{
		MatchID:   "npfl_sim_343_0",
		HomeTeam:  Team{Name: home},
		AwayTeam:  Team{Name: away},
		Status:    StatusLive,
		Clock:     fmt.Sprintf("%d'", minute),
		Minute:    minute,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
}

func TestRetrospectiveGoalCountsMatchScore(t *testing.T) {
	gen := newTestGenerator(42)
	state := liveTestState("Enyimba FC", "Kano Pillars", 2, 1, 67)

	events := gen.Retrospective(state)

	homeGoals, awayGoals := 0, 0
	for _, ev := range events {
		if ev.Type != EventGoal {
			continue
		}
		switch ev.TeamName {
		case "Enyimba FC":
			homeGoals++
		case "Kano Pillars":
			awayGoals++
		}
	}
	assert.Equal(t, 2, homeGoals)
	assert.Equal(t, 1, awayGoals)
}

func TestRetrospectiveSortedAndBounded(t *testing.T) {
	gen := newTestGenerator(7)
	state := liveTestState("Rivers United", "Remo Stars", 3, 2, 67)

	events := gen.Retrospective(state)
	require.NotEmpty(t, events)

	for i := 1; i < len(events); i++ {
		assert.GreaterOrEqual(t, events[i-1].Minute, events[i].Minute, "events must be in descending minute order")
	}
	for _, ev := range events {
		assert.GreaterOrEqual(t, ev.Minute, 1)
		assert.LessOrEqual(t, ev.Minute, 67)
		assert.Equal(t, state.MatchID, ev.MatchID)
	}
}

func TestRetrospectiveGoalVocabulary(t *testing.T) {
	gen := newTestGenerator(99)
	state := liveTestState("Plateau United", "Lobi Stars", 4, 4, 88)

	allowed := map[string]bool{}
	for _, d := range goalDetails {
		allowed[d] = true
	}

	for _, ev := range gen.Retrospective(state) {
		if ev.Type == EventGoal {
			assert.True(t, allowed[ev.Detail], "unexpected goal detail %q", ev.Detail)
		}
	}
}

func TestRetrospectiveScheduledHasNoEvents(t *testing.T) {
	gen := newTestGenerator(1)
	state := liveTestState("Enyimba FC", "Kano Pillars", 0, 0, 0)
	state.Status = StatusScheduled
	state.Clock = "18:00"

	assert.Empty(t, gen.Retrospective(state))
}

func TestRetrospectiveFullTimeUsesNinetyMinuteBound(t *testing.T) {
	gen := newTestGenerator(11)
	state := liveTestState("Shooting Stars", "Akwa United", 3, 3, 90)
	state.Status = StatusFullTime
	state.Clock = "FT"

	for _, ev := range gen.Retrospective(state) {
		assert.LessOrEqual(t, ev.Minute, 90)
	}
}

func TestRetrospectiveUnknownTeamFallsBackToPlaceholder(t *testing.T) {
	gen := newTestGenerator(5)
	state := liveTestState("Ghost FC", "Phantom United", 1, 1, 60)

	events := gen.Retrospective(state)
	require.NotEmpty(t, events)
	for _, ev := range events {
		assert.Equal(t, UnknownPlayer, ev.Player)
	}
}

func TestRetrospectiveDeterministicForSameSeed(t *testing.T) {
	state := liveTestState("Enyimba FC", "Kano Pillars", 2, 1, 67)

	first := newTestGenerator(123).Retrospective(state)
	second := newTestGenerator(123).Retrospective(state)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Type, second[i].Type)
		assert.Equal(t, first[i].Minute, second[i].Minute)
		assert.Equal(t, first[i].TeamName, second[i].TeamName)
		assert.Equal(t, first[i].Player, second[i].Player)
		assert.Equal(t, first[i].Detail, second[i].Detail)
	}
}

func TestLiveEventNothingPlaying(t *testing.T) {
	gen := newTestGenerator(3)

	scheduled := liveTestState("Enyimba FC", "Kano Pillars", 0, 0, 0)
	scheduled.Status = StatusScheduled
	finished := liveTestState("Rivers United", "Remo Stars", 1, 0, 90)
	finished.Status = StatusFullTime

	_, ok := gen.LiveEvent([]MatchState{scheduled, finished})
	assert.False(t, ok)

	_, ok = gen.LiveEvent(nil)
	assert.False(t, ok)
}

func TestLiveEventOnlyAttributesPlayingTeams(t *testing.T) {
	registry := NewRegistry()
	gen := NewEventGenerator(registry, clockwork.NewFakeClockAt(day343), 21)

	live := liveTestState("Enyimba FC", "Kano Pillars", 1, 0, 55)
	finished := liveTestState("Rivers United", "Remo Stars", 2, 2, 90)
	finished.Status = StatusFullTime
	finished.MatchID = "npfl_sim_343_1"

	for i := 0; i < 200; i++ {
		ev, ok := gen.LiveEvent([]MatchState{live, finished})
		require.True(t, ok)
		assert.Equal(t, live.MatchID, ev.MatchID)
		assert.Contains(t, []string{"Enyimba FC", "Kano Pillars"}, ev.TeamName)
		assert.Contains(t, registry.Roster(ev.TeamName), ev.Player)
		assert.Equal(t, 55, ev.Minute)
	}
}

func TestLiveEventHalfTimeCounts(t *testing.T) {
	gen := newTestGenerator(8)

	ht := liveTestState("Plateau United", "Lobi Stars", 1, 1, 45)
	ht.Status = StatusHalfTime
	ht.Clock = "HT"

	ev, ok := gen.LiveEvent([]MatchState{ht})
	require.True(t, ok)
	assert.Contains(t, liveEventTypes, ev.Type)
}

func TestFeedCapacityAndOrder(t *testing.T) {
	feed := NewFeed(20)
	gen := newTestGenerator(17)
	state := liveTestState("Enyimba FC", "Kano Pillars", 1, 1, 70)

	for i := 0; i < 50; i++ {
		ev, ok := gen.LiveEvent([]MatchState{state})
		require.True(t, ok)
		ev.Minute = 1 + i%90
		feed.Append(ev)

		events := feed.Snapshot()
		assert.LessOrEqual(t, len(events), 20)
		for j := 1; j < len(events); j++ {
			assert.GreaterOrEqual(t, events[j-1].Minute, events[j].Minute)
		}
	}
	assert.Equal(t, 20, feed.Len())
}

func TestFeedFullOfLateMinutesStillAdmitsFreshKickoff(t *testing.T) {
	feed := NewFeed(20)
	for i := 0; i < 20; i++ {
		feed.Append(MatchEvent{EventID: fmt.Sprintf("stale_%d", i), MatchID: "npfl_sim_343_0", Minute: 89})
	}

	feed.Append(MatchEvent{EventID: "fresh_kickoff", MatchID: "npfl_sim_343_2", Minute: 5})

	events := feed.Snapshot()
	require.Len(t, events, 20)

	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.EventID)
	}
	assert.Contains(t, ids, "fresh_kickoff", "newest event must survive a feed full of later minutes")
	assert.NotContains(t, ids, "stale_0", "the oldest insertion is the one evicted")
	assert.Equal(t, "fresh_kickoff", events[len(events)-1].EventID, "lowest minute sorts last")
}

func TestFeedSnapshotIsACopy(t *testing.T) {
	feed := NewFeed(5)
	feed.Append(MatchEvent{EventID: "a", Minute: 10})

	snap := feed.Snapshot()
	snap[0].Minute = 99

	assert.Equal(t, 10, feed.Snapshot()[0].Minute)
}

func TestStatsScheduledIsBlank(t *testing.T) {
	gen := newTestGenerator(2)
	state := liveTestState("Enyimba FC", "Kano Pillars", 0, 0, 0)
	state.Status = StatusScheduled

	stats := gen.Stats(state)
	assert.Equal(t, 50, stats.HomePossession)
	assert.Equal(t, 50, stats.AwayPossession)
	assert.Zero(t, stats.HomeShots)
	assert.Zero(t, stats.AwayShots)
}

func TestStatsShotsCoverGoals(t *testing.T) {
	gen := newTestGenerator(13)
	state := liveTestState("Rangers International", "Bendel Insurance", 3, 2, 80)

	for i := 0; i < 50; i++ {
		stats := gen.Stats(state)
		assert.GreaterOrEqual(t, stats.HomeShots, state.HomeScore)
		assert.GreaterOrEqual(t, stats.AwayShots, state.AwayScore)
		assert.Equal(t, 100, stats.HomePossession+stats.AwayPossession)
	}
}
