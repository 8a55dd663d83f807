package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapProviderStatus(t *testing.T) {
	cases := map[string]string{
		"NS":   StatusScheduled,
		"TBD":  StatusScheduled,
		"PST":  StatusScheduled,
		"1H":   StatusLive,
		"2H":   StatusLive,
		"ET":   StatusLive,
		"P":    StatusLive,
		"LIVE": StatusLive,
		"HT":   StatusHalfTime,
		"FT":   StatusFullTime,
		"AET":  StatusFullTime,
		"PEN":  StatusFullTime,
	}
	for code, want := range cases {
		assert.Equal(t, want, mapProviderStatus(code), "code %s", code)
	}

	// Unknown codes never error, they collapse to scheduled.
	assert.Equal(t, StatusScheduled, mapProviderStatus("SUSP"))
	assert.Equal(t, StatusScheduled, mapProviderStatus(""))
}

func TestProviderStatusRoundTripStable(t *testing.T) {
	for code := range providerStatusMap {
		once := mapProviderStatus(code)
		twice := mapProviderStatus(providerCodeForStatus(once))
		assert.Equal(t, once, twice, "round trip unstable for %s", code)
	}
	assert.Equal(t, "NS", providerCodeForStatus("bogus"))
}

func TestMapProviderEventType(t *testing.T) {
	assert.Equal(t, EventGoal, mapProviderEventType("Goal"))
	assert.Equal(t, EventCard, mapProviderEventType("Card"))
	assert.Equal(t, EventSubstitution, mapProviderEventType("subst"))
	assert.Equal(t, EventCommentary, mapProviderEventType("Var"))
	assert.Equal(t, EventCommentary, mapProviderEventType(""))
}

func TestFixtureToMatchStateDefaults(t *testing.T) {
	state := fixtureToMatchState(providerFixture{})

	assert.Equal(t, StatusScheduled, state.Status)
	assert.Equal(t, UnknownTeam, state.HomeTeam.Name)
	assert.Equal(t, UnknownTeam, state.AwayTeam.Name)
	assert.Equal(t, DefaultVenue, state.Venue)
	assert.Zero(t, state.HomeScore)
	assert.Zero(t, state.AwayScore)
	assert.Zero(t, state.Minute)
	assert.Equal(t, "TBD", state.Clock)
}

func TestFixtureToMatchStateLive(t *testing.T) {
	two, one := 2, 1
	var f providerFixture
	f.Fixture.ID = 1201
	f.Fixture.Status.Short = "2H"
	f.Fixture.Status.Elapsed = 63
	f.Fixture.Venue.Name = "Enyimba International Stadium"
	f.Teams.Home.ID = 5001
	f.Teams.Home.Name = "Enyimba FC"
	f.Teams.Away.ID = 5002
	f.Teams.Away.Name = "Kano Pillars"
	f.Goals.Home = &two
	f.Goals.Away = &one

	state := fixtureToMatchState(f)

	assert.Equal(t, StatusLive, state.Status)
	assert.Equal(t, "63'", state.Clock)
	assert.Equal(t, 63, state.Minute)
	assert.Equal(t, 2, state.HomeScore)
	assert.Equal(t, 1, state.AwayScore)
	assert.Equal(t, "Enyimba FC", state.HomeTeam.Name)
	assert.Equal(t, "Enyimba International Stadium", state.Venue)
}

func TestFixtureToMatchStateHalfTimePinsClock(t *testing.T) {
	var f providerFixture
	f.Fixture.Status.Short = "HT"
	f.Fixture.Status.Elapsed = 47

	state := fixtureToMatchState(f)
	assert.Equal(t, StatusHalfTime, state.Status)
	assert.Equal(t, "HT", state.Clock)
	assert.Equal(t, 45, state.Minute)
}

func TestFixtureToMatchStateScheduledKickoffLabel(t *testing.T) {
	var f providerFixture
	f.Fixture.Status.Short = "NS"
	f.Fixture.Date = "2024-12-09T18:00:00+00:00"

	state := fixtureToMatchState(f)
	assert.Equal(t, StatusScheduled, state.Status)
	assert.Equal(t, "18:00", state.Clock)
}

func TestProviderEventToMatchEvent(t *testing.T) {
	state := MatchState{MatchID: "npfl_2024_1201"}

	extra := 2
	var e providerEvent
	e.Time.Elapsed = 45
	e.Time.Extra = &extra
	e.Team.Name = "Enyimba FC"
	e.Player.Name = "Chijioke Mbaoma"
	e.Type = "Goal"
	e.Detail = "Normal Goal"

	ev := providerEventToMatchEvent(e, state)
	assert.Equal(t, EventGoal, ev.Type)
	assert.Equal(t, 47, ev.Minute, "stoppage time adds to the elapsed minute")
	assert.Equal(t, "Chijioke Mbaoma", ev.Player)
	assert.Equal(t, "Normal Goal", ev.Detail)
	assert.Equal(t, state.MatchID, ev.MatchID)
}

func TestProviderEventMissingFieldsDegrade(t *testing.T) {
	var e providerEvent
	e.Time.Elapsed = 12
	e.Type = "Var"

	ev := providerEventToMatchEvent(e, MatchState{MatchID: "m"})
	assert.Equal(t, EventCommentary, ev.Type)
	assert.Equal(t, UnknownPlayer, ev.Player)
	assert.Equal(t, UnknownTeam, ev.TeamName)
	assert.Equal(t, "Var", ev.Detail, "detail falls back to the raw kind")
}

func TestKickoffFromDate(t *testing.T) {
	assert.Equal(t, "16:30", kickoffFromDate("2024-12-09T16:30:00Z"))
	assert.Equal(t, "TBD", kickoffFromDate("not a date"))
	assert.Equal(t, "TBD", kickoffFromDate(""))
}

func TestLiveFixturesCachesResponses(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, "all", r.URL.Query().Get("live"))

		var f providerFixture
		f.Fixture.ID = 9
		f.Fixture.Status.Short = "1H"
		f.Teams.Home.Name = "Enyimba FC"
		f.Teams.Away.Name = "Kano Pillars"
		json.NewEncoder(w).Encode(providerResponse[providerFixture]{Response: []providerFixture{f}})
	}))
	defer server.Close()

	cfg := defaultConfig()
	cfg.APIFootballKey = "test-key"
	cfg.ProviderBaseURL = server.URL
	client := NewProviderClient(cfg)

	require.True(t, client.Enabled())

	first, err := client.LiveFixtures(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := client.LiveFixtures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load(), "second call must come from cache")
}

func TestLiveFixturesErrorSurface(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := defaultConfig()
	cfg.APIFootballKey = "test-key"
	cfg.ProviderBaseURL = server.URL
	client := NewProviderClient(cfg)

	_, err := client.LiveFixtures(context.Background())
	assert.Error(t, err)
}

func TestProviderDisabledWithoutKey(t *testing.T) {
	client := NewProviderClient(defaultConfig())
	assert.False(t, client.Enabled())
}
