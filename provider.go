package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// API-Football fixture status short codes, as documented by the provider.
// Anything the table does not know collapses to SCHEDULED: the dashboard
// must always have a renderable status, never an error.
var providerStatusMap = map[string]string{
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

// Canonical provider code per internal status. Round-tripping any provider
// code through mapProviderStatus and providerCodeForStatus is stable.
var statusCanonicalCode = map[string]string{
	StatusScheduled: "NS",
	StatusLive:      "1H",
	StatusHalfTime:  "HT",
	StatusFullTime:  "FT",
}

var providerEventTypeMap = map[string]string{
	"Goal":  EventGoal,
	"Card":  EventCard,
	"subst": EventSubstitution,
}

func mapProviderStatus(code string) string {
	if status, ok := providerStatusMap[code]; ok {
		return status
	}
	return StatusScheduled
}

func providerCodeForStatus(status string) string {
	if code, ok := statusCanonicalCode[status]; ok {
		return code
	}
	return "NS"
}

func mapProviderEventType(kind string) string {
	if t, ok := providerEventTypeMap[kind]; ok {
		return t
	}
	return EventCommentary
}

// providerFixture mirrors the slice of the API-Football fixture payload the
// dashboard needs. Everything is optional on the wire; conversion fills
// documented defaults for whatever is missing.
type providerFixture struct {
	Fixture struct {
		ID     int    `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Short   string `json:"short"`
			Elapsed int    `json:"elapsed"`
		} `json:"status"`
		Venue struct {
			Name string `json:"name"`
		} `json:"venue"`
	} `json:"fixture"`
	Teams struct {
		Home struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"home"`
		Away struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type providerEvent struct {
	Time struct {
		Elapsed int  `json:"elapsed"`
		Extra   *int `json:"extra"`
	} `json:"time"`
	Team struct {
		Name string `json:"name"`
	} `json:"team"`
	Player struct {
		Name string `json:"name"`
	} `json:"player"`
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

type providerResponse[T any] struct {
	Response []T `json:"response"`
}

// ProviderClient talks to API-Football. Responses are held in a short TTL
// cache so dashboard refreshes do not burn through the provider's rate
// limit.
type ProviderClient struct {
	baseURL string
	key     string
	league  int
	season  int
	http    *http.Client
	cache   *cache.Cache
}

func NewProviderClient(cfg *Config) *ProviderClient {
	ttl := time.Duration(cfg.ProviderCacheTTLSeconds) * time.Second
	return &ProviderClient{
		baseURL: cfg.ProviderBaseURL,
		key:     cfg.APIFootballKey,
		league:  cfg.ProviderLeagueID,
		season:  cfg.ProviderSeason,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache.New(ttl, ttl*10),
	}
}

// Enabled reports whether a provider key is configured. Without one the
// service runs purely on the simulator.
func (c *ProviderClient) Enabled() bool {
	return c.key != ""
}

// LiveFixtures fetches the fixtures currently in play for the configured
// league.
func (c *ProviderClient) LiveFixtures(ctx context.Context) ([]providerFixture, error) {
	const cacheKey = "live_fixtures"
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]providerFixture), nil
	}

	params := url.Values{}
	params.Set("league", strconv.Itoa(c.league))
	params.Set("season", strconv.Itoa(c.season))
	params.Set("live", "all")

	var out providerResponse[providerFixture]
	if err := c.get(ctx, "/fixtures", params, &out); err != nil {
		providerRequests.WithLabelValues("fixtures", "error").Inc()
		return nil, fmt.Errorf("fetch live fixtures: %w", err)
	}
	providerRequests.WithLabelValues("fixtures", "ok").Inc()

	c.cache.Set(cacheKey, out.Response, cache.DefaultExpiration)
	return out.Response, nil
}

// FixtureEvents fetches the event timeline for one provider fixture.
func (c *ProviderClient) FixtureEvents(ctx context.Context, fixtureID int) ([]providerEvent, error) {
	cacheKey := "events_" + strconv.Itoa(fixtureID)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]providerEvent), nil
	}

	params := url.Values{}
	params.Set("fixture", strconv.Itoa(fixtureID))

	var out providerResponse[providerEvent]
	if err := c.get(ctx, "/fixtures/events", params, &out); err != nil {
		providerRequests.WithLabelValues("events", "error").Inc()
		return nil, fmt.Errorf("fetch fixture events: %w", err)
	}
	providerRequests.WithLabelValues("events", "ok").Inc()

	c.cache.Set(cacheKey, out.Response, cache.DefaultExpiration)
	return out.Response, nil
}

func (c *ProviderClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-rapidapi-key", c.key)
	req.Header.Set("x-rapidapi-host", "v3.football.api-sports.io")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}

	log.Debug().Str("path", path).Msg("provider request served")
	return nil
}

// fixtureToMatchState converts a provider fixture record into a MatchState.
// Total: every missing field substitutes a documented default instead of
// failing.
func fixtureToMatchState(f providerFixture) MatchState {
	status := mapProviderStatus(f.Fixture.Status.Short)

	homeName := f.Teams.Home.Name
	if homeName == "" {
		homeName = UnknownTeam
	}
	awayName := f.Teams.Away.Name
	if awayName == "" {
		awayName = UnknownTeam
	}
	venue := f.Fixture.Venue.Name
	if venue == "" {
		venue = DefaultVenue
	}

	homeScore, awayScore := 0, 0
	if f.Goals.Home != nil {
		homeScore = *f.Goals.Home
	}
	if f.Goals.Away != nil {
		awayScore = *f.Goals.Away
	}
	if status == StatusScheduled {
		homeScore, awayScore = 0, 0
	}

	minute := f.Fixture.Status.Elapsed
	label := kickoffFromDate(f.Fixture.Date)
	switch status {
	case StatusLive:
		label = fmt.Sprintf("%d'", minute)
	case StatusHalfTime:
		minute = 45
		label = "HT"
	case StatusFullTime:
		minute = 90
		label = "FT"
	case StatusScheduled:
		minute = 0
	}

	return MatchState{
		MatchID:     fmt.Sprintf("npfl_%d_%d", time.Now().Year(), f.Fixture.ID),
		Competition: LeagueNPFL,
		HomeTeam:    Team{ID: f.Teams.Home.ID, Name: homeName},
		AwayTeam:    Team{ID: f.Teams.Away.ID, Name: awayName},
		Venue:       venue,
		Status:      status,
		Clock:       label,
		Minute:      minute,
		HomeScore:   homeScore,
		AwayScore:   awayScore,
		LastUpdate:  time.Now(),
	}
}

// providerEventToMatchEvent converts a provider event record. Unrecognized
// event kinds become generic commentary entries; a missing player degrades
// to the placeholder name.
func providerEventToMatchEvent(e providerEvent, state MatchState) MatchEvent {
	player := e.Player.Name
	if player == "" {
		player = UnknownPlayer
	}
	team := e.Team.Name
	if team == "" {
		team = UnknownTeam
	}
	detail := e.Detail
	if detail == "" {
		detail = e.Type
	}

	minute := e.Time.Elapsed
	if e.Time.Extra != nil {
		minute += *e.Time.Extra
	}

	return MatchEvent{
		EventID:   fmt.Sprintf("%s_%s_%d", state.MatchID, mapProviderEventType(e.Type), minute),
		MatchID:   state.MatchID,
		Type:      mapProviderEventType(e.Type),
		Minute:    minute,
		TeamName:  team,
		Player:    player,
		Detail:    detail,
		Timestamp: time.Now(),
	}
}

// kickoffFromDate extracts an HH:MM label from the provider's RFC3339
// kickoff date, falling back to TBD when unparseable.
func kickoffFromDate(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return "TBD"
	}
	return t.Format("15:04")
}
