package main

import "time"

// MatchStats is display filler for the dashboard's detail view. Values are
// generated per view with no consistency contract beyond shots never being
// lower than goals scored.
type MatchStats struct {
	MatchID           string    `json:"match_id"`
	HomePossession    int       `json:"home_possession"`
	AwayPossession    int       `json:"away_possession"`
	HomeShots         int       `json:"home_shots"`
	AwayShots         int       `json:"away_shots"`
	HomeShotsOnTarget int       `json:"home_shots_on_target"`
	AwayShotsOnTarget int       `json:"away_shots_on_target"`
	HomeCorners       int       `json:"home_corners"`
	AwayCorners       int       `json:"away_corners"`
	HomeFouls         int       `json:"home_fouls"`
	AwayFouls         int       `json:"away_fouls"`
	HomePasses        int       `json:"home_passes"`
	AwayPasses        int       `json:"away_passes"`
	HomePassAccuracy  float64   `json:"home_pass_accuracy"`
	AwayPassAccuracy  float64   `json:"away_pass_accuracy"`
	LastUpdate        time.Time `json:"last_update"`
}

// Stats generates dashboard statistics for a match view. A scheduled match
// reports a clean sheet of zeros with an even possession split.
func (g *EventGenerator) Stats(state MatchState) MatchStats {
	stats := MatchStats{
		MatchID:          state.MatchID,
		HomePossession:   50,
		AwayPossession:   50,
		HomePassAccuracy: 100,
		AwayPassAccuracy: 100,
		LastUpdate:       g.clock.Now(),
	}
	if state.Status == StatusScheduled {
		return stats
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	swing := g.rng.Intn(31) - 15
	stats.HomePossession = 50 + swing
	stats.AwayPossession = 100 - stats.HomePossession

	stats.HomeShots = state.HomeScore + g.rng.Intn(9)
	stats.AwayShots = state.AwayScore + g.rng.Intn(9)
	stats.HomeShotsOnTarget = state.HomeScore + g.rng.Intn(stats.HomeShots-state.HomeScore+1)
	stats.AwayShotsOnTarget = state.AwayScore + g.rng.Intn(stats.AwayShots-state.AwayScore+1)

	stats.HomeCorners = g.rng.Intn(9)
	stats.AwayCorners = g.rng.Intn(9)
	stats.HomeFouls = g.rng.Intn(13)
	stats.AwayFouls = g.rng.Intn(13)

	// Passes scale roughly with elapsed time.
	minutes := state.Minute
	if minutes < 1 {
		minutes = 1
	}
	stats.HomePasses = minutes*3 + g.rng.Intn(minutes*2+1)
	stats.AwayPasses = minutes*3 + g.rng.Intn(minutes*2+1)
	stats.HomePassAccuracy = 70 + g.rng.Float64()*25
	stats.AwayPassAccuracy = 70 + g.rng.Float64()*25

	return stats
}
