package main

import "fmt"

// Match statuses
const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusHalfTime  = "HALF_TIME"
	StatusFullTime  = "FULL_TIME"
)

// Event types
const (
	EventGoal         = "goal"
	EventCard         = "card"
	EventShot         = "shot"
	EventPass         = "pass"
	EventTackle       = "tackle"
	EventFoul         = "foul"
	EventSubstitution = "substitution"
	EventCommentary   = "commentary"
)

const (
	LeagueNPFL = "Nigerian Professional Football League"

	TeamCount      = 10
	FixturesPerSet = TeamCount / 2
	FixtureSets    = 7

	UnknownPlayer = "Unknown Player"
	UnknownTeam   = "Unknown"
	DefaultVenue  = "TBD"
)

type Team struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	EmblemURL string   `json:"emblem_url"`
	Founded   int      `json:"founded"`
	Stadium   string   `json:"stadium"`
	Coach     string   `json:"coach"`
	Roster    []string `json:"roster"`
}

type Fixture struct {
	HomeID int    `json:"home_id"`
	AwayID int    `json:"away_id"`
	Venue  string `json:"venue"`
}

type FixtureSet struct {
	Index    int       `json:"index"`
	Name     string    `json:"name"`
	Fixtures []Fixture `json:"fixtures"`
}

// Team reference data (NPFL 2023/2024 season)
var teamData = []struct {
	ID      int
	Name    string
	City    string
	Founded int
	Stadium string
	Coach   string
}{
	{1, "Enyimba FC", "Aba", 1976, "Enyimba International Stadium", "Olanrewaju George"},
	{2, "Kano Pillars", "Kano", 1990, "Sani Abacha Stadium", "Usman Abdallah"},
	{3, "Rangers International", "Enugu", 1970, "Nnamdi Azikiwe Stadium", "Fidelis Ilechukwu"},
	{4, "Plateau United", "Jos", 1975, "New Jos Stadium", "Mbwas Mangut"},
	{5, "Rivers United", "Port Harcourt", 2016, "Adokiye Amiesimaka Stadium", "Stanley Eguma"},
	{6, "Remo Stars", "Ikenne", 1965, "Remo Stars Stadium", "Daniel Ogunmodede"},
	{7, "Shooting Stars", "Ibadan", 1963, "Lekan Salami Stadium", "Gbenga Ogunbote"},
	{8, "Lobi Stars", "Makurdi", 1983, "Aper Aku Stadium", "Eugene Agagbe"},
	{9, "Akwa United", "Uyo", 1996, "Godswill Akpabio Stadium", "Yemi Olanrewaju"},
	{10, "Bendel Insurance", "Benin City", 1973, "Samuel Ogbemudia Stadium", "Monday Odigie"},
}

var rosterData = map[int][]string{
	1:  {"Ikechukwu Ezenwa", "Zaharadeen Bello", "Chijioke Mbaoma", "Anayo Iwuala", "Tosin Omoyele", "Eze Ekwutoziam", "Cyril Olisema"},
	2:  {"Rabiu Ali", "Ahmed Musa", "Auwalu Ali Malam", "Chinedu Udeagha", "Nyima Nwagua", "Samad Kadiri", "Yahaya Yusuf"},
	3:  {"Nelson Ogbonnaya", "Chidera Ezeh", "Kenechukwu Agu", "Godwin Obaje", "Ifeanyi Onyebuchi", "Tope Olusesi", "Daniel Itodo"},
	4:  {"Ismaila Haruna", "Jesse Akila", "Moses Effiong", "Bala Usman", "Shedrack Asiegbu", "Peter Eneji", "Dele Ajiboye"},
	5:  {"Paul Acquah", "Malachi Ohawume", "Temple Emekayi", "Ishaq Rafiu", "Ebenezer Harcourt", "Victor Sochima", "Godswill Aguzie"},
	6:  {"Sodiq Ismaila", "Alimi Sikiru", "Seun Ogunlana", "Victor Mbaoma", "Ayo Adejubu", "Franklin Sasere", "Kazeem Ogunleye"},
	7:  {"Eric Ayiene", "Gideon Akinsola", "Malomo Omowale", "Sunday Faleye", "Joseph Atule", "Waheed Akanbi", "Ondoma Simon"},
	8:  {"Ebube Duru", "Samson Gbadebo", "Terna Suswam", "Anthony Itodo", "Solomon James", "Wilfred Agbo", "Chiamaka Madu"},
	9:  {"Ubong Friday", "Charles Atshimene", "Mfon Udoh", "Nsikak Effiong", "Imo Obot", "Etim Ekpo", "Akaninyene Akpan"},
	10: {"Imade Osarenkhoe", "Divine Nwachukwu", "Osas Okoro", "Efe Yarhere", "Sadeeq Yusuf", "Timothy Zachariah", "Festus Gabriel"},
}

// Detail vocabularies per event type. Goal details double as the
// retrospective goal vocabulary.
var goalDetails = []string{"Header", "Penalty", "Long range", "Tap in"}

var eventDetails = map[string][]string{
	EventGoal:         goalDetails,
	EventCard:         {"Yellow card", "Yellow card for dissent", "Late challenge punished"},
	EventShot:         {"Shot on target", "Shot off target", "Blocked shot", "Effort from distance"},
	EventPass:         {"Through ball", "Cross into the box", "Switch of play", "Key pass"},
	EventTackle:       {"Sliding tackle", "Standing tackle", "Crucial interception"},
	EventFoul:         {"Foul in midfield", "Shirt pull", "Late challenge"},
	EventSubstitution: {"Tactical change", "Fresh legs", "Injury substitution"},
}

// liveEventTypes is the category set live mode draws from.
var liveEventTypes = []string{
	EventGoal, EventCard, EventShot, EventPass, EventTackle, EventFoul, EventSubstitution,
}

var fixtureSetNames = []string{
	"Matchday Rotation A",
	"Matchday Rotation B",
	"Matchday Rotation C",
	"Matchday Rotation D",
	"Matchday Rotation E",
	"Matchday Rotation F",
	"Matchday Rotation G",
}

// Registry is the single static reference store: teams, rosters and the
// rotating fixture sets. Built once at startup and read-only afterwards.
type Registry struct {
	teams   map[int]*Team
	ordered []*Team
	byName  map[string]*Team
	sets    []FixtureSet
}

func NewRegistry() *Registry {
	r := &Registry{
		teams:  make(map[int]*Team, len(teamData)),
		byName: make(map[string]*Team, len(teamData)),
	}

	for _, row := range teamData {
		team := &Team{
			ID:        row.ID,
			Name:      row.Name,
			City:      row.City,
			EmblemURL: fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random&size=128", urlName(row.Name)),
			Founded:   row.Founded,
			Stadium:   row.Stadium,
			Coach:     row.Coach,
			Roster:    rosterData[row.ID],
		}
		r.teams[team.ID] = team
		r.ordered = append(r.ordered, team)
		r.byName[team.Name] = team
	}

	r.sets = buildFixtureSets(r.ordered)
	return r
}

func (r *Registry) Team(id int) (*Team, bool) {
	t, ok := r.teams[id]
	return t, ok
}

func (r *Registry) TeamByName(name string) (*Team, bool) {
	t, ok := r.byName[name]
	return t, ok
}

func (r *Registry) Teams() []*Team {
	return r.ordered
}

func (r *Registry) Sets() []FixtureSet {
	return r.sets
}

func (r *Registry) Set(index int) FixtureSet {
	return r.sets[((index%len(r.sets))+len(r.sets))%len(r.sets)]
}

// Roster returns the player list for a team name. Unknown teams get a
// single placeholder entry so event generation degrades instead of failing.
func (r *Registry) Roster(teamName string) []string {
	if t, ok := r.byName[teamName]; ok && len(t.Roster) > 0 {
		return t.Roster
	}
	return []string{UnknownPlayer}
}

// buildFixtureSets derives the rotating fixture sets with the circle method:
// fix the first team, rotate the rest one step per set. Ten teams give five
// pairings per set; the first seven rotations form the weekly cycle.
func buildFixtureSets(teams []*Team) []FixtureSet {
	n := len(teams)
	sets := make([]FixtureSet, 0, FixtureSets)

	for round := 0; round < FixtureSets; round++ {
		// Rotation order: teams[0] fixed, the others shifted by round.
		rotated := make([]*Team, n)
		rotated[0] = teams[0]
		for i := 1; i < n; i++ {
			rotated[i] = teams[1+((i-1+round)%(n-1))]
		}

		fixtures := make([]Fixture, 0, n/2)
		for i := 0; i < n/2; i++ {
			home, away := rotated[i], rotated[n-1-i]
			// Alternate home advantage between rounds so venues vary.
			if round%2 == 1 {
				home, away = away, home
			}
			fixtures = append(fixtures, Fixture{
				HomeID: home.ID,
				AwayID: away.ID,
				Venue:  home.Stadium,
			})
		}

		sets = append(sets, FixtureSet{
			Index:    round,
			Name:     fixtureSetNames[round],
			Fixtures: fixtures,
		})
	}

	return sets
}

func urlName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == ' ' {
			out = append(out, '+')
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
