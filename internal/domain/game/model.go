package game

import (
	"strings"
	"time"
)

// Status is the normalized lifecycle state of a game.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinal      Status = "FINAL"
)

// FinalStatusCodes lists the raw provider codes stored for finished games.
var FinalStatusCodes = []string{"FT", "AOT", "FINAL", "FINISHED"}

// NormalizeStatus maps raw provider status codes onto Status.
func NormalizeStatus(value string) Status {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "FT", "AOT", "FINAL", "FINISHED":
		return StatusFinal
	case "", "NS", "SCHEDULED", "TBD", "POST", "CANC", "PST":
		return StatusScheduled
	default:
		return StatusInProgress
	}
}

// Game is one contest between a home and an away team.
type Game struct {
	ID           int64
	LeagueID     int64
	LeagueName   string
	Season       string
	Date         time.Time
	Status       Status
	HomeTeamID   int64
	HomeTeamName string
	HomeTeamLogo string
	AwayTeamID   int64
	AwayTeamName string
	AwayTeamLogo string
	HomeScore    *int
	AwayScore    *int
}

func (g Game) IsFinal() bool {
	return g.Status == StatusFinal
}

// HasFinalScore reports whether the game is finished and both scores are recorded.
func (g Game) HasFinalScore() bool {
	return g.IsFinal() && g.HomeScore != nil && g.AwayScore != nil
}

func (g Game) Involves(teamID int64) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}

// WinnerTeamID returns the winning team id, or 0 when there is no winner yet.
func (g Game) WinnerTeamID() int64 {
	if !g.HasFinalScore() || *g.HomeScore == *g.AwayScore {
		return 0
	}
	if *g.HomeScore > *g.AwayScore {
		return g.HomeTeamID
	}
	return g.AwayTeamID
}

// RegulationQuarters is the number of periods that enter quarter and half splits.
const RegulationQuarters = 4

// Quarter is the score line of one period of a game.
type Quarter struct {
	GameID    int64
	Number    int
	HomeScore *int
	AwayScore *int
}

func (q Quarter) IsRegulation() bool {
	return q.Number >= 1 && q.Number <= RegulationQuarters
}

// Venue restricts team queries to home or away games.
type Venue string

const (
	VenueAny  Venue = ""
	VenueHome Venue = "home"
	VenueAway Venue = "away"
)
