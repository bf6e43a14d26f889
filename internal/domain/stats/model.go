package stats

import (
	"maps"
	"time"
)

// Period keys the quarter and half maps of aggregate records.
type Period string

const (
	Q1 Period = "q1"
	Q2 Period = "q2"
	Q3 Period = "q3"
	Q4 Period = "q4"
	H1 Period = "h1"
	H2 Period = "h2"
)

var quarterPeriods = [4]Period{Q1, Q2, Q3, Q4}

// RollingStats summarizes a team's most recent finished games.
type RollingStats struct {
	GamesCount       int
	AvgScore         float64
	AvgOpponentScore float64
	AvgTotal         float64
	Quarters         map[Period]float64
	Halves           map[Period]float64
	// Form holds W/L letters of the newest five games, newest first, joined with "-".
	Form string
}

// HeadToHeadStats is oriented by Team1: Team1Avg is always the first team's scoring.
type HeadToHeadStats struct {
	GamesCount    int
	Team1Avg      float64
	Team2Avg      float64
	AvgTotal      float64
	Team1Quarters map[Period]float64
	Team2Quarters map[Period]float64
	Team1Halves   map[Period]float64
	Team2Halves   map[Period]float64
}

// RestDays is empty when the team has no prior finished game.
type RestDays struct {
	Days         *int
	LastGameDate *time.Time
}

type SeasonRecord struct {
	Games      int
	Wins       int
	AvgPoints  float64
	AvgAgainst float64
	WinPct     float64
}

func (r RollingStats) Clone() RollingStats {
	r.Quarters = clonePeriods(r.Quarters)
	r.Halves = clonePeriods(r.Halves)
	return r
}

func (h HeadToHeadStats) Clone() HeadToHeadStats {
	h.Team1Quarters = clonePeriods(h.Team1Quarters)
	h.Team2Quarters = clonePeriods(h.Team2Quarters)
	h.Team1Halves = clonePeriods(h.Team1Halves)
	h.Team2Halves = clonePeriods(h.Team2Halves)
	return h
}

func (r RestDays) Clone() RestDays {
	if r.Days != nil {
		days := *r.Days
		r.Days = &days
	}
	if r.LastGameDate != nil {
		last := *r.LastGameDate
		r.LastGameDate = &last
	}
	return r
}

func emptyPeriods() map[Period]float64 {
	return map[Period]float64{}
}

func clonePeriods(in map[Period]float64) map[Period]float64 {
	if in == nil {
		return nil
	}
	return maps.Clone(in)
}
