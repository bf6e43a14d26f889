package game

import (
	"context"
	"time"
)

// TeamQuery selects finished games a team played in that have both scores recorded.
type TeamQuery struct {
	TeamID int64
	Season string
	Venue  Venue
	// Before keeps only games strictly earlier than the instant when set.
	Before *time.Time
	// Limit truncates the date-descending result; zero means no limit.
	Limit int
}

// HeadToHeadQuery selects finished meetings of two teams in a season.
type HeadToHeadQuery struct {
	Team1ID int64
	Team2ID int64
	Season  string
}

// DateQuery selects games played on one UTC calendar day.
type DateQuery struct {
	Day      time.Time
	LeagueID int64
}

// Repository exposes read-only access to games and their quarter lines.
type Repository interface {
	GetByID(ctx context.Context, gameID int64) (Game, bool, error)
	ListByDate(ctx context.Context, query DateQuery) ([]Game, error)
	ListFinishedByTeam(ctx context.Context, query TeamQuery) ([]Game, error)
	ListHeadToHead(ctx context.Context, query HeadToHeadQuery) ([]Game, error)
	ListQuarters(ctx context.Context, gameIDs []int64) (map[int64][]Quarter, error)
}
