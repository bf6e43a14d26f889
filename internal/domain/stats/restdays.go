package stats

import (
	"time"

	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
)

const day = 24 * time.Hour

// ComputeRestDays measures whole days between the team's last finished game and
// reference. When before is set only games strictly earlier than it qualify.
// Days is floor(elapsed/24h) and never negative.
func ComputeRestDays(games []game.Game, teamID int64, reference time.Time, before *time.Time) RestDays {
	var (
		last  time.Time
		found bool
	)
	for _, g := range games {
		if !g.IsFinal() || !g.Involves(teamID) {
			continue
		}
		if before != nil && !g.Date.Before(*before) {
			continue
		}
		if !found || g.Date.After(last) {
			last = g.Date
			found = true
		}
	}
	if !found {
		return RestDays{}
	}

	elapsed := reference.Sub(last)
	days := 0
	if elapsed > 0 {
		days = int(elapsed / day)
	}
	lastDate := last.UTC()
	return RestDays{Days: &days, LastGameDate: &lastDate}
}
