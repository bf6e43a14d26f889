package usecase

import (
	"fmt"
	"strconv"

	"github.com/valyala/bytebufferpool"
)

const (
	keyLeagues          = "leagues"
	keyGame             = "game"
	keyGamesOnDate      = "games_on_date"
	keyQuarters         = "quarters"
	keyLastGames        = "last_games"
	keyHeadToHead       = "h2h"
	keyTeamAverages     = "team_averages"
	keyHeadToHeadAvg    = "h2h_averages"
	keyRestDays         = "rest_days"
	keyTeamSeasonRecord = "season_record"
)

// cacheKey joins op and its arguments. Strings are quoted so distinct argument
// tuples never render the same key.
func cacheKey(op string, args ...any) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(op)
	for _, arg := range args {
		_ = buf.WriteByte('|')
		switch v := arg.(type) {
		case int64:
			buf.B = strconv.AppendInt(buf.B, v, 10)
		case int:
			buf.B = strconv.AppendInt(buf.B, int64(v), 10)
		case string:
			buf.B = strconv.AppendQuote(buf.B, v)
		default:
			buf.B = strconv.AppendQuote(buf.B, fmt.Sprint(v))
		}
	}
	return buf.String()
}
