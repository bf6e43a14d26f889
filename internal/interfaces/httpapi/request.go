package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/hoop-analytics/internal/usecase"
)

type gameRequest struct {
	GameID int64 `validate:"gt=0"`
}

type dateRequest struct {
	Date     string `validate:"required,datetime=2006-01-02"`
	LeagueID int64  `validate:"gte=0"`
}

type teamWindowRequest struct {
	TeamID int64  `validate:"gt=0"`
	Limit  int    `validate:"gt=0"`
	Season string `validate:"omitempty,max=32"`
	Venue  string `validate:"omitempty,oneof=all home away h a"`
}

type restDaysRequest struct {
	TeamID int64  `validate:"gt=0"`
	AsOf   string `validate:"omitempty,datetime=2006-01-02"`
	Season string `validate:"omitempty,max=32"`
}

type seasonRecordRequest struct {
	TeamID int64  `validate:"gt=0"`
	Season string `validate:"required,max=32"`
	Venue  string `validate:"omitempty,oneof=all home away h a"`
}

type headToHeadRequest struct {
	Team1ID int64  `validate:"gt=0"`
	Team2ID int64  `validate:"gt=0,nefield=Team1ID"`
	Season  string `validate:"required,max=32"`
}

type teamRequest struct {
	TeamID int64 `validate:"gt=0"`
}

// paramReader collects the first conversion error so handlers bind every field
// and check once.
type paramReader struct {
	r   *http.Request
	err error
}

func newParamReader(r *http.Request) *paramReader {
	return &paramReader{r: r}
}

func (p *paramReader) pathInt64(name string) int64 {
	return p.parseInt64(name, p.r.PathValue(name))
}

func (p *paramReader) pathInt(name string) int {
	return int(p.parseInt64(name, p.r.PathValue(name)))
}

func (p *paramReader) pathString(name string) string {
	return strings.TrimSpace(p.r.PathValue(name))
}

func (p *paramReader) queryInt64(name string) int64 {
	return p.parseInt64(name, p.r.URL.Query().Get(name))
}

func (p *paramReader) queryString(name string) string {
	return strings.TrimSpace(p.r.URL.Query().Get(name))
}

func (p *paramReader) queryLower(name string) string {
	return strings.ToLower(p.queryString(name))
}

func (p *paramReader) parseInt64(name, raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || p.err != nil {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.err = fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
		return 0
	}
	return value
}

func (p *paramReader) Err() error {
	return p.err
}
