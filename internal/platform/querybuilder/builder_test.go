package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("g.id", "g.season").
		From("games g").
		Join("JOIN teams ht ON ht.id = g.home_team_id").
		Where(Eq("g.season", "2024"), IsNotNull("g.home_score")).
		OrderBy("g.date DESC", "g.id DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT g.id, g.season FROM games g JOIN teams ht ON ht.id = g.home_team_id WHERE g.season = $1 AND g.home_score IS NOT NULL ORDER BY g.date DESC, g.id DESC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "2024" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_GroupedConditions(t *testing.T) {
	query, args, err := Select("id").
		From("games").
		Where(
			Any("status", "{FT,AOT}"),
			Or(
				And(Eq("home_team_id", 1), Eq("away_team_id", 2)),
				And(Eq("home_team_id", 2), Eq("away_team_id", 1)),
			),
		).
		WhereIf(false, Eq("season", "ignored")).
		WhereIf(true, Expr("date < ?", "2024-03-01")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM games WHERE status = ANY($1) AND ((home_team_id = $2 AND away_team_id = $3) OR (home_team_id = $4 AND away_team_id = $5)) AND date < $6"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[1] != 1 || args[4] != 1 || args[5] != "2024-03-01" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("game_id").From("quarters").Where(In("game_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT game_id FROM quarters WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %v", query, args)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatal("expected error without table")
	}
}
