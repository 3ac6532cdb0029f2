package doppelkopf

// Result is the frozen per-team outcome of an evaluated round
type Result struct {
	Team       Team `json:"team"`
	TrickCount int  `json:"trickCount"`
	Score      int  `json:"score"`
	Target     int  `json:"target"`
	Winning    bool `json:"winning"`
	Points     int  `json:"points"`
	Doppelkopf int  `json:"doppelkopf"`
	Charly     bool `json:"charly"`
	Total      int  `json:"total"`
}

// newResult freezes one team's row of the table
func newResult(team Team, trickCount int, table *ResultTable) *Result {
	return &Result{
		Team:       team,
		TrickCount: trickCount,
		Score:      table.Scores.Get(team),
		Target:     table.Targets.Get(team),
		Winning:    table.Winner == team,
		Points:     table.Points.Get(team),
		Doppelkopf: table.Doppelkopf.Get(team),
		Charly:     table.Charly.Get(team),
		Total:      table.Points.Get(team) + table.BonusPoints(team),
	}
}
