package doppelkopf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTable(reScore, koScore int, reCalls, koCalls []CallType) *ResultTable {
	return NewResultTable(
		Teamed[int]{RE: reScore, KO: koScore},
		Teamed[bool]{RE: reScore == 0, KO: koScore == 0},
		Teamed[[]CallType]{RE: reCalls, KO: koCalls},
		Teamed[int]{},
		Teamed[bool]{},
	)
}

func TestNewResultTable_basicCall(t *testing.T) {
	table := newTable(130, 110, []CallType{CallUnder120}, nil)

	assert.Equal(t, Teamed[int]{RE: 121, KO: 120}, table.Targets)
	assert.Equal(t, TeamRE, table.Winner)
	assert.Equal(t, TeamRE, table.Basic)
	assert.Equal(t, TeamRE, table.BasicCalls.RE)
	assert.Equal(t, TeamNA, table.BasicCalls.KO)
	assert.Equal(t, Teamed[int]{RE: 3, KO: 0}, table.Points)
}

func TestNewResultTable_lostScore(t *testing.T) {
	table := newTable(28, 212, nil, nil)

	assert.Equal(t, TeamKO, table.Winner)
	assert.Equal(t, TeamKO, table.LostScore90)
	assert.Equal(t, TeamKO, table.LostScore60)
	assert.Equal(t, TeamKO, table.LostScore30)
	assert.Equal(t, TeamNA, table.LostScoreZero)
	assert.Equal(t, Teamed[int]{RE: 0, KO: 4}, table.Points)
}

func TestNewResultTable_loneUnderCallBackfires(t *testing.T) {
	// KO's own reduced target loses the round at 120:120
	table := newTable(120, 120, nil, []CallType{CallUnder120})

	assert.Equal(t, Teamed[int]{RE: 120, KO: 121}, table.Targets)
	assert.Equal(t, TeamRE, table.Winner)
	assert.Equal(t, TeamRE, table.BasicCalls.KO)
	assert.Equal(t, Teamed[int]{RE: 3, KO: 0}, table.Points)
}

func TestNewResultTable_noCallsDefaultTargets(t *testing.T) {
	table := newTable(120, 120, nil, nil)

	assert.Equal(t, Teamed[int]{RE: 121, KO: 120}, table.Targets)
	assert.Equal(t, TeamKO, table.Winner)
}

func TestNewResultTable_draw(t *testing.T) {
	table := newTable(120, 120, []CallType{CallUnder120}, []CallType{CallUnder120})

	assert.Equal(t, Teamed[int]{RE: 120, KO: 120}, table.Targets)
	assert.Equal(t, TeamNA, table.Winner)
	assert.Equal(t, TeamNA, table.Basic)
	assert.Equal(t, TeamNA, table.LostScore90)
	assert.Equal(t, Teamed[int]{RE: 0, KO: 0}, table.Points)
}

func TestNewResultTable_underCalls(t *testing.T) {
	table := newTable(160, 80, []CallType{CallUnder120, CallUnder90}, nil)

	assert.Equal(t, Teamed[CallType]{RE: CallUnder90, KO: ""}, table.EffectiveCalls)
	assert.Equal(t, Teamed[int]{RE: 151, KO: 90}, table.Targets)
	assert.Equal(t, TeamRE, table.Winner)
	assert.Equal(t, Teamed[int]{RE: 1, KO: 0}, table.UnderCalls)
	assert.Equal(t, TeamRE, table.LostScore90)
	// basic 1 + basic call 2 + under-call 1 + lost score 1
	assert.Equal(t, Teamed[int]{RE: 5, KO: 0}, table.Points)
}

func TestNewResultTable_beating(t *testing.T) {
	// RE announced under-90 and got beaten by 30 over the tier
	table := newTable(100, 140, []CallType{CallUnder120, CallUnder90}, nil)

	assert.Equal(t, Teamed[int]{RE: 151, KO: 90}, table.Targets)
	assert.Equal(t, TeamKO, table.Winner)
	assert.Equal(t, Teamed[int]{RE: 0, KO: 1}, table.Beating)
	// basic 1 + RE's basic call 2 + under-call 1 + beating 1
	assert.Equal(t, Teamed[int]{RE: 0, KO: 5}, table.Points)
}

func TestNewResultTable_bothTeamsCalling(t *testing.T) {
	table := newTable(151, 89, []CallType{CallUnder120, CallUnder90}, []CallType{CallUnder120})

	// each team plays against the opponent's reduce value
	assert.Equal(t, Teamed[int]{RE: 120, KO: 90}, table.Targets)
	assert.Equal(t, TeamRE, table.Winner)
	// KO failed its own under-120 by more than 30: the beating point goes to RE
	assert.Equal(t, Teamed[int]{RE: 1, KO: 0}, table.Beating)
	// basic 1 + both basic calls 4 + under-call 1 + lost score 1 + beating 1
	assert.Equal(t, Teamed[int]{RE: 8, KO: 0}, table.Points)
}

func TestNewResultTable_noTricksChain(t *testing.T) {
	calls := []CallType{CallUnder120, CallUnder90, CallUnder60, CallUnder30, CallNoTricks}
	table := NewResultTable(
		Teamed[int]{RE: 0, KO: 240},
		Teamed[bool]{RE: true, KO: false},
		Teamed[[]CallType]{KO: calls},
		Teamed[int]{},
		Teamed[bool]{},
	)

	assert.Equal(t, Teamed[int]{RE: 0, KO: 240}, table.Targets)
	assert.Equal(t, TeamKO, table.Winner)
	assert.Equal(t, TeamKO, table.LostScoreZero)
	// basic 1 + basic call 2 + 4 under-calls + 4 lost-score tiers
	assert.Equal(t, Teamed[int]{RE: 0, KO: 11}, table.Points)
}

func TestNewResultTable_noTricksTargetNeedsATrick(t *testing.T) {
	// RE called the full chain but KO still took a trick: target 240 missed
	calls := []CallType{CallUnder120, CallUnder90, CallUnder60, CallUnder30, CallNoTricks}
	table := NewResultTable(
		Teamed[int]{RE: 239, KO: 1},
		Teamed[bool]{RE: false, KO: false},
		Teamed[[]CallType]{RE: calls},
		Teamed[int]{},
		Teamed[bool]{},
	)

	assert.Equal(t, Teamed[int]{RE: 240, KO: 0}, table.Targets)
	// KO's target of 0 is satisfied by the single trick
	assert.Equal(t, TeamKO, table.Winner)
}

func TestNewResultTable_labelSwapSymmetry(t *testing.T) {
	cases := []struct {
		reScore, koScore int
		reCalls, koCalls []CallType
	}{
		{130, 110, nil, nil},
		{120, 120, nil, nil},
		{28, 212, nil, nil},
		{130, 110, []CallType{CallUnder120}, nil},
		{151, 89, []CallType{CallUnder120, CallUnder90}, nil},
		{120, 120, []CallType{CallUnder120}, []CallType{CallUnder120}},
		{240, 0, []CallType{CallUnder120, CallUnder90, CallUnder60, CallUnder30, CallNoTricks}, nil},
	}

	for _, c := range cases {
		table := newTable(c.reScore, c.koScore, c.reCalls, c.koCalls)
		swapped := newTable(c.koScore, c.reScore, c.koCalls, c.reCalls)
		assert.Equal(t, table.Points.RE+table.Points.KO, swapped.Points.RE+swapped.Points.KO,
			"%d:%d", c.reScore, c.koScore)
	}

	// with a call in play the whole table mirrors
	table := newTable(100, 140, nil, []CallType{CallUnder120})
	swapped := newTable(140, 100, []CallType{CallUnder120}, nil)
	assert.Equal(t, table.Points.RE, swapped.Points.KO)
	assert.Equal(t, table.Points.KO, swapped.Points.RE)
	assert.Equal(t, table.Winner, swapped.Winner.Opponent())
}

func TestNewResultTable_deterministic(t *testing.T) {
	a := newTable(130, 110, []CallType{CallUnder120}, nil)
	b := newTable(130, 110, []CallType{CallUnder120}, nil)
	assert.Equal(t, a, b)
}

func TestResultTable_BonusPoints(t *testing.T) {
	table := NewResultTable(
		Teamed[int]{RE: 130, KO: 110},
		Teamed[bool]{},
		Teamed[[]CallType]{},
		Teamed[int]{RE: 2, KO: 1},
		Teamed[bool]{KO: true},
	)

	assert.Equal(t, 2, table.BonusPoints(TeamRE))
	assert.Equal(t, 2, table.BonusPoints(TeamKO))
}
