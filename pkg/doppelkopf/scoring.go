package doppelkopf

// ResultTable is the itemized scoring outcome of a round. It is a pure
// function of its inputs; building the table never touches round state.
//
// Point categories:
//   - Basic: 1 point to the winner
//   - BasicCalls: 2 points to the winner for each team that opened its
//     call chain (under-120)
//   - UnderCalls: 1 point to the winner per tier beyond under-120 called
//     by either team
//   - LostScore: 1 point to the winner per threshold (90/60/30/no tricks)
//     the losing team fell below
//   - Beating: 1 point to the opposing team for each called tier the
//     caller failed by 30 or more points
//   - Doppelkopf: 1 point per trick worth 40 or more, to the team that
//     took it
//   - Charly: 1 point for taking the last trick with a jack of clubs
//
// Points sums basic, basic-calls, lost-score, under-calls and beating per
// team. Doppelkopf and charly are itemized separately and enter the player
// deltas at round evaluation.
type ResultTable struct {
	Scores         Teamed[int]        `json:"scores"`
	NoTricks       Teamed[bool]       `json:"noTricks"`
	EffectiveCalls Teamed[CallType]   `json:"effectiveCalls"`
	Targets        Teamed[int]        `json:"targets"`
	Winner         Team               `json:"winner"`
	Basic          Team               `json:"basic"`
	BasicCalls     Teamed[Team]       `json:"basicCalls"`
	UnderCalls     Teamed[int]        `json:"underCalls"`
	LostScore90    Team               `json:"lostScore90"`
	LostScore60    Team               `json:"lostScore60"`
	LostScore30    Team               `json:"lostScore30"`
	LostScoreZero  Team               `json:"lostScoreZero"`
	Beating        Teamed[int]        `json:"beating"`
	Doppelkopf     Teamed[int]        `json:"doppelkopf"`
	Charly         Teamed[bool]       `json:"charly"`
	Points         Teamed[int]        `json:"points"`
}

// NewResultTable computes the full scoring table. Doppelkopf counts and
// charly flags are derived from the tricks by the round beforehand so the
// table stays a pure computation.
func NewResultTable(scores Teamed[int], noTricks Teamed[bool], calls Teamed[[]CallType], doppelkopf Teamed[int], charly Teamed[bool]) *ResultTable {
	t := &ResultTable{
		Scores:     scores,
		NoTricks:   noTricks,
		Basic:         TeamNA,
		BasicCalls:    Teamed[Team]{RE: TeamNA, KO: TeamNA},
		LostScore90:   TeamNA,
		LostScore60:   TeamNA,
		LostScore30:   TeamNA,
		LostScoreZero: TeamNA,
		Doppelkopf:    doppelkopf,
		Charly:        charly,
	}

	t.EffectiveCalls = Teamed[CallType]{
		RE: effectiveCall(calls.RE),
		KO: effectiveCall(calls.KO),
	}

	t.computeTargets()
	t.computeWinner()
	t.computeBasic(calls)
	t.computeLostScore()
	t.computeBeating(calls)
	t.computePoints()

	return t
}

func effectiveCall(calls []CallType) CallType {
	var effective CallType
	for _, call := range calls {
		if call.OrderIndex() > effective.OrderIndex() {
			effective = call
		}
	}

	return effective
}

// computeTargets derives each team's required score. With no calls RE
// needs 121 and KO 120. A lone caller raises its own target and lowers
// the opponent's; two callers each play against the other's reduce value.
func (t *ResultTable) computeTargets() {
	re, ko := t.EffectiveCalls.RE, t.EffectiveCalls.KO

	switch {
	case re == "" && ko == "":
		t.Targets = Teamed[int]{RE: 121, KO: 120}
	case ko == "":
		t.Targets = Teamed[int]{RE: re.CallerTarget(), KO: re.ReduceValue()}
	case re == "":
		t.Targets = Teamed[int]{RE: ko.ReduceValue(), KO: ko.CallerTarget()}
	default:
		t.Targets = Teamed[int]{RE: ko.ReduceValue(), KO: re.ReduceValue()}
	}
}

// satisfied checks whether the team met its target. A target of 0 is met
// by taking any trick; a target of 240 is met by keeping the opponent
// trickless.
func (t *ResultTable) satisfied(team Team) bool {
	target := t.Targets.Get(team)
	switch {
	case target == 0:
		return !t.NoTricks.Get(team)
	case target == 240:
		return t.NoTricks.Get(team.Opponent())
	}

	return t.Scores.Get(team) >= target
}

func (t *ResultTable) computeWinner() {
	re := t.satisfied(TeamRE)
	ko := t.satisfied(TeamKO)

	switch {
	case re && !ko:
		t.Winner = TeamRE
	case ko && !re:
		t.Winner = TeamKO
	default:
		t.Winner = TeamNA
	}
}

func (t *ResultTable) computeBasic(calls Teamed[[]CallType]) {
	if t.Winner == TeamNA {
		return
	}

	t.Basic = t.Winner

	for _, team := range []Team{TeamRE, TeamKO} {
		under := 0
		for _, call := range calls.Get(team) {
			if call == CallUnder120 {
				t.BasicCalls.Set(team, t.Winner)
			} else {
				under++
			}
		}

		t.UnderCalls.Set(team, under)
	}
}

func (t *ResultTable) computeLostScore() {
	if t.Winner == TeamNA {
		return
	}

	loser := t.Winner.Opponent()
	score := t.Scores.Get(loser)

	if score < 90 {
		t.LostScore90 = t.Winner
	}
	if score < 60 {
		t.LostScore60 = t.Winner
	}
	if score < 30 {
		t.LostScore30 = t.Winner
	}
	if t.NoTricks.Get(loser) {
		t.LostScoreZero = t.Winner
	}
}

// computeBeating awards a point to the opposing team for every called tier
// the caller missed by 30 or more points
func (t *ResultTable) computeBeating(calls Teamed[[]CallType]) {
	for _, team := range []Team{TeamRE, TeamKO} {
		opponent := team.Opponent()
		beating := 0
		for _, call := range calls.Get(team) {
			if t.Scores.Get(opponent) >= call.ReduceValue()+30 {
				beating++
			}
		}

		t.Beating.Set(opponent, beating)
	}
}

func (t *ResultTable) computePoints() {
	for _, team := range []Team{TeamRE, TeamKO} {
		points := 0

		if t.Basic == team {
			points++
		}
		if t.BasicCalls.RE == team {
			points += 2
		}
		if t.BasicCalls.KO == team {
			points += 2
		}
		if t.Winner == team {
			points += t.UnderCalls.RE + t.UnderCalls.KO
		}
		for _, lost := range []Team{t.LostScore90, t.LostScore60, t.LostScore30, t.LostScoreZero} {
			if lost == team {
				points++
			}
		}
		points += t.Beating.Get(team)

		t.Points.Set(team, points)
	}
}

// BonusPoints returns the doppelkopf and charly points for the team
func (t *ResultTable) BonusPoints(team Team) int {
	bonus := t.Doppelkopf.Get(team)
	if t.Charly.Get(team) {
		bonus++
	}

	return bonus
}
