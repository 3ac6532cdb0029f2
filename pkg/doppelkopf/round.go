package doppelkopf

import (
	"doppelkopf-server/pkg/deck"
)

// RoundState is the phase of a round
type RoundState string

// round state constants
const (
	RoundWaitingForDeclarations RoundState = "waiting_for_declarations"
	RoundWaitingForBids         RoundState = "waiting_for_bids"
	RoundPlayingTricks          RoundState = "playing_tricks"
	RoundEvaluated              RoundState = "evaluated"
)

// Contract is the round contract settled by declarations and bids
type Contract string

// contract constants
const (
	ContractNormal             Contract = "normal"
	ContractSilentMarriage     Contract = "silent_marriage"
	ContractMarriageUnresolved Contract = "marriage_unresolved"
	ContractMarriageResolved   Contract = "marriage_resolved"
	ContractMarriageSolo       Contract = "marriage_solo"
	ContractSolo               Contract = "solo"
)

// Resolved returns false while a wedding is still looking for a partner
func (c Contract) Resolved() bool {
	return c != ContractMarriageUnresolved
}

// Round is one deal of twelve tricks: four hands, the declaration and
// bidding phases, trick play, and the final evaluation
type Round struct {
	Number   int        `json:"number"`
	State    RoundState `json:"state"`
	Contract Contract   `json:"contract"`
	Mode     deck.Mode  `json:"mode"`
	DealerID int64      `json:"dealerId"`
	Hands    []*Hand    `json:"hands"`
	Tricks   []*Trick   `json:"tricks"`
	Turns    []Turn     `json:"turns"`

	// CallOffset extends call deadlines when a wedding resolved late
	CallOffset int `json:"callOffset"`

	Table   *ResultTable     `json:"table,omitempty"`
	Results *Teamed[*Result] `json:"results,omitempty"`

	// Deltas holds the per-player point changes applied at evaluation
	Deltas map[int64]int `json:"deltas,omitempty"`
}

// NewRound deals a round. playerIDs are in seating order behind the
// dealer: index 0 opens the first trick, index 3 is the dealer.
func NewRound(number int, dealerID int64, playerIDs [4]int64, d *deck.Deck) *Round {
	handCards := d.DealHandCards()
	hands := make([]*Hand, 4)
	for i, playerID := range playerIDs {
		hands[i] = NewHand(playerID, i, handCards[i])
	}

	return &Round{
		Number:   number,
		State:    RoundWaitingForDeclarations,
		Contract: ContractNormal,
		Mode:     d.Mode,
		DealerID: dealerID,
		Hands:    hands,
		Tricks:   []*Trick{},
		Turns:    []Turn{},
	}
}

// HandByPlayer returns the player's hand in this round
func (r *Round) HandByPlayer(playerID int64) (*Hand, error) {
	for _, hand := range r.Hands {
		if hand.PlayerID == playerID {
			return hand, nil
		}
	}

	return nil, Forbiddenf("player %d is not part of the round", playerID)
}

// CanDeclare checks whether the player may declare the option
func (r *Round) CanDeclare(playerID int64, option Declaration) error {
	if r.State != RoundWaitingForDeclarations {
		return Invalidf("round is not waiting for declarations")
	}

	hand, err := r.HandByPlayer(playerID)
	if err != nil {
		return err
	}

	return hand.CanDeclare(playerID, option)
}

// Declare records the declaration and advances the round once all four
// hands have declared
func (r *Round) Declare(playerID int64, option Declaration) error {
	if err := r.CanDeclare(playerID, option); err != nil {
		return err
	}

	hand, err := r.HandByPlayer(playerID)
	if err != nil {
		return err
	}

	if err := hand.Declare(playerID, option); err != nil {
		return err
	}

	r.checkDeclarations()
	return nil
}

func (r *Round) checkDeclarations() {
	var healthy, reservations, silent int
	for _, hand := range r.Hands {
		switch hand.Declaration {
		case DeclarationNothing:
			return
		case DeclarationHealthy:
			healthy++
		case DeclarationReservation:
			reservations++
		case DeclarationSilentMarriage:
			silent++
		}
	}

	if reservations > 0 {
		r.State = RoundWaitingForBids
		return
	}

	if silent == 1 {
		r.Contract = ContractSilentMarriage
	} else {
		r.Contract = ContractNormal
	}

	r.State = RoundPlayingTricks
}

// CanBid checks whether the player may bid the option
func (r *Round) CanBid(playerID int64, option Bidding) error {
	if r.State != RoundWaitingForBids {
		return Invalidf("round is not waiting for bids")
	}

	hand, err := r.HandByPlayer(playerID)
	if err != nil {
		return err
	}

	return hand.CanBid(playerID, option)
}

// Bid records the bid and resolves the auction once every reservation has bid
func (r *Round) Bid(playerID int64, option Bidding) error {
	if err := r.CanBid(playerID, option); err != nil {
		return err
	}

	hand, err := r.HandByPlayer(playerID)
	if err != nil {
		return err
	}

	if err := hand.Bid(playerID, option); err != nil {
		return err
	}

	for _, h := range r.Hands {
		if h.Declaration == DeclarationReservation && h.Bidding == BiddingNothing {
			return nil
		}
	}

	return r.resolveAuction()
}

// resolveAuction settles the contract from the bids. Solo outbids a
// marriage; between solos the lowest hand index wins.
func (r *Round) resolveAuction() error {
	var solo *Hand
	var married *Hand
	for _, hand := range r.Hands {
		switch {
		case hand.Bidding.IsSolo():
			if solo == nil || hand.Index < solo.Index {
				solo = hand
			}
		case hand.Bidding == BiddingMarriage:
			married = hand
		}
	}

	switch {
	case solo != nil:
		r.Contract = ContractSolo
		r.Mode = solo.Bidding.SoloMode()
		solo.PlaysSolo = true
		r.assignTeams(func(h *Hand) Team {
			if h == solo {
				return TeamRE
			}
			return TeamKO
		}, true)
	case married != nil:
		r.Contract = ContractMarriageUnresolved
		married.InternalTeam = TeamRE
		married.PlayerTeam = TeamRE
		married.PublicTeam = TeamRE
		for _, hand := range r.Hands {
			if hand != married {
				hand.InternalTeam = TeamNA
				hand.PlayerTeam = TeamNA
				hand.PublicTeam = TeamNA
			}
		}
	default:
		return GameFailedf("auction ended without a marriage or solo bid")
	}

	r.State = RoundPlayingTricks
	return nil
}

// assignTeams sets the internal and player teams; public teams too when
// the assignment is public knowledge
func (r *Round) assignTeams(teamOf func(*Hand) Team, public bool) {
	for _, hand := range r.Hands {
		team := teamOf(hand)
		hand.InternalTeam = team
		hand.PlayerTeam = team
		if public {
			hand.PublicTeam = team
		}
	}
}

// currentTrick returns the trick in progress, or nil if the next card
// opens a new trick
func (r *Round) currentTrick() *Trick {
	if len(r.Tricks) == 0 {
		return nil
	}

	last := r.Tricks[len(r.Tricks)-1]
	if last.IsComplete() {
		return nil
	}

	return last
}

// openerIndex returns the hand index that must open the next trick
func (r *Round) openerIndex() (int, error) {
	if len(r.Tricks) == 0 {
		return 0, nil
	}

	return r.Tricks[len(r.Tricks)-1].Winner()
}

// CanPlayCard checks whether the player may play the card right now
func (r *Round) CanPlayCard(playerID int64, code string) error {
	if r.State != RoundPlayingTricks {
		return Invalidf("round is not playing tricks")
	}

	hand, err := r.HandByPlayer(playerID)
	if err != nil {
		return err
	}

	card, err := deck.CardFromCode(code)
	if err != nil {
		return Invalidf("unknown card: %s", code)
	}

	trick := r.currentTrick()
	if trick == nil {
		opener, err := r.openerIndex()
		if err != nil {
			return err
		}

		if hand.Index != opener {
			return Forbiddenf("hand %d cannot open the trick", hand.Index)
		}

		return hand.CanPlayCard(card, "", r.Mode)
	}

	if trick.NextIndex() != hand.Index {
		return Forbiddenf("it is not hand %d's turn", hand.Index)
	}

	return hand.CanPlayCard(card, trick.Demand, r.Mode)
}

// PlayCard routes the card into the current or a new trick, logs the
// turn, and drives trick completion, marriage resolution, team reveal and
// the final evaluation
func (r *Round) PlayCard(playerID int64, code string) error {
	if err := r.CanPlayCard(playerID, code); err != nil {
		return err
	}

	hand, err := r.HandByPlayer(playerID)
	if err != nil {
		return err
	}

	card, err := deck.CardFromCode(code)
	if err != nil {
		return Invalidf("unknown card: %s", code)
	}

	trick := r.currentTrick()
	if trick == nil {
		opener, err := r.openerIndex()
		if err != nil {
			return err
		}

		trick = NewTrick(len(r.Tricks)+1, opener, r.Mode)
		r.Tricks = append(r.Tricks, trick)
	}

	demand := trick.Demand
	if len(trick.Cards) == 0 {
		demand = ""
	}

	if err := hand.PlayCard(card, demand, r.Mode); err != nil {
		return err
	}

	if err := trick.PlayCard(hand.Index, card); err != nil {
		return err
	}

	r.Turns = append(r.Turns, Turn{
		Trick:     trick.Number,
		HandIndex: hand.Index,
		Sequence:  len(r.Turns) + 1,
		Card:      card.Code(),
	})

	if trick.IsComplete() {
		return r.afterTrick(trick)
	}

	return nil
}

func (r *Round) afterTrick(trick *Trick) error {
	winnerIndex, err := trick.Winner()
	if err != nil {
		return err
	}

	winner := r.Hands[winnerIndex]
	winner.WonTrick(trick.Score())

	if r.Contract == ContractMarriageUnresolved {
		r.resolveMarriage(trick, winner)
	}

	r.revealTeamsIfPossible()

	for _, hand := range r.Hands {
		if len(hand.CardsRemaining) > 0 {
			return nil
		}
	}

	return r.evaluate()
}

// resolveMarriage checks a completed trick against the wedding clock: if
// the married hand took one of the first three tricks, the hand that
// helped becomes its partner; after three tricks without a win the
// marriage degrades to a solo.
func (r *Round) resolveMarriage(trick *Trick, winner *Hand) {
	married := r.marriedHand()
	if married == nil {
		return
	}

	if winner == married {
		helper := r.Hands[trick.Cards[1].HandIndex]
		if helper == married {
			helper = r.Hands[trick.Cards[0].HandIndex]
		}

		r.Contract = ContractMarriageResolved
		r.CallOffset = trick.Number
		r.assignTeams(func(h *Hand) Team {
			if h == married || h == helper {
				return TeamRE
			}
			return TeamKO
		}, true)
		return
	}

	if trick.Number >= 3 {
		r.Contract = ContractMarriageSolo
		married.PlaysSolo = true
		r.assignTeams(func(h *Hand) Team {
			if h == married {
				return TeamRE
			}
			return TeamKO
		}, true)
	}
}

func (r *Round) marriedHand() *Hand {
	for _, hand := range r.Hands {
		if hand.Bidding == BiddingMarriage {
			return hand
		}
	}

	return nil
}

func (r *Round) allQueensOfClubsPlayed() bool {
	played := 0
	for _, hand := range r.Hands {
		for _, card := range hand.CardsPlayed {
			if card.IsQueenOfClubs() {
				played++
			}
		}
	}

	return played == 2
}

func (r *Round) countPublic(team Team) int {
	count := 0
	for _, hand := range r.Hands {
		if hand.PublicTeam == team {
			count++
		}
	}

	return count
}

// revealTeamsIfPossible makes every team public once the table can deduce
// them anyway. In a silent marriage two revealed KO hands are not enough:
// revealing the third from only two would leak the marriage.
func (r *Round) revealTeamsIfPossible() {
	reveal := false
	switch r.Contract {
	case ContractNormal:
		reveal = r.allQueensOfClubsPlayed() || r.countPublic(TeamRE) == 2
	case ContractSilentMarriage:
		reveal = r.allQueensOfClubsPlayed() || r.countPublic(TeamKO) == 3
	default:
		return
	}

	if !reveal {
		return
	}

	for _, hand := range r.Hands {
		hand.PublicTeam = hand.InternalTeam
	}
}

// CanMakeCall checks whether the player may make the call right now
func (r *Round) CanMakeCall(playerID int64, callType CallType) error {
	hand, err := r.HandByPlayer(playerID)
	if err != nil {
		return err
	}

	if r.State != RoundPlayingTricks {
		return Invalidf("round is not playing tricks")
	}

	if callType.OrderIndex() == 0 {
		return Invalidf("unknown call: %s", callType)
	}

	if !r.Contract.Resolved() {
		return Invalidf("calls must wait until the marriage is resolved")
	}

	if hand.PlayerTeam == TeamNA {
		return Invalidf("hand does not know its team yet")
	}

	team := hand.InternalTeam
	if r.teamHasCalled(team, callType) {
		return Invalidf("team %s has already called %s", team, callType)
	}

	if previous, ok := callType.Previous(); ok && !r.teamHasCalled(team, previous) {
		return Invalidf("%s requires %s first", callType, previous)
	}

	if len(hand.CardsPlayed) > callType.MaxCardsPlayed()+r.CallOffset {
		return Invalidf("too late to call %s", callType)
	}

	return nil
}

func (r *Round) teamHasCalled(team Team, callType CallType) bool {
	for _, hand := range r.Hands {
		if hand.InternalTeam == team && hand.HasCalled(callType) {
			return true
		}
	}

	return false
}

// MakeCall records the call and reveals the caller's team
func (r *Round) MakeCall(playerID int64, callType CallType) error {
	if err := r.CanMakeCall(playerID, callType); err != nil {
		return err
	}

	hand, err := r.HandByPlayer(playerID)
	if err != nil {
		return err
	}

	hand.AddCall(callType)
	hand.PublicTeam = hand.InternalTeam
	r.revealTeamsIfPossible()
	return nil
}

// evaluate computes the scoring table, freezes the results and the
// per-player point deltas, and closes the round
func (r *Round) evaluate() error {
	if _, err := r.Tricks[len(r.Tricks)-1].Winner(); err != nil {
		return err
	}

	var scores Teamed[int]
	var trickCounts Teamed[int]
	var calls Teamed[[]CallType]

	for _, hand := range r.Hands {
		team := hand.InternalTeam
		if team == TeamNA {
			return GameFailedf("hand %d has no team at evaluation", hand.Index)
		}

		scores.Set(team, scores.Get(team)+hand.Score)
		trickCounts.Set(team, trickCounts.Get(team)+hand.TrickCount)
		for _, call := range hand.Calls {
			calls.Set(team, append(calls.Get(team), call.Type))
		}
	}

	noTricks := Teamed[bool]{
		RE: trickCounts.RE == 0,
		KO: trickCounts.KO == 0,
	}

	var doppelkopf Teamed[int]
	for _, trick := range r.Tricks {
		if trick.Score() >= 40 {
			winnerIndex, err := trick.Winner()
			if err != nil {
				return err
			}

			team := r.Hands[winnerIndex].InternalTeam
			doppelkopf.Set(team, doppelkopf.Get(team)+1)
		}
	}

	var charly Teamed[bool]
	last := r.Tricks[len(r.Tricks)-1]
	winningCard, err := last.WinningCard()
	if err != nil {
		return err
	}

	if winningCard.IsJackOfClubs() {
		winnerIndex, _ := last.Winner()
		charly.Set(r.Hands[winnerIndex].InternalTeam, true)
	}

	table := NewResultTable(scores, noTricks, calls, doppelkopf, charly)
	r.Table = table
	r.Results = &Teamed[*Result]{
		RE: newResult(TeamRE, trickCounts.RE, table),
		KO: newResult(TeamKO, trickCounts.KO, table),
	}

	net := table.Points.RE + table.BonusPoints(TeamRE) - table.Points.KO - table.BonusPoints(TeamKO)
	r.Deltas = make(map[int64]int)
	for _, hand := range r.Hands {
		delta := net
		if hand.InternalTeam == TeamKO {
			delta = -net
		}

		if hand.PlaysSolo {
			delta *= 3
		}

		r.Deltas[hand.PlayerID] = delta
	}

	r.State = RoundEvaluated
	return nil
}

// IsEvaluated returns true once the round has been scored
func (r *Round) IsEvaluated() bool {
	return r.State == RoundEvaluated
}

// ForehandID returns the player at index 0; the dealer button moves there
// after the round
func (r *Round) ForehandID() int64 {
	return r.Hands[0].PlayerID
}
