package doppelkopf

import (
	"testing"

	"doppelkopf-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

// newTestRound builds a round directly from card codes, one string per
// hand in seating order. Player IDs are 100 + index.
func newTestRound(cards [4]string) *Round {
	hands := make([]*Hand, 4)
	for i, codes := range cards {
		hands[i] = NewHand(int64(100+i), i, deck.CardsFromCodes(codes))
	}

	return &Round{
		Number:   1,
		State:    RoundWaitingForDeclarations,
		Contract: ContractNormal,
		Mode:     deck.ModeNormal,
		DealerID: hands[3].PlayerID,
		Hands:    hands,
		Tricks:   []*Trick{},
		Turns:    []Turn{},
	}
}

func declareAllHealthy(t *testing.T, r *Round) {
	t.Helper()
	for _, hand := range r.Hands {
		assert.NoError(t, r.Declare(hand.PlayerID, DeclarationHealthy))
	}
}

func TestRound_declarations_allHealthy(t *testing.T) {
	r := newTestRound([4]string{"QC0,9H0", "QC1,9H1", "9S0,9C0", "9S1,9C1"})

	err := r.Declare(999, DeclarationHealthy)
	assert.True(t, IsForbidden(err))

	assert.NoError(t, r.Declare(100, DeclarationHealthy))
	assert.Equal(t, RoundWaitingForDeclarations, r.State)

	// wrong phase for a bid
	err = r.Bid(100, BiddingSoloHearts)
	assert.True(t, IsInvalid(err))

	assert.NoError(t, r.Declare(101, DeclarationHealthy))
	assert.NoError(t, r.Declare(102, DeclarationHealthy))
	assert.NoError(t, r.Declare(103, DeclarationHealthy))

	assert.Equal(t, RoundPlayingTricks, r.State)
	assert.Equal(t, ContractNormal, r.Contract)

	// declaration phase is over
	err = r.Declare(100, DeclarationHealthy)
	assert.True(t, IsInvalid(err))
}

func TestRound_declarations_silentMarriage(t *testing.T) {
	r := newTestRound([4]string{"QC0,QC1", "9H0,9H1", "9S0,9C0", "9S1,9C1"})

	assert.NoError(t, r.Declare(100, DeclarationSilentMarriage))
	assert.NoError(t, r.Declare(101, DeclarationHealthy))
	assert.NoError(t, r.Declare(102, DeclarationHealthy))
	assert.NoError(t, r.Declare(103, DeclarationHealthy))

	assert.Equal(t, RoundPlayingTricks, r.State)
	assert.Equal(t, ContractSilentMarriage, r.Contract)
	assert.Equal(t, TeamRE, r.Hands[0].InternalTeam)
	assert.Equal(t, TeamKO, r.Hands[1].InternalTeam)
}

func TestRound_declarations_reservation(t *testing.T) {
	r := newTestRound([4]string{"QC0,QC1", "9H0,9H1", "9S0,9C0", "9S1,9C1"})

	assert.NoError(t, r.Declare(100, DeclarationReservation))
	assert.NoError(t, r.Declare(101, DeclarationHealthy))
	assert.NoError(t, r.Declare(102, DeclarationHealthy))
	assert.NoError(t, r.Declare(103, DeclarationHealthy))

	assert.Equal(t, RoundWaitingForBids, r.State)
}

func TestRound_auction_marriage(t *testing.T) {
	r := newTestRound([4]string{"QC0,QC1", "9H0,9H1", "9S0,9C0", "9S1,9C1"})

	assert.NoError(t, r.Declare(100, DeclarationReservation))
	assert.NoError(t, r.Declare(101, DeclarationHealthy))
	assert.NoError(t, r.Declare(102, DeclarationHealthy))
	assert.NoError(t, r.Declare(103, DeclarationHealthy))

	assert.NoError(t, r.Bid(100, BiddingMarriage))

	assert.Equal(t, RoundPlayingTricks, r.State)
	assert.Equal(t, ContractMarriageUnresolved, r.Contract)
	assert.Equal(t, TeamRE, r.Hands[0].PublicTeam)
	for _, hand := range r.Hands[1:] {
		assert.Equal(t, TeamNA, hand.InternalTeam)
		assert.Equal(t, TeamNA, hand.PlayerTeam)
	}

	// no calls while the marriage is unresolved
	err := r.MakeCall(101, CallUnder120)
	assert.True(t, IsInvalid(err))
}

func TestRound_auction_soloLowestIndexWins(t *testing.T) {
	r := newTestRound([4]string{"9H0,9H1", "AH0,AH1", "AS0,AS1", "9S1,9C1"})

	assert.NoError(t, r.Declare(100, DeclarationHealthy))
	assert.NoError(t, r.Declare(101, DeclarationReservation))
	assert.NoError(t, r.Declare(102, DeclarationReservation))
	assert.NoError(t, r.Declare(103, DeclarationHealthy))

	assert.Equal(t, RoundWaitingForBids, r.State)

	assert.NoError(t, r.Bid(102, BiddingSoloClubs))
	assert.Equal(t, RoundWaitingForBids, r.State)

	assert.NoError(t, r.Bid(101, BiddingSoloHearts))

	assert.Equal(t, RoundPlayingTricks, r.State)
	assert.Equal(t, ContractSolo, r.Contract)
	assert.Equal(t, deck.ModeHeartsSolo, r.Mode)
	assert.True(t, r.Hands[1].PlaysSolo)
	assert.Equal(t, TeamRE, r.Hands[1].PublicTeam)
	assert.Equal(t, TeamKO, r.Hands[2].PublicTeam)
}

func TestRound_playCard_routing(t *testing.T) {
	r := newTestRound([4]string{"AH0,9H0", "AH1,9H1", "AS0,9S0", "AS1,9S1"})
	declareAllHealthy(t, r)

	// only hand 0 may open the first trick
	err := r.PlayCard(101, "AH1")
	assert.True(t, IsForbidden(err))

	assert.NoError(t, r.PlayCard(100, "AH0"))
	assert.Equal(t, 1, len(r.Tricks))
	assert.Equal(t, deck.DemandHearts, r.Tricks[0].Demand)

	// out of turn within the trick
	err = r.PlayCard(102, "AS0")
	assert.True(t, IsForbidden(err))

	// hand 1 must follow hearts
	err = r.PlayCard(101, "9H1")
	assert.NoError(t, err)

	assert.NoError(t, r.PlayCard(102, "AS0"))
	assert.NoError(t, r.PlayCard(103, "AS1"))

	// trick 1 went to hand 0; only hand 0 may open trick 2
	err = r.PlayCard(101, "AH1")
	assert.True(t, IsForbidden(err))

	assert.NoError(t, r.PlayCard(100, "9H0"))
	assert.NoError(t, r.PlayCard(101, "AH1"))
	assert.NoError(t, r.PlayCard(102, "9S0"))
	assert.NoError(t, r.PlayCard(103, "9S1"))

	assert.Equal(t, RoundEvaluated, r.State)
	assert.Equal(t, 8, len(r.Turns))
	assert.Equal(t, 1, r.Turns[0].Sequence)
	assert.Equal(t, "AH0", r.Turns[0].Card)
}

func TestRound_marriageResolvedByEarlyTrick(t *testing.T) {
	r := newTestRound([4]string{"QC0,QC1", "AD0,9H0", "AH0,9S0", "AS0,9C0"})

	assert.NoError(t, r.Declare(100, DeclarationReservation))
	assert.NoError(t, r.Declare(101, DeclarationHealthy))
	assert.NoError(t, r.Declare(102, DeclarationHealthy))
	assert.NoError(t, r.Declare(103, DeclarationHealthy))
	assert.NoError(t, r.Bid(100, BiddingMarriage))

	assert.NoError(t, r.PlayCard(100, "QC0"))
	assert.NoError(t, r.PlayCard(101, "AD0"))
	assert.NoError(t, r.PlayCard(102, "AH0"))
	assert.NoError(t, r.PlayCard(103, "AS0"))

	assert.Equal(t, ContractMarriageResolved, r.Contract)
	assert.Equal(t, 1, r.CallOffset)
	assert.Equal(t, TeamRE, r.Hands[0].InternalTeam)
	assert.Equal(t, TeamRE, r.Hands[1].InternalTeam)
	assert.Equal(t, TeamKO, r.Hands[2].InternalTeam)
	assert.Equal(t, TeamKO, r.Hands[3].InternalTeam)
	assert.Equal(t, TeamRE, r.Hands[1].PublicTeam)
}

func TestRound_marriageHelperFallsBackToOpener(t *testing.T) {
	r := newTestRound([4]string{"QC0,QC1,9H0", "AS0,9S0,9H1", "TS0,KS0,9C0", "AH0,TC0,KC0"})

	assert.NoError(t, r.Declare(100, DeclarationReservation))
	assert.NoError(t, r.Declare(101, DeclarationHealthy))
	assert.NoError(t, r.Declare(102, DeclarationHealthy))
	assert.NoError(t, r.Declare(103, DeclarationHealthy))
	assert.NoError(t, r.Bid(100, BiddingMarriage))

	// hand 3 takes the first trick
	assert.NoError(t, r.PlayCard(100, "9H0"))
	assert.NoError(t, r.PlayCard(101, "9H1"))
	assert.NoError(t, r.PlayCard(102, "9C0"))
	assert.NoError(t, r.PlayCard(103, "AH0"))

	assert.Equal(t, ContractMarriageUnresolved, r.Contract)

	// the married hand trumps in as the second card and wins the trick
	// itself, so the opener becomes its partner
	assert.NoError(t, r.PlayCard(103, "TC0"))
	assert.NoError(t, r.PlayCard(100, "QC0"))
	assert.NoError(t, r.PlayCard(101, "9S0"))
	assert.NoError(t, r.PlayCard(102, "KS0"))

	assert.Equal(t, ContractMarriageResolved, r.Contract)
	assert.Equal(t, 2, r.CallOffset)
	assert.Equal(t, TeamRE, r.Hands[0].InternalTeam)
	assert.Equal(t, TeamKO, r.Hands[1].InternalTeam)
	assert.Equal(t, TeamKO, r.Hands[2].InternalTeam)
	assert.Equal(t, TeamRE, r.Hands[3].InternalTeam)
	assert.Equal(t, TeamRE, r.Hands[3].PublicTeam)
}

func TestRound_marriageDegradesToSolo(t *testing.T) {
	r := newTestRound([4]string{
		"QC0,QC1,9H0,9H1,9C0",
		"AH0,AS0,AC0,KC0,KH0",
		"KH1,KS0,TC0,TH0,TS0",
		"TH1,TS1,TC1,9S0,9S1",
	})

	assert.NoError(t, r.Declare(100, DeclarationReservation))
	assert.NoError(t, r.Declare(101, DeclarationHealthy))
	assert.NoError(t, r.Declare(102, DeclarationHealthy))
	assert.NoError(t, r.Declare(103, DeclarationHealthy))
	assert.NoError(t, r.Bid(100, BiddingMarriage))

	// trick 1: hand 1 takes it
	assert.NoError(t, r.PlayCard(100, "9H0"))
	assert.NoError(t, r.PlayCard(101, "AH0"))
	assert.NoError(t, r.PlayCard(102, "TH0"))
	assert.NoError(t, r.PlayCard(103, "TH1"))
	assert.Equal(t, ContractMarriageUnresolved, r.Contract)

	// trick 2: hand 1 again
	assert.NoError(t, r.PlayCard(101, "AS0"))
	assert.NoError(t, r.PlayCard(102, "TS0"))
	assert.NoError(t, r.PlayCard(103, "TS1"))
	assert.NoError(t, r.PlayCard(100, "9H1"))
	assert.Equal(t, ContractMarriageUnresolved, r.Contract)

	// trick 3: three tricks gone, the marriage degrades to a solo
	assert.NoError(t, r.PlayCard(101, "AC0"))
	assert.NoError(t, r.PlayCard(102, "TC0"))
	assert.NoError(t, r.PlayCard(103, "TC1"))
	assert.NoError(t, r.PlayCard(100, "9C0"))

	assert.Equal(t, ContractMarriageSolo, r.Contract)
	assert.True(t, r.Hands[0].PlaysSolo)
	assert.Equal(t, TeamRE, r.Hands[0].PublicTeam)
	assert.Equal(t, TeamKO, r.Hands[1].PublicTeam)
}

func TestRound_makeCall(t *testing.T) {
	r := newTestRound([4]string{"QC0,AH0", "QC1,AH1", "AS0,9S0", "AS1,9S1"})
	declareAllHealthy(t, r)

	// call chain must start at under-120
	err := r.MakeCall(100, CallUnder90)
	assert.True(t, IsInvalid(err))

	assert.NoError(t, r.MakeCall(100, CallUnder120))
	assert.Equal(t, TeamRE, r.Hands[0].PublicTeam)
	// one call does not reveal the rest of the table
	assert.Equal(t, TeamNA, r.Hands[1].PublicTeam)

	// the team already made this exact call, teammate included
	err = r.MakeCall(101, CallUnder120)
	assert.True(t, IsInvalid(err))

	// the teammate may extend the chain
	assert.NoError(t, r.MakeCall(101, CallUnder90))

	// both RE hands revealed: everyone's team goes public
	assert.Equal(t, TeamKO, r.Hands[2].PublicTeam)
	assert.Equal(t, TeamKO, r.Hands[3].PublicTeam)

	// the other team runs its own chain
	assert.NoError(t, r.MakeCall(102, CallUnder120))
}

func TestRound_makeCall_deadline(t *testing.T) {
	r := newTestRound([4]string{
		"QC0,AH0,AS0,9C0",
		"QC1,9H0,9S0,AC0",
		"KH0,KS0,KC0,TD0",
		"TH0,TS0,TC0,AD0",
	})
	declareAllHealthy(t, r)

	assert.NoError(t, r.PlayCard(100, "AH0"))
	assert.NoError(t, r.PlayCard(101, "9H0"))
	assert.NoError(t, r.PlayCard(102, "KH0"))
	assert.NoError(t, r.PlayCard(103, "TH0"))

	// one card played: under-120 still possible
	assert.NoError(t, r.MakeCall(100, CallUnder120))

	assert.NoError(t, r.PlayCard(100, "AS0"))
	assert.NoError(t, r.PlayCard(101, "9S0"))
	assert.NoError(t, r.PlayCard(102, "KS0"))
	assert.NoError(t, r.PlayCard(103, "TS0"))

	assert.NoError(t, r.PlayCard(100, "9C0"))
	assert.NoError(t, r.PlayCard(101, "AC0"))
	assert.NoError(t, r.PlayCard(102, "KC0"))
	assert.NoError(t, r.PlayCard(103, "TC0"))

	// three cards played: too late for under-90
	err := r.MakeCall(100, CallUnder90)
	assert.True(t, IsInvalid(err))
}

func TestRound_teamsRevealedOnceQueensPlayed(t *testing.T) {
	r := newTestRound([4]string{"QC0,9H0", "QC1,9H1", "AS0,9S0", "AS1,9S1"})
	declareAllHealthy(t, r)

	assert.NoError(t, r.PlayCard(100, "QC0"))
	assert.NoError(t, r.PlayCard(101, "QC1"))
	assert.NoError(t, r.PlayCard(102, "AS0"))
	assert.Equal(t, TeamNA, r.Hands[0].PublicTeam)

	assert.NoError(t, r.PlayCard(103, "AS1"))

	// both queens of clubs on the table: all teams public
	assert.Equal(t, TeamRE, r.Hands[0].PublicTeam)
	assert.Equal(t, TeamRE, r.Hands[1].PublicTeam)
	assert.Equal(t, TeamKO, r.Hands[2].PublicTeam)
	assert.Equal(t, TeamKO, r.Hands[3].PublicTeam)
}

func TestRound_evaluate(t *testing.T) {
	r := newTestRound([4]string{"JC0", "9H0", "9H1", "9S0"})
	declareAllHealthy(t, r)

	// force an earlier doppelkopf trick: four aces to hand 2
	big := NewTrick(1, 0, deck.ModeNormal)
	assert.NoError(t, big.PlayCard(0, card("AC0")))
	assert.NoError(t, big.PlayCard(1, card("AC1")))
	assert.NoError(t, big.PlayCard(2, card("TD0")))
	assert.NoError(t, big.PlayCard(3, card("AH0")))
	r.Tricks = append(r.Tricks, big)
	r.Hands[2].WonTrick(big.Score())

	// seed the remaining hand scores so the totals reach 240
	r.Hands[0].Score = 130
	r.Hands[0].TrickCount = 6
	r.Hands[1].Score = 10
	r.Hands[1].TrickCount = 1
	r.Hands[3].Score = 55
	r.Hands[3].TrickCount = 3
	r.Hands[0].InternalTeam = TeamRE
	r.Hands[1].InternalTeam = TeamRE
	r.Hands[2].InternalTeam = TeamKO
	r.Hands[3].InternalTeam = TeamKO

	// hand 2 opens as winner of the previous trick; hand 0 takes the
	// last trick with the jack of clubs (charly)
	assert.NoError(t, r.PlayCard(102, "9H1"))
	assert.NoError(t, r.PlayCard(103, "9S0"))
	assert.NoError(t, r.PlayCard(100, "JC0"))
	assert.NoError(t, r.PlayCard(101, "9H0"))

	assert.Equal(t, RoundEvaluated, r.State)
	if !assert.NotNil(t, r.Table) || !assert.NotNil(t, r.Results) {
		return
	}

	table := r.Table
	assert.Equal(t, Teamed[int]{RE: 142, KO: 98}, table.Scores)
	assert.Equal(t, TeamRE, table.Winner)
	assert.Equal(t, Teamed[int]{RE: 0, KO: 1}, table.Doppelkopf)
	assert.Equal(t, Teamed[bool]{RE: true, KO: false}, table.Charly)

	// basic point only; bonuses cancel: net (1+1) - (0+1) = 1
	assert.Equal(t, 1, r.Deltas[100])
	assert.Equal(t, 1, r.Deltas[101])
	assert.Equal(t, -1, r.Deltas[102])
	assert.Equal(t, -1, r.Deltas[103])

	re := r.Results.RE
	assert.True(t, re.Winning)
	assert.Equal(t, 142, re.Score)
	assert.Equal(t, 121, re.Target)
	assert.True(t, re.Charly)
	assert.Equal(t, 2, re.Total)

	ko := r.Results.KO
	assert.False(t, ko.Winning)
	assert.Equal(t, 1, ko.Doppelkopf)
	assert.Equal(t, 1, ko.Total)
}
