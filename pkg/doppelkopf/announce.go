package doppelkopf

import "doppelkopf-server/pkg/deck"

// Declaration is the first announcement each hand makes after the deal
type Declaration string

// declaration constants
const (
	DeclarationNothing        Declaration = "nothing"
	DeclarationHealthy        Declaration = "healthy"
	DeclarationReservation    Declaration = "reservation"
	DeclarationSilentMarriage Declaration = "silent_marriage"
)

// Bidding is the announcement a hand makes after declaring a reservation
type Bidding string

// bidding constants
const (
	BiddingNothing      Bidding = "nothing"
	BiddingMarriage     Bidding = "marriage"
	BiddingSoloDiamonds Bidding = "solo_diamonds"
	BiddingSoloHearts   Bidding = "solo_hearts"
	BiddingSoloSpades   Bidding = "solo_spades"
	BiddingSoloClubs    Bidding = "solo_clubs"
)

// IsSolo returns true for the solo bid variants
func (b Bidding) IsSolo() bool {
	switch b {
	case BiddingSoloDiamonds, BiddingSoloHearts, BiddingSoloSpades, BiddingSoloClubs:
		return true
	}

	return false
}

// SoloMode returns the deck mode a winning solo bid puts the round into
func (b Bidding) SoloMode() deck.Mode {
	switch b {
	case BiddingSoloDiamonds:
		return deck.ModeDiamondsSolo
	case BiddingSoloHearts:
		return deck.ModeHeartsSolo
	case BiddingSoloSpades:
		return deck.ModeSpadesSolo
	case BiddingSoloClubs:
		return deck.ModeClubsSolo
	}

	return deck.ModeNormal
}

// CallType is a point-target commitment a team can announce during play.
// The tiers form a chain: each call requires the previous tier to have been
// made by the same team.
type CallType string

// call constants
const (
	CallUnder120 CallType = "under_120"
	CallUnder90  CallType = "under_90"
	CallUnder60  CallType = "under_60"
	CallUnder30  CallType = "under_30"
	CallNoTricks CallType = "no_tricks"
)

// CallTypes lists the call chain from least to most restrictive
var CallTypes = []CallType{CallUnder120, CallUnder90, CallUnder60, CallUnder30, CallNoTricks}

// OrderIndex returns the position in the call chain; a higher index is
// more restrictive
func (c CallType) OrderIndex() int {
	for i, ct := range CallTypes {
		if ct == c {
			return i + 1
		}
	}

	return 0
}

// Previous returns the call tier required before this one may be made
func (c CallType) Previous() (CallType, bool) {
	idx := c.OrderIndex()
	if idx <= 1 {
		return "", false
	}

	return CallTypes[idx-2], true
}

// MaxCardsPlayed is the number of cards a hand may have played and still
// make this call. Round-level offsets from a delayed marriage resolution
// are added on top.
func (c CallType) MaxCardsPlayed() int {
	return c.OrderIndex()
}

// ReduceValue is the score the opposing team needs once this call is made
func (c CallType) ReduceValue() int {
	switch c {
	case CallUnder120:
		return 120
	case CallUnder90:
		return 90
	case CallUnder60:
		return 60
	case CallUnder30:
		return 30
	case CallNoTricks:
		return 0
	}

	return 0
}

// CallerTarget is the score the calling team commits itself to
func (c CallType) CallerTarget() int {
	switch c {
	case CallUnder120:
		return 121
	case CallUnder90:
		return 151
	case CallUnder60:
		return 181
	case CallUnder30:
		return 211
	case CallNoTricks:
		return 240
	}

	return 121
}

// Call records a call along with how many cards the hand had played when
// it was made
type Call struct {
	Type              CallType `json:"type"`
	CardsPlayedBefore int      `json:"cardsPlayedBefore"`
}
