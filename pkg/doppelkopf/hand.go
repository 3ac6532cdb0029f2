package doppelkopf

import (
	"doppelkopf-server/pkg/deck"
)

// Hand is the per-player state of one round. Index 0 sits left of the
// dealer and opens the first trick; index 3 is the dealer.
type Hand struct {
	PlayerID    int64       `json:"playerId"`
	Index       int         `json:"index"`
	Declaration Declaration `json:"declaration"`
	Bidding     Bidding     `json:"bidding"`

	// InternalTeam is the true team assignment. PlayerTeam is what the
	// owner knows; PublicTeam is what everyone at the table knows.
	InternalTeam Team `json:"internalTeam"`
	PlayerTeam   Team `json:"playerTeam"`
	PublicTeam   Team `json:"publicTeam"`

	HasMarriage bool `json:"hasMarriage"`
	PlaysSolo   bool `json:"playsSolo"`

	CardsRemaining []deck.Card `json:"cardsRemaining"`
	CardsPlayed    []deck.Card `json:"cardsPlayed"`
	Calls          []Call      `json:"calls"`

	Score      int `json:"score"`
	TrickCount int `json:"trickCount"`
}

// NewHand returns a hand for the dealt cards. The initial team assignment
// follows queen-of-clubs possession; the owner knows it, the table does not.
func NewHand(playerID int64, index int, cards []deck.Card) *Hand {
	queens := 0
	for _, card := range cards {
		if card.IsQueenOfClubs() {
			queens++
		}
	}

	team := TeamKO
	if queens > 0 {
		team = TeamRE
	}

	return &Hand{
		PlayerID:       playerID,
		Index:          index,
		Declaration:    DeclarationNothing,
		Bidding:        BiddingNothing,
		InternalTeam:   team,
		PlayerTeam:     team,
		PublicTeam:     TeamNA,
		HasMarriage:    queens == 2,
		CardsRemaining: append([]deck.Card{}, cards...),
		CardsPlayed:    []deck.Card{},
		Calls:          []Call{},
	}
}

// CanDeclare checks whether the player may declare the option on this hand
func (h *Hand) CanDeclare(playerID int64, option Declaration) error {
	if playerID != h.PlayerID {
		return Forbiddenf("hand belongs to another player")
	}

	if h.Declaration != DeclarationNothing {
		return Invalidf("hand has already declared")
	}

	switch option {
	case DeclarationHealthy:
		if h.HasMarriage {
			return Invalidf("a hand with both queens of clubs cannot declare healthy")
		}
	case DeclarationSilentMarriage:
		if !h.HasMarriage {
			return Invalidf("silent marriage requires both queens of clubs")
		}
	case DeclarationReservation:
		// always allowed
	default:
		return Invalidf("cannot declare %s", option)
	}

	return nil
}

// Declare sets the declaration after running the guard
func (h *Hand) Declare(playerID int64, option Declaration) error {
	if err := h.CanDeclare(playerID, option); err != nil {
		return err
	}

	h.Declaration = option
	return nil
}

// CanBid checks whether the player may bid the option on this hand
func (h *Hand) CanBid(playerID int64, option Bidding) error {
	if playerID != h.PlayerID {
		return Forbiddenf("hand belongs to another player")
	}

	if h.Bidding != BiddingNothing {
		return Invalidf("hand has already bid")
	}

	if h.Declaration != DeclarationReservation {
		return Invalidf("bidding requires a reservation")
	}

	switch {
	case option == BiddingMarriage:
		if !h.HasMarriage {
			return Invalidf("a marriage bid requires both queens of clubs")
		}
	case option.IsSolo():
		// always allowed
	default:
		return Invalidf("cannot bid %s", option)
	}

	return nil
}

// Bid sets the bidding after running the guard
func (h *Hand) Bid(playerID int64, option Bidding) error {
	if err := h.CanBid(playerID, option); err != nil {
		return err
	}

	h.Bidding = option
	return nil
}

// HasCard returns true if the card is still in the hand
func (h *Hand) HasCard(card deck.Card) bool {
	for _, c := range h.CardsRemaining {
		if c == card {
			return true
		}
	}

	return false
}

// hasDemand returns true if the hand still holds a card of the demand
func (h *Hand) hasDemand(demand deck.Demand, mode deck.Mode) bool {
	for _, c := range h.CardsRemaining {
		if c.GetDemand(mode) == demand {
			return true
		}
	}

	return false
}

// CanPlayCard checks the must-follow rule: a card may be played off-demand
// only if the hand holds no card matching the demand. An empty demand means
// the hand opens the trick and may play anything it holds.
func (h *Hand) CanPlayCard(card deck.Card, demand deck.Demand, mode deck.Mode) error {
	if !h.HasCard(card) {
		return Invalidf("card %s is not in the hand", card.Code())
	}

	if demand != "" && card.GetDemand(mode) != demand && h.hasDemand(demand, mode) {
		return Invalidf("must follow %s", demand)
	}

	return nil
}

// PlayCard moves the card from the remaining to the played pile
func (h *Hand) PlayCard(card deck.Card, demand deck.Demand, mode deck.Mode) error {
	if err := h.CanPlayCard(card, demand, mode); err != nil {
		return err
	}

	remaining := make([]deck.Card, 0, len(h.CardsRemaining)-1)
	for _, c := range h.CardsRemaining {
		if c != card {
			remaining = append(remaining, c)
		}
	}

	h.CardsRemaining = remaining
	h.CardsPlayed = append(h.CardsPlayed, card)
	return nil
}

// HasCalled returns true if this hand has made the call
func (h *Hand) HasCalled(callType CallType) bool {
	for _, call := range h.Calls {
		if call.Type == callType {
			return true
		}
	}

	return false
}

// AddCall records a call with a snapshot of the cards played so far
func (h *Hand) AddCall(callType CallType) {
	h.Calls = append(h.Calls, Call{
		Type:              callType,
		CardsPlayedBefore: len(h.CardsPlayed),
	})
}

// WonTrick credits a completed trick to the hand
func (h *Hand) WonTrick(score int) {
	h.Score += score
	h.TrickCount++
}
