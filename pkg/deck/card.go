package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCard is returned when a card code cannot be resolved to a card
var ErrUnknownCard = errors.New("unknown card")

// Suit represents a card suit
type Suit string

// suit constants
const (
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
)

// Suits is the canonical suit order used for deck construction
var Suits = []Suit{Clubs, Spades, Hearts, Diamonds}

// face cards
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

// Ranks is the canonical rank order used for deck construction
var Ranks = []int{9, 10, Jack, Queen, King, Ace}

// Demand is the category a trick requires players to follow: the led suit
// for plain cards, or the shared trump category
type Demand string

// demand constants
const (
	DemandClubs    Demand = "clubs"
	DemandSpades   Demand = "spades"
	DemandHearts   Demand = "hearts"
	DemandDiamonds Demand = "diamonds"
	DemandTrump    Demand = "trump"
)

// Mode determines which suit is trump. Queens and jacks are trump in
// every mode; the mode only selects the trump suit.
type Mode string

// mode constants. Normal play and the diamonds solo share the same trump set.
const (
	ModeNormal       Mode = "normal"
	ModeDiamondsSolo Mode = "diamonds_solo"
	ModeHeartsSolo   Mode = "hearts_solo"
	ModeSpadesSolo   Mode = "spades_solo"
	ModeClubsSolo    Mode = "clubs_solo"
)

// TrumpSuit returns the suit that is trump under this mode
func (m Mode) TrumpSuit() Suit {
	switch m {
	case ModeHeartsSolo:
		return Hearts
	case ModeSpadesSolo:
		return Spades
	case ModeClubsSolo:
		return Clubs
	}

	return Diamonds
}

// Card is an individual playing card. Each rank/suit combination exists
// twice in a deck; Copy distinguishes the two.
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"`
	Copy int  `json:"copy"`
}

// Score returns the card's point value
func (c Card) Score() int {
	switch c.Rank {
	case 10:
		return 10
	case Jack:
		return 2
	case Queen:
		return 3
	case King:
		return 4
	case Ace:
		return 11
	}

	return 0
}

// IsTrump returns true if the card is trump under the mode
func (c Card) IsTrump(mode Mode) bool {
	return c.Rank == Queen || c.Rank == Jack || c.Suit == mode.TrumpSuit()
}

// IsQueenOfClubs returns true for either copy of the queen of clubs
func (c Card) IsQueenOfClubs() bool {
	return c.Rank == Queen && c.Suit == Clubs
}

// IsJackOfClubs returns true for either copy of the jack of clubs
func (c Card) IsJackOfClubs() bool {
	return c.Rank == Jack && c.Suit == Clubs
}

// GetDemand returns the follow-suit category of the card under the mode
func (c Card) GetDemand(mode Mode) Demand {
	if c.IsTrump(mode) {
		return DemandTrump
	}

	return Demand(c.Suit)
}

// suitOrder ranks the suits for queens and jacks: clubs > spades > hearts > diamonds
func suitOrder(s Suit) int {
	switch s {
	case Clubs:
		return 4
	case Spades:
		return 3
	case Hearts:
		return 2
	case Diamonds:
		return 1
	}

	panic(fmt.Sprintf("unknown suit: %s", s))
}

// TrumpStrength returns the card's position in the trump order, higher is
// stronger. Plain trump-suit cards occupy 1–4, jacks 5–8, queens 9–12.
// Returns 0 for non-trump cards.
func (c Card) TrumpStrength(mode Mode) int {
	switch {
	case c.Rank == Queen:
		return 8 + suitOrder(c.Suit)
	case c.Rank == Jack:
		return 4 + suitOrder(c.Suit)
	case c.Suit == mode.TrumpSuit():
		return c.SuitStrength()
	}

	return 0
}

// SuitStrength ranks a card within its own suit: ace > ten > king > nine
func (c Card) SuitStrength() int {
	switch c.Rank {
	case Ace:
		return 4
	case 10:
		return 3
	case King:
		return 2
	case 9:
		return 1
	}

	// queens and jacks never compete on suit strength
	return 0
}

func rankChar(rank int) string {
	switch rank {
	case 9:
		return "9"
	case 10:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}

	panic(fmt.Sprintf("unknown rank: %d", rank))
}

func suitChar(suit Suit) string {
	switch suit {
	case Clubs:
		return "C"
	case Spades:
		return "S"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	}

	panic(fmt.Sprintf("unknown suit: %s", suit))
}

// Code returns the three-character card code, e.g. "QC0" for the first
// copy of the queen of clubs
func (c Card) Code() string {
	return fmt.Sprintf("%s%s%d", rankChar(c.Rank), suitChar(c.Suit), c.Copy)
}

func (c Card) String() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Spades:
		suit = "♠"
	case Hearts:
		suit = "♡"
	case Diamonds:
		suit = "♢"
	}

	return fmt.Sprintf("%s%s", rankChar(c.Rank), suit)
}

// CardFromCode parses a three-character card code
func CardFromCode(code string) (Card, error) {
	if len(code) != 3 {
		return Card{}, ErrUnknownCard
	}

	var rank int
	switch code[0] {
	case '9':
		rank = 9
	case 'T':
		rank = 10
	case 'J':
		rank = Jack
	case 'Q':
		rank = Queen
	case 'K':
		rank = King
	case 'A':
		rank = Ace
	default:
		return Card{}, ErrUnknownCard
	}

	var suit Suit
	switch code[1] {
	case 'C':
		suit = Clubs
	case 'S':
		suit = Spades
	case 'H':
		suit = Hearts
	case 'D':
		suit = Diamonds
	default:
		return Card{}, ErrUnknownCard
	}

	var cp int
	switch code[2] {
	case '0':
		cp = 0
	case '1':
		cp = 1
	default:
		return Card{}, ErrUnknownCard
	}

	return Card{Suit: suit, Rank: rank, Copy: cp}, nil
}

// CardsFromCodes returns a slice of cards from a comma-separated code list.
// It panics on a bad code and is intended for tests and fixtures.
func CardsFromCodes(s string) []Card {
	if s == "" {
		return []Card{}
	}

	codes := strings.Split(s, ",")
	cards := make([]Card, len(codes))
	for i, code := range codes {
		card, err := CardFromCode(code)
		if err != nil {
			panic(fmt.Sprintf("could not parse card: %s", code))
		}

		cards[i] = card
	}

	return cards
}

// CardCodes returns the code of each card in order
func CardCodes(cards []Card) []string {
	codes := make([]string, len(cards))
	for i, card := range cards {
		codes[i] = card.Code()
	}

	return codes
}

// CardsToCodes converts a slice of cards to a comma-separated code list
func CardsToCodes(cards []Card) string {
	return strings.Join(CardCodes(cards), ",")
}
