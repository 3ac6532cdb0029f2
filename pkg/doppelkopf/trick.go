package doppelkopf

import (
	"doppelkopf-server/pkg/deck"
)

// PlayedCard is a card inside a trick along with the hand index that played it
type PlayedCard struct {
	Card      deck.Card `json:"card"`
	HandIndex int       `json:"handIndex"`
}

// Trick accumulates up to four cards under the demand fixed by the first
// card. The winner is determined when the fourth card is played.
type Trick struct {
	Number      int          `json:"number"`
	OpenIndex   int          `json:"openIndex"`
	Demand      deck.Demand  `json:"demand"`
	Cards       []PlayedCard `json:"cards"`
	WinnerIndex int          `json:"winnerIndex"`
	Mode        deck.Mode    `json:"mode"`
}

// NewTrick returns an empty trick. Number is 1-based within the round.
func NewTrick(number, openIndex int, mode deck.Mode) *Trick {
	return &Trick{
		Number:      number,
		OpenIndex:   openIndex,
		Cards:       make([]PlayedCard, 0, 4),
		WinnerIndex: -1,
		Mode:        mode,
	}
}

// IsComplete returns true once all four cards have been played
func (t *Trick) IsComplete() bool {
	return len(t.Cards) == 4
}

// NextIndex returns the hand index expected to play the next card
func (t *Trick) NextIndex() int {
	return (t.OpenIndex + len(t.Cards)) % 4
}

// PlayCard appends the card. The first card fixes the demand; the fourth
// determines the winner.
func (t *Trick) PlayCard(handIndex int, card deck.Card) error {
	if t.IsComplete() {
		return Invalidf("trick %d is complete", t.Number)
	}

	if len(t.Cards) == 0 {
		t.Demand = card.GetDemand(t.Mode)
	}

	t.Cards = append(t.Cards, PlayedCard{Card: card, HandIndex: handIndex})

	if t.IsComplete() {
		t.determineWinner()
	}

	return nil
}

// determineWinner finds the strongest card. The highest trump wins if any
// trump was played, with the later of two equal trumps taking precedence;
// otherwise the highest card of the demanded suit wins, with the earlier of
// two equal cards keeping the trick.
func (t *Trick) determineWinner() {
	winner := 0
	for i := 1; i < len(t.Cards); i++ {
		if t.beats(t.Cards[i].Card, t.Cards[winner].Card) {
			winner = i
		}
	}

	t.WinnerIndex = t.Cards[winner].HandIndex
}

func (t *Trick) beats(card, current deck.Card) bool {
	cardTrump := card.TrumpStrength(t.Mode)
	currentTrump := current.TrumpStrength(t.Mode)

	if currentTrump > 0 {
		return cardTrump >= currentTrump
	}

	if cardTrump > 0 {
		return true
	}

	if card.GetDemand(t.Mode) != t.Demand {
		return false
	}

	return card.SuitStrength() > current.SuitStrength()
}

// Score sums the card scores of the trick
func (t *Trick) Score() int {
	score := 0
	for _, pc := range t.Cards {
		score += pc.Card.Score()
	}

	return score
}

// Winner returns the winning hand index. It is a fatal failure to ask
// before the trick is complete.
func (t *Trick) Winner() (int, error) {
	if !t.IsComplete() || t.WinnerIndex < 0 {
		return 0, GameFailedf("trick %d has no winner", t.Number)
	}

	return t.WinnerIndex, nil
}

// WinningCard returns the card that won the trick
func (t *Trick) WinningCard() (deck.Card, error) {
	winner, err := t.Winner()
	if err != nil {
		return deck.Card{}, err
	}

	for _, pc := range t.Cards {
		if pc.HandIndex == winner {
			return pc.Card, nil
		}
	}

	return deck.Card{}, GameFailedf("winner %d played no card in trick %d", winner, t.Number)
}
