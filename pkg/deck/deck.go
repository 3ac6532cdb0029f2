package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/binary"
	"encoding/hex"
	"math/rand"
)

// Size is the number of cards in a deck
const Size = 48

// HandSize is the number of cards dealt to each of the four hands
const HandSize = 12

// Deck is a full set of 48 cards in shuffled order. The order is a pure
// function of the seed: two decks built from the same seed are identical.
type Deck struct {
	Cards []Card `json:"cards"`
	Mode  Mode   `json:"mode"`
	seed  []byte
}

// New returns a deck shuffled deterministically from the seed bytes
func New(seed []byte, mode Mode) *Deck {
	d := &Deck{
		Mode: mode,
		seed: append([]byte{}, seed...),
	}

	d.buildDeck()
	d.shuffle()
	return d
}

func (d *Deck) buildDeck() {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			for cp := 0; cp < 2; cp++ {
				cards = append(cards, Card{Suit: suit, Rank: rank, Copy: cp})
			}
		}
	}

	d.Cards = cards
}

// shuffle performs a Fisher-Yates shuffle driven by the seed bytes
func (d *Deck) shuffle() {
	sum := sha1.Sum(d.seed) // nolint:gosec
	rng := rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(sum[:8]))))

	for j := len(d.Cards) - 1; j > 0; j-- {
		i := rng.Intn(j + 1)
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Seed returns a copy of the seed the deck was built from
func (d *Deck) Seed() []byte {
	return append([]byte{}, d.seed...)
}

// DealHandCards splits the shuffled deck into four disjoint twelve-card hands
func (d *Deck) DealHandCards() [4][]Card {
	var hands [4][]Card
	for i := 0; i < 4; i++ {
		hand := make([]Card, HandSize)
		copy(hand, d.Cards[i*HandSize:(i+1)*HandSize])
		hands[i] = hand
	}

	return hands
}

// GetCard resolves a card code against the deck
func (d *Deck) GetCard(code string) (Card, error) {
	card, err := CardFromCode(code)
	if err != nil {
		return Card{}, err
	}

	for _, c := range d.Cards {
		if c == card {
			return c, nil
		}
	}

	return Card{}, ErrUnknownCard
}

// HashCode returns a SHA1 hash code of the deck order
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.Code()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}
