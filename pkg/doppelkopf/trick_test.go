package doppelkopf

import (
	"testing"

	"doppelkopf-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func card(code string) deck.Card {
	return deck.CardsFromCodes(code)[0]
}

func TestTrick_PlayCard(t *testing.T) {
	trick := NewTrick(1, 0, deck.ModeNormal)
	assert.Equal(t, 0, trick.NextIndex())

	assert.NoError(t, trick.PlayCard(0, card("AH0")))
	assert.Equal(t, deck.DemandHearts, trick.Demand)
	assert.Equal(t, 1, trick.NextIndex())

	_, err := trick.Winner()
	assert.True(t, IsGameFailed(err))

	assert.NoError(t, trick.PlayCard(1, card("9H0")))
	assert.NoError(t, trick.PlayCard(2, card("KH0")))
	assert.NoError(t, trick.PlayCard(3, card("TH0")))
	assert.True(t, trick.IsComplete())

	winner, err := trick.Winner()
	assert.NoError(t, err)
	assert.Equal(t, 0, winner)
	assert.Equal(t, 11+0+4+10, trick.Score())

	err = trick.PlayCard(0, card("9S0"))
	assert.True(t, IsInvalid(err))
}

func TestTrick_trumpBeatsSuit(t *testing.T) {
	trick := NewTrick(1, 0, deck.ModeNormal)
	assert.NoError(t, trick.PlayCard(0, card("AH0")))
	assert.NoError(t, trick.PlayCard(1, card("9D0"))) // lowest trump
	assert.NoError(t, trick.PlayCard(2, card("AH1")))
	assert.NoError(t, trick.PlayCard(3, card("AS0")))

	winner, err := trick.Winner()
	assert.NoError(t, err)
	assert.Equal(t, 1, winner)
}

func TestTrick_highestTrumpWins(t *testing.T) {
	trick := NewTrick(1, 0, deck.ModeNormal)
	assert.NoError(t, trick.PlayCard(0, card("AD0")))
	assert.NoError(t, trick.PlayCard(1, card("JC0")))
	assert.NoError(t, trick.PlayCard(2, card("QC0")))
	assert.NoError(t, trick.PlayCard(3, card("QS0")))

	winner, err := trick.Winner()
	assert.NoError(t, err)
	assert.Equal(t, 2, winner)

	winning, err := trick.WinningCard()
	assert.NoError(t, err)
	assert.Equal(t, "QC0", winning.Code())
}

func TestTrick_equalTrumpLastPlayedWins(t *testing.T) {
	trick := NewTrick(1, 2, deck.ModeNormal)
	assert.NoError(t, trick.PlayCard(2, card("QC0")))
	assert.NoError(t, trick.PlayCard(3, card("9D0")))
	assert.NoError(t, trick.PlayCard(0, card("QC1")))
	assert.NoError(t, trick.PlayCard(1, card("9D1")))

	winner, err := trick.Winner()
	assert.NoError(t, err)
	assert.Equal(t, 0, winner)
}

func TestTrick_equalSuitFirstPlayedWins(t *testing.T) {
	trick := NewTrick(1, 0, deck.ModeNormal)
	assert.NoError(t, trick.PlayCard(0, card("AH0")))
	assert.NoError(t, trick.PlayCard(1, card("AH1")))
	assert.NoError(t, trick.PlayCard(2, card("9H0")))
	assert.NoError(t, trick.PlayCard(3, card("9H1")))

	winner, err := trick.Winner()
	assert.NoError(t, err)
	assert.Equal(t, 0, winner)
}

func TestTrick_offSuitCannotWin(t *testing.T) {
	trick := NewTrick(1, 0, deck.ModeNormal)
	assert.NoError(t, trick.PlayCard(0, card("9S0")))
	assert.NoError(t, trick.PlayCard(1, card("AH0"))) // off-suit ace
	assert.NoError(t, trick.PlayCard(2, card("KS0")))
	assert.NoError(t, trick.PlayCard(3, card("9C0")))

	winner, err := trick.Winner()
	assert.NoError(t, err)
	assert.Equal(t, 2, winner)
}

func TestTrick_soloModeChangesTrump(t *testing.T) {
	trick := NewTrick(1, 0, deck.ModeHeartsSolo)
	assert.NoError(t, trick.PlayCard(0, card("AD0"))) // plain diamonds now
	assert.NoError(t, trick.PlayCard(1, card("9H0"))) // hearts are trump
	assert.NoError(t, trick.PlayCard(2, card("AD1")))
	assert.NoError(t, trick.PlayCard(3, card("KD0")))

	winner, err := trick.Winner()
	assert.NoError(t, err)
	assert.Equal(t, 1, winner)
}
