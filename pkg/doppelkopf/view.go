package doppelkopf

import (
	"doppelkopf-server/pkg/deck"
)

// HandView is what one viewer may know about a hand. Another player's
// remaining cards stay hidden and their team is reduced to the public one.
type HandView struct {
	PlayerID    int64       `json:"playerId"`
	Index       int         `json:"index"`
	Declaration Declaration `json:"declaration"`
	Bidding     Bidding     `json:"bidding"`
	Team        Team        `json:"team"`
	PlaysSolo   bool        `json:"playsSolo"`

	// CardsRemaining is only populated for the viewer's own hand
	CardsRemaining []string `json:"cardsRemaining,omitempty"`
	CardCount      int      `json:"cardCount"`
	CardsPlayed    []string `json:"cardsPlayed"`
	Calls          []Call   `json:"calls"`
	TrickCount     int      `json:"trickCount"`
}

// RoundView is the per-viewer snapshot of the current round
type RoundView struct {
	Number     int              `json:"number"`
	State      RoundState       `json:"state"`
	Contract   Contract         `json:"contract"`
	Mode       deck.Mode        `json:"mode"`
	DealerID   int64            `json:"dealerId"`
	Hands      []HandView       `json:"hands"`
	Tricks     []*Trick         `json:"tricks"`
	Turns      []Turn           `json:"turns"`
	CallOffset int              `json:"callOffset"`
	Table      *ResultTable     `json:"table,omitempty"`
	Results    *Teamed[*Result] `json:"results,omitempty"`
	Deltas     map[int64]int    `json:"deltas,omitempty"`
}

// GameView is the per-viewer snapshot of the whole game
type GameView struct {
	CreatorID  int64         `json:"creatorId"`
	MaxPlayers int           `json:"maxPlayers"`
	State      GameState     `json:"state"`
	Seats      []*Seat       `json:"seats"`
	DealerID   int64         `json:"dealerId"`
	Scores     map[int64]int `json:"scores"`
	Round      *RoundView    `json:"round,omitempty"`
}

func (h *Hand) view(viewerID int64) HandView {
	owner := h.PlayerID == viewerID

	team := h.PublicTeam
	if owner {
		team = h.PlayerTeam
	}

	hv := HandView{
		PlayerID:    h.PlayerID,
		Index:       h.Index,
		Declaration: h.Declaration,
		Bidding:     h.Bidding,
		Team:        team,
		PlaysSolo:   h.PlaysSolo,
		CardCount:   len(h.CardsRemaining),
		CardsPlayed: deck.CardCodes(h.CardsPlayed),
		Calls:       h.Calls,
		TrickCount:  h.TrickCount,
	}

	if owner {
		hv.CardsRemaining = deck.CardCodes(h.CardsRemaining)
	}

	return hv
}

func (r *Round) view(viewerID int64) *RoundView {
	hands := make([]HandView, len(r.Hands))
	for i, hand := range r.Hands {
		hands[i] = hand.view(viewerID)
	}

	return &RoundView{
		Number:     r.Number,
		State:      r.State,
		Contract:   r.Contract,
		Mode:       r.Mode,
		DealerID:   r.DealerID,
		Hands:      hands,
		Tricks:     r.Tricks,
		Turns:      r.Turns,
		CallOffset: r.CallOffset,
		Table:      r.Table,
		Results:    r.Results,
		Deltas:     r.Deltas,
	}
}

// PlayerView returns the game state as the player is allowed to see it
func (g *Game) PlayerView(viewerID int64) *GameView {
	gv := &GameView{
		CreatorID:  g.CreatorID,
		MaxPlayers: g.MaxPlayers,
		State:      g.State,
		Seats:      g.Seats,
		DealerID:   g.DealerID,
		Scores:     g.Scores,
	}

	if len(g.Rounds) > 0 {
		gv.Round = g.Rounds[len(g.Rounds)-1].view(viewerID)
	}

	return gv
}
