package doppelkopf

import (
	"sort"

	"doppelkopf-server/internal/rng"
	"doppelkopf-server/pkg/deck"
)

// GameState is the lobby-level phase of a game
type GameState string

// game state constants
const (
	GameInitialized    GameState = "initialized"
	GameWaitingForDeal GameState = "waiting_for_deal"
	GamePlayingRound   GameState = "playing_round"
)

// Seat is a player's place at the table
type Seat struct {
	PlayerID int64 `json:"playerId"`
	Number   int   `json:"number"`
}

// Game is the multi-round container: the roster, the dealer button, the
// rounds played so far and the running point totals
type Game struct {
	CreatorID  int64         `json:"creatorId"`
	MaxPlayers int           `json:"maxPlayers"`
	State      GameState     `json:"state"`
	Seats      []*Seat       `json:"seats"`
	DealerID   int64         `json:"dealerId"`
	Rounds     []*Round      `json:"rounds"`
	Scores     map[int64]int `json:"scores"`
}

// NewGame returns a game in the lobby phase. The creator still joins
// through Join like everyone else.
func NewGame(creatorID int64, maxPlayers int) *Game {
	if maxPlayers < 4 {
		maxPlayers = 4
	}

	return &Game{
		CreatorID:  creatorID,
		MaxPlayers: maxPlayers,
		State:      GameInitialized,
		Seats:      []*Seat{},
		Rounds:     []*Round{},
		Scores:     make(map[int64]int),
	}
}

// CanJoin checks whether the player may take the seat
func (g *Game) CanJoin(playerID int64, seat int) error {
	if g.State != GameInitialized {
		return Invalidf("game has already started")
	}

	if len(g.Seats) >= g.MaxPlayers {
		return Invalidf("game is full")
	}

	for _, s := range g.Seats {
		if s.PlayerID == playerID {
			return Invalidf("player %d has already joined", playerID)
		}

		if s.Number == seat {
			return Invalidf("seat %d is taken", seat)
		}
	}

	return nil
}

// Join seats the player
func (g *Game) Join(playerID int64, seat int) error {
	if err := g.CanJoin(playerID, seat); err != nil {
		return err
	}

	g.Seats = append(g.Seats, &Seat{PlayerID: playerID, Number: seat})
	g.Scores[playerID] = 0
	return nil
}

// CanStart checks whether the player may start the game
func (g *Game) CanStart(playerID int64) error {
	if playerID != g.CreatorID {
		return Forbiddenf("only the creator can start the game")
	}

	if g.State != GameInitialized {
		return Invalidf("game has already started")
	}

	if len(g.Seats) < 4 {
		return Invalidf("need at least 4 players, have %d", len(g.Seats))
	}

	return nil
}

// Start assigns the dealer button and opens the game for a deal
func (g *Game) Start(playerID int64, gen rng.Generator) error {
	if err := g.CanStart(playerID); err != nil {
		return err
	}

	g.DealerID = g.Seats[gen.Intn(len(g.Seats))].PlayerID
	g.State = GameWaitingForDeal
	return nil
}

// seatsBySeatNumber returns the seats in ascending seat order
func (g *Game) seatsBySeatNumber() []*Seat {
	seats := append([]*Seat{}, g.Seats...)
	sort.Slice(seats, func(i, j int) bool {
		return seats[i].Number < seats[j].Number
	})

	return seats
}

// PlayersBehind returns the four players immediately following the
// reference player in circular seat order. With exactly four players the
// reference player comes out last; with more they sit out.
func (g *Game) PlayersBehind(playerID int64) ([4]int64, error) {
	seats := g.seatsBySeatNumber()

	ref := -1
	for i, seat := range seats {
		if seat.PlayerID == playerID {
			ref = i
			break
		}
	}

	var players [4]int64
	if ref < 0 {
		return players, Forbiddenf("player %d has no seat", playerID)
	}

	if len(seats) < 4 {
		return players, Invalidf("need at least 4 players, have %d", len(seats))
	}

	for i := 0; i < 4; i++ {
		players[i] = seats[(ref+1+i)%len(seats)].PlayerID
	}

	return players, nil
}

// CanDeal checks whether the player may deal the next round
func (g *Game) CanDeal(playerID int64) error {
	if g.State != GameWaitingForDeal {
		return Invalidf("game is not waiting for a deal")
	}

	if playerID != g.DealerID {
		return Forbiddenf("only the dealer can deal")
	}

	return nil
}

// Deal creates the next round. The seed drives the shuffle; pass nil for
// a random deal.
func (g *Game) Deal(playerID int64, seed []byte) (*Round, error) {
	if err := g.CanDeal(playerID); err != nil {
		return nil, err
	}

	players, err := g.PlayersBehind(g.DealerID)
	if err != nil {
		return nil, err
	}

	if seed == nil {
		seed = rng.SeedBytes()
	}

	d := deck.New(seed, deck.ModeNormal)
	round := NewRound(len(g.Rounds)+1, g.DealerID, players, d)
	g.Rounds = append(g.Rounds, round)
	g.State = GamePlayingRound
	return round, nil
}

// CurrentRound returns the round in progress
func (g *Game) CurrentRound() (*Round, error) {
	if g.State != GamePlayingRound || len(g.Rounds) == 0 {
		return nil, Invalidf("no round in progress")
	}

	return g.Rounds[len(g.Rounds)-1], nil
}

// Declare forwards a declaration to the current round
func (g *Game) Declare(playerID int64, option Declaration) error {
	round, err := g.CurrentRound()
	if err != nil {
		return err
	}

	return round.Declare(playerID, option)
}

// Bid forwards a bid to the current round
func (g *Game) Bid(playerID int64, option Bidding) error {
	round, err := g.CurrentRound()
	if err != nil {
		return err
	}

	return round.Bid(playerID, option)
}

// MakeCall forwards a call to the current round
func (g *Game) MakeCall(playerID int64, callType CallType) error {
	round, err := g.CurrentRound()
	if err != nil {
		return err
	}

	return round.MakeCall(playerID, callType)
}

// PlayCard forwards a card play to the current round. If the play
// completes the round, the point deltas are folded into the game totals
// and the dealer button moves to the forehand of the finished round.
func (g *Game) PlayCard(playerID int64, code string) error {
	round, err := g.CurrentRound()
	if err != nil {
		return err
	}

	if err := round.PlayCard(playerID, code); err != nil {
		return err
	}

	if round.IsEvaluated() {
		for playerID, delta := range round.Deltas {
			g.Scores[playerID] += delta
		}

		g.DealerID = round.ForehandID()
		g.State = GameWaitingForDeal
	}

	return nil
}
