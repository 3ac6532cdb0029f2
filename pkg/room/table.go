package room

import (
	"context"
	"sync"

	"doppelkopf-server/internal/rng"
	"doppelkopf-server/pkg/doppelkopf"

	"github.com/sirupsen/logrus"
)

// SaveFunc persists the match state after a successful action
type SaveFunc func(ctx context.Context) error

// Table owns a single match. Every action funnels through its run loop, so
// the game aggregate only ever has one writer.
type Table struct {
	uuid    string
	game    *doppelkopf.Game
	save    SaveFunc
	clients map[*Client]bool
	lock    sync.RWMutex

	apply       chan applyRequest
	clientEvent chan struct{}
	close       chan bool
}

type applyRequest struct {
	playerID int64
	action   Action
	reply    chan error
}

// NewTable creates a new table for the match
// This is called from a blocking state, so it needs to return quickly
func NewTable(uuid string, game *doppelkopf.Game, save SaveFunc) *Table {
	return &Table{
		uuid:        uuid,
		game:        game,
		save:        save,
		clients:     make(map[*Client]bool),
		apply:       make(chan applyRequest, 256),
		clientEvent: make(chan struct{}, 256),
		close:       make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (t *Table) Clients() []*Client {
	t.lock.RLock()
	defer t.lock.RUnlock()

	clients := make([]*Client, 0, len(t.clients))
	for client := range t.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (t *Table) StartShift() {
	go t.runLoop()
}

func (t *Table) runLoop() {
	log := logrus.WithField("uuid", t.uuid)
	log.Debug("creating table run loop")

	for {
		select {
		case req := <-t.apply:
			err := t.execute(req.playerID, req.action)
			req.reply <- err
			if err == nil {
				t.broadcast()
			}
		case <-t.clientEvent:
			t.broadcast()
		case <-t.close:
			log.Debug("terminating table run loop")
			return
		}
	}
}

// Apply runs the action in the table's run loop and waits for the outcome
func (t *Table) Apply(playerID int64, action Action) error {
	reply := make(chan error, 1)
	req := applyRequest{
		playerID: playerID,
		action:   action,
		reply:    reply,
	}

	select {
	case <-t.close:
		return doppelkopf.GameFailedf("match table is closed")
	default:
	}

	select {
	case t.apply <- req:
	case <-t.close:
		return doppelkopf.GameFailedf("match table is closed")
	}

	select {
	case err := <-reply:
		return err
	case <-t.close:
		return doppelkopf.GameFailedf("match table is closed")
	}
}

// NOTE: must only be called from the run loop
func (t *Table) execute(playerID int64, action Action) error {
	var err error
	switch action.Name {
	case "join":
		err = t.game.Join(playerID, action.Seat)
	case "start":
		err = t.game.Start(playerID, rng.Crypto{})
	case "deal":
		_, err = t.game.Deal(playerID, nil)
	case "declare":
		err = t.game.Declare(playerID, doppelkopf.Declaration(action.Option))
	case "bid":
		err = t.game.Bid(playerID, doppelkopf.Bidding(action.Option))
	case "call":
		err = t.game.MakeCall(playerID, doppelkopf.CallType(action.Option))
	case "play":
		err = t.game.PlayCard(playerID, action.Card)
	default:
		err = doppelkopf.Invalidf("unknown action: %s", action.Name)
	}

	if err != nil {
		return err
	}

	if err := t.save(context.Background()); err != nil {
		logrus.WithField("uuid", t.uuid).WithError(err).Error("could not save match")
		return err
	}

	return nil
}

// NOTE: must only be called from the run loop
func (t *Table) broadcast() {
	for _, client := range t.Clients() {
		client.Send(&Response{
			Key:  "game",
			Data: t.game.PlayerView(client.player.ID),
		})
	}
}

// AddClient adds a client
// This method must return quickly
func (t *Table) AddClient(client *Client) {
	t.lock.Lock()
	client.table = t
	t.clients[client] = true
	t.lock.Unlock()

	t.clientEvent <- struct{}{}
}

// RemoveClient removes a client
// This method must return quickly
func (t *Table) RemoveClient(client *Client) (lastClient bool) {
	t.lock.Lock()
	delete(t.clients, client)
	nClients := len(t.clients)
	t.lock.Unlock()

	if nClients > 0 {
		t.clientEvent <- struct{}{}
		return false
	}

	return true
}

// EndShift is called when the table is no longer needed
func (t *Table) EndShift() {
	close(t.close)
}

// ReceivedMessage is called when a client sends a message to the server
func (t *Table) ReceivedMessage(c *Client, msg *PayloadIn) {
	if err := t.Apply(c.player.ID, msg.Action); err != nil {
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	c.Send(OK(msg.Context))
}
