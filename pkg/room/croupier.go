package room

import (
	"context"

	"doppelkopf-server/pkg/model"

	"github.com/sirupsen/logrus"
)

// MatchLoader loads a match so a table can be opened without a connected
// client (e.g. for an HTTP action)
type MatchLoader func(ctx context.Context, uuid string) (*model.Match, error)

// Croupier dispatches players and actions to match tables
type Croupier struct {
	loader     MatchLoader
	tables     map[string]*Table
	connect    chan *Client
	disconnect chan *Client
	resolve    chan resolveRequest
}

type resolveRequest struct {
	uuid  string
	reply chan resolveResponse
}

type resolveResponse struct {
	table *Table
	err   error
}

// NewCroupier returns a new dispatch object
func NewCroupier(loader MatchLoader) *Croupier {
	return &Croupier{
		loader:     loader,
		tables:     make(map[string]*Table),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		resolve:    make(chan resolveRequest, 256),
	}
}

// StartShift starts the croupier run loop
func (c *Croupier) StartShift() {
	go c.runLoop()
}

func (c *Croupier) runLoop() {
	for {
		select {
		case client := <-c.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			table, found := c.tables[client.match.UUID]
			if !found {
				table = NewTable(client.match.UUID, client.match.Game(), client.match.Save)
				table.StartShift()
				c.tables[client.match.UUID] = table
			}

			table.AddClient(client)
		case client := <-c.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			table, found := c.tables[client.match.UUID]
			if !found {
				logrus.WithField("uuid", client.match.UUID).Error("table not found")
				continue
			}

			if table.RemoveClient(client) {
				table.EndShift()
				delete(c.tables, client.match.UUID)
			}
		case req := <-c.resolve:
			table, found := c.tables[req.uuid]
			if !found {
				match, err := c.loader(context.Background(), req.uuid)
				if err != nil {
					req.reply <- resolveResponse{err: err}
					continue
				}

				table = NewTable(match.UUID, match.Game(), match.Save)
				table.StartShift()
				c.tables[match.UUID] = table
			}

			req.reply <- resolveResponse{table: table}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (c *Croupier) ClientConnected(client *Client) {
	c.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (c *Croupier) ClientDisconnected(client *Client) {
	c.disconnect <- client
}

// Apply routes an action to the match's table, opening the table first if
// nobody is connected to it
func (c *Croupier) Apply(uuid string, playerID int64, action Action) error {
	res := make(chan resolveResponse, 1)
	c.resolve <- resolveRequest{uuid: uuid, reply: res}

	resp := <-res
	if resp.err != nil {
		return resp.err
	}

	return resp.table.Apply(playerID, action)
}
