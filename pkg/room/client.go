package room

import (
	"fmt"

	"doppelkopf-server/pkg/model"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a player connected to a match via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	table *Table

	player *model.Player
	match  *model.Match
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, player *model.Player, match *model.Match) *Client {
	return &Client{
		send:   make(chan interface{}, 256),
		Close:  make(chan string),
		Conn:   conn,
		player: player,
		match:  match,
	}
}

// Send sends a message to the web client
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of outgoing messages
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the player and match
func (c *Client) String() string {
	return fmt.Sprintf("%d:%s", c.player.ID, c.match.UUID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	if c.table == nil {
		logrus.WithField("msg", msg).Warn("received message, but table not found")
		return
	}

	c.table.ReceivedMessage(c, msg)
}
