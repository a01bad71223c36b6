package server

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"scopone-game/internal/game"
	"scopone-game/internal/protocol"
)

// clientMessage is a helper struct to pass messages along with the client reference.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

const broadcastBuffer = 1024

// Hub fans engine events out to connected spectators. It implements game.Sink.
type Hub struct {
	clients        map[*Client]bool
	broadcast      chan []byte
	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client
	done           chan struct{}
	clientMu       sync.RWMutex
	log            logrus.FieldLogger
}

// NewHub creates a new Hub instance.
func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		broadcast:      make(chan []byte, broadcastBuffer),
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		done:           make(chan struct{}),
		log:            log.WithField("component", "hub"),
	}
}

// Run starts the Hub's main loop. It returns when ctx is done, disconnecting every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.clientMu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientMu.Unlock()
			h.log.Info("Hub stopped")
			return

		case client := <-h.register:
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()
			h.log.Infof("Spectator %s (%s) connected", client.ID, client.conn.RemoteAddr())
			welcome, _ := protocol.NewMessage(protocol.TypeWelcome, protocol.WelcomePayload{ClientID: client.ID})
			h.sendTo(client, welcome)

		case client := <-h.unregister:
			h.drop(client)

		case msg := <-h.broadcast:
			h.clientMu.RLock()
			var slow []*Client
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					slow = append(slow, client)
				}
			}
			h.clientMu.RUnlock()
			for _, client := range slow {
				h.log.Warnf("Spectator %s is not keeping up, disconnecting", client.ID)
				h.drop(client)
			}

		case clientMsg := <-h.processMessage:
			h.handleMessage(clientMsg.client, clientMsg.message)
		}
	}
}

func (h *Hub) drop(client *Client) {
	h.clientMu.Lock()
	defer h.clientMu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.log.Infof("Spectator %s disconnected", client.ID)
	}
}

// sendTo queues msg for one client. Only called from Run, which owns the clients map.
func (h *Hub) sendTo(client *Client, msg []byte) {
	if !h.clients[client] {
		return
	}
	select {
	case client.send <- msg:
	default:
		h.log.Warnf("Dropping message for spectator %s", client.ID)
	}
}

// handleMessage processes a message received from a spectator.
func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	switch msg.Type {
	case protocol.TypePing:
		pong, _ := protocol.NewMessage(protocol.TypePong, nil)
		h.sendTo(client, pong)
	default:
		h.log.Debugf("Unknown message type '%s' from spectator %s", msg.Type, client.ID)
		h.sendError(client, "Spectators can only send ping.")
	}
}

func (h *Hub) sendError(client *Client, message string) {
	errMsg, _ := protocol.NewMessage(protocol.TypeError, protocol.ErrorPayload{Message: message})
	h.sendTo(client, errMsg)
}

// Emit implements game.Sink. Events are dropped, not queued, once the broadcast
// buffer is full so a slow network never stalls the engine.
func (h *Hub) Emit(ev game.Event) {
	raw, err := protocol.EventMessage(ev)
	if err != nil {
		h.log.WithError(err).Warnf("Cannot encode %s event", ev.Kind)
		return
	}
	select {
	case h.broadcast <- raw:
	case <-h.done:
	default:
		h.log.Debugf("Broadcast buffer full, dropping %s event", ev.Kind)
	}
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.clientMu.RLock()
	defer h.clientMu.RUnlock()
	return len(h.clients)
}

// decode parses an inbound envelope.
func decode(raw []byte) (protocol.Message, error) {
	var msg protocol.Message
	err := json.Unmarshal(raw, &msg)
	return msg, err
}
