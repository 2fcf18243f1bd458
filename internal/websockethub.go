// Copied from https://github.com/gorilla/websocket/blob/master/examples/chat/hub.go
// Copyright 2013 The Gorilla WebSocket Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package internal

import (
	"context"
	"log"

	"github.com/kwkoo/quizrunner/internal/common"
	"github.com/kwkoo/quizrunner/internal/shutdown"
	"golang.org/x/time/rate"
)

// QuestionSetStore is the writable store behind the admin API.
type QuestionSetStore interface {
	Save(ctx context.Context, name string, set common.QuestionSet) error
	Delete(ctx context.Context, name string) error
}

// Hub maintains the set of active clients and routes their commands to the
// session registry.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound commands from the clients.
	incomingcommands chan *ClientCommand

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Replies to commands processed off the hub goroutine.
	replies chan clientReplies

	sessions *Sessions

	processor *CommandProcessor

	store QuestionSetStore

	// Zero disables rate limiting.
	commandRate  rate.Limit
	commandBurst int
}

func NewHub(sessions *Sessions, store QuestionSetStore, commandRate float64, commandBurst int) *Hub {
	if commandRate > 0 {
		log.Printf("limiting clients to %v commands per second with a burst of %d", commandRate, commandBurst)
	}
	return &Hub{
		incomingcommands: make(chan *ClientCommand),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		replies:          make(chan clientReplies),
		clients:          make(map[*Client]bool),
		sessions:         sessions,
		processor:        NewCommandProcessor(sessions),
		store:            store,
		commandRate:      rate.Limit(commandRate),
		commandBurst:     commandBurst,
	}
}

func (h *Hub) Run() {
	ctx := shutdown.Context()
	defer shutdown.NotifyShutdownComplete()

	for {
		select {
		case <-ctx.Done():
			log.Print("websockethub received shutdown signal, exiting")
			for client := range h.clients {
				h.deregisterClient(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			h.deregisterClient(client)

		case command := <-h.incomingcommands:
			h.processCommand(ctx, command)

		case r := <-h.replies:
			h.deliver(r.client, r.replies)
		}
	}
}

// newLimiter returns nil when rate limiting is disabled.
func (h *Hub) newLimiter() *rate.Limiter {
	if h.commandRate <= 0 {
		return nil
	}
	burst := h.commandBurst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(h.commandRate, burst)
}

func (h *Hub) deregisterClient(client *Client) {
	if client == nil {
		return
	}
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	if client.sessionid != "" {
		log.Printf("cleaned up client for session %s", client.sessionid)
	}
}

type clientReplies struct {
	client  *Client
	replies []string
}

// Commands that go to a question set source may wait on the network, so they
// run in their own goroutine and their replies come back through h.replies.
func (h *Hub) processCommand(ctx context.Context, c *ClientCommand) {
	log.Printf("cmd=%s, arg=%s, session=%s", c.cmd, c.arg, c.client.sessionid)

	if c.cmd == cmdLoad || c.cmd == cmdSets {
		go func() {
			out := h.processor.Process(ctx, c.client.sessionid, c)
			select {
			case h.replies <- clientReplies{client: c.client, replies: out}:
			case <-ctx.Done():
			}
		}()
		return
	}
	h.deliver(c.client, h.processor.Process(ctx, c.client.sessionid, c))
}

func (h *Hub) deliver(c *Client, replies []string) {
	for _, reply := range replies {
		if !h.sendMessageToClient(c, reply) {
			return
		}
	}
}

// Returns false if the client was dropped because its buffer is full.
func (h *Hub) sendMessageToClient(c *Client, s string) bool {
	if c == nil {
		return false
	}
	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.send <- []byte(s):
		return true
	default:
		h.deregisterClient(c)
		return false
	}
}

// used by the REST API
func (h *Hub) GetSessions() []common.SessionSummary {
	return h.sessions.GetAll()
}

// used by the REST API
func (h *Hub) DeleteSession(id string) {
	h.sessions.Delete(id)
}

// used by the REST API
func (h *Hub) GetResult(sessionid string) (common.FinalResultView, error) {
	session, err := h.sessions.Get(sessionid)
	if err != nil {
		return common.FinalResultView{}, err
	}
	return session.Result()
}

// used by the REST API
func (h *Hub) ListQuestionSets(ctx context.Context) ([]string, error) {
	return h.sessions.ListSets(ctx)
}

// used by the REST API
func (h *Hub) GetQuestionSet(ctx context.Context, name string) (common.QuestionSet, error) {
	return h.sessions.LoadSet(ctx, name)
}

// used by the REST API
func (h *Hub) SaveQuestionSet(ctx context.Context, name string, set common.QuestionSet) error {
	if err := h.store.Save(ctx, name, set); err != nil {
		return err
	}
	log.Printf("saved question set %s with %d questions", name, set.NumQuestions())
	return nil
}

// used by the REST API
func (h *Hub) DeleteQuestionSet(ctx context.Context, name string) error {
	if err := h.store.Delete(ctx, name); err != nil {
		return err
	}
	log.Printf("deleted question set %s", name)
	return nil
}
