// Package broadcast streams a running simulation to websocket clients and
// relays their control commands back to the runner.
package broadcast

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pthm-cable/ecosim/game"
	"github.com/pthm-cable/ecosim/telemetry"
)

// Controller is the part of a runner that clients may drive.
type Controller interface {
	Pause()
	Resume()
	Stop(reason telemetry.EndReason)
}

type frameMessage struct {
	Type string `json:"type"`
	*game.Frame
}

type resultMessage struct {
	Type   string                      `json:"type"`
	Result *telemetry.SimulationResult `json:"result"`
}

// Hub maintains the set of connected clients and fans messages out to them.
// It implements game.Observer.
type Hub struct {
	ctrl Controller

	clients    map[*Client]bool
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// Owned by Run. Replayed to clients that connect late.
	latest []byte
	result []byte
}

type outbound struct {
	data   []byte
	result bool
}

// NewHub creates a hub relaying commands to ctrl. ctrl may be nil, in which
// case commands are ignored.
func NewHub(ctrl Controller) *Hub {
	return &Hub{
		ctrl:       ctrl,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outbound, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run handles registration and fan-out until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			slog.Info("broadcast hub stopped")
			return
		case c := <-h.register:
			h.clients[c] = true
			for _, msg := range [][]byte{h.latest, h.result} {
				if msg != nil {
					c.send <- msg
				}
			}
			slog.Info("client connected", "clients", len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				slog.Info("client disconnected", "clients", len(h.clients))
			}
		case msg := <-h.broadcast:
			if msg.result {
				h.result = msg.data
			} else {
				h.latest = msg.data
			}
			for c := range h.clients {
				select {
				case c.send <- msg.data:
				default:
					close(c.send)
					delete(h.clients, c)
					slog.Warn("client too slow, dropped")
				}
			}
		}
	}
}

// OnFrame queues a frame message for every client.
func (h *Hub) OnFrame(f *game.Frame) {
	payload, err := json.Marshal(frameMessage{Type: "frame", Frame: f})
	if err != nil {
		slog.Error("encoding frame", "error", err)
		return
	}
	h.enqueue(outbound{data: payload})
}

// OnResult queues the final result for every client.
func (h *Hub) OnResult(res *telemetry.SimulationResult) {
	payload, err := json.Marshal(resultMessage{Type: "result", Result: res})
	if err != nil {
		slog.Error("encoding result", "error", err)
		return
	}
	h.enqueue(outbound{data: payload, result: true})
}

// enqueue never blocks the simulation; a full queue drops the message.
func (h *Hub) enqueue(msg outbound) {
	select {
	case h.broadcast <- msg:
	default:
		slog.Warn("broadcast queue full, message dropped", "bytes", len(msg.data))
	}
}

func (h *Hub) dispatch(cmd Command) {
	if h.ctrl == nil {
		return
	}
	switch cmd.Command {
	case "pause":
		h.ctrl.Pause()
	case "resume":
		h.ctrl.Resume()
	case "stop":
		h.ctrl.Stop(telemetry.EndReason(cmd.Reason))
	default:
		slog.Warn("unknown command", "command", cmd.Command)
		return
	}
	slog.Info("client command", "command", cmd.Command, "reason", cmd.Reason)
}

var _ game.Observer = (*Hub)(nil)
