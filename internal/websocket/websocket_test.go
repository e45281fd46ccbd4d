package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHubBroadcastToPlayers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := &Client{PlayerID: "p1", Send: make(chan OutgoingMessage, 1), Hub: hub}
	c2 := &Client{PlayerID: "p2", Send: make(chan OutgoingMessage, 1), Hub: hub}

	hub.register <- c1
	hub.register <- c2

	msg := OutgoingMessage{
		Event: "game_state",
		Data:  map[string]interface{}{"roomId": "room123"},
	}

	hub.BroadcastToPlayers([]string{"p1", "p2"}, msg)

	time.Sleep(20 * time.Millisecond)

	m1 := <-c1.Send
	m2 := <-c2.Send

	assert.Equal(t, "game_state", m1.Event)
	assert.Equal(t, "game_state", m2.Event)
}

func TestHubSendToPlayer(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := &Client{PlayerID: "p1", Send: make(chan OutgoingMessage, 1), Hub: hub}
	c2 := &Client{PlayerID: "p2", Send: make(chan OutgoingMessage, 1), Hub: hub}

	hub.register <- c1
	hub.register <- c2

	msg := OutgoingMessage{
		Event: "deal_private",
		Data:  "hello p1",
	}

	hub.SendToPlayer("p1", msg)

	time.Sleep(20 * time.Millisecond)

	received := <-c1.Send
	assert.Equal(t, "deal_private", received.Event)
	assert.Equal(t, "hello p1", received.Data)

	// p2 不应收到
	select {
	case <-c2.Send:
		assert.Fail(t, "p2 should NOT receive anything")
	default:
		// success
	}
}

func TestHubBroadcastAll(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := &Client{PlayerID: "p1", Send: make(chan OutgoingMessage, 1), Hub: hub}
	c2 := &Client{PlayerID: "p2", Send: make(chan OutgoingMessage, 1), Hub: hub}

	hub.register <- c1
	hub.register <- c2

	hub.BroadcastAll(OutgoingMessage{Event: "room_list"})

	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, "room_list", (<-c1.Send).Event)
	assert.Equal(t, "room_list", (<-c2.Send).Event)
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	disconnected := make(chan string, 1)
	hub.OnDisconnect = func(id string) { disconnected <- id }

	c := &Client{
		PlayerID: "p1",
		Send:     make(chan OutgoingMessage, 1),
		Hub:      hub,
	}

	hub.register <- c
	time.Sleep(10 * time.Millisecond)

	if _, ok := hub.ClientByID("p1"); !ok {
		t.Fatalf("client should be registered")
	}

	hub.unregister <- c
	time.Sleep(10 * time.Millisecond)

	if _, ok := hub.ClientByID("p1"); ok {
		t.Fatalf("client should be removed after unregister")
	}
	assert.Equal(t, "p1", <-disconnected)
}

func TestHubIncomingForwarded(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	got := make(chan IncomingMessage, 1)
	hub.OnIncoming = func(msg IncomingMessage) { got <- msg }

	hub.incoming <- IncomingMessage{From: "p1", Event: "player_action"}

	select {
	case msg := <-got:
		assert.Equal(t, "p1", msg.From)
		assert.Equal(t, "player_action", msg.Event)
	case <-time.After(time.Second):
		t.Fatalf("incoming message was not forwarded")
	}
}
