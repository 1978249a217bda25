package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/media"
)

func newTestEngine(t *testing.T) *engine.GameEngine {
	t.Helper()

	deck, err := engine.NewDeck([]media.Ref{"a.png", "b.png", "a.png", "b.png"})
	if err != nil {
		t.Fatalf("Failed to create deck: %v", err)
	}
	roster, err := engine.NewRoster([]engine.Player{{ID: "p1", Name: "Ana"}, {ID: "p2", Name: "Bea"}})
	if err != nil {
		t.Fatalf("Failed to create roster: %v", err)
	}
	eng, err := engine.NewGame(deck, roster)
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	return eng
}

func newTestClient(hub *Hub, sessionID string, buffer int) *Client {
	return &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, buffer),
	}
}

func decodeMessage(t *testing.T, data []byte) Message {
	t.Helper()

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	return message
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if hub.broadcast == nil || hub.direct == nil {
		t.Error("Hub outbound channels are nil")
	}
	if hub.register == nil || hub.unregister == nil {
		t.Error("Hub registration channels are nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session", 256)

	hub.registerClient(client)

	if _, exists := hub.sessions["test-session"]; !exists {
		t.Error("Session was not created")
	}
	if !hub.sessions["test-session"][client] {
		t.Error("Client was not registered in session")
	}
	if len(hub.sessions["test-session"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.sessions["test-session"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session", 256)

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}
	if _, ok := <-client.send; ok {
		t.Error("Client send channel should be closed")
	}

	// A second unregister must not close the channel twice
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	client1 := newTestClient(hub, sessionID, 256)
	client2 := newTestClient(hub, sessionID, 256)

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.sessions[sessionID]) != 2 {
		t.Errorf("Expected 2 clients in session, got %d", len(hub.sessions[sessionID]))
	}

	hub.unregisterClient(client1)

	if len(hub.sessions[sessionID]) != 1 {
		t.Errorf("Expected 1 client remaining in session, got %d", len(hub.sessions[sessionID]))
	}
	if !hub.sessions[sessionID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub()
	sessionID := "broadcast-test"

	client := newTestClient(hub, sessionID, 256)
	other := newTestClient(hub, "other-session", 256)
	hub.registerClient(client)
	hub.registerClient(other)

	eng := newTestEngine(t)
	if _, err := eng.Flip(0); err != nil {
		t.Fatalf("Flip failed: %v", err)
	}
	state := eng.CurrentState()

	hub.BroadcastToSession(sessionID, &state)

	// Drain the queue the way Run does
	hub.broadcastMessage(<-hub.broadcast)

	select {
	case data := <-client.send:
		message := decodeMessage(t, data)
		if message.SessionID != sessionID {
			t.Errorf("Expected sessionID %s, got %s", sessionID, message.SessionID)
		}
		if message.Event != "state_update" {
			t.Errorf("Expected event 'state_update', got %s", message.Event)
		}
		if message.GameState == nil {
			t.Fatal("Expected game state in message")
		}
		if message.GameState.Cards[0].State != engine.FaceUp || message.GameState.Cards[0].Face != "a.png" {
			t.Errorf("Card 0 not correctly transmitted: %+v", message.GameState.Cards[0])
		}
		if message.GameState.Cards[1].Face != "" {
			t.Error("Face-down card leaked its face")
		}
		if message.GameState.Phase != engine.OneUp {
			t.Errorf("Expected phase %s, got %s", engine.OneUp, message.GameState.Phase)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No message received within timeout")
	}

	select {
	case <-other.send:
		t.Error("Client of another session received the broadcast")
	default:
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()

	hub.BroadcastEvent("event-test", "custom-event", "test-data")

	select {
	case message := <-hub.broadcast:
		if message.SessionID != "event-test" {
			t.Errorf("Expected sessionID 'event-test', got %s", message.SessionID)
		}
		if message.Event != "custom-event" {
			t.Errorf("Expected event 'custom-event', got %s", message.Event)
		}
		if message.Data != "test-data" {
			t.Errorf("Expected data 'test-data', got %v", message.Data)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No broadcast message queued")
	}
}

func TestHubBroadcastDoesNotBlockWhenQueueFull(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer+10; i++ {
			hub.BroadcastEvent("full", "tick", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked with no hub running")
	}
	if len(hub.broadcast) != broadcastBuffer {
		t.Errorf("Expected %d queued messages, got %d", broadcastBuffer, len(hub.broadcast))
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := newTestClient(hub, "slow", 0)
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{SessionID: "slow", Event: "tick"})

	if _, exists := hub.sessions["slow"]; exists {
		t.Error("Slow client should have been unregistered")
	}
}

func TestHubSendDirect(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "direct", 1)
	peer := newTestClient(hub, "direct", 1)
	hub.registerClient(client)
	hub.registerClient(peer)

	hub.sendDirect(directMessage{client: client, data: []byte(`{"event":"error"}`)})

	if got := string(<-client.send); got != `{"event":"error"}` {
		t.Errorf("Unexpected direct payload %s", got)
	}
	if len(peer.send) != 0 {
		t.Error("Direct message reached another client")
	}

	// Unregistered clients are skipped
	gone := newTestClient(hub, "direct", 1)
	hub.sendDirect(directMessage{client: gone, data: []byte("x")})
	if len(gone.send) != 0 {
		t.Error("Direct message delivered to unregistered client")
	}
}

func TestHubRunStopsOnCancel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := newTestClient(hub, "cancel", 1)
	hub.register <- client
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if _, ok := <-client.send; ok {
		t.Error("Client send channel should be closed on shutdown")
	}
}

func TestServeWSAfterShutdown(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	served := make(chan struct{}, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, "late")
		served <- struct{}{}
	}))
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	// A client connected before shutdown
	early, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer early.Close()
	<-served

	cancel()
	<-stopped

	// The hub closed the early client; its read pump must not block on unregister
	early.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := early.ReadMessage(); err == nil {
		t.Error("Expected early client to be closed on shutdown")
	}

	late, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer late.Close()

	select {
	case <-served:
	case <-time.After(time.Second):
		t.Fatal("ServeWS blocked after the hub stopped")
	}

	late.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := late.ReadMessage(); err == nil {
		t.Error("Expected late connection to be closed")
	}
}

func startTestServer(t *testing.T, hub *Hub) string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			sessionID = "default"
		}
		hub.ServeWS(w, r, sessionID)
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}
	return decodeMessage(t, data)
}

func TestWebSocketCommands(t *testing.T) {
	hub := NewHub()
	eng := newTestEngine(t)

	hub.SetCommandHandler(func(ctx context.Context, sessionID string, cmd Command) (interface{}, *engine.Snapshot, error) {
		if sessionID != "ws-test" {
			return nil, nil, fmt.Errorf("unexpected session %s", sessionID)
		}
		var (
			events []engine.Event
			err    error
		)
		switch cmd.Action {
		case "flip":
			events, err = eng.Flip(cmd.CardID)
		case "acknowledge":
			events, err = eng.Acknowledge()
		default:
			return nil, nil, fmt.Errorf("unknown action %q", cmd.Action)
		}
		if err != nil {
			return nil, nil, err
		}
		state := eng.CurrentState()
		return map[string]int{"events": len(events)}, &state, nil
	})

	wsURL := startTestServer(t, hub) + "?session=ws-test"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(Command{Action: "flip", CardID: 0}); err != nil {
		t.Fatalf("Failed to send command: %v", err)
	}
	message := readMessage(t, conn)
	if message.Event != "command_result" {
		t.Fatalf("Expected command_result, got %s (%s)", message.Event, message.Error)
	}
	if message.GameState == nil || message.GameState.Flips != 1 {
		t.Errorf("Expected state after one flip, got %+v", message.GameState)
	}

	// Flipping the same card again is rejected and only the sender hears about it
	if err := conn.WriteJSON(Command{Action: "flip", CardID: 0}); err != nil {
		t.Fatalf("Failed to send command: %v", err)
	}
	message = readMessage(t, conn)
	if message.Event != "error" || message.Error == "" {
		t.Errorf("Expected error event, got %+v", message)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("Failed to send raw message: %v", err)
	}
	message = readMessage(t, conn)
	if message.Event != "error" || !strings.Contains(message.Error, "invalid command") {
		t.Errorf("Expected invalid command error, got %+v", message)
	}

	// Server-side broadcasts reach the registered connection
	state := newTestEngine(t).CurrentState()
	hub.BroadcastToSession("ws-test", &state)
	message = readMessage(t, conn)
	if message.Event != "state_update" || message.GameState == nil {
		t.Errorf("Expected state_update, got %+v", message)
	}
}
