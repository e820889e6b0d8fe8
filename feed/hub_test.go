package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/automoto/inputassign/components"
	cfg "github.com/automoto/inputassign/config"
	"github.com/automoto/inputassign/logger"
	"github.com/automoto/inputassign/systems/factory"
	"github.com/gorilla/websocket"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

func TestMain(m *testing.M) {
	logger.Discard()
	os.Exit(m.Run())
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Command
	}{
		{"assign gamepad", `{"type":"assign","player":1,"device":"gamepad:0"}`, Command{Assign: true, Player: 1, Device: components.Gamepad(0)}},
		{"assign keyboard", `{"type":"assign","player":0,"device":"keyboard:arrows"}`, Command{Assign: true, Player: 0, Device: components.Keyboard(components.Arrows)}},
		{"unassign", `{"type":"unassign","player":2}`, Command{Player: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommand([]byte(tt.raw))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, raw := range []string{
		`not json`,
		`{"type":"assign","player":0,"device":"joystick"}`,
		`{"type":"assign","player":-1,"device":"mouse"}`,
		`{"type":"swap","player":0}`,
	} {
		if _, err := parseCommand([]byte(raw)); err == nil {
			t.Errorf("parseCommand(%s) should fail", raw)
		}
	}
}

// startFeed runs a hub behind a test server and returns a connected client
func startFeed(t *testing.T) (*Hub, *websocket.Conn) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(16, 4)
	go hub.Run(ctx)

	srv := httptest.NewServer(NewServer(hub, "").Handler())
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		cancel()
		srv.Close()
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		cancel()
		srv.Close()
	})

	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	return hub, conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return msg
}

func TestHubForwardsWorldEvents(t *testing.T) {
	hub, conn := startFeed(t)

	w := donburi.NewWorld()
	hub.Attach(w)

	components.AssignmentChanged.Publish(w, components.AssignmentChangedEvent{
		Change:   components.DeviceAssigned,
		PlayerID: 1,
		Device:   components.Gamepad(0),
	})
	components.AssignmentChanged.ProcessEvents(w)

	msg := readMessage(t, conn)
	if msg.Type != "event" || msg.Event != EventDeviceAssigned {
		t.Fatalf("got %+v", msg)
	}
	if msg.Player == nil || *msg.Player != 1 || msg.Device != "gamepad:0" {
		t.Errorf("payload = %+v", msg)
	}

	components.MovementChanged.Publish(w, components.MovementChangedEvent{
		PlayerID:  0,
		Direction: math.Vec2{X: 0, Y: 1},
		Source:    components.Keyboard(components.WASD),
	})
	components.MovementChanged.ProcessEvents(w)

	msg2 := readMessage(t, conn)
	if msg2.Event != EventMovement || msg2.Direction == nil || msg2.Direction.Y != 1 || msg2.Source != "keyboard:wasd" {
		t.Errorf("movement = %+v", msg2)
	}
	if msg2.Seq <= msg.Seq {
		t.Errorf("sequence should increase: %d then %d", msg.Seq, msg2.Seq)
	}
}

func TestClientCommandsReachTheWorld(t *testing.T) {
	hub, conn := startFeed(t)

	if err := conn.WriteJSON(ClientMessage{Type: "assign", Player: 1, Device: "gamepad:0"}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return len(hub.commands) == 1 })

	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateInputState(e, cfg.DefaultInput())

	var got []components.AssignmentRequestEvent
	components.AssignmentRequested.Subscribe(e.World, func(_ donburi.World, ev components.AssignmentRequestEvent) {
		got = append(got, ev)
	})

	hub.DrainCommands(e)
	components.AssignmentRequested.ProcessEvents(e.World)

	if len(got) != 1 || !got[0].Assign || got[0].PlayerID != 1 || got[0].Device != components.Gamepad(0) {
		t.Errorf("requests = %+v", got)
	}
}

func TestBadCommandIsRejected(t *testing.T) {
	hub, conn := startFeed(t)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"assign","player":0,"device":"joystick"}`)); err != nil {
		t.Fatal(err)
	}

	msg := readMessage(t, conn)
	if msg.Event != EventCommandRejected || msg.Error == "" {
		t.Errorf("got %+v", msg)
	}
	if len(hub.commands) != 0 {
		t.Error("rejected command should not be queued")
	}
}

func TestClientDisconnectUnregisters(t *testing.T) {
	hub, conn := startFeed(t)
	conn.Close()
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestHealth(t *testing.T) {
	hub, _ := startFeed(t)

	rec := httptest.NewRecorder()
	health(hub)(rec, httptest.NewRequest("GET", "/health", nil))

	if got := rec.Body.String(); got != `{"status":"ok","clients":1}` {
		t.Errorf("body = %s", got)
	}
}

func TestShutdownBeforeListen(t *testing.T) {
	srv := NewServer(NewHub(1, 1), "127.0.0.1:0")
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe() }()

	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("ListenAndServe after Shutdown = %v, want ErrServerClosed", err)
		}
	case <-time.After(2 * time.Second):
		_ = srv.httpServer.Close()
		t.Fatal("server kept listening after Shutdown")
	}
}
