package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/secret-duel/internal/config"
	"github.com/palemoky/secret-duel/internal/protocol"
	"github.com/palemoky/secret-duel/internal/protocol/codec"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.Game.DiceSeed = 7
	if mutate != nil {
		mutate(cfg)
	}

	s, err := NewServer(cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(func() {
		ts.Close()
		s.Shutdown()
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// readUntil reads frames until a message of the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, want protocol.MessageType) *protocol.Message {
	t.Helper()
	for {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
		kind, data, err := conn.ReadMessage()
		require.NoError(t, err, "waiting for %s", want)

		var msg *protocol.Message
		if kind == websocket.BinaryMessage {
			msg, err = codec.DecodeBinary(data)
		} else {
			msg, err = codec.Decode(data)
		}
		require.NoError(t, err)
		if msg.Type == want {
			return msg
		}
	}
}

func writeJSON(t *testing.T, conn *websocket.Conn, msgType protocol.MessageType, payload any) {
	t.Helper()
	data, err := codec.Encode(codec.MustNewMessage(msgType, payload))
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func TestServer_ConnectedAndPing(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts)

	connected, err := codec.ParsePayload[protocol.ConnectedPayload](readUntil(t, conn, protocol.MsgConnected))
	require.NoError(t, err)
	assert.NotEmpty(t, connected.PlayerID)

	writeJSON(t, conn, protocol.MsgPing, protocol.PingPayload{Timestamp: 42})
	pong, err := codec.ParsePayload[protocol.PongPayload](readUntil(t, conn, protocol.MsgPong))
	require.NoError(t, err)
	assert.Equal(t, int64(42), pong.ClientTimestamp)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	bad, err := codec.ParsePayload[protocol.ErrorPayload](readUntil(t, conn, protocol.MsgError))
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, bad.Code)
}

func TestServer_GameOverWebSocket(t *testing.T) {
	t.Parallel()
	s, ts := newTestServer(t, nil)
	host := dial(t, ts)
	guest := dial(t, ts)
	readUntil(t, host, protocol.MsgConnected)
	readUntil(t, guest, protocol.MsgConnected)

	writeJSON(t, host, protocol.MsgCreateRoom, protocol.CreateRoomPayload{Name: "Alice", GameKind: "capture"})
	created, err := codec.ParsePayload[protocol.RoomInfoPayload](readUntil(t, host, protocol.MsgRoomCreated))
	require.NoError(t, err)
	require.Len(t, created.Code, 6)

	writeJSON(t, guest, protocol.MsgJoinRoom, protocol.JoinRoomPayload{Code: created.Code, Name: "Bob"})
	readUntil(t, guest, protocol.MsgRoomJoined)

	writeJSON(t, host, protocol.MsgSetSecret, protocol.SetSecretPayload{Room: created.Code, Secret: "alice-secret"})
	readUntil(t, host, protocol.MsgPlayersUpdate)
	writeJSON(t, guest, protocol.MsgSetSecret, protocol.SetSecretPayload{Room: created.Code, Secret: "bob-secret"})
	readUntil(t, guest, protocol.MsgPlayersUpdate)

	writeJSON(t, host, protocol.MsgStartGame, protocol.RoomPayload{Room: created.Code})
	readUntil(t, host, protocol.MsgStartAck)
	readUntil(t, guest, protocol.MsgStartAck)

	require.Eventually(t, func() bool { return s.roomManager.ActiveGamesCount() == 1 }, time.Second, 10*time.Millisecond)

	// the host drops the connection mid-game; the guest wins by forfeit
	require.NoError(t, host.Close())

	over, err := codec.ParsePayload[protocol.GameOverPayload](readUntil(t, guest, protocol.MsgGameOver))
	require.NoError(t, err)
	assert.Equal(t, "Bob", over.WinnerName)
	assert.Equal(t, "forfeit", over.Reason)

	reveal, err := codec.ParsePayload[protocol.RevealSecretPayload](readUntil(t, guest, protocol.MsgRevealSecret))
	require.NoError(t, err)
	assert.Equal(t, "alice-secret", reveal.Secret)

	assert.Eventually(t, func() bool {
		return s.roomManager.RoomCount() == 0 && s.GetOnlineCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestServer_BinaryFrames(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts)
	readUntil(t, conn, protocol.MsgConnected)

	data, err := codec.EncodeBinary(codec.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{Name: "Bin"}))
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, data))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	kind, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, kind, "replies follow the client's frame kind")

	msg, err := codec.DecodeBinary(raw)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgRoomCreated, msg.Type)

	info, err := codec.ParsePayload[protocol.RoomInfoPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "race", info.GameKind)
}

func TestServer_Health(t *testing.T) {
	t.Parallel()
	s, ts := newTestServer(t, nil)
	dial(t, ts)

	require.Eventually(t, func() bool { return s.GetOnlineCount() == 1 }, time.Second, 10*time.Millisecond)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var status HealthStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, 1, status.Online)
	assert.Zero(t, status.Rooms)
}

func TestServer_RejectsConnections(t *testing.T) {
	t.Parallel()
	url := func(ts *httptest.Server) string { return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" }

	t.Run("origin", func(t *testing.T) {
		t.Parallel()
		_, ts := newTestServer(t, func(c *config.Config) {
			c.Server.AllowedOrigins = []string{"http://good.example"}
		})
		header := http.Header{"Origin": []string{"http://evil.example"}}
		_, resp, err := websocket.DefaultDialer.Dial(url(ts), header)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("maintenance", func(t *testing.T) {
		t.Parallel()
		s, ts := newTestServer(t, nil)
		s.EnterMaintenanceMode()
		_, resp, err := websocket.DefaultDialer.Dial(url(ts), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("max connections", func(t *testing.T) {
		t.Parallel()
		_, ts := newTestServer(t, func(c *config.Config) { c.Server.MaxConnections = 1 })
		dial(t, ts)
		_, resp, err := websocket.DefaultDialer.Dial(url(ts), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestNewServer_Redis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = mr.Addr()

	s, err := NewServer(cfg)
	require.NoError(t, err)
	require.NotNil(t, s.redis)
	s.Shutdown()

	cfg.Redis.Addr = "127.0.0.1:1"
	_, err = NewServer(cfg)
	assert.Error(t, err)
}

func TestGracefulShutdown_NoActiveGames(t *testing.T) {
	t.Parallel()
	s, err := NewServer(config.Default())
	require.NoError(t, err)

	start := time.Now()
	s.GracefulShutdown(time.Minute)
	assert.True(t, s.IsMaintenanceMode())
	assert.Less(t, time.Since(start), 5*time.Second)
}
