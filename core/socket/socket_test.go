package socket_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaykit/relay/core/socket"
)

func dialBridge(t *testing.T, b *socket.Bridge) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := b.Upgrade(w, r); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + b.Path()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires_path", func(t *testing.T) {
		t.Parallel()

		_, err := socket.New(socket.Config{})
		assert.ErrorIs(t, err, socket.ErrMissingPath)
	})

	t.Run("path_is_exposed", func(t *testing.T) {
		t.Parallel()

		b, err := socket.New(socket.Config{Path: "/ws"})
		require.NoError(t, err)
		assert.Equal(t, "/ws", b.Path())
	})
}

func TestUpgrade(t *testing.T) {
	t.Parallel()

	t.Run("decision_hook_refusal_fails_without_switching", func(t *testing.T) {
		t.Parallel()

		b, err := socket.New(socket.Config{
			Path:      "/ws",
			OnUpgrade: func(r *http.Request) (any, bool) { return nil, false },
		})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		err = b.Upgrade(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
		assert.ErrorIs(t, err, socket.ErrUpgradeRefused)
		assert.Empty(t, rec.Header().Get("Upgrade"))
	})

	t.Run("decision_hook_attaches_state", func(t *testing.T) {
		t.Parallel()

		type account struct{ Name string }

		connected := make(chan *socket.Session, 1)
		b, err := socket.New(socket.Config{
			Path: "/ws",
			OnUpgrade: func(r *http.Request) (any, bool) {
				return account{Name: r.URL.Query().Get("user")}, true
			},
			OnConnected: func(s *socket.Session) { connected <- s },
		})
		require.NoError(t, err)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, b.Upgrade(w, r))
		}))
		t.Cleanup(srv.Close)

		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?user=ada"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer conn.Close()

		select {
		case sess := <-connected:
			assert.Equal(t, account{Name: "ada"}, sess.State())
			assert.NotEmpty(t, sess.ID())
		case <-time.After(time.Second):
			t.Fatal("connected hook never fired")
		}
	})
}

func TestMessages(t *testing.T) {
	t.Parallel()

	t.Run("text_frames_decode_opportunistically", func(t *testing.T) {
		t.Parallel()

		received := make(chan socket.Message, 1)
		b, err := socket.New(socket.Config{
			Path:      "/ws",
			OnMessage: func(s *socket.Session, m socket.Message) { received <- m },
		})
		require.NoError(t, err)

		conn := dialBridge(t, b)
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"op":"ping"}`)))

		select {
		case m := <-received:
			assert.False(t, m.IsBinary())
			assert.Equal(t, map[string]any{"op": "ping"}, m.Value)
		case <-time.After(time.Second):
			t.Fatal("message hook never fired")
		}
	})

	t.Run("unparseable_text_falls_back_to_raw", func(t *testing.T) {
		t.Parallel()

		received := make(chan socket.Message, 1)
		b, err := socket.New(socket.Config{
			Path:      "/ws",
			OnMessage: func(s *socket.Session, m socket.Message) { received <- m },
		})
		require.NoError(t, err)

		conn := dialBridge(t, b)
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

		select {
		case m := <-received:
			assert.Nil(t, m.Value)
			assert.Equal(t, "not json", m.Text())
		case <-time.After(time.Second):
			t.Fatal("message hook never fired")
		}
	})

	t.Run("binary_frames_stay_raw", func(t *testing.T) {
		t.Parallel()

		received := make(chan socket.Message, 1)
		b, err := socket.New(socket.Config{
			Path:      "/ws",
			OnMessage: func(s *socket.Session, m socket.Message) { received <- m },
		})
		require.NoError(t, err)

		conn := dialBridge(t, b)
		require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x01, 0x02}))

		select {
		case m := <-received:
			assert.True(t, m.IsBinary())
			assert.Nil(t, m.Value)
			assert.Equal(t, []byte{0x01, 0x02}, m.Data)
		case <-time.After(time.Second):
			t.Fatal("message hook never fired")
		}
	})

	t.Run("send_types_outbound_frames", func(t *testing.T) {
		t.Parallel()

		b, err := socket.New(socket.Config{
			Path: "/ws",
			OnMessage: func(s *socket.Session, m socket.Message) {
				switch m.Text() {
				case "text":
					require.NoError(t, s.Send("plain"))
				case "json":
					require.NoError(t, s.Send(map[string]int{"n": 7}))
				case "binary":
					require.NoError(t, s.Send([]byte{0xAA}))
				}
			},
		})
		require.NoError(t, err)

		conn := dialBridge(t, b)

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("text")))
		frameType, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, websocket.TextMessage, frameType)
		assert.Equal(t, "plain", string(data))

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("json")))
		frameType, data, err = conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, websocket.TextMessage, frameType)
		assert.JSONEq(t, `{"n":7}`, string(data))

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("binary")))
		frameType, data, err = conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, websocket.BinaryMessage, frameType)
		assert.Equal(t, []byte{0xAA}, data)
	})
}

func TestClose(t *testing.T) {
	t.Parallel()

	t.Run("close_hook_fires_on_disconnect", func(t *testing.T) {
		t.Parallel()

		closed := make(chan string, 1)
		b, err := socket.New(socket.Config{
			Path:    "/ws",
			OnClose: func(s *socket.Session) { closed <- s.ID() },
		})
		require.NoError(t, err)

		conn := dialBridge(t, b)
		require.NoError(t, conn.Close())

		select {
		case id := <-closed:
			assert.NotEmpty(t, id)
		case <-time.After(time.Second):
			t.Fatal("close hook never fired")
		}
	})
}
