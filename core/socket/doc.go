// Package socket bridges HTTP requests to WebSocket sessions. A Bridge owns
// one upgrade path and a set of lifecycle hooks; the dispatcher hands it
// requests whose path matches, after the guard pipeline has run.
//
// The upgrade-decision hook can refuse a connection or attach a state value;
// the state is immutable for the life of the session. Outbound sends are
// typed: byte slices go out as binary frames, strings as text, everything
// else as JSON text. Inbound text frames are opportunistically JSON-decoded
// before reaching the message hook.
//
//	bridge, err := socket.New(socket.Config{
//		Path: "/ws",
//		OnMessage: func(s *socket.Session, m socket.Message) {
//			s.Send(map[string]string{"echo": m.Text()})
//		},
//	})
package socket
