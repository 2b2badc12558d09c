// Package websocket pushes live Quoridor updates to browser and bot clients.
//
// A Hub tracks the clients watching each session (IDs compare
// case-insensitively). Clients connect with ?session=<id>; each gets a uuid
// and a "connected" greeting. After every accepted or rejected action the API
// layer calls BroadcastState, and each client of that session receives:
//
//	{"session_id": "ab12", "event": "state_update",
//	 "game_state": {...}, "action": {"type": "wall", "message": "..."}}
//
// Broadcasts go through a buffered queue drained by Run, so callers never
// block on slow connections. A client whose send buffer is full is dropped.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
package websocket
