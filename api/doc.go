// Package api exposes Quoridor sessions over HTTP with gorilla/mux.
//
// Sessions:
//   - POST   /api/sessions               {"config_id": "small"}
//   - GET    /api/sessions               ?sort=created|accessed&order=asc|desc&limit=n
//   - GET    /api/sessions/unified       ?sessionIds=a,b or ?configName=classic
//   - GET    /api/sessions/{id}
//   - DELETE /api/sessions/{id}
//
// Play:
//   - GET  /api/sessions/{id}/state        full game state as JSON
//   - GET  /api/sessions/{id}/board        text board, ?ascii=true for 7-bit glyphs
//   - GET  /api/sessions/{id}/legal-moves  pawn targets, wall anchors, path lengths
//   - POST /api/sessions/{id}/move         {"row": 1, "col": 4}
//   - POST /api/sessions/{id}/wall         {"orientation": "h", "row": 3, "col": 4}
//   - POST /api/sessions/{id}/command      {"command": "wall v 2 3"}
//   - POST /api/sessions/{id}/reset
//   - GET  /api/sessions/{id}/history      ?page=1&limit=20&order=desc
//
// Configs:
//   - GET  /api/configs
//   - GET  /api/configs/{name}
//   - POST /api/configs                  a GameConfig body
//
// A rule violation is not an HTTP error. Move, wall and command return 200
// with "success": false plus a stable "code" (wall_overlap, path_blocked, ...)
// and a human "reason". Every action, accepted or not, is pushed to the
// session's websocket clients at /ws?session=<id>.
package api
