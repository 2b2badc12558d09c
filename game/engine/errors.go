package engine

import (
	"errors"
	"fmt"
)

// Rejection kinds. Every rejected action unwraps to exactly one of these.
var (
	ErrOutOfBounds      = errors.New("out of bounds")
	ErrOccupiedTarget   = errors.New("occupied target")
	ErrIllegalAdjacency = errors.New("illegal move")
	ErrNoWallsRemaining = errors.New("no walls remaining")
	ErrWallOverlap      = errors.New("wall overlap")
	ErrPathBlocked      = errors.New("path blocked")
	ErrGameOver         = errors.New("game over")
	ErrUnknownAction    = errors.New("unknown action")
)

var rejectionCodes = map[error]string{
	ErrOutOfBounds:      "out_of_bounds",
	ErrOccupiedTarget:   "occupied_target",
	ErrIllegalAdjacency: "illegal_adjacency",
	ErrNoWallsRemaining: "no_walls_remaining",
	ErrWallOverlap:      "wall_overlap",
	ErrPathBlocked:      "path_blocked",
	ErrGameOver:         "game_over",
	ErrUnknownAction:    "unknown_action",
}

// Rejection is returned by the validators when an action is not legal.
// It is a recoverable outcome: the caller picks another action.
type Rejection struct {
	Err    error
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

// Code returns a stable machine-friendly identifier for the rejection kind
func (r *Rejection) Code() string {
	if code, ok := rejectionCodes[r.Err]; ok {
		return code
	}
	return "rejected"
}

func reject(kind error, format string, args ...any) *Rejection {
	return &Rejection{Err: kind, Reason: fmt.Sprintf(format, args...)}
}

// RejectionCode extracts the code of a rejection, or "" when err is not one
func RejectionCode(err error) string {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Code()
	}
	return ""
}
