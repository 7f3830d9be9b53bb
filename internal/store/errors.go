// Sentinel errors shared by the store. Handlers compare against these
// with errors.Is to pick the HTTP status for a failed operation.
package store

import "errors"

// ErrDuplicateRoomNumber is returned when creating a room whose number
// is already registered. The match is a case-sensitive exact match.
var ErrDuplicateRoomNumber = errors.New("room number already exists")

// ErrRoomNotFound is returned when an operation references a room ID
// that does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomFull is returned by Allocate when the room already has as many
// allocations as it has beds.
var ErrRoomFull = errors.New("room is fully occupied")
