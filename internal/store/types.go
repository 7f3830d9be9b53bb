package store

import "hostel-allocation-backend/internal/model"

// RoomFilter narrows the general room listing. Zero values impose no
// constraint.
type RoomFilter struct {
	MinCapacity     int
	RequireAC       bool
	RequireWashroom bool
}

// AvailabilityFilter narrows the free-bed search. Capacity, when set,
// is an exact match (a "2-seater" search must not return 3-seaters).
// BedsNeeded defaults to 1.
type AvailabilityFilter struct {
	Capacity        int
	BedsNeeded      int
	RequireAC       bool
	RequireWashroom bool
}

// RoomWithOccupancy is a room annotated with its current allocation
// count. Occupancy is recomputed on every read, never stored.
type RoomWithOccupancy struct {
	model.Room
	Occupied int64 `json:"occupied"`
}

// AvailableRoom additionally carries the number of free beds.
type AvailableRoom struct {
	RoomWithOccupancy
	FreeBeds int64 `json:"freeBeds"`
}

// AllocationRequest carries the validated input for Allocate. The HTTP
// boundary is responsible for trimming and presence checks before the
// store is touched.
type AllocationRequest struct {
	StudentName   string
	StudentNumber string
	RoomID        int64
}

// AllocationResult is the outcome of a successful allocation: the new
// record, the room snapshot it was placed in, and whether that
// allocation took the room's last free bed.
type AllocationResult struct {
	Allocation model.Allocation
	Room       model.Room
	RoomFull   bool
}

// AllocationWithRoom joins an allocation with its room for listing.
type AllocationWithRoom struct {
	model.Allocation
	Room model.Room `json:"room"`
}
