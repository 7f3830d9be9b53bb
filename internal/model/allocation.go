package model

import "time"

// Allocation binds one student to one bed in one room. Records are
// created by the capacity-checked allocate operation and removed only
// when their room is deleted; they are never updated.
type Allocation struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	RoomID        int64  `gorm:"index;not null" json:"roomId"`
	StudentName   string `gorm:"size:128;not null" json:"studentName"`
	StudentNumber string `gorm:"size:64;not null" json:"studentNumber"`
	// StudentsCount is always 1: each allocation consumes exactly one
	// bed, and multi-seat rooms fill up through multiple allocations.
	StudentsCount int `gorm:"not null" json:"studentsCount"`
	// NeedsAC and NeedsWashroom are copied from the room's amenities at
	// allocation time and never re-synced afterwards.
	NeedsAC       bool      `gorm:"not null;default:false" json:"needsAC"`
	NeedsWashroom bool      `gorm:"not null;default:false" json:"needsWashroom"`
	AllocatedAt   time.Time `gorm:"not null;index" json:"allocatedAt"`

	// Associations
	Room Room `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
