package model

import "time"

// Room represents a hostel room with a fixed bed capacity.
type Room struct {
	ID                  int64     `gorm:"primaryKey" json:"id"`
	RoomNumber          string    `gorm:"uniqueIndex;size:64;not null" json:"roomNumber"`
	Capacity            int       `gorm:"not null" json:"capacity"`
	HasAC               bool      `gorm:"not null;default:false" json:"hasAC"`
	HasAttachedWashroom bool      `gorm:"not null;default:false" json:"hasAttachedWashroom"`
	CreatedAt           time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	Allocations []Allocation `gorm:"foreignKey:RoomID" json:"-"`
}
