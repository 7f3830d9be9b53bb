package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostel-allocation-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	CreateRoom(ctx context.Context, room *model.Room) error
	ListRooms(ctx context.Context, filter RoomFilter) ([]RoomWithOccupancy, error)
	SearchAvailableRooms(ctx context.Context, filter AvailabilityFilter) ([]AvailableRoom, error)
	DeleteRoom(ctx context.Context, roomID int64) error

	Allocate(ctx context.Context, req AllocationRequest) (*AllocationResult, error)
	ListAllocations(ctx context.Context) ([]AllocationWithRoom, error)
	ListAllocationsByRoom(ctx context.Context, roomID int64) ([]model.Allocation, error)

	OccupancyByRoom(ctx context.Context) (map[int64]int64, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for callers that need raw access,
// such as the subscription handlers and the notification worker.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// CreateRoom inserts a new room. The unique index on room_number is
// the arbiter for duplicates, so a create that loses a concurrent race
// surfaces ErrDuplicateRoomNumber the same way a sequential duplicate
// does.
func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("room number %q: %w", room.RoomNumber, ErrDuplicateRoomNumber)
		}
		return fmt.Errorf("failed to create room %q: %w", room.RoomNumber, err)
	}
	return nil
}

// ListRooms returns rooms matching the filter, ascending by room
// number, each annotated with its current occupancy.
func (s *gormStore) ListRooms(ctx context.Context, filter RoomFilter) ([]RoomWithOccupancy, error) {
	q := s.db.WithContext(ctx).Model(&model.Room{})
	if filter.MinCapacity > 0 {
		q = q.Where("capacity >= ?", filter.MinCapacity)
	}
	if filter.RequireAC {
		q = q.Where("has_ac = ?", true)
	}
	if filter.RequireWashroom {
		q = q.Where("has_attached_washroom = ?", true)
	}

	var rooms []model.Room
	if err := q.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	occupancy, err := s.OccupancyByRoom(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]RoomWithOccupancy, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, RoomWithOccupancy{
			Room:     room,
			Occupied: occupancy[room.ID],
		})
	}
	return result, nil
}

// SearchAvailableRooms returns rooms with at least BedsNeeded free
// beds, ascending by capacity. Capacity, when given, is an exact match.
func (s *gormStore) SearchAvailableRooms(ctx context.Context, filter AvailabilityFilter) ([]AvailableRoom, error) {
	bedsNeeded := int64(filter.BedsNeeded)
	if bedsNeeded <= 0 {
		bedsNeeded = 1
	}

	q := s.db.WithContext(ctx).Model(&model.Room{})
	if filter.Capacity > 0 {
		q = q.Where("capacity = ?", filter.Capacity)
	}
	if filter.RequireAC {
		q = q.Where("has_ac = ?", true)
	}
	if filter.RequireWashroom {
		q = q.Where("has_attached_washroom = ?", true)
	}

	var rooms []model.Room
	if err := q.Order("capacity ASC, room_number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to search rooms: %w", err)
	}

	occupancy, err := s.OccupancyByRoom(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]AvailableRoom, 0, len(rooms))
	for _, room := range rooms {
		occupied := occupancy[room.ID]
		freeBeds := int64(room.Capacity) - occupied
		if freeBeds < bedsNeeded {
			continue
		}
		result = append(result, AvailableRoom{
			RoomWithOccupancy: RoomWithOccupancy{Room: room, Occupied: occupied},
			FreeBeds:          freeBeds,
		})
	}
	return result, nil
}

// DeleteRoom removes a room and, first, every allocation referencing
// it, in a single transaction so no dangling reference window exists.
// Deleting a room that does not exist is not an error.
func (s *gormStore) DeleteRoom(ctx context.Context, roomID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", roomID).Delete(&model.Allocation{}).Error; err != nil {
			return fmt.Errorf("failed to delete allocations for room %d: %w", roomID, err)
		}
		// Room subscriptions die with the room.
		if err := tx.Exec("DELETE FROM subscription_room_mapping WHERE room_id = ?", roomID).Error; err != nil {
			return fmt.Errorf("failed to delete subscription mappings for room %d: %w", roomID, err)
		}
		if err := tx.Delete(&model.Room{}, roomID).Error; err != nil {
			return fmt.Errorf("failed to delete room %d: %w", roomID, err)
		}
		return nil
	})
}

// Allocate places a student in a room. The room row is locked FOR
// UPDATE for the duration of the transaction, serializing allocation
// per room: a concurrent caller blocks on the lock and re-counts after
// the winner commits, so the capacity check cannot be raced past. The
// amenity flags are snapshotted from the room at this instant and
// never re-derived.
func (s *gormStore) Allocate(ctx context.Context, req AllocationRequest) (*AllocationResult, error) {
	var result AllocationResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, req.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("room %d: %w", req.RoomID, ErrRoomNotFound)
			}
			return fmt.Errorf("failed to resolve room %d: %w", req.RoomID, err)
		}

		var occupied int64
		if err := tx.Model(&model.Allocation{}).
			Where("room_id = ?", room.ID).
			Count(&occupied).Error; err != nil {
			return fmt.Errorf("failed to count allocations for room %d: %w", room.ID, err)
		}
		if occupied >= int64(room.Capacity) {
			return fmt.Errorf("room %s: %w", room.RoomNumber, ErrRoomFull)
		}

		allocation := model.Allocation{
			RoomID:        room.ID,
			StudentName:   req.StudentName,
			StudentNumber: req.StudentNumber,
			StudentsCount: 1,
			NeedsAC:       room.HasAC,
			NeedsWashroom: room.HasAttachedWashroom,
			AllocatedAt:   time.Now().UTC(),
		}
		if err := tx.Create(&allocation).Error; err != nil {
			return fmt.Errorf("failed to create allocation in room %d: %w", room.ID, err)
		}

		result = AllocationResult{
			Allocation: allocation,
			Room:       room,
			RoomFull:   occupied+1 >= int64(room.Capacity),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAllocations returns every allocation with its room joined,
// newest first.
func (s *gormStore) ListAllocations(ctx context.Context) ([]AllocationWithRoom, error) {
	var allocations []model.Allocation
	if err := s.db.WithContext(ctx).
		Preload("Room").
		Order("allocated_at DESC, id DESC").
		Find(&allocations).Error; err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	result := make([]AllocationWithRoom, 0, len(allocations))
	for _, a := range allocations {
		result = append(result, AllocationWithRoom{Allocation: a, Room: a.Room})
	}
	return result, nil
}

// ListAllocationsByRoom returns the allocations for one room, newest
// first. An unknown room yields an empty list, matching the behavior
// after a cascade delete.
func (s *gormStore) ListAllocationsByRoom(ctx context.Context, roomID int64) ([]model.Allocation, error) {
	var allocations []model.Allocation
	if err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("allocated_at DESC, id DESC").
		Find(&allocations).Error; err != nil {
		return nil, fmt.Errorf("failed to list allocations for room %d: %w", roomID, err)
	}
	return allocations, nil
}

// OccupancyByRoom aggregates the allocation count per room in a single
// GROUP BY. Rooms without allocations are simply absent from the map.
func (s *gormStore) OccupancyByRoom(ctx context.Context) (map[int64]int64, error) {
	type aggRow struct {
		RoomID   int64
		Occupied int64
	}
	var rows []aggRow
	if err := s.db.WithContext(ctx).
		Model(&model.Allocation{}).
		Select("room_id as room_id, COUNT(*) as occupied").
		Group("room_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate occupancy: %w", err)
	}

	occupancy := make(map[int64]int64, len(rows))
	for _, row := range rows {
		occupancy[row.RoomID] = row.Occupied
	}
	return occupancy, nil
}
