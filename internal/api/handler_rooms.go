package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel-allocation-backend/internal/model"
	"hostel-allocation-backend/internal/store"
)

type addRoomRequest struct {
	RoomNumber          string `json:"roomNumber"`
	Capacity            int    `json:"capacity"`
	HasAC               bool   `json:"hasAC"`
	HasAttachedWashroom bool   `json:"hasAttachedWashroom"`
}

// AddRoom handles POST /api/rooms.
func (h *Handler) AddRoom(c *gin.Context) {
	var req addRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	roomNumber := strings.TrimSpace(req.RoomNumber)
	if roomNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room number is required"})
		return
	}
	if req.Capacity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Capacity must be a positive integer"})
		return
	}

	room := model.Room{
		RoomNumber:          roomNumber,
		Capacity:            req.Capacity,
		HasAC:               req.HasAC,
		HasAttachedWashroom: req.HasAttachedWashroom,
	}

	if err := h.store.CreateRoom(c.Request.Context(), &room); err != nil {
		if errors.Is(err, store.ErrDuplicateRoomNumber) {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Room number %q already exists", roomNumber)})
			return
		}
		log.Printf("Error creating room %q: %v", roomNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Room added successfully", "room": room})
}

// ListRooms handles GET /api/rooms. Recognized query parameters:
// minCapacity (rooms with at least that many beds), ac=true,
// washroom=true.
func (h *Handler) ListRooms(c *gin.Context) {
	var filter store.RoomFilter
	if v := c.Query("minCapacity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minCapacity must be a positive integer"})
			return
		}
		filter.MinCapacity = n
	}
	filter.RequireAC = c.Query("ac") == "true"
	filter.RequireWashroom = c.Query("washroom") == "true"

	rooms, err := h.store.ListRooms(c.Request.Context(), filter)
	if err != nil {
		log.Printf("Error listing rooms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// ListAvailableRooms handles GET /api/rooms/available. The "type"
// parameter is the exact room capacity (1-seater, 2-seater, ...); one
// free bed is always enough since a single student is being placed.
func (h *Handler) ListAvailableRooms(c *gin.Context) {
	filter := store.AvailabilityFilter{BedsNeeded: 1}
	if v := c.Query("type"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be a positive integer"})
			return
		}
		filter.Capacity = n
	}
	filter.RequireAC = c.Query("ac") == "true"
	filter.RequireWashroom = c.Query("washroom") == "true"

	rooms, err := h.store.SearchAvailableRooms(c.Request.Context(), filter)
	if err != nil {
		log.Printf("Error searching rooms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// RemoveRoom handles DELETE /api/rooms/:id. Allocations for the room
// are removed in the same transaction; deleting an unknown room still
// succeeds.
func (h *Handler) RemoveRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	if err := h.store.DeleteRoom(c.Request.Context(), roomID); err != nil {
		log.Printf("Error deleting room %d: %v", roomID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
