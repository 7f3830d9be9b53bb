package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel-allocation-backend/internal/store"
)

type allocateRequest struct {
	StudentName   string `json:"studentName"`
	StudentNumber string `json:"studentNumber"`
	RoomID        int64  `json:"roomId"`
}

// Allocate handles POST /api/allocations. Validation happens here,
// before the store is touched; the capacity check itself lives in the
// store's transaction.
func (h *Handler) Allocate(c *gin.Context) {
	var req allocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	studentName := strings.TrimSpace(req.StudentName)
	studentNumber := strings.TrimSpace(req.StudentNumber)
	if studentName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student name is required"})
		return
	}
	if studentNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student number is required"})
		return
	}
	if req.RoomID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room selection is required"})
		return
	}

	result, err := h.store.Allocate(c.Request.Context(), store.AllocationRequest{
		StudentName:   studentName,
		StudentNumber: studentNumber,
		RoomID:        req.RoomID,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		case errors.Is(err, store.ErrRoomFull):
			c.JSON(http.StatusConflict, gin.H{"error": "Room is fully occupied"})
		default:
			log.Printf("Error allocating room %d: %v", req.RoomID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if result.RoomFull && h.pool != nil {
		h.pool.Dispatch(result.Room.ID)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Room allocated successfully",
		"allocation": result.Allocation,
		"room":       result.Room,
	})
}

// ListAllocations handles GET /api/allocations. Newest first, each
// with its room joined.
func (h *Handler) ListAllocations(c *gin.Context) {
	allocations, err := h.store.ListAllocations(c.Request.Context())
	if err != nil {
		log.Printf("Error listing allocations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, allocations)
}

// ListAllocationsByRoom handles GET /api/allocations/room/:roomId.
func (h *Handler) ListAllocationsByRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	allocations, err := h.store.ListAllocationsByRoom(c.Request.Context(), roomID)
	if err != nil {
		log.Printf("Error listing allocations for room %d: %v", roomID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, allocations)
}
