package api

import (
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"hostel-allocation-backend/internal/parse"
	"hostel-allocation-backend/internal/store"
)

// BlockResponse represents the aggregated view of one hostel block.
type BlockResponse struct {
	Block        string `json:"block"`
	TotalRooms   int    `json:"totalRooms"`
	TotalBeds    int    `json:"totalBeds"`
	OccupiedBeds int64  `json:"occupiedBeds"`
	MaxFloor     int    `json:"maxFloor"`
}

// GetBlocks handles GET /api/blocks. Rooms are grouped by the block
// component of their room number; numbers that do not follow the block
// convention are grouped under their literal value.
func (h *Handler) GetBlocks(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context(), store.RoomFilter{})
	if err != nil {
		log.Printf("Error listing rooms for block summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	blocks := make(map[string]*BlockResponse)
	for _, room := range rooms {
		key := room.RoomNumber
		floor := 0
		if parsed, err := parse.ParseRoomNumber(room.RoomNumber); err == nil {
			key = parsed.Block
			floor = parsed.Floor
		}

		agg, ok := blocks[key]
		if !ok {
			agg = &BlockResponse{Block: key}
			blocks[key] = agg
		}
		agg.TotalRooms++
		agg.TotalBeds += room.Capacity
		agg.OccupiedBeds += room.Occupied
		if floor > agg.MaxFloor {
			agg.MaxFloor = floor
		}
	}

	response := make([]BlockResponse, 0, len(blocks))
	for _, agg := range blocks {
		response = append(response, *agg)
	}
	sort.Slice(response, func(i, j int) bool {
		return response[i].Block < response[j].Block
	})

	c.JSON(http.StatusOK, response)
}
