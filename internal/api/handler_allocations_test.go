package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/rooms", map[string]any{
		"roomNumber": "A-101", "capacity": 2, "hasAC": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Room struct {
			ID int64 `json:"id"`
		} `json:"room"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	roomID := created.Room.ID

	t.Run("allocates until the room is full", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/allocations", map[string]any{
			"studentName": "  Asha ", "studentNumber": " S1 ", "roomId": roomID,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Message    string `json:"message"`
			Allocation struct {
				StudentName   string `json:"studentName"`
				StudentNumber string `json:"studentNumber"`
				StudentsCount int    `json:"studentsCount"`
				NeedsAC       bool   `json:"needsAC"`
				NeedsWashroom bool   `json:"needsWashroom"`
			} `json:"allocation"`
			Room struct {
				RoomNumber string `json:"roomNumber"`
			} `json:"room"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Room allocated successfully", resp.Message)
		assert.Equal(t, "Asha", resp.Allocation.StudentName, "student name must be trimmed")
		assert.Equal(t, "S1", resp.Allocation.StudentNumber)
		assert.Equal(t, 1, resp.Allocation.StudentsCount)
		assert.True(t, resp.Allocation.NeedsAC, "amenity snapshot copied from the room")
		assert.Equal(t, "A-101", resp.Room.RoomNumber)

		w = doJSON(t, router, http.MethodPost, "/api/allocations", map[string]any{
			"studentName": "Bo", "studentNumber": "S2", "roomId": roomID,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, router, http.MethodPost, "/api/allocations", map[string]any{
			"studentName": "Cy", "studentNumber": "S3", "roomId": roomID,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error":"Room is fully occupied"}`, w.Body.String())

		// The failed allocation must not have created a record.
		w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/allocations/room/%d", roomID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var allocations []json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &allocations))
		assert.Len(t, allocations, 2)
	})

	t.Run("unknown room yields 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/allocations", map[string]any{
			"studentName": "Asha", "studentNumber": "S1", "roomId": 4242,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Room not found"}`, w.Body.String())
	})

	t.Run("missing fields yield 400 before any store access", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/allocations", map[string]any{
			"studentName": "   ", "studentNumber": "S1", "roomId": roomID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Student name is required"}`, w.Body.String())

		w = doJSON(t, router, http.MethodPost, "/api/allocations", map[string]any{
			"studentName": "Asha", "studentNumber": "", "roomId": roomID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Student number is required"}`, w.Body.String())

		w = doJSON(t, router, http.MethodPost, "/api/allocations", map[string]any{
			"studentName": "Asha", "studentNumber": "S1",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Room selection is required"}`, w.Body.String())
	})
}

func TestListAllocations(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/rooms", map[string]any{
		"roomNumber": "A-101", "capacity": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Room struct {
			ID int64 `json:"id"`
		} `json:"room"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	for _, s := range []string{"Asha", "Bo", "Cy"} {
		w := doJSON(t, router, http.MethodPost, "/api/allocations", map[string]any{
			"studentName": s, "studentNumber": "N-" + s, "roomId": created.Room.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/allocations", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var allocations []struct {
		StudentName string `json:"studentName"`
		Room        struct {
			RoomNumber string `json:"roomNumber"`
		} `json:"room"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &allocations))
	require.Len(t, allocations, 3)
	assert.Equal(t, "Cy", allocations[0].StudentName, "most recent allocation comes first")
	assert.Equal(t, "Asha", allocations[2].StudentName)
	assert.Equal(t, "A-101", allocations[0].Room.RoomNumber)
}
