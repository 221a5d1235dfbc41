package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateReservation(t *testing.T) {
	s := setupTestSrv(t)
	rc := NewReservationController(s)
	eq := seedEquipment(t, s, "Excavator")
	p := seedProject(t, s, "P1")

	w, c := jsonRequest(t, "POST", "/api/reservations", map[string]any{
		"equipment_id":   eq.ID,
		"project_id":     p.ID,
		"reserved_from":  "2024-06-01T08:00:00Z",
		"reserved_until": "2024-06-01T17:00:00Z",
		"notes":          "site A",
	})
	rc.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	reservation, ok := body["reservation"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, eq.ID, reservation["equipment_id"])
	assert.Equal(t, true, reservation["is_active"])
}

func TestCreateReservationConflictEnvelope(t *testing.T) {
	s := setupTestSrv(t)
	rc := NewReservationController(s)
	eq := seedEquipment(t, s, "E1")
	p1 := seedProject(t, s, "P1")
	p2 := seedProject(t, s, "P2")

	w, c := jsonRequest(t, "POST", "/api/reservations", map[string]any{
		"equipment_id":   eq.ID,
		"project_id":     p1.ID,
		"reserved_from":  "2024-06-01T08:00:00Z",
		"reserved_until": "2024-06-01T17:00:00Z",
	})
	rc.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, c = jsonRequest(t, "POST", "/api/reservations", map[string]any{
		"equipment_id":   eq.ID,
		"project_id":     p2.ID,
		"reserved_from":  "2024-06-01T16:00:00Z",
		"reserved_until": "2024-06-01T20:00:00Z",
	})
	rc.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "reservation_conflict", body["error"])
	conflict, ok := body["conflict"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "P1", conflict["project_name"])
	from, err := time.Parse(time.RFC3339, conflict["from"].(string))
	assert.NoError(t, err)
	assert.True(t, from.Equal(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)))
	until, err := time.Parse(time.RFC3339, conflict["until"].(string))
	assert.NoError(t, err)
	assert.True(t, until.Equal(time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC)))
}

func TestCreateReservationInvalidInterval(t *testing.T) {
	s := setupTestSrv(t)
	rc := NewReservationController(s)
	eq := seedEquipment(t, s, "Crane")

	w, c := jsonRequest(t, "POST", "/api/reservations", map[string]any{
		"equipment_id":   eq.ID,
		"reserved_from":  "2024-06-01T17:00:00Z",
		"reserved_until": "2024-06-01T08:00:00Z",
	})
	rc.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "invalid_interval", body["error"])
}

func TestEndReservation(t *testing.T) {
	s := setupTestSrv(t)
	rc := NewReservationController(s)
	eq := seedEquipment(t, s, "Dozer")

	w, c := jsonRequest(t, "POST", "/api/reservations", map[string]any{
		"equipment_id":   eq.ID,
		"reserved_from":  "2030-06-01T08:00:00Z",
		"reserved_until": "2030-06-01T17:00:00Z",
	})
	rc.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)["reservation"].(map[string]any)

	w, c = jsonRequest(t, "POST", "/api/reservations/end", nil)
	c.Params = gin.Params{{Key: "id", Value: created["id"].(string)}}
	rc.End(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	reservation := body["reservation"].(map[string]any)
	assert.Equal(t, false, reservation["is_active"])
}

func TestEndReservationNotFound(t *testing.T) {
	s := setupTestSrv(t)
	rc := NewReservationController(s)

	w, c := jsonRequest(t, "POST", "/api/reservations/end", nil)
	c.Params = gin.Params{{Key: "id", Value: "00000000-0000-0000-0000-000000000000"}}
	rc.End(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "reservation not found", decodeBody(t, w)["error"])
}
