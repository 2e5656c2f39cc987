package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/geofence"
	"github.com/worktrace-hq/worktrace-backend-go/internal/handler/http/response"
)

// GeofenceHandler defines the geofence zone handler interface
type GeofenceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type geofenceHandlerImpl struct {
	geofenceService geofence.GeofenceService
}

func NewGeofenceHandler(geofenceService geofence.GeofenceService) GeofenceHandler {
	return &geofenceHandlerImpl{geofenceService: geofenceService}
}

// List returns all zones
func (h *geofenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	zones, err := h.geofenceService.ListZones(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, zones)
}

// Create adds a zone
func (h *geofenceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req geofence.CreateZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	zone, err := h.geofenceService.CreateZone(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Zone created", zone)
}

// Update modifies a zone
func (h *geofenceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Zone ID is required", nil)
		return
	}

	var req geofence.UpdateZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	zone, err := h.geofenceService.UpdateZone(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Zone updated", zone)
}
