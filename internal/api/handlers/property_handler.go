package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/secondli/secondli-be/internal/auth"
	"github.com/secondli/secondli-be/internal/models"
	"github.com/secondli/secondli-be/internal/storage"
	ws "github.com/secondli/secondli-be/internal/websocket"
)

// PropertyHandler handles HTTP requests for property listings.
type PropertyHandler struct {
	store storage.Store
	hub   *ws.Hub
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(store storage.Store, hub *ws.Hub) *PropertyHandler {
	return &PropertyHandler{store: store, hub: hub}
}

// SearchPayload defines the structure for search requests. All criteria are
// optional and combine as a conjunction.
type SearchPayload struct {
	Location     string `json:"location"`
	PropertyType string `json:"propertyType"`
	MinPrice     int    `json:"minPrice" validate:"gte=0"`
	MaxPrice     int    `json:"maxPrice" validate:"gte=0"`
	Bedrooms     int    `json:"bedrooms" validate:"gte=0"`
}

// CreatePropertyPayload defines the structure for listing creation.
type CreatePropertyPayload struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	City         string   `json:"city" validate:"required"`
	Price        int      `json:"price" validate:"required,gte=0"`
	Bedrooms     int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int      `json:"bathrooms" validate:"gte=0"`
	Area         int      `json:"area" validate:"required,gte=0"`
	PropertyType string   `json:"propertyType" validate:"required"`
	IsForSale    *bool    `json:"isForSale"`
	Images       []string `json:"images"`
}

// UpdatePropertyPayload defines the structure for partial listing updates.
// Absent fields are left untouched.
type UpdatePropertyPayload struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	Location      *string   `json:"location"`
	City          *string   `json:"city"`
	Price         *int      `json:"price" validate:"omitempty,gte=0"`
	Bedrooms      *int      `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms     *int      `json:"bathrooms" validate:"omitempty,gte=0"`
	Area          *int      `json:"area" validate:"omitempty,gte=0"`
	PropertyType  *string   `json:"propertyType"`
	IsForSale     *bool     `json:"isForSale"`
	IsFeatured    *bool     `json:"isFeatured"`
	Status        *string   `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Rating        *int      `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Images        *[]string `json:"images"`
	AIDescription *string   `json:"aiDescription"`
}

// List handles GET /properties with limit/offset/featured/city query params.
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := storage.PropertyFilter{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
		City:   r.URL.Query().Get("city"),
	}
	if r.URL.Query().Get("featured") == "true" {
		featured := true
		filter.Featured = &featured
	}

	respondJSON(w, http.StatusOK, h.store.ListProperties(filter))
}

// Get handles GET /properties/{id}.
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Property not found")
		return
	}

	property, ok := h.store.GetProperty(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Property not found")
		return
	}
	respondJSON(w, http.StatusOK, property)
}

// Search handles POST /properties/search. It reuses the list filter; search
// results are not paginated.
func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	var payload SearchPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	properties := h.store.ListProperties(storage.PropertyFilter{
		Location:     payload.Location,
		PropertyType: payload.PropertyType,
		MinPrice:     payload.MinPrice,
		MaxPrice:     payload.MaxPrice,
		Bedrooms:     payload.Bedrooms,
	})
	respondJSON(w, http.StatusOK, properties)
}

// Create handles POST /properties. The caller becomes the owner; moderation
// fields start at their defaults.
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "You must be logged in to create a property")
		return
	}

	var payload CreatePropertyPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	isForSale := true
	if payload.IsForSale != nil {
		isForSale = *payload.IsForSale
	}

	property := h.store.CreateProperty(storage.NewProperty{
		Title:        payload.Title,
		Description:  payload.Description,
		Location:     payload.Location,
		City:         payload.City,
		Price:        payload.Price,
		Bedrooms:     payload.Bedrooms,
		Bathrooms:    payload.Bathrooms,
		Area:         payload.Area,
		PropertyType: payload.PropertyType,
		IsForSale:    isForSale,
		Images:       payload.Images,
		OwnerID:      user.ID,
	})

	h.publishActivity(models.EventPropertyCreated, property)
	respondJSON(w, http.StatusCreated, property)
}

// Update handles PUT /properties/{id}: 404 before the ownership check, then
// owner-or-admin, then merge.
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "You must be logged in to update a property")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Property not found")
		return
	}
	property, found := h.store.GetProperty(id)
	if !found {
		respondError(w, http.StatusNotFound, "Property not found")
		return
	}
	if !auth.CanModify(user, property.OwnerID) {
		respondError(w, http.StatusForbidden, "You don't have permission to update this property")
		return
	}

	var payload UpdatePropertyPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, found := h.store.UpdateProperty(id, storage.PropertyUpdate{
		Title:         payload.Title,
		Description:   payload.Description,
		Location:      payload.Location,
		City:          payload.City,
		Price:         payload.Price,
		Bedrooms:      payload.Bedrooms,
		Bathrooms:     payload.Bathrooms,
		Area:          payload.Area,
		PropertyType:  payload.PropertyType,
		IsForSale:     payload.IsForSale,
		IsFeatured:    payload.IsFeatured,
		Status:        payload.Status,
		Rating:        payload.Rating,
		Images:        payload.Images,
		AIDescription: payload.AIDescription,
	})
	if !found {
		respondError(w, http.StatusNotFound, "Property not found")
		return
	}

	h.publishActivity(models.EventPropertyUpdated, updated)
	respondJSON(w, http.StatusOK, updated)
}

// publishActivity records the event and pushes it to the live feed.
func (h *PropertyHandler) publishActivity(eventType string, property models.Property) {
	var message string
	switch eventType {
	case models.EventPropertyCreated:
		message = fmt.Sprintf("New listing in %s: %s", property.City, property.Title)
	case models.EventPropertyUpdated:
		message = fmt.Sprintf("Listing updated: %s", property.Title)
	}
	event := h.store.AddEvent(eventType, message, property.ID)
	h.hub.Publish(property.City, ws.Message{Action: eventType, Payload: event})
}

// queryInt parses an integer query parameter, treating absent or malformed
// values as zero.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
