package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/secondli/secondli-be/internal/models"
	"github.com/secondli/secondli-be/internal/storage"
)

// CommunityHandler handles HTTP requests for community pages.
type CommunityHandler struct {
	store storage.Store
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(store storage.Store) *CommunityHandler {
	return &CommunityHandler{store: store}
}

// CreateCommunityPayload defines the structure for community creation.
type CreateCommunityPayload struct {
	Name        string `json:"name" validate:"required"`
	City        string `json:"city" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image"`
	AIInsights  string `json:"aiInsights"`
}

type communityDetails struct {
	models.Community
	Properties []models.Property `json:"properties"`
}

// List handles GET /communities.
func (h *CommunityHandler) List(w http.ResponseWriter, r *http.Request) {
	communities := h.store.ListCommunities(storage.Page{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	})
	respondJSON(w, http.StatusOK, communities)
}

// Get handles GET /communities/{id}, attaching the listings whose city
// matches the community's.
func (h *CommunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Community not found")
		return
	}

	community, ok := h.store.GetCommunity(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Community not found")
		return
	}

	respondJSON(w, http.StatusOK, communityDetails{
		Community:  community,
		Properties: h.store.ListProperties(storage.PropertyFilter{City: community.City}),
	})
}

// Create handles POST /communities. The admin gate lives in the route table.
func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateCommunityPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	community := h.store.CreateCommunity(storage.NewCommunity{
		Name:        payload.Name,
		City:        payload.City,
		Description: payload.Description,
		Image:       payload.Image,
		AIInsights:  payload.AIInsights,
	})
	respondJSON(w, http.StatusCreated, community)
}
