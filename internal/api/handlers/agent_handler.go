package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/secondli/secondli-be/internal/models"
	"github.com/secondli/secondli-be/internal/storage"
)

// AgentHandler handles HTTP requests for agent directories.
type AgentHandler struct {
	store storage.Store
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(store storage.Store) *AgentHandler {
	return &AgentHandler{store: store}
}

// agentContact is the slice of the owning user exposed on agent responses.
type agentContact struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

type enrichedAgent struct {
	models.Agent
	User *agentContact `json:"user"`
}

type agentDetails struct {
	enrichedAgent
	Properties []models.Property `json:"properties"`
}

// List handles GET /agents, enriching each profile with the owning user's
// contact details. A missing user leaves the contact null.
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	agents := h.store.ListAgents(storage.Page{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	})

	enriched := make([]enrichedAgent, 0, len(agents))
	for _, agent := range agents {
		enriched = append(enriched, h.enrich(agent))
	}
	respondJSON(w, http.StatusOK, enriched)
}

// Get handles GET /agents/{id}: the profile, its user contact and the
// listings owned by the agent's user.
func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Agent not found")
		return
	}

	agent, ok := h.store.GetAgent(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Agent not found")
		return
	}

	respondJSON(w, http.StatusOK, agentDetails{
		enrichedAgent: h.enrich(agent),
		Properties:    h.store.ListProperties(storage.PropertyFilter{OwnerID: agent.UserID}),
	})
}

func (h *AgentHandler) enrich(agent models.Agent) enrichedAgent {
	out := enrichedAgent{Agent: agent}
	if user, ok := h.store.GetUser(agent.UserID); ok {
		out.User = &agentContact{FullName: user.FullName, Email: user.Email, Phone: user.Phone}
	}
	return out
}
