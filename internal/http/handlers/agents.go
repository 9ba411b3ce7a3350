package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelgo/internal/repositories"
)

type AgentHandler struct {
	DB *sql.DB
}

func (h AgentHandler) repo() repositories.AgentRepository {
	return repositories.AgentRepository{DB: h.DB}
}

// GET /api/agents (admin)
func (h AgentHandler) List(c *gin.Context) {
	rows, err := h.repo().List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", rows)
}

// GET /api/agents/:id (admin)
func (h AgentHandler) Get(c *gin.Context) {
	agent, err := h.repo().GetByID(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", agent)
}

// GET /api/agents/:id/stats (admin)
func (h AgentHandler) Stats(c *gin.Context) {
	agentID := c.Param("id")

	if _, err := h.repo().GetByID(agentID); err != nil {
		RespondDomainError(c, err)
		return
	}

	stats, err := h.repo().GetStats(agentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "", stats)
}

type createAgentRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	Name           string   `json:"name" validate:"required"`
	Contact        string   `json:"contact"`
	CommissionRate *float64 `json:"commission_rate" validate:"omitempty,min=0,max=100"`
}

// POST /api/agents (admin)
func (h AgentHandler) Create(c *gin.Context) {
	var req createAgentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	agentID, err := h.repo().Create(repositories.NewAgent{
		Email:          req.Email,
		Name:           req.Name,
		Contact:        req.Contact,
		CommissionRate: req.CommissionRate,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	agent, err := h.repo().GetByID(agentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "agent created", agent)
}

// PUT /api/agents/:id (admin)
func (h AgentHandler) Update(c *gin.Context) {
	agentID := c.Param("id")

	var req repositories.AgentUpdate
	if !BindJSONOrError(c, &req) {
		return
	}

	if _, err := h.repo().GetByID(agentID); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := h.repo().Update(agentID, req); err != nil {
		RespondDomainError(c, err)
		return
	}

	agent, err := h.repo().GetByID(agentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "agent updated", agent)
}

// DELETE /api/agents/:id (admin)
func (h AgentHandler) Delete(c *gin.Context) {
	if err := h.repo().Delete(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "agent deleted", nil)
}
