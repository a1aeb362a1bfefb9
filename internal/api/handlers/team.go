package handlers

import (
	"net/http"

	"scrim-portal-backend/internal/auth"
	"scrim-portal-backend/internal/logger"
	"scrim-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles HTTP requests for team operations
type TeamHandler struct {
	teamService service.TeamServiceInterface
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService service.TeamServiceInterface) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// ListApproved handles GET /api/teams
// @Summary List approved teams
// @Description Public roster: only teams an admin has approved
// @Tags teams
// @Produce json
// @Success 200 {array} models.Team "Approved teams"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/teams [get]
func (h *TeamHandler) ListApproved(c *gin.Context) {
	teams, err := h.teamService.GetApproved()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// ListBlocked handles GET /api/teams/blocked
// @Summary List blocked teams
// @Tags teams
// @Produce json
// @Success 200 {array} models.Team "Blocked teams"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/teams/blocked [get]
func (h *TeamHandler) ListBlocked(c *gin.Context) {
	teams, err := h.teamService.GetBlocked()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// ListVIP handles GET /api/teams/vip
// @Summary List VIP teams
// @Description Approved teams flagged as VIP
// @Tags teams
// @Produce json
// @Success 200 {array} models.Team "VIP teams"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/teams/vip [get]
func (h *TeamHandler) ListVIP(c *gin.Context) {
	teams, err := h.teamService.GetVIP()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// GetMine handles GET /api/teams/my
// @Summary Get my team
// @Description The team captained by the logged-in user
// @Tags teams
// @Produce json
// @Success 200 {object} models.Team "Caller's team"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Caller has no team"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security CookieAuth
// @Router /api/teams/my [get]
func (h *TeamHandler) GetMine(c *gin.Context) {
	team, err := h.teamService.GetMine(auth.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// Register handles POST /api/teams
// @Summary Register a team
// @Description Register the caller's team. New teams start pending, non-VIP and without a slot; the caller becomes captain.
// @Tags teams
// @Accept json
// @Produce json
// @Param team body service.RegisterTeamRequest true "Team registration"
// @Success 201 {object} models.Team "Registered team"
// @Failure 400 {object} ErrorResponse "Invalid body or caller already has a team"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security CookieAuth
// @Router /api/teams [post]
func (h *TeamHandler) Register(c *gin.Context) {
	var req service.RegisterTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teamService.Register(auth.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c.Request.Context()).WithField("team_id", team.ID).Info("Team registered")
	c.JSON(http.StatusCreated, team)
}

// AdminList handles GET /api/admin/teams
// @Summary List all teams
// @Description Every team regardless of status, optionally filtered
// @Tags admin
// @Produce json
// @Param status query string false "Team status" Enums(pending, approved, rejected, blocked)
// @Success 200 {array} models.Team "Teams"
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security CookieAuth
// @Router /api/admin/teams [get]
func (h *TeamHandler) AdminList(c *gin.Context) {
	teams, err := h.teamService.GetAll(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// AdminGet handles GET /api/admin/teams/:id
// @Summary Get team by ID
// @Tags admin
// @Produce json
// @Param id path string true "Team ID (UUID)"
// @Success 200 {object} models.Team "Team"
// @Failure 400 {object} ErrorResponse "Invalid team ID"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Security CookieAuth
// @Router /api/admin/teams/{id} [get]
func (h *TeamHandler) AdminGet(c *gin.Context) {
	id, ok := parseID(c, "team")
	if !ok {
		return
	}

	team, err := h.teamService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// AdminUpdate handles PATCH /api/admin/teams/:id
// @Summary Update a team
// @Description Partial update: status, slot, VIP flag or roster fields. "slot": null clears the slot; a slot needs an approved team.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Team ID (UUID)"
// @Param team body service.UpdateTeamRequest true "Fields to change"
// @Success 200 {object} models.Team "Updated team"
// @Failure 400 {object} ErrorResponse "Invalid body or slot rule violated"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security CookieAuth
// @Router /api/admin/teams/{id} [patch]
func (h *TeamHandler) AdminUpdate(c *gin.Context) {
	id, ok := parseID(c, "team")
	if !ok {
		return
	}

	var req service.UpdateTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teamService.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c.Request.Context()).WithField("team_id", team.ID).WithField("status", team.Status).Info("Team updated")
	c.JSON(http.StatusOK, team)
}

// AdminDelete handles DELETE /api/admin/teams/:id
// @Summary Delete a team
// @Description Hard delete. Deleting a missing team also succeeds.
// @Tags admin
// @Param id path string true "Team ID (UUID)"
// @Success 204 "Team deleted"
// @Failure 400 {object} ErrorResponse "Invalid team ID"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security CookieAuth
// @Router /api/admin/teams/{id} [delete]
func (h *TeamHandler) AdminDelete(c *gin.Context) {
	id, ok := parseID(c, "team")
	if !ok {
		return
	}

	if err := h.teamService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c.Request.Context()).WithField("team_id", id).Info("Team deleted")
	c.Status(http.StatusNoContent)
}
