package handlers

import (
	"net/http"

	"scrim-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler handles HTTP requests for scrim schedules
type ScheduleHandler struct {
	scheduleService service.ScheduleServiceInterface
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService service.ScheduleServiceInterface) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// List handles GET /api/schedules
// @Summary List schedules
// @Tags schedules
// @Produce json
// @Success 200 {array} models.Schedule "Schedules"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	schedules, err := h.scheduleService.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// Get handles GET /api/schedules/:id
// @Summary Get schedule by ID
// @Tags schedules
// @Produce json
// @Param id path string true "Schedule ID (UUID)"
// @Success 200 {object} models.Schedule "Schedule"
// @Failure 400 {object} ErrorResponse "Invalid schedule ID"
// @Failure 404 {object} ErrorResponse "Schedule not found"
// @Router /api/schedules/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "schedule")
	if !ok {
		return
	}

	schedule, err := h.scheduleService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// Create handles POST /api/admin/schedules
// @Summary Create a schedule
// @Description maxTeams defaults to 16 and status to upcoming
// @Tags admin
// @Accept json
// @Produce json
// @Param schedule body service.CreateScheduleRequest true "Schedule"
// @Success 201 {object} models.Schedule "Created schedule"
// @Failure 400 {object} ErrorResponse "Invalid body"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security CookieAuth
// @Router /api/admin/schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req service.CreateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := h.scheduleService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// Update handles PATCH /api/admin/schedules/:id
// @Summary Update a schedule
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID (UUID)"
// @Param schedule body service.UpdateScheduleRequest true "Fields to change"
// @Success 200 {object} models.Schedule "Updated schedule"
// @Failure 400 {object} ErrorResponse "Invalid body"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Schedule not found"
// @Security CookieAuth
// @Router /api/admin/schedules/{id} [patch]
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "schedule")
	if !ok {
		return
	}

	var req service.UpdateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := h.scheduleService.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}
