package handlers

import (
	"net/http"

	"scrim-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ResultHandler handles HTTP requests for published results
type ResultHandler struct {
	resultService service.ResultServiceInterface
}

// NewResultHandler creates a new result handler
func NewResultHandler(resultService service.ResultServiceInterface) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
	}
}

// List handles GET /api/results (optional scheduleId parameter)
// @Summary List results
// @Tags results
// @Produce json
// @Param scheduleId query string false "Schedule ID (UUID) to filter results"
// @Success 200 {array} models.Result "Results"
// @Failure 400 {object} ErrorResponse "Invalid schedule ID"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/results [get]
func (h *ResultHandler) List(c *gin.Context) {
	var scheduleID *uuid.UUID
	if raw := c.Query("scheduleId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid schedule ID"})
			return
		}
		scheduleID = &id
	}

	results, err := h.resultService.GetAll(scheduleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// Get handles GET /api/results/:id
// @Summary Get result by ID
// @Tags results
// @Produce json
// @Param id path string true "Result ID (UUID)"
// @Success 200 {object} models.Result "Result"
// @Failure 400 {object} ErrorResponse "Invalid result ID"
// @Failure 404 {object} ErrorResponse "Result not found"
// @Router /api/results/{id} [get]
func (h *ResultHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "result")
	if !ok {
		return
	}

	result, err := h.resultService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create handles POST /api/admin/results
// @Summary Publish a result
// @Description scheduleId, when given, must reference an existing schedule. date defaults to now.
// @Tags admin
// @Accept json
// @Produce json
// @Param result body service.CreateResultRequest true "Result"
// @Success 201 {object} models.Result "Created result"
// @Failure 400 {object} ErrorResponse "Invalid body or unknown schedule"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security CookieAuth
// @Router /api/admin/results [post]
func (h *ResultHandler) Create(c *gin.Context) {
	var req service.CreateResultRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.resultService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
