package handlers

import (
	"errors"

	"github.com/farmlink/farmlink-api/internal/dto"
	"github.com/farmlink/farmlink-api/internal/middleware"
	"github.com/farmlink/farmlink-api/internal/models"
	"github.com/farmlink/farmlink-api/internal/response"
	"github.com/farmlink/farmlink-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ApplicationHandler coordinates application HTTP endpoints.
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		appService: appService,
	}
}

// Apply records the calling worker's application against a job.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	if userID == "" {
		response.Fail(c, "Must be logged in to apply")
		return
	}

	type ApplyRequest struct {
		JobID      string `json:"jobId" binding:"required"`
		Experience string `json:"experience"`
		Skills     string `json:"skills"`
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request body")
		return
	}

	_, err := h.appService.Apply(c.Request.Context(), userID, req.JobID, services.ApplyInput{
		Experience: req.Experience,
		Skills:     req.Skills,
	})
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Application submitted successfully"})
}

// ListApplications returns every application against the caller's jobs.
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	if userID == "" {
		response.Fail(c, "Must be logged in")
		return
	}

	apps, err := h.appService.ListForPoster(userID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"applications": dto.ToApplicationDTOs(apps)})
}

// UpdateStatus applies the caller's accept/reject decision.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	if userID == "" {
		response.Fail(c, "Must be logged in")
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request body")
		return
	}

	app, err := h.appService.UpdateStatus(userID, c.Param("id"), models.ApplicationStatus(req.Status))
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	response.OK(c, gin.H{"application": dto.ToApplicationDTO(*app)})
}

func respondApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		response.Fail(c, "Must be logged in")
	case errors.Is(err, services.ErrNotFoundOrUnauthorized):
		response.Fail(c, "Application not found")
	case errors.Is(err, services.ErrJobNotFound),
		errors.Is(err, services.ErrAlreadyApplied),
		errors.Is(err, services.ErrInvalidApplicationStatus),
		errors.Is(err, services.ErrTerminalStatus):
		response.Fail(c, err.Error())
	default:
		response.Fail(c, "Internal server error")
	}
}
