package handlers

import (
	"errors"

	"github.com/farmlink/farmlink-api/internal/dto"
	"github.com/farmlink/farmlink-api/internal/middleware"
	"github.com/farmlink/farmlink-api/internal/response"
	"github.com/farmlink/farmlink-api/internal/services"
	"github.com/gin-gonic/gin"
)

// JobHandler coordinates job HTTP endpoints.
type JobHandler struct {
	jobService *services.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
	}
}

// ListJobs returns all jobs, most recent first, with poster contact fields.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobService.ListJobs(c.Request.Context())
	if err != nil {
		response.Fail(c, "Failed to fetch jobs")
		return
	}

	response.OK(c, gin.H{"jobs": jobs})
}

// CreateJob publishes a new job for the calling poster.
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	if userID == "" {
		response.Fail(c, "Must be logged in to post jobs")
		return
	}

	type CreateJobRequest struct {
		Title          string      `json:"title"`
		Description    string      `json:"description"`
		SkillsRequired string      `json:"skillsRequired"`
		TimeSlot       string      `json:"timeSlot"`
		Duration       string      `json:"duration"`
		PayRate        dto.FlexInt `json:"payRate"`
		Location       string      `json:"location"`
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A non-numeric payRate fails decoding before the service sees it.
		if errors.Is(err, dto.ErrNotAnInteger) {
			response.Fail(c, services.ErrInvalidPayRate.Error())
			return
		}
		response.Fail(c, "Invalid request body")
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), userID, services.CreateJobInput{
		Title:          req.Title,
		Description:    req.Description,
		Duration:       req.Duration,
		PayRate:        req.PayRate.Int(),
		TimeSlot:       req.TimeSlot,
		SkillsRequired: req.SkillsRequired,
		Location:       req.Location,
	})
	if err != nil {
		respondJobError(c, err)
		return
	}

	response.OK(c, gin.H{"job": dto.ToJobDTO(*job, 0)})
}

// DeleteJob removes a job owned by the caller along with its applications.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	if userID == "" {
		response.Fail(c, "Must be logged in")
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondJobError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Job deleted"})
}

func respondJobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		response.Fail(c, "Must be logged in to post jobs")
	case errors.Is(err, services.ErrNotFoundOrUnauthorized):
		response.Fail(c, "Job not found")
	case errors.Is(err, services.ErrJobTitleRequired),
		errors.Is(err, services.ErrInvalidPayRate),
		errors.Is(err, services.ErrPosterNotFound):
		response.Fail(c, err.Error())
	default:
		response.Fail(c, "Internal server error")
	}
}
