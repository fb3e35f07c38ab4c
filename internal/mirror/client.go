package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/farmlink/farmlink-api/internal/dto"
)

// APIError is a failure the server signaled in-band through the envelope.
// The transport succeeded; the operation did not.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is a typed HTTP client for the marketplace API. Every response is
// an HTTP 200 envelope; success:false is converted into an *APIError.
type Client struct {
	baseURL string
	http    *http.Client

	token  string
	userID string
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetIdentity records the caller identity used on subsequent requests. A
// bearer token takes precedence; the raw user id covers the legacy header
// contract.
func (c *Client) SetIdentity(userID, token string) {
	c.userID = userID
	c.token = token
}

// SignupParams carries the signup form fields.
type SignupParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	UserType string `json:"userType"`
	Password string `json:"password"`
}

// Signup registers a profile and adopts the returned identity.
func (c *Client) Signup(ctx context.Context, params SignupParams) (dto.UserDTO, error) {
	var out struct {
		User  dto.UserDTO `json:"user"`
		Token string      `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/signup", params, &out); err != nil {
		return dto.UserDTO{}, err
	}

	c.SetIdentity(out.User.ID, out.Token)
	return out.User, nil
}

// Login authenticates and adopts the returned identity.
func (c *Client) Login(ctx context.Context, email, password string) (dto.UserDTO, error) {
	payload := map[string]string{"email": email, "password": password}

	var out struct {
		User  dto.UserDTO `json:"user"`
		Token string      `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", payload, &out); err != nil {
		return dto.UserDTO{}, err
	}

	c.SetIdentity(out.User.ID, out.Token)
	return out.User, nil
}

// ListJobs fetches the full job list.
func (c *Client) ListJobs(ctx context.Context) ([]dto.JobDTO, error) {
	var out struct {
		Jobs []dto.JobDTO `json:"jobs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/jobs", nil, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

// CreateJobParams carries the job posting form fields.
type CreateJobParams struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	SkillsRequired string `json:"skillsRequired,omitempty"`
	TimeSlot       string `json:"timeSlot,omitempty"`
	Duration       string `json:"duration"`
	PayRate        int    `json:"payRate"`
}

// CreateJob publishes a job and returns the canonical record.
func (c *Client) CreateJob(ctx context.Context, params CreateJobParams) (dto.JobDTO, error) {
	var out struct {
		Job dto.JobDTO `json:"job"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/jobs", params, &out); err != nil {
		return dto.JobDTO{}, err
	}
	return out.Job, nil
}

// DeleteJob removes one of the caller's jobs.
func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	return c.do(ctx, http.MethodDelete, "/api/jobs/"+jobID, nil, nil)
}

// Apply submits an application to the given job.
func (c *Client) Apply(ctx context.Context, jobID string) error {
	payload := map[string]string{"jobId": jobID}
	return c.do(ctx, http.MethodPost, "/api/apply", payload, nil)
}

// ListApplications fetches all applications against the caller's jobs.
func (c *Client) ListApplications(ctx context.Context) ([]dto.ApplicationDTO, error) {
	var out struct {
		Applications []dto.ApplicationDTO `json:"applications"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/applications", nil, &out); err != nil {
		return nil, err
	}
	return out.Applications, nil
}

// UpdateApplicationStatus applies an accept/reject decision and returns the
// canonical updated record.
func (c *Client) UpdateApplicationStatus(ctx context.Context, appID, status string) (dto.ApplicationDTO, error) {
	payload := map[string]string{"status": status}

	var out struct {
		Application dto.ApplicationDTO `json:"application"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/applications/"+appID, payload, &out); err != nil {
		return dto.ApplicationDTO{}, err
	}
	return out.Application, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.userID != "" {
		req.Header.Set("user-id", c.userID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !envelope.Success {
		return &APIError{Message: envelope.Error}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode payload: %w", err)
		}
	}
	return nil
}
