package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/farmlink/farmlink-api/internal/dto"
	"github.com/farmlink/farmlink-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestApplicationHandler_Apply(t *testing.T) {
	env := setupTestEnv(t, false)

	farmer := createTestProfile(t, env.db, "farmer1", models.UserTypeFarmer)
	worker := createTestProfile(t, env.db, "worker1", models.UserTypeWorker)
	job := createTestJob(t, env.db, farmer.ID, "Harvest help")

	w := env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{"jobId": job.ID}, worker.ID)
	resp := decodeEnvelope(t, w)
	require.True(t, resp.Success)
	require.Equal(t, "Application submitted successfully", resp.Message)

	var app models.JobApplication
	require.NoError(t, env.db.First(&app).Error)
	require.Equal(t, job.ID, app.JobID)
	require.Equal(t, worker.ID, app.WorkerID)
	require.Equal(t, models.ApplicationStatusPending, app.Status)
}

func TestApplicationHandler_Apply_Duplicate(t *testing.T) {
	env := setupTestEnv(t, false)

	farmer := createTestProfile(t, env.db, "farmer1", models.UserTypeFarmer)
	worker := createTestProfile(t, env.db, "worker1", models.UserTypeWorker)
	job := createTestJob(t, env.db, farmer.ID, "Harvest help")

	w := env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{"jobId": job.ID}, worker.ID)
	require.True(t, decodeEnvelope(t, w).Success)

	w = env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{"jobId": job.ID}, worker.ID)
	resp := decodeEnvelope(t, w)
	require.False(t, resp.Success)
	require.Equal(t, "already applied for this job", resp.Error)

	// The rejected duplicate created no second row
	var count int64
	require.NoError(t, env.db.Model(&models.JobApplication{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestApplicationHandler_Apply_UnknownJob(t *testing.T) {
	env := setupTestEnv(t, false)

	worker := createTestProfile(t, env.db, "worker1", models.UserTypeWorker)

	payload := map[string]string{"jobId": "00000000-0000-0000-0000-000000000000"}
	w := env.doRequest(t, http.MethodPost, "/api/apply", payload, worker.ID)
	resp := decodeEnvelope(t, w)
	require.False(t, resp.Success)
	require.Equal(t, "job not found", resp.Error)
}

func TestApplicationHandler_Apply_Anonymous(t *testing.T) {
	env := setupTestEnv(t, false)

	farmer := createTestProfile(t, env.db, "farmer1", models.UserTypeFarmer)
	job := createTestJob(t, env.db, farmer.ID, "Harvest help")

	w := env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{"jobId": job.ID}, "")
	resp := decodeEnvelope(t, w)
	require.False(t, resp.Success)
	require.Equal(t, "Must be logged in to apply", resp.Error)
}

func TestApplicationHandler_ApplicationCountTracksRows(t *testing.T) {
	env := setupTestEnv(t, false)

	farmer := createTestProfile(t, env.db, "farmer1", models.UserTypeFarmer)
	workerA := createTestProfile(t, env.db, "workerA", models.UserTypeWorker)
	workerB := createTestProfile(t, env.db, "workerB", models.UserTypeWorker)
	job := createTestJob(t, env.db, farmer.ID, "Harvest help")

	listCounts := func() int {
		w := env.doRequest(t, http.MethodGet, "/api/jobs", nil, "")
		resp := decodeEnvelope(t, w)
		var jobs []dto.JobDTO
		require.NoError(t, json.Unmarshal(resp.Jobs, &jobs))
		require.Len(t, jobs, 1)
		return jobs[0].Applications
	}

	require.Equal(t, 0, listCounts())

	w := env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{"jobId": job.ID}, workerA.ID)
	require.True(t, decodeEnvelope(t, w).Success)
	require.Equal(t, 1, listCounts())

	w = env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{"jobId": job.ID}, workerB.ID)
	require.True(t, decodeEnvelope(t, w).Success)
	require.Equal(t, 2, listCounts())

	// Rejected duplicate does not move the count
	w = env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{"jobId": job.ID}, workerA.ID)
	require.False(t, decodeEnvelope(t, w).Success)
	require.Equal(t, 2, listCounts())

	// The denormalized column was recomputed as well
	var stored models.Job
	require.NoError(t, env.db.First(&stored, "id = ?", job.ID).Error)
	require.Equal(t, 2, stored.ApplicationCount)
}

func TestApplicationHandler_ListApplications(t *testing.T) {
	env := setupTestEnv(t, false)

	farmer := createTestProfile(t, env.db, "farmer1", models.UserTypeFarmer)
	otherFarmer := createTestProfile(t, env.db, "farmer2", models.UserTypeFarmer)
	worker := createTestProfile(t, env.db, "worker1", models.UserTypeWorker)

	job := createTestJob(t, env.db, farmer.ID, "Harvest help")
	otherJob := createTestJob(t, env.db, otherFarmer.ID, "Fence repair")

	for _, jobID := range []string{job.ID, otherJob.ID} {
		w := env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{
			"jobId":      jobID,
			"experience": "2 seasons",
			"skills":     "harvesting",
		}, worker.ID)
		require.True(t, decodeEnvelope(t, w).Success)
	}

	w := env.doRequest(t, http.MethodGet, "/api/applications", nil, farmer.ID)
	resp := decodeEnvelope(t, w)
	require.True(t, resp.Success)

	var apps []dto.ApplicationDTO
	require.NoError(t, json.Unmarshal(resp.Applications, &apps))
	// Only applications against the caller's own jobs
	require.Len(t, apps, 1)
	require.Equal(t, job.ID, apps[0].JobID)
	require.Equal(t, "Harvest help", apps[0].JobTitle)
	require.Equal(t, "worker1", apps[0].WorkerName)
	require.Equal(t, "555-0100", apps[0].WorkerPhone)
	require.Equal(t, "Green Valley", apps[0].WorkerLocation)
	require.Equal(t, "2 seasons", apps[0].Experience)
	require.Equal(t, models.ApplicationStatusPending, apps[0].Status)
}

func TestApplicationHandler_ListApplications_Anonymous(t *testing.T) {
	env := setupTestEnv(t, false)

	w := env.doRequest(t, http.MethodGet, "/api/applications", nil, "")
	resp := decodeEnvelope(t, w)
	require.False(t, resp.Success)
	require.Equal(t, "Must be logged in", resp.Error)
}

func TestApplicationHandler_UpdateStatus(t *testing.T) {
	env := setupTestEnv(t, false)

	farmer := createTestProfile(t, env.db, "farmer1", models.UserTypeFarmer)
	worker := createTestProfile(t, env.db, "worker1", models.UserTypeWorker)
	job := createTestJob(t, env.db, farmer.ID, "Harvest help")

	w := env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{"jobId": job.ID}, worker.ID)
	require.True(t, decodeEnvelope(t, w).Success)

	var app models.JobApplication
	require.NoError(t, env.db.First(&app).Error)

	w = env.doRequest(t, http.MethodPut, "/api/applications/"+app.ID, map[string]string{"status": "accepted"}, farmer.ID)
	resp := decodeEnvelope(t, w)
	require.True(t, resp.Success)

	var updated dto.ApplicationDTO
	require.NoError(t, json.Unmarshal(resp.Application, &updated))
	require.Equal(t, models.ApplicationStatusAccepted, updated.Status)

	require.NoError(t, env.db.First(&app, "id = ?", app.ID).Error)
	require.Equal(t, models.ApplicationStatusAccepted, app.Status)
}

func TestApplicationHandler_UpdateStatus_NonOwner(t *testing.T) {
	env := setupTestEnv(t, false)

	farmer := createTestProfile(t, env.db, "farmer1", models.UserTypeFarmer)
	other := createTestProfile(t, env.db, "farmer2", models.UserTypeFarmer)
	worker := createTestProfile(t, env.db, "worker1", models.UserTypeWorker)
	job := createTestJob(t, env.db, farmer.ID, "Harvest help")

	w := env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{"jobId": job.ID}, worker.ID)
	require.True(t, decodeEnvelope(t, w).Success)

	var app models.JobApplication
	require.NoError(t, env.db.First(&app).Error)

	w = env.doRequest(t, http.MethodPut, "/api/applications/"+app.ID, map[string]string{"status": "accepted"}, other.ID)
	resp := decodeEnvelope(t, w)
	require.False(t, resp.Success)
	// Missing record and non-owner caller are indistinguishable
	require.Equal(t, "Application not found", resp.Error)

	// The application is unmodified
	require.NoError(t, env.db.First(&app, "id = ?", app.ID).Error)
	require.Equal(t, models.ApplicationStatusPending, app.Status)
}

func TestApplicationHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	env := setupTestEnv(t, false)

	farmer := createTestProfile(t, env.db, "farmer1", models.UserTypeFarmer)
	worker := createTestProfile(t, env.db, "worker1", models.UserTypeWorker)
	job := createTestJob(t, env.db, farmer.ID, "Harvest help")

	w := env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{"jobId": job.ID}, worker.ID)
	require.True(t, decodeEnvelope(t, w).Success)

	var app models.JobApplication
	require.NoError(t, env.db.First(&app).Error)

	w = env.doRequest(t, http.MethodPut, "/api/applications/"+app.ID, map[string]string{"status": "pending"}, farmer.ID)
	resp := decodeEnvelope(t, w)
	require.False(t, resp.Success)
	require.Equal(t, "status must be accepted or rejected", resp.Error)
}

func TestApplicationHandler_UpdateStatus_PermissiveOverwrite(t *testing.T) {
	env := setupTestEnv(t, false)

	farmer := createTestProfile(t, env.db, "farmer1", models.UserTypeFarmer)
	worker := createTestProfile(t, env.db, "worker1", models.UserTypeWorker)
	job := createTestJob(t, env.db, farmer.ID, "Harvest help")

	w := env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{"jobId": job.ID}, worker.ID)
	require.True(t, decodeEnvelope(t, w).Success)

	var app models.JobApplication
	require.NoError(t, env.db.First(&app).Error)

	w = env.doRequest(t, http.MethodPut, "/api/applications/"+app.ID, map[string]string{"status": "accepted"}, farmer.ID)
	require.True(t, decodeEnvelope(t, w).Success)

	// Default policy allows re-deciding an already-terminal application
	w = env.doRequest(t, http.MethodPut, "/api/applications/"+app.ID, map[string]string{"status": "rejected"}, farmer.ID)
	resp := decodeEnvelope(t, w)
	require.True(t, resp.Success)

	require.NoError(t, env.db.First(&app, "id = ?", app.ID).Error)
	require.Equal(t, models.ApplicationStatusRejected, app.Status)
}

func TestApplicationHandler_UpdateStatus_TerminalEnforced(t *testing.T) {
	env := setupTestEnv(t, true)

	farmer := createTestProfile(t, env.db, "farmer1", models.UserTypeFarmer)
	worker := createTestProfile(t, env.db, "worker1", models.UserTypeWorker)
	job := createTestJob(t, env.db, farmer.ID, "Harvest help")

	w := env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{"jobId": job.ID}, worker.ID)
	require.True(t, decodeEnvelope(t, w).Success)

	var app models.JobApplication
	require.NoError(t, env.db.First(&app).Error)

	w = env.doRequest(t, http.MethodPut, "/api/applications/"+app.ID, map[string]string{"status": "accepted"}, farmer.ID)
	require.True(t, decodeEnvelope(t, w).Success)

	w = env.doRequest(t, http.MethodPut, "/api/applications/"+app.ID, map[string]string{"status": "rejected"}, farmer.ID)
	resp := decodeEnvelope(t, w)
	require.False(t, resp.Success)
	require.Equal(t, "application status can no longer be changed", resp.Error)

	require.NoError(t, env.db.First(&app, "id = ?", app.ID).Error)
	require.Equal(t, models.ApplicationStatusAccepted, app.Status)
}

func TestApplicationHandler_ListApplications_MostRecentFirst(t *testing.T) {
	env := setupTestEnv(t, false)

	farmer := createTestProfile(t, env.db, "farmer1", models.UserTypeFarmer)
	workerA := createTestProfile(t, env.db, "workerA", models.UserTypeWorker)
	workerB := createTestProfile(t, env.db, "workerB", models.UserTypeWorker)
	job := createTestJob(t, env.db, farmer.ID, "Harvest help")

	for _, worker := range []*models.Profile{workerA, workerB} {
		w := env.doRequest(t, http.MethodPost, "/api/apply", map[string]string{"jobId": job.ID}, worker.ID)
		require.True(t, decodeEnvelope(t, w).Success)
	}

	// Push workerB's application later in time
	require.NoError(t, env.db.Model(&models.JobApplication{}).
		Where("worker_id = ?", workerB.ID).
		UpdateColumn("created_at", time.Now().Add(time.Hour)).Error)

	w := env.doRequest(t, http.MethodGet, "/api/applications", nil, farmer.ID)
	resp := decodeEnvelope(t, w)

	var apps []dto.ApplicationDTO
	require.NoError(t, json.Unmarshal(resp.Applications, &apps))
	require.Len(t, apps, 2)
	require.Equal(t, "workerB", apps[0].WorkerName)
	require.Equal(t, "workerA", apps[1].WorkerName)
}
