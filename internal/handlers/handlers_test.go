package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/farmlink/farmlink-api/internal/cache"
	"github.com/farmlink/farmlink-api/internal/database"
	"github.com/farmlink/farmlink-api/internal/middleware"
	"github.com/farmlink/farmlink-api/internal/models"
	"github.com/farmlink/farmlink-api/internal/repository"
	"github.com/farmlink/farmlink-api/internal/services"
	"github.com/farmlink/farmlink-api/internal/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	tokens      *token.Service
	authService *services.AuthService
	jobService  *services.JobService
	appService  *services.ApplicationService
}

func setupTestEnv(t *testing.T, enforceTerminal bool) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Profile{},
		&models.Job{},
		&models.JobApplication{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	listCache := cache.NewJobList("")
	profileRepo := repository.NewProfileRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)

	tokens := token.NewService("test-secret", time.Hour)
	authService := services.NewAuthService(profileRepo)
	jobService := services.NewJobService(jobRepo, profileRepo, listCache)
	appService := services.NewApplicationService(appRepo, jobRepo, listCache, enforceTerminal)

	authHandler := NewAuthHandler(authService, tokens)
	jobHandler := NewJobHandler(jobService)
	appHandler := NewApplicationHandler(appService)

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.ResolveIdentity(tokens, true))
	{
		api.POST("/signup", authHandler.Signup)
		api.POST("/login", authHandler.Login)
		api.GET("/jobs", jobHandler.ListJobs)
		api.POST("/jobs", jobHandler.CreateJob)
		api.DELETE("/jobs/:id", jobHandler.DeleteJob)
		api.POST("/apply", appHandler.Apply)
		api.GET("/applications", appHandler.ListApplications)
		api.PUT("/applications/:id", appHandler.UpdateStatus)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:          db,
		router:      r,
		tokens:      tokens,
		authService: authService,
		jobService:  jobService,
		appService:  appService,
	}
}

// doRequest issues a request against the test router. userID is carried in
// the legacy user-id header; empty means anonymous.
func (env testEnv) doRequest(t *testing.T, method, url string, payload any, userID string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("user-id", userID)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func newJSONRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serveRequest(env testEnv, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	User    json.RawMessage `json:"user"`
	Token   string          `json:"token"`
	Job     json.RawMessage `json:"job"`
	Jobs    json.RawMessage `json:"jobs"`

	Applications json.RawMessage `json:"applications"`
	Application  json.RawMessage `json:"application"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	require.Equal(t, http.StatusOK, w.Code, "every endpoint answers 200 with an envelope")

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func createTestProfile(t *testing.T, db *gorm.DB, name string, userType models.UserType) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "hashed",
		Phone:        "555-0100",
		Location:     "Green Valley",
		UserType:     userType,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func createTestJob(t *testing.T, db *gorm.DB, farmerID, title string) *models.Job {
	t.Helper()

	job := &models.Job{
		FarmerID: farmerID,
		Title:    title,
		PayRate:  500,
		Duration: "3 days",
		Location: "Green Valley",
		Status:   models.JobStatusActive,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}
