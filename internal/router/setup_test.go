package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"spendsmart/internal/config"
	"spendsmart/internal/logger"
	"spendsmart/internal/middleware"
	"spendsmart/internal/testutil"
)

const testSecret = "router-test-secret"

// testApp holds the full application stack for end-to-end tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

type dbPinger struct{ db *gorm.DB }

func (p dbPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test", "fatal")
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	cfg := &config.Config{
		AllowedOrigins: []string{"http://localhost:3000"},
		JWTSecret:      testSecret,
	}

	return &testApp{DB: db, Router: Build(cfg, db, dbPinger{db: db})}
}

// tokenFor signs a bearer token for ownerID.
func tokenFor(t *testing.T, ownerID string) string {
	t.Helper()
	token, err := middleware.GenerateAccessToken(testSecret, "", ownerID, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// mustStatus fails the test unless rec carries the wanted status.
func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONArray parses the response body into a slice.
func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// createExpense posts an expense and returns its id.
func (app *testApp) createExpense(t *testing.T, token, body string) string {
	t.Helper()
	rec := app.request(http.MethodPost, "/api/expenses", body, token)
	mustStatus(t, rec, http.StatusCreated)
	return parseJSON(t, rec)["id"].(string)
}

// createBudget posts a budget and returns its id.
func (app *testApp) createBudget(t *testing.T, token, body string) string {
	t.Helper()
	rec := app.request(http.MethodPost, "/api/budgets", body, token)
	mustStatus(t, rec, http.StatusCreated)
	return parseJSON(t, rec)["id"].(string)
}
