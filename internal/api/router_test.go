package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	common.Logger = zap.NewNop()
	gin.SetMode(gin.TestMode)
}

func testConfig(apiKey string) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Version: "test",
			Env:     "test",
		},
		OpenRouter: config.OpenRouterConfig{
			APIKey:      apiKey,
			VisionModel: "test/vision",
			TextModel:   "test/text",
		},
		Vision: config.VisionConfig{
			MaxImages:     5,
			MinConfidence: 0.5,
		},
		Recipes: config.RecipesConfig{
			DefaultCount: 3,
			MaxCount:     10,
		},
	}
}

func newTestRouter(t *testing.T, apiKey string) *gin.Engine {
	t.Helper()
	router, err := SetupRouter(testConfig(apiKey), nil, nil)
	require.NoError(t, err)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, "test-key")

	w := doRequest(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])

	w = doRequest(router, http.MethodGet, "/live", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadinessWithoutCredentials(t *testing.T) {
	router := newTestRouter(t, "")

	w := doRequest(router, http.MethodGet, "/ready", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAnalyzeRejectsWrongMethod(t *testing.T) {
	router := newTestRouter(t, "test-key")

	w := doRequest(router, http.MethodGet, "/api/analyze-ingredients", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), common.ErrCodeMethodNotAllowed)
}

func TestAnalyzeWithoutCredentials(t *testing.T) {
	router := newTestRouter(t, "")

	w := doRequest(router, http.MethodPost, "/api/analyze-ingredients",
		`{"imageUrls":["https://img/no-creds"]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "AI provider is not configured")
}

func TestAnalyzeRequiresImageURLs(t *testing.T) {
	router := newTestRouter(t, "test-key")

	w := doRequest(router, http.MethodPost, "/api/analyze-ingredients",
		`{"imageUrls":[]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateRecipesWithoutCredentials(t *testing.T) {
	router := newTestRouter(t, "")

	w := doRequest(router, http.MethodPost, "/api/generate-recipes",
		`{"ingredients":["eggs","milk"]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "AI provider is not configured")
}

func TestSaveRecipeWithoutStore(t *testing.T) {
	router := newTestRouter(t, "test-key")

	w := doRequest(router, http.MethodPost, "/api/recipes/save",
		`{"userId":"u1","recipe":{"title":"Omelette"}}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPreferencesWithoutStore(t *testing.T) {
	router := newTestRouter(t, "test-key")

	// Reads degrade to empty preferences when profiles are disabled.
	w := doRequest(router, http.MethodGet, "/api/profile/u1/preferences", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Writes do not.
	w = doRequest(router, http.MethodPost, "/api/profile/u1/preferences",
		`{"dietary_restrictions":"vegan"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDuplicatePostRejected(t *testing.T) {
	router := newTestRouter(t, "")

	body := `{"imageUrls":["https://img/dedup-probe"]}`
	first := doRequest(router, http.MethodPost, "/api/analyze-ingredients", body)
	second := doRequest(router, http.MethodPost, "/api/analyze-ingredients", body)

	assert.Equal(t, http.StatusInternalServerError, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
