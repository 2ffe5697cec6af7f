package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ayash-Bera/goai/backend/internal/generator"
	"github.com/Ayash-Bera/goai/backend/internal/health"
	"github.com/Ayash-Bera/goai/backend/internal/learning"
	"github.com/Ayash-Bera/goai/backend/internal/middleware"
	"github.com/Ayash-Bera/goai/backend/internal/projects"
	"github.com/Ayash-Bera/goai/backend/internal/storage"
	"github.com/Ayash-Bera/goai/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, limiter *middleware.RateLimiter) *gin.Engine {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := storage.NewMemoryStore()
	system := learning.NewSystem(store, logger)
	require.NoError(t, system.Load(context.Background()))

	return NewRouter(Dependencies{
		Generator: generator.NewService(nil, system, nil, generator.Options{UseLearning: true}, logger),
		Learning:  system,
		Projects:  projects.NewRepository(store, logger),
		Health: health.NewHealthChecker(logger, health.Probe{
			Name:  "storage",
			Check: func(ctx context.Context) error { return nil },
		}),
		RateLimiter: limiter,
		Logger:      logger,
	})
}

func perform(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope decodes the standard response with Data left as raw JSON.
func envelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) utils.APIResponse {
	t.Helper()
	var resp struct {
		utils.APIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp.APIResponse
}

func TestGenerate_FallbackProject(t *testing.T) {
	r := newTestRouter(t, nil)

	w := perform(r, http.MethodPost, "/api/generate", gin.H{"prompt": "Crie uma landing page simples para minha padaria"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Files []struct {
			Path    string `json:"path"`
			Content string `json:"content"`
		} `json:"files"`
		Success          bool   `json:"success"`
		DetectedLanguage string `json:"detectedLanguage"`
		Analysis         string `json:"analysis"`
		Method           string `json:"method"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "html", resp.DetectedLanguage)
	assert.NotEmpty(t, resp.Analysis)
	assert.Equal(t, generator.MethodFallback, resp.Method)
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "index.html", resp.Files[0].Path)
	assert.Contains(t, resp.Files[0].Content, "<h1>🚀 Padaria</h1>")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGenerate_RejectsEmptyPrompt(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, body := range []string{`{}`, `{"prompt":"   "}`, `not json`} {
		w := perform(r, http.MethodPost, "/api/generate", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, generator.ErrEmptyPrompt.Error(), resp["error"])
	}
}

func TestCLIStatus(t *testing.T) {
	r := newTestRouter(t, nil)

	w := perform(r, http.MethodGet, "/api/cli-status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isAvailable":false,"message":"`+"Go CLI not found. Using the configured generation API as fallback."+`","features":[]}`, w.Body.String())
}

func TestClassify(t *testing.T) {
	r := newTestRouter(t, nil)

	w := perform(r, http.MethodPost, "/api/classify", gin.H{"prompt": "react native app de delivery"})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Language       string `json:"language"`
		Complexity     string `json:"complexity"`
		EnhancedPrompt string `json:"enhancedPrompt"`
	}
	resp := envelope(t, w, &data)
	assert.True(t, resp.Success)
	assert.Equal(t, "react-native", data.Language)
	assert.Contains(t, data.EnhancedPrompt, `USER PROMPT: "react native app de delivery"`)
	assert.Contains(t, data.EnhancedPrompt, "IDENTIFIED BEST PRACTICES")
}

func TestQualityAudit(t *testing.T) {
	r := newTestRouter(t, nil)

	w := perform(r, http.MethodPost, "/api/quality/audit", gin.H{
		"files": []gin.H{{"path": "index.html", "content": "<html><body><h1>x</h1></body></html>", "language": "html"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Metrics struct {
			Accessibility struct {
				Score int `json:"score"`
			} `json:"accessibility"`
			Overall int `json:"overall"`
		} `json:"metrics"`
		Report string `json:"report"`
	}
	envelope(t, w, &data)
	assert.Equal(t, 65, data.Metrics.Accessibility.Score)
	assert.Equal(t, 79, data.Metrics.Overall)
	assert.Contains(t, data.Report, "# Code Quality Report")
}

func TestLearningFlow(t *testing.T) {
	r := newTestRouter(t, nil)

	w := perform(r, http.MethodPost, "/api/learning/examples", gin.H{
		"prompt":   "landing page moderna",
		"language": "html",
		"code":     "<div style=\"display:flex\">flexbox @media</div>",
		"quality":  9,
		"tags":     []string{"landing"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	envelope(t, w, &created)
	assert.True(t, strings.HasPrefix(created.ID, "example-"))

	w = perform(r, http.MethodGet, "/api/learning/examples?language=html", nil)
	var examples []learning.CodeExample
	envelope(t, w, &examples)
	require.Len(t, examples, 1)
	assert.Equal(t, created.ID, examples[0].ID)

	w = perform(r, http.MethodGet, "/api/learning/examples?language=react", nil)
	examples = nil
	envelope(t, w, &examples)
	assert.Empty(t, examples)

	w = perform(r, http.MethodGet, "/api/learning/patterns", nil)
	var patterns []learning.PatternData
	envelope(t, w, &patterns)
	tags := make([]string, len(patterns))
	for i, p := range patterns {
		tags[i] = p.Pattern
	}
	assert.Contains(t, tags, "css:flexbox")
	assert.Contains(t, tags, "prompt:landing")

	w = perform(r, http.MethodPost, "/api/learning/similar", gin.H{"prompt": "landing page moderna", "language": "html"})
	var similar struct {
		Examples []learning.CodeExample `json:"examples"`
		Total    int                    `json:"total"`
	}
	envelope(t, w, &similar)
	assert.Equal(t, 1, similar.Total)

	w = perform(r, http.MethodPost, "/api/learning/improve", gin.H{"prompt": "landing page moderna"})
	var improved struct {
		Language string `json:"language"`
		Prompt   string `json:"prompt"`
	}
	envelope(t, w, &improved)
	assert.Equal(t, "html", improved.Language)
	assert.Contains(t, improved.Prompt, "CONTEXT FROM BEST EXAMPLES:\n- landing")
}

func TestLearning_RejectsInvalidQuality(t *testing.T) {
	r := newTestRouter(t, nil)

	w := perform(r, http.MethodPost, "/api/learning/examples", gin.H{
		"prompt": "x", "language": "html", "code": "<p>", "quality": 11,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, envelope(t, w, nil).Success)
}

func TestProjectsCRUD(t *testing.T) {
	r := newTestRouter(t, nil)

	w := perform(r, http.MethodPost, "/api/projects", gin.H{
		"name":  "Padaria",
		"files": []gin.H{{"path": "index.html", "content": "<h1>Padaria</h1>", "language": "html"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	envelope(t, w, &created)
	require.NotEmpty(t, created.ID)

	w = perform(r, http.MethodPut, "/api/projects/"+created.ID, gin.H{"description": "pães artesanais"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated projects.Project
	envelope(t, w, &updated)
	assert.Equal(t, "pães artesanais", updated.Description)
	assert.Equal(t, "Padaria", updated.Name)

	w = perform(r, http.MethodGet, "/api/projects/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/api/projects/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "goai-projects.json")
	exported := w.Body.String()

	w = perform(r, http.MethodDelete, "/api/projects/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/api/projects/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(r, http.MethodPost, "/api/projects/import", exported)
	require.Equal(t, http.StatusOK, w.Code)
	var result projects.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Imported)

	w = perform(r, http.MethodGet, "/api/projects", nil)
	var list []projects.Project
	envelope(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestProjectsImport_InvalidFormat(t *testing.T) {
	r := newTestRouter(t, nil)

	w := perform(r, http.MethodPost, "/api/projects/import", "{broken")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"imported":0,"errors":["invalid file format"]}`, w.Body.String())
}

func TestDeployConfig(t *testing.T) {
	r := newTestRouter(t, nil)

	w := perform(r, http.MethodGet, "/api/deploy/config?platform=netlify", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		File   string `json:"file"`
		Config string `json:"config"`
	}
	envelope(t, w, &data)
	assert.Equal(t, "netlify.toml", data.File)
	assert.Contains(t, data.Config, "[build]")

	w = perform(r, http.MethodGet, "/api/deploy/config?platform=heroku", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, nil)

	w := perform(r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report health.OverallHealth
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, health.StatusHealthy, report.Status)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	perform(r, http.MethodGet, "/api/cli-status", nil)
	w = perform(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goai_http_requests_total")
}

func TestRateLimitAppliesToAPI(t *testing.T) {
	r := newTestRouter(t, middleware.NewRateLimiter(1))

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/api/cli-status", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(r, http.MethodGet, "/api/cli-status", nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/health", nil).Code)
}

type stubCacheStats struct {
	stats map[string]interface{}
}

func (s stubCacheStats) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	return s.stats, nil
}

func TestCacheStats(t *testing.T) {
	w := perform(newTestRouter(t, nil), http.MethodGet, "/api/cache/stats", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	r := NewRouter(Dependencies{
		Health:     health.NewHealthChecker(logger),
		CacheStats: stubCacheStats{stats: map[string]interface{}{"total_keys": 3, "hits": "12"}},
		Logger:     logger,
	})

	w = perform(r, http.MethodGet, "/api/cache/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]interface{}
	envelope(t, w, &stats)
	assert.Equal(t, float64(3), stats["total_keys"])
	assert.Equal(t, "12", stats["hits"])
}
