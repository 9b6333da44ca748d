package site

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bookstore-service/internal/infrastructure/logger"
	"bookstore-service/internal/infrastructure/memory"
	"bookstore-service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r, usecase.NewTaskUseCase(memory.NewTaskRepositoryMemory()), logger.NewNop())
	r.NoRoute(NotFound)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPages(t *testing.T) {
	r := newRouter()

	tests := []struct {
		path   string
		status int
		title  string
	}{
		{"/site/", http.StatusOK, "<h1>Home</h1>"},
		{"/site/about", http.StatusOK, "<h1>About</h1>"},
		{"/site/contact", http.StatusOK, "<h1>Contact</h1>"},
		{"/site/missing", http.StatusNotFound, "<h1>404</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(r, tt.path)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.title)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		})
	}
}

func TestNotFound_OutsideSite(t *testing.T) {
	w := get(newRouter(), "/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Route not found"}`, w.Body.String())
}

func TestTodo(t *testing.T) {
	r := newRouter()

	w := get(r, "/todo/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nothing to do.")

	for _, task := range []string{"buy <milk>", "   "} {
		form := url.Values{"task": {task}}
		req := httptest.NewRequest(http.MethodPost, "/todo/add", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/todo/", w.Header().Get("Location"))
	}

	w = get(r, "/todo/")
	body := w.Body.String()
	assert.Contains(t, body, "<li>buy &lt;milk&gt;</li>")
	assert.NotContains(t, body, "Nothing to do.")
	assert.Equal(t, 1, strings.Count(body, "<li>"))
}
