package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/summary", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/api/summary", "/api/summary", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	m.Mutation("create")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	require.Contains(t, body, `tracker_http_requests_total{code="200",method="GET",route="/api/summary"} 2`)
	require.Contains(t, body, `tracker_http_requests_total{code="404",method="GET",route="unmatched"} 1`)
	require.Contains(t, body, `tracker_application_mutations_total{operation="create"} 1`)
	require.Contains(t, body, "go_goroutines")
}
