package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestKind(t *testing.T) {
	cases := map[string]string{
		"/":                    KindPage,
		"/vehicles":            KindPage,
		"/control/:id/edit":    KindPage,
		"/control/table":       KindFragment,
		"/drivers/table":       KindFragment,
		"/control/:id/details": KindFragment,
		"/static/*filepath":    KindStatic,
		"/metrics":             KindService,
		"/health":              KindService,
		"":                     KindPage,
	}
	for route, kind := range cases {
		assert.Equal(t, kind, RequestKind(route), route)
	}
}

func TestPrometheusMiddlewareCountsByKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/vehicles/table", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/control/table", func(c *gin.Context) { c.Status(499) })

	fragments := ConsoleRequestsTotal.WithLabelValues(KindFragment, http.MethodGet, "/vehicles/table", "200")
	aborted := ConsoleAbortedTotal.WithLabelValues("/control/table")
	beforeFragments := testutil.ToFloat64(fragments)
	beforeAborted := testutil.ToFloat64(aborted)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/vehicles/table", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/control/table", nil))

	assert.Equal(t, beforeFragments+1, testutil.ToFloat64(fragments))
	assert.Equal(t, beforeAborted+1, testutil.ToFloat64(aborted))
}
