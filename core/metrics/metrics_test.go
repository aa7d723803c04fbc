package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"metra-api/core/constants"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubsystemSanitizesServiceName(t *testing.T) {
	assert.Equal(t, "metra_api", subsystem("metra-api"))
	assert.Equal(t, "plain", subsystem("plain"))
	assert.Equal(t, "svc_v2", subsystem("svc.v2"))
}

// Registration must not panic for the real service name, which contains a
// hyphen that is illegal in metric names.
func TestNewRegistersWithServiceName(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m = New(constants.ServiceName)
	})

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	count := testutil.ToFloat64(m.RequestCounter.WithLabelValues(http.MethodGet, "/ping", "200"))
	assert.Equal(t, 1.0, count)
}
