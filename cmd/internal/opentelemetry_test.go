package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	cmdinternal "github.com/sanLimbu/taskboard-api/cmd/internal"
	"github.com/sanLimbu/taskboard-api/internal/envvar"
)

func TestNewOTExporter(t *testing.T) {
	t.Setenv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces")

	handler, err := cmdinternal.NewOTExporter(envvar.New(nil))
	require.NoError(t, err)
	require.NotNil(t, handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}
