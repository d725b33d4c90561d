package rest_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/taskboard-api/internal/rest"
)

func TestNewOpenAPI3(t *testing.T) {
	t.Parallel()

	swagger := rest.NewOpenAPI3()

	require.NotNil(t, swagger.Components)
	require.Contains(t, swagger.Components.SecuritySchemes, "bearerAuth")
	require.Len(t, swagger.Paths, 13)

	protected := swagger.Paths["/tasks/{id}/advance"]
	require.NotNil(t, protected)
	require.NotNil(t, protected.Post.Security)
	require.Len(t, *protected.Post.Security, 1)
}

func TestRegisterOpenAPI(t *testing.T) {
	t.Parallel()

	router := chi.NewRouter()
	rest.RegisterOpenAPI(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		res, err := srv.Client().Get(srv.URL + "/openapi3.json")
		require.NoError(t, err)

		defer res.Body.Close()

		require.Equal(t, http.StatusOK, res.StatusCode)

		var doc struct {
			OpenAPI    string                     `json:"openapi"`
			Paths      map[string]json.RawMessage `json:"paths"`
			Components struct {
				SecuritySchemes map[string]json.RawMessage `json:"securitySchemes"`
			} `json:"components"`
		}

		require.NoError(t, json.NewDecoder(res.Body).Decode(&doc))
		require.Equal(t, "3.0.0", doc.OpenAPI)
		require.Contains(t, doc.Paths, "/auth/register")
		require.Contains(t, doc.Paths, "/tasks/{id}/advance")
		require.Contains(t, doc.Components.SecuritySchemes, "bearerAuth")
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		res, err := srv.Client().Get(srv.URL + "/openapi3.yaml")
		require.NoError(t, err)

		defer res.Body.Close()

		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Equal(t, "application/x-yaml", res.Header.Get("Content-Type"))

		data, err := io.ReadAll(res.Body)
		require.NoError(t, err)

		var doc map[string]interface{}

		require.NoError(t, yaml.Unmarshal(data, &doc))
		require.Equal(t, "3.0.0", doc["openapi"])
	})
}
