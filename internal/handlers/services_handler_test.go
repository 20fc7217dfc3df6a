package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetServicesCatalog(t *testing.T) {
	r := newTestRouter(&Handler{})

	w := getJSON(t, r, "/api/services")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	services, ok := resp["services"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, services)
	assert.NotEmpty(t, resp["addOns"])
	assert.NotEmpty(t, resp["carePackages"])
}

func TestGetServiceCaseInsensitive(t *testing.T) {
	r := newTestRouter(&Handler{})

	// The catalog entry is "Gel-X"; lookups in any casing must find it.
	for _, id := range []string{"Gel-X", "gel-x", "GEL-X"} {
		w := getJSON(t, r, "/api/services/"+id)
		require.Equal(t, http.StatusOK, w.Code, "lookup %q", id)

		resp := decodeBody(t, w)
		svc, ok := resp["service"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Gel-X", svc["id"])
	}
}

func TestGetServiceNotFound(t *testing.T) {
	r := newTestRouter(&Handler{})

	w := getJSON(t, r, "/api/services/balayage")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])
}
