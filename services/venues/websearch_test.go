package venues

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travelland/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSearchQueryMarksApproximateLocation(t *testing.T) {
	fixture := `{"results": [
		{"title": "Luigi's - Tripadvisor", "url": "https://luigis.example",
		 "content": "Visit Luigi's at 12 Fleet Street, London for classic pasta. Open daily."},
		{"title": "Best pasta guide", "url": "https://blog.example",
		 "content": "No street details here at all"}
	]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture))
	}))
	defer srv.Close()

	a := NewWebSearchAdapter(srv.URL, 2*time.Second)
	out, err := a.Query(context.Background(), testArea(), models.CategoryRestaurant)
	require.NoError(t, err)

	// The address-less result is dropped; the survivor is center-pinned and
	// flagged as such.
	require.Len(t, out, 1)
	assert.Equal(t, "Luigi's", out[0].Name)
	assert.True(t, out[0].LocationApprox)
	assert.Equal(t, testArea().Center.Lat, out[0].Lat)
	assert.Equal(t, testArea().Center.Lon, out[0].Lon)
}
