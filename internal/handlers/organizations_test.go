package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geodirhq/geodir/pkg/models"
)

func TestListOrganizations(t *testing.T) {
	router := newTestRouter(t)

	t.Run("lists everything by default", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		var orgs []models.Organization
		decodeJSON(t, rr, &orgs)
		assert.Len(t, orgs, 3)
	})

	t.Run("filters by name substring", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations?name=dairy", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		var orgs []models.Organization
		decodeJSON(t, rr, &orgs)
		require.Len(t, orgs, 1)
		assert.Equal(t, "Dairy Delight", orgs[0].Name)
	})

	t.Run("paginates with skip and limit", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations?skip=1&limit=1", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		var orgs []models.Organization
		decodeJSON(t, rr, &orgs)
		require.Len(t, orgs, 1)
		assert.Equal(t, int64(2), orgs[0].ID)
	})

	t.Run("rejects negative skip", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations?skip=-1", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("rejects zero limit", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations?limit=0", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("rejects limit above the cap", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations?limit=1001", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestGetOrganization(t *testing.T) {
	router := newTestRouter(t)

	t.Run("returns the assembled detail", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations/1", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		var detail models.OrganizationDetail
		decodeJSON(t, rr, &detail)
		assert.Equal(t, "Fresh Farm Foods", detail.Name)
		assert.Equal(t, "1 Market St", detail.Building.Address)
		assert.Len(t, detail.PhoneNumbers, 2)
		assert.Len(t, detail.Activities, 1)
	})

	t.Run("unknown organization", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations/999", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		var body map[string]string
		decodeJSON(t, rr, &body)
		assert.Equal(t, "Organization not found", body["detail"])
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations/abc", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestListOrganizationsByBuilding(t *testing.T) {
	router := newTestRouter(t)

	t.Run("building with tenants", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations/building/1", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		var orgs []models.Organization
		decodeJSON(t, rr, &orgs)
		assert.Len(t, orgs, 2)
	})

	t.Run("unknown building returns an empty list", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations/building/99", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		var orgs []models.Organization
		decodeJSON(t, rr, &orgs)
		assert.Empty(t, orgs)
	})
}

func TestListOrganizationsByActivity(t *testing.T) {
	router := newTestRouter(t)

	t.Run("exact match", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations/activity/2", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		var orgs []models.Organization
		decodeJSON(t, rr, &orgs)
		require.Len(t, orgs, 1)
		assert.Equal(t, "Prime Meats", orgs[0].Name)
	})

	t.Run("subtree match", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations/activity/1?include_children=true", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		var orgs []models.Organization
		decodeJSON(t, rr, &orgs)
		assert.Len(t, orgs, 3)
	})

	t.Run("unknown activity", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations/activity/999", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		var body map[string]string
		decodeJSON(t, rr, &body)
		assert.Equal(t, "Activity not found", body["detail"])
	})

	t.Run("bad include_children flag", func(t *testing.T) {
		rr := executeRequest(router, http.MethodGet, "/organizations/activity/1?include_children=maybe", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestSearchRadius(t *testing.T) {
	router := newTestRouter(t)

	t.Run("matches buildings within the radius", func(t *testing.T) {
		body := `{"center":{"latitude":40.7128,"longitude":-74.0060},"radius":5}`
		rr := executeRequest(router, http.MethodPost, "/organizations/search/radius", strings.NewReader(body))

		require.Equal(t, http.StatusOK, rr.Code)
		var orgs []models.Organization
		decodeJSON(t, rr, &orgs)
		assert.Len(t, orgs, 2)
	})

	t.Run("empty region returns an empty list", func(t *testing.T) {
		body := `{"center":{"latitude":0,"longitude":0},"radius":1}`
		rr := executeRequest(router, http.MethodPost, "/organizations/search/radius", strings.NewReader(body))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]\n", rr.Body.String())
	})

	t.Run("rejects out-of-range latitude", func(t *testing.T) {
		body := `{"center":{"latitude":95,"longitude":0},"radius":1}`
		rr := executeRequest(router, http.MethodPost, "/organizations/search/radius", strings.NewReader(body))
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("rejects negative radius", func(t *testing.T) {
		body := `{"center":{"latitude":0,"longitude":0},"radius":-1}`
		rr := executeRequest(router, http.MethodPost, "/organizations/search/radius", strings.NewReader(body))
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		rr := executeRequest(router, http.MethodPost, "/organizations/search/radius", strings.NewReader("{"))
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestSearchRectangle(t *testing.T) {
	router := newTestRouter(t)

	t.Run("matches buildings inside the bounds", func(t *testing.T) {
		body := `{"min_latitude":40,"min_longitude":-75,"max_latitude":41,"max_longitude":-73}`
		rr := executeRequest(router, http.MethodPost, "/organizations/search/rectangle", strings.NewReader(body))

		require.Equal(t, http.StatusOK, rr.Code)
		var orgs []models.Organization
		decodeJSON(t, rr, &orgs)
		assert.Len(t, orgs, 2)
	})

	t.Run("rejects inverted longitude bounds", func(t *testing.T) {
		body := `{"min_latitude":40,"min_longitude":170,"max_latitude":41,"max_longitude":-170}`
		rr := executeRequest(router, http.MethodPost, "/organizations/search/rectangle", strings.NewReader(body))
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}
