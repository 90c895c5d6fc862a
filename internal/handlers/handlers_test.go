package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/geodirhq/geodir/internal/handlers"
	"github.com/geodirhq/geodir/internal/service"
	"github.com/geodirhq/geodir/internal/service/mocks"
	"github.com/geodirhq/geodir/pkg/logger"
	"github.com/geodirhq/geodir/pkg/models"
)

func int64Ptr(v int64) *int64 { return &v }

// newTestRouter builds an organization router over mock repositories seeded
// with a small dataset: two buildings downtown, one uptown, three
// organizations, and a Food taxonomy with two children.
func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	acts := mocks.NewMockActivityRepository()
	acts.AddActivity(models.Activity{ID: 1, Name: "Food", Level: 1})
	acts.AddActivity(models.Activity{ID: 2, Name: "Meat products", ParentID: int64Ptr(1), Level: 2})
	acts.AddActivity(models.Activity{ID: 3, Name: "Dairy products", ParentID: int64Ptr(1), Level: 2})

	buildings := mocks.NewMockBuildingRepository()
	buildings.AddBuilding(models.Building{ID: 1, Address: "1 Market St", Latitude: 40.7128, Longitude: -74.0060})
	buildings.AddBuilding(models.Building{ID: 2, Address: "2 Harbor Rd", Latitude: 40.7200, Longitude: -74.0100})
	buildings.AddBuilding(models.Building{ID: 3, Address: "3 Ridge Ave", Latitude: 51.5074, Longitude: -0.1278})

	orgs := mocks.NewMockOrganizationRepository()
	orgs.AddOrganization(models.Organization{ID: 1, Name: "Fresh Farm Foods", BuildingID: 1})
	orgs.AddOrganization(models.Organization{ID: 2, Name: "Prime Meats", BuildingID: 1})
	orgs.AddOrganization(models.Organization{ID: 3, Name: "Dairy Delight", BuildingID: 3})

	orgs.LinkActivity(1, 1)
	orgs.LinkActivity(2, 2)
	orgs.LinkActivity(3, 3)

	acts.LinkOrganization(1, 1)
	acts.LinkOrganization(2, 2)
	acts.LinkOrganization(3, 3)

	orgs.AddPhoneNumber(models.PhoneNumber{ID: 1, OrganizationID: 1, Number: "2-222-222"})
	orgs.AddPhoneNumber(models.PhoneNumber{ID: 2, OrganizationID: 1, Number: "3-333-333"})

	log := logger.New("error", "text")
	resolver := service.NewActivityService(acts, nil, 0)
	svc := service.NewOrganizationService(orgs, buildings, resolver, acts, nil, 0)
	handler := handlers.NewOrganizationHandler(svc, log)

	r := chi.NewRouter()
	r.Route("/organizations", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/search/radius", handler.SearchRadius)
		r.Post("/search/rectangle", handler.SearchRectangle)
		r.Get("/building/{building_id}", handler.ListByBuilding)
		r.Get("/activity/{activity_id}", handler.ListByActivity)
		r.Get("/{organization_id}", handler.Get)
	})
	return r
}

// executeRequest executes an HTTP request and returns the response recorder.
func executeRequest(handler http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// decodeJSON decodes a JSON response body into the target struct.
func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
