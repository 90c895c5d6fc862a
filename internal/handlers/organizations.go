package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/geodirhq/geodir/internal/service"
	"github.com/geodirhq/geodir/pkg/logger"
	"github.com/geodirhq/geodir/pkg/models"
)

// OrganizationHandler handles organization query requests.
type OrganizationHandler struct {
	svc *service.OrganizationService
	log *logger.Logger
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(svc *service.OrganizationService, log *logger.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		svc: svc,
		log: log.WithComponent("organization-handler"),
	}
}

// List handles GET /organizations. An optional name query parameter narrows
// the result to organizations whose name contains the term.
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var name *string
	if v := r.URL.Query().Get("name"); v != "" {
		if len(v) > models.MaxNameLen {
			writeError(w, http.StatusUnprocessableEntity, "name is too long")
			return
		}
		name = &v
	}

	orgs, err := h.svc.ListByName(r.Context(), service.ListByNameInput{Name: name, Page: page})
	if err != nil {
		h.serverError(w, r, "list organizations", err)
		return
	}

	writeJSON(w, http.StatusOK, orgs)
}

// Get handles GET /organizations/{organization_id}.
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "organization_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "organization_id must be an integer")
		return
	}

	detail, err := h.svc.GetDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Organization not found")
			return
		}
		h.serverError(w, r, "get organization", err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// ListByBuilding handles GET /organizations/building/{building_id}. An
// unknown building yields an empty list, not an error.
func (h *OrganizationHandler) ListByBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "building_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "building_id must be an integer")
		return
	}

	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	orgs, err := h.svc.ListByBuilding(r.Context(), service.ListByBuildingInput{BuildingID: id, Page: page})
	if err != nil {
		h.serverError(w, r, "list organizations by building", err)
		return
	}

	writeJSON(w, http.StatusOK, orgs)
}

// ListByActivity handles GET /organizations/activity/{activity_id}. With
// include_children=true the whole activity subtree is matched.
func (h *OrganizationHandler) ListByActivity(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "activity_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "activity_id must be an integer")
		return
	}

	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	includeChildren := false
	if v := r.URL.Query().Get("include_children"); v != "" {
		includeChildren, err = strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "include_children must be a boolean")
			return
		}
	}

	orgs, err := h.svc.ListByActivity(r.Context(), service.ListByActivityInput{
		ActivityID:      id,
		IncludeChildren: includeChildren,
		Page:            page,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Activity not found")
			return
		}
		h.serverError(w, r, "list organizations by activity", err)
		return
	}

	writeJSON(w, http.StatusOK, orgs)
}

// SearchRadius handles POST /organizations/search/radius.
func (h *OrganizationHandler) SearchRadius(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var query models.RadiusQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := query.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	orgs, err := h.svc.SearchRadius(r.Context(), service.SearchRadiusInput{Query: query, Page: page})
	if err != nil {
		h.serverError(w, r, "radius search", err)
		return
	}

	writeJSON(w, http.StatusOK, orgs)
}

// SearchRectangle handles POST /organizations/search/rectangle.
func (h *OrganizationHandler) SearchRectangle(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var query models.RectangleQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if err := query.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	orgs, err := h.svc.SearchRectangle(r.Context(), service.SearchRectangleInput{Query: query, Page: page})
	if err != nil {
		h.serverError(w, r, "rectangle search", err)
		return
	}

	writeJSON(w, http.StatusOK, orgs)
}

func (h *OrganizationHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.log.WithContext(r.Context()).Error("request failed", "operation", op, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// parsePage reads skip and limit query parameters, falling back to the
// defaults when absent.
func parsePage(r *http.Request) (models.Page, error) {
	page := models.DefaultPage()

	if v := r.URL.Query().Get("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil {
			return models.Page{}, errors.New("skip must be an integer")
		}
		page.Skip = skip
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return models.Page{}, errors.New("limit must be an integer")
		}
		page.Limit = limit
	}

	if err := page.Validate(); err != nil {
		return models.Page{}, err
	}
	return page, nil
}

func parseID(r *http.Request, param string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, param), 10, 64)
}
