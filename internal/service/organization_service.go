package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/geodirhq/geodir/internal/cache"
	"github.com/geodirhq/geodir/pkg/geo"
	"github.com/geodirhq/geodir/pkg/models"
)

// OrganizationService handles organization query logic: the four list shapes
// and the single-entity detail view. All operations are read-only; results
// are ordered by organization id ascending so sequential pagination windows
// never overlap or skip rows.
type OrganizationService struct {
	orgs      OrganizationRepository
	buildings BuildingRepository
	resolver  SubtreeResolver
	acts      ActivityRepository
	cache     cache.Cache
	cacheTTL  time.Duration
}

// NewOrganizationService creates a new OrganizationService. The cache is
// optional; pass nil to skip detail caching.
func NewOrganizationService(
	orgs OrganizationRepository,
	buildings BuildingRepository,
	resolver SubtreeResolver,
	acts ActivityRepository,
	c cache.Cache,
	cacheTTL time.Duration,
) *OrganizationService {
	return &OrganizationService{
		orgs:      orgs,
		buildings: buildings,
		resolver:  resolver,
		acts:      acts,
		cache:     c,
		cacheTTL:  cacheTTL,
	}
}

// =============================================================================
// List shapes
// =============================================================================

// ListByNameInput contains input for the name-filtered listing.
type ListByNameInput struct {
	Name *string
	Page models.Page
}

// ListByName returns organizations whose name contains the given term,
// case-insensitively, or every organization when no term is given.
func (s *OrganizationService) ListByName(ctx context.Context, input ListByNameInput) ([]models.Organization, error) {
	orgs, err := s.orgs.ListOrganizations(ctx, ListOrganizationsParams{
		Name: input.Name,
		Page: input.Page,
	})
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}

// ListByBuildingInput contains input for the building listing.
type ListByBuildingInput struct {
	BuildingID int64
	Page       models.Page
}

// ListByBuilding returns organizations occupying the given building. An
// unknown building id is not an error; it simply matches nothing.
func (s *OrganizationService) ListByBuilding(ctx context.Context, input ListByBuildingInput) ([]models.Organization, error) {
	orgs, err := s.orgs.ListOrganizationsByBuilding(ctx, input.BuildingID, input.Page)
	if err != nil {
		return nil, fmt.Errorf("list organizations by building: %w", err)
	}
	return orgs, nil
}

// ListByActivityInput contains input for the activity listing.
type ListByActivityInput struct {
	ActivityID      int64
	IncludeChildren bool
	Page            models.Page
}

// ListByActivity returns organizations linked to the given activity. With
// IncludeChildren the whole subtree is matched and an organization linked to
// both a parent and its child appears exactly once. Propagates ErrNotFound
// from the resolver when the activity id is unknown.
func (s *OrganizationService) ListByActivity(ctx context.Context, input ListByActivityInput) ([]models.Organization, error) {
	activityIDs := []int64{input.ActivityID}

	if input.IncludeChildren {
		ids, err := s.resolver.ResolveSubtree(ctx, input.ActivityID)
		if err != nil {
			return nil, err
		}
		activityIDs = ids
	} else {
		// The exact-match shape must still distinguish an unknown
		// activity from one with no linked organizations.
		if _, err := s.acts.GetActivity(ctx, input.ActivityID); err != nil {
			return nil, fmt.Errorf("get activity: %w", err)
		}
	}

	orgs, err := s.orgs.ListOrganizationsByActivities(ctx, activityIDs, input.Page)
	if err != nil {
		return nil, fmt.Errorf("list organizations by activities: %w", err)
	}
	return orgs, nil
}

// SearchRadiusInput contains input for the radius search.
type SearchRadiusInput struct {
	Query models.RadiusQuery
	Page  models.Page
}

// SearchRadius returns organizations whose building lies within the query
// radius. Every building is scanned and measured with the great-circle
// distance; there is no spatial index at this scale.
func (s *OrganizationService) SearchRadius(ctx context.Context, input SearchRadiusInput) ([]models.Organization, error) {
	all, err := s.buildings.ListBuildings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}

	filter := geo.RadiusFilter{
		Center:   geo.Point{Lat: input.Query.Center.Latitude, Lon: input.Query.Center.Longitude},
		RadiusKm: input.Query.Radius,
	}

	var buildingIDs []int64
	for _, b := range all {
		if filter.Contains(geo.Point{Lat: b.Latitude, Lon: b.Longitude}) {
			buildingIDs = append(buildingIDs, b.ID)
		}
	}

	return s.listByBuildingSet(ctx, buildingIDs, input.Page)
}

// SearchRectangleInput contains input for the rectangle search.
type SearchRectangleInput struct {
	Query models.RectangleQuery
	Page  models.Page
}

// SearchRectangle returns organizations whose building lies within the
// closed bounding rectangle. The range comparison is pushed down to storage.
func (s *OrganizationService) SearchRectangle(ctx context.Context, input SearchRectangleInput) ([]models.Organization, error) {
	buildingIDs, err := s.buildings.ListBuildingIDsInRect(ctx, input.Query)
	if err != nil {
		return nil, fmt.Errorf("list buildings in rect: %w", err)
	}

	return s.listByBuildingSet(ctx, buildingIDs, input.Page)
}

// listByBuildingSet fetches organizations for a candidate building set. An
// empty set short-circuits without touching storage.
func (s *OrganizationService) listByBuildingSet(ctx context.Context, buildingIDs []int64, page models.Page) ([]models.Organization, error) {
	if len(buildingIDs) == 0 {
		return []models.Organization{}, nil
	}

	orgs, err := s.orgs.ListOrganizationsByBuildings(ctx, buildingIDs, page)
	if err != nil {
		return nil, fmt.Errorf("list organizations by buildings: %w", err)
	}
	return orgs, nil
}

// =============================================================================
// Detail view
// =============================================================================

// GetDetail returns one organization with its building, phone numbers, and
// activity records. The three related collections are loaded with separate
// queries, so join fan-out can never duplicate rows. Returns ErrNotFound when
// the organization does not exist.
func (s *OrganizationService) GetDetail(ctx context.Context, organizationID int64) (*models.OrganizationDetail, error) {
	if detail, ok := s.cachedDetail(ctx, organizationID); ok {
		return detail, nil
	}

	org, err := s.orgs.GetOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}

	building, err := s.buildings.GetBuilding(ctx, org.BuildingID)
	if err != nil {
		return nil, fmt.Errorf("get building: %w", err)
	}

	phones, err := s.orgs.ListPhoneNumbers(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list phone numbers: %w", err)
	}

	activities, err := s.acts.ListActivitiesByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	detail := &models.OrganizationDetail{
		Organization: *org,
		Building:     *building,
		PhoneNumbers: phones,
		Activities:   activities,
	}

	s.storeDetail(ctx, organizationID, detail)
	return detail, nil
}

func detailKey(organizationID int64) string {
	return fmt.Sprintf("organization:detail:%d", organizationID)
}

func (s *OrganizationService) cachedDetail(ctx context.Context, organizationID int64) (*models.OrganizationDetail, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, detailKey(organizationID))
	if err != nil || data == nil {
		return nil, false
	}
	var detail models.OrganizationDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, false
	}
	return &detail, true
}

func (s *OrganizationService) storeDetail(ctx context.Context, organizationID int64, detail *models.OrganizationDetail) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(detail)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, detailKey(organizationID), data, s.cacheTTL)
}
