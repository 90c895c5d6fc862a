// Package service provides business logic for the directory API.
package service

import (
	"context"

	"github.com/geodirhq/geodir/pkg/models"
)

// =============================================================================
// Repository Interfaces - For dependency injection and testing
// =============================================================================

// ActivityRepository defines the interface for activity data access.
type ActivityRepository interface {
	GetActivity(ctx context.Context, id int64) (*models.Activity, error)
	ListActivitiesByParents(ctx context.Context, parentIDs []int64) ([]models.Activity, error)
	ListActivitiesByOrganization(ctx context.Context, organizationID int64) ([]models.Activity, error)
}

// OrganizationRepository defines the interface for organization data access.
type OrganizationRepository interface {
	GetOrganization(ctx context.Context, id int64) (*models.Organization, error)
	ListOrganizations(ctx context.Context, params ListOrganizationsParams) ([]models.Organization, error)
	ListOrganizationsByBuilding(ctx context.Context, buildingID int64, page models.Page) ([]models.Organization, error)
	ListOrganizationsByBuildings(ctx context.Context, buildingIDs []int64, page models.Page) ([]models.Organization, error)
	ListOrganizationsByActivities(ctx context.Context, activityIDs []int64, page models.Page) ([]models.Organization, error)
	ListPhoneNumbers(ctx context.Context, organizationID int64) ([]models.PhoneNumber, error)
}

// BuildingRepository defines the interface for building data access.
type BuildingRepository interface {
	GetBuilding(ctx context.Context, id int64) (*models.Building, error)
	ListBuildings(ctx context.Context) ([]models.Building, error)
	ListBuildingIDsInRect(ctx context.Context, rect models.RectangleQuery) ([]int64, error)
}

// SubtreeResolver resolves an activity id to the ids of its whole subtree.
type SubtreeResolver interface {
	ResolveSubtree(ctx context.Context, activityID int64) ([]int64, error)
}

// =============================================================================
// Parameter Types
// =============================================================================

// ListOrganizationsParams contains parameters for the name-filtered listing.
// A nil Name returns every organization.
type ListOrganizationsParams struct {
	Name *string
	Page models.Page
}
