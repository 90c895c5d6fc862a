// Package repository provides database access for the directory API.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geodirhq/geodir/internal/service"
	"github.com/geodirhq/geodir/pkg/models"
)

// Repository provides database operations. It implements the repository
// interfaces declared by the service package; pgx.ErrNoRows is translated to
// service.ErrNotFound at this boundary so callers never see driver errors.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// notFound maps driver-level no-rows errors to the service sentinel.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return service.ErrNotFound
	}
	return err
}

// =============================================================================
// Activities
// =============================================================================

// GetActivity retrieves an activity by id.
func (r *Repository) GetActivity(ctx context.Context, id int64) (*models.Activity, error) {
	var a models.Activity
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, parent_id, level
		FROM activities WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.ParentID, &a.Level)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// ListActivitiesByParents retrieves the direct children of the given parents.
func (r *Repository) ListActivitiesByParents(ctx context.Context, parentIDs []int64) ([]models.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, parent_id, level
		FROM activities
		WHERE parent_id = ANY($1)
		ORDER BY id
	`, parentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ListActivitiesByOrganization retrieves the activities linked to an
// organization, resolved through the association table.
func (r *Repository) ListActivitiesByOrganization(ctx context.Context, organizationID int64) ([]models.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.name, a.parent_id, a.level
		FROM activities a
		JOIN organization_activities oa ON oa.activity_id = a.id
		WHERE oa.organization_id = $1
		ORDER BY a.id
	`, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

func scanActivities(rows pgx.Rows) ([]models.Activity, error) {
	activities := make([]models.Activity, 0)
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.ParentID, &a.Level); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// =============================================================================
// Buildings
// =============================================================================

// GetBuilding retrieves a building by id.
func (r *Repository) GetBuilding(ctx context.Context, id int64) (*models.Building, error) {
	var b models.Building
	err := r.pool.QueryRow(ctx, `
		SELECT id, address, latitude, longitude
		FROM buildings WHERE id = $1
	`, id).Scan(&b.ID, &b.Address, &b.Latitude, &b.Longitude)
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// ListBuildings retrieves every building. The radius search scans all of
// them and measures distance per building.
func (r *Repository) ListBuildings(ctx context.Context) ([]models.Building, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, address, latitude, longitude
		FROM buildings
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buildings := make([]models.Building, 0)
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(&b.ID, &b.Address, &b.Latitude, &b.Longitude); err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}

// ListBuildingIDsInRect retrieves ids of buildings inside the closed
// bounding rectangle. The range comparison runs in SQL.
func (r *Repository) ListBuildingIDsInRect(ctx context.Context, rect models.RectangleQuery) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id
		FROM buildings
		WHERE latitude >= $1 AND latitude <= $2
		  AND longitude >= $3 AND longitude <= $4
		ORDER BY id
	`, rect.MinLatitude, rect.MaxLatitude, rect.MinLongitude, rect.MaxLongitude)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// =============================================================================
// Organizations
// =============================================================================

// GetOrganization retrieves an organization by id.
func (r *Repository) GetOrganization(ctx context.Context, id int64) (*models.Organization, error) {
	var o models.Organization
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, building_id
		FROM organizations WHERE id = $1
	`, id).Scan(&o.ID, &o.Name, &o.BuildingID)
	if err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

// ListOrganizations retrieves organizations with an optional case-insensitive
// substring filter on the name.
func (r *Repository) ListOrganizations(ctx context.Context, params service.ListOrganizationsParams) ([]models.Organization, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if params.Name != nil && *params.Name != "" {
		rows, err = r.pool.Query(ctx, `
			SELECT id, name, building_id
			FROM organizations
			WHERE name ILIKE '%' || $1 || '%'
			ORDER BY id
			LIMIT $2 OFFSET $3
		`, *params.Name, params.Page.Limit, params.Page.Skip)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT id, name, building_id
			FROM organizations
			ORDER BY id
			LIMIT $1 OFFSET $2
		`, params.Page.Limit, params.Page.Skip)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrganizations(rows)
}

// ListOrganizationsByBuilding retrieves organizations in a single building.
func (r *Repository) ListOrganizationsByBuilding(ctx context.Context, buildingID int64, page models.Page) ([]models.Organization, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, building_id
		FROM organizations
		WHERE building_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, buildingID, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrganizations(rows)
}

// ListOrganizationsByBuildings retrieves organizations in any of the given
// buildings.
func (r *Repository) ListOrganizationsByBuildings(ctx context.Context, buildingIDs []int64, page models.Page) ([]models.Organization, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, building_id
		FROM organizations
		WHERE building_id = ANY($1)
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, buildingIDs, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrganizations(rows)
}

// ListOrganizationsByActivities retrieves organizations linked to any of the
// given activities. DISTINCT collapses organizations linked to several
// activities in the set to one row.
func (r *Repository) ListOrganizationsByActivities(ctx context.Context, activityIDs []int64, page models.Page) ([]models.Organization, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT o.id, o.name, o.building_id
		FROM organizations o
		JOIN organization_activities oa ON oa.organization_id = o.id
		WHERE oa.activity_id = ANY($1)
		ORDER BY o.id
		LIMIT $2 OFFSET $3
	`, activityIDs, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrganizations(rows)
}

// ListPhoneNumbers retrieves the phone numbers of an organization.
func (r *Repository) ListPhoneNumbers(ctx context.Context, organizationID int64) ([]models.PhoneNumber, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, organization_id, number
		FROM phone_numbers
		WHERE organization_id = $1
		ORDER BY id
	`, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phones := make([]models.PhoneNumber, 0)
	for rows.Next() {
		var p models.PhoneNumber
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Number); err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}
	return phones, rows.Err()
}

func scanOrganizations(rows pgx.Rows) ([]models.Organization, error) {
	orgs := make([]models.Organization, 0)
	for rows.Next() {
		var o models.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.BuildingID); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

// Seed helpers used by cmd/seed. They insert rows and return generated ids.

// InsertBuilding inserts a building and returns its id.
func (r *Repository) InsertBuilding(ctx context.Context, address string, latitude, longitude float64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO buildings (address, latitude, longitude)
		VALUES ($1, $2, $3)
		RETURNING id
	`, address, latitude, longitude).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert building: %w", err)
	}
	return id, nil
}

// InsertActivity inserts an activity and returns its id.
func (r *Repository) InsertActivity(ctx context.Context, name string, parentID *int64, level int) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO activities (name, parent_id, level)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, parentID, level).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert activity: %w", err)
	}
	return id, nil
}

// InsertOrganization inserts an organization and returns its id.
func (r *Repository) InsertOrganization(ctx context.Context, name string, buildingID int64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO organizations (name, building_id)
		VALUES ($1, $2)
		RETURNING id
	`, name, buildingID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert organization: %w", err)
	}
	return id, nil
}

// InsertPhoneNumber inserts a phone number for an organization.
func (r *Repository) InsertPhoneNumber(ctx context.Context, organizationID int64, number string) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO phone_numbers (organization_id, number)
		VALUES ($1, $2)
	`, organizationID, number); err != nil {
		return fmt.Errorf("insert phone number: %w", err)
	}
	return nil
}

// LinkOrganizationActivity inserts an organization/activity association.
func (r *Repository) LinkOrganizationActivity(ctx context.Context, organizationID, activityID int64) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO organization_activities (organization_id, activity_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, organizationID, activityID); err != nil {
		return fmt.Errorf("link organization activity: %w", err)
	}
	return nil
}
