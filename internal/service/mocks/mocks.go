// Package mocks provides in-memory repository implementations for tests.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/geodirhq/geodir/internal/service"
	"github.com/geodirhq/geodir/pkg/models"
)

// MockActivityRepository is an in-memory ActivityRepository. Behaviors can be
// overridden per test with the Func fields.
type MockActivityRepository struct {
	mu         sync.RWMutex
	activities map[int64]models.Activity
	links      map[int64][]int64 // organization id -> activity ids

	GetActivityFunc                  func(ctx context.Context, id int64) (*models.Activity, error)
	ListActivitiesByParentsFunc      func(ctx context.Context, parentIDs []int64) ([]models.Activity, error)
	ListActivitiesByOrganizationFunc func(ctx context.Context, organizationID int64) ([]models.Activity, error)
}

// NewMockActivityRepository creates an empty mock activity repository.
func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{
		activities: make(map[int64]models.Activity),
		links:      make(map[int64][]int64),
	}
}

// AddActivity stores an activity in the mock.
func (m *MockActivityRepository) AddActivity(a models.Activity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities[a.ID] = a
}

// LinkOrganization associates an organization with an activity.
func (m *MockActivityRepository) LinkOrganization(organizationID, activityID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[organizationID] = append(m.links[organizationID], activityID)
}

func (m *MockActivityRepository) GetActivity(ctx context.Context, id int64) (*models.Activity, error) {
	if m.GetActivityFunc != nil {
		return m.GetActivityFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.activities[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &a, nil
}

func (m *MockActivityRepository) ListActivitiesByParents(ctx context.Context, parentIDs []int64) ([]models.Activity, error) {
	if m.ListActivitiesByParentsFunc != nil {
		return m.ListActivitiesByParentsFunc(ctx, parentIDs)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	parents := make(map[int64]bool, len(parentIDs))
	for _, id := range parentIDs {
		parents[id] = true
	}
	out := make([]models.Activity, 0)
	for _, a := range m.activities {
		if a.ParentID != nil && parents[*a.ParentID] {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockActivityRepository) ListActivitiesByOrganization(ctx context.Context, organizationID int64) ([]models.Activity, error) {
	if m.ListActivitiesByOrganizationFunc != nil {
		return m.ListActivitiesByOrganizationFunc(ctx, organizationID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Activity, 0)
	for _, id := range m.links[organizationID] {
		if a, ok := m.activities[id]; ok {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockBuildingRepository is an in-memory BuildingRepository.
type MockBuildingRepository struct {
	mu        sync.RWMutex
	buildings map[int64]models.Building

	GetBuildingFunc           func(ctx context.Context, id int64) (*models.Building, error)
	ListBuildingsFunc         func(ctx context.Context) ([]models.Building, error)
	ListBuildingIDsInRectFunc func(ctx context.Context, rect models.RectangleQuery) ([]int64, error)
}

// NewMockBuildingRepository creates an empty mock building repository.
func NewMockBuildingRepository() *MockBuildingRepository {
	return &MockBuildingRepository{buildings: make(map[int64]models.Building)}
}

// AddBuilding stores a building in the mock.
func (m *MockBuildingRepository) AddBuilding(b models.Building) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buildings[b.ID] = b
}

func (m *MockBuildingRepository) GetBuilding(ctx context.Context, id int64) (*models.Building, error) {
	if m.GetBuildingFunc != nil {
		return m.GetBuildingFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.buildings[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &b, nil
}

func (m *MockBuildingRepository) ListBuildings(ctx context.Context) ([]models.Building, error) {
	if m.ListBuildingsFunc != nil {
		return m.ListBuildingsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Building, 0, len(m.buildings))
	for _, b := range m.buildings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockBuildingRepository) ListBuildingIDsInRect(ctx context.Context, rect models.RectangleQuery) ([]int64, error) {
	if m.ListBuildingIDsInRectFunc != nil {
		return m.ListBuildingIDsInRectFunc(ctx, rect)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int64, 0)
	for _, b := range m.buildings {
		if b.Latitude >= rect.MinLatitude && b.Latitude <= rect.MaxLatitude &&
			b.Longitude >= rect.MinLongitude && b.Longitude <= rect.MaxLongitude {
			ids = append(ids, b.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// MockOrganizationRepository is an in-memory OrganizationRepository.
type MockOrganizationRepository struct {
	mu     sync.RWMutex
	orgs   map[int64]models.Organization
	phones map[int64][]models.PhoneNumber
	links  map[int64][]int64 // activity id -> organization ids

	GetOrganizationFunc             func(ctx context.Context, id int64) (*models.Organization, error)
	ListOrganizationsFunc           func(ctx context.Context, params service.ListOrganizationsParams) ([]models.Organization, error)
	ListOrganizationsByBuildingFunc func(ctx context.Context, buildingID int64, page models.Page) ([]models.Organization, error)
	ListByBuildingsFunc             func(ctx context.Context, buildingIDs []int64, page models.Page) ([]models.Organization, error)
	ListByActivitiesFunc            func(ctx context.Context, activityIDs []int64, page models.Page) ([]models.Organization, error)
	ListPhoneNumbersFunc            func(ctx context.Context, organizationID int64) ([]models.PhoneNumber, error)
}

// NewMockOrganizationRepository creates an empty mock organization repository.
func NewMockOrganizationRepository() *MockOrganizationRepository {
	return &MockOrganizationRepository{
		orgs:   make(map[int64]models.Organization),
		phones: make(map[int64][]models.PhoneNumber),
		links:  make(map[int64][]int64),
	}
}

// AddOrganization stores an organization in the mock.
func (m *MockOrganizationRepository) AddOrganization(o models.Organization) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orgs[o.ID] = o
}

// AddPhoneNumber stores a phone number in the mock.
func (m *MockOrganizationRepository) AddPhoneNumber(p models.PhoneNumber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phones[p.OrganizationID] = append(m.phones[p.OrganizationID], p)
}

// LinkActivity associates an activity with an organization.
func (m *MockOrganizationRepository) LinkActivity(activityID, organizationID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[activityID] = append(m.links[activityID], organizationID)
}

func (m *MockOrganizationRepository) GetOrganization(ctx context.Context, id int64) (*models.Organization, error) {
	if m.GetOrganizationFunc != nil {
		return m.GetOrganizationFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orgs[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &o, nil
}

func (m *MockOrganizationRepository) ListOrganizations(ctx context.Context, params service.ListOrganizationsParams) ([]models.Organization, error) {
	if m.ListOrganizationsFunc != nil {
		return m.ListOrganizationsFunc(ctx, params)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Organization, 0)
	for _, o := range m.orgs {
		if params.Name != nil && *params.Name != "" && !containsFold(o.Name, *params.Name) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, params.Page), nil
}

func (m *MockOrganizationRepository) ListOrganizationsByBuilding(ctx context.Context, buildingID int64, page models.Page) ([]models.Organization, error) {
	if m.ListOrganizationsByBuildingFunc != nil {
		return m.ListOrganizationsByBuildingFunc(ctx, buildingID, page)
	}
	return m.ListOrganizationsByBuildings(ctx, []int64{buildingID}, page)
}

func (m *MockOrganizationRepository) ListOrganizationsByBuildings(ctx context.Context, buildingIDs []int64, page models.Page) ([]models.Organization, error) {
	if m.ListByBuildingsFunc != nil {
		return m.ListByBuildingsFunc(ctx, buildingIDs, page)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := make(map[int64]bool, len(buildingIDs))
	for _, id := range buildingIDs {
		wanted[id] = true
	}
	out := make([]models.Organization, 0)
	for _, o := range m.orgs {
		if wanted[o.BuildingID] {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, page), nil
}

func (m *MockOrganizationRepository) ListOrganizationsByActivities(ctx context.Context, activityIDs []int64, page models.Page) ([]models.Organization, error) {
	if m.ListByActivitiesFunc != nil {
		return m.ListByActivitiesFunc(ctx, activityIDs, page)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[int64]bool)
	out := make([]models.Organization, 0)
	for _, activityID := range activityIDs {
		for _, orgID := range m.links[activityID] {
			if seen[orgID] {
				continue
			}
			seen[orgID] = true
			if o, ok := m.orgs[orgID]; ok {
				out = append(out, o)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, page), nil
}

func (m *MockOrganizationRepository) ListPhoneNumbers(ctx context.Context, organizationID int64) ([]models.PhoneNumber, error) {
	if m.ListPhoneNumbersFunc != nil {
		return m.ListPhoneNumbersFunc(ctx, organizationID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.PhoneNumber, 0)
	out = append(out, m.phones[organizationID]...)
	return out, nil
}

func paginate(orgs []models.Organization, page models.Page) []models.Organization {
	if page.Skip >= len(orgs) {
		return []models.Organization{}
	}
	orgs = orgs[page.Skip:]
	if page.Limit > 0 && page.Limit < len(orgs) {
		orgs = orgs[:page.Limit]
	}
	return orgs
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
