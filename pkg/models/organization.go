// Package models contains domain models used across the service.
package models

// Organization is a business entity occupying exactly one building.
type Organization struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	BuildingID int64  `json:"building_id"`
}

// PhoneNumber is a published contact number owned by one organization.
// The number is free-form; no format is enforced.
type PhoneNumber struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organization_id"`
	Number         string `json:"number"`
}

// OrganizationDetail is the full single-entity view: the organization plus
// its building, every phone number, and every linked activity record.
type OrganizationDetail struct {
	Organization
	Building     Building      `json:"building"`
	PhoneNumbers []PhoneNumber `json:"phone_numbers"`
	Activities   []Activity    `json:"activities"`
}
