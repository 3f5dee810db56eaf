package store

import (
	"context"
	"time"
)

// Kind names a catalog table for lifecycle operations.
type Kind string

const (
	KindLocation Kind = "location"
	KindZone     Kind = "zone"
	KindChore    Kind = "chore"

	KindChoreOwnership Kind = "chore_ownership"
	KindChoreHistory   Kind = "chore_history"
	KindEquipment      Kind = "equipment"
	KindMembershipType Kind = "membership_type"
)

var (
	ChoreClassifications = []string{"maintenence", "cleanup", "organization", "administrative"}
	ChoreFrequencies     = []string{"daily", "weekly", "monthly", "quarterly", "yearly"}
	ChoreStatuses        = []string{"started", "done"}
	EquipmentTypes       = []string{"tool", "machine"}
)

type LocationRecord struct {
	ID   int64
	Name string
	Meta
}

type ZoneRecord struct {
	ID         int64
	Name       string
	LocationID int64
	Meta
}

type ChoreRecord struct {
	ID             int64
	Name           string
	Description    string
	Classification string
	Frequency      string
	CreatorID      *int64
	LastCompleted  *time.Time
	Meta
}

// ChoreOwnershipRecord assigns a chore to a volunteer.
type ChoreOwnershipRecord struct {
	ID                   int64
	PersonID             int64
	ChoreID              int64
	CompletionPercentage float64
	Notes                string
	Meta
}

type ChoreHistoryRecord struct {
	ID        int64
	ChoreID   int64
	PersonID  *int64
	Notes     string
	ClassType string
	Status    string
	Meta
}

type EquipmentRecord struct {
	ID               int64
	Name             string
	EquipmentType    string
	Manufacturer     string
	Model            string
	SerialNumber     string
	AssetID          *int64
	Description      string
	OutOfOrder       bool
	RequiresTraining bool
	ZoneID           int64
	Meta
}

type MembershipTypeRecord struct {
	ID          int64
	Name        string
	Description string
	Meta
}

// CatalogStore holds the shop layout, its equipment, chores and membership
// types. Person references are validated by callers; references between
// catalog rows are enforced here and reported as ErrInvalidReference.
type CatalogStore interface {
	CreateLocation(ctx context.Context, rec LocationRecord) (int64, error)
	GetLocation(ctx context.Context, id int64) (LocationRecord, error)
	ListLocations(ctx context.Context) ([]LocationRecord, error)
	UpdateLocation(ctx context.Context, rec LocationRecord) error

	CreateZone(ctx context.Context, rec ZoneRecord) (int64, error)
	GetZone(ctx context.Context, id int64) (ZoneRecord, error)
	ListZones(ctx context.Context) ([]ZoneRecord, error)
	UpdateZone(ctx context.Context, rec ZoneRecord) error

	CreateChore(ctx context.Context, rec ChoreRecord) (int64, error)
	GetChore(ctx context.Context, id int64) (ChoreRecord, error)
	ListChores(ctx context.Context) ([]ChoreRecord, error)
	UpdateChore(ctx context.Context, rec ChoreRecord) error

	CreateChoreOwnership(ctx context.Context, rec ChoreOwnershipRecord) (int64, error)
	GetChoreOwnership(ctx context.Context, id int64) (ChoreOwnershipRecord, error)
	ListChoreOwnerships(ctx context.Context, choreID int64) ([]ChoreOwnershipRecord, error)
	UpdateChoreOwnership(ctx context.Context, rec ChoreOwnershipRecord) error

	CreateChoreHistory(ctx context.Context, rec ChoreHistoryRecord) (int64, error)
	GetChoreHistory(ctx context.Context, id int64) (ChoreHistoryRecord, error)
	// ListChoreHistory returns the chore's entries newest first.
	ListChoreHistory(ctx context.Context, choreID int64) ([]ChoreHistoryRecord, error)
	UpdateChoreHistory(ctx context.Context, rec ChoreHistoryRecord) error

	CreateEquipment(ctx context.Context, rec EquipmentRecord) (int64, error)
	GetEquipment(ctx context.Context, id int64) (EquipmentRecord, error)
	ListEquipment(ctx context.Context) ([]EquipmentRecord, error)
	UpdateEquipment(ctx context.Context, rec EquipmentRecord) error

	CreateMembershipType(ctx context.Context, rec MembershipTypeRecord) (int64, error)
	GetMembershipType(ctx context.Context, id int64) (MembershipTypeRecord, error)
	ListMembershipTypes(ctx context.Context) ([]MembershipTypeRecord, error)
	UpdateMembershipType(ctx context.Context, rec MembershipTypeRecord) error

	// AllowEquipment links a person to equipment they may use. created is
	// false when the link already existed.
	AllowEquipment(ctx context.Context, personID, equipmentID int64) (created bool, err error)
	RevokeEquipment(ctx context.Context, personID, equipmentID int64) error
	ListAllowedEquipment(ctx context.Context, personID int64) ([]EquipmentRecord, error)

	AddMembership(ctx context.Context, personID, membershipTypeID int64) (created bool, err error)
	RemoveMembership(ctx context.Context, personID, membershipTypeID int64) error
	ListMemberships(ctx context.Context, personID int64) ([]MembershipTypeRecord, error)

	ApplyCatalogLifecycle(ctx context.Context, kind Kind, id int64, action LifecycleAction) error
}
