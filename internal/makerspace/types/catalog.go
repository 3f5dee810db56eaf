package types

type LocationRequest struct {
	Name string `json:"name"`
}

type Location struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Record
}

type ZoneRequest struct {
	Name       string `json:"name"`
	LocationID *int64 `json:"location_id"`
}

type Zone struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	LocationID int64  `json:"location_id"`
	Record
}

type ChoreRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Classification string `json:"classification"`
	Frequency      string `json:"frequency"`
	CreatorID      *int64 `json:"creator_id,omitempty"`
	LastCompleted  string `json:"last_completed,omitempty"`
}

type Chore struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Classification string `json:"classification"`
	Frequency      string `json:"frequency"`
	CreatorID      *int64 `json:"creator_id,omitempty"`
	LastCompleted  string `json:"last_completed,omitempty"`
	Record
}

type ChoreOwnershipRequest struct {
	PersonID             *int64   `json:"person_id"`
	ChoreID              *int64   `json:"chore_id"`
	CompletionPercentage *float64 `json:"completion_percentage,omitempty"`
	Notes                string   `json:"notes,omitempty"`
}

type ChoreOwnership struct {
	ID                   int64   `json:"id"`
	PersonID             int64   `json:"person_id"`
	ChoreID              int64   `json:"chore_id"`
	CompletionPercentage float64 `json:"completion_percentage"`
	Notes                string  `json:"notes"`
	Record
}

type ChoreHistoryRequest struct {
	ChoreID   *int64 `json:"chore_id"`
	PersonID  *int64 `json:"person_id,omitempty"`
	Notes     string `json:"notes,omitempty"`
	ClassType string `json:"class_type"`
	Status    string `json:"status"` // started | done
}

type ChoreHistory struct {
	ID        int64  `json:"id"`
	ChoreID   int64  `json:"chore_id"`
	PersonID  *int64 `json:"person_id,omitempty"`
	Notes     string `json:"notes"`
	ClassType string `json:"class_type"`
	Status    string `json:"status"`
	Record
}

type EquipmentRequest struct {
	Name             string `json:"name"`
	EquipmentType    string `json:"equipment_type"` // tool | machine
	Manufacturer     string `json:"manufacturer,omitempty"`
	Model            string `json:"model,omitempty"`
	SerialNumber     string `json:"serial_number,omitempty"`
	AssetID          *int64 `json:"asset_id,omitempty"`
	Description      string `json:"description"`
	OutOfOrder       bool   `json:"out_of_order"`
	RequiresTraining bool   `json:"requires_training"`
	ZoneID           *int64 `json:"zone_id"`
}

type Equipment struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	EquipmentType    string `json:"equipment_type"`
	Manufacturer     string `json:"manufacturer"`
	Model            string `json:"model"`
	SerialNumber     string `json:"serial_number"`
	AssetID          *int64 `json:"asset_id,omitempty"`
	Description      string `json:"description"`
	OutOfOrder       bool   `json:"out_of_order"`
	RequiresTraining bool   `json:"requires_training"`
	ZoneID           int64  `json:"zone_id"`
	Record
}

type MembershipTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type MembershipType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Record
}

type AllowEquipmentRequest struct {
	EquipmentID *int64 `json:"equipment_id"`
}

type AddMembershipRequest struct {
	MembershipTypeID *int64 `json:"membership_type_id"`
}
