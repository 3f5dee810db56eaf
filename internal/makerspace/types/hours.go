package types

// VolunteerHoursRequest carries raw query parameters. Nil reader fields fall
// back to the configured defaults.
type VolunteerHoursRequest struct {
	PersonID           int64
	Start              string
	End                string
	CheckInController  *int
	CheckInDoor        *int
	CheckOutController *int
	CheckOutDoor       *int
	IncludeSessions    bool
}

type Reader struct {
	Controller int `json:"controller"`
	Door       int `json:"door"`
}

type VolunteerSession struct {
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	DurationSeconds int64  `json:"duration_seconds"`
}

type VolunteerHoursResponse struct {
	PersonID     int64              `json:"person_id"`
	Start        string             `json:"start"`
	End          string             `json:"end"`
	CheckIn      Reader             `json:"checkin_reader"`
	CheckOut     Reader             `json:"checkout_reader"`
	TotalSeconds int64              `json:"total_seconds"`
	TotalHours   float64            `json:"total_hours"`
	Sessions     []VolunteerSession `json:"sessions,omitempty"`
}
