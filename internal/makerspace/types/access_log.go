package types

// AccessLogRequest is one event as reported by the controller poller.
// Pointer fields distinguish "missing" from zero for required values.
type AccessLogRequest struct {
	LogSHA1       string `json:"log_sha1,omitempty"` // computed server-side when empty
	EventDT       string `json:"event_dt"`           // "YYYY-MM-DD HH:MM:SS" (UTC) or RFC3339
	CardNumber    *int64 `json:"card_number"`
	EventType     string `json:"event_type,omitempty"`
	EventTypeID   int    `json:"event_type_id,omitempty"`
	EventReason   string `json:"event_reason,omitempty"`
	Door          *int   `json:"door"`
	Controller    *int   `json:"controller"`
	AccessGranted *bool  `json:"access_granted"`
	PersonID      *int64 `json:"person_id,omitempty"` // resolved from the key card when omitted
}

type AccessLogResponse struct {
	Message   string `json:"message"`
	LogID     int64  `json:"log_id"`
	Duplicate bool   `json:"duplicate"`
	LogSHA1   string `json:"log_sha1"`
}

type AccessLog struct {
	ID            int64  `json:"id"`
	LogSHA1       string `json:"log_sha1"`
	EventDT       string `json:"event_dt"`
	CardNumber    int64  `json:"card_number"`
	EventType     string `json:"event_type"`
	EventTypeID   int    `json:"event_type_id"`
	EventReason   string `json:"event_reason"`
	Door          int    `json:"door"`
	Controller    int    `json:"controller"`
	AccessGranted bool   `json:"access_granted"`
	PersonID      int64  `json:"person_id"`
}

type AccessLogList struct {
	PersonID int64       `json:"person_id"`
	Start    string      `json:"start"`
	End      string      `json:"end"`
	Events   []AccessLog `json:"events"`
}
