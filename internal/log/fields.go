package log

// Canonical field names for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldRequestID = "request_id"

	FieldPersonID   = "person_id"
	FieldController = "controller"
	FieldDoor       = "door"
	FieldLogID      = "log_id"

	FieldMethod   = "method"
	FieldPath     = "path"
	FieldStatus   = "status"
	FieldDuration = "duration"
)
