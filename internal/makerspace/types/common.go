package types

// LifecycleRequest is the PATCH body for managed records.
type LifecycleRequest struct {
	Action string `json:"action"` // soft_delete | restore_softdelete | hard_delete | hide | unhide
}

type CreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
