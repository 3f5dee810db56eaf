package types

// Record holds the bookkeeping fields every managed record exposes.
type Record struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
	IsHidden  bool   `json:"is_hidden"`
}

type PersonRequest struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Email string `json:"email"`
}

type Person struct {
	ID    int64  `json:"id"`
	First string `json:"first"`
	Last  string `json:"last"`
	Email string `json:"email"`
	Record
}

type KeyCardRequest struct {
	CardNumber *int64 `json:"card_number"`
	CardType   string `json:"card_type"`
	PersonID   *int64 `json:"person_id"`
}

type KeyCard struct {
	ID         int64  `json:"id"`
	CardNumber int64  `json:"card_number"`
	CardType   string `json:"card_type"`
	PersonID   int64  `json:"person_id"`
}

type KeyCodeRequest struct {
	Passcode *int64 `json:"passcode"`
	PersonID *int64 `json:"person_id"`
}

type KeyCode struct {
	ID       int64 `json:"id"`
	Passcode int64 `json:"passcode"`
	PersonID int64 `json:"person_id"`
}
