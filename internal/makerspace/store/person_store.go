package store

import "context"

type PersonRecord struct {
	ID    int64
	First string
	Last  string
	Email string
	Meta
}

type PersonStore interface {
	CreatePerson(ctx context.Context, rec PersonRecord) (int64, error)
	GetPerson(ctx context.Context, id int64) (PersonRecord, error)
	// ListPeople returns people that are neither deleted nor hidden.
	ListPeople(ctx context.Context) ([]PersonRecord, error)
	UpdatePerson(ctx context.Context, rec PersonRecord) error
	ApplyPersonLifecycle(ctx context.Context, id int64, action LifecycleAction) error
}
