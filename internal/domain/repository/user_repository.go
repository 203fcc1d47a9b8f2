package repository

import "github.com/oksasatya/sheet-auth/internal/domain/entity"

// UserStore persists the whole user table as one value.
// LoadAll reads every record; SaveAll replaces every record.
// Implementations do not coordinate concurrent read-modify-write cycles;
// callers that mutate must serialize LoadAll -> change -> SaveAll themselves.
type UserStore interface {
	EnsureStorageExists() error
	LoadAll() ([]entity.User, error)
	SaveAll(users []entity.User) error
}
