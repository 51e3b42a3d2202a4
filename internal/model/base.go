package model

import (
	"github.com/google/uuid"
)

// Base contains the identity column shared by every persisted entity.
// The id is generated by the database on insert and never changes.
type Base struct {
	ID uuid.UUID `json:"id" db:"id"`
}
