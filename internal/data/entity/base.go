package entity

import (
	"time"

	"github.com/google/uuid"
)

// BaseSimple holds the store-assigned identity of a record. Neither field
// changes after insert.
type BaseSimple struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
