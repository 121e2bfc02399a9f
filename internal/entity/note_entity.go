package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	Summary   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteFields is a partial update. Nil fields are left untouched.
type NoteFields struct {
	Title   *string
	Content *string
	Summary *string
}
