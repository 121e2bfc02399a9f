package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// UpdateNoteRequest carries pointers so an omitted field can be told apart
// from an empty one.
type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1"`
	Content *string `json:"content"`
}

type NoteResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Summary   *string   `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type BulkSummaryResponse struct {
	BulkSummary string `json:"bulk_summary"`
}
