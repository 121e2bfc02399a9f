package contract

import (
	"context"
	"time"

	"ai-notes-be/internal/entity"

	"github.com/google/uuid"
)

// NoteRepository is the durable store for notes. Lookups and mutations on a
// missing id return apperror.ErrNoteNotFound; backend failures are wrapped as
// apperror.KindStorage.
type NoteRepository interface {
	// Migrate creates the notes table if it does not exist.
	Migrate(ctx context.Context) error
	Create(ctx context.Context, note *entity.Note) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	// FindAll returns every note, newest first.
	FindAll(ctx context.Context) ([]*entity.Note, error)
	// Update applies the non-nil fields and updatedAt in a single statement
	// and returns the stored record.
	Update(ctx context.Context, id uuid.UUID, fields entity.NoteFields, updatedAt time.Time) (*entity.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
