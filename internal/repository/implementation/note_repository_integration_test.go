package implementation

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real PostgreSQL when TEST_DATABASE_URL is set.
func newIntegrationRepository(t *testing.T) *NoteRepositoryImpl {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, database.DefaultPoolConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	repo := NewNoteRepository(db).(*NoteRepositoryImpl)
	require.NoError(t, repo.Migrate(context.Background()))
	// Migrate twice: bootstrap must be idempotent.
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func seedNote(t *testing.T, repo *NoteRepositoryImpl, title string, at time.Time) *entity.Note {
	note := &entity.Note{
		Id:        uuid.New(),
		Title:     title,
		Content:   "content of " + title,
		CreatedAt: at,
		UpdatedAt: at,
	}
	require.NoError(t, repo.Create(context.Background(), note))
	t.Cleanup(func() { _ = repo.Delete(context.Background(), note.Id) })
	return note
}

func TestNoteRepositoryIntegration(t *testing.T) {
	repo := newIntegrationRepository(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	older := seedNote(t, repo, "older", base.Add(-time.Minute))
	newer := seedNote(t, repo, "newer", base)

	t.Run("find by id", func(t *testing.T) {
		got, err := repo.FindById(ctx, older.Id)
		require.NoError(t, err)
		assert.Equal(t, "older", got.Title)
		assert.Nil(t, got.Summary)
	})

	t.Run("find all newest first", func(t *testing.T) {
		notes, err := repo.FindAll(ctx)
		require.NoError(t, err)
		var order []uuid.UUID
		for _, n := range notes {
			if n.Id == older.Id || n.Id == newer.Id {
				order = append(order, n.Id)
			}
		}
		assert.Equal(t, []uuid.UUID{newer.Id, older.Id}, order)
	})

	t.Run("long title round trips", func(t *testing.T) {
		title := strings.Repeat("t", 300)
		note := seedNote(t, repo, title, base)

		got, err := repo.FindById(ctx, note.Id)
		require.NoError(t, err)
		assert.Equal(t, title, got.Title)

		longer := strings.Repeat("u", 1024)
		updated, err := repo.Update(ctx, note.Id, entity.NoteFields{Title: &longer}, base.Add(time.Second))
		require.NoError(t, err)
		assert.Equal(t, longer, updated.Title)
	})

	t.Run("duplicate id is a storage error", func(t *testing.T) {
		dup := *older
		err := repo.Create(ctx, &dup)
		assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))
	})

	t.Run("partial update keeps other columns", func(t *testing.T) {
		title := "renamed"
		updatedAt := base.Add(time.Second)
		got, err := repo.Update(ctx, older.Id, entity.NoteFields{Title: &title}, updatedAt)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
		assert.Equal(t, older.Content, got.Content)
		assert.True(t, got.UpdatedAt.Equal(updatedAt))
		assert.True(t, got.CreatedAt.Equal(older.CreatedAt))

		summary := "short"
		got, err = repo.Update(ctx, older.Id, entity.NoteFields{Summary: &summary}, updatedAt.Add(time.Second))
		require.NoError(t, err)
		require.NotNil(t, got.Summary)
		assert.Equal(t, "short", *got.Summary)
		assert.Equal(t, "renamed", got.Title)
	})

	t.Run("update missing note", func(t *testing.T) {
		title := "x"
		_, err := repo.Update(ctx, uuid.New(), entity.NoteFields{Title: &title}, base)
		assert.ErrorIs(t, err, apperror.ErrNoteNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		victim := seedNote(t, repo, "victim", base)
		require.NoError(t, repo.Delete(ctx, victim.Id))

		_, err := repo.FindById(ctx, victim.Id)
		assert.ErrorIs(t, err, apperror.ErrNoteNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, victim.Id), apperror.ErrNoteNotFound)
	})
}

func TestNoteRepositoryUpdateRejectsEmptyFieldsWithoutDB(t *testing.T) {
	repo := &NoteRepositoryImpl{}
	_, err := repo.Update(context.Background(), uuid.New(), entity.NoteFields{}, time.Now())
	assert.ErrorIs(t, err, apperror.ErrNoFieldsToUpdate)
}
