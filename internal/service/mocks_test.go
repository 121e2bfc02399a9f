package service

import (
	"context"
	"time"

	"ai-notes-be/internal/entity"
	"ai-notes-be/pkg/events"
	"ai-notes-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	args := m.Called(ctx, id)
	note, _ := args.Get(0).(*entity.Note)
	return note, args.Error(1)
}

func (m *mockNoteRepository) FindAll(ctx context.Context) ([]*entity.Note, error) {
	args := m.Called(ctx)
	notes, _ := args.Get(0).([]*entity.Note)
	return notes, args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, id uuid.UUID, fields entity.NoteFields, updatedAt time.Time) (*entity.Note, error) {
	args := m.Called(ctx, id, fields, updatedAt)
	note, _ := args.Get(0).(*entity.Note)
	return note, args.Error(1)
}

func (m *mockNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockSummarizer struct {
	mock.Mock
}

func (m *mockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := &llm.Options{}
	for _, o := range options {
		o(opts)
	}
	args := m.Called(ctx, history, *opts)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return m.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
