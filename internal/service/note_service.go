// FILE: internal/service/note_service.go
package service

import (
	"context"
	"strings"
	"time"

	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/mapper"
	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/pkg/logger"
	"ai-notes-be/internal/repository/contract"
	"ai-notes-be/pkg/events"

	"github.com/google/uuid"
)

const (
	bulkNoteSeparator = "\n\n---\n\n"
	bulkSummaryPrefix = "Summarize all of these notes together, identifying common themes and key insights:\n\n"
)

type INoteService interface {
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Summarize(ctx context.Context, id uuid.UUID) (*dto.SummaryResponse, error)
	BulkSummarize(ctx context.Context) (*dto.BulkSummaryResponse, error)
}

type noteService struct {
	noteRepository   contract.NoteRepository
	summarizer       ISummarizerService
	publisherService IPublisherService
	mapper           *mapper.NoteMapper
	logger           logger.ILogger
	now              func() time.Time
}

func NewNoteService(
	noteRepository contract.NoteRepository,
	summarizer ISummarizerService,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		noteRepository:   noteRepository,
		summarizer:       summarizer,
		publisherService: publisherService,
		mapper:           mapper.NewNoteMapper(),
		logger:           log,
		now:              time.Now,
	}
}

func (c *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	now := c.now()
	note := entity.Note{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.noteRepository.Create(ctx, &note); err != nil {
		return nil, err
	}

	c.publish(ctx, EventNoteCreated, note.Id, map[string]interface{}{"title": note.Title})

	return c.mapper.ToResponse(&note), nil
}

func (c *noteService) List(ctx context.Context) ([]*dto.NoteResponse, error) {
	notes, err := c.noteRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return c.mapper.ToResponses(notes), nil
}

func (c *noteService) Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := c.noteRepository.FindById(ctx, id)
	if err != nil {
		return nil, err
	}

	return c.mapper.ToResponse(note), nil
}

// Update changes title and/or content. The summary is never touched here.
func (c *noteService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if req.Title == nil && req.Content == nil {
		return nil, apperror.ErrNoFieldsToUpdate
	}

	fields := entity.NoteFields{
		Title:   req.Title,
		Content: req.Content,
	}

	note, err := c.noteRepository.Update(ctx, id, fields, c.now())
	if err != nil {
		return nil, err
	}

	c.publish(ctx, EventNoteUpdated, note.Id, map[string]interface{}{"title": note.Title})

	return c.mapper.ToResponse(note), nil
}

func (c *noteService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.noteRepository.Delete(ctx, id); err != nil {
		return err
	}

	c.publish(ctx, EventNoteDeleted, id, nil)

	return nil
}

// Summarize reads the note, asks the model for a summary and stores it.
// The upstream call runs between two independent store statements, so no
// connection is held while waiting on it. If it fails nothing is written.
func (c *noteService) Summarize(ctx context.Context, id uuid.UUID) (*dto.SummaryResponse, error) {
	note, err := c.noteRepository.FindById(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := c.summarizer.Summarize(ctx, note.Content)
	if err != nil {
		c.logger.Warn("NoteService", "Summarization failed", map[string]interface{}{
			"note_id": id.String(),
			"kind":    string(apperror.KindOf(err)),
			"error":   err.Error(),
		})
		return nil, err
	}

	if _, err := c.noteRepository.Update(ctx, id, entity.NoteFields{Summary: &summary}, c.now()); err != nil {
		return nil, err
	}

	c.publish(ctx, EventNoteSummarized, id, nil)

	return &dto.SummaryResponse{Summary: summary}, nil
}

// BulkSummarize summarizes every note at once. The result is not stored.
func (c *noteService) BulkSummarize(ctx context.Context) (*dto.BulkSummaryResponse, error) {
	notes, err := c.noteRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, apperror.ErrNoNotesFound
	}

	contents := make([]string, len(notes))
	for i, note := range notes {
		contents[i] = note.Content
	}

	summary, err := c.summarizer.Summarize(ctx, bulkSummaryPrefix+strings.Join(contents, bulkNoteSeparator))
	if err != nil {
		return nil, err
	}

	return &dto.BulkSummaryResponse{BulkSummary: summary}, nil
}

func (c *noteService) publish(ctx context.Context, eventType string, noteId uuid.UUID, data map[string]interface{}) {
	if c.publisherService == nil {
		return
	}

	evt := events.NewNoteEvent(eventType, noteId.String(), data, c.now())
	// Activity events are auxiliary; the request has already succeeded.
	if err := c.publisherService.Publish(ctx, evt); err != nil {
		c.logger.Warn("NoteService", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}
