package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNoteService struct {
	mock.Mock
}

func (m *mockNoteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.NoteResponse)
	return res, args.Error(1)
}

func (m *mockNoteService) List(ctx context.Context) ([]*dto.NoteResponse, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]*dto.NoteResponse)
	return res, args.Error(1)
}

func (m *mockNoteService) Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.NoteResponse)
	return res, args.Error(1)
}

func (m *mockNoteService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	args := m.Called(ctx, id, req)
	res, _ := args.Get(0).(*dto.NoteResponse)
	return res, args.Error(1)
}

func (m *mockNoteService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNoteService) Summarize(ctx context.Context, id uuid.UUID) (*dto.SummaryResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.SummaryResponse)
	return res, args.Error(1)
}

func (m *mockNoteService) BulkSummarize(ctx context.Context) (*dto.BulkSummaryResponse, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*dto.BulkSummaryResponse)
	return res, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newNoteTestApp(t *testing.T) (*fiber.App, *mockNoteService) {
	svc := new(mockNoteService)
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(nopLogger{}))
	NewNoteController(svc).RegisterRoutes(app)
	t.Cleanup(func() { svc.AssertExpectations(t) })
	return app, svc
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func errorMessage(t *testing.T, body []byte) string {
	var res serverutils.BaseResponse[any]
	require.NoError(t, json.Unmarshal(body, &res))
	return res.Message
}

func TestCreateNote(t *testing.T) {
	app, svc := newNoteTestApp(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	created := &dto.NoteResponse{Id: uuid.New(), Title: "Groceries", Content: "milk", CreatedAt: now, UpdatedAt: now}
	svc.On("Create", mock.Anything, &dto.CreateNoteRequest{Title: "Groceries", Content: "milk"}).Return(created, nil).Once()

	status, body := doJSON(t, app, "POST", "/notes/", map[string]string{"title": "Groceries", "content": "milk"})

	assert.Equal(t, fiber.StatusCreated, status)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, created.Id.String(), got["id"])
	assert.Equal(t, "Groceries", got["title"])
	assert.Contains(t, got, "summary")
	assert.Nil(t, got["summary"])
}

func TestCreateNoteRequiresTitle(t *testing.T) {
	app, _ := newNoteTestApp(t)

	status, body := doJSON(t, app, "POST", "/notes/", map[string]string{"content": "milk"})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "title is required", errorMessage(t, body))
}

func TestCreateNoteRejectsMalformedJSON(t *testing.T) {
	app, _ := newNoteTestApp(t)
	req := httptest.NewRequest("POST", "/notes/", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListNotes(t *testing.T) {
	app, svc := newNoteTestApp(t)
	svc.On("List", mock.Anything).Return([]*dto.NoteResponse{{Id: uuid.New(), Title: "b"}, {Id: uuid.New(), Title: "a"}}, nil).Once()

	status, body := doJSON(t, app, "GET", "/notes/", nil)

	assert.Equal(t, fiber.StatusOK, status)
	var got []dto.NoteResponse
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Title)
}

func TestListNotesEmptyIsArray(t *testing.T) {
	app, svc := newNoteTestApp(t)
	svc.On("List", mock.Anything).Return([]*dto.NoteResponse{}, nil).Once()

	status, body := doJSON(t, app, "GET", "/notes", nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))
}

func TestShowNote(t *testing.T) {
	app, svc := newNoteTestApp(t)
	id := uuid.New()
	svc.On("Show", mock.Anything, id).Return(&dto.NoteResponse{Id: id, Title: "t"}, nil).Once()

	status, _ := doJSON(t, app, "GET", "/notes/"+id.String(), nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestShowNoteNotFound(t *testing.T) {
	app, svc := newNoteTestApp(t)
	id := uuid.New()
	svc.On("Show", mock.Anything, id).Return(nil, apperror.ErrNoteNotFound).Once()

	status, body := doJSON(t, app, "GET", "/notes/"+id.String(), nil)

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Note not found", errorMessage(t, body))
}

func TestShowNoteWithMalformedIdIsNotFound(t *testing.T) {
	app, _ := newNoteTestApp(t)

	status, _ := doJSON(t, app, "GET", "/notes/not-a-uuid", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestUpdateNote(t *testing.T) {
	app, svc := newNoteTestApp(t)
	id := uuid.New()
	svc.On("Update", mock.Anything, id, mock.MatchedBy(func(req *dto.UpdateNoteRequest) bool {
		return req.Title != nil && *req.Title == "New" && req.Content == nil
	})).Return(&dto.NoteResponse{Id: id, Title: "New"}, nil).Once()

	status, _ := doJSON(t, app, "PUT", "/notes/"+id.String(), map[string]string{"title": "New"})
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUpdateNoteWithoutFields(t *testing.T) {
	app, svc := newNoteTestApp(t)
	id := uuid.New()
	svc.On("Update", mock.Anything, id, mock.Anything).Return(nil, apperror.ErrNoFieldsToUpdate).Once()

	status, body := doJSON(t, app, "PUT", "/notes/"+id.String(), map[string]string{})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "No fields to update", errorMessage(t, body))
}

func TestDeleteNote(t *testing.T) {
	app, svc := newNoteTestApp(t)
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil).Once()

	status, body := doJSON(t, app, "DELETE", "/notes/"+id.String(), nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"message":"Note deleted successfully"}`, string(body))
}

func TestDeleteNoteNotFound(t *testing.T) {
	app, svc := newNoteTestApp(t)
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(apperror.ErrNoteNotFound).Once()

	status, _ := doJSON(t, app, "DELETE", "/notes/"+id.String(), nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestSummarizeNote(t *testing.T) {
	app, svc := newNoteTestApp(t)
	id := uuid.New()
	svc.On("Summarize", mock.Anything, id).Return(&dto.SummaryResponse{Summary: "short"}, nil).Once()

	status, body := doJSON(t, app, "POST", "/notes/"+id.String()+"/summarize", nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"summary":"short"}`, string(body))
}

func TestSummarizeNoteUpstreamFailures(t *testing.T) {
	kinds := []apperror.Kind{
		apperror.KindUpstreamTimeout,
		apperror.KindUpstreamUnavailable,
		apperror.KindUpstreamProtocol,
		apperror.KindConfiguration,
	}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			app, svc := newNoteTestApp(t)
			id := uuid.New()
			svc.On("Summarize", mock.Anything, id).Return(nil, apperror.New(kind, "upstream said no")).Once()

			status, body := doJSON(t, app, "POST", "/notes/"+id.String()+"/summarize", nil)

			assert.Equal(t, fiber.StatusInternalServerError, status)
			assert.Equal(t, "upstream said no", errorMessage(t, body))
		})
	}
}

func TestBulkSummarize(t *testing.T) {
	app, svc := newNoteTestApp(t)
	svc.On("BulkSummarize", mock.Anything).Return(&dto.BulkSummaryResponse{BulkSummary: "themes"}, nil).Once()

	status, body := doJSON(t, app, "POST", "/notes/bulk-summarize", nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"bulk_summary":"themes"}`, string(body))
}

func TestBulkSummarizeWithoutNotes(t *testing.T) {
	app, svc := newNoteTestApp(t)
	svc.On("BulkSummarize", mock.Anything).Return(nil, apperror.ErrNoNotesFound).Once()

	status, body := doJSON(t, app, "POST", "/notes/bulk-summarize", nil)

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "No notes found", errorMessage(t, body))
}
