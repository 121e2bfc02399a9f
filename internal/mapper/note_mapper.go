package mapper

import (
	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	return &entity.Note{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Summary:   n.Summary,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	return &model.Note{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Summary:   n.Summary,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMapper) ToResponse(n *entity.Note) *dto.NoteResponse {
	if n == nil {
		return nil
	}

	return &dto.NoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Summary:   n.Summary,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToResponses(notes []*entity.Note) []*dto.NoteResponse {
	res := make([]*dto.NoteResponse, len(notes))
	for i, n := range notes {
		res[i] = m.ToResponse(n)
	}
	return res
}
