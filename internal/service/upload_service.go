package service

import (
	"strings"
	"unicode/utf8"

	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/pkg/apperror"
)

const textFileSuffix = ".txt"

type IUploadService interface {
	ParseTextFile(filename string, data []byte) (*dto.UploadTextResponse, error)
}

type uploadService struct{}

func NewUploadService() IUploadService {
	return &uploadService{}
}

// ParseTextFile decodes an uploaded .txt file. Nothing is stored.
func (s *uploadService) ParseTextFile(filename string, data []byte) (*dto.UploadTextResponse, error) {
	if !strings.HasSuffix(filename, textFileSuffix) {
		return nil, apperror.Validation("Only .txt files are allowed")
	}
	if !utf8.Valid(data) {
		return nil, apperror.Validation("File is not valid UTF-8 text")
	}

	return &dto.UploadTextResponse{
		Filename:       filename,
		Content:        string(data),
		SuggestedTitle: strings.TrimSuffix(filename, textFileSuffix),
	}, nil
}
