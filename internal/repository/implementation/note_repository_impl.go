package implementation

import (
	"context"
	"errors"
	"time"

	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/mapper"
	"ai-notes-be/internal/model"
	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/repository/contract"
	"ai-notes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&model.Note{}); err != nil {
		return apperror.Storage(err)
	}
	return nil
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Storage(err)
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNoteNotFound
		}
		return nil, apperror.Storage(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specification.NewestFirst())
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.Storage(err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, id uuid.UUID, fields entity.NoteFields, updatedAt time.Time) (*entity.Note, error) {
	cols, ok := updateColumnsFor(fields)
	if !ok {
		return nil, apperror.ErrNoFieldsToUpdate
	}

	values := model.Note{
		Summary:   fields.Summary,
		UpdatedAt: updatedAt,
	}
	if fields.Title != nil {
		values.Title = *fields.Title
	}
	if fields.Content != nil {
		values.Content = *fields.Content
	}

	var updated []model.Note
	res := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Select(cols).
		Updates(values)
	if res.Error != nil {
		return nil, apperror.Storage(res.Error)
	}
	if res.RowsAffected == 0 || len(updated) == 0 {
		return nil, apperror.ErrNoteNotFound
	}

	return r.mapper.ToEntity(&updated[0]), nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Note{})
	if res.Error != nil {
		return apperror.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNoteNotFound
	}
	return nil
}
