package model

import (
	"time"

	"github.com/google/uuid"
)

// Timestamps are owned by the service, so GORM's automatic tracking is off.
type Note struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"type:varchar;not null"`
	Content   string    `gorm:"type:text;not null"`
	Summary   *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoCreateTime:false;index"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoUpdateTime:false"`
}

func (Note) TableName() string {
	return "notes"
}
